package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"FinPeek/internal/chart"
	"FinPeek/internal/command"
	"FinPeek/internal/display"
	"FinPeek/internal/model"
	"FinPeek/internal/scheduler"
	"FinPeek/internal/store"
)

// FetchStats is implemented by recorders that can summarise fetch outcomes.
type FetchStats interface {
	CountByKind() (map[string]int, error)
}

// Handler serves the dashboard page and its JSON API.
type Handler struct {
	Board      *display.Board
	Dispatcher *command.Dispatcher
	Store      store.KV
	Benchmark  string
	// RefreshSeconds is the page's auto-reload period; 0 disables it.
	RefreshSeconds int

	// Optional health telemetry.
	Scheduler *scheduler.Scheduler
	Telemetry FetchStats
}

func NewHandler(board *display.Board, d *command.Dispatcher, kv store.KV, benchmark string, refreshSeconds int) *Handler {
	return &Handler{Board: board, Dispatcher: d, Store: kv, Benchmark: benchmark, RefreshSeconds: refreshSeconds}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Page)
	mux.HandleFunc("GET /api/dashboard", h.Dashboard)
	mux.HandleFunc("POST /api/commands/{name}", h.Command)
	mux.HandleFunc("GET /charts/{file}", h.ChartPNG)
	mux.HandleFunc("GET /healthz", h.Health)
	return mux
}

// Dashboard writes the current board snapshot as JSON.
func (h *Handler) Dashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Board.Snapshot())
}

// Command runs the named command. Browser form posts are redirected back to
// the page; API clients get JSON.
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	arg := r.FormValue("arg")

	err := h.Dispatcher.Dispatch(r.Context(), name, arg)
	switch {
	case errors.Is(err, command.ErrUnknownCommand):
		writeJSON(w, http.StatusNotFound, map[string]string{"status": "error", "error": err.Error()})
		return
	case err != nil:
		log.Printf("[WARN] command %s %q: %v", name, arg, err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "error": err.Error()})
		return
	}

	if r.FormValue("redirect") != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "command": name})
}

// ChartPNG exports one panel's current series as a PNG image.
func (h *Handler) ChartPNG(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	name, ok := strings.CutSuffix(file, ".png")
	if !ok || (name != string(display.PanelStock) && name != string(display.PanelBenchmark)) {
		http.NotFound(w, r)
		return
	}

	snap := h.Board.Snapshot()
	ps, title := snap.Stock, "Stock"
	if name == string(display.PanelBenchmark) {
		ps, title = snap.Benchmark, h.Benchmark
	} else if ps.Quote != nil {
		title = ps.Quote.Symbol
	}
	title += " " + string(ps.Timeframe)

	img, err := chart.PNG(title, ps.Series)
	if errors.Is(err, chart.ErrEmptySeries) {
		http.Error(w, "no chart data yet", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[ERROR] render %s png: %v", name, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(img)
}

// Health reports process liveness and, where the store has a remote
// backend, whether it is reachable. It also reports the refresh session's
// scheduled jobs and fetch outcomes per failure kind when those are wired.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status, storeStatus := "healthy", "healthy"
	if p, ok := h.Store.(store.Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			log.Printf("[WARN] store health check failed: %v", err)
			status, storeStatus = "degraded", "unhealthy"
		}
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	resp := map[string]any{
		"status": status,
		"checks": map[string]string{"store": storeStatus},
	}
	if h.Scheduler != nil {
		resp["scheduler"] = map[string]any{
			"state":   h.Scheduler.State().String(),
			"entries": h.Scheduler.Entries(),
		}
	}
	if h.Telemetry != nil {
		counts, err := h.Telemetry.CountByKind()
		if err != nil {
			log.Printf("[WARN] fetch telemetry: %v", err)
		} else {
			if n, ok := counts[""]; ok {
				delete(counts, "")
				counts["none"] = n
			}
			resp["fetches"] = counts
		}
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

// sourceOf picks the panel's data source badge, preferring mock if either
// half of the panel was simulated.
func sourceOf(ps display.PanelState) model.FetchSource {
	if ps.QuoteSource == model.SourceMock || ps.ChartSource == model.SourceMock {
		return model.SourceMock
	}
	if ps.QuoteSource == "" && ps.ChartSource == "" {
		return ""
	}
	return model.SourceLive
}
