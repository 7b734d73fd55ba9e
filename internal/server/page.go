package server

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"FinPeek/internal/chart"
	"FinPeek/internal/command"
	"FinPeek/internal/display"
	"FinPeek/internal/view"
)

type panelView struct {
	Title     string
	Quote     *view.ViewModel
	Chart     template.HTML
	Stats     *view.Stats
	Timeframe string
	Source    string
	Toggle    string
	PNG       string
}

type pageView struct {
	Refresh      int
	Prompt       string
	InputVisible bool
	Stock        panelView
	Benchmark    panelView
	UpdatedAt    string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{if .Refresh}}<meta http-equiv="refresh" content="{{.Refresh}}">{{end}}
<title>FinPeek</title>
<style>
body { background: #000; color: #fff; font-family: -apple-system, sans-serif; margin: 0; padding: 12px; }
.panel { margin-bottom: 16px; }
.symbol { font-size: 14px; color: #888; }
.price { font-size: 32px; font-weight: 600; }
.positive { color: #00C851; }
.negative { color: #ff4444; }
.meta { font-size: 12px; color: #666; }
.prompt { color: #888; padding: 24px 0; }
form.inline { display: inline; }
button { background: #1c1c1e; color: #fff; border: 1px solid #333; border-radius: 6px; padding: 2px 8px; }
</style>
</head>
<body>
{{if .InputVisible}}
<form method="post" action="/api/commands/search">
<input type="hidden" name="redirect" value="1">
<input name="arg" placeholder="Ticker" autocapitalize="characters" autofocus>
<button type="submit">Go</button>
</form>
{{else}}
<form class="inline" method="post" action="/api/commands/toggle-input">
<input type="hidden" name="redirect" value="1"><button type="submit">Change ticker</button>
</form>
{{end}}
{{if .Prompt}}<div class="prompt">{{.Prompt}}</div>{{end}}
{{template "panel" .Stock}}
{{template "panel" .Benchmark}}
<div class="meta">{{if .UpdatedAt}}Updated {{.UpdatedAt}}{{end}}</div>
</body>
</html>
{{define "panel"}}{{if .Quote}}
<div class="panel">
<div class="symbol">{{.Title}}
<form class="inline" method="post" action="/api/commands/{{.Toggle}}">
<input type="hidden" name="redirect" value="1"><button type="submit">{{.Timeframe}}</button>
</form>
<span class="meta">{{.Source}}</span>
</div>
<div class="price">{{.Quote.PriceText}}</div>
<div class="{{.Quote.Sentiment}}">{{.Quote.Summary}}</div>
{{if .Quote.VolumeText}}<div class="meta">Vol {{.Quote.VolumeText}}</div>{{end}}
{{.Chart}}
{{with .Stats}}<div class="meta">H {{.HighText}} · L {{.LowText}} · Avg {{.AverageText}} · <span class="{{.Sentiment}}">{{.ChangeText}}</span></div>{{end}}
<a class="meta" href="{{.PNG}}">png</a>
</div>
{{end}}{{end}}
`))

// Page renders the dashboard.
func (h *Handler) Page(w http.ResponseWriter, _ *http.Request) {
	snap := h.Board.Snapshot()
	pv := pageView{
		Refresh:      h.RefreshSeconds,
		Prompt:       snap.Prompt,
		InputVisible: snap.InputVisible,
		Stock:        panelFor(snap.Stock, display.PanelStock, "", command.ToggleStock),
		Benchmark:    panelFor(snap.Benchmark, display.PanelBenchmark, h.Benchmark, command.ToggleBenchmark),
	}
	if !snap.UpdatedAt.IsZero() {
		pv.UpdatedAt = snap.UpdatedAt.Format("15:04:05")
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pv); err != nil {
		log.Printf("[ERROR] render page: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func panelFor(ps display.PanelState, p display.Panel, title, toggle string) panelView {
	pv := panelView{
		Title:     title,
		Quote:     ps.Quote,
		Timeframe: view.TimeframeLabel(ps.Timeframe),
		Toggle:    toggle,
		PNG:       "/charts/" + string(p) + ".png",
	}
	if pv.Title == "" && ps.Quote != nil {
		pv.Title = ps.Quote.Symbol
	}
	if src := sourceOf(ps); src != "" {
		pv.Source = view.SourceLabel(src)
	}
	if ps.Chart != nil {
		// SVG output is built from numbers and an escaped colour only.
		pv.Chart = template.HTML(chart.SVG(*ps.Chart))
	}
	if st, ok := view.BuildStats(ps.Series); ok {
		pv.Stats = &st
	}
	return pv
}
