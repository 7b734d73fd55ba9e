package display

import (
	"log"
	"sync"
	"time"

	"FinPeek/internal/chart"
	"FinPeek/internal/model"
	"FinPeek/internal/view"
)

// PanelState is everything shown on one panel.
type PanelState struct {
	Quote       *view.ViewModel            `json:"quote,omitempty"`
	QuoteSource model.FetchSource          `json:"quote_source,omitempty"`
	Chart       *chart.DrawingInstructions `json:"chart,omitempty"`
	Series      model.Series               `json:"series,omitempty"`
	ChartSource model.FetchSource          `json:"chart_source,omitempty"`
	Timeframe   model.Timeframe            `json:"timeframe"`
}

// Snapshot is an immutable copy of the board.
type Snapshot struct {
	Stock        PanelState `json:"stock"`
	Benchmark    PanelState `json:"benchmark"`
	Prompt       string     `json:"prompt,omitempty"`
	InputVisible bool       `json:"input_visible"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Board is an in-memory Display read by the HTTP layer.
type Board struct {
	mu    sync.RWMutex
	state Snapshot
	Now   func() time.Time
}

// NewBoard returns a board with the input visible and both timeframes daily.
func NewBoard() *Board {
	return &Board{
		state: Snapshot{
			Stock:        PanelState{Timeframe: model.Daily},
			Benchmark:    PanelState{Timeframe: model.Daily},
			InputVisible: true,
		},
		Now: time.Now,
	}
}

func (b *Board) panel(p Panel) *PanelState {
	if p == PanelBenchmark {
		return &b.state.Benchmark
	}
	return &b.state.Stock
}

func (b *Board) ShowQuote(p Panel, vm view.ViewModel, src model.FetchSource) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ps := b.panel(p)
	ps.Quote = &vm
	ps.QuoteSource = src
	if p == PanelStock {
		b.state.Prompt = ""
	}
	b.state.UpdatedAt = b.Now()
}

func (b *Board) ShowChart(p Panel, d chart.DrawingInstructions, series model.Series, src model.FetchSource) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ps := b.panel(p)
	ps.Chart = &d
	ps.Series = append(model.Series(nil), series...)
	ps.ChartSource = src
	b.state.UpdatedAt = b.Now()
}

func (b *Board) ShowTimeframes(stock, benchmark model.Timeframe) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Stock.Timeframe = stock
	b.state.Benchmark.Timeframe = benchmark
}

func (b *Board) ShowPrompt(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Prompt = msg
	b.state.InputVisible = true
	log.Printf("[INFO] prompt: %s", msg)
}

func (b *Board) SetInputVisible(visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.InputVisible = visible
}

// Snapshot returns a copy of the current state.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s := b.state
	s.Stock = copyPanel(s.Stock)
	s.Benchmark = copyPanel(s.Benchmark)
	return s
}

func copyPanel(p PanelState) PanelState {
	if p.Quote != nil {
		q := *p.Quote
		p.Quote = &q
	}
	if p.Chart != nil {
		c := *p.Chart
		c.Points = append([]chart.Point(nil), c.Points...)
		p.Chart = &c
	}
	p.Series = append(model.Series(nil), p.Series...)
	return p
}
