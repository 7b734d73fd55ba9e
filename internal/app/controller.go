package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"FinPeek/internal/chart"
	"FinPeek/internal/collector"
	"FinPeek/internal/display"
	"FinPeek/internal/model"
	"FinPeek/internal/scheduler"
	"FinPeek/internal/store"
	"FinPeek/internal/view"
)

// ErrEmptyInput is returned by Search for a blank ticker. It is never shown to the user.
var ErrEmptyInput = errors.New("empty ticker")

// ChartOptions sizes and colours both charts.
type ChartOptions struct {
	Width          float64
	Height         float64
	Padding        float64
	StockColor     string
	BenchmarkColor string
}

// DefaultChartOptions matches the dashboard's 300x150 panels.
var DefaultChartOptions = ChartOptions{
	Width:          300,
	Height:         150,
	Padding:        10,
	StockColor:     "#007AFF",
	BenchmarkColor: "#00C851",
}

// Controller owns the refresh session: the current ticker, both timeframes
// and the scheduler's two repeating actions. Ticks read this state when they
// fire, so a ticker change is picked up by the next tick.
type Controller struct {
	Ctx         context.Context
	Collector   *collector.Collector
	Store       store.KV
	Display     display.Display
	Scheduler   *scheduler.Scheduler
	Benchmark   string
	Chart       ChartOptions
	TickTimeout time.Duration

	mu           sync.Mutex
	ticker       model.Ticker
	stockTF      model.Timeframe
	benchmarkTF  model.Timeframe
	generation   uint64
	cycling      bool
	inputVisible bool
}

// NewController creates a Controller with both timeframes set to daily.
func NewController(ctx context.Context, col *collector.Collector, kv store.KV, disp display.Display, sched *scheduler.Scheduler, benchmark string, opts ChartOptions) *Controller {
	return &Controller{
		Ctx:          ctx,
		Collector:    col,
		Store:        kv,
		Display:      disp,
		Scheduler:    sched,
		Benchmark:    benchmark,
		Chart:        opts,
		TickTimeout:  30 * time.Second,
		stockTF:      model.Daily,
		benchmarkTF:  model.Daily,
		inputVisible: true,
	}
}

// Search normalizes input and, if non-empty, makes it the current ticker and
// starts a fresh refresh session.
func (c *Controller) Search(ctx context.Context, input string) error {
	t, err := model.NormalizeTicker(input)
	if err != nil {
		return fmt.Errorf("search %q: %w", input, err)
	}
	if t == "" {
		c.mu.Lock()
		loaded := c.ticker != ""
		c.mu.Unlock()
		if !loaded {
			c.Display.ShowPrompt(view.PromptText)
		}
		return ErrEmptyInput
	}
	return c.load(ctx, t, true)
}

// LoadSaved restores the last searched ticker, if any. It reports whether a session was started.
func (c *Controller) LoadSaved(ctx context.Context) (bool, error) {
	v, ok, err := c.Store.Get(ctx, store.LastTickerKey)
	if err != nil {
		log.Printf("[WARN] could not load saved ticker: %v", err)
		return false, nil
	}
	if !ok {
		return false, nil
	}
	t, err := model.NormalizeTicker(v)
	if err != nil || t == "" {
		log.Printf("[WARN] ignoring saved ticker %q", v)
		return false, nil
	}
	log.Printf("[INFO] restoring saved ticker %s", t)
	return true, c.load(ctx, t, false)
}

func (c *Controller) load(ctx context.Context, t model.Ticker, persist bool) error {
	c.mu.Lock()
	c.ticker = t
	c.generation++
	c.cycling = true
	gen := c.generation
	c.mu.Unlock()

	if persist {
		if err := c.Store.Set(ctx, store.LastTickerKey, string(t)); err != nil {
			log.Printf("[WARN] could not save ticker: %v", err)
		}
	}

	c.refresh(ctx, gen)

	if err := c.Scheduler.Replace(c.refreshJob, c.cycleJob); err != nil {
		return fmt.Errorf("start refresh session: %w", err)
	}

	c.mu.Lock()
	c.Display.ShowTimeframes(c.stockTF, c.benchmarkTF)
	c.mu.Unlock()
	c.HideInput()
	log.Printf("[INFO] session started for %s", t)
	return nil
}

// Refresh re-collects every panel for the current ticker.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	t, gen := c.ticker, c.generation
	c.mu.Unlock()
	if t == "" {
		return
	}
	c.refresh(ctx, gen)
}

func (c *Controller) refresh(ctx context.Context, gen uint64) {
	c.renderQuote(ctx, gen, display.PanelStock)
	c.renderQuote(ctx, gen, display.PanelBenchmark)
	c.renderChart(ctx, gen, display.PanelBenchmark)
	c.renderChart(ctx, gen, display.PanelStock)
}

// Cycle flips both timeframes and redraws both charts, unless the user has
// taken manual control of the timeframes in this session.
func (c *Controller) Cycle(ctx context.Context) {
	c.mu.Lock()
	if !c.cycling || c.ticker == "" {
		c.mu.Unlock()
		return
	}
	c.stockTF = c.stockTF.Toggle()
	c.benchmarkTF = c.benchmarkTF.Toggle()
	gen := c.generation
	c.Display.ShowTimeframes(c.stockTF, c.benchmarkTF)
	c.mu.Unlock()

	c.renderChart(ctx, gen, display.PanelStock)
	c.renderChart(ctx, gen, display.PanelBenchmark)
}

// ToggleStockTimeframe flips the stock timeframe and stops automatic cycling for the session.
func (c *Controller) ToggleStockTimeframe(ctx context.Context) {
	c.Scheduler.CancelCycle()

	c.mu.Lock()
	c.cycling = false
	c.stockTF = c.stockTF.Toggle()
	gen, loaded := c.generation, c.ticker != ""
	c.Display.ShowTimeframes(c.stockTF, c.benchmarkTF)
	c.mu.Unlock()

	if loaded {
		c.renderChart(ctx, gen, display.PanelStock)
	}
}

// ToggleBenchmarkTimeframe flips the benchmark timeframe and stops automatic cycling for the session.
func (c *Controller) ToggleBenchmarkTimeframe(ctx context.Context) {
	c.Scheduler.CancelCycle()

	c.mu.Lock()
	c.cycling = false
	c.benchmarkTF = c.benchmarkTF.Toggle()
	gen := c.generation
	c.Display.ShowTimeframes(c.stockTF, c.benchmarkTF)
	c.mu.Unlock()

	c.renderChart(ctx, gen, display.PanelBenchmark)
}

// ToggleInput shows the ticker input if hidden and hides it otherwise.
func (c *Controller) ToggleInput() {
	c.mu.Lock()
	visible := !c.inputVisible
	c.mu.Unlock()
	c.setInput(visible)
}

func (c *Controller) ShowInput() { c.setInput(true) }
func (c *Controller) HideInput() { c.setInput(false) }

func (c *Controller) setInput(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputVisible = visible
	c.Display.SetInputVisible(visible)
}

// Close cancels the session's repeating actions.
func (c *Controller) Close() {
	c.Scheduler.Clear()
}

// Ticker returns the current ticker, "" before the first search.
func (c *Controller) Ticker() model.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticker
}

// Timeframes returns the stock and benchmark timeframes.
func (c *Controller) Timeframes() (stock, benchmark model.Timeframe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stockTF, c.benchmarkTF
}

// Cycling reports whether automatic timeframe cycling is active.
func (c *Controller) Cycling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cycling
}

func (c *Controller) refreshJob() {
	ctx, cancel := context.WithTimeout(c.Ctx, c.TickTimeout)
	defer cancel()
	c.Refresh(ctx)
}

func (c *Controller) cycleJob() {
	ctx, cancel := context.WithTimeout(c.Ctx, c.TickTimeout)
	defer cancel()
	c.Cycle(ctx)
}

func (c *Controller) symbolFor(p display.Panel) string {
	if p == display.PanelBenchmark {
		return c.Benchmark
	}
	return string(c.ticker)
}

func (c *Controller) timeframeFor(p display.Panel) model.Timeframe {
	if p == display.PanelBenchmark {
		return c.benchmarkTF
	}
	return c.stockTF
}

func (c *Controller) colorFor(p display.Panel) string {
	if p == display.PanelBenchmark {
		return c.Chart.BenchmarkColor
	}
	return c.Chart.StockColor
}

// renderQuote fetches outside the lock and drops the result if a new search
// started meanwhile.
func (c *Controller) renderQuote(ctx context.Context, gen uint64, p display.Panel) {
	c.mu.Lock()
	symbol := c.symbolFor(p)
	c.mu.Unlock()

	q, src := c.Collector.Quote(ctx, symbol)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return
	}
	c.Display.ShowQuote(p, view.Build(q), src)
}

// renderChart also drops the result if the panel's timeframe changed while fetching.
func (c *Controller) renderChart(ctx context.Context, gen uint64, p display.Panel) {
	c.mu.Lock()
	symbol, tf := c.symbolFor(p), c.timeframeFor(p)
	c.mu.Unlock()

	series, src := c.Collector.Series(ctx, symbol, tf)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen || c.timeframeFor(p) != tf {
		return
	}
	d, err := chart.RenderPoints(series, c.Chart.Width, c.Chart.Height, c.Chart.Padding, c.colorFor(p))
	if err != nil {
		log.Printf("[ERROR] render %s chart for %s: %v", p, symbol, err)
		return
	}
	c.Display.ShowChart(p, d, series, src)
}
