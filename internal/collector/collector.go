package collector

import (
	"context"
	"errors"
	"log"

	"FinPeek/internal/model"
	"FinPeek/internal/recorder"
)

// Collector fetches live data and falls back to mock data on any failure.
// A nil Fetcher puts it in mock-only mode.
type Collector struct {
	Fetcher   Fetcher
	Mock      *MockGenerator
	Recorder  recorder.Recorder
	Benchmark string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, mock *MockGenerator, rec recorder.Recorder, benchmark string) *Collector {
	if mock == nil {
		mock = NewMockGenerator()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{Fetcher: fetcher, Mock: mock, Recorder: rec, Benchmark: benchmark}
}

var errMockOnly = errors.New("no live data source configured")

// Quote returns a live quote for symbol, or a mock one when the fetch fails.
func (c *Collector) Quote(ctx context.Context, symbol string) (model.Quote, model.FetchSource) {
	var err error
	if c.Fetcher != nil {
		var q *model.Quote
		if q, err = c.Fetcher.FetchQuote(ctx, symbol); err == nil {
			c.record(&recorder.FetchEvent{Symbol: symbol, Op: "quote", Source: string(model.SourceLive)})
			return *q, model.SourceLive
		}
	} else {
		err = errMockOnly
	}

	c.fallback(symbol, "quote", "", err)
	if symbol == c.Benchmark {
		return c.Mock.BenchmarkQuote(symbol), model.SourceMock
	}
	return c.Mock.Quote(symbol), model.SourceMock
}

// Series returns live closes for symbol, or a mock series when the fetch fails.
func (c *Collector) Series(ctx context.Context, symbol string, tf model.Timeframe) (model.Series, model.FetchSource) {
	var err error
	if c.Fetcher != nil {
		var s model.Series
		s, err = c.Fetcher.FetchSeries(ctx, symbol, tf)
		if err == nil && len(s) == 0 {
			err = emptyErr("fetch series", symbol, errors.New("provider returned no points"))
		}
		if err == nil {
			c.record(&recorder.FetchEvent{Symbol: symbol, Op: "series", Timeframe: string(tf), Source: string(model.SourceLive)})
			return s, model.SourceLive
		}
	} else {
		err = errMockOnly
	}

	c.fallback(symbol, "series", tf, err)
	if symbol == c.Benchmark {
		return c.Mock.BenchmarkSeries(tf), model.SourceMock
	}
	return c.Mock.Series(symbol, tf), model.SourceMock
}

func (c *Collector) fallback(symbol, op string, tf model.Timeframe, err error) {
	evt := &recorder.FetchEvent{
		Symbol:    symbol,
		Op:        op,
		Timeframe: string(tf),
		Source:    string(model.SourceMock),
	}
	if !errors.Is(err, errMockOnly) {
		evt.Kind = string(KindOf(err))
		evt.Error = err.Error()
		log.Printf("[WARN] %s %s: %s, using mock data: %v", op, symbol, evt.Kind, err)
	}
	c.record(evt)
}

func (c *Collector) record(evt *recorder.FetchEvent) {
	if err := c.Recorder.RecordFetch(evt); err != nil {
		log.Printf("[ERROR] record fetch: %v", err)
	}
}
