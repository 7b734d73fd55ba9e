package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"FinPeek/internal/model"
	"FinPeek/internal/recorder"
)

// stubFetcher returns canned results for development and testing.
type stubFetcher struct {
	quote  *model.Quote
	series model.Series
	err    error
}

func (s *stubFetcher) Name() string { return "stub" }

func (s *stubFetcher) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.quote, nil
}

func (s *stubFetcher) FetchSeries(_ context.Context, _ string, _ model.Timeframe) (model.Series, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.series, nil
}

type memRecorder struct{ events []recorder.FetchEvent }

func (m *memRecorder) RecordFetch(evt *recorder.FetchEvent) error {
	m.events = append(m.events, *evt)
	return nil
}
func (m *memRecorder) Close() error { return nil }

func TestCollector_LiveQuote(t *testing.T) {
	rec := &memRecorder{}
	live := &model.Quote{Symbol: "AAPL", Price: 190, Change: 1, ChangePercent: 0.5, Currency: "USD"}
	c := NewCollector(&stubFetcher{quote: live}, fixedGenerator(time.Now()), rec, "SPY")

	q, src := c.Quote(context.Background(), "AAPL")
	if src != model.SourceLive || q.Price != 190 {
		t.Errorf("got %+v from %s", q, src)
	}
	if len(rec.events) != 1 || rec.events[0].Source != "live" || rec.events[0].Kind != "" {
		t.Errorf("unexpected telemetry: %+v", rec.events)
	}
}

func TestCollector_FallbackPreservesKind(t *testing.T) {
	kinds := []FailureKind{TransportError, ParseError, EmptyResult}
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, kind := range kinds {
		rec := &memRecorder{}
		mock := fixedGenerator(at)
		f := &stubFetcher{err: &FetchError{Kind: kind, Op: "fetch quote", Symbol: "AAPL", Err: errors.New("boom")}}
		c := NewCollector(f, mock, rec, "SPY")

		q, src := c.Quote(context.Background(), "AAPL")
		if src != model.SourceMock {
			t.Errorf("%s: source = %s, want mock", kind, src)
		}
		if q.Price != mock.Price("AAPL") {
			t.Errorf("%s: price %v, want mock price %v", kind, q.Price, mock.Price("AAPL"))
		}
		s, _ := c.Series(context.Background(), "AAPL", model.Hourly)
		if len(s) != 24 {
			t.Errorf("%s: mock series has %d points", kind, len(s))
		}
		if len(rec.events) != 2 {
			t.Fatalf("%s: expected 2 events, got %d", kind, len(rec.events))
		}
		for _, e := range rec.events {
			if e.Kind != string(kind) || e.Source != "mock" {
				t.Errorf("%s: unexpected event %+v", kind, e)
			}
		}
	}
}

func TestCollector_EmptyLiveSeriesFallsBack(t *testing.T) {
	rec := &memRecorder{}
	c := NewCollector(&stubFetcher{series: model.Series{}}, fixedGenerator(time.Now()), rec, "SPY")
	s, src := c.Series(context.Background(), "AAPL", model.Daily)
	if src != model.SourceMock || len(s) != 30 {
		t.Errorf("got %d points from %s", len(s), src)
	}
	if rec.events[0].Kind != string(EmptyResult) {
		t.Errorf("kind = %q, want EmptyResult", rec.events[0].Kind)
	}
}

func TestCollector_MockOnlyBenchmark(t *testing.T) {
	c := NewCollector(nil, fixedGenerator(time.Now()), nil, "SPY")
	q, src := c.Quote(context.Background(), "SPY")
	if src != model.SourceMock || q.Price < 410 || q.Price > 430 || q.Volume == 0 {
		t.Errorf("unexpected benchmark quote %+v from %s", q, src)
	}
	s, _ := c.Series(context.Background(), "SPY", model.Daily)
	for _, v := range s {
		if v < 378 || v > 462 {
			t.Fatalf("benchmark point %v outside 420 ±10%%", v)
		}
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != "" {
		t.Error("nil error should have no kind")
	}
	if KindOf(errors.New("dial tcp: refused")) != TransportError {
		t.Error("plain errors classify as transport")
	}
	wrapped := errors.Join(errors.New("ctx"), &FetchError{Kind: ParseError})
	if KindOf(wrapped) != ParseError {
		t.Error("wrapped FetchError kind should be found")
	}
}
