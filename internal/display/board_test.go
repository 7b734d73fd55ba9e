package display

import (
	"testing"
	"time"

	"FinPeek/internal/chart"
	"FinPeek/internal/model"
	"FinPeek/internal/view"
)

func TestBoard_Updates(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	b := NewBoard()
	b.Now = func() time.Time { return at }

	snap := b.Snapshot()
	if !snap.InputVisible || snap.Stock.Timeframe != model.Daily || snap.Stock.Quote != nil {
		t.Fatalf("unexpected initial snapshot: %+v", snap)
	}

	b.ShowPrompt(view.PromptText)
	if b.Snapshot().Prompt != view.PromptText {
		t.Error("prompt not shown")
	}

	vm := view.Build(model.Quote{Symbol: "AAPL", Price: 190, Change: 1})
	b.ShowQuote(PanelStock, vm, model.SourceMock)
	d, _ := chart.RenderPoints(model.Series{1, 2, 3}, 300, 150, 10, "#007AFF")
	b.ShowChart(PanelBenchmark, d, model.Series{1, 2, 3}, model.SourceLive)
	b.ShowTimeframes(model.Hourly, model.Daily)
	b.SetInputVisible(false)

	snap = b.Snapshot()
	if snap.Prompt != "" {
		t.Error("stock quote should clear the prompt")
	}
	if snap.Stock.Quote == nil || snap.Stock.Quote.PriceText != "$190.00" || snap.Stock.QuoteSource != model.SourceMock {
		t.Errorf("stock quote = %+v", snap.Stock)
	}
	if snap.Benchmark.Chart == nil || len(snap.Benchmark.Series) != 3 {
		t.Errorf("benchmark chart = %+v", snap.Benchmark)
	}
	if snap.Stock.Timeframe != model.Hourly || snap.Benchmark.Timeframe != model.Daily {
		t.Errorf("timeframes = %s/%s", snap.Stock.Timeframe, snap.Benchmark.Timeframe)
	}
	if snap.InputVisible {
		t.Error("input should be hidden")
	}
	if !snap.UpdatedAt.Equal(at) {
		t.Errorf("updated at = %v", snap.UpdatedAt)
	}

	// snapshots are copies
	snap.Benchmark.Series[0] = 999
	if b.Snapshot().Benchmark.Series[0] == 999 {
		t.Error("snapshot shares memory with the board")
	}
}
