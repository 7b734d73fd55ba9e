package display

import (
	"FinPeek/internal/chart"
	"FinPeek/internal/model"
	"FinPeek/internal/view"
)

// Panel identifies one of the two dashboard panels.
type Panel string

const (
	PanelStock     Panel = "stock"
	PanelBenchmark Panel = "benchmark"
)

// Display receives computed view state. Implementations must be safe for
// concurrent use.
type Display interface {
	ShowQuote(panel Panel, vm view.ViewModel, src model.FetchSource)
	ShowChart(panel Panel, d chart.DrawingInstructions, series model.Series, src model.FetchSource)
	ShowTimeframes(stock, benchmark model.Timeframe)
	ShowPrompt(msg string)
	SetInputVisible(visible bool)
}
