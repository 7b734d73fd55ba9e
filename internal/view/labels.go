package view

import "FinPeek/internal/model"

// PromptText is shown instead of data when the user submits a blank ticker
// and nothing has been loaded yet.
const PromptText = "Enter a ticker symbol to get started"

// TimeframeLabel is the toggle button caption.
func TimeframeLabel(tf model.Timeframe) string {
	return string(tf)
}

// SourceLabel describes where the numbers on a panel came from.
func SourceLabel(src model.FetchSource) string {
	if src == model.SourceMock {
		return "simulated"
	}
	return "live"
}
