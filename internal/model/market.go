package model

// Quote is a snapshot of the current price and change for a symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Currency      string  `json:"currency"`
	Volume        float64 `json:"volume,omitempty"` // 0 when unknown
}

// Series holds closing prices ordered oldest to newest.
type Series []float64

// Timeframe selects whether history is sampled daily or hourly.
type Timeframe string

const (
	Daily  Timeframe = "1D"
	Hourly Timeframe = "1H"
)

// Toggle returns the other timeframe.
func (tf Timeframe) Toggle() Timeframe {
	if tf == Hourly {
		return Daily
	}
	return Hourly
}

// Points is the number of closes shown for the timeframe.
func (tf Timeframe) Points() int {
	if tf == Hourly {
		return 24
	}
	return 30
}

// FetchSource tells whether data came from the live provider or the mock generator.
type FetchSource string

const (
	SourceLive FetchSource = "live"
	SourceMock FetchSource = "mock"
)
