package collector

import (
	"context"

	"FinPeek/internal/model"
)

// Fetcher defines the interface for fetching quotes and price history from a live provider.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	FetchSeries(ctx context.Context, symbol string, tf model.Timeframe) (model.Series, error)
	Name() string
}
