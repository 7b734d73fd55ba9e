package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"FinPeek/internal/model"

	"github.com/go-resty/resty/v2"
)

// YahooFetcher implements Fetcher using Yahoo Finance's public chart API.
// It needs no API key.
type YahooFetcher struct {
	Client    *resty.Client
	SymbolMap map[string]string // maps dashboard symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(baseURL, proxyURL string, timeout time.Duration) *YahooFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{
		Client: client,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency                   string  `json:"currency"`
				RegularMarketPrice         float64 `json:"regularMarketPrice"`
				RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
				PreviousClose              float64 `json:"previousClose"`
				ChartPreviousClose         float64 `json:"chartPreviousClose"`
				RegularMarketVol           float64 `json:"regularMarketVolume"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) fetchChart(ctx context.Context, op, symbol, interval, rng string) (*yahooChart, error) {
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"interval": interval, "range": rng}).
		Get("/v8/finance/chart/" + url.PathEscape(f.yahooSymbol(symbol)))
	if err != nil {
		return nil, transportErr(op, symbol, err)
	}

	var chart yahooChart
	decodeErr := json.Unmarshal(resp.Body(), &chart)
	// Yahoo answers unknown symbols with 404 and a JSON error body.
	if decodeErr == nil && chart.Chart.Error != nil {
		return nil, emptyErr(op, symbol, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description))
	}
	if !resp.IsSuccess() {
		return nil, transportErr(op, symbol, fmt.Errorf("status %d", resp.StatusCode()))
	}
	if decodeErr != nil {
		return nil, parseErr(op, symbol, fmt.Errorf("yahoo decode: %w", decodeErr))
	}
	if len(chart.Chart.Result) == 0 {
		return nil, emptyErr(op, symbol, errors.New("yahoo: no data returned"))
	}
	return &chart, nil
}

func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	const op = "fetch quote"
	chart, err := f.fetchChart(ctx, op, symbol, "1d", "1d")
	if err != nil {
		return nil, err
	}
	meta := chart.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return nil, parseErr(op, symbol, fmt.Errorf("non-positive price %v", meta.RegularMarketPrice))
	}

	q := &model.Quote{
		Symbol:   symbol,
		Price:    meta.RegularMarketPrice,
		Currency: meta.Currency,
		Volume:   meta.RegularMarketVol,
	}
	if q.Currency == "" {
		q.Currency = "USD"
	}
	if prev := previousClose(meta.RegularMarketPreviousClose, meta.PreviousClose, meta.ChartPreviousClose); prev > 0 {
		q.Change = q.Price - prev
		q.ChangePercent = q.Change / prev * 100
	}
	return q, nil
}

// previousClose returns the first positive candidate. chartPreviousClose is
// the close before the requested range, so it is only the prior session's
// close when the range is one day.
func previousClose(candidates ...float64) float64 {
	for _, c := range candidates {
		if c > 0 {
			return c
		}
	}
	return 0
}

func (f *YahooFetcher) FetchSeries(ctx context.Context, symbol string, tf model.Timeframe) (model.Series, error) {
	const op = "fetch series"
	interval, rng := "1d", "3mo"
	if tf == model.Hourly {
		interval, rng = "60m", "5d"
	}
	chart, err := f.fetchChart(ctx, op, symbol, interval, rng)
	if err != nil {
		return nil, err
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, emptyErr(op, symbol, errors.New("yahoo: no quote indicators"))
	}
	series := make(model.Series, 0, len(result.Indicators.Quote[0].Close))
	for _, c := range result.Indicators.Quote[0].Close {
		if c == nil || *c == 0 {
			continue // null bars (holidays, halted sessions)
		}
		series = append(series, *c)
	}
	if len(series) == 0 {
		return nil, emptyErr(op, symbol, errors.New("yahoo: no closes"))
	}
	if n := tf.Points(); len(series) > n {
		series = series[len(series)-n:]
	}
	return series, nil
}
