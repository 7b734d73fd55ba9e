package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"FinPeek/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
)

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage query API.
type AlphaVantageFetcher struct {
	APIKey string
	Client *resty.Client

	// series responses change slowly; cached to stay inside the provider's rate limit
	seriesCache *cache.Cache
}

// NewAlphaVantageFetcher creates a fetcher with optional proxy support.
// A zero cacheTTL disables the series cache.
func NewAlphaVantageFetcher(baseURL, apiKey, proxyURL string, timeout, cacheTTL time.Duration) *AlphaVantageFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	f := &AlphaVantageFetcher{APIKey: apiKey, Client: client}
	if cacheTTL > 0 {
		f.seriesCache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return f
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

func (f *AlphaVantageFetcher) query(ctx context.Context, op, symbol string, params map[string]string) (map[string]json.RawMessage, error) {
	params["symbol"] = symbol
	params["apikey"] = f.APIKey

	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/query")
	if err != nil {
		return nil, transportErr(op, symbol, err)
	}
	if !resp.IsSuccess() {
		return nil, transportErr(op, symbol, fmt.Errorf("status %d", resp.StatusCode()))
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, parseErr(op, symbol, fmt.Errorf("decode body: %w", err))
	}
	return payload, nil
}

// providerNotice extracts the message Alpha Vantage sends instead of data
// when rate-limited or given an unknown symbol.
func providerNotice(payload map[string]json.RawMessage) error {
	for _, k := range []string{"Note", "Information", "Error Message"} {
		if raw, ok := payload[k]; ok {
			var msg string
			if err := json.Unmarshal(raw, &msg); err != nil {
				msg = string(raw)
			}
			return fmt.Errorf("%s: %s", strings.ToLower(k), msg)
		}
	}
	return errors.New("no data returned")
}

func (f *AlphaVantageFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	const op = "fetch quote"
	payload, err := f.query(ctx, op, symbol, map[string]string{"function": "GLOBAL_QUOTE"})
	if err != nil {
		return nil, err
	}

	raw, ok := payload["Global Quote"]
	if !ok {
		return nil, emptyErr(op, symbol, providerNotice(payload))
	}
	var gq map[string]string
	if err := json.Unmarshal(raw, &gq); err != nil {
		return nil, parseErr(op, symbol, fmt.Errorf("decode global quote: %w", err))
	}
	if len(gq) == 0 {
		return nil, emptyErr(op, symbol, errors.New("empty global quote"))
	}

	price, err := floatField(gq, "05. price")
	if err != nil {
		return nil, parseErr(op, symbol, err)
	}
	if price <= 0 {
		return nil, parseErr(op, symbol, fmt.Errorf("non-positive price %v", price))
	}
	change, err := floatField(gq, "09. change")
	if err != nil {
		return nil, parseErr(op, symbol, err)
	}
	changePercent, err := percentField(gq, "10. change percent")
	if err != nil {
		return nil, parseErr(op, symbol, err)
	}
	volume, _ := floatField(gq, "06. volume")

	return &model.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Currency:      "USD",
		Volume:        volume,
	}, nil
}

func floatField(fields map[string]string, key string) (float64, error) {
	v, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return n, nil
}

// percentField parses values like "1.2345%".
func percentField(fields map[string]string, key string) (float64, error) {
	v, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	return floatField(map[string]string{key: strings.TrimSuffix(strings.TrimSpace(v), "%")}, key)
}

type avBar struct {
	Close string `json:"4. close"`
}

func (f *AlphaVantageFetcher) FetchSeries(ctx context.Context, symbol string, tf model.Timeframe) (model.Series, error) {
	const op = "fetch series"
	cacheKey := symbol + "|" + string(tf)
	if f.seriesCache != nil {
		if v, ok := f.seriesCache.Get(cacheKey); ok {
			return append(model.Series(nil), v.(model.Series)...), nil
		}
	}

	params := map[string]string{"function": "TIME_SERIES_DAILY", "outputsize": "compact"}
	seriesKey := "Time Series (Daily)"
	if tf == model.Hourly {
		params["function"] = "TIME_SERIES_INTRADAY"
		params["interval"] = "60min"
		seriesKey = "Time Series (60min)"
	}

	payload, err := f.query(ctx, op, symbol, params)
	if err != nil {
		return nil, err
	}
	raw, ok := payload[seriesKey]
	if !ok {
		return nil, emptyErr(op, symbol, providerNotice(payload))
	}
	var bars map[string]avBar
	if err := json.Unmarshal(raw, &bars); err != nil {
		return nil, parseErr(op, symbol, fmt.Errorf("decode %s: %w", seriesKey, err))
	}
	if len(bars) == 0 {
		return nil, emptyErr(op, symbol, errors.New("empty time series"))
	}

	// Timestamps sort lexically; keep the newest N and return them oldest first.
	stamps := make([]string, 0, len(bars))
	for ts := range bars {
		stamps = append(stamps, ts)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(stamps)))
	if n := tf.Points(); len(stamps) > n {
		stamps = stamps[:n]
	}

	series := make(model.Series, 0, len(stamps))
	for i := len(stamps) - 1; i >= 0; i-- {
		c, err := strconv.ParseFloat(strings.TrimSpace(bars[stamps[i]].Close), 64)
		if err != nil {
			return nil, parseErr(op, symbol, fmt.Errorf("close at %s: %w", stamps[i], err))
		}
		series = append(series, c)
	}

	if f.seriesCache != nil {
		f.seriesCache.SetDefault(cacheKey, append(model.Series(nil), series...))
	}
	return series, nil
}
