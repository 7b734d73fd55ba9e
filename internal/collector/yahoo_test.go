package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FinPeek/internal/model"
)

func TestYahoo_FetchQuoteAndSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/%5EGSPC" && r.URL.Path != "/v8/finance/chart/^GSPC" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"chart":{"result":[{
			"meta":{"currency":"USD","regularMarketPrice":110,"chartPreviousClose":100,"regularMarketVolume":5000},
			"timestamp":[1,2,3,4],
			"indicators":{"quote":[{"close":[101.5,null,103.0,104.25]}]}
		}],"error":null}}`)
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "", time.Second)
	q, err := f.FetchQuote(context.Background(), "SPX")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Price != 110 || q.Change != 10 || q.ChangePercent != 10 || q.Volume != 5000 {
		t.Errorf("unexpected quote: %+v", q)
	}

	s, err := f.FetchSeries(context.Background(), "SPX", model.Hourly)
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	want := model.Series{101.5, 103.0, 104.25}
	if len(s) != len(want) {
		t.Fatalf("series = %v, want %v", s, want)
	}
	for i := range want {
		if s[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, s[i], want[i])
		}
	}
}

func TestYahoo_QuoteChangeIsAgainstPreviousSession(t *testing.T) {
	tests := []struct {
		name string
		meta string
	}{
		{"regular market previous close", `"regularMarketPreviousClose":100,"chartPreviousClose":80`},
		{"previous close", `"previousClose":100,"chartPreviousClose":80`},
		{"one-day range chart close", `"chartPreviousClose":100`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("range"); got != "1d" {
					t.Errorf("quote range = %q, want 1d", got)
				}
				fmt.Fprintf(w, `{"chart":{"result":[{"meta":{"currency":"USD","regularMarketPrice":105,%s}}],"error":null}}`, tt.meta)
			}))
			defer srv.Close()

			q, err := NewYahooFetcher(srv.URL, "", time.Second).FetchQuote(context.Background(), "AAPL")
			if err != nil {
				t.Fatalf("quote: %v", err)
			}
			if q.Change != 5 || q.ChangePercent != 5 {
				t.Errorf("change = %v (%v%%), want 5 (5%%)", q.Change, q.ChangePercent)
			}
		})
	}
}

func TestYahoo_UnknownSymbolIsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "", time.Second)
	_, err := f.FetchQuote(context.Background(), "NOPE")
	if KindOf(err) != EmptyResult {
		t.Errorf("kind = %s, want EmptyResult (err: %v)", KindOf(err), err)
	}
}

func TestYahoo_ServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, "Edge: Too Many Requests")
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "", time.Second)
	_, err := f.FetchSeries(context.Background(), "AAPL", model.Daily)
	if KindOf(err) != TransportError {
		t.Errorf("kind = %s, want TransportError (err: %v)", KindOf(err), err)
	}
}
