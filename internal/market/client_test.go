package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lawrencium-103/finstrat/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(config.MarketConfig{
		APIKey:         "test-key",
		BaseURL:        srv.URL,
		TimeoutSeconds: 2,
	})
	return c, srv
}

const intradayBody = `{
	"Meta Data": {"2. Symbol": "SPY"},
	"Time Series (60min)": {
		"2025-11-14 11:00:00": {
			"1. open": "451.10", "2. high": "452.80", "3. low": "450.55",
			"4. close": "452.31", "5. volume": "1203400"
		},
		"2025-11-14 10:00:00": {
			"1. open": "450.00", "2. high": "451.40", "3. low": "449.90",
			"4. close": "451.12", "5. volume": "980000"
		}
	}
}`

func TestFetchIntraday_ParsesAndSorts(t *testing.T) {
	var gotQuery map[string][]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(intradayBody))
	})

	candles, err := c.FetchIntraday(context.Background(), "SPY")
	if err != nil {
		t.Fatalf("FetchIntraday: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("got %d candles, want 2", len(candles))
	}
	// Ascending order regardless of map iteration.
	if !candles[0].Timestamp.Before(candles[1].Timestamp) {
		t.Fatalf("candles not sorted: %v then %v", candles[0].Timestamp, candles[1].Timestamp)
	}
	if candles[1].Close != 452.31 || candles[1].Volume != 1203400 {
		t.Fatalf("unexpected last bar: %+v", candles[1])
	}
	// Eastern series timestamps come back normalized to UTC.
	if candles[1].Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp not UTC: %v", candles[1].Timestamp)
	}
	if candles[0].Ticker != "SPY" {
		t.Fatalf("ticker=%q", candles[0].Ticker)
	}

	for k, want := range map[string]string{
		"function":   "TIME_SERIES_INTRADAY",
		"interval":   "60min",
		"outputsize": "full",
		"symbol":     "SPY",
		"apikey":     "test-key",
	} {
		if len(gotQuery[k]) != 1 || gotQuery[k][0] != want {
			t.Fatalf("query %s=%v, want %q", k, gotQuery[k], want)
		}
	}
}

func TestFetchIntraday_EmptyConditions(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"rate limit note", `{"Note": "Thank you for using Alpha Vantage! Please slow down."}`},
		{"unknown symbol", `{"Error Message": "Invalid API call."}`},
		{"empty object", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.FetchIntraday(context.Background(), "XXXX")
			if !errors.Is(err, ErrNoData) {
				t.Fatalf("want ErrNoData, got %v", err)
			}
		})
	}
}

func TestFetchIntraday_HTTPError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.FetchIntraday(context.Background(), "SPY")
	if err == nil || errors.Is(err, ErrNoData) {
		t.Fatalf("want transport error, got %v", err)
	}
}

func TestFetchIntraday_BadPayload(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Time Series (60min)": {"not-a-time": {"1. open": "x"}}}`))
	})
	_, err := c.FetchIntraday(context.Background(), "SPY")
	if err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFetchIntraday_ContextCancel(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(intradayBody))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchIntraday(ctx, "SPY"); err == nil {
		t.Fatalf("expected context error")
	}
}
