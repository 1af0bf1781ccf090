// Package market fetches OHLCV candles from the Alpha Vantage HTTP API.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/Lawrencium-103/finstrat/config"
	"github.com/Lawrencium-103/finstrat/internal/domain/models"
)

// ErrNoData means the provider answered but returned no usable series:
// unknown symbol, or a rate-limit note instead of data. Callers treat it
// differently from transport errors because retrying immediately won't help.
var ErrNoData = errors.New("no data returned by provider")

// seriesTimeLayout is the timestamp format inside the intraday series,
// expressed in the exchange's local time.
const seriesTimeLayout = "2006-01-02 15:04:05"

// Client is an Alpha Vantage intraday quotes client.
//
// It is safe for concurrent use; the refresh job fans out per-ticker fetches
// through a single Client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	loc        *time.Location
}

// NewClient builds a Client from configuration. The per-request timeout on
// the embedded http.Client is the fetch timeout policy for the whole system.
func NewClient(cfg config.MarketConfig) *Client {
	// Intraday timestamps are quoted in the US exchange timezone.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		loc:        loc,
	}
}

// intradayPayload mirrors the provider's response envelope. The series is
// keyed by timestamp strings and every numeric field arrives as a string.
type intradayPayload struct {
	Series  map[string]seriesBar `json:"Time Series (60min)"`
	Note    string               `json:"Note"`
	Message string               `json:"Error Message"`
}

type seriesBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// FetchIntraday fetches the hourly candle series for one ticker, sorted by
// timestamp ascending with timestamps normalized to UTC.
//
// Errors:
//   - transport/HTTP/decoding problems are returned as-is (wrapped);
//   - an empty series, an unknown-symbol message, or a rate-limit note
//     returns ErrNoData.
func (c *Client) FetchIntraday(ctx context.Context, ticker string) ([]models.Candle, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_INTRADAY")
	q.Set("interval", "60min")
	q.Set("outputsize", "full")
	q.Set("symbol", ticker)
	q.Set("apikey", c.apiKey)

	endpoint := c.baseURL + "/query?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", ticker, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var payload intradayPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response for %s: %w", ticker, err)
	}

	if len(payload.Series) == 0 {
		// The provider reports rate limiting and bad symbols inside a 200
		// response, so both collapse to the same empty-series condition.
		if payload.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoData, payload.Message)
		}
		if payload.Note != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoData, payload.Note)
		}
		return nil, ErrNoData
	}

	candles := make([]models.Candle, 0, len(payload.Series))
	for stamp, bar := range payload.Series {
		ts, err := time.ParseInLocation(seriesTimeLayout, stamp, c.loc)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q for %s: %w", stamp, ticker, err)
		}
		c2, err := bar.toCandle(ticker, ts.UTC())
		if err != nil {
			return nil, fmt.Errorf("invalid bar %q for %s: %w", stamp, ticker, err)
		}
		candles = append(candles, c2)
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})
	return candles, nil
}

// toCandle converts the provider's all-strings bar to a typed candle.
func (b seriesBar) toCandle(ticker string, ts time.Time) (models.Candle, error) {
	var (
		c   = models.Candle{Ticker: ticker, Timestamp: ts}
		err error
	)
	if c.Open, err = strconv.ParseFloat(b.Open, 64); err != nil {
		return c, fmt.Errorf("open: %w", err)
	}
	if c.High, err = strconv.ParseFloat(b.High, 64); err != nil {
		return c, fmt.Errorf("high: %w", err)
	}
	if c.Low, err = strconv.ParseFloat(b.Low, 64); err != nil {
		return c, fmt.Errorf("low: %w", err)
	}
	if c.Close, err = strconv.ParseFloat(b.Close, 64); err != nil {
		return c, fmt.Errorf("close: %w", err)
	}
	if c.Volume, err = strconv.ParseInt(b.Volume, 10, 64); err != nil {
		return c, fmt.Errorf("volume: %w", err)
	}
	return c, nil
}
