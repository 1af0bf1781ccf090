package models

import "time"

// Candle is one hourly OHLCV bar for a ticker, matching one row of the
// candles table. The (Ticker, Timestamp) pair is the primary key: refreshes
// append bars newer than the stored maximum and never rewrite history.
type Candle struct {
	Ticker    string    `json:"ticker" example:"SPY"`
	Timestamp time.Time `json:"timestamp" example:"2025-11-14T15:00:00Z"`
	Open      float64   `json:"open" example:"451.10"`
	High      float64   `json:"high" example:"452.80"`
	Low       float64   `json:"low" example:"450.55"`
	Close     float64   `json:"close" example:"452.31"`
	Volume    int64     `json:"volume" example:"1203400"`
}
