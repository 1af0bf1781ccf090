package models

import "time"

// Metrics is the latest-bar indicator snapshot for one ticker, computed over
// its full stored candle history. A series shorter than 50 bars yields the
// zero value with Insufficient set.
//
// Indicator parameters follow the common defaults: SMA 20/50/200, RSI 14,
// MACD 12/26/9, Bollinger 20/2σ, ATR 14, ADX 14, volume SMA 20.
type Metrics struct {
	Ticker       string    `json:"ticker" example:"SPY"`
	AsOf         time.Time `json:"as_of" example:"2025-11-14T15:00:00Z"`
	Close        float64   `json:"close" example:"452.31"`
	Volume       int64     `json:"volume" example:"1203400"`
	SMA20        float64   `json:"sma_20" example:"449.80"`
	SMA50        float64   `json:"sma_50" example:"445.12"`
	SMA200       float64   `json:"sma_200" example:"431.77"`
	RSI          float64   `json:"rsi" example:"56.4"`
	MACD         float64   `json:"macd" example:"1.052"`
	MACDSignal   float64   `json:"macd_signal" example:"0.871"`
	BollLower    float64   `json:"boll_lower" example:"444.31"`
	BollUpper    float64   `json:"boll_upper" example:"455.20"`
	Volatility   float64   `json:"volatility" example:"0.024"` // Bollinger bandwidth / close
	ATR          float64   `json:"atr" example:"2.31"`
	ADX          float64   `json:"adx" example:"24.7"`
	VolSMA20     float64   `json:"vol_sma_20" example:"981200"`
	RVOL         float64   `json:"rvol" example:"1.22"`
	Insufficient bool      `json:"insufficient_data,omitempty"`
}
