package models

// Strategy selects which scoring profile and ticker universe a pick run uses.
type Strategy string

// Timeframe is the holding horizon a pick targets. Longer horizons scale the
// projected upside (week x2, month x4, quarter x8 relative to day).
type Timeframe string

const (
	StrategyConservative Strategy = "conservative"
	StrategyMoonshot     Strategy = "moonshot"

	TimeframeDay     Timeframe = "day"
	TimeframeWeek    Timeframe = "week"
	TimeframeMonth   Timeframe = "month"
	TimeframeQuarter Timeframe = "quarter"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyConservative || s == StrategyMoonshot
}

// Valid reports whether tf is a known timeframe.
func (tf Timeframe) Valid() bool {
	switch tf {
	case TimeframeDay, TimeframeWeek, TimeframeMonth, TimeframeQuarter:
		return true
	}
	return false
}

// UpsideMultiplier scales the raw ATR-based upside to the holding horizon.
func (tf Timeframe) UpsideMultiplier() float64 {
	switch tf {
	case TimeframeWeek:
		return 2
	case TimeframeMonth:
		return 4
	case TimeframeQuarter:
		return 8
	default:
		return 1
	}
}

// Pick is a saved recommendation: the top-scored opportunity for one
// (date, strategy, timeframe) combination, persisted so past calls can be
// reviewed after the data that produced them has rolled over.
type Pick struct {
	ID          int64     `json:"id" example:"17"`
	PickDate    string    `json:"pick_date" example:"2025-11-14"` // YYYY-MM-DD
	Ticker      string    `json:"ticker" example:"NVDA"`
	Strategy    Strategy  `json:"strategy" example:"moonshot"`
	Timeframe   Timeframe `json:"timeframe" example:"week"`
	EntryPrice  float64   `json:"entry_price" example:"489.20"`
	TargetPrice float64   `json:"target_price" example:"512.75"`
	Score       int       `json:"score" example:"75"`
	Signals     string    `json:"signals" example:"Strong Trend (ADX 31), Strong Momentum"`
}

// Opportunity is one scored candidate produced by a pick run, before any
// persistence. Sorted by Score descending in API responses.
type Opportunity struct {
	Ticker       string   `json:"ticker" example:"NVDA"`
	CurrentPrice float64  `json:"current_price" example:"489.20"`
	TargetPrice  float64  `json:"target_price" example:"512.75"`
	UpsidePct    float64  `json:"upside_pct" example:"4.81"`
	Score        int      `json:"score" example:"75"`
	Signals      []string `json:"signals" example:"Strong Momentum"`
	Volatility   float64  `json:"volatility" example:"0.042"`
	VolumeChange float64  `json:"volume_change" example:"0.31"`
	ADX          float64  `json:"adx" example:"31.2"`
	RVOL         float64  `json:"rvol" example:"1.8"`
}
