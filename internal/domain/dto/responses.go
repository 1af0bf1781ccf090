package dto

import (
	"time"

	"github.com/Lawrencium-103/finstrat/internal/domain/models"
)

// QuoteResponse is returned by GET /api/v1/quote/{ticker}: the latest stored
// bar plus the change against the previous bar's close.
type QuoteResponse struct {
	Ticker       string    `json:"ticker" example:"SPY"`
	Price        float64   `json:"price" example:"452.31"`
	Timestamp    time.Time `json:"timestamp" example:"2025-11-14T15:00:00Z"`
	Volume       int64     `json:"volume" example:"1203400"`
	ChangePct    float64   `json:"change_pct" example:"0.42"`
	PrevClose    float64   `json:"prev_close" example:"450.41"`
	CandlesTotal int       `json:"candles_total" example:"1742"`
}

// PicksResponse wraps a pick run: the scored candidates plus the run inputs.
//
// Fallback indicates that nothing met the minimum score and the list shows
// best-effort candidates scored above zero instead.
type PicksResponse struct {
	Strategy      models.Strategy      `json:"strategy" example:"conservative"`
	Timeframe     models.Timeframe     `json:"timeframe" example:"day"`
	Fallback      bool                 `json:"fallback,omitempty"`
	Opportunities []models.Opportunity `json:"opportunities"`
}

// RefreshResponse summarizes a manual refresh run.
type RefreshResponse struct {
	Refreshed    int               `json:"refreshed" example:"21"`
	RowsInserted int64             `json:"rows_inserted" example:"504"`
	Failed       map[string]string `json:"failed,omitempty"`
	DurationMS   int64             `json:"duration_ms" example:"8412"`
}

// StatusResponse reports how fresh the local store is. When the store is
// empty, HasData is false and the timestamp is omitted.
type StatusResponse struct {
	HasData     bool       `json:"has_data" example:"true"`
	LastUpdated *time.Time `json:"last_updated,omitempty" example:"2025-11-14T15:00:00Z"`
	Candles     int64      `json:"candles" example:"38124"`
	Tickers     int64      `json:"tickers" example:"22"`
}
