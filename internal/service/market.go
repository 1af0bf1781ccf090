package service

import (
	"context"
	"errors"

	"github.com/Lawrencium-103/finstrat/internal/analysis"
	"github.com/Lawrencium-103/finstrat/internal/domain/dto"
	"github.com/Lawrencium-103/finstrat/internal/domain/models"
	"github.com/Lawrencium-103/finstrat/internal/storage"
)

// ErrNoData marks lookups that found nothing in the store, either because the
// store is empty or because the ticker has no rows. Handlers map it to 404.
var ErrNoData = errors.New("no data found")

// MarketService defines read access to stored market data.
type MarketService interface {
	Quote(ctx context.Context, ticker string) (*dto.QuoteResponse, error)
	Candles(ctx context.Context, ticker string, limit int) ([]models.Candle, error)
	Metrics(ctx context.Context, ticker string) (*models.Metrics, error)
	Status(ctx context.Context) (*dto.StatusResponse, error)
}

type marketService struct {
	repo storage.StockRepository
}

func NewMarketService(repo storage.StockRepository) MarketService {
	return &marketService{repo: repo}
}

// Quote returns the latest stored bar for a ticker, with the change against
// the previous bar's close when one exists.
func (s *marketService) Quote(ctx context.Context, ticker string) (*dto.QuoteResponse, error) {
	candles, err := s.repo.LoadCandles(ctx, ticker, 0)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, ErrNoData
	}

	last := candles[len(candles)-1]
	resp := &dto.QuoteResponse{
		Ticker:       last.Ticker,
		Price:        last.Close,
		Timestamp:    last.Timestamp,
		Volume:       last.Volume,
		CandlesTotal: len(candles),
	}
	if len(candles) > 1 {
		prev := candles[len(candles)-2].Close
		resp.PrevClose = prev
		if prev > 0 {
			resp.ChangePct = (last.Close - prev) / prev * 100
		}
	}
	return resp, nil
}

// Candles returns a ticker's stored series in ascending order, optionally
// trimmed to the most recent limit bars.
func (s *marketService) Candles(ctx context.Context, ticker string, limit int) ([]models.Candle, error) {
	candles, err := s.repo.LoadCandles(ctx, ticker, limit)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, ErrNoData
	}
	return candles, nil
}

// Metrics computes the indicator snapshot over a ticker's full history.
// Histories too short for the indicator suite come back with the
// Insufficient flag set rather than an error.
func (s *marketService) Metrics(ctx context.Context, ticker string) (*models.Metrics, error) {
	candles, err := s.repo.LoadCandles(ctx, ticker, 0)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, ErrNoData
	}
	m := analysis.Compute(candles)
	return &m, nil
}

// Status reports what the store currently holds.
func (s *marketService) Status(ctx context.Context) (*dto.StatusResponse, error) {
	st, err := s.repo.StoreStatus(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.StatusResponse{
		HasData: st.HasData,
		Candles: st.Candles,
		Tickers: st.Tickers,
	}
	if st.HasData {
		ts := st.Latest
		resp.LastUpdated = &ts
	}
	return resp, nil
}
