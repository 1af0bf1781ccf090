package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lawrencium-103/finstrat/internal/domain/models"
	"github.com/Lawrencium-103/finstrat/internal/storage"
)

type fakeRepo struct {
	candles map[string][]models.Candle
	loadErr error

	status    *storage.StoreStatus
	statusErr error

	savedPicks []models.Pick
	saveErr    error
	saveDup    bool

	picks    []models.Pick
	picksErr error
}

func (r *fakeRepo) InsertCandlesBatch(context.Context, []models.Candle) (int64, error) {
	return 0, nil
}

func (r *fakeRepo) LoadCandles(_ context.Context, ticker string, limit int) ([]models.Candle, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	c := r.candles[ticker]
	if limit > 0 && len(c) > limit {
		c = c[len(c)-limit:]
	}
	return c, nil
}

func (r *fakeRepo) LatestTimestamp(context.Context, string) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

func (r *fakeRepo) StoreStatus(context.Context) (*storage.StoreStatus, error) {
	return r.status, r.statusErr
}

func (r *fakeRepo) SavePick(_ context.Context, p models.Pick) (bool, error) {
	if r.saveErr != nil {
		return false, r.saveErr
	}
	r.savedPicks = append(r.savedPicks, p)
	return !r.saveDup, nil
}

func (r *fakeRepo) ListPicks(context.Context, models.Timeframe) ([]models.Pick, error) {
	return r.picks, r.picksErr
}

func series(ticker string, closes ...float64) []models.Candle {
	t0 := time.Date(2025, 11, 14, 10, 0, 0, 0, time.UTC)
	out := make([]models.Candle, len(closes))
	for i, c := range closes {
		out[i] = models.Candle{
			Ticker:    ticker,
			Timestamp: t0.Add(time.Duration(i) * time.Hour),
			Open:      c, High: c + 1, Low: c - 1, Close: c,
			Volume: 1000,
		}
	}
	return out
}

func TestQuote(t *testing.T) {
	repo := &fakeRepo{candles: map[string][]models.Candle{
		"SPY": series("SPY", 100, 102),
	}}
	svc := NewMarketService(repo)

	q, err := svc.Quote(context.Background(), "SPY")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Price != 102 || q.PrevClose != 100 || q.CandlesTotal != 2 {
		t.Fatalf("quote=%+v", q)
	}
	if q.ChangePct != 2 {
		t.Fatalf("change=%v, want 2", q.ChangePct)
	}
}

func TestQuote_SingleBar(t *testing.T) {
	repo := &fakeRepo{candles: map[string][]models.Candle{
		"SPY": series("SPY", 100),
	}}
	q, err := NewMarketService(repo).Quote(context.Background(), "SPY")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.PrevClose != 0 || q.ChangePct != 0 {
		t.Fatalf("single bar should have no change: %+v", q)
	}
}

func TestQuote_NoData(t *testing.T) {
	svc := NewMarketService(&fakeRepo{candles: map[string][]models.Candle{}})
	if _, err := svc.Quote(context.Background(), "SPY"); !errors.Is(err, ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}

func TestCandles(t *testing.T) {
	repo := &fakeRepo{candles: map[string][]models.Candle{
		"SPY": series("SPY", 100, 101, 102),
	}}
	svc := NewMarketService(repo)

	got, err := svc.Candles(context.Background(), "SPY", 2)
	if err != nil {
		t.Fatalf("Candles: %v", err)
	}
	if len(got) != 2 || got[1].Close != 102 {
		t.Fatalf("candles=%+v", got)
	}

	if _, err := svc.Candles(context.Background(), "QQQ", 0); !errors.Is(err, ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}

func TestMetrics_ShortHistory(t *testing.T) {
	repo := &fakeRepo{candles: map[string][]models.Candle{
		"SPY": series("SPY", 100, 101, 102),
	}}
	m, err := NewMarketService(repo).Metrics(context.Background(), "SPY")
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if !m.Insufficient {
		t.Fatalf("3 bars must be flagged insufficient: %+v", m)
	}

	if _, err := NewMarketService(repo).Metrics(context.Background(), "QQQ"); !errors.Is(err, ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	latest := time.Date(2025, 11, 14, 15, 0, 0, 0, time.UTC)
	repo := &fakeRepo{status: &storage.StoreStatus{
		Candles: 1200, Tickers: 22, Latest: latest, HasData: true,
	}}
	st, err := NewMarketService(repo).Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !st.HasData || st.Candles != 1200 || st.Tickers != 22 {
		t.Fatalf("status=%+v", st)
	}
	if st.LastUpdated == nil || !st.LastUpdated.Equal(latest) {
		t.Fatalf("last updated=%v", st.LastUpdated)
	}
}

func TestStatus_Empty(t *testing.T) {
	repo := &fakeRepo{status: &storage.StoreStatus{}}
	st, err := NewMarketService(repo).Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.HasData || st.LastUpdated != nil {
		t.Fatalf("empty store status=%+v", st)
	}
}
