package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lawrencium-103/finstrat/internal/domain/models"
)

func trending(ticker string, n int) []models.Candle {
	t0 := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)
	out := make([]models.Candle, n)
	for i := range out {
		p := 100 + float64(i)*0.5
		out[i] = models.Candle{
			Ticker:    ticker,
			Timestamp: t0.Add(time.Duration(i) * time.Hour),
			Open:      p, High: p + 1, Low: p - 1, Close: p,
			Volume: 1000,
		}
	}
	return out
}

func flat(ticker string, n int) []models.Candle {
	t0 := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)
	out := make([]models.Candle, n)
	for i := range out {
		out[i] = models.Candle{
			Ticker:    ticker,
			Timestamp: t0.Add(time.Duration(i) * time.Hour),
			Open:      100, High: 100, Low: 100, Close: 100,
			Volume: 1000,
		}
	}
	return out
}

func fixedNow(t *testing.T, day string) {
	t.Helper()
	ts, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	old := nowFn
	nowFn = func() time.Time { return ts }
	t.Cleanup(func() { nowFn = old })
}

func TestTopPicks_FallbackAndRecording(t *testing.T) {
	fixedNow(t, "2025-11-14")
	repo := &fakeRepo{candles: map[string][]models.Candle{
		"NVDA": trending("NVDA", 120),
		"TSLA": flat("TSLA", 60),
	}}
	svc := NewPicksService(repo, []string{"NVDA", "TSLA", "SPY"})

	resp, err := svc.TopPicks(context.Background(), models.StrategyMoonshot, models.TimeframeDay, 30)
	if err != nil {
		t.Fatalf("TopPicks: %v", err)
	}

	// Neither ticker clears 30, so the run degrades to best effort.
	if !resp.Fallback {
		t.Fatalf("expected fallback response: %+v", resp)
	}
	if len(resp.Opportunities) != 2 {
		t.Fatalf("got %d opportunities, want 2", len(resp.Opportunities))
	}
	if resp.Opportunities[0].Ticker != "NVDA" {
		t.Fatalf("best candidate should sort first: %+v", resp.Opportunities)
	}
	if resp.Opportunities[0].Score <= resp.Opportunities[1].Score {
		t.Fatalf("not sorted by score: %+v", resp.Opportunities)
	}

	// The winner still gets recorded for history.
	if len(repo.savedPicks) != 1 {
		t.Fatalf("saved %d picks, want 1", len(repo.savedPicks))
	}
	p := repo.savedPicks[0]
	if p.Ticker != "NVDA" || p.Strategy != models.StrategyMoonshot || p.Timeframe != models.TimeframeDay {
		t.Fatalf("pick=%+v", p)
	}
	if p.PickDate != "2025-11-14" {
		t.Fatalf("pick date=%q", p.PickDate)
	}
	if p.EntryPrice <= 0 || p.TargetPrice <= p.EntryPrice {
		t.Fatalf("pick prices=%+v", p)
	}
}

func TestTopPicks_CutoffFilters(t *testing.T) {
	fixedNow(t, "2025-11-14")
	repo := &fakeRepo{candles: map[string][]models.Candle{
		"NVDA": trending("NVDA", 120),
		"TSLA": flat("TSLA", 60),
	}}
	svc := NewPicksService(repo, []string{"NVDA", "TSLA"})

	resp, err := svc.TopPicks(context.Background(), models.StrategyMoonshot, models.TimeframeDay, 10)
	if err != nil {
		t.Fatalf("TopPicks: %v", err)
	}
	if resp.Fallback {
		t.Fatalf("cutoff was cleared, no fallback expected")
	}
	if len(resp.Opportunities) != 1 || resp.Opportunities[0].Ticker != "NVDA" {
		t.Fatalf("opportunities=%+v", resp.Opportunities)
	}
}

func TestTopPicks_ZeroScoreNotRecorded(t *testing.T) {
	fixedNow(t, "2025-11-14")
	repo := &fakeRepo{candles: map[string][]models.Candle{
		"TSLA": flat("TSLA", 60),
	}}
	svc := NewPicksService(repo, []string{"TSLA"})

	resp, err := svc.TopPicks(context.Background(), models.StrategyMoonshot, models.TimeframeDay, 30)
	if err != nil {
		t.Fatalf("TopPicks: %v", err)
	}
	if !resp.Fallback {
		t.Fatalf("expected fallback: %+v", resp)
	}
	if len(repo.savedPicks) != 0 {
		t.Fatalf("zero-score pick must not be recorded: %+v", repo.savedPicks)
	}
}

func TestTopPicks_EmptyUniverse(t *testing.T) {
	svc := NewPicksService(&fakeRepo{}, []string{"AAPL", "MSFT"})
	if _, err := svc.TopPicks(context.Background(), models.StrategyMoonshot, models.TimeframeDay, 30); !errors.Is(err, ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}

func TestTopPicks_EmptyStore(t *testing.T) {
	svc := NewPicksService(&fakeRepo{candles: map[string][]models.Candle{}}, []string{"NVDA"})
	if _, err := svc.TopPicks(context.Background(), models.StrategyMoonshot, models.TimeframeDay, 30); !errors.Is(err, ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}

func TestTopPicks_SaveErrorIsNotFatal(t *testing.T) {
	fixedNow(t, "2025-11-14")
	repo := &fakeRepo{
		candles: map[string][]models.Candle{"NVDA": trending("NVDA", 120)},
		saveErr: errors.New("disk full"),
	}
	svc := NewPicksService(repo, []string{"NVDA"})

	resp, err := svc.TopPicks(context.Background(), models.StrategyMoonshot, models.TimeframeDay, 10)
	if err != nil {
		t.Fatalf("history write failure must not break reads: %v", err)
	}
	if len(resp.Opportunities) != 1 {
		t.Fatalf("opportunities=%+v", resp.Opportunities)
	}
}

func TestHistory(t *testing.T) {
	want := []models.Pick{{ID: 1, Ticker: "NVDA"}}
	repo := &fakeRepo{picks: want}
	got, err := NewPicksService(repo, nil).History(context.Background(), models.TimeframeDay)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(got) != 1 || got[0].Ticker != "NVDA" {
		t.Fatalf("history=%+v", got)
	}
}
