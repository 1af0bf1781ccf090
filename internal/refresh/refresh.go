// Package refresh implements the data-refresh job: fetch the latest hourly
// bars for the configured tickers and append the new rows to the local store.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Lawrencium-103/finstrat/config"
	"github.com/Lawrencium-103/finstrat/internal/domain/models"
	"github.com/Lawrencium-103/finstrat/internal/logger"
	"github.com/Lawrencium-103/finstrat/internal/storage"
)

// ErrInProgress is returned when a refresh is requested while another run
// holds the writer lock. Callers surface it instead of queueing.
var ErrInProgress = errors.New("refresh already in progress")

// ErrAllFailed is returned when every configured ticker failed; partial
// failures are reported in Result.Failed without failing the run.
var ErrAllFailed = errors.New("all tickers failed to refresh")

const maxParallel = 8

// Fetcher pulls the hourly candle series for one ticker from the market data
// provider.
type Fetcher interface {
	FetchIntraday(ctx context.Context, ticker string) ([]models.Candle, error)
}

// Result summarizes one refresh run.
type Result struct {
	Refreshed    int               `json:"refreshed"`
	RowsInserted int64             `json:"rows_inserted"`
	Failed       map[string]string `json:"failed,omitempty"`
	Duration     time.Duration     `json:"-"`
}

// Service runs refreshes against a single local store. The mutex makes it a
// single-writer job: concurrent triggers (scheduler tick vs. manual request)
// are rejected, never queued.
type Service struct {
	repo    storage.StockRepository
	fetcher Fetcher
	cfg     config.RefreshConfig

	mu sync.Mutex
}

// NewService creates a refresh service over the given store and fetcher.
func NewService(repo storage.StockRepository, fetcher Fetcher, cfg config.RefreshConfig) *Service {
	return &Service{repo: repo, fetcher: fetcher, cfg: cfg}
}

// InProgress reports whether a run currently holds the writer lock.
func (s *Service) InProgress() bool {
	if s.mu.TryLock() {
		s.mu.Unlock()
		return false
	}
	return true
}

// Run refreshes all configured tickers and reports what changed.
//
// Tickers are fetched concurrently, but each ticker's rows are appended in a
// single transaction, so a mid-run failure never leaves a ticker half
// written. A ticker that fails is recorded in Result.Failed and the run
// continues; only a run where every ticker fails returns ErrAllFailed.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if !s.mu.TryLock() {
		return nil, ErrInProgress
	}
	defer s.mu.Unlock()

	log := logger.With("refresh")
	start := time.Now()

	tickers := s.cfg.Tickers
	if len(tickers) == 0 {
		return &Result{Failed: map[string]string{}, Duration: time.Since(start)}, nil
	}

	parallel := s.cfg.Parallel
	if parallel < 1 {
		parallel = 1
	}
	if parallel > maxParallel {
		parallel = maxParallel
	}

	log.Info().Int("tickers", len(tickers)).Int("parallel", parallel).Msg("refresh start")

	var (
		resMu    sync.Mutex
		rows     int64
		ok       int
		failures = map[string]string{}
	)

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, parallel)

	for _, ticker := range tickers {
		t := ticker
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()

			n, err := s.refreshTicker(gctx, t)

			resMu.Lock()
			defer resMu.Unlock()
			if err != nil {
				log.Error().Str("ticker", t).Err(err).Msg("ticker refresh failed")
				failures[t] = err.Error()
				// Record the failure and keep siblings running; only a
				// canceled context stops the run.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				return nil
			}
			rows += n
			ok++
			log.Info().Str("ticker", t).Int64("rows", n).Msg("ticker refreshed")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Refreshed:    ok,
		RowsInserted: rows,
		Failed:       failures,
		Duration:     time.Since(start),
	}

	if ok == 0 && len(failures) > 0 {
		log.Error().Int("failed", len(failures)).Msg("refresh produced no data")
		return res, ErrAllFailed
	}

	log.Info().
		Int("refreshed", ok).
		Int("failed", len(failures)).
		Int64("rows", rows).
		Dur("took", res.Duration).
		Msg("refresh done")
	return res, nil
}

// refreshTicker fetches one ticker's series and appends the rows newer than
// what the store already holds.
func (s *Service) refreshTicker(ctx context.Context, ticker string) (int64, error) {
	candles, err := s.fetcher.FetchIntraday(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", ticker, err)
	}

	latest, has, err := s.repo.LatestTimestamp(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("latest timestamp %s: %w", ticker, err)
	}
	if has {
		fresh := candles[:0:0]
		for _, c := range candles {
			if c.Timestamp.After(latest) {
				fresh = append(fresh, c)
			}
		}
		candles = fresh
	}
	if len(candles) == 0 {
		return 0, nil
	}

	n, err := s.repo.InsertCandlesBatch(ctx, candles)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", ticker, err)
	}
	return n, nil
}
