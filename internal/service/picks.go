package service

import (
	"context"
	"sort"
	"time"

	"github.com/Lawrencium-103/finstrat/internal/analysis"
	"github.com/Lawrencium-103/finstrat/internal/domain/dto"
	"github.com/Lawrencium-103/finstrat/internal/domain/models"
	"github.com/Lawrencium-103/finstrat/internal/logger"
	"github.com/Lawrencium-103/finstrat/internal/storage"
)

// nowFn is an indirection for the pick-date clock; tests can override this.
var nowFn = time.Now

// PicksService scores the configured universe and tracks past picks.
type PicksService interface {
	TopPicks(ctx context.Context, strategy models.Strategy, timeframe models.Timeframe, minScore int) (*dto.PicksResponse, error)
	History(ctx context.Context, timeframe models.Timeframe) ([]models.Pick, error)
}

type picksService struct {
	repo    storage.StockRepository
	tickers []string
}

func NewPicksService(repo storage.StockRepository, tickers []string) PicksService {
	return &picksService{repo: repo, tickers: tickers}
}

// TopPicks scores every eligible ticker for the strategy and returns the
// candidates at or above minScore, best first.
//
// When nothing clears the cutoff the threshold falls back to zero so the
// response still shows the best available candidates, flagged as a fallback.
// The winning candidate is recorded in pick history, once per day per
// strategy and timeframe.
func (s *picksService) TopPicks(ctx context.Context, strategy models.Strategy, timeframe models.Timeframe, minScore int) (*dto.PicksResponse, error) {
	log := logger.With("picks")

	universe := analysis.FilterUniverse(s.tickers, strategy)
	if len(universe) == 0 {
		return nil, ErrNoData
	}

	all := make([]models.Opportunity, 0, len(universe))
	for _, ticker := range universe {
		candles, err := s.repo.LoadCandles(ctx, ticker, 0)
		if err != nil {
			return nil, err
		}
		if len(candles) == 0 {
			continue
		}
		m := analysis.Compute(candles)
		opp, _ := analysis.BuildOpportunity(m, strategy, timeframe)
		all = append(all, opp)
	}
	if len(all) == 0 {
		return nil, ErrNoData
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].UpsidePct > all[j].UpsidePct
	})

	picked := keepAbove(all, minScore)
	fallback := false
	if len(picked) == 0 {
		// Nothing cleared the bar; show best-effort candidates instead of
		// an empty list.
		picked = all
		fallback = true
	}

	if top := picked[0]; top.Score > 0 {
		pick := models.Pick{
			PickDate:    nowFn().UTC().Format("2006-01-02"),
			Ticker:      top.Ticker,
			Strategy:    strategy,
			Timeframe:   timeframe,
			EntryPrice:  top.CurrentPrice,
			TargetPrice: top.TargetPrice,
			Score:       top.Score,
			Signals:     analysis.SignalsText(top.Signals),
		}
		if saved, err := s.repo.SavePick(ctx, pick); err != nil {
			// History is best effort; a failed write must not break the read.
			log.Error().Str("ticker", top.Ticker).Err(err).Msg("record pick failed")
		} else if saved {
			log.Info().Str("ticker", top.Ticker).Int("score", top.Score).Str("strategy", string(strategy)).Msg("pick recorded")
		}
	}

	return &dto.PicksResponse{
		Strategy:      strategy,
		Timeframe:     timeframe,
		Fallback:      fallback,
		Opportunities: picked,
	}, nil
}

// History lists recorded picks, optionally filtered by timeframe.
func (s *picksService) History(ctx context.Context, timeframe models.Timeframe) ([]models.Pick, error) {
	return s.repo.ListPicks(ctx, timeframe)
}

func keepAbove(opps []models.Opportunity, minScore int) []models.Opportunity {
	out := make([]models.Opportunity, 0, len(opps))
	for _, o := range opps {
		if o.Score >= minScore {
			out = append(out, o)
		}
	}
	return out
}
