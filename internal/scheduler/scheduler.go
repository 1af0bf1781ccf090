// Package scheduler drives periodic data refreshes.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/Lawrencium-103/finstrat/internal/logger"
	"github.com/Lawrencium-103/finstrat/internal/refresh"
)

// Runner is the job the scheduler fires. Satisfied by *refresh.Service.
type Runner interface {
	Run(ctx context.Context) (*refresh.Result, error)
}

// Scheduler fires the refresh job on a fixed interval, starting with an
// immediate run so a fresh deployment does not wait a full interval for
// data.
type Scheduler struct {
	sched    *gocron.Scheduler
	runner   Runner
	interval time.Duration
}

// New creates a scheduler that runs the refresh job every interval.
func New(runner Runner, interval time.Duration) *Scheduler {
	return &Scheduler{
		sched:    gocron.NewScheduler(time.UTC),
		runner:   runner,
		interval: interval,
	}
}

// Start registers the job and begins firing it asynchronously.
//
// A tick that lands while a manual refresh holds the writer lock is skipped
// and logged; the next tick picks up whatever the skipped one would have
// fetched.
func (s *Scheduler) Start(ctx context.Context) error {
	log := logger.With("scheduler")

	_, err := s.sched.Every(s.interval).StartImmediately().Do(func() {
		res, err := s.runner.Run(ctx)
		switch {
		case errors.Is(err, refresh.ErrInProgress):
			log.Warn().Msg("refresh already running, tick skipped")
		case err != nil:
			log.Error().Err(err).Msg("scheduled refresh failed")
		default:
			log.Info().
				Int("refreshed", res.Refreshed).
				Int64("rows", res.RowsInserted).
				Int("failed", len(res.Failed)).
				Msg("scheduled refresh done")
		}
	})
	if err != nil {
		return err
	}

	s.sched.StartAsync()
	log.Info().Dur("interval", s.interval).Msg("scheduler started")
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.sched.Stop()
}
