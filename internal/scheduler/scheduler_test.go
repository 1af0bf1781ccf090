package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Lawrencium-103/finstrat/internal/refresh"
)

type countingRunner struct {
	runs int64
	err  error
}

func (r *countingRunner) Run(context.Context) (*refresh.Result, error) {
	atomic.AddInt64(&r.runs, 1)
	if r.err != nil {
		return nil, r.err
	}
	return &refresh.Result{Refreshed: 1}, nil
}

func waitForRuns(t *testing.T, r *countingRunner, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt64(&r.runs) >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("runs=%d, want at least %d", atomic.LoadInt64(&r.runs), want)
}

func TestScheduler_RunsImmediately(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, time.Hour)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	// StartImmediately fires the first run without waiting for the interval.
	waitForRuns(t, runner, 1)
}

func TestScheduler_RepeatsOnInterval(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, 50*time.Millisecond)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	waitForRuns(t, runner, 3)
}

func TestScheduler_SkipsWhileRefreshHeld(t *testing.T) {
	runner := &countingRunner{err: refresh.ErrInProgress}
	s := New(runner, 50*time.Millisecond)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	// Skipped ticks must not wedge the scheduler; it keeps trying.
	waitForRuns(t, runner, 2)
}
