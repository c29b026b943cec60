package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
)

// Runner is one full selector+dispatcher pass. The cron HTTP endpoint calls
// the same function, so racing the two triggers is safe.
type Runner interface {
	Run(ctx context.Context, now time.Time) (domain.RunSummary, error)
}

// Scheduler fires the reminder pipeline once a day at a fixed UTC wall-clock
// time.
type Scheduler struct {
	runner Runner
	hour   int
	minute int
}

func New(runner Runner, dailyRunAt string) (*Scheduler, error) {
	at, err := time.Parse("15:04", dailyRunAt)
	if err != nil {
		return nil, fmt.Errorf("invalid daily_run_at %q -> %w", dailyRunAt, err)
	}

	return &Scheduler{
		runner: runner,
		hour:   at.Hour(),
		minute: at.Minute(),
	}, nil
}

// Start blocks until ctx is cancelled; run it on its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	for {
		now := time.Now().UTC()
		next := s.nextRun(now)

		zap.L().Info("reminder run scheduled", zap.Time("next_run", next))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()

			return
		case <-timer.C:
		}

		runAt := time.Now().UTC()
		summary, err := s.runner.Run(ctx, runAt)
		if err != nil {
			// Selector failure aborts this run; the next scheduled run
			// retries with nothing left half-done.
			zap.L().Error("scheduled reminder run failed", zap.Error(err))

			continue
		}

		zap.L().Info("scheduled reminder run finished",
			zap.Int("checked", summary.Checked),
			zap.Int("results", len(summary.Results)))
	}
}

func (s *Scheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
