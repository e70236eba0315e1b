package snapshots

import (
	"context"
	"fmt"
	"time"

	"github.com/qianzhu/lifeplanner/internal/logging"
)

// Scheduler warms the day's snapshot at a fixed local time so the first
// dashboard request of the morning does not pay the generation latency.
type Scheduler struct {
	service   *Service
	logger    logging.Logger
	hour, min int
}

// NewScheduler parses fetchTime in "15:04" form, e.g. "07:00".
func NewScheduler(service *Service, logger logging.Logger, fetchTime string) (*Scheduler, error) {
	at, err := time.Parse("15:04", fetchTime)
	if err != nil {
		return nil, fmt.Errorf("invalid fetch time %q: %w", fetchTime, err)
	}
	return &Scheduler{service: service, logger: logger, hour: at.Hour(), min: at.Minute()}, nil
}

// Run blocks until ctx is canceled, triggering one snapshot fetch per day.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		next := s.nextRun(time.Now())
		s.logger.Info(ctx, "next snapshot fetch scheduled", "at", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if _, err := s.service.Get(ctx); err != nil {
			s.logger.Error(ctx, "scheduled snapshot fetch failed", "error", err)
		}
	}
}

func (s *Scheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.min, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
