package daemon

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// scheduler wraps gocron for the optional periodic rebuild. Ticks feed the
// same debounced trigger channel as the filesystem watcher.
type scheduler struct {
	s gocron.Scheduler
}

func newScheduler(interval time.Duration, out chan<- string) (*scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			select {
			case out <- "schedule":
			default:
				// A trigger is already queued; the scheduled tick is
				// covered by it.
			}
		}),
		gocron.WithName("periodic-build"),
	)
	if err != nil {
		return nil, fmt.Errorf("create periodic build job: %w", err)
	}
	return &scheduler{s: s}, nil
}

func (s *scheduler) Start() {
	slog.Info("Starting periodic build schedule")
	s.s.Start()
}

func (s *scheduler) Stop() error {
	return s.s.Shutdown()
}
