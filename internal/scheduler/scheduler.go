// Package scheduler keeps the cached priority analysis warm by
// recomputing it on a cron schedule. The engine is cheap, so a periodic
// refresh keeps dashboard reads hot without an invalidation protocol
// between the catalog writers and this service.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/shopexio/backend-go/internal/service"
)

const refreshTimeout = 30 * time.Second

type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// AddRefreshJob schedules a periodic recompute of the priority analysis.
// spec accepts standard cron expressions and @every durations.
func (s *Scheduler) AddRefreshJob(spec string, priority *service.PriorityService) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if err := priority.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("scheduled priority refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
