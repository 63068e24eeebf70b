package leaderboard

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/feral-file/claim-ledger/internal/logger"
)

// DEFAULT_REFRESH_SCHEDULE recomputes the first pages every 30 seconds
const DEFAULT_REFRESH_SCHEDULE = "*/30 * * * * *"

// Refresher periodically recomputes the first page of the all-time and the
// current-week leaderboards so a stale fallback is available after a store outage
type Refresher struct {
	projection Projection
	schedule   string
	cron       *cron.Cron
}

// NewRefresher creates a refresher for the given cron schedule (with seconds field)
func NewRefresher(projection Projection, schedule string) *Refresher {
	if schedule == "" {
		schedule = DEFAULT_REFRESH_SCHEDULE
	}
	return &Refresher{
		projection: projection,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
	}
}

// Start warms the cache once and schedules the periodic refresh
func (r *Refresher) Start(ctx context.Context) error {
	r.Refresh(ctx)

	if _, err := r.cron.AddFunc(r.schedule, func() { r.Refresh(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule leaderboard refresh: %w", err)
	}
	r.cron.Start()

	logger.InfoCtx(ctx, "Leaderboard refresher started", zap.String("schedule", r.schedule))
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

// Refresh recomputes the default pages; failures are logged and retried on the next tick
func (r *Refresher) Refresh(ctx context.Context) {
	queries := []Query{
		{},
		{PeriodKey: r.projection.CurrentPeriodKey()},
	}
	for _, q := range queries {
		lb, err := r.projection.GetLeaderboard(ctx, q)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to refresh leaderboard", zap.Error(err), zap.String("period_key", q.PeriodKey))
			continue
		}
		if lb.Stale {
			logger.WarnCtx(ctx, "Leaderboard refresh served stale data", zap.String("period_key", q.PeriodKey))
		}
	}
}
