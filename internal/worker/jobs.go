package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/dailydle/internal/daykey"
	"github.com/vytor/dailydle/internal/logger"
	"github.com/vytor/dailydle/internal/models"
)

// TargetSource resolves and records the target for a day.
// This avoids import cycles by not importing the services package
type TargetSource interface {
	Target(ctx context.Context, day daykey.Key) (models.Monster, error)
}

// TargetWarmJob makes sure today's target is picked and recorded before the
// first player asks for it.
type TargetWarmJob struct {
	Targets TargetSource
	Days    *daykey.Resolver
}

func (j *TargetWarmJob) Name() string { return "warm_target" }

func (j *TargetWarmJob) Run(ctx context.Context) error {
	day := j.Days.Today()
	m, err := j.Targets.Target(ctx, day)
	if err != nil {
		return fmt.Errorf("warm target for %s: %w", day, err)
	}
	logger.FromContext(ctx).Debug("target ready: day=%s, id=%d", day, m.ID)
	return nil
}

// Schedule submits a job from newJob immediately and then every interval
// until ctx is done. Ticks that find the queue full are skipped.
func Schedule(ctx context.Context, pool *Pool, interval time.Duration, newJob func() Job) {
	log := logger.Default().WithPrefix("scheduler")
	if interval <= 0 {
		log.Warn("non-positive interval %v, scheduling disabled", interval)
		return
	}

	pool.Submit(newJob())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug("scheduler stopped")
			return
		case <-ticker.C:
			pool.Submit(newJob())
		}
	}
}
