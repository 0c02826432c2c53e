// Package cronrunner schedules the nightly pipeline and keeps job contexts
// tied to process shutdown.
package cronrunner

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner wraps a seconds-granularity cron and hands every job the process
// base context so shutdown cancels in-flight runs.
type Runner struct {
	cron    *cron.Cron
	logger  *zap.Logger
	baseCtx context.Context
}

func New(logger *zap.Logger, baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger,
		baseCtx: baseCtx,
	}
}

// Spec pins a schedule to a timezone. The pipeline anchors to local Lisbon
// time, so the spec carries the zone instead of trusting the process clock.
func Spec(timezone, schedule string) string {
	if timezone == "" {
		return schedule
	}
	return fmt.Sprintf("CRON_TZ=%s %s", timezone, schedule)
}

func (r *Runner) Add(name, spec string, job func(context.Context)) (cron.EntryID, error) {
	id, err := r.cron.AddFunc(spec, func() {
		ctx := r.baseCtx
		if ctx.Err() != nil {
			return
		}
		job(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	r.logger.Info("cron job registered", zap.String("job", name), zap.String("spec", spec))
	return id, nil
}

func (r *Runner) Start() {
	r.logger.Info("cron started")
	r.cron.Start()
}

func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("cron stopped")
}
