// internal/app/system/tasks/tasks.go
package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Job is a named periodic background task.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner drives a set of jobs on their intervals until the context is
// canceled.
type Runner struct {
	jobs []Job
	log  *zap.Logger
}

func NewRunner(logger *zap.Logger, jobs ...Job) *Runner {
	return &Runner{jobs: jobs, log: logger}
}

// Start launches one goroutine per job. Each job runs once immediately,
// then on its interval. Job errors are logged, never fatal.
func (r *Runner) Start(ctx context.Context) {
	for _, job := range r.jobs {
		go r.loop(ctx, job)
	}
}

func (r *Runner) loop(ctx context.Context, job Job) {
	run := func() {
		if err := job.Run(ctx); err != nil {
			r.log.Warn("background job failed",
				zap.String("job", job.Name),
				zap.Error(err))
		}
	}

	run()
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Info("background job stopped", zap.String("job", job.Name))
			return
		case <-ticker.C:
			run()
		}
	}
}
