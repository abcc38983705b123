// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	sessionstore "github.com/devcollab/devcollab/internal/app/store/sessions"
	"go.uber.org/zap"
)

// ExpiredSessionCleanupJob creates a job that deletes sessions past
// their expiry. The TTL index does this too; the job is a backup for
// when Mongo's TTL sweep lags.
func ExpiredSessionCleanupJob(sessions *sessionstore.Store, logger *zap.Logger) Job {
	return Job{
		Name:     "expired-session-cleanup",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			count, err := sessions.DeleteExpired(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("deleted expired sessions", zap.Int64("count", count))
			}
			return nil
		},
	}
}
