// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	sessionstore "github.com/devcollab/devcollab/internal/app/store/sessions"
	"github.com/devcollab/devcollab/internal/app/system/tasks"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// DevCollab launches the background job runner here.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	sessions := sessionstore.New(deps.MongoDatabase)
	runner := tasks.NewRunner(logger,
		tasks.ExpiredSessionCleanupJob(sessions, logger))
	runner.Start(ctx)
	return nil
}
