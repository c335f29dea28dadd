// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	shared "github.com/dalemusser/attendhub/internal/app/features/shared/views"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the back end is
// set up but before the HTTP handler is built: it registers the shared
// layout templates and applies timeout overrides from the environment.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	shared.LoadSharedTemplates()

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts overridden from environment",
			zap.Duration("ping", cur.Ping),
			zap.Duration("short", cur.Short),
			zap.Duration("medium", cur.Medium),
			zap.Duration("long", cur.Long))
	}
	return nil
}
