// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/attendhub/internal/app/system/apiclient"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the attendance API client. Nothing is dialed here; the
// first request opens the connection.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	client, err := apiclient.New(appCfg.APIBaseURL,
		apiclient.WithTimeout(appCfg.APITimeout),
		apiclient.WithLogger(logger.Named("api")),
		apiclient.WithUserAgent("attendhub"),
	)
	if err != nil {
		return DBDeps{}, fmt.Errorf("build api client: %w", err)
	}
	logger.Info("attendance API client ready",
		zap.String("base_url", client.BaseURL()),
		zap.Duration("timeout", appCfg.APITimeout))
	return DBDeps{API: client}, nil
}

// EnsureSchema has no schema to create. It probes the API once so a wrong
// base URL shows up in the startup log; an unreachable API does not stop
// the console from starting.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.API == nil {
		return nil
	}
	pctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := deps.API.Ping(pctx); err != nil {
		logger.Warn("attendance API not reachable at startup",
			zap.String("base_url", deps.API.BaseURL()), zap.Error(err))
	}
	return nil
}
