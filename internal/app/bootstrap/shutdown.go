// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown waits for in-flight catalog refreshes, stops the feedback limiter
// and disconnects MongoDB.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Catalog != nil {
		deps.Catalog.Close()
	}
	if deps.FeedbackLimiter != nil {
		deps.FeedbackLimiter.Close()
	}
	if deps.MongoClient != nil {
		logger.Info("disconnecting GameCenter MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
