// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/gamecenter/internal/app/catalog"
	"github.com/dalemusser/gamecenter/internal/app/system/indexes"
	"github.com/dalemusser/gamecenter/internal/app/system/ratelimit"
	"github.com/dalemusser/gamecenter/internal/app/system/timeouts"
	"github.com/dalemusser/gamecenter/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB builds the back-end dependencies: the catalog client, the
// feedback limiter and, when configured, the MongoDB connection.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	configureTimeouts(appCfg, logger)

	eps := appCfg.Endpoints()
	deps := DBDeps{
		Catalog: catalog.New(catalog.Options{
			Endpoints:    eps,
			Revalidate:   appCfg.CatalogRevalidate,
			CacheEntries: appCfg.CatalogCacheEntries,
			Timeout:      timeouts.Upstream(),
			Logger:       logger.Named("catalog"),
		}),
		FeedbackLimiter: ratelimit.NewFeedbackLimiterWithConfig(appCfg.FeedbackLimit, appCfg.FeedbackWindow),
	}
	logger.Info("catalog client ready",
		zap.String("game_search_api", eps.GameSearch),
		zap.String("game_info_api", eps.GameInfo),
		zap.String("game_search_query_api", eps.GameSearchQuery),
		zap.Duration("revalidate", appCfg.CatalogRevalidate),
		zap.Duration("timeout", timeouts.Upstream()))

	if !appCfg.FeedbackStorageEnabled() {
		logger.Info("mongo_uri not set; feedback reports will use email")
		return deps, nil
	}

	connCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	opts := options.Client().ApplyURI(appCfg.MongoURI)
	if appCfg.MongoMaxPoolSize > 0 {
		opts.SetMaxPoolSize(appCfg.MongoMaxPoolSize)
	}
	client, err := mongo.Connect(connCtx, opts)
	if err != nil {
		deps.FeedbackLimiter.Close()
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		deps.FeedbackLimiter.Close()
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}

	deps.MongoClient = client
	deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return deps, nil
}

// configureTimeouts applies catalog_timeout, then the TIMEOUT_* environment
// overrides, so TIMEOUT_UPSTREAM wins over the config value.
func configureTimeouts(appCfg AppConfig, logger *zap.Logger) {
	timeouts.Configure(timeouts.Config{Upstream: appCfg.CatalogTimeout})
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}
}

// EnsureSchema sets up the feedback collection validator and indexes. It is a
// no-op without MongoDB.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	ictx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()
	if err := validators.EnsureAll(ictx, deps.MongoDatabase, logger); err != nil {
		// Validators are best-effort; indexes below are required.
		logger.Warn("ensure validators", zap.Error(err))
	}
	if err := indexes.EnsureAll(ictx, deps.MongoDatabase, logger); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	return nil
}
