// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/gamecenter/internal/app/catalog"
	"github.com/dalemusser/gamecenter/internal/app/system/ratelimit"
	"github.com/dalemusser/gamecenter/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// csrfKeyLen is the key size gorilla/csrf expects.
const csrfKeyLen = 32

// devCSRFKey is only accepted outside prod.
const devCSRFKey = "dev-only-csrf-key-change-me-0123"

// appConfigKeys defines the configuration keys for GameCenter.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: game_info_api, mongo_uri, etc.
//   - Environment variables: GAMECENTER_GAME_INFO_API, GAMECENTER_MONGO_URI, etc.
//   - Command-line flags: --game_info_api, --mongo_uri, etc.
var appConfigKeys = []config.AppKey{
	// Catalog API
	{Name: "game_search_api", Default: catalog.DefaultGameSearchAPI, Desc: "Catalog listing endpoint"},
	{Name: "game_info_api", Default: catalog.DefaultGameInfoAPI, Desc: "Game detail endpoint"},
	{Name: "game_search_query_api", Default: catalog.DefaultGameSearchQueryAPI, Desc: "Catalog search endpoint"},
	{Name: "catalog_revalidate", Default: "1h", Desc: "How long catalog responses are reused before a background refresh (0 disables)"},
	{Name: "catalog_timeout", Default: "10s", Desc: "Timeout for one catalog API request"},
	{Name: "catalog_cache_entries", Default: catalog.DefaultCacheEntries, Desc: "Most distinct catalog URLs kept in the revalidation cache"},

	// MongoDB (feedback reports)
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (blank disables stored feedback reports)"},
	{Name: "mongo_database", Default: "gamecenter", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 20, Desc: "MongoDB max connection pool size"},

	{Name: "csrf_key", Default: devCSRFKey, Desc: "32-byte CSRF signing key (must be set in production)"},

	// Feedback
	{Name: "feedback_email", Default: models.DefaultFeedbackEmail, Desc: "Address shown for download problems"},
	{Name: "feedback_limit", Default: ratelimit.FeedbackLimit, Desc: "Feedback reports allowed per client IP per window"},
	{Name: "feedback_window", Default: "10m", Desc: "Feedback rate-limit window"},

	{Name: "site_name", Default: models.DefaultSiteName, Desc: "Site name shown in the header and titles"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, GAMECENTER_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "GAMECENTER", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		GameSearchAPI:       appValues.String("game_search_api"),
		GameInfoAPI:         appValues.String("game_info_api"),
		GameSearchQueryAPI:  appValues.String("game_search_query_api"),
		CatalogRevalidate:   appValues.Duration("catalog_revalidate", catalog.DefaultRevalidate),
		CatalogTimeout:      appValues.Duration("catalog_timeout", catalog.DefaultTimeout),
		CatalogCacheEntries: appValues.Int("catalog_cache_entries"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),

		CSRFKey: appValues.String("csrf_key"),

		FeedbackEmail:  appValues.String("feedback_email"),
		FeedbackLimit:  appValues.Int("feedback_limit"),
		FeedbackWindow: appValues.Duration("feedback_window", ratelimit.FeedbackWindow),

		SiteName: appValues.String("site_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Catalog endpoints must be absolute http(s) URLs, a configured MongoDB URI
// must parse, and production must not run with the development CSRF key.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := appCfg.Endpoints().Validate(); err != nil {
		logger.Error("invalid catalog endpoint", zap.Error(err))
		return fmt.Errorf("invalid catalog endpoint: %w", err)
	}

	if appCfg.CatalogRevalidate < 0 {
		return fmt.Errorf("catalog_revalidate must not be negative (got %s)", appCfg.CatalogRevalidate)
	}
	if appCfg.CatalogTimeout <= 0 || appCfg.CatalogTimeout > 2*time.Minute {
		return fmt.Errorf("catalog_timeout must be between 0 and 2m (got %s)", appCfg.CatalogTimeout)
	}
	if appCfg.CatalogCacheEntries < 0 {
		return fmt.Errorf("catalog_cache_entries must not be negative (got %d)", appCfg.CatalogCacheEntries)
	}

	if appCfg.FeedbackStorageEnabled() {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database is required when mongo_uri is set")
		}
	}

	if len(appCfg.CSRFKey) != csrfKeyLen {
		return fmt.Errorf("csrf_key must be exactly %d bytes (got %d)", csrfKeyLen, len(appCfg.CSRFKey))
	}
	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.CSRFKey == devCSRFKey {
		return fmt.Errorf("csrf_key must be changed from the development default in prod")
	}

	if appCfg.FeedbackLimit <= 0 || appCfg.FeedbackWindow <= 0 {
		return fmt.Errorf("feedback_limit and feedback_window must be positive")
	}

	return nil
}
