// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/gamecenter/internal/app/resources"
	"github.com/dalemusser/gamecenter/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built: shared
// templates are registered and site-wide values are published to the views.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	viewdata.Init(viewdata.Site{
		Name:          appCfg.SiteName,
		FeedbackEmail: appCfg.FeedbackEmail,
	})
	logger.Info("startup complete",
		zap.String("site_name", viewdata.CurrentSite().Name),
		zap.Bool("feedback_storage", deps.MongoDatabase != nil))
	return nil
}
