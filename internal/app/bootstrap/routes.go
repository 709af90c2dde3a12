// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/gamecenter/internal/app/features/errors"
	gamefeature "github.com/dalemusser/gamecenter/internal/app/features/game"
	healthfeature "github.com/dalemusser/gamecenter/internal/app/features/health"
	homefeature "github.com/dalemusser/gamecenter/internal/app/features/home"
	searchfeature "github.com/dalemusser/gamecenter/internal/app/features/search"
	feedbackstore "github.com/dalemusser/gamecenter/internal/app/store/feedback"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. GameCenter boots the template engine,
// then mounts the catalog pages (home, search, game), health, metrics and
// static assets.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	return newRouter(coreCfg.Env == "prod", appCfg, deps, logger), nil
}

// newRouter wires every route. It does not touch the template engine, so
// tests can exercise routing and middleware directly.
func newRouter(prod bool, appCfg AppConfig, deps DBDeps, logger *zap.Logger) chi.Router {
	errHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.NotFound(errHandler.NotFound)
	r.MethodNotAllowed(errHandler.MethodNotAllowed)

	// Operational endpoints: no CSRF, no templates.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Catalog.Endpoints(), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Feedback storage is optional; a nil store makes the report form fall
	// back to email.
	var feedback gamefeature.FeedbackStore
	if deps.MongoDatabase != nil {
		feedback = feedbackstore.New(deps.MongoDatabase)
	}

	homeHandler := homefeature.NewHandler(deps.Catalog, logger)
	searchHandler := searchfeature.NewHandler(deps.Catalog, logger)
	gameHandler := gamefeature.NewHandler(deps.Catalog, feedback, deps.FeedbackLimiter, logger)

	// Landing and search pages have no forms: they stay cookie-free so a CDN
	// may cache them.
	r.Mount("/", homefeature.Routes(homeHandler))
	r.Mount("/search", searchfeature.Routes(searchHandler))

	// Only the report form needs CSRF protection. Without stored feedback the
	// game page has no form and is cached like the catalog pages.
	var gameRoutes http.Handler = gamefeature.Routes(gameHandler)
	if feedback != nil {
		gameRoutes = csrfProtect(prod, appCfg.CSRFKey, logger)(gameRoutes)
	}
	r.Mount("/game", gameRoutes)

	return r
}

// csrfProtect wraps gorilla/csrf. Outside prod, plain-http requests are
// marked so local development passes the origin check.
func csrfProtect(prod bool, key string, logger *zap.Logger) func(http.Handler) http.Handler {
	protect := csrf.Protect([]byte(key),
		csrf.Secure(prod),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailed(logger))),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if prod {
			return h
		}
		return markPlaintext(h)
	}
}

// markPlaintext tells gorilla/csrf that a non-TLS request is expected, so
// local development over http:// passes the origin check.
func markPlaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS == nil {
			r = csrf.PlaintextHTTPRequest(r)
		}
		next.ServeHTTP(w, r)
	})
}

func csrfFailed(logger *zap.Logger) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("csrf check failed",
			zap.String("path", r.URL.Path),
			zap.Error(csrf.FailureReason(r)))
		errorsfeature.RenderForbidden(w, r,
			"Your form expired. Please reload the page and try again.",
			httpnav.ResolveBackURL(r, "/"))
	}
}
