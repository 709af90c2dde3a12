package game

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	uierrors "github.com/dalemusser/gamecenter/internal/app/features/errors"
	"github.com/dalemusser/gamecenter/internal/app/features/shared"
	feedbackstore "github.com/dalemusser/gamecenter/internal/app/store/feedback"
	"github.com/dalemusser/gamecenter/internal/app/system/navigation"
	"github.com/dalemusser/gamecenter/internal/app/system/ratelimit"
	"github.com/dalemusser/gamecenter/internal/app/system/timeouts"
	"github.com/dalemusser/gamecenter/internal/app/system/viewdata"
	"github.com/dalemusser/gamecenter/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Catalog loads the record behind a game page.
type Catalog interface {
	FetchGameDetails(ctx context.Context, id string) *models.GameDetails
}

// FeedbackStore persists link-problem reports.
type FeedbackStore interface {
	CreateFrom(ctx context.Context, r *http.Request, game *models.GameDetails, reporter, message, contact string) (models.FeedbackReport, error)
	GetByRef(ctx context.Context, ref string) (models.FeedbackReport, error)
}

// PageCacheControl is sent with game pages that carry the report form. The
// form holds a per-visitor CSRF token, so those pages must not be shared.
const PageCacheControl = "private, no-store"

// Handler serves game pages and link-problem reports.
type Handler struct {
	Catalog  Catalog
	Feedback FeedbackStore // nil when no database is configured
	Limiter  *ratelimit.FeedbackLimiter
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(catalog Catalog, feedback FeedbackStore, limiter *ratelimit.FeedbackLimiter, logger *zap.Logger) *Handler {
	if limiter == nil {
		limiter = ratelimit.NewFeedbackLimiter()
	}
	return &Handler{
		Catalog:  catalog,
		Feedback: feedback,
		Limiter:  limiter,
		ErrLog:   uierrors.NewErrorLogger(logger),
		Log:      logger,
	}
}

type gameData struct {
	viewdata.BaseVM
	Detail detailVM

	FeedbackEnabled bool
	FeedbackAction  string
	FeedbackRef     string
	MaxMessage      int
	MaxContact      int
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /game/{id} – detail page, or the 404 page when the game is unknown      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, navigation.GameBackURL)

	g := h.Catalog.FetchGameDetails(r.Context(), id)
	if g == nil {
		uierrors.RenderNotFound(w, r, "", back)
		return
	}

	base := viewdata.NewBaseVM(r, g.Name, back)
	base.BackURL = back
	data := gameData{
		BaseVM:          base,
		Detail:          buildDetail(g, base.FeedbackEmail),
		FeedbackEnabled: h.Feedback != nil,
		FeedbackAction:  "/game/" + url.PathEscape(g.ID) + "/feedback",
		MaxMessage:      MaxMessageRunes,
		MaxContact:      MaxContactRunes,
	}
	if data.FeedbackEnabled {
		data.FeedbackRef = h.confirmedRef(r, g)
		w.Header().Set("Cache-Control", PageCacheControl)
	} else {
		shared.SetCatalogCaching(w)
	}
	templates.Render(w, r, "game", data)
}

// confirmedRef returns the ?feedback= reference when it names a stored
// report for g, and "" otherwise.
func (h *Handler) confirmedRef(r *http.Request, g *models.GameDetails) string {
	ref := query.Get(r, "feedback")
	if ref == "" {
		return ""
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "look up feedback report")
	defer cancel()

	rep, err := h.Feedback.GetByRef(ctx, ref)
	if err != nil {
		if !errors.Is(err, feedbackstore.ErrNotFound) {
			h.Log.Warn("feedback lookup failed", zap.String("ref", ref), zap.Error(err))
		}
		return ""
	}
	if rep.GameID != g.ID {
		return ""
	}
	return rep.Ref
}
