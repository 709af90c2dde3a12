package home

import (
	"context"
	"net/http"

	"github.com/dalemusser/gamecenter/internal/app/features/shared"
	"github.com/dalemusser/gamecenter/internal/app/system/viewdata"
	"github.com/dalemusser/gamecenter/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Catalog lists the ranked games shown on the landing page.
type Catalog interface {
	FetchCatalog(ctx context.Context) []models.Game
}

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	Catalog Catalog
	Log     *zap.Logger
}

func NewHandler(catalog Catalog, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog: catalog,
		Log:     logger,
	}
}

type homeData struct {
	viewdata.BaseVM
	Games []shared.GameCard
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing: hero, search bar, ranked list                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	games := h.Catalog.FetchCatalog(r.Context())

	data := homeData{
		BaseVM: viewdata.NewBaseVM(r, "", "/"),
		Games:  shared.GameCards(games, true, "/"),
	}

	shared.SetCatalogCaching(w)
	templates.Render(w, r, "home", data)
}
