package search

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/gamecenter/internal/app/features/shared"
	querytext "github.com/dalemusser/gamecenter/internal/app/system/search"
	"github.com/dalemusser/gamecenter/internal/app/system/viewdata"
	"github.com/dalemusser/gamecenter/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Catalog runs free-text searches against the game catalog.
type Catalog interface {
	SearchCatalog(ctx context.Context, query string) []models.Game
}

// Handler serves the search page.
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

type searchData struct {
	viewdata.BaseVM
	Searched bool
	Results  []shared.GameCard
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /search?q= – results, "no results", or the search prompt                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	q := querytext.NormalizeQuery(query.Get(r, "q"))

	data := searchData{BaseVM: viewdata.NewBaseVM(r, "Search", "/")}
	data.Query = q

	if q != "" {
		data.Title = "Search results for \"" + q + "\""
		data.Searched = true
		games := h.Catalog.SearchCatalog(r.Context(), q)
		data.Results = shared.GameCards(games, false, "/search?q="+url.QueryEscape(q))
		h.Log.Debug("search served", zap.String("query", q), zap.Int("results", len(games)))
	}

	shared.SetCatalogCaching(w)
	templates.Render(w, r, "search", data)
}
