// internal/app/features/shared/gamelist.go
package shared

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/gamecenter/internal/domain/models"
)

// CacheControl is sent with catalog pages so a CDN can apply the same
// revalidation window as the in-process cache.
const CacheControl = "public, s-maxage=3600, stale-while-revalidate=3600"

// SetCatalogCaching marks a catalog-backed page as publicly cacheable.
func SetCatalogCaching(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", CacheControl)
}

// GameCard is one entry in a rendered game list.
type GameCard struct {
	Rank int // 0 hides the rank badge
	Game models.Game
	Href string
}

// GameHref links to a game's page, carrying returnTo as the back link.
func GameHref(id, returnTo string) string {
	href := "/game/" + url.PathEscape(id)
	if returnTo != "" && returnTo != "/" {
		href += "?return=" + url.QueryEscape(returnTo)
	}
	return href
}

// GameCards builds cards for games in order. When ranked is set, each card
// shows its 1-based position.
func GameCards(games []models.Game, ranked bool, returnTo string) []GameCard {
	cards := make([]GameCard, 0, len(games))
	for i, g := range games {
		c := GameCard{Game: g, Href: GameHref(g.ID, returnTo)}
		if ranked {
			c.Rank = i + 1
		}
		cards = append(cards, c)
	}
	return cards
}
