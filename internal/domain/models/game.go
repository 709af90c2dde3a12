// internal/domain/models/game.go
package models

// Placeholder values carried by list/search view-models. The catalog listing
// does not provide these, so they are fixed for every Game.
const (
	PlaceholderDownloadURL = "#"
	PlaceholderRating      = 0
	PlaceholderSize        = "N/A"
	PlaceholderDownloads   = "N/A"

	// DefaultIconHint is used when a game has no tags to describe its icon.
	DefaultIconHint = "game icon"
)

// Game is the view-model rendered by the landing and search pages.
type Game struct {
	ID          string
	Name        string
	IconURL     string
	IconHint    string
	Description string
	Tags        []string

	DownloadURL string
	Rating      float64
	Size        string
	Downloads   string
}

// GameDetails is the view-model for a single game page. Its JSON shape matches
// the nested data object returned by the catalog's info endpoint.
type GameDetails struct {
	ID                string     `json:"_id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Summary           string     `json:"summary"`
	Icon              string     `json:"icon"`
	HeaderImage       string     `json:"header_image,omitempty"`
	DetailImages      []string   `json:"detail_images"`
	Tags              []string   `json:"tags"`
	Developer         string     `json:"developer"`
	FileSize          *float64   `json:"file_size"`
	LatestAt          string     `json:"latest_at"`
	LatestContent     string     `json:"latest_content"`
	LimitAge          string     `json:"limit_age"`
	ReleaseAt         string     `json:"release_at"`
	DownloadCountShow string     `json:"download_count_show"`
	Star              float64    `json:"star"`
	Resource          []Resource `json:"resource"`
}

// HasResources reports whether the game offers at least one direct download.
// Without one, pages offer a feedback path instead.
func (g *GameDetails) HasResources() bool {
	return g != nil && len(g.Resource) > 0
}

// Resource is one downloadable distribution (channel/variant) of a game.
type Resource struct {
	ID      string  `json:"_id"`
	URL     string  `json:"url"`
	Size    float64 `json:"size"`
	Version string  `json:"version"`
	Channel Channel `json:"channel"`
}

// Channel describes where a Resource is hosted.
type Channel struct {
	Name      string  `json:"name"`
	Icon      string  `json:"icon"`
	Type      string  `json:"type"`
	URLPrefix *string `json:"url_prefix"`
}

// Href returns the absolute download link for the resource. When the channel
// carries a URL prefix it is prepended to the resource URL.
func (r Resource) Href() string {
	if r.Channel.URLPrefix != nil && *r.Channel.URLPrefix != "" {
		return *r.Channel.URLPrefix + r.URL
	}
	return r.URL
}
