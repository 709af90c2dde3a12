// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"strings"
	"time"

	"github.com/dalemusser/gamecenter/internal/app/catalog"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings such as ports, TLS and log level; everything
// specific to GameCenter lives here.
type AppConfig struct {
	// Catalog API endpoints
	GameSearchAPI      string // ranked listing
	GameInfoAPI        string // single game record
	GameSearchQueryAPI string // free-text search

	// Catalog client behavior
	CatalogRevalidate   time.Duration // how long a fetched response is served without refetching (0 disables)
	CatalogTimeout      time.Duration // bound on one upstream request
	CatalogCacheEntries int           // most distinct URLs kept by the revalidation cache (0 means the default)

	// MongoDB connection configuration. A blank URI disables stored feedback
	// reports; the report form then falls back to email.
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64

	// CSRF protection for the feedback form
	CSRFKey string

	// Feedback reports
	FeedbackEmail  string
	FeedbackLimit  int
	FeedbackWindow time.Duration

	SiteName string
}

// Endpoints returns the catalog endpoints, with defaults for blank values.
func (c AppConfig) Endpoints() catalog.Endpoints {
	return catalog.Endpoints{
		GameSearch:      strings.TrimSpace(c.GameSearchAPI),
		GameInfo:        strings.TrimSpace(c.GameInfoAPI),
		GameSearchQuery: strings.TrimSpace(c.GameSearchQueryAPI),
	}.WithDefaults()
}

// FeedbackStorageEnabled reports whether reports are saved to MongoDB.
func (c AppConfig) FeedbackStorageEnabled() bool {
	return strings.TrimSpace(c.MongoURI) != ""
}
