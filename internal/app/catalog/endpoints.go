// internal/app/catalog/endpoints.go
package catalog

import (
	"fmt"
	"net/url"
)

// Hardcoded endpoint fallbacks, used when configuration leaves a value blank.
const (
	DefaultGameSearchAPI      = "https://api.hk.apks.cc/game/search"
	DefaultGameInfoAPI        = "https://api.hk.apks.cc/game/info"
	DefaultGameSearchQueryAPI = "https://api.us.apks.cc/game/search"
)

// Endpoints holds the three catalog URLs. It is resolved once at startup
// and handed to New; the client never reads the environment itself.
type Endpoints struct {
	GameSearch      string // listing endpoint
	GameInfo        string // detail endpoint, takes ?id=
	GameSearchQuery string // search endpoint, takes ?q=
}

// DefaultEndpoints returns the hardcoded fallback endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		GameSearch:      DefaultGameSearchAPI,
		GameInfo:        DefaultGameInfoAPI,
		GameSearchQuery: DefaultGameSearchQueryAPI,
	}
}

// WithDefaults returns a copy of e with blank fields replaced by their defaults.
func (e Endpoints) WithDefaults() Endpoints {
	if e.GameSearch == "" {
		e.GameSearch = DefaultGameSearchAPI
	}
	if e.GameInfo == "" {
		e.GameInfo = DefaultGameInfoAPI
	}
	if e.GameSearchQuery == "" {
		e.GameSearchQuery = DefaultGameSearchQueryAPI
	}
	return e
}

// Validate checks that every endpoint is an absolute http(s) URL.
func (e Endpoints) Validate() error {
	for _, ep := range []struct{ name, value string }{
		{"game_search_api", e.GameSearch},
		{"game_info_api", e.GameInfo},
		{"game_search_query_api", e.GameSearchQuery},
	} {
		u, err := url.Parse(ep.value)
		if err != nil {
			return fmt.Errorf("%s: %w", ep.name, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s: %q is not an absolute http(s) URL", ep.name, ep.value)
		}
	}
	return nil
}

// withQuery appends key=value to base, keeping any query base already has.
func withQuery(base, key, value string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", base, err)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
