// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefixes lists accepted URL prefixes (e.g., "/search").
	// A return URL matching any of them is accepted.
	AllowedPrefixes []string

	// AllowedExact lists URLs accepted only as an exact match (e.g., "/").
	AllowedExact []string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/feedback").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", validates
// the URL is safe (not an open redirect), checks it against the allowed
// prefixes and exact matches, and excludes specified subpaths.
//
// Example usage:
//
//	back := navigation.SafeBackURL(r, navigation.GameBackURL)
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}
	if ret != "" && opts.allows(ret) {
		return ret
	}
	return opts.Fallback
}

func (opts BackURLOptions) allows(u string) bool {
	for _, excluded := range opts.ExcludedSubpaths {
		if strings.Contains(u, excluded) {
			return false
		}
	}
	if len(opts.AllowedPrefixes) == 0 && len(opts.AllowedExact) == 0 {
		return true
	}
	for _, exact := range opts.AllowedExact {
		if u == exact {
			return true
		}
	}
	for _, prefix := range opts.AllowedPrefixes {
		if strings.HasPrefix(u, prefix) {
			return true
		}
	}
	return false
}

// GameBackURL is used by the game page: visitors arrive from the landing
// page or a search result list.
var GameBackURL = BackURLOptions{
	AllowedPrefixes:  []string{"/search"},
	AllowedExact:     []string{"/"},
	ExcludedSubpaths: []string{"/feedback"},
	Fallback:         "/",
}
