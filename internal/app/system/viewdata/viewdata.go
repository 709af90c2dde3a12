// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync"

	"github.com/dalemusser/gamecenter/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// Site holds the site-wide values every page shows. It is set once at
// startup from configuration.
type Site struct {
	Name          string
	FeedbackEmail string
}

var (
	siteMu sync.RWMutex
	site   = Site{Name: models.DefaultSiteName, FeedbackEmail: models.DefaultFeedbackEmail}
)

// Init sets the site-wide values. Blank fields keep their defaults.
// Call this once at startup from bootstrap.
func Init(s Site) {
	siteMu.Lock()
	defer siteMu.Unlock()
	if s.Name != "" {
		site.Name = s.Name
	}
	if s.FeedbackEmail != "" {
		site.FeedbackEmail = s.FeedbackEmail
	}
}

// CurrentSite returns the configured site values.
func CurrentSite() Site {
	siteMu.RLock()
	defer siteMu.RUnlock()
	return site
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type gamePageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := gamePageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Star Quest", "/"),
//	}
type BaseVM struct {
	SiteName      string
	FeedbackEmail string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// Query pre-fills the header search bar.
	Query string

	// CSRF protection
	CSRFToken string
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	s := CurrentSite()
	return BaseVM{
		SiteName:      s.Name,
		FeedbackEmail: s.FeedbackEmail,
		Title:         title,
		BackURL:       httpnav.ResolveBackURL(r, backDefault),
		CurrentPath:   httpnav.CurrentPath(r),
		CSRFToken:     csrf.Token(r),
	}
}

// PageTitle joins a page title with the site name, or returns the site name
// alone when the page has no title of its own.
func (vm BaseVM) PageTitle() string {
	if vm.Title == "" || vm.Title == vm.SiteName {
		return vm.SiteName
	}
	return vm.Title + " | " + vm.SiteName
}
