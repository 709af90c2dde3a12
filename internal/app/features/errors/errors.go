// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/gamecenter/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Code    int
	Message string
}

// Handler serves the router-level error pages.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound is installed as the router's NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r, "", "/")
}

// MethodNotAllowed is installed as the router's MethodNotAllowed handler.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusMethodNotAllowed, "Not allowed", "That action isn't available here.", "/")
}

func render(w http.ResponseWriter, r *http.Request, code int, title, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, backURL),
		Code:    code,
		Message: msg,
	}
	data.BackURL = backURL

	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	templates.Render(w, r, "error_page", data)
}
