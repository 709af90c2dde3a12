// internal/app/features/errors/render.go
package errors

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// RenderNotFound shows the "game not found" page with a 404 status.
// An empty msg uses the default wording.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "The page or game you're looking for doesn't exist or may have been removed."
	}
	render(w, r, http.StatusNotFound, "Not found", msg, backURL)
}

// RenderBadRequest shows a friendly error for invalid input.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	render(w, r, http.StatusBadRequest, "Something's not right", msg, backURL)
}

// RenderServerError shows a generic failure page. msg must be safe to show
// visitors; details belong in the log.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "Something went wrong on our side. Please try again later."
	}
	render(w, r, http.StatusInternalServerError, "Server error", msg, backURL)
}

// RenderTooManyRequests shows the rate-limit page and sets Retry-After.
func RenderTooManyRequests(w http.ResponseWriter, r *http.Request, retryAfter time.Duration, backURL string) {
	secs := int(retryAfter.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))

	msg := "You've sent several reports in a short time. Please try again later."
	if mins := (secs + 59) / 60; mins > 1 {
		msg = fmt.Sprintf("You've sent several reports in a short time. Please try again in %d minutes.", mins)
	}
	render(w, r, http.StatusTooManyRequests, "Slow down", msg, backURL)
}

// RenderForbidden shows a friendly access error page with a message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "You don't have permission to do that."
	}
	render(w, r, http.StatusForbidden, "Access denied", msg, backURL)
}
