package game

import (
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	uierrors "github.com/dalemusser/gamecenter/internal/app/features/errors"
	"github.com/dalemusser/gamecenter/internal/app/system/timeouts"
	"github.com/dalemusser/gamecenter/internal/app/system/viewdata"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Report field limits, in runes.
const (
	MaxReporterRunes = 100
	MaxMessageRunes  = 1000
	MaxContactRunes  = 200
)

// formError is a validation failure worded for the visitor.
type formError string

func (e formError) Error() string { return string(e) }

const (
	errMessageRequired formError = "Please describe the problem."
	errMessageTooLong  formError = "Your message is too long."
	errContactTooLong  formError = "Your contact details are too long."
	errReporterTooLong formError = "Your name is too long."
)

// feedbackInput is a submitted report form, trimmed.
type feedbackInput struct {
	Reporter string
	Message  string
	Contact  string
}

func parseFeedback(r *http.Request) feedbackInput {
	return feedbackInput{
		Reporter: strings.TrimSpace(r.PostFormValue("name")),
		Message:  strings.TrimSpace(r.PostFormValue("message")),
		Contact:  strings.TrimSpace(r.PostFormValue("contact")),
	}
}

func (in feedbackInput) validate() error {
	switch {
	case in.Message == "":
		return errMessageRequired
	case utf8.RuneCountInString(in.Message) > MaxMessageRunes:
		return errMessageTooLong
	case utf8.RuneCountInString(in.Contact) > MaxContactRunes:
		return errContactTooLong
	case utf8.RuneCountInString(in.Reporter) > MaxReporterRunes:
		return errReporterTooLong
	}
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /game/{id}/feedback – report a broken or missing download link         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gamePath := "/game/" + url.PathEscape(id)

	if ok, retry := h.Limiter.Check(r); !ok {
		h.Log.Warn("feedback rate limited", zap.String("id", id))
		uierrors.RenderTooManyRequests(w, r, retry, gamePath)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", gamePath)
		return
	}

	g := h.Catalog.FetchGameDetails(r.Context(), id)
	if g == nil {
		uierrors.RenderNotFound(w, r, "", "/")
		return
	}

	if h.Feedback == nil {
		http.Redirect(w, r, feedbackMailto(viewdata.CurrentSite().FeedbackEmail, g), http.StatusSeeOther)
		return
	}

	in := parseFeedback(r)
	if err := in.validate(); err != nil {
		uierrors.RenderBadRequest(w, r, err.Error(), gamePath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "save feedback report")
	defer cancel()

	rep, err := h.Feedback.CreateFrom(ctx, r, g, in.Reporter, in.Message, in.Contact)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error saving feedback", err,
			"We couldn't save your report. Please try again or write to us by email.", gamePath)
		return
	}

	h.Log.Info("feedback report saved",
		zap.String("id", id),
		zap.String("ref", rep.Ref))
	http.Redirect(w, r, gamePath+"?feedback="+url.QueryEscape(rep.Ref), http.StatusSeeOther)
}
