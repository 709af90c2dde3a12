// internal/app/catalog/result.go
package catalog

import (
	"fmt"

	"github.com/dalemusser/gamecenter/internal/domain/models"
)

// Outcome classifies how an adapter call ended. Every outcome is a normal
// value; none of them is surfaced to handlers as an error.
type Outcome int

const (
	// OutcomeOK means the catalog answered and data was mapped.
	OutcomeOK Outcome = iota
	// OutcomeEmpty means the catalog answered but there was nothing to show
	// (no list field, an empty list, or an empty query).
	OutcomeEmpty
	// OutcomePartial means a detail lookup failed at the application level
	// but returned enough data (a name) to render.
	OutcomePartial
	// OutcomeNotFound means a detail lookup returned no usable data.
	OutcomeNotFound
	// OutcomeSuppressed means a transport or decode error was swallowed.
	// Err holds the suppressed error.
	OutcomeSuppressed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	case OutcomePartial:
		return "partial"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeSuppressed:
		return "suppressed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ListResult is returned by List and Search. Games is never nil.
type ListResult struct {
	Games   []models.Game
	Outcome Outcome
	Err     error
}

// DetailResult is returned by Detail. Game is nil for OutcomeNotFound and
// OutcomeSuppressed.
type DetailResult struct {
	Game    *models.GameDetails
	Outcome Outcome
	Err     error
}

// StatusError records a non-2xx response from the catalog.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: unexpected status %d from %s", e.StatusCode, e.URL)
}

func emptyList(outcome Outcome, err error) ListResult {
	return ListResult{Games: []models.Game{}, Outcome: outcome, Err: err}
}
