package services

import (
	"errors"
	"fmt"

	"jobspy-client/scraper/jobspy"
)

// GenericSearchFailure is shown when a failed search carries no service message.
const GenericSearchFailure = "search failed, check backend availability"

var (
	// ErrInvalidQuery wraps every validation failure of a submitted query.
	ErrInvalidQuery = errors.New("invalid search query")
	// ErrNoQuery is returned by the server-side export before any search was submitted.
	ErrNoQuery = errors.New("no search has been submitted yet")
	// ErrSuperseded is returned for a search whose result arrived after a newer
	// search was submitted. The result was discarded.
	ErrSuperseded = errors.New("search superseded by a newer query")
	// ErrSinkUnavailable is returned when no database export sink is configured.
	ErrSinkUnavailable = errors.New("database export is not configured")
)

// SearchError is a failed query. Message is what the user sees.
type SearchError struct {
	Message string
	Err     error
}

func (e *SearchError) Error() string { return e.Message }

func (e *SearchError) Unwrap() error { return e.Err }

func newSearchError(err error) *SearchError {
	msg := GenericSearchFailure
	var apiErr *jobspy.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	return &SearchError{Message: msg, Err: err}
}

// ExportError is a failed export. Mode names the export path that failed.
type ExportError struct {
	Mode string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s export failed: %v", e.Mode, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
