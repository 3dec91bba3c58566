package throttle

import (
	"errors"
	"fmt"
	"net/http"
)

// Terminal errors surfaced by [Do] after retries are exhausted.
var (
	// ErrRateLimited is returned when the backend keeps answering 429 past
	// the retry budget.
	ErrRateLimited = errors.New("rate limit exceeded, try again later")
	// ErrServiceUnavailable is returned when the backend stays unreachable
	// past the retry budget (network failures, not HTTP responses).
	ErrServiceUnavailable = errors.New("service unavailable")
)

// HTTPError represents a non-2xx response from a remote backend. Carrying the
// status code lets the retry wrapper classify failures without depending on
// any particular HTTP client.
type HTTPError struct {
	StatusCode int
	Message    string
}

// NewHTTPError builds an *HTTPError for the given status code. If message is
// empty the standard status text is used.
func NewHTTPError(statusCode int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &HTTPError{StatusCode: statusCode, Message: message}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err wraps an *HTTPError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == statusCode
}
