package adapter

import "errors"

// Sentinel transport errors mapped from HTTP status codes by mapHTTPError.
// Callers match them with errors.Is for transport-agnostic handling.
var (
	// ErrBadRequest corresponds to 400 responses (malformed payloads).
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized corresponds to 401 responses. The client reacts by
	// clearing the cached token and forcing a re-login.
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrForbidden corresponds to 403 responses (blocked account or a
	// non-admin calling an admin endpoint).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound corresponds to 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientCredits corresponds to 402 responses from the spend
	// endpoint: the remote balance hit zero.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrConflict corresponds to 409 responses (e.g. duplicate email at
	// registration).
	ErrConflict = errors.New("conflict")
	// ErrInternalServerError corresponds to 500 responses.
	ErrInternalServerError = errors.New("internal server error")
)
