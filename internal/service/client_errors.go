package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotLoggedIn is returned by client operations that need an
	// authenticated session when none is available.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrAdminRequired is returned by admin operations when the current
	// session does not carry the admin capability.
	ErrAdminRequired = errors.New("admin capability required")
)

// ThrottledError reports a generation call rejected by the local sliding
// window before any credit was touched or any request was sent.
type ThrottledError struct {
	// Wait is how long the caller should wait before trying again.
	Wait time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("generation throttled locally, retry in %s", e.Wait.Round(time.Second))
}

// CooldownError reports a generation call rejected because the previous
// credit spend is too recent.
type CooldownError struct {
	// Remaining is how much of the cooldown is left.
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("generation cooldown active, retry in %s", e.Remaining.Round(time.Second))
}
