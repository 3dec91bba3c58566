package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cv-tailor/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalLedgerRepository is the client-side credit cache. It mirrors the
// server counters so balances can be shown offline and spends can be applied
// optimistically; every successful sync overwrites the whole mirror.
type LocalLedgerRepository interface {
	// GetBalance reads the cached counters.
	// Returns [ErrLedgerNotInitialized] before the first sync.
	GetBalance(ctx context.Context) (models.CreditBalance, error)

	// Spend optimistically decrements the cached available counter and
	// increments the used counter. Returns [ErrInsufficientBalance] when the
	// cached balance is zero.
	Spend(ctx context.Context) (models.CreditBalance, error)

	// Grant adds amount to the cached available and total earned counters.
	Grant(ctx context.Context, amount int64) (models.CreditBalance, error)

	// Overwrite replaces the whole cached balance with the server copy.
	// Last writer wins, no merge logic.
	Overwrite(ctx context.Context, balance models.CreditBalance) error

	// LastGeneration returns the timestamp of the most recent credit spend.
	// The zero time means no spend has been recorded yet.
	LastGeneration(ctx context.Context) (time.Time, error)

	// SetLastGeneration records the timestamp of a credit spend.
	SetLastGeneration(ctx context.Context, at time.Time) error
}

// LocalSessionRepository persists the authenticated session between client
// runs so the user does not have to log in on every invocation.
type LocalSessionRepository interface {
	// Save persists the session, replacing any previous one.
	Save(ctx context.Context, session models.Session) error

	// Load returns the persisted session.
	// Returns [ErrSessionNotFound] when no session is stored.
	Load(ctx context.Context) (models.Session, error)

	// Delete removes the persisted session. Deleting a missing session is
	// not an error.
	Delete(ctx context.Context) error
}
