package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cv-tailor/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService defines the client-side contract for account lifecycle
// operations. It talks to the account server through the server adapter and
// persists the resulting session locally so later invocations can restore it.
type ClientAuthService interface {
	// Register creates a new account on the server and persists the fresh
	// session. New accounts always carry the standard capability.
	Register(ctx context.Context, email, password string) (models.User, error)

	// Login authenticates against the server, persists the session and
	// installs the bearer token on both outbound adapters. The session role
	// is read from the token's claims.
	Login(ctx context.Context, email, password string) (models.Session, error)

	// Logout deletes the persisted session and clears the adapter tokens.
	Logout(ctx context.Context) error

	// RestoreSession loads the persisted session and installs its token on
	// both outbound adapters. Returns store.ErrSessionNotFound when no
	// session is stored.
	RestoreSession(ctx context.Context) (models.Session, error)

	// VerifyEmail redeems an email verification token.
	VerifyEmail(ctx context.Context, token string) error

	// RequestPasswordReset asks the server to issue a reset token for email.
	RequestPasswordReset(ctx context.Context, email string) error

	// ConfirmPasswordReset redeems a reset token with a new password.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// ClientLedgerService manages the local mirror of the server credit counters.
type ClientLedgerService interface {
	// Balance returns the cached counters, syncing from the server first if
	// the cache has never been seeded.
	Balance(ctx context.Context) (models.CreditBalance, error)

	// Sync fetches the server counters and overwrites the local mirror
	// wholesale. Last writer wins, no merge logic.
	Sync(ctx context.Context) (models.CreditBalance, error)

	// Buy opens a hosted checkout session for the given credit pack and
	// returns its payment URL.
	Buy(ctx context.Context, packID string) (models.CheckoutSession, error)
}

// ClientTailorService runs resume generations against the tailoring API. It
// owns the full admission pipeline: sliding-window throttle, spend cooldown,
// optimistic local spend, authoritative server spend, then the generation
// call under bounded retry.
type ClientTailorService interface {
	// Generate tailors a plaintext resume to a job description.
	Generate(ctx context.Context, resumeText, jobDescription string) (models.GenerateResponse, error)

	// GenerateFromFile tailors a resume uploaded from a local file.
	GenerateFromFile(ctx context.Context, filePath, jobDescription string) (models.GenerateResponse, error)

	// Probe checks whether the tailoring backend is reachable and warm.
	Probe(ctx context.Context) error
}

// ClientAdminService exposes the admin panel operations to an admin session.
// The capability check here is a fast local gate for usability; the server
// re-checks the token's role claim on every call.
type ClientAdminService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	SearchUsers(ctx context.Context, email string) ([]models.User, error)
	GrantCredits(ctx context.Context, userID int64, amount int64, reason string) (models.CreditBalance, error)
	ResetCredits(ctx context.Context, userID int64) error
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
	Stats(ctx context.Context) (models.AdminStats, error)
}

// ClientSyncJob is a background worker that periodically refreshes the local
// balance mirror from the server.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any
	// previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
