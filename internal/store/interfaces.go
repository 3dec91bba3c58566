package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cv-tailor/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository manages user account records.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields (UserID, CreatedAt). Returns [ErrEmailAlreadyExists] on a
	// duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves the account registered under the given email.
	// Returns [ErrUserNotFound] if none exists.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID retrieves the account with the given id.
	// Returns [ErrUserNotFound] if none exists.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// SetEmailVerified marks the account's email as verified.
	SetEmailVerified(ctx context.Context, userID int64) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// CreditRepository manages the credit counters and the award audit trail.
// All mutations are expressed as conditional single-statement updates so two
// concurrent operations can never observe or write stale counters.
type CreditRepository interface {
	// GetBalance reads the current counters of the given user.
	GetBalance(ctx context.Context, userID int64) (models.CreditBalance, error)

	// SpendCredit atomically decrements available_credits and increments
	// used_credits when the balance is positive and the account is not
	// blocked, returning the new counters. Returns [ErrInsufficientBalance]
	// when the balance is zero, [ErrUserBlocked] when the account is
	// blocked; in both cases the counters stay untouched.
	SpendCredit(ctx context.Context, userID int64) (models.CreditBalance, error)

	// GrantCredits atomically adds amount to available_credits and
	// total_credits_earned and appends a [models.CreditAward] audit record
	// in the same transaction.
	GrantCredits(ctx context.Context, userID int64, amount int64, reason string, adminAction bool) (models.CreditBalance, error)

	// ResetCredits zeroes the available balance of the given user. The
	// lifetime used/earned counters are left intact.
	ResetCredits(ctx context.Context, userID int64) error

	// ListAwards returns the audit trail of the given user, newest first.
	ListAwards(ctx context.Context, userID int64) ([]models.CreditAward, error)
}

// AdminRepository serves the admin panel queries.
type AdminRepository interface {
	// ListUsers pages through all accounts ordered by creation time.
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)

	// SearchUsers finds accounts whose email contains the query substring.
	SearchUsers(ctx context.Context, email string) ([]models.User, error)

	// SetBlocked toggles the blocked flag of the given user.
	SetBlocked(ctx context.Context, userID int64, blocked bool) error

	// AllUsers returns every account. The stats fold happens in the
	// service layer, not in SQL.
	AllUsers(ctx context.Context) ([]models.User, error)
}

// TokenStore keeps short-lived email verification and password reset tokens.
type TokenStore interface {
	// SaveVerificationToken stores an email verification token for userID
	// with the given TTL.
	SaveVerificationToken(ctx context.Context, token string, userID int64, ttl time.Duration) error

	// ConsumeVerificationToken resolves and deletes a verification token,
	// returning the associated user id. Returns [ErrTokenNotFound] for
	// unknown or expired tokens.
	ConsumeVerificationToken(ctx context.Context, token string) (int64, error)

	// SaveResetToken stores a password reset token for userID with the given
	// TTL.
	SaveResetToken(ctx context.Context, token string, userID int64, ttl time.Duration) error

	// ConsumeResetToken resolves and deletes a reset token, returning the
	// associated user id. Returns [ErrTokenNotFound] for unknown or expired
	// tokens.
	ConsumeResetToken(ctx context.Context, token string) (int64, error)
}
