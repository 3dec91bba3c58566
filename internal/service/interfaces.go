package service

import (
	"context"

	"github.com/MKhiriev/go-cv-tailor/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles account lifecycle: registration, login, email
// verification and password resets.
type AuthService interface {
	// RegisterUser creates a new account with the starting credit grant and
	// issues an email verification token.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user and issues a signed token. The token's
	// role claim is decided here: accounts on the admin allow-list receive
	// the admin capability, everyone else is standard.
	Login(ctx context.Context, user models.User) (models.User, models.Token, error)

	// VerifyEmail consumes a verification token and marks the account's
	// email as confirmed.
	VerifyEmail(ctx context.Context, token string) error

	// RequestPasswordReset issues a reset token for the account registered
	// under email. The token is returned so the delivery channel can pick
	// it up.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ConfirmPasswordReset consumes a reset token and replaces the
	// account's password.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error

	// ParseToken validates a compact token string and returns its claims.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// CreditService exposes the credit counters to their owner.
type CreditService interface {
	// GetBalance reads the caller's current counters.
	GetBalance(ctx context.Context, userID int64) (models.CreditBalance, error)

	// SpendCredit atomically spends one credit and returns the new
	// counters. Fails with the store sentinels when the balance is zero or
	// the account is blocked.
	SpendCredit(ctx context.Context, userID int64) (models.CreditBalance, error)
}

// AdminService implements the admin panel operations.
type AdminService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	SearchUsers(ctx context.Context, email string) ([]models.User, error)

	// GrantCredits adds credits to an account and records an audit award
	// marked as an admin action.
	GrantCredits(ctx context.Context, userID int64, amount int64, reason string) (models.CreditBalance, error)

	ResetCredits(ctx context.Context, userID int64) error
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
	Stats(ctx context.Context) (models.AdminStats, error)
}

// BillingService creates checkout sessions for credit packs and settles paid
// sessions delivered by the provider's webhook.
type BillingService interface {
	// Packs lists the purchasable credit packs.
	Packs() []models.CreditPack

	// CreateCheckout opens a hosted checkout session for the given pack.
	// Returns [ErrUnknownPack] for an unrecognised pack id.
	CreateCheckout(ctx context.Context, userID int64, packID string) (models.CheckoutSession, error)

	// HandleWebhook verifies the provider's signature and, for a completed
	// checkout, grants the purchased credits.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}
