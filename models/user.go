package models

import "time"

// User represents an account entity used for authentication, authorization
// and credit accounting. It contains identity attributes, credential data and
// the three credit counters that drive the product.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"user_id"`

	// Email is the unique user identifier used during authentication.
	Email string `json:"email"`

	// Password carries the plaintext password in registration/login requests
	// only. It is never persisted and never returned by the server.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is used only at the persistence layer and is not exposed via JSON.
	PasswordHash string `json:"-"`

	// AvailableCredits is the number of credits the user can still spend.
	// Never negative; enforced by the store layer.
	AvailableCredits int64 `json:"available_credits"`

	// UsedCredits is the lifetime number of credits spent on generations.
	UsedCredits int64 `json:"used_credits"`

	// TotalCreditsEarned is the lifetime number of credits granted to the
	// account (starting grant, purchases and admin grants combined).
	TotalCreditsEarned int64 `json:"total_credits_earned"`

	// IsBlocked marks an account that may authenticate but cannot spend
	// credits or request generations.
	IsBlocked bool `json:"is_blocked"`

	// EmailVerified reports whether the account's email has been confirmed.
	EmailVerified bool `json:"email_verified"`

	// DeviceID is an informational client identifier recorded at
	// registration. It carries no authorization meaning.
	DeviceID string `json:"device_id,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// LastUpdated is the timestamp of the most recent mutation of the
	// account record (credit operations included).
	LastUpdated time.Time `json:"last_updated"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Balance extracts the credit counters of the user into a [CreditBalance].
func (u User) Balance() CreditBalance {
	return CreditBalance{
		Available:   u.AvailableCredits,
		Used:        u.UsedCredits,
		TotalEarned: u.TotalCreditsEarned,
		LastUpdated: u.LastUpdated,
	}
}
