package models

// VerifyEmailRequest confirms ownership of a registered email address using
// the token delivered to that address.
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

// PasswordResetRequest starts a password reset for the given email. The
// server always answers 200 to avoid leaking which emails are registered.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm completes a password reset using the token delivered
// by email.
type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// CheckoutRequest asks the server to open a hosted checkout session for one
// of the fixed credit packs.
type CheckoutRequest struct {
	PackID string `json:"pack_id"`
}

// GrantCreditsRequest is an admin grant of credits to a user account.
type GrantCreditsRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason,omitempty"`
}

// BlockRequest toggles the blocked flag on a user account.
type BlockRequest struct {
	Blocked bool `json:"blocked"`
}

// UserListQuery pages through user accounts in the admin panel.
type UserListQuery struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
