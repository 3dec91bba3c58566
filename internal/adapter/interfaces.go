// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-cv-tailor account server and the resume-tailoring API.
//
// [ServerAdapter] decouples the client service layer from the account server
// protocol (auth, credits, billing, admin). [TailorAdapter] talks to the
// hosted resume-generation backend; its implementation reports failures as
// [throttle.HTTPError] values so the retry wrapper can classify them.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrInsufficientCredits] for 402, [ErrUnauthorized]
// for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-cv-tailor/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the account
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account from the provided email and password.
	// On success it stores the returned bearer token via SetToken and returns
	// the created user record including the starting credit grant.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user. On success it stores the returned bearer
	// token via SetToken and returns the server-side user record with current
	// credit counters and the session token.
	Login(ctx context.Context, user models.User) (models.User, models.Token, error)

	// VerifyEmail confirms the account email using the token delivered to it.
	VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) error

	// RequestPasswordReset starts a password reset flow for the given email.
	RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) error

	// ConfirmPasswordReset completes a password reset with the emailed token.
	ConfirmPasswordReset(ctx context.Context, req models.PasswordResetConfirm) error

	// GetBalance fetches the caller's authoritative credit counters.
	GetBalance(ctx context.Context) (models.CreditBalance, error)

	// SpendCredit atomically deducts one credit on the server and returns the
	// new counters. Returns [ErrInsufficientCredits] (wrapped) when the
	// remote balance is already zero and [ErrForbidden] when the account is
	// blocked.
	SpendCredit(ctx context.Context) (models.CreditBalance, error)

	// CreateCheckout opens a hosted checkout session for the given credit
	// pack and returns the payment page URL.
	CreateCheckout(ctx context.Context, req models.CheckoutRequest) (models.CheckoutSession, error)

	// ListUsers pages through all user accounts. Admin capability required.
	ListUsers(ctx context.Context, query models.UserListQuery) ([]models.User, error)

	// SearchUsers finds user accounts whose email contains the query string.
	// Admin capability required.
	SearchUsers(ctx context.Context, email string) ([]models.User, error)

	// GrantCredits adds credits to the given user's balance and appends an
	// audit record. Admin capability required.
	GrantCredits(ctx context.Context, userID int64, req models.GrantCreditsRequest) (models.CreditBalance, error)

	// ResetCredits zeroes all credit counters of the given user. Admin
	// capability required.
	ResetCredits(ctx context.Context, userID int64) error

	// SetBlocked blocks or unblocks the given user account. Admin capability
	// required.
	SetBlocked(ctx context.Context, userID int64, req models.BlockRequest) error

	// GetStats fetches aggregate account statistics. Admin capability
	// required.
	GetStats(ctx context.Context) (models.AdminStats, error)
}

// TailorAdapter defines communication with the resume-tailoring backend.
//
// Implementations report non-2xx responses as [throttle.HTTPError] values and
// perform no retrying themselves; admission control and retry policy live in
// the client service layer so that tests can drive them deterministically.
type TailorAdapter interface {
	// SetToken stores the bearer token for subsequent generation calls.
	SetToken(token string)

	// Probe checks connectivity to the backend (a cheap unauthenticated
	// request, used to surface cold starts early).
	Probe(ctx context.Context) error

	// GenerateFromText tailors a plaintext resume to a job description.
	GenerateFromText(ctx context.Context, req models.GenerateRequest) (models.GenerateResponse, error)

	// GenerateFromFile uploads a resume file (PDF/DOCX) and tailors it to a
	// job description.
	GenerateFromFile(ctx context.Context, req models.GenerateFileRequest) (models.GenerateResponse, error)

	// Balance fetches the backend's view of the caller's credit balance.
	Balance(ctx context.Context) (models.CreditBalance, error)
}
