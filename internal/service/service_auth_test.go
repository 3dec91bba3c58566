// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/internal/utils"
	"github.com/MKhiriev/go-cv-tailor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn           func(ctx context.Context, user models.User) (models.User, error)
	findByEmailFn      func(ctx context.Context, email string) (models.User, error)
	findByIDFn         func(ctx context.Context, userID int64) (models.User, error)
	setEmailVerifiedFn func(ctx context.Context, userID int64) error
	updatePasswordFn   func(ctx context.Context, userID int64, passwordHash string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *mockUserRepository) SetEmailVerified(ctx context.Context, userID int64) error {
	if m.setEmailVerifiedFn != nil {
		return m.setEmailVerifiedFn(ctx, userID)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, userID, passwordHash)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.TokenStore
// ─────────────────────────────────────────────

type mockTokenStore struct {
	saveVerificationFn    func(ctx context.Context, token string, userID int64, ttl time.Duration) error
	consumeVerificationFn func(ctx context.Context, token string) (int64, error)
	saveResetFn           func(ctx context.Context, token string, userID int64, ttl time.Duration) error
	consumeResetFn        func(ctx context.Context, token string) (int64, error)
}

func (m *mockTokenStore) SaveVerificationToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if m.saveVerificationFn != nil {
		return m.saveVerificationFn(ctx, token, userID, ttl)
	}
	return nil
}

func (m *mockTokenStore) ConsumeVerificationToken(ctx context.Context, token string) (int64, error) {
	if m.consumeVerificationFn != nil {
		return m.consumeVerificationFn(ctx, token)
	}
	return 0, store.ErrTokenNotFound
}

func (m *mockTokenStore) SaveResetToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if m.saveResetFn != nil {
		return m.saveResetFn(ctx, token, userID, ttl)
	}
	return nil
}

func (m *mockTokenStore) ConsumeResetToken(ctx context.Context, token string) (int64, error) {
	if m.consumeResetFn != nil {
		return m.consumeResetFn(ctx, token)
	}
	return 0, store.ErrTokenNotFound
}

func newTestAuthService(users *mockUserRepository, tokens *mockTokenStore) AuthService {
	cfg := config.App{
		TokenSignKey:    "test-sign-key",
		TokenIssuer:     "go-cv-tailor-test",
		TokenDuration:   time.Hour,
		AdminEmails:     []string{"admin@example.com"},
		StartingCredits: 3,
	}
	return NewAuthService(users, tokens, cfg, logger.NewLogger("test"))
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	var savedTokenTTL time.Duration
	var savedTokenUserID int64

	users := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			// password must never reach the repository in plaintext
			assert.Empty(t, user.Password)
			assert.NotEmpty(t, user.PasswordHash)
			assert.True(t, utils.CheckPasswordHash("secret-password", user.PasswordHash))
			assert.Equal(t, int64(3), user.AvailableCredits)

			user.UserID = 42
			return user, nil
		},
	}
	tokens := &mockTokenStore{
		saveVerificationFn: func(_ context.Context, token string, userID int64, ttl time.Duration) error {
			require.NotEmpty(t, token)
			savedTokenUserID = userID
			savedTokenTTL = ttl
			return nil
		},
	}

	svc := newTestAuthService(users, tokens)

	registered, err := svc.RegisterUser(context.Background(), models.User{
		Email:    "john@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), registered.UserID)
	assert.Equal(t, int64(42), savedTokenUserID)
	assert.Equal(t, 24*time.Hour, savedTokenTTL)
}

func TestAuthService_RegisterUser_EmptyFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockTokenStore{})

	_, err := svc.RegisterUser(context.Background(), models.User{Email: "john@example.com"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), models.User{Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_RegisterUser_EmailTaken(t *testing.T) {
	users := &mockUserRepository{
		createFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(users, &mockTokenStore{})

	_, err := svc.RegisterUser(context.Background(), models.User{Email: "john@example.com", Password: "secret"})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_RegisterUser_TokenStoreFailureIsNotFatal(t *testing.T) {
	users := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			user.UserID = 1
			return user, nil
		},
	}
	tokens := &mockTokenStore{
		saveVerificationFn: func(_ context.Context, _ string, _ int64, _ time.Duration) error {
			return errors.New("redis down")
		},
	}
	svc := newTestAuthService(users, tokens)

	// the account is created even when the verification token cannot be stored
	registered, err := svc.RegisterUser(context.Background(), models.User{Email: "john@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)
}

// ── Login ────────────────────────────────────────────────────────────────────

func storedUser(t *testing.T, email, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return models.User{UserID: 42, Email: email, PasswordHash: hash}
}

func TestAuthService_Login_Success(t *testing.T) {
	users := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return storedUser(t, email, "secret-password"), nil
		},
	}
	svc := newTestAuthService(users, &mockTokenStore{})

	user, token, err := svc.Login(context.Background(), models.User{
		Email:    "john@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, models.RoleStandard, token.Role)
	assert.False(t, token.IsAdmin())
}

func TestAuthService_Login_AdminAllowList(t *testing.T) {
	users := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return storedUser(t, email, "secret-password"), nil
		},
	}
	svc := newTestAuthService(users, &mockTokenStore{})

	_, token, err := svc.Login(context.Background(), models.User{
		Email:    "admin@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, token.Role)
	assert.True(t, token.IsAdmin())
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return storedUser(t, email, "right-password"), nil
		},
	}
	svc := newTestAuthService(users, &mockTokenStore{})

	_, _, err := svc.Login(context.Background(), models.User{
		Email:    "john@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockTokenStore{})

	_, _, err := svc.Login(context.Background(), models.User{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

// ── VerifyEmail ──────────────────────────────────────────────────────────────

func TestAuthService_VerifyEmail_Success(t *testing.T) {
	var verifiedUserID int64

	tokens := &mockTokenStore{
		consumeVerificationFn: func(_ context.Context, token string) (int64, error) {
			assert.Equal(t, "valid-token", token)
			return 42, nil
		},
	}
	users := &mockUserRepository{
		setEmailVerifiedFn: func(_ context.Context, userID int64) error {
			verifiedUserID = userID
			return nil
		},
	}
	svc := newTestAuthService(users, tokens)

	require.NoError(t, svc.VerifyEmail(context.Background(), "valid-token"))
	assert.Equal(t, int64(42), verifiedUserID)
}

func TestAuthService_VerifyEmail_UnknownToken(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockTokenStore{})

	err := svc.VerifyEmail(context.Background(), "unknown-token")
	assert.ErrorIs(t, err, store.ErrTokenNotFound)
}

// ── Password reset ───────────────────────────────────────────────────────────

func TestAuthService_RequestPasswordReset_Success(t *testing.T) {
	var savedTTL time.Duration

	users := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{UserID: 42, Email: email}, nil
		},
	}
	tokens := &mockTokenStore{
		saveResetFn: func(_ context.Context, token string, userID int64, ttl time.Duration) error {
			assert.Equal(t, int64(42), userID)
			savedTTL = ttl
			return nil
		},
	}
	svc := newTestAuthService(users, tokens)

	token, err := svc.RequestPasswordReset(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, time.Hour, savedTTL)
}

func TestAuthService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockTokenStore{})

	_, err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAuthService_ConfirmPasswordReset_Success(t *testing.T) {
	var updatedHash string

	tokens := &mockTokenStore{
		consumeResetFn: func(_ context.Context, token string) (int64, error) {
			assert.Equal(t, "reset-token", token)
			return 42, nil
		},
	}
	users := &mockUserRepository{
		updatePasswordFn: func(_ context.Context, userID int64, passwordHash string) error {
			assert.Equal(t, int64(42), userID)
			updatedHash = passwordHash
			return nil
		},
	}
	svc := newTestAuthService(users, tokens)

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), "reset-token", "new-password"))
	assert.True(t, utils.CheckPasswordHash("new-password", updatedHash))
}

func TestAuthService_ConfirmPasswordReset_UnknownToken(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockTokenStore{})

	err := svc.ConfirmPasswordReset(context.Background(), "unknown", "new-password")
	assert.ErrorIs(t, err, store.ErrTokenNotFound)
}

// ── ParseToken ───────────────────────────────────────────────────────────────

func TestAuthService_ParseToken_RoundTrip(t *testing.T) {
	users := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return storedUser(t, email, "secret-password"), nil
		},
	}
	svc := newTestAuthService(users, &mockTokenStore{})

	_, issued, err := svc.Login(context.Background(), models.User{
		Email:    "admin@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	parsed, err := svc.ParseToken(context.Background(), issued.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, models.RoleAdmin, parsed.Role)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockTokenStore{})

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	require.Error(t, err)
}
