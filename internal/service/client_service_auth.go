package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cv-tailor/internal/adapter"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/internal/utils"
	"github.com/MKhiriev/go-cv-tailor/models"
)

// clientAuthService is the concrete implementation of ClientAuthService.
type clientAuthService struct {
	sessionRepository store.LocalSessionRepository
	serverAdapter     adapter.ServerAdapter
	tailorAdapter     adapter.TailorAdapter
	logger            *logger.Logger
}

// NewClientAuthService wires the client auth flows to the local session store
// and the two outbound adapters.
func NewClientAuthService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, tailorAdapter adapter.TailorAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		sessionRepository: storages.SessionRepository,
		serverAdapter:     serverAdapter,
		tailorAdapter:     tailorAdapter,
		logger:            logger,
	}
}

// Register creates a new account on the server and persists the session the
// server opened for it. Registration never yields the admin capability.
func (c *clientAuthService) Register(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	created, err := c.serverAdapter.Register(ctx, models.User{Email: email, Password: password})
	if err != nil {
		log.Err(err).Str("email", email).Msg("registration ended with error")
		return models.User{}, fmt.Errorf("registration ended with error: %w", err)
	}

	session := models.Session{
		UserID:  created.UserID,
		Email:   created.Email,
		Role:    models.RoleStandard,
		Token:   c.serverAdapter.Token(),
		SavedAt: time.Now(),
	}
	if err := c.installSession(ctx, session); err != nil {
		log.Err(err).Msg("saving session after registration ended with error")
	}

	return created, nil
}

// Login authenticates against the server. The session's role is decoded from
// the issued token's claims; the client never decides capabilities itself.
func (c *clientAuthService) Login(ctx context.Context, email, password string) (models.Session, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	user, token, err := c.serverAdapter.Login(ctx, models.User{Email: email, Password: password})
	if err != nil {
		log.Err(err).Str("email", email).Msg("login ended with error")
		return models.Session{}, fmt.Errorf("login ended with error: %w", err)
	}

	role := models.RoleStandard
	if claims, err := utils.DecodeTokenClaims(token.SignedString); err == nil {
		role = claims.Role
	}

	session := models.Session{
		UserID:  user.UserID,
		Email:   user.Email,
		Role:    role,
		Token:   token.SignedString,
		SavedAt: time.Now(),
	}
	if err := c.installSession(ctx, session); err != nil {
		log.Err(err).Msg("saving session after login ended with error")
		return models.Session{}, fmt.Errorf("saving session after login ended with error: %w", err)
	}

	return session, nil
}

// Logout deletes the persisted session and clears the adapter tokens.
func (c *clientAuthService) Logout(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := c.sessionRepository.Delete(ctx); err != nil {
		log.Err(err).Msg("deleting session ended with error")
		return fmt.Errorf("deleting session ended with error: %w", err)
	}

	c.serverAdapter.SetToken("")
	c.tailorAdapter.SetToken("")

	return nil
}

// RestoreSession loads the persisted session and installs its token on both
// adapters so the caller can continue where the last run left off.
func (c *clientAuthService) RestoreSession(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	session, err := c.sessionRepository.Load(ctx)
	if err != nil {
		return models.Session{}, err
	}

	// a stale token would only produce 401s; drop it eagerly
	if claims, err := utils.DecodeTokenClaims(session.Token); err == nil {
		if expiry, expErr := claims.GetExpirationTime(); expErr == nil && expiry != nil && expiry.Before(time.Now()) {
			log.Info().Msg("persisted session is expired, logging out")
			_ = c.sessionRepository.Delete(ctx)
			return models.Session{}, store.ErrSessionNotFound
		}
	}

	c.serverAdapter.SetToken(session.Token)
	c.tailorAdapter.SetToken(session.Token)

	return session, nil
}

// VerifyEmail redeems an email verification token.
func (c *clientAuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidDataProvided
	}
	return c.serverAdapter.VerifyEmail(ctx, models.VerifyEmailRequest{Token: token})
}

// RequestPasswordReset asks the server to issue a reset token.
func (c *clientAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return ErrInvalidDataProvided
	}
	return c.serverAdapter.RequestPasswordReset(ctx, models.PasswordResetRequest{Email: email})
}

// ConfirmPasswordReset redeems a reset token with a new password.
func (c *clientAuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}
	return c.serverAdapter.ConfirmPasswordReset(ctx, models.PasswordResetConfirm{Token: token, NewPassword: newPassword})
}

func (c *clientAuthService) installSession(ctx context.Context, session models.Session) error {
	c.serverAdapter.SetToken(session.Token)
	c.tailorAdapter.SetToken(session.Token)
	return c.sessionRepository.Save(ctx, session)
}
