package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/internal/utils"
	"github.com/MKhiriev/go-cv-tailor/models"
)

// Token lifetimes for the two email flows. A verification link can sit in an
// inbox for a while; a reset link should not.
const (
	verificationTokenTTL  = 24 * time.Hour
	passwordResetTokenTTL = time.Hour
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, email confirmation,
// password resets and JWT token lifecycle, using bcrypt for password hashing
// and a TokenStore for the short-lived email tokens.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenStore keeps verification and reset tokens until they are consumed.
	tokenStore store.TokenStore

	// uuidGenerator produces the opaque verification/reset token strings.
	uuidGenerator *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// adminEmails is the allow-list consulted at login to decide the role
	// claim. Membership is the only source of the admin capability.
	adminEmails []string

	// startingCredits is the grant applied to every new account.
	startingCredits int64

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, tokenStore store.TokenStore, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		tokenStore:      tokenStore,
		uuidGenerator:   utils.NewUUIDGenerator(),
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		adminEmails:     cfg.AdminEmails,
		startingCredits: cfg.StartingCredits,
		logger:          logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates that both Email and Password are non-empty, hashes the
// password with bcrypt, seeds the account with the configured starting credit
// grant and issues an email verification token.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if Email or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Email == "" || user.Password == "" {
		log.Error().Str("email", user.Email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		log.Err(err).Msg("password hashing ended with error")
		return models.User{}, fmt.Errorf("password hashing ended with error: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Email:            user.Email,
		PasswordHash:     passwordHash,
		AvailableCredits: a.startingCredits,
		DeviceID:         user.DeviceID,
	})
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	verificationToken := a.uuidGenerator.Generate()
	if err := a.tokenStore.SaveVerificationToken(ctx, verificationToken, registeredUser.UserID, verificationTokenTTL); err != nil {
		// the account is usable; verification can be re-requested later
		log.Err(err).Int64("user_id", registeredUser.UserID).Msg("saving verification token ended with error")
	} else {
		// TODO: deliver via an email provider once one is wired up
		log.Info().Int64("user_id", registeredUser.UserID).Str("verification_token", verificationToken).Msg("verification token issued")
	}

	return registeredUser, nil
}

// Login authenticates an existing user and issues a signed token.
//
// The role claim of the token is decided here and only here: if the account's
// email is on the admin allow-list the token carries the admin capability,
// otherwise the standard one. Nothing else in the system grants admin access.
//
// Returns the authenticated user record and token, or:
//   - ErrInvalidDataProvided if Email or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found — see store.ErrUserNotFound).
//   - ErrWrongPassword if the password does not match the stored hash.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if user.Email == "" || user.Password == "" {
		log.Error().Str("email", user.Email).Msg("invalid user data provided")
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, user.Email)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user lookup ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	if !utils.CheckPasswordHash(user.Password, foundUser.PasswordHash) {
		log.Error().Str("email", user.Email).Msg("wrong password")
		return models.User{}, models.Token{}, ErrWrongPassword
	}

	role := models.RoleStandard
	if slices.Contains(a.adminEmails, foundUser.Email) {
		role = models.RoleAdmin
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, foundUser.UserID, role, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("user_id", foundUser.UserID).Msg("token generation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("token generation ended with error: %w", err)
	}

	return foundUser, token, nil
}

// VerifyEmail consumes a verification token and marks the owning account's
// email as confirmed. A token can be redeemed once; unknown or expired tokens
// surface as store.ErrTokenNotFound.
func (a *authService) VerifyEmail(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	if token == "" {
		return ErrInvalidDataProvided
	}

	userID, err := a.tokenStore.ConsumeVerificationToken(ctx, token)
	if err != nil {
		log.Err(err).Msg("consuming verification token ended with error")
		return fmt.Errorf("consuming verification token ended with error: %w", err)
	}

	if err := a.userRepository.SetEmailVerified(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("marking email verified ended with error")
		return fmt.Errorf("marking email verified ended with error: %w", err)
	}

	return nil
}

// RequestPasswordReset issues a reset token for the account registered under
// the given email and returns it for delivery.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		return "", ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user lookup ended with error")
		return "", fmt.Errorf("user lookup ended with error: %w", err)
	}

	resetToken := a.uuidGenerator.Generate()
	if err := a.tokenStore.SaveResetToken(ctx, resetToken, foundUser.UserID, passwordResetTokenTTL); err != nil {
		log.Err(err).Int64("user_id", foundUser.UserID).Msg("saving reset token ended with error")
		return "", fmt.Errorf("saving reset token ended with error: %w", err)
	}

	return resetToken, nil
}

// ConfirmPasswordReset consumes a reset token and replaces the account's
// password with a bcrypt hash of newPassword.
func (a *authService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	if token == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	userID, err := a.tokenStore.ConsumeResetToken(ctx, token)
	if err != nil {
		log.Err(err).Msg("consuming reset token ended with error")
		return fmt.Errorf("consuming reset token ended with error: %w", err)
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Err(err).Msg("password hashing ended with error")
		return fmt.Errorf("password hashing ended with error: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, passwordHash); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("updating password ended with error")
		return fmt.Errorf("updating password ended with error: %w", err)
	}

	return nil
}

// ParseToken validates a compact token string and returns its claims.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Err(err).Msg("token validation ended with error")
		return models.Token{}, fmt.Errorf("token validation ended with error: %w", err)
	}

	return token, nil
}
