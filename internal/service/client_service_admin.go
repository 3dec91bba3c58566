package service

import (
	"context"

	"github.com/MKhiriev/go-cv-tailor/internal/adapter"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/models"
)

// clientAdminService is the concrete implementation of ClientAdminService.
// It gates locally on the session's role claim for fast feedback and passes
// everything through to the server, which makes the real decision.
type clientAdminService struct {
	sessionRepository store.LocalSessionRepository
	serverAdapter     adapter.ServerAdapter
	logger            *logger.Logger
}

// NewClientAdminService wires the admin operations to the server adapter.
func NewClientAdminService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAdminService {
	return &clientAdminService{
		sessionRepository: storages.SessionRepository,
		serverAdapter:     serverAdapter,
		logger:            logger,
	}
}

// requireAdmin loads the current session and checks its role claim.
func (c *clientAdminService) requireAdmin(ctx context.Context) error {
	session, err := c.sessionRepository.Load(ctx)
	if err != nil {
		return ErrNotLoggedIn
	}
	if !session.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

func (c *clientAdminService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	if err := c.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return c.serverAdapter.ListUsers(ctx, models.UserListQuery{Limit: limit, Offset: offset})
}

func (c *clientAdminService) SearchUsers(ctx context.Context, email string) ([]models.User, error) {
	if err := c.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, ErrInvalidDataProvided
	}
	return c.serverAdapter.SearchUsers(ctx, email)
}

func (c *clientAdminService) GrantCredits(ctx context.Context, userID int64, amount int64, reason string) (models.CreditBalance, error) {
	if err := c.requireAdmin(ctx); err != nil {
		return models.CreditBalance{}, err
	}
	if amount <= 0 {
		return models.CreditBalance{}, ErrInvalidDataProvided
	}
	return c.serverAdapter.GrantCredits(ctx, userID, models.GrantCreditsRequest{Amount: amount, Reason: reason})
}

func (c *clientAdminService) ResetCredits(ctx context.Context, userID int64) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	return c.serverAdapter.ResetCredits(ctx, userID)
}

func (c *clientAdminService) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}
	return c.serverAdapter.SetBlocked(ctx, userID, models.BlockRequest{Blocked: blocked})
}

func (c *clientAdminService) Stats(ctx context.Context) (models.AdminStats, error) {
	if err := c.requireAdmin(ctx); err != nil {
		return models.AdminStats{}, err
	}
	return c.serverAdapter.GetStats(ctx)
}
