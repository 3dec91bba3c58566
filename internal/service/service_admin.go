package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// adminService is the concrete implementation of AdminService. Authorization
// is not decided here: by the time a call reaches this service the transport
// layer has already checked the admin capability of the caller's token.
type adminService struct {
	adminRepository  store.AdminRepository
	creditRepository store.CreditRepository
	logger           *logger.Logger
}

// NewAdminService constructs an AdminService backed by the given repositories.
func NewAdminService(adminRepository store.AdminRepository, creditRepository store.CreditRepository, logger *logger.Logger) AdminService {
	return &adminService{
		adminRepository:  adminRepository,
		creditRepository: creditRepository,
		logger:           logger,
	}
}

// ListUsers pages through all accounts. Out-of-range paging values are
// clamped rather than rejected.
func (a *adminService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := a.adminRepository.ListUsers(ctx, limit, offset)
	if err != nil {
		log.Err(err).Msg("listing users ended with error")
		return nil, fmt.Errorf("listing users ended with error: %w", err)
	}

	return users, nil
}

// SearchUsers finds accounts whose email contains the query substring.
func (a *adminService) SearchUsers(ctx context.Context, email string) ([]models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		return nil, ErrInvalidDataProvided
	}

	users, err := a.adminRepository.SearchUsers(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("searching users ended with error")
		return nil, fmt.Errorf("searching users ended with error: %w", err)
	}

	return users, nil
}

// GrantCredits adds credits to an account. The grant is recorded as an admin
// action in the audit trail.
func (a *adminService) GrantCredits(ctx context.Context, userID int64, amount int64, reason string) (models.CreditBalance, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return models.CreditBalance{}, ErrInvalidDataProvided
	}
	if reason == "" {
		reason = "admin adjustment"
	}

	balance, err := a.creditRepository.GrantCredits(ctx, userID, amount, reason, true)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Int64("amount", amount).Msg("granting credits ended with error")
		return models.CreditBalance{}, fmt.Errorf("granting credits ended with error: %w", err)
	}

	log.Info().Int64("user_id", userID).Int64("amount", amount).Str("reason", reason).Msg("credits granted")

	return balance, nil
}

// ResetCredits zeroes the available balance of an account. The lifetime
// used/earned counters are untouched so the spend history survives the reset.
func (a *adminService) ResetCredits(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if err := a.creditRepository.ResetCredits(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("resetting credits ended with error")
		return fmt.Errorf("resetting credits ended with error: %w", err)
	}

	log.Info().Int64("user_id", userID).Msg("credits reset")

	return nil
}

// SetBlocked toggles the blocked flag of an account. A blocked account can
// still authenticate but cannot spend credits.
func (a *adminService) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	log := logger.FromContext(ctx)

	if err := a.adminRepository.SetBlocked(ctx, userID, blocked); err != nil {
		log.Err(err).Int64("user_id", userID).Bool("blocked", blocked).Msg("setting blocked flag ended with error")
		return fmt.Errorf("setting blocked flag ended with error: %w", err)
	}

	log.Info().Int64("user_id", userID).Bool("blocked", blocked).Msg("blocked flag updated")

	return nil
}

// Stats aggregates account and credit counters by folding over every user
// record. The repository only scans; all arithmetic happens here.
func (a *adminService) Stats(ctx context.Context) (models.AdminStats, error) {
	log := logger.FromContext(ctx)

	users, err := a.adminRepository.AllUsers(ctx)
	if err != nil {
		log.Err(err).Msg("collecting stats ended with error")
		return models.AdminStats{}, fmt.Errorf("collecting stats ended with error: %w", err)
	}

	var stats models.AdminStats
	for _, user := range users {
		stats.TotalUsers++
		if user.IsBlocked {
			stats.BlockedUsers++
		} else {
			stats.ActiveUsers++
		}
		if user.EmailVerified {
			stats.VerifiedUsers++
		}

		stats.TotalAvailableCredits += user.AvailableCredits
		stats.TotalUsedCredits += user.UsedCredits
		stats.TotalCreditsEarned += user.TotalCreditsEarned
	}

	return stats, nil
}
