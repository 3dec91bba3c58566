package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/models"
)

// creditService is the concrete implementation of CreditService. It is a thin
// layer over the repository: all balance arithmetic happens in the database,
// so the service only translates and logs.
type creditService struct {
	creditRepository store.CreditRepository
	logger           *logger.Logger
}

// NewCreditService constructs a CreditService backed by the given repository.
func NewCreditService(creditRepository store.CreditRepository, logger *logger.Logger) CreditService {
	return &creditService{
		creditRepository: creditRepository,
		logger:           logger,
	}
}

// GetBalance reads the caller's current credit counters.
func (c *creditService) GetBalance(ctx context.Context, userID int64) (models.CreditBalance, error) {
	log := logger.FromContext(ctx)

	balance, err := c.creditRepository.GetBalance(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("reading balance ended with error")
		return models.CreditBalance{}, fmt.Errorf("reading balance ended with error: %w", err)
	}

	return balance, nil
}

// SpendCredit spends one credit of the caller. The repository guarantees the
// spend is atomic; failures carry store.ErrInsufficientBalance or
// store.ErrUserBlocked for the transport layer to translate.
func (c *creditService) SpendCredit(ctx context.Context, userID int64) (models.CreditBalance, error) {
	log := logger.FromContext(ctx)

	balance, err := c.creditRepository.SpendCredit(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("spending credit ended with error")
		return models.CreditBalance{}, fmt.Errorf("spending credit ended with error: %w", err)
	}

	log.Info().Int64("user_id", userID).Int64("available", balance.Available).Msg("credit spent")

	return balance, nil
}
