package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cv-tailor/internal/adapter"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/models"
)

// clientLedgerService is the concrete implementation of ClientLedgerService.
// The server is the source of truth; the local mirror exists so balances are
// visible instantly and offline.
type clientLedgerService struct {
	ledgerRepository store.LocalLedgerRepository
	serverAdapter    adapter.ServerAdapter
	logger           *logger.Logger
}

// NewClientLedgerService wires the balance mirror to the server adapter.
func NewClientLedgerService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientLedgerService {
	return &clientLedgerService{
		ledgerRepository: storages.LedgerRepository,
		serverAdapter:    serverAdapter,
		logger:           logger,
	}
}

// Balance returns the cached counters. A cache that has never been seeded
// triggers a sync instead of an error, so the first balance query after a
// fresh install just works.
func (c *clientLedgerService) Balance(ctx context.Context) (models.CreditBalance, error) {
	balance, err := c.ledgerRepository.GetBalance(ctx)
	if err == nil {
		return balance, nil
	}
	if errors.Is(err, store.ErrLedgerNotInitialized) {
		return c.Sync(ctx)
	}
	return models.CreditBalance{}, err
}

// Sync fetches the authoritative counters and overwrites the local mirror.
func (c *clientLedgerService) Sync(ctx context.Context) (models.CreditBalance, error) {
	log := logger.FromContext(ctx)

	balance, err := c.serverAdapter.GetBalance(ctx)
	if err != nil {
		log.Err(err).Msg("fetching balance from server ended with error")
		return models.CreditBalance{}, fmt.Errorf("fetching balance from server ended with error: %w", err)
	}

	if err := c.ledgerRepository.Overwrite(ctx, balance); err != nil {
		log.Err(err).Msg("overwriting local ledger ended with error")
		return models.CreditBalance{}, fmt.Errorf("overwriting local ledger ended with error: %w", err)
	}

	log.Debug().Int64("available", balance.Available).Msg("balance synced")

	return balance, nil
}

// Buy opens a hosted checkout session for the given pack. Credits arrive
// later through the server's webhook; the next sync picks them up.
func (c *clientLedgerService) Buy(ctx context.Context, packID string) (models.CheckoutSession, error) {
	log := logger.FromContext(ctx)

	if packID != models.CreditPack3 && packID != models.CreditPack8 {
		return models.CheckoutSession{}, ErrUnknownPack
	}

	checkout, err := c.serverAdapter.CreateCheckout(ctx, models.CheckoutRequest{PackID: packID})
	if err != nil {
		log.Err(err).Str("pack_id", packID).Msg("creating checkout ended with error")
		return models.CheckoutSession{}, fmt.Errorf("creating checkout ended with error: %w", err)
	}

	return checkout, nil
}
