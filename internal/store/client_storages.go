package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value that
// can be passed around the client service layer.
type ClientStorages struct {
	// LedgerRepository is the SQLite-backed mirror of the server credit
	// counters.
	LedgerRepository LocalLedgerRepository

	// SessionRepository persists the authenticated session between runs.
	SessionRepository LocalSessionRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.Path,
//     creating the database file if it does not yet exist.
//  2. Bootstraps the local schema.
//  3. Constructs and returns a [ClientStorages] value wired to fresh
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// schema bootstrap fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		LedgerRepository:  NewLocalLedgerRepository(db, logger),
		SessionRepository: NewLocalSessionRepository(db, logger),
	}, nil
}
