package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
)

// Storages groups all server-side repositories into a single value that can
// be passed around the service layer.
type Storages struct {
	UserRepository   UserRepository
	CreditRepository CreditRepository
	AdminRepository  AdminRepository
	TokenStore       TokenStore

	// Redis is the shared connection behind TokenStore. The HTTP layer
	// borrows it for the per-IP rate-limit middleware.
	Redis *redis.Client
}

// NewStorages initialises the server storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens a PostgreSQL connection to the DSN specified in cfg.DB.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Connects to Redis for the short-lived token store.
//  4. Constructs and returns a [Storages] value wired to fresh repositories.
//
// Returns an error if either connection cannot be established or if
// migration fails.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	redisClient, err := NewRedisClient(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("redis connection error: %w", err)
	}

	return &Storages{
		UserRepository:   NewUserRepository(db, logger),
		CreditRepository: NewCreditRepository(db, logger),
		AdminRepository:  NewAdminRepository(db, logger),
		TokenStore:       NewRedisTokenStore(redisClient, logger),
		Redis:            redisClient,
	}, nil
}
