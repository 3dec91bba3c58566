package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/models"
)

type localLedgerRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalLedgerRepository constructs the SQLite-backed local credit cache.
func NewLocalLedgerRepository(db *DB, logger *logger.Logger) LocalLedgerRepository {
	return &localLedgerRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localLedgerRepository) GetBalance(ctx context.Context) (models.CreditBalance, error) {
	log := logger.FromContext(ctx)

	var balance models.CreditBalance
	row := l.DB.QueryRowContext(ctx, getLedger)

	if err := row.Scan(&balance.Available, &balance.Used, &balance.TotalEarned, &balance.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CreditBalance{}, ErrLedgerNotInitialized
		}
		log.Err(err).Str("func", "localLedgerRepository.GetBalance").Msg("failed to scan ledger row")
		return models.CreditBalance{}, fmt.Errorf("failed to scan ledger row: %w", err)
	}

	return balance, nil
}

// Spend decrements the cached available counter when it is positive. A miss
// (zero affected rows) means either the cache is empty or the balance is
// zero; an empty cache maps to [ErrLedgerNotInitialized], an exhausted one to
// [ErrInsufficientBalance].
func (l *localLedgerRepository) Spend(ctx context.Context) (models.CreditBalance, error) {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, spendLedgerCredit)
	if err != nil {
		log.Err(err).Str("func", "localLedgerRepository.Spend").Msg("failed to execute spend")
		return models.CreditBalance{}, fmt.Errorf("failed to spend local credit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.CreditBalance{}, fmt.Errorf("failed to spend local credit: %w", err)
	}
	if affected == 0 {
		if _, err := l.GetBalance(ctx); err != nil {
			return models.CreditBalance{}, err
		}
		return models.CreditBalance{}, ErrInsufficientBalance
	}

	return l.GetBalance(ctx)
}

func (l *localLedgerRepository) Grant(ctx context.Context, amount int64) (models.CreditBalance, error) {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, grantLedgerCredits, amount)
	if err != nil {
		log.Err(err).Str("func", "localLedgerRepository.Grant").Msg("failed to execute grant")
		return models.CreditBalance{}, fmt.Errorf("failed to grant local credits: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.CreditBalance{}, fmt.Errorf("failed to grant local credits: %w", err)
	}
	if affected == 0 {
		return models.CreditBalance{}, ErrLedgerNotInitialized
	}

	return l.GetBalance(ctx)
}

func (l *localLedgerRepository) Overwrite(ctx context.Context, balance models.CreditBalance) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, overwriteLedger,
		balance.Available,
		balance.Used,
		balance.TotalEarned,
		balance.LastUpdated,
		time.Now(),
	)
	if err != nil {
		log.Err(err).Str("func", "localLedgerRepository.Overwrite").Msg("failed to overwrite ledger")
		return fmt.Errorf("failed to overwrite local ledger: %w", err)
	}

	return nil
}

func (l *localLedgerRepository) LastGeneration(ctx context.Context) (time.Time, error) {
	log := logger.FromContext(ctx)

	var at sql.NullTime
	row := l.DB.QueryRowContext(ctx, getLastGeneration)

	if err := row.Scan(&at); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// no ledger row yet means no spend has ever happened
			return time.Time{}, nil
		}
		log.Err(err).Str("func", "localLedgerRepository.LastGeneration").Msg("failed to scan last generation")
		return time.Time{}, fmt.Errorf("failed to read last generation time: %w", err)
	}

	if !at.Valid {
		return time.Time{}, nil
	}
	return at.Time, nil
}

func (l *localLedgerRepository) SetLastGeneration(ctx context.Context, at time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, setLastGeneration, at); err != nil {
		log.Err(err).Str("func", "localLedgerRepository.SetLastGeneration").Msg("failed to set last generation")
		return fmt.Errorf("failed to record last generation time: %w", err)
	}

	return nil
}
