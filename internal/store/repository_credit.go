package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/models"
)

// creditRepository is the PostgreSQL-backed implementation of
// [CreditRepository].
//
// Spend and grant are single conditional UPDATE statements; the database is
// the only place the counters are computed, so concurrent callers cannot
// produce lost updates or overdrafts.
type creditRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCreditRepository constructs a [CreditRepository] backed by the provided
// database connection and logger.
func NewCreditRepository(db *DB, logger *logger.Logger) CreditRepository {
	logger.Debug().Msg("creating credit repository")
	return &creditRepository{
		db:     db,
		logger: logger,
	}
}

// GetBalance reads the current credit counters of the given user.
func (r *creditRepository) GetBalance(ctx context.Context, userID int64) (models.CreditBalance, error) {
	log := logger.FromContext(ctx)

	var balance models.CreditBalance
	row := r.db.QueryRowContext(ctx, getBalance, userID)

	if err := row.Scan(&balance.Available, &balance.Used, &balance.TotalEarned, &balance.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CreditBalance{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*creditRepository.GetBalance").Msg("error: scanning error")
		return models.CreditBalance{}, err
	}

	return balance, nil
}

// SpendCredit performs the atomic "decrement if positive" update. When the
// UPDATE matches no row the precondition failed; a follow-up lookup decides
// whether the cause was a missing account, a blocked account, or an exhausted
// balance, and the matching sentinel error is returned. The counters are
// untouched in every failure case.
func (r *creditRepository) SpendCredit(ctx context.Context, userID int64) (models.CreditBalance, error) {
	log := logger.FromContext(ctx)

	var balance models.CreditBalance
	row := r.db.QueryRowContext(ctx, spendCredit, userID)

	err := row.Scan(&balance.Available, &balance.Used, &balance.TotalEarned, &balance.LastUpdated)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).Str("func", "*creditRepository.SpendCredit").Msg("error: scanning error")
		return models.CreditBalance{}, err
	}

	// Precondition failed; find out which one.
	var isBlocked bool
	var available int64
	checkRow := r.db.QueryRowContext(ctx, `SELECT is_blocked, available_credits FROM users WHERE user_id = $1;`, userID)
	if err := checkRow.Scan(&isBlocked, &available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CreditBalance{}, ErrUserNotFound
		}
		return models.CreditBalance{}, err
	}

	if isBlocked {
		return models.CreditBalance{}, ErrUserBlocked
	}
	return models.CreditBalance{}, ErrInsufficientBalance
}

// GrantCredits adds amount to available_credits and total_credits_earned and
// appends the audit record, both inside one transaction so a grant can never
// appear without its audit trail.
func (r *creditRepository) GrantCredits(ctx context.Context, userID int64, amount int64, reason string, adminAction bool) (models.CreditBalance, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*creditRepository.GrantCredits").Msg("error beginning transaction")
		return models.CreditBalance{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var balance models.CreditBalance
	row := tx.QueryRowContext(ctx, grantCredits, userID, amount)
	if err := row.Scan(&balance.Available, &balance.Used, &balance.TotalEarned, &balance.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CreditBalance{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*creditRepository.GrantCredits").Msg("error: scanning error")
		return models.CreditBalance{}, err
	}

	var userEmail string
	if err := tx.QueryRowContext(ctx, `SELECT email FROM users WHERE user_id = $1;`, userID).Scan(&userEmail); err != nil {
		return models.CreditBalance{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var award models.CreditAward
	awardRow := tx.QueryRowContext(ctx, insertCreditAward, userID, userEmail, amount, reason, adminAction)
	if err := awardRow.Scan(&award.AwardID, &award.CreatedAt); err != nil {
		log.Err(err).Str("func", "*creditRepository.GrantCredits").Msg("error: award not saved")
		return models.CreditBalance{}, fmt.Errorf("%w: %w", ErrAwardNotSaved, err)
	}

	if err := tx.Commit(); err != nil {
		return models.CreditBalance{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return balance, nil
}

// ResetCredits zeroes the available balance of the given user. The lifetime
// used/earned counters record the account's spend history and are preserved.
// Returns [ErrUserNotFound] if no account with the given id exists.
func (r *creditRepository) ResetCredits(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, resetCredits, userID)
	if err != nil {
		log.Err(err).Str("func", "*creditRepository.ResetCredits").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ListAwards returns the audit trail of the given user, newest first.
func (r *creditRepository) ListAwards(ctx context.Context, userID int64) ([]models.CreditAward, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listCreditAwards, userID)
	if err != nil {
		log.Err(err).Str("func", "*creditRepository.ListAwards").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var awards []models.CreditAward
	for rows.Next() {
		var award models.CreditAward
		if err := rows.Scan(&award.AwardID, &award.UserID, &award.UserEmail, &award.Amount, &award.Reason, &award.AdminAction, &award.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		awards = append(awards, award)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return awards, nil
}
