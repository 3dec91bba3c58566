// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/models"
)

// adminRepository is the PostgreSQL-backed implementation of
// [AdminRepository]. List and search queries are assembled with squirrel
// because paging and filters vary per request.
type adminRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAdminRepository constructs an [AdminRepository] backed by the provided
// database connection and logger.
func NewAdminRepository(db *DB, logger *logger.Logger) AdminRepository {
	logger.Debug().Msg("creating admin repository")
	return &adminRepository{
		db:     db,
		logger: logger,
	}
}

// buildListUsersQuery builds a paged SELECT over all accounts ordered by
// creation time, newest first.
func buildListUsersQuery(limit, offset int) (string, []any, error) {
	return sq.Select(strings.Split(userColumns, ",")...).
		From("users").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildSearchUsersQuery builds a case-insensitive substring search on the
// email column.
func buildSearchUsersQuery(email string) (string, []any, error) {
	return sq.Select(strings.Split(userColumns, ",")...).
		From("users").
		Where(sq.ILike{"email": "%" + email + "%"}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// ListUsers pages through all accounts ordered by creation time.
func (r *adminRepository) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(limit, offset)
	if err != nil {
		log.Err(err).Str("func", "*adminRepository.ListUsers").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUsers(ctx, "*adminRepository.ListUsers", query, args...)
}

// SearchUsers finds accounts whose email contains the query substring.
func (r *adminRepository) SearchUsers(ctx context.Context, email string) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSearchUsersQuery(email)
	if err != nil {
		log.Err(err).Str("func", "*adminRepository.SearchUsers").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUsers(ctx, "*adminRepository.SearchUsers", query, args...)
}

// SetBlocked toggles the blocked flag of the given user.
// Returns [ErrUserNotFound] if no account with the given id exists.
func (r *adminRepository) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setBlocked, userID, blocked)
	if err != nil {
		log.Err(err).Str("func", "*adminRepository.SetBlocked").Msg("error executing statement")
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

// AllUsers returns every account. Used by the stats fold in the service
// layer; the counters are summed there, not in SQL.
func (r *adminRepository) AllUsers(ctx context.Context) ([]models.User, error) {
	return r.queryUsers(ctx, "*adminRepository.AllUsers", allUsers)
}

func (r *adminRepository) queryUsers(ctx context.Context, fn, query string, args ...any) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.UserID,
			&user.Email,
			&user.PasswordHash,
			&user.AvailableCredits,
			&user.UsedCredits,
			&user.TotalCreditsEarned,
			&user.IsBlocked,
			&user.EmailVerified,
			&user.DeviceID,
			&user.CreatedAt,
			&user.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}
