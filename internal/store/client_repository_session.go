package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/models"
)

type localSessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalSessionRepository constructs the SQLite-backed session store.
func NewLocalSessionRepository(db *DB, logger *logger.Logger) LocalSessionRepository {
	return &localSessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localSessionRepository) Save(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, saveSession,
		session.UserID,
		session.Email,
		session.Role,
		session.Token,
		session.SavedAt,
	)
	if err != nil {
		log.Err(err).Str("func", "localSessionRepository.Save").Msg("failed to save session")
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (l *localSessionRepository) Load(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := l.DB.QueryRowContext(ctx, getSession)

	err := row.Scan(&session.UserID, &session.Email, &session.Role, &session.Token, &session.SavedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "localSessionRepository.Load").Msg("failed to scan session row")
		return models.Session{}, fmt.Errorf("failed to scan session row: %w", err)
	}

	return session, nil
}

func (l *localSessionRepository) Delete(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, deleteSession); err != nil {
		log.Err(err).Str("func", "localSessionRepository.Delete").Msg("failed to delete session")
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
