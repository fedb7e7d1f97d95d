package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/storage"
)

type SessionRepository struct {
	db storage.DBTX
}

func NewSessionRepository(db storage.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateSession(ctx context.Context, userID int64) (*models.RefreshSession, error) {
	var session models.RefreshSession
	query := `INSERT INTO refresh_sessions (user_id, expires_at, created_at)
	          VALUES ($1, now() + interval '365 days', now())
	          RETURNING id, user_id, expires_at, created_at`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert refresh session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) GetSession(ctx context.Context, id int64) (*models.RefreshSession, error) {
	var session models.RefreshSession
	query := `SELECT id, user_id, expires_at, created_at FROM refresh_sessions WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get refresh session: %w", err)
	}
	return &session, nil
}

// DeleteSession is idempotent: deleting an id that no longer exists is fine.
func (r *SessionRepository) DeleteSession(ctx context.Context, id int64) error {
	query := `DELETE FROM refresh_sessions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete refresh session: %w", err)
	}
	return nil
}
