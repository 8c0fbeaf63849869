package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shindearyan179/notesnap/internal/common"
	"github.com/shindearyan179/notesnap/internal/dbx"
	"github.com/shindearyan179/notesnap/internal/models"
)

// PostgresRepository implements session storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new active session row.
func (r *PostgresRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (user_id, token, expires_at, is_active, created_at)
		VALUES ($1, $2, $3, TRUE, $4)
	`
	if _, err := r.db.ExecContext(ctx, query,
		session.UserID, session.Token, session.ExpiresAt, time.Now()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns the session row for (userID, token).
func (r *PostgresRepository) Find(ctx context.Context, userID, token string) (*models.Session, error) {
	query := `
		SELECT user_id, token, expires_at, is_active, created_at
		FROM sessions
		WHERE user_id = $1 AND token = $2
	`
	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, userID, token).Scan(
		&session.UserID, &session.Token, &session.ExpiresAt,
		&session.IsActive, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return session, nil
}

// Extend moves the session's expiry forward.
func (r *PostgresRepository) Extend(ctx context.Context, userID, token string, expiresAt time.Time) error {
	query := `
		UPDATE sessions
		SET expires_at = $3
		WHERE user_id = $1 AND token = $2
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token, expiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Revoke marks the session inactive. Idempotent.
func (r *PostgresRepository) Revoke(ctx context.Context, userID, token string) error {
	query := `
		UPDATE sessions
		SET is_active = FALSE
		WHERE user_id = $1 AND token = $2
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// RevokeAll marks every session of the user inactive.
func (r *PostgresRepository) RevokeAll(ctx context.Context, userID string) error {
	query := `
		UPDATE sessions
		SET is_active = FALSE
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
