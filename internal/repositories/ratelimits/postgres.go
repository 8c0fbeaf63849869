package ratelimits

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shindearyan179/notesnap/internal/dbx"
)

// PostgresRepository stores attempts in the rate_limits table.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// InTx runs fn against a transaction-scoped repository, so the prune, count
// and record steps of one limiter decision see a consistent view of the
// table. When the underlying handle is already a transaction, fn runs
// against the repository as-is.
func (r *PostgresRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return fn(r)
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(NewPostgresRepository(tx))
	})
}

// Prune removes attempts for (ip, action) older than cutoff.
func (r *PostgresRepository) Prune(ctx context.Context, ip, action string, cutoff time.Time) error {
	query := `
		DELETE FROM rate_limits
		WHERE ip_address = $1 AND action_key = $2 AND attempted_at < $3
	`
	if _, err := r.db.ExecContext(ctx, query, ip, action, cutoff); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Count returns the number of recorded attempts for (ip, action).
func (r *PostgresRepository) Count(ctx context.Context, ip, action string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM rate_limits
		WHERE ip_address = $1 AND action_key = $2
	`
	var count int
	if err := r.db.QueryRowContext(ctx, query, ip, action).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

// Record stores one attempt.
func (r *PostgresRepository) Record(ctx context.Context, ip, action string, at time.Time) error {
	query := `
		INSERT INTO rate_limits (ip_address, action_key, attempted_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, ip, action, at); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
