package activity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shindearyan179/notesnap/internal/dbx"
	"github.com/shindearyan179/notesnap/internal/models"
)

// PostgresRepository appends audit rows to the activity_log table.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append inserts one audit row.
func (r *PostgresRepository) Append(ctx context.Context, entry *models.ActivityEntry) error {
	query := `
		INSERT INTO activity_log (user_id, action_type, action_details, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	at := entry.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	// unauthenticated events (failed logins etc.) carry no user id
	userID := sql.NullString{String: entry.UserID, Valid: entry.UserID != ""}
	if _, err := r.db.ExecContext(ctx, query,
		userID, entry.Action, entry.Details, entry.IP, entry.UserAgent, at); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
