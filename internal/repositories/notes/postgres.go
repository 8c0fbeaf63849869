package notes

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

// PostgresRepository implements note storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a note row; the id comes from the notes sequence and is
// stable for the lifetime of the note.
func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	now := time.Now()

	query := `
		INSERT INTO notes (user_id, title, content, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query,
		note.UserID, note.Title, note.Content, note.Tags, now).Scan(&note.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	note.CreatedAt = now
	note.UpdatedAt = now
	return note, nil
}

// ListByUser returns all of the user's notes, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	query := `
		SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Content,
			&item.Tags, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the note scoped by both userID and id.
func (r *PostgresRepository) GetByID(ctx context.Context, userID string, id int64) (*models.Note, error) {
	query := `
		SELECT id, user_id, title, content, tags, created_at, updated_at
		FROM notes
		WHERE user_id = $1 AND id = $2
	`
	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content,
		&note.Tags, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

// Update overwrites the note's fields, scoped by (user_id, id).
func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE notes
		SET title = $3, content = $4, tags = $5, updated_at = $6
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		note.UserID, note.ID, note.Title, note.Content, note.Tags, time.Now())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes the note scoped by (user_id, id).
func (r *PostgresRepository) Delete(ctx context.Context, userID string, id int64) error {
	query := `DELETE FROM notes WHERE user_id = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
