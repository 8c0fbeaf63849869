// Package notes declares the note store contract and its PostgreSQL and
// flat-file implementations. Content passes through this layer as ciphertext;
// encryption and decryption happen in the service above.
package notes

import (
	"context"

	"github.com/shindearyan179/notesnap/internal/models"
)

// Repository defines durable operations on note rows. Every operation is
// scoped by the owning user id; a note never leaks across users even when ids
// collide.
type Repository interface {
	// Create inserts a note and returns it with the store-assigned id.
	Create(ctx context.Context, note *models.Note) (*models.Note, error)

	// ListByUser returns all of the user's notes, oldest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)

	// GetByID returns the note owned by userID with the given id, or
	// common.ErrorNotFound.
	GetByID(ctx context.Context, userID string, id int64) (*models.Note, error)

	// Update overwrites title, content, tags and updated_at of the note
	// scoped by (userID, id). Returns common.ErrorNotFound when no row
	// matched.
	Update(ctx context.Context, note *models.Note) error

	// Delete removes the note scoped by (userID, id). Returns
	// common.ErrorNotFound when no row matched. Remaining ids are stable:
	// they are never reassigned after a delete.
	Delete(ctx context.Context, userID string, id int64) error
}
