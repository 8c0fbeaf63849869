// Package users declares the account store contract and its PostgreSQL and
// flat-file implementations.
package users

import (
	"context"

	"github.com/shindearyan179/notesnap/internal/models"
)

// Repository defines durable operations on user records.
type Repository interface {
	// Create inserts a new user. The username-uniqueness check is atomic at
	// the storage layer; a clash returns common.ErrorDuplicateUsername.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByUsername returns the user with the exact username, or
	// common.ErrorNotFound.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByID returns the user with the given id, or common.ErrorNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// Update overwrites the mutable fields (password hash, security Q&A,
	// email) of the user identified by ID and refreshes updated_at.
	Update(ctx context.Context, user *models.User) error

	// Delete removes the user and cascades to the user's notes and sessions.
	// Deleting an absent user returns common.ErrorNotFound.
	Delete(ctx context.Context, userID string) error
}
