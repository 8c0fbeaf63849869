// Package sessions declares the session store contract and its PostgreSQL and
// flat-file implementations. Session rows are never physically deleted;
// revocation flips is_active off so the audit trail survives.
package sessions

import (
	"context"
	"time"

	"github.com/shindearyan179/notesnap/internal/models"
)

// Repository defines durable operations on session rows.
type Repository interface {
	// Create inserts a new active session row.
	Create(ctx context.Context, session *models.Session) error

	// Find returns the session row for (userID, token), regardless of its
	// active/expired state, or common.ErrorNotFound.
	Find(ctx context.Context, userID, token string) (*models.Session, error)

	// Extend moves the session's expiry forward.
	Extend(ctx context.Context, userID, token string, expiresAt time.Time) error

	// Revoke marks the session inactive. Revoking an already-revoked or
	// absent session is not an error.
	Revoke(ctx context.Context, userID, token string) error

	// RevokeAll marks every session of the user inactive.
	RevokeAll(ctx context.Context, userID string) error
}
