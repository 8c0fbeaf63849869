// Package activity declares the write-only audit log store.
package activity

import (
	"context"

	"github.com/shindearyan179/notesnap/internal/models"
)

// Repository appends audit rows. Nothing in the core reads them back; they
// exist for operators.
type Repository interface {
	Append(ctx context.Context, entry *models.ActivityEntry) error
}
