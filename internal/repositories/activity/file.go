package activity

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/shindearyan179/notesnap/internal/filex"
	"github.com/shindearyan179/notesnap/internal/models"
)

var activityFileHeader = []string{"user_id", "action_type", "action_details", "ip_address", "user_agent", "created_at"}

// FileRepository appends audit rows to activity.csv in the data directory.
// Append-only, so no rewrite machinery is needed.
type FileRepository struct {
	mu      sync.Mutex
	dataDir string
}

// NewFileRepository constructs a file-backed audit log rooted at dataDir.
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := filex.EnsureDir(dataDir); err != nil {
		return nil, err
	}
	return &FileRepository{dataDir: dataDir}, nil
}

// Append adds one audit row.
func (r *FileRepository) Append(ctx context.Context, entry *models.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := entry.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	return filex.AppendCSV(filepath.Join(r.dataDir, "activity.csv"), activityFileHeader, []string{
		entry.UserID, entry.Action, entry.Details, entry.IP, entry.UserAgent,
		at.Format(time.RFC3339),
	})
}
