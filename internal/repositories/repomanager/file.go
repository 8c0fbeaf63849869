package repomanager

import (
	"fmt"

	"github.com/shindearyan179/notesnap/internal/repositories/activity"
	"github.com/shindearyan179/notesnap/internal/repositories/notes"
	"github.com/shindearyan179/notesnap/internal/repositories/ratelimits"
	"github.com/shindearyan179/notesnap/internal/repositories/sessions"
	"github.com/shindearyan179/notesnap/internal/repositories/users"
)

// FileManager wires the flat-file repository set over one data directory:
// a shared users.csv and sessions.csv, one notes_<uuid>.csv per user, an
// append-only activity.csv, and in-memory rate limiting.
type FileManager struct {
	users      users.Repository
	notes      notes.Repository
	sessions   sessions.Repository
	rateLimits ratelimits.Repository
	activity   activity.Repository
}

// NewFileManager wires the file-backed repositories rooted at dataDir.
func NewFileManager(dataDir string) (*FileManager, error) {
	userRepo, err := users.NewFileRepository(dataDir)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}
	noteRepo, err := notes.NewFileRepository(dataDir)
	if err != nil {
		return nil, fmt.Errorf("note repo creation error: %w", err)
	}
	sessionRepo, err := sessions.NewFileRepository(dataDir)
	if err != nil {
		return nil, fmt.Errorf("session repo creation error: %w", err)
	}
	activityRepo, err := activity.NewFileRepository(dataDir)
	if err != nil {
		return nil, fmt.Errorf("activity repo creation error: %w", err)
	}

	return &FileManager{
		users:      userRepo,
		notes:      noteRepo,
		sessions:   sessionRepo,
		rateLimits: ratelimits.NewMemoryRepository(),
		activity:   activityRepo,
	}, nil
}

func (m *FileManager) Users() users.Repository {
	return m.users
}

func (m *FileManager) Notes() notes.Repository {
	return m.notes
}

func (m *FileManager) Sessions() sessions.Repository {
	return m.sessions
}

func (m *FileManager) RateLimits() ratelimits.Repository {
	return m.rateLimits
}

func (m *FileManager) Activity() activity.Repository {
	return m.activity
}

func (m *FileManager) Close() error {
	return nil
}
