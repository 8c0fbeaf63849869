package sessions

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/shindearyan179/notesnap/internal/common"
	"github.com/shindearyan179/notesnap/internal/filex"
	"github.com/shindearyan179/notesnap/internal/models"
)

var sessionFileHeader = []string{"user_id", "token", "expires_at", "is_active", "created_at"}

// FileRepository keeps all sessions in one sessions.csv. The same
// rewrite-through-rename discipline as the other file stores applies.
type FileRepository struct {
	mu      sync.Mutex
	dataDir string
}

// NewFileRepository constructs a file-backed session store rooted at dataDir.
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := filex.EnsureDir(dataDir); err != nil {
		return nil, err
	}
	return &FileRepository{dataDir: dataDir}, nil
}

func (r *FileRepository) path() string {
	return filepath.Join(r.dataDir, "sessions.csv")
}

func (r *FileRepository) loadAll() ([]*models.Session, error) {
	rows, err := filex.ReadCSV(r.path())
	if err != nil {
		return nil, err
	}

	result := make([]*models.Session, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(sessionFileHeader) {
			continue
		}
		expires, _ := time.Parse(time.RFC3339, row[2])
		active, _ := strconv.ParseBool(row[3])
		created, _ := time.Parse(time.RFC3339, row[4])
		result = append(result, &models.Session{
			UserID:    row[0],
			Token:     row[1],
			ExpiresAt: expires,
			IsActive:  active,
			CreatedAt: created,
		})
	}
	return result, nil
}

func (r *FileRepository) saveAll(list []*models.Session) error {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, sessionRow(s))
	}
	return filex.WriteCSV(r.path(), sessionFileHeader, rows)
}

func sessionRow(s *models.Session) []string {
	return []string{
		s.UserID, s.Token, s.ExpiresAt.Format(time.RFC3339),
		strconv.FormatBool(s.IsActive), s.CreatedAt.Format(time.RFC3339),
	}
}

// Create appends a new active session row.
func (r *FileRepository) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	return filex.AppendCSV(r.path(), sessionFileHeader, sessionRow(session))
}

// Find returns the session row for (userID, token).
func (r *FileRepository) Find(ctx context.Context, userID, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		if s.UserID == userID && s.Token == token {
			return s, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Extend moves the session's expiry forward.
func (r *FileRepository) Extend(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return r.mutate(func(s *models.Session) bool {
		if s.UserID == userID && s.Token == token {
			s.ExpiresAt = expiresAt
			return true
		}
		return false
	})
}

// Revoke marks the session inactive. Idempotent.
func (r *FileRepository) Revoke(ctx context.Context, userID, token string) error {
	return r.mutate(func(s *models.Session) bool {
		if s.UserID == userID && s.Token == token {
			s.IsActive = false
			return true
		}
		return false
	})
}

// RevokeAll marks every session of the user inactive.
func (r *FileRepository) RevokeAll(ctx context.Context, userID string) error {
	return r.mutate(func(s *models.Session) bool {
		if s.UserID == userID {
			s.IsActive = false
			return true
		}
		return false
	})
}

// mutate applies fn to every session and rewrites the store when anything
// changed. A no-op mutation is not an error: revocation is idempotent.
func (r *FileRepository) mutate(fn func(*models.Session) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.loadAll()
	if err != nil {
		return err
	}

	changed := false
	for _, s := range list {
		if fn(s) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.saveAll(list)
}
