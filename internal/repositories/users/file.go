package users

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shindearyan179/notesnap/internal/common"
	"github.com/shindearyan179/notesnap/internal/filex"
	"github.com/shindearyan179/notesnap/internal/models"
)

var userFileHeader = []string{
	"uuid", "username", "email", "password_hash",
	"security_question", "security_answer", "created_at", "updated_at",
}

// FileRepository stores all users in a single users.csv file inside the data
// directory. Writes rewrite the file through a temp-file rename; a process-wide
// mutex serializes access, which stands in for the row locking a relational
// store would give us.
type FileRepository struct {
	mu      sync.Mutex
	dataDir string
}

// NewFileRepository constructs a file-backed account store rooted at dataDir.
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := filex.EnsureDir(dataDir); err != nil {
		return nil, err
	}
	return &FileRepository{dataDir: dataDir}, nil
}

func (r *FileRepository) path() string {
	return filepath.Join(r.dataDir, "users.csv")
}

func (r *FileRepository) notesPath(userID string) string {
	return filepath.Join(r.dataDir, "notes_"+userID+".csv")
}

func (r *FileRepository) loadAll() ([]*models.User, error) {
	rows, err := filex.ReadCSV(r.path())
	if err != nil {
		return nil, err
	}

	result := make([]*models.User, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(userFileHeader) {
			continue
		}
		created, _ := time.Parse(time.RFC3339, row[6])
		updated, _ := time.Parse(time.RFC3339, row[7])
		result = append(result, &models.User{
			ID:               row[0],
			Username:         row[1],
			Email:            row[2],
			PasswordHash:     row[3],
			SecurityQuestion: row[4],
			SecurityAnswer:   row[5],
			CreatedAt:        created,
			UpdatedAt:        updated,
		})
	}
	return result, nil
}

func (r *FileRepository) saveAll(list []*models.User) error {
	rows := make([][]string, 0, len(list))
	for _, u := range list {
		rows = append(rows, []string{
			u.ID, u.Username, u.Email, u.PasswordHash,
			u.SecurityQuestion, u.SecurityAnswer,
			u.CreatedAt.Format(time.RFC3339), u.UpdatedAt.Format(time.RFC3339),
		})
	}
	return filex.WriteCSV(r.path(), userFileHeader, rows)
}

// Create appends a new user after checking for a duplicate username or
// email. The mutex makes the check-then-append atomic within the process.
func (r *FileRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	for _, u := range list {
		if u.Username == user.Username {
			return nil, common.ErrorDuplicateUsername
		}
		if user.Email != "" && u.Email == user.Email {
			return nil, common.ErrorDuplicateEmail
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := filex.AppendCSV(r.path(), userFileHeader, []string{
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.SecurityQuestion, user.SecurityAnswer,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// FindByUsername returns the user with the exact username.
func (r *FileRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

// FindByID returns the user with the given id.
func (r *FileRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Update rewrites the store with the user's mutable fields replaced.
func (r *FileRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.loadAll()
	if err != nil {
		return err
	}

	updated := false
	for _, u := range list {
		if u.ID == user.ID {
			u.Email = user.Email
			u.PasswordHash = user.PasswordHash
			u.SecurityQuestion = user.SecurityQuestion
			u.SecurityAnswer = user.SecurityAnswer
			u.UpdatedAt = time.Now()
			updated = true
			break
		}
	}
	if !updated {
		return common.ErrorNotFound
	}

	return r.saveAll(list)
}

// Delete removes the user row and the user's note file. Sessions are revoked
// by the auth service before this is called.
func (r *FileRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.loadAll()
	if err != nil {
		return err
	}

	kept := make([]*models.User, 0, len(list))
	found := false
	for _, u := range list {
		if u.ID == userID {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return common.ErrorNotFound
	}

	if err := r.saveAll(kept); err != nil {
		return err
	}

	// cascade: the user's notes go with the account
	if err := os.Remove(r.notesPath(userID)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
