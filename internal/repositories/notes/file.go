package notes

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

var noteFileHeader = []string{"id", "title", "content", "tags", "created_at", "updated_at"}

// FileRepository stores each user's notes in a notes_<uuid>.csv file inside
// the data directory. Ids are assigned as max(existing)+1 and survive deletes
// unchanged, so a note's id never silently moves to a different note.
type FileRepository struct {
	mu      sync.Mutex
	dataDir string
}

// NewFileRepository constructs a file-backed note store rooted at dataDir.
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := filex.EnsureDir(dataDir); err != nil {
		return nil, err
	}
	return &FileRepository{dataDir: dataDir}, nil
}

func (r *FileRepository) path(userID string) string {
	return filepath.Join(r.dataDir, "notes_"+userID+".csv")
}

func (r *FileRepository) loadAll(userID string) ([]*models.Note, error) {
	rows, err := filex.ReadCSV(r.path(userID))
	if err != nil {
		return nil, err
	}

	result := make([]*models.Note, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(noteFileHeader) {
			continue
		}
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			continue
		}
		created, _ := time.Parse(time.RFC3339, row[4])
		updated, _ := time.Parse(time.RFC3339, row[5])
		result = append(result, &models.Note{
			ID:        id,
			UserID:    userID,
			Title:     row[1],
			Content:   row[2],
			Tags:      row[3],
			CreatedAt: created,
			UpdatedAt: updated,
		})
	}
	return result, nil
}

func (r *FileRepository) saveAll(userID string, list []*models.Note) error {
	rows := make([][]string, 0, len(list))
	for _, n := range list {
		rows = append(rows, noteRow(n))
	}
	return filex.WriteCSV(r.path(userID), noteFileHeader, rows)
}

func noteRow(n *models.Note) []string {
	return []string{
		strconv.FormatInt(n.ID, 10), n.Title, n.Content, n.Tags,
		n.CreatedAt.Format(time.RFC3339), n.UpdatedAt.Format(time.RFC3339),
	}
}

// Create appends a note with id max(existing)+1.
func (r *FileRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.loadAll(note.UserID)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, n := range list {
		if n.ID > maxID {
			maxID = n.ID
		}
	}

	now := time.Now()
	note.ID = maxID + 1
	note.CreatedAt = now
	note.UpdatedAt = now

	if err := filex.AppendCSV(r.path(note.UserID), noteFileHeader, noteRow(note)); err != nil {
		return nil, err
	}
	return note, nil
}

// ListByUser returns all of the user's notes, oldest first.
func (r *FileRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadAll(userID)
}

// GetByID returns the note with the given id from the user's own file.
func (r *FileRepository) GetByID(ctx context.Context, userID string, id int64) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.loadAll(userID)
	if err != nil {
		return nil, err
	}
	for _, n := range list {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Update rewrites the user's note file with the note's fields replaced.
func (r *FileRepository) Update(ctx context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.loadAll(note.UserID)
	if err != nil {
		return err
	}

	updated := false
	for _, n := range list {
		if n.ID == note.ID {
			n.Title = note.Title
			n.Content = note.Content
			n.Tags = note.Tags
			n.UpdatedAt = time.Now()
			updated = true
			break
		}
	}
	if !updated {
		return common.ErrorNotFound
	}

	return r.saveAll(note.UserID, list)
}

// Delete drops the note row. The ids of the remaining notes are untouched.
func (r *FileRepository) Delete(ctx context.Context, userID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.loadAll(userID)
	if err != nil {
		return err
	}

	kept := make([]*models.Note, 0, len(list))
	found := false
	for _, n := range list {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return common.ErrorNotFound
	}

	return r.saveAll(userID, kept)
}
