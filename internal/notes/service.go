// Package notes implements the per-user note operations: CRUD, tag filtering,
// text search and CSV export. Content is encrypted under the owner's derived
// key before it reaches storage and decrypted only transiently on the way
// out.
package notes

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shindearyan179/notesnap/internal/common"
	"github.com/shindearyan179/notesnap/internal/cryptox"
	"github.com/shindearyan179/notesnap/internal/logging"
	"github.com/shindearyan179/notesnap/internal/models"
	noterepo "github.com/shindearyan179/notesnap/internal/repositories/notes"
)

// Service is the note store facade. All operations are scoped by the owning
// user id; ids never cross users.
type Service struct {
	repo           noterepo.Repository
	logger         logging.Logger
	secret         string
	storageTimeout time.Duration
}

// NewService wires the note service. secret is the configured encryption
// secret that per-user keys derive from.
func NewService(repo noterepo.Repository, logger logging.Logger, secret string, storageTimeout time.Duration) *Service {
	return &Service{
		repo:           repo,
		logger:         logger,
		secret:         secret,
		storageTimeout: storageTimeout,
	}
}

func (s *Service) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storageTimeout)
}

func (s *Service) userKey(userID string) []byte {
	return cryptox.DeriveUserKey(userID, s.secret)
}

// Create encrypts the content and persists a new note.
func (s *Service) Create(ctx context.Context, userID, title, content, tags string) (*models.Note, error) {
	encrypted, err := cryptox.Encrypt(content, s.userKey(userID))
	if err != nil {
		s.logger.Error(ctx, "note encryption failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}

	note := &models.Note{
		UserID:  userID,
		Title:   title,
		Content: encrypted,
		Tags:    tags,
	}

	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	created, err := s.repo.Create(sctx, note)
	if err != nil {
		s.logger.Error(ctx, "note create failed", "user_id", userID, "error", err)
		return nil, common.ErrorStorageUnavailable
	}

	// hand the caller plaintext; ciphertext never leaves the store
	created.Content = content
	return created, nil
}

// List returns the user's notes with decrypted content. When tag is
// non-empty, only notes whose tag set contains it exactly are kept:
// "work" does not match "homework".
func (s *Service) List(ctx context.Context, userID, tag string) ([]*models.Note, error) {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	list, err := s.repo.ListByUser(sctx, userID)
	if err != nil {
		s.logger.Error(ctx, "note list failed", "user_id", userID, "error", err)
		return nil, common.ErrorStorageUnavailable
	}

	key := s.userKey(userID)
	result := make([]*models.Note, 0, len(list))
	for _, note := range list {
		if tag != "" && !hasTag(note.Tags, tag) {
			continue
		}
		if err := s.decryptNote(ctx, note, key); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, nil
}

// Get returns one note, decrypted, scoped by (userID, id).
func (s *Service) Get(ctx context.Context, userID string, id int64) (*models.Note, error) {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	note, err := s.repo.GetByID(sctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "note get failed", "user_id", userID, "note_id", id, "error", err)
		return nil, common.ErrorStorageUnavailable
	}

	if err := s.decryptNote(ctx, note, s.userKey(userID)); err != nil {
		return nil, err
	}
	return note, nil
}

// Edit applies a partial update: nil patch fields leave the stored value
// untouched. Content, when supplied, is re-encrypted. Returns false when the
// note is absent or owned by someone else.
func (s *Service) Edit(ctx context.Context, userID string, id int64, patch models.NotePatch) (bool, error) {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	note, err := s.repo.GetByID(sctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		s.logger.Error(ctx, "note get failed", "user_id", userID, "note_id", id, "error", err)
		return false, nil
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		encrypted, err := cryptox.Encrypt(*patch.Content, s.userKey(userID))
		if err != nil {
			s.logger.Error(ctx, "note encryption failed", "user_id", userID, "error", err)
			return false, nil
		}
		note.Content = encrypted
	}
	if patch.Tags != nil {
		note.Tags = *patch.Tags
	}

	if err := s.repo.Update(sctx, note); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		s.logger.Error(ctx, "note update failed", "user_id", userID, "note_id", id, "error", err)
		return false, nil
	}
	return true, nil
}

// Delete removes the note. Returns false when the note is absent or owned by
// someone else; the other user's note is left intact either way.
func (s *Service) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	if err := s.repo.Delete(sctx, userID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		s.logger.Error(ctx, "note delete failed", "user_id", userID, "note_id", id, "error", err)
		return false, nil
	}
	return true, nil
}

// Search returns the user's notes whose decrypted title or content contains
// the query, case-insensitively.
func (s *Service) Search(ctx context.Context, userID, query string) ([]*models.Note, error) {
	list, err := s.List(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	result := make([]*models.Note, 0, len(list))
	for _, note := range list {
		if strings.Contains(strings.ToLower(note.Title), q) ||
			strings.Contains(strings.ToLower(note.Content), q) {
			result = append(result, note)
		}
	}
	return result, nil
}

func hasTag(tags, want string) bool {
	if tags == "" {
		return false
	}
	split := strings.Split(tags, ",")
	for i := range split {
		split[i] = strings.TrimSpace(split[i])
	}
	return slices.Contains(split, want)
}

func (s *Service) decryptNote(ctx context.Context, note *models.Note, key []byte) error {
	plaintext, err := cryptox.Decrypt(note.Content, key)
	if err != nil {
		s.logger.Error(ctx, "note decryption failed", "user_id", note.UserID, "note_id", note.ID)
		return common.ErrorDecryption
	}
	note.Content = plaintext
	return nil
}
