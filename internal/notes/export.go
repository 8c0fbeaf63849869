package notes

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var exportHeader = []string{"id", "title", "content", "tags", "created_at", "updated_at"}

// Export writes all of the user's notes, decrypted, to a CSV file at path.
// Returns false when the user has no notes or the file cannot be created.
// The export is plaintext: it is the user taking their data out.
func (s *Service) Export(ctx context.Context, userID, path string) (bool, error) {
	list, err := s.List(ctx, userID, "")
	if err != nil {
		return false, err
	}
	if len(list) == 0 {
		return false, nil
	}

	f, err := os.Create(path)
	if err != nil {
		s.logger.Error(ctx, "export file create failed", "user_id", userID, "path", path, "error", err)
		return false, nil
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(exportHeader); err != nil {
		return false, nil
	}
	for _, note := range list {
		row := []string{
			strconv.FormatInt(note.ID, 10),
			note.Title,
			note.Content,
			note.Tags,
			note.CreatedAt.Format(time.RFC3339),
			note.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return false, nil
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		s.logger.Error(ctx, "export write failed", "user_id", userID, "path", path, "error", err)
		return false, nil
	}
	return true, nil
}
