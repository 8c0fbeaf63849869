package activity

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shindearyan179/notesnap/internal/filex"
	"github.com/shindearyan179/notesnap/internal/models"
)

func TestFileAppend(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)

	ctx := context.Background()
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, &models.ActivityEntry{
		UserID: "u-1", Action: "login", Details: `{"username":"alice"}`,
		IP: "10.0.0.1", UserAgent: "cli", CreatedAt: at,
	}))
	require.NoError(t, repo.Append(ctx, &models.ActivityEntry{
		Action: "login_failed", IP: "10.0.0.1",
	}))

	rows, err := filex.ReadCSV(filepath.Join(dir, "activity.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"u-1", "login", `{"username":"alice"}`, "10.0.0.1", "cli", at.Format(time.RFC3339)}, rows[0])

	// a missing user id stays empty; the timestamp defaults to now
	assert.Equal(t, "", rows[1][0])
	assert.Equal(t, "login_failed", rows[1][1])
	assert.NotEmpty(t, rows[1][5])
}
