package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_MissingFileIsEmpty(t *testing.T) {
	rows, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestAppendThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	header := []string{"id", "value"}

	require.NoError(t, AppendCSV(path, header, []string{"1", "one"}))
	require.NoError(t, AppendCSV(path, header, []string{"2", "two,with comma"}))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "one"}, rows[0])
	assert.Equal(t, []string{"2", "two,with comma"}, rows[1])
}

func TestWriteCSV_Rewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	header := []string{"id", "value"}

	require.NoError(t, AppendCSV(path, header, []string{"1", "old"}))
	require.NoError(t, WriteCSV(path, header, [][]string{{"1", "new"}}))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", "new"}, rows[0])

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadCSV_HeaderOnlyIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	require.NoError(t, WriteCSV(path, []string{"id"}, nil))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Nil(t, rows)
}
