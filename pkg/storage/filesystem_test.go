package storage

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocalStorageCreateAndOpen(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	f, err := store.Create("CourseReport_1.csv")
	require.NoError(t, err)
	_, err = f.WriteString("Course: CS\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	r, err := store.Open("CourseReport_1.csv")
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "Course: CS\n", string(data))
}

func TestLocalStorageOpenMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open("missing.txt")
	require.Error(t, err)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLocalStorageDeleteIgnoresMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Delete("never-written.txt"))
}

func TestLocalStorageCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	old := time.Now().Add(-48 * time.Hour)
	for _, name := range []string{"StudentReport_1_1.txt", "notes.md", "CourseReport_2.csv"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		require.NoError(t, os.Chtimes(path, old, old))
	}
	fresh := filepath.Join(dir, "CourseReport_3.csv")
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))

	onlyReports := func(name string) bool {
		return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".txt")
	}
	deleted, err := store.CleanupOlderThan(24*time.Hour, onlyReports)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"StudentReport_1_1.txt", "CourseReport_2.csv"}, deleted)

	_, err = os.Stat(filepath.Join(dir, "notes.md"))
	require.NoError(t, err)
	_, err = os.Stat(fresh)
	require.NoError(t, err)
}
