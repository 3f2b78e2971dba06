package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestDiscovery_FindWorkbooks(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	touch(t, dir, "older.xlsx", now.Add(-2*time.Hour))
	touch(t, dir, "newer.XLSX", now.Add(-1*time.Hour))
	touch(t, dir, "legacy.xls", now.Add(-3*time.Hour))
	touch(t, dir, "notes.txt", now)
	touch(t, dir, "~$open.xlsx", now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	discovery := NewDiscovery(dir)
	files, err := discovery.FindWorkbooks(dir)
	require.NoError(t, err)

	require.Len(t, files, 3)
	// Oldest first
	assert.Equal(t, "legacy.xls", files[0].Name)
	assert.Equal(t, "older.xlsx", files[1].Name)
	assert.Equal(t, "newer.XLSX", files[2].Name)
}

func TestDiscovery_FindWorkbooksRelative(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "uploads"), 0755))
	touch(t, filepath.Join(base, "uploads"), "book.xlsx", time.Now())

	discovery := NewDiscovery(base)
	files, err := discovery.FindWorkbooks("uploads")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "uploads", "book.xlsx"), files[0].Path)
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "a.xlsx", ModTime: now.Add(-time.Hour)},
		{Name: "b.xlsx", ModTime: now},
		{Name: "c.xlsx", ModTime: now.Add(-2 * time.Hour)},
	}

	latest, ok := GetLatestFile(files)
	require.True(t, ok)
	assert.Equal(t, "b.xlsx", latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}

func TestDiscovery_ResolveWorkbook(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, dir, "old.xlsx", now.Add(-time.Hour))
	newest := touch(t, dir, "new.xlsx", now)

	discovery := NewDiscovery(dir)

	// Directory resolves to the newest workbook
	path, err := discovery.ResolveWorkbook(dir)
	require.NoError(t, err)
	assert.Equal(t, newest, path)

	// File path passes through
	path, err = discovery.ResolveWorkbook(newest)
	require.NoError(t, err)
	assert.Equal(t, newest, path)

	// Missing input errors
	_, err = discovery.ResolveWorkbook(filepath.Join(dir, "absent.xlsx"))
	assert.Error(t, err)

	// Directory with no workbooks errors
	empty := t.TempDir()
	_, err = discovery.ResolveWorkbook(empty)
	assert.Error(t, err)
}
