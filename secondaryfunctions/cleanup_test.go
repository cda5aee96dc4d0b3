package secondaryfunctions

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func TestCleanupOldFilesDeletesOnlyStalePDFs(t *testing.T) {
	dir := t.TempDir()
	stale := writeAged(t, dir, "ATC265788.pdf", 40*24*time.Hour)
	fresh := writeAged(t, dir, "ATC300001.pdf", 2*24*time.Hour)
	other := writeAged(t, dir, "notes.txt", 40*24*time.Hour)

	deleted, err := CleanupOldFiles(dir, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, other, "non-PDF files are never touched")
}

func TestCleanupOldFilesSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.pdf"), 0o755))

	deleted, err := CleanupOldFiles(dir, 0)
	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.DirExists(t, filepath.Join(dir, "archive.pdf"))
}

func TestCleanupOldFilesMissingDir(t *testing.T) {
	deleted, err := CleanupOldFiles(filepath.Join(t.TempDir(), "nope"), 30)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestLocalStorageSaveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "certs")
	s := &LocalStorage{Dir: dir}

	require.NoError(t, s.Save("ATC265788.pdf", []byte("%PDF-1.4")))
	data, err := os.ReadFile(filepath.Join(dir, "ATC265788.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}
