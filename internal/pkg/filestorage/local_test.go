package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoragePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := ls.Put("lecture-notes.pdf", strings.NewReader("content"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/lecture-notes.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "lecture-notes.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	require.NoError(t, ls.Delete("lecture-notes.pdf"))
	_, err = os.Stat(filepath.Join(dir, "lecture-notes.pdf"))
	assert.True(t, os.IsNotExist(err))

	// Deleting an absent object is not an error.
	assert.NoError(t, ls.Delete("lecture-notes.pdf"))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := ls.Put("../../etc/passwd", strings.NewReader("x"), "text/plain")
	require.NoError(t, err)
	// The key is flattened to its base name.
	assert.Equal(t, "http://localhost:8080/uploads/passwd", url)
	_, statErr := os.Stat(filepath.Join(dir, "passwd"))
	assert.NoError(t, statErr)
}
