package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fintrack/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageSave(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(&config.StorageConfig{Dir: dir})

	url, err := s.Save("transaction-images", 7, "receipt.PNG", strings.NewReader("fake-image-bytes"))
	require.NoError(t, err)

	// key is namespaced by folder and user, keeps only the extension
	assert.True(t, strings.HasPrefix(url, "/uploads/transaction-images/7/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)
	assert.NotContains(t, url, "receipt")

	// the object landed on disk with the uploaded bytes
	key := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "fake-image-bytes", string(data))
}

func TestStorageSave_UniqueKeys(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(&config.StorageConfig{Dir: dir})

	url1, err := s.Save("avatars", 1, "me.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	url2, err := s.Save("avatars", 1, "me.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, url1, url2)
}

func TestStorageURL_BaseURL(t *testing.T) {
	s := NewStorage(&config.StorageConfig{Dir: "./x", BaseURL: "https://cdn.example.com/"})
	assert.Equal(t, "https://cdn.example.com/uploads/avatars/1/k.png", s.URL("avatars/1/k.png"))
}
