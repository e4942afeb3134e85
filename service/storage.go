package service

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"fintrack/config"

	"github.com/google/uuid"
)

// Storage stores uploaded objects on disk under keys namespaced by user
// id and timestamp, and hands back a durable URL served by the uploads
// route. Writes are not cancellable once issued.
type Storage struct {
	dir     string
	baseURL string
}

// NewStorage creates a storage backed by cfg.Dir.
func NewStorage(cfg *config.StorageConfig) *Storage {
	return &Storage{
		dir:     cfg.Dir,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// Save writes the object and returns its download URL. The key is
// <folder>/<userID>/<millis>_<uuid><ext>; the original filename only
// contributes its extension.
func (s *Storage) Save(folder string, userID uint, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s/%d/%d_%s%s", folder, userID, time.Now().UnixMilli(), uuid.NewString(), ext)

	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write object: %w", err)
	}

	return s.URL(key), nil
}

// URL returns the download URL for a stored key.
func (s *Storage) URL(key string) string {
	return s.baseURL + path.Join("/uploads", key)
}

// Dir returns the root directory objects are stored under.
func (s *Storage) Dir() string {
	return s.dir
}
