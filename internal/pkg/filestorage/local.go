package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dawitf/ece-backend/internal/pkg/logger"
)

// LocalStorage stores objects on the local filesystem and serves them
// from a static route.
type LocalStorage struct {
	basePath string // root directory where objects are stored
	baseURL  string // URL prefix objects are reachable at
}

// NewLocalStorage creates a LocalStorage rooted at basePath.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath, baseURL: baseURL}, nil
}

// sanitizeKey keeps only the final path element so keys cannot escape
// the storage root.
func sanitizeKey(key string) (string, error) {
	name := filepath.Base(strings.TrimSpace(key))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid object key: %q", key)
	}
	return name, nil
}

// Put stores the object under key and returns its URL.
func (ls *LocalStorage) Put(key string, r io.Reader, contentType string) (string, error) {
	name, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}

	dstPath := filepath.Join(ls.basePath, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create object file")
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write object content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to write object content: %w", err)
	}

	url := strings.TrimRight(ls.baseURL, "/") + "/" + name
	logger.Info().Str("key", name).Str("url", url).Str("contentType", contentType).Msg("Object stored")
	return url, nil
}

// Delete removes the object stored under key. A missing object is
// treated as already deleted.
func (ls *LocalStorage) Delete(key string) error {
	name, err := sanitizeKey(key)
	if err != nil {
		return err
	}

	path := filepath.Join(ls.basePath, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn().Str("path", path).Msg("Object to delete does not exist")
		return nil
	}
	if err := os.Remove(path); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}

	logger.Info().Str("key", name).Msg("Object deleted")
	return nil
}
