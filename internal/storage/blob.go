// Package storage holds deal-locker file bytes. The interface mirrors
// what a hosted object store offers so the filesystem implementation
// can be swapped without touching the document service.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/syndicate-plus/syndicate-service/internal/config"
)

// BlobStore persists raw file content under an opaque key.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) (url string, err error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type fsBlobStore struct {
	dir     string
	baseURL string
}

// NewFSBlobStore returns a filesystem-backed store rooted at cfg.BlobDir.
func NewFSBlobStore(cfg config.StorageConfig, baseURL string) (BlobStore, error) {
	if err := os.MkdirAll(cfg.BlobDir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &fsBlobStore{dir: cfg.BlobDir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *fsBlobStore) Put(_ context.Context, key string, data []byte) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/blobs/" + key, nil
}

func (s *fsBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (s *fsBlobStore) Delete(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// resolve rejects keys that would escape the blob root.
func (s *fsBlobStore) resolve(key string) (string, error) {
	cleaned := filepath.Clean(key)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, cleaned), nil
}
