// Package storage provides the bucket-structured file store backing icon,
// picture, and gallery uploads. Buckets are directories under a configured
// root; public URLs are served from the application's /files route.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"barboard/internal/config"
)

// FileStore implements backend.Storage on the local filesystem.
type FileStore struct {
	root    string
	baseURL string
}

// New prepares the store root and returns a FileStore.
func New(cfg config.StorageConfig) (*FileStore, error) {
	root := strings.TrimSpace(cfg.Root)
	if root == "" {
		return nil, fmt.Errorf("storage root must not be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("prepare storage root: %w", err)
	}
	return &FileStore{
		root:    root,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Root exposes the store root so the router can serve it.
func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) Upload(ctx context.Context, bucket, path string, content io.Reader, upsert bool) (string, error) {
	stored, err := s.resolve(bucket, path)
	if err != nil {
		return "", err
	}

	if !upsert {
		// Keep the existing object and store under a uniquified name
		// instead of overwriting.
		if _, statErr := os.Stat(filepath.Join(s.root, bucket, filepath.FromSlash(stored))); statErr == nil {
			stored = uniquify(stored)
		}
	}

	target := filepath.Join(s.root, bucket, filepath.FromSlash(stored))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("prepare bucket %s: %w", bucket, err)
	}

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create object %s/%s: %w", bucket, stored, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return "", fmt.Errorf("write object %s/%s: %w", bucket, stored, err)
	}
	return stored, nil
}

func (s *FileStore) Remove(ctx context.Context, bucket, path string) error {
	stored, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, bucket, filepath.FromSlash(stored))); err != nil {
		return fmt.Errorf("remove object %s/%s: %w", bucket, stored, err)
	}
	return nil
}

func (s *FileStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/files/%s/%s", s.baseURL, bucket, strings.TrimLeft(path, "/"))
}

func (s *FileStore) resolve(bucket, path string) (string, error) {
	if strings.TrimSpace(bucket) == "" || strings.ContainsAny(bucket, `/\`) {
		return "", fmt.Errorf("invalid bucket %q", bucket)
	}
	cleaned := strings.TrimLeft(filepath.ToSlash(path), "/")
	if cleaned == "" || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return cleaned, nil
}

func uniquify(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s-%s%s", base, uuid.New().String()[:8], ext)
}
