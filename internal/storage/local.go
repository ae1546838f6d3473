package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps blobs in a directory tree with one subdirectory per area.
type LocalStore struct {
	root string
}

// NewLocalStore creates the area directories under root if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	for _, area := range []Area{AreaPending, AreaApproved} {
		if err := os.MkdirAll(filepath.Join(root, string(area)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory for %s: %w", area, err)
		}
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) path(area Area, name string) string {
	return filepath.Join(s.root, string(area), filepath.Base(name))
}

// Save writes the object into the given area.
func (s *LocalStore) Save(ctx context.Context, area Area, name string, r io.Reader, size int64) error {
	f, err := os.Create(s.path(area, name))
	if err != nil {
		return fmt.Errorf("failed to create blob %s/%s: %w", area, name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write blob %s/%s: %w", area, name, err)
	}
	return nil
}

// Move relocates the object between areas.
func (s *LocalStore) Move(ctx context.Context, from, to Area, name string) error {
	if err := os.Rename(s.path(from, name), s.path(to, name)); err != nil {
		return fmt.Errorf("failed to move blob %s from %s to %s: %w", name, from, to, err)
	}
	return nil
}

// Delete removes the object from the area.
func (s *LocalStore) Delete(ctx context.Context, area Area, name string) error {
	if err := os.Remove(s.path(area, name)); err != nil {
		if os.IsNotExist(err) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("failed to delete blob %s/%s: %w", area, name, err)
	}
	return nil
}

// Exists reports whether the object is present in the area.
func (s *LocalStore) Exists(ctx context.Context, area Area, name string) (bool, error) {
	_, err := os.Stat(s.path(area, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
