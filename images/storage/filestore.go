package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rgeary/imagehost/images/domain"
)

var _ domain.FileStore = (*DiskStore)(nil)

// DiskStore keeps uploaded content in a single flat directory. Filenames are
// server-generated and unique per upload, so concurrent writers never touch
// the same path.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the storage directory if needed and returns a store
// rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory cannot be empty")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", abs, err)
	}

	return &DiskStore{dir: abs}, nil
}

// Dir returns the absolute storage directory.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save publishes content under filename atomically: the bytes go to a temp
// file in the same directory, are synced, and then renamed into place. A
// partially written file is never visible under the final name.
func (s *DiskStore) Save(filename string, content []byte) error {
	target, err := s.Path(filename)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to publish %s: %w", filename, err)
	}

	return nil
}

// Remove deletes the named file. A file that is already gone is reported as
// domain.ErrFileMissing so the caller can decide whether that matters.
func (s *DiskStore) Remove(filename string) error {
	target, err := s.Path(filename)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrFileMissing
		}
		return fmt.Errorf("failed to remove %s: %w", filename, err)
	}

	return nil
}

// Path resolves filename to an absolute path inside the store. Names with
// path separators or traversal components are rejected.
func (s *DiskStore) Path(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	if filepath.Base(filename) != filename || filename == "." || filename == ".." {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	return filepath.Join(s.dir, filename), nil
}
