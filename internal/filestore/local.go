// Package filestore persists uploaded binaries under the public asset tree.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores files in a single directory on the local filesystem.
//
// Writes are two-phase: Stage copies the bytes into a temp file in the target
// directory, Commit renames it onto the final name. The rename is atomic, so
// a failure between the database write and Commit never leaves a partially
// written or orphaned file under the final name.
type Local struct {
	dir string
}

// NewLocal creates a store rooted at dir. The directory is created on first
// write, not here.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Dir returns the directory the store writes into.
func (s *Local) Dir() string {
	return s.dir
}

// Path returns the on-disk path for filename.
func (s *Local) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Stage writes the contents of r to a temporary file in the store directory
// and returns its path. The caller must either Commit or Discard it.
func (s *Local) Stage(r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write staging file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close staging file: %w", err)
	}

	return tmp.Name(), nil
}

// Commit atomically moves a staged file onto its final name, replacing any
// existing file of that name.
func (s *Local) Commit(staged, filename string) error {
	if err := os.Rename(staged, s.Path(filename)); err != nil {
		return fmt.Errorf("failed to commit %s: %w", filename, err)
	}
	return nil
}

// Discard removes a staged file that will not be committed.
func (s *Local) Discard(staged string) error {
	if err := os.Remove(staged); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to discard staged file: %w", err)
	}
	return nil
}

// Remove deletes the named file. Removing a file that does not exist
// returns os.ErrNotExist.
func (s *Local) Remove(filename string) error {
	return os.Remove(s.Path(filename))
}
