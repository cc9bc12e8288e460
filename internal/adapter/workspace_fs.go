// Package adapter contains filesystem and process adapters for the hlsweep CLI.
package adapter

import (
	"io"
	"os"
	"path/filepath"

	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

// WorkspaceFS abstracts the filesystem operations the domain layer needs for
// workspace lifecycle and artifact collection. It hides direct `os` access so
// the sweep logic can be tested without touching the disk.
type WorkspaceFS interface {
	// RemoveAll removes a directory and all its contents.
	RemoveAll(path m.Path) error

	// MkdirAll creates a directory along with any missing parents.
	MkdirAll(path m.Path) error

	// Stat returns metadata for a path so the domain can check existence.
	Stat(path m.Path) (os.FileInfo, error)

	// CopyFile copies a single file, preserving the source.
	CopyFile(src, dst m.Path) error

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error
}

// LocalWorkspaceFS is the os-backed implementation of WorkspaceFS.
type LocalWorkspaceFS struct{}

// NewLocalWorkspaceFS constructs a LocalWorkspaceFS ready to be wired into
// the sweep domain.
func NewLocalWorkspaceFS() *LocalWorkspaceFS {
	return &LocalWorkspaceFS{}
}

// RemoveAll removes a directory and all its contents.
func (a *LocalWorkspaceFS) RemoveAll(path m.Path) error {
	return os.RemoveAll(string(path))
}

// MkdirAll creates a directory along with any missing parents.
func (a *LocalWorkspaceFS) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// Stat returns os.FileInfo metadata for the given path.
func (a *LocalWorkspaceFS) Stat(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// CopyFile copies src to dst, creating dst's directory if needed.
func (a *LocalWorkspaceFS) CopyFile(src, dst m.Path) error {
	// #nosec G304 - src is a workspace-internal path, not user input
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is a results-directory path derived from the point
	destFile, err := os.Create(string(dst))
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return os.Chmod(string(dst), info.Mode())
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalWorkspaceFS) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}
