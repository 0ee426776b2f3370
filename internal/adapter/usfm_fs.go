// Package adapter contains filesystem, git, and export adapters for the
// emend CLI.
package adapter

import (
	"os"
	"path/filepath"

	"emend.dev/pkg/emend/internal/model"
	"emend.dev/pkg/emend/pkg"
)

// SourceFS abstracts the filesystem operations the domain layer relies on
// when scanning and correcting USFM repositories. It hides direct `os`
// access so the indexing and correction logic can be tested without
// touching the disk.
type SourceFS interface {
	// Walk traverses the whole tree under root, recursively.
	Walk(root model.Path, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path model.Path) ([]byte, error)

	// Stat returns metadata for a path so callers can check existence or
	// distinguish files from directories.
	Stat(path model.Path) (os.FileInfo, error)

	// WriteFileAtomic replaces the file at path with data via the
	// temp-file-then-rename pattern, so the file is never observed in a
	// partially written state.
	WriteFileAtomic(path model.Path, data []byte, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target model.Path) (model.Path, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into
// the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFS is the concrete SourceFS over the local filesystem.
type LocalSourceFS struct{}

// NewLocalSourceFS constructs a LocalSourceFS ready to be wired into the
// session.
func NewLocalSourceFS() *LocalSourceFS {
	return &LocalSourceFS{}
}

// Walk iterates over every file under root, descending into subdirectories.
func (a *LocalSourceFS) Walk(root model.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFS) ReadFile(path model.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// Stat returns os.FileInfo metadata for the given path.
func (a *LocalSourceFS) Stat(path model.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// WriteFileAtomic replaces path with data without ever exposing a
// half-written file.
func (a *LocalSourceFS) WriteFileAtomic(path model.Path, data []byte, perm os.FileMode) error {
	return pkg.WriteFileAtomic(string(path), data, perm)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFS) RelPath(base, target model.Path) (model.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return model.Path(rel), nil
}
