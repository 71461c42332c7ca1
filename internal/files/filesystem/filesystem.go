package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystem is the set of file operations needed to replace a file
// through a sibling temporary file.
type FileSystem interface {
	// Open opens a file for reading
	Open(path string) (io.ReadCloser, error)

	// Create creates or truncates a file for writing with the given permissions
	Create(path string, perm fs.FileMode) (io.WriteCloser, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// Remove deletes a file
	Remove(path string) error

	// Rename moves oldPath to newPath, replacing newPath if it exists
	Rename(oldPath, newPath string) error
}
