// Package replace rewrites a file in place without ever exposing a partial
// result: the original is backed up, the new content is written to a sibling
// temporary file, and the temporary file is renamed over the original.
package replace

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vvka-141/buildmeta/internal/checksum"
	"github.com/vvka-141/buildmeta/internal/files/filesystem"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// TransformFunc reads the original content from src and writes the new
// content to dst.
type TransformFunc func(src io.Reader, dst io.Writer) error

// Replacer performs backup, transform and swap of a single file.
type Replacer struct {
	fs       filesystem.FileSystem
	checksum checksum.Calculator
	logger   buildmeta.Logger
	newID    func() string
}

// NewReplacer creates a Replacer working on fs.
func NewReplacer(fs filesystem.FileSystem, logger buildmeta.Logger) *Replacer {
	return &Replacer{
		fs:       fs,
		checksum: checksum.New(),
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// BackupPath returns <name>-backup<ext> next to sourcePath.
func BackupPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext) + buildmeta.BackupSuffix + ext
}

// TempPath returns the hidden sibling used while writing sourcePath.
func TempPath(sourcePath, id string) string {
	dir, base := filepath.Split(sourcePath)
	return filepath.Join(dir, "."+base+"."+id+".tmp")
}

// Replace backs up sourcePath, runs fn from the original into a temporary
// file, and moves the result into place.
//
// The original stays untouched unless the returned error is ErrReplace or
// ErrAtomicMove. After ErrAtomicMove the original no longer exists and the
// backup is the way back.
func (r *Replacer) Replace(sourcePath string, fn TransformFunc) error {
	info, err := r.fs.Stat(sourcePath)
	if err != nil {
		return &buildmeta.DocumentError{
			FilePath: sourcePath,
			Kind:     buildmeta.ErrBackup,
			Message:  "cannot read descriptor",
			Hint:     "Check that the file exists and is readable.",
			Err:      err,
		}
	}
	if info.IsDir() {
		return &buildmeta.DocumentError{
			FilePath: sourcePath,
			Kind:     buildmeta.ErrBackup,
			Message:  "descriptor is a directory",
			Hint:     "Point --file at the XML file itself.",
		}
	}
	perm := info.Mode().Perm()

	backupPath := BackupPath(sourcePath)
	if err := r.backup(sourcePath, backupPath, perm); err != nil {
		return err
	}
	r.logger.Verbose("Backup written to %s", backupPath)

	tempPath := TempPath(sourcePath, r.newID())
	if err := r.writeTemp(sourcePath, tempPath, perm, fn); err != nil {
		if rmErr := r.fs.Remove(tempPath); rmErr != nil && !errors.Is(rmErr, iofs.ErrNotExist) {
			r.logger.Warn("Could not remove temporary file %s: %v", tempPath, rmErr)
		}
		return buildmeta.WithFile(err, sourcePath)
	}
	r.logger.Verbose("Transformed content written to %s", tempPath)

	if err := r.fs.Remove(sourcePath); err != nil {
		return &buildmeta.DocumentError{
			FilePath: sourcePath,
			Kind:     buildmeta.ErrReplace,
			Message:  "cannot delete the original to put the new version in place",
			Hint:     fmt.Sprintf("The original is unchanged. The new content was kept in %s.", tempPath),
			Err:      err,
		}
	}

	if err := r.fs.Rename(tempPath, sourcePath); err != nil {
		return &buildmeta.DocumentError{
			FilePath: sourcePath,
			Kind:     buildmeta.ErrAtomicMove,
			Message:  "original deleted but the new version could not be moved into place",
			Hint:     fmt.Sprintf("Restore the file from %s or %s.", backupPath, tempPath),
			Err:      err,
		}
	}

	r.logger.Verbose("Replaced %s", sourcePath)
	return nil
}

// backup copies sourcePath to backupPath and checks both hash the same.
func (r *Replacer) backup(sourcePath, backupPath string, perm iofs.FileMode) error {
	fail := func(msg string, err error) error {
		return &buildmeta.DocumentError{
			FilePath: sourcePath,
			Kind:     buildmeta.ErrBackup,
			Message:  msg,
			Hint:     fmt.Sprintf("Nothing was changed. Check that %s can be written.", backupPath),
			Err:      err,
		}
	}

	if err := r.copyFile(sourcePath, backupPath, perm); err != nil {
		return fail("cannot create backup", err)
	}

	want, err := r.sum(sourcePath)
	if err != nil {
		return fail("cannot verify backup", err)
	}
	got, err := r.sum(backupPath)
	if err != nil {
		return fail("cannot verify backup", err)
	}
	if got != want {
		return fail(fmt.Sprintf("backup %s differs from the original", backupPath), nil)
	}
	return nil
}

func (r *Replacer) copyFile(from, to string, perm iofs.FileMode) error {
	src, err := r.fs.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := r.fs.Create(to, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func (r *Replacer) sum(path string) (string, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return r.checksum.CalculateReader(f)
}

func (r *Replacer) writeTemp(sourcePath, tempPath string, perm iofs.FileMode, fn TransformFunc) error {
	src, err := r.fs.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", sourcePath, err)
	}
	defer src.Close()

	dst, err := r.fs.Create(tempPath, perm)
	if err != nil {
		return writeError(tempPath, err)
	}

	if err := fn(src, dst); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return writeError(tempPath, err)
	}
	return nil
}

func writeError(tempPath string, err error) error {
	return &buildmeta.DocumentError{
		Kind:    buildmeta.ErrWrite,
		Message: fmt.Sprintf("cannot write temporary file %s", tempPath),
		Hint:    "Check free disk space and permissions of the target directory.",
		Err:     err,
	}
}
