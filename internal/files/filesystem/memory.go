package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Op names a filesystem operation for fault injection.
type Op string

const (
	OpOpen   Op = "open"
	OpCreate Op = "create"
	OpWrite  Op = "write" // writing to a file returned by Create
	OpStat   Op = "stat"
	OpRemove Op = "remove"
	OpRename Op = "rename"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

type fault struct {
	op   Op
	path string // empty matches any path
	err  error
}

// MemoryFileSystem implements FileSystem for in-memory testing.
// Directories are implicit.
type MemoryFileSystem struct {
	mu     sync.Mutex
	files  map[string]*memoryFile // map of absolute path -> file
	root   string                 // root directory path
	faults []fault
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  path.Clean(filepath.ToSlash(root)),
	}
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[mfs.abs(filePath)] = &memoryFile{
		content: []byte(content),
		mode:    0644,
		modTime: modTime,
	}
}

// FailOn makes every later op on filePath fail with err. An empty filePath
// matches all paths.
func (mfs *MemoryFileSystem) FailOn(op Op, filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if filePath != "" {
		filePath = mfs.abs(filePath)
	}
	mfs.faults = append(mfs.faults, fault{op: op, path: filePath, err: err})
}

// Exists reports whether a file is present.
func (mfs *MemoryFileSystem) Exists(filePath string) bool {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	_, ok := mfs.files[mfs.abs(filePath)]
	return ok
}

// Paths returns the absolute paths of all files, sorted.
func (mfs *MemoryFileSystem) Paths() []string {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	paths := make([]string, 0, len(mfs.files))
	for p := range mfs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// abs calculates the absolute path within the virtual filesystem
func (mfs *MemoryFileSystem) abs(filePath string) string {
	filePath = filepath.ToSlash(filePath)
	if !path.IsAbs(filePath) {
		filePath = path.Join(mfs.root, filePath)
	}
	return path.Clean(filePath)
}

func (mfs *MemoryFileSystem) fault(op Op, absPath string) error {
	for _, f := range mfs.faults {
		if f.op == op && (f.path == "" || f.path == absPath) {
			return &fs.PathError{Op: string(op), Path: absPath, Err: f.err}
		}
	}
	return nil
}

func notExist(op Op, p string) error {
	return &fs.PathError{Op: string(op), Path: p, Err: fs.ErrNotExist}
}

// Open implements FileSystem.Open
func (mfs *MemoryFileSystem) Open(filePath string) (io.ReadCloser, error) {
	content, err := mfs.read(OpOpen, filePath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// ReadFile implements FileSystem.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, err := mfs.read(OpOpen, filePath)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(content), nil
}

func (mfs *MemoryFileSystem) read(op Op, filePath string) ([]byte, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	absPath := mfs.abs(filePath)
	if err := mfs.fault(op, absPath); err != nil {
		return nil, err
	}
	file, ok := mfs.files[absPath]
	if !ok {
		return nil, notExist(op, absPath)
	}
	return file.content, nil
}

// Create implements FileSystem.Create. Content becomes visible on Close.
func (mfs *MemoryFileSystem) Create(filePath string, perm fs.FileMode) (io.WriteCloser, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	absPath := mfs.abs(filePath)
	if err := mfs.fault(OpCreate, absPath); err != nil {
		return nil, err
	}
	mfs.files[absPath] = &memoryFile{mode: perm, modTime: time.Now()}
	return &memoryWriter{mfs: mfs, path: absPath, writeErr: mfs.fault(OpWrite, absPath)}, nil
}

// WriteFile implements FileSystem.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	w, err := mfs.Create(filePath, perm)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Stat implements FileSystem.Stat
func (mfs *MemoryFileSystem) Stat(filePath string) (FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	absPath := mfs.abs(filePath)
	if err := mfs.fault(OpStat, absPath); err != nil {
		return nil, err
	}
	file, ok := mfs.files[absPath]
	if !ok {
		return nil, notExist(OpStat, absPath)
	}
	return &memoryFileInfo{
		name:    path.Base(absPath),
		size:    int64(len(file.content)),
		mode:    file.mode,
		modTime: file.modTime,
	}, nil
}

// Remove implements FileSystem.Remove
func (mfs *MemoryFileSystem) Remove(filePath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	absPath := mfs.abs(filePath)
	if err := mfs.fault(OpRemove, absPath); err != nil {
		return err
	}
	if _, ok := mfs.files[absPath]; !ok {
		return notExist(OpRemove, absPath)
	}
	delete(mfs.files, absPath)
	return nil
}

// Rename implements FileSystem.Rename. Faults match the old path.
func (mfs *MemoryFileSystem) Rename(oldPath, newPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	from, to := mfs.abs(oldPath), mfs.abs(newPath)
	if err := mfs.fault(OpRename, from); err != nil {
		return err
	}
	file, ok := mfs.files[from]
	if !ok {
		return notExist(OpRename, from)
	}
	mfs.files[to] = file
	delete(mfs.files, from)
	return nil
}

// memoryWriter buffers writes and stores them in the file on Close
type memoryWriter struct {
	mfs      *MemoryFileSystem
	path     string
	buf      bytes.Buffer
	writeErr error
	closed   bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("write %s: %w", w.path, fs.ErrClosed)
	}
	if w.writeErr != nil {
		return 0, w.writeErr
	}
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	if w.closed {
		return fmt.Errorf("close %s: %w", w.path, fs.ErrClosed)
	}
	w.closed = true
	w.mfs.mu.Lock()
	defer w.mfs.mu.Unlock()
	if file, ok := w.mfs.files[w.path]; ok {
		file.content = bytes.Clone(w.buf.Bytes())
	}
	return nil
}
