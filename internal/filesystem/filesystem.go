// filepath: internal/filesystem/filesystem.go
// Package filesystem wraps directory preparation and file move, copy and
// delete operations behind one injectable service.
package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"filekit/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DirMode is the mode new directories are created with, before umask.
const DirMode os.FileMode = 0777

// Tracer observes every filesystem operation. It must not affect control flow.
type Tracer func(op string, args ...string)

// FileSystem performs file operations against an afero.Fs.
type FileSystem struct {
	fs      afero.Fs
	tempDir string
	tracer  Tracer
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithFs replaces the backing filesystem (the OS filesystem by default).
func WithFs(fs afero.Fs) Option {
	return func(f *FileSystem) { f.fs = fs }
}

// WithTracer replaces the default trace-level log tracer.
func WithTracer(t Tracer) Option {
	return func(f *FileSystem) { f.tracer = t }
}

// New creates a FileSystem that allocates temp files under tempDir.
// An empty tempDir falls back to os.TempDir().
func New(tempDir string, opts ...Option) *FileSystem {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	f := &FileSystem{
		fs:      afero.NewOsFs(),
		tempDir: tempDir,
		tracer:  logTracer,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// TempDir returns the staging directory used by CreateTempFile.
func (f *FileSystem) TempDir() string {
	return f.tempDir
}

func logTracer(op string, args ...string) {
	logging.Log.WithFields(logrus.Fields{
		"component": "filesystem",
		"op":        op,
		"args":      args,
	}).Trace("filesystem operation")
}

func (f *FileSystem) trace(op string, args ...string) {
	if f.tracer != nil {
		f.tracer(op, args...)
	}
}

// PrepareDirectory creates path if it is not already a directory.
// It returns the directory path.
func (f *FileSystem) PrepareDirectory(path string) (string, error) {
	f.trace("prepare-directory", path)
	if isDir, err := afero.DirExists(f.fs, path); err == nil && isDir {
		return path, nil
	}
	return f.CreateDirectory(path)
}

// PrepareDirectoryForFile ensures the parent directory of file exists.
// It returns the file path unchanged.
func (f *FileSystem) PrepareDirectoryForFile(file string) (string, error) {
	if _, err := f.PrepareDirectory(filepath.Dir(file)); err != nil {
		return "", err
	}
	return file, nil
}

// CreateDirectory creates path and any missing parents with DirMode.
func (f *FileSystem) CreateDirectory(path string) (string, error) {
	f.trace("create-directory", path)
	if err := f.fs.MkdirAll(path, DirMode); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrDirectoryCreate, path, err)
	}
	// Another writer may have put a file where the directory should be.
	if isDir, err := afero.DirExists(f.fs, path); err != nil || !isDir {
		return "", fmt.Errorf("%w: %s: not a directory", ErrDirectoryCreate, path)
	}
	return path, nil
}

// MoveFile renames from to to, creating to's directory first. When mode is
// not nil it is applied afterwards; a failure there returns the final path
// along with an error matching ErrFileMode, and the move stands.
func (f *FileSystem) MoveFile(from, to string, mode *os.FileMode) (string, error) {
	f.trace("move", from, to)
	if _, err := f.PrepareDirectoryForFile(to); err != nil {
		return "", fmt.Errorf("%w: %s to %s: %w", ErrFileMove, from, to, err)
	}
	if err := f.fs.Rename(from, to); err != nil {
		return "", fmt.Errorf("%w: %s to %s: %w", ErrFileMove, from, to, err)
	}
	if mode != nil {
		if err := f.ChmodFile(to, *mode); err != nil {
			return to, err
		}
	}
	return to, nil
}

// CopyFile duplicates from at to, creating to's directory first. Mode
// handling matches MoveFile.
func (f *FileSystem) CopyFile(from, to string, mode *os.FileMode) (string, error) {
	f.trace("copy", from, to)
	if err := f.copyContents(from, to); err != nil {
		return "", fmt.Errorf("%w: %s to %s: %w", ErrFileCopy, from, to, err)
	}
	if mode != nil {
		if err := f.ChmodFile(to, *mode); err != nil {
			return to, err
		}
	}
	return to, nil
}

func (f *FileSystem) copyContents(from, to string) error {
	src, err := f.fs.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	if _, err := f.PrepareDirectoryForFile(to); err != nil {
		return err
	}
	dst, err := f.fs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		f.fs.Remove(to) // Drop the partial copy
		return err
	}
	return dst.Close()
}

// DeleteFile removes a single file. A missing path fails with ErrFileNotFound.
func (f *FileSystem) DeleteFile(path string) error {
	f.trace("delete", path)
	info, err := f.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrFileDelete, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s: is a directory", ErrFileDelete, path)
	}
	if err := f.fs.Remove(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileDelete, path, err)
	}
	return nil
}

// ChmodFile sets the permission bits of path.
func (f *FileSystem) ChmodFile(path string, mode os.FileMode) error {
	f.trace("chmod", path, fmt.Sprintf("%#o", mode))
	if err := f.fs.Chmod(path, mode); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileMode, path, err)
	}
	return nil
}

// CreateTempFile allocates a unique, empty file in the temp directory and
// returns its path.
func (f *FileSystem) CreateTempFile(prefix string) (string, error) {
	f.trace("create-temp", f.tempDir, prefix)
	if _, err := f.PrepareDirectory(f.tempDir); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTempFile, err)
	}
	tmp, err := afero.TempFile(f.fs, f.tempDir, prefix)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrTempFile, f.tempDir, err)
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrTempFile, name, err)
	}
	return name, nil
}

// SaveFile streams data into path, truncating any existing file.
func (f *FileSystem) SaveFile(data io.Reader, path string) (int64, error) {
	f.trace("save", path)
	out, err := f.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return 0, fmt.Errorf("could not create file: %w", err)
	}
	defer out.Close()

	size, err := io.Copy(out, data)
	if err != nil {
		return 0, fmt.Errorf("could not write file: %w", err)
	}
	return size, nil
}

// Open opens path for reading.
func (f *FileSystem) Open(path string) (afero.File, error) {
	f.trace("open", path)
	file, err := f.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
		}
		return nil, err
	}
	return file, nil
}

// Create creates or truncates path for writing.
func (f *FileSystem) Create(path string) (afero.File, error) {
	f.trace("create", path)
	return f.fs.Create(path)
}

// Stat returns file info for path. A missing path fails with ErrFileNotFound.
func (f *FileSystem) Stat(path string) (os.FileInfo, error) {
	f.trace("stat", path)
	info, err := f.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
		}
		return nil, err
	}
	return info, nil
}

// ReadDir lists the entries of dir sorted by name.
func (f *FileSystem) ReadDir(dir string) ([]os.FileInfo, error) {
	f.trace("read-dir", dir)
	entries, err := afero.ReadDir(f.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, dir, err)
		}
		return nil, err
	}
	return entries, nil
}

// Exists reports whether path exists.
func (f *FileSystem) Exists(path string) (bool, error) {
	f.trace("exists", path)
	return afero.Exists(f.fs, path)
}
