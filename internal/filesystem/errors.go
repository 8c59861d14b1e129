// filepath: internal/filesystem/errors.go
package filesystem

import "errors"

// Errors returned by FileSystem. Each failure wraps one of these sentinels
// together with the underlying OS error, so errors.Is matches either.
var (
	ErrDirectoryCreate = errors.New("could not create directory")
	ErrFileMove        = errors.New("could not move file")
	ErrFileCopy        = errors.New("could not copy file")
	ErrFileDelete      = errors.New("could not delete file")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileMode        = errors.New("could not change file mode")
	ErrTempFile        = errors.New("could not create temp file")
	ErrOutsideRoot     = errors.New("path escapes storage root")
	ErrStagingArea     = errors.New("path is inside the staging area")
)
