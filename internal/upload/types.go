// filepath: internal/upload/types.go
// Package upload validates a batch of staged files as a whole and then moves
// every file into its final directory.
package upload

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidUpload matches every validation rejection.
var ErrInvalidUpload = errors.New("invalid upload")

// File is one staged upload: the client's original name and the temporary
// location the bytes were written to.
type File struct {
	Name     string
	TempPath string
	Size     int64
	MimeType string // as declared by the client
}

// BaseName returns the original name without directory or extension.
func (f File) BaseName() string {
	base, _ := splitName(f.Name)
	return base
}

// Extension returns the original extension without the leading dot.
func (f File) Extension() string {
	_, ext := splitName(f.Name)
	return ext
}

// splitName splits "archive.tar.gz" into "archive.tar" and "gz".
func splitName(name string) (string, string) {
	name = cleanName(name)
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), strings.TrimPrefix(ext, ".")
}

// cleanName strips any directory part a client may have sent.
func cleanName(name string) string {
	name = filepath.Base(filepath.FromSlash(strings.ReplaceAll(name, `\`, "/")))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// NameFunc maps an original base name and extension to the final file name.
// The result is used verbatim; no extension is appended.
type NameFunc func(base, ext string) string

// Request is one batch of staged files bound for Directory.
type Request struct {
	Files     []File
	Directory string
	NameFunc  NameFunc // nil keeps the original name
}

// Result lists the persisted files in request order.
type Result struct {
	Names []string
	Paths []string
}

// InvalidUploadError reports the first rule that rejected an entry.
type InvalidUploadError struct {
	Index  int
	Name   string
	Reason string
}

func (e *InvalidUploadError) Error() string {
	return fmt.Sprintf("invalid upload %q: %s", e.Name, e.Reason)
}

func (e *InvalidUploadError) Unwrap() error {
	return ErrInvalidUpload
}
