// filepath: internal/api/handlers/utils.go
package handlers

import (
	"errors"
	"fmt"
	"path/filepath"

	"filekit/internal/filesystem"
)

// resolve maps a client-supplied relative path onto the storage root.
// The staging area is off limits even when it lies below the root.
func (h *Handlers) resolve(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", filesystem.ErrOutsideRoot
	}
	path, err := filesystem.Within(h.Cfg.Storage.Root, rel)
	if err != nil {
		return "", err
	}
	if filesystem.Contains(h.Storage.TempDir(), path) {
		return "", fmt.Errorf("%w: %s", filesystem.ErrStagingArea, rel)
	}
	return path, nil
}

// relative turns an absolute storage path back into the client's view.
func (h *Handlers) relative(path string) string {
	rel, err := filepath.Rel(filepath.Clean(h.Cfg.Storage.Root), path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// discard removes a staged file that never reached its destination.
func (h *Handlers) discard(path string) error {
	if err := h.Storage.DeleteFile(path); err != nil && !errors.Is(err, filesystem.ErrFileNotFound) {
		return err
	}
	return nil
}
