// filepath: internal/cli/app.go
package cli

import (
	"errors"
	"fmt"

	"filekit/internal/audit"
	"filekit/internal/config"
	"filekit/internal/filesystem"
	"filekit/internal/logging"
	"filekit/internal/thumbnail"
	"filekit/internal/upload"
)

// app holds the services every command builds from the loaded config.
type app struct {
	fs        *filesystem.FileSystem
	pipeline  *upload.Pipeline
	generator *thumbnail.Generator
	auditor   audit.Auditor
}

// newApp wires the filesystem, pipeline, generator and auditor for c.
func newApp(c *config.Config, opts ...filesystem.Option) (*app, error) {
	fs := filesystem.New(c.Storage.TempDir, opts...)
	if _, err := fs.PrepareDirectory(c.Storage.Root); err != nil {
		return nil, fmt.Errorf("failed to prepare storage root: %w", err)
	}

	generator, err := thumbnail.NewGeneratorFromConfig(c, fs)
	if err != nil {
		return nil, fmt.Errorf("invalid thumbnail settings: %w", err)
	}

	return &app{
		fs:        fs,
		pipeline:  upload.NewPipelineFromConfig(c, fs),
		generator: generator,
		auditor:   audit.NewLoggerAuditor(c.Logging.Level, c.Logging.AuditEnabled),
	}, nil
}

// storagePath resolves a path given relative to the storage root. Paths in
// the staging area are rejected.
func storagePath(c *config.Config, rel string) (string, error) {
	path, err := filesystem.Within(c.Storage.Root, rel)
	if err != nil {
		return "", err
	}
	if c.Storage.TempDir != "" && filesystem.Contains(c.Storage.TempDir, path) {
		return "", fmt.Errorf("%w: %s", filesystem.ErrStagingArea, rel)
	}
	return path, nil
}

// discardStaged removes staged files that were not moved into place.
func (a *app) discardStaged(files []upload.File) {
	for _, f := range files {
		if err := a.fs.DeleteFile(f.TempPath); err != nil && !errors.Is(err, filesystem.ErrFileNotFound) {
			logging.Log.Warnf("Could not remove staged file %s: %v", f.TempPath, err)
		}
	}
}
