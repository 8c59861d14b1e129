// filepath: internal/housekeeping/tasks.go
package housekeeping

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"filekit/internal/filesystem"
	"filekit/internal/logging"

	"github.com/dustin/go-humanize"
)

// Report summarizes one cleanup run.
type Report struct {
	FilesDeleted    int
	SpaceFreedBytes int64
	Message         string
}

// RunStagingCleanup deletes staged files last modified more than maxAge
// before now. Staged files normally live for one request; anything older was
// orphaned by a crash or an aborted client.
func RunStagingCleanup(staging StagingTX, maxAge time.Duration, now time.Time) (*Report, error) {
	dir := staging.TempDir()
	report := &Report{}

	entries, err := staging.ReadDir(dir)
	if err != nil {
		if errors.Is(err, filesystem.ErrFileNotFound) {
			report.Message = fmt.Sprintf("Staging area '%s' does not exist yet. Nothing to clean.", dir)
			return report, nil
		}
		return nil, fmt.Errorf("could not list staging area: %w", err)
	}

	cutoff := now.Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() || !entry.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := staging.DeleteFile(path); err != nil {
			// A request may have moved the file in the meantime
			if !errors.Is(err, filesystem.ErrFileNotFound) {
				logging.Log.Warnf("Housekeeping: Failed to delete staged file: %v", err)
			}
			continue
		}

		report.FilesDeleted++
		report.SpaceFreedBytes += entry.Size()
	}

	report.Message = fmt.Sprintf("Housekeeping complete for '%s'. %d staged files deleted, freeing %s.",
		dir, report.FilesDeleted, humanize.IBytes(uint64(report.SpaceFreedBytes)))

	return report, nil
}
