// filepath: internal/housekeeping/interfaces.go
package housekeeping

import "os"

// StagingTX defines the filesystem methods required by the housekeeping service.
type StagingTX interface {
	TempDir() string
	ReadDir(dir string) ([]os.FileInfo, error)
	DeleteFile(path string) error
}
