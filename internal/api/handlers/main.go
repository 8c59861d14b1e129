// filepath: internal/api/handlers/main.go
package handlers

import (
	"context"
	"io"
	"time"

	"filekit/internal/audit"
	"filekit/internal/config"
	"filekit/internal/housekeeping"
	"filekit/internal/thumbnail"
	"filekit/internal/upload"
)

// Uploader runs a staged batch through validation and persistence.
type Uploader interface {
	HandleUploadedFiles(ctx context.Context, req upload.Request) (*upload.Result, error)
}

// Thumbnailer derives a resized image from a stored file.
type Thumbnailer interface {
	Generate(ctx context.Context, req thumbnail.Request) (string, error)
}

// Storage is the subset of filesystem operations the handlers perform directly.
type Storage interface {
	TempDir() string
	CreateTempFile(prefix string) (string, error)
	SaveFile(data io.Reader, path string) (int64, error)
	DeleteFile(path string) error
}

// Housekeeper clears orphaned staged files on demand.
type Housekeeper interface {
	RunNow() (*housekeeping.Report, error)
}

// ServiceInfo is returned by the public info endpoint.
type ServiceInfo struct {
	ServiceName string    `json:"service_name"`
	Version     string    `json:"version"`
	UptimeSince time.Time `json:"uptime_since"`
}

// Handlers provides a struct to hold shared dependencies for API handlers.
type Handlers struct {
	Uploads      Uploader
	Thumbnails   Thumbnailer
	Storage      Storage
	Housekeeping Housekeeper
	Auditor      audit.Auditor

	Info ServiceInfo
	Cfg  *config.Config
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	uploads Uploader,
	thumbnails Thumbnailer,
	storage Storage,
	housekeeper Housekeeper,
	auditor audit.Auditor,
	info ServiceInfo,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		Uploads:      uploads,
		Thumbnails:   thumbnails,
		Storage:      storage,
		Housekeeping: housekeeper,
		Auditor:      auditor,
		Info:         info,
		Cfg:          cfg,
	}
}
