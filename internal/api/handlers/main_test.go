// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"context"

	"filekit/internal/audit"
	"filekit/internal/housekeeping"
	"filekit/internal/thumbnail"
	"filekit/internal/upload"

	"github.com/stretchr/testify/mock"
)

// --- MOCK AUDITOR ---
type MockAuditor struct {
	mock.Mock
}

var _ audit.Auditor = (*MockAuditor)(nil)

func (m *MockAuditor) Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{}) {
	m.Called(ctx, action, actor, resource, details)
}

// --- MOCK UPLOADER ---
type MockUploader struct {
	mock.Mock
}

var _ Uploader = (*MockUploader)(nil)

func (m *MockUploader) HandleUploadedFiles(ctx context.Context, req upload.Request) (*upload.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upload.Result), args.Error(1)
}

// --- MOCK THUMBNAILER ---
type MockThumbnailer struct {
	mock.Mock
}

var _ Thumbnailer = (*MockThumbnailer)(nil)

func (m *MockThumbnailer) Generate(ctx context.Context, req thumbnail.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// --- MOCK HOUSEKEEPER ---
type MockHousekeeper struct {
	mock.Mock
}

var _ Housekeeper = (*MockHousekeeper)(nil)

func (m *MockHousekeeper) RunNow() (*housekeeping.Report, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*housekeeping.Report), args.Error(1)
}
