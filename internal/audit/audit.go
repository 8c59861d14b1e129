// filepath: internal/audit/audit.go
package audit

import "context"

// Actions recorded by the HTTP and CLI layers.
const (
	ActionUpload    = "file.upload"
	ActionThumbnail = "file.thumbnail"
	ActionDelete    = "file.delete"

	ActionHousekeeping = "staging.cleanup"
)

// Auditor defines the interface for logging security-sensitive events.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "file.upload", "file.delete")
	// actor: who did it ("api-key", "anonymous", "cli")
	// resource: what was affected (a directory or file path)
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}
