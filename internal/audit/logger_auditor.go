// filepath: internal/audit/logger_auditor.go
package audit

import (
	"context"

	"filekit/internal/logging"

	"github.com/sirupsen/logrus"
)

// Ensure LoggerAuditor implements Auditor
var _ Auditor = (*LoggerAuditor)(nil)

// LoggerAuditor writes audit events as JSON lines through its own logger,
// independent of the application log level.
type LoggerAuditor struct {
	enabled bool
	logger  *logrus.Logger
}

// NewLoggerAuditor creates a new instance of LoggerAuditor.
func NewLoggerAuditor(level string, enabled bool) *LoggerAuditor {
	return &LoggerAuditor{
		enabled: enabled,
		logger:  logging.NewLogger(level),
	}
}

// Log records an event using logrus if auditing is enabled.
func (a *LoggerAuditor) Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{}) {
	if !a.enabled {
		return
	}

	fields := logrus.Fields{
		"audit_action":   action,
		"audit_actor":    actor,
		"audit_resource": resource,
	}
	if id := logging.RequestID(ctx); id != "" {
		fields["request_id"] = id
	}

	// Add details flattened into the fields
	for k, v := range details {
		fields["detail."+k] = v
	}

	// Log at INFO level with a specific prefix to make it easy to grep
	a.logger.WithFields(fields).Info("AUDIT EVENT")
}
