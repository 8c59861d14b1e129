// filepath: internal/api/handlers/housekeeping_handler.go
package handlers

import (
	"net/http"

	"filekit/internal/api/auth"
	"filekit/internal/audit"
	"filekit/internal/logging"
)

// TriggerHousekeeping removes orphaned staged files immediately instead of
// waiting for the next scheduled run.
func (h *Handlers) TriggerHousekeeping(w http.ResponseWriter, r *http.Request) {
	if h.Housekeeping == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Housekeeping is not available.")
		return
	}

	report, err := h.Housekeeping.RunNow()
	if err != nil {
		logging.Log.Errorf("Housekeeping: manual run failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Housekeeping failed.")
		return
	}

	h.Auditor.Log(r.Context(), audit.ActionHousekeeping, auth.ActorFromContext(r.Context()), "staging", map[string]interface{}{
		"files_deleted": report.FilesDeleted,
		"space_freed":   report.SpaceFreedBytes,
	})

	respondWithJSON(w, http.StatusOK, HousekeepingResponse{
		FilesDeleted:    report.FilesDeleted,
		SpaceFreedBytes: report.SpaceFreedBytes,
		Message:         report.Message,
	})
}
