// internal/api/handlers/responses.go
package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is a standard format for API error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UploadResponse lists the final names of a persisted batch, in request order.
type UploadResponse struct {
	Files []string `json:"files"`
}

// ThumbnailRequest is the body of POST /api/thumbnail. Paths are relative
// to the storage root.
type ThumbnailRequest struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Dir    string `json:"dir"`
	Name   string `json:"name"`
}

// ThumbnailResponse holds the storage-relative path of a new thumbnail.
type ThumbnailResponse struct {
	Path string `json:"path"`
}

// HousekeepingResponse summarizes a manual staging cleanup.
type HousekeepingResponse struct {
	FilesDeleted    int    `json:"files_deleted"`
	SpaceFreedBytes int64  `json:"space_freed_bytes"`
	Message         string `json:"message"`
}

// respondWithError sends a JSON error response.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
