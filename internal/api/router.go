// filepath: internal/api/router.go
package api

import (
	"net/http"

	"filekit/internal/api/auth"
	"filekit/internal/api/handlers"

	"github.com/gorilla/mux"
)

// SetupRouter configures the main router and its sub-routers.
func SetupRouter(h *handlers.Handlers, am *auth.Middleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)
	r.NotFoundHandler = RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Not found")
	}))
	r.MethodNotAllowedHandler = RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}))

	// Public Endpoints
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	r.HandleFunc("/info", h.GetInfo).Methods("GET")

	// Authenticated API Routes
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(am.AuthMiddleware)
	addFileRoutes(apiRouter, h)
	addAdminRoutes(apiRouter, h)

	return r
}

// addFileRoutes configures routes that touch stored files.
func addFileRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/upload", h.UploadFiles).Methods("POST")
	r.HandleFunc("/thumbnail", h.CreateThumbnail).Methods("POST")
	r.HandleFunc("/file", h.DeleteFile).Methods("DELETE")
}

// addAdminRoutes configures maintenance routes.
func addAdminRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/housekeeping", h.TriggerHousekeeping).Methods("POST")
}
