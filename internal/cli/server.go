// filepath: internal/cli/server.go
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filekit/internal/api"
	"filekit/internal/api/auth"
	"filekit/internal/api/handlers"
	"filekit/internal/housekeeping"
	"filekit/internal/logging"

	"github.com/dustin/go-humanize"
)

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	authMiddleware := auth.NewMiddleware(cfg.Server.APIKeyHash)
	if !authMiddleware.Enabled() {
		logging.Log.Warn("No server.api_key_hash configured; /api endpoints accept unauthenticated requests.")
	}

	janitor := housekeeping.NewService(a.fs, cfg.CleanupInterval, cfg.StaleAfter)
	if cfg.CleanupInterval > 0 {
		janitor.Start()
		defer janitor.Stop()
	}

	info := handlers.ServiceInfo{ServiceName: "filekit", Version: Version, UptimeSince: StartTime}
	h := handlers.NewHandlers(a.pipeline, a.generator, a.fs, janitor, a.auditor, info, cfg)
	r := api.SetupRouter(h, authMiddleware)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logging.Log.Infof("Server %s starting on %s (storage: %s, max upload: %s)",
			Version, serverAddr, cfg.Storage.Root, humanize.IBytes(uint64(cfg.MaxUploadSizeBytes)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-stop
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Infof("Server exiting after %s", humanize.RelTime(StartTime, time.Now(), "", ""))
	return nil
}
