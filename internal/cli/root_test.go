// filepath: internal/cli/root_test.go
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"filekit/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to reset the global config and flags between tests
func resetGlobals(t *testing.T) {
	t.Helper()
	cfg = nil
	host = ""
	port = 0
	logLevel = ""
	storageRoot = ""
	maxUploadSize = ""
	auditEnabled = false
	cfgFile = filepath.Join(t.TempDir(), "nonexistent.toml")
}

func TestConfigPrecedence(t *testing.T) {
	// RootCmd.Execute() would start the server, so the loader is tested directly.

	t.Run("Defaults", func(t *testing.T) {
		resetGlobals(t)

		err := initializeConfig(&cobra.Command{})
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "storage_root", cfg.Storage.Root)
		assert.Equal(t, filepath.Join("storage_root", ".tmp"), cfg.Storage.TempDir)
		assert.Equal(t, int64(32<<20), cfg.MaxUploadSizeBytes)
	})

	t.Run("Environment Overrides Defaults", func(t *testing.T) {
		resetGlobals(t)
		t.Setenv("FILEKIT_PORT", "9090")
		t.Setenv("FILEKIT_LOG_LEVEL", "warn")
		t.Setenv("FILEKIT_STORAGE_ROOT", "/srv/files")
		t.Setenv("FILEKIT_AUDIT_ENABLED", "true")
		t.Setenv("FILEKIT_MAX_UPLOAD_SIZE", "1G")

		err := initializeConfig(&cobra.Command{})
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, "/srv/files", cfg.Storage.Root)
		assert.True(t, cfg.Logging.AuditEnabled)
		assert.Equal(t, int64(1<<30), cfg.MaxUploadSizeBytes)
	})

	t.Run("Flags Override Environment", func(t *testing.T) {
		resetGlobals(t)
		t.Setenv("FILEKIT_PORT", "9090")
		t.Setenv("FILEKIT_STORAGE_ROOT", "/srv/files")

		// Simulate parsed flags
		port = 7070
		storageRoot = "/data"

		err := initializeConfig(&cobra.Command{})
		require.NoError(t, err)

		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "/data", cfg.Storage.Root)
	})

	t.Run("Config File Loading", func(t *testing.T) {
		resetGlobals(t)

		content := []byte(`
[server]
port = 6060
[storage]
root = "/var/lib/filekit"
file_mode = "0640"
[upload]
naming = "ulid"
[logging]
level = "error"
`)
		cfgFile = filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(cfgFile, content, 0644))

		err := initializeConfig(&cobra.Command{})
		require.NoError(t, err)

		assert.Equal(t, 6060, cfg.Server.Port)
		assert.Equal(t, "error", cfg.Logging.Level)
		assert.Equal(t, "/var/lib/filekit", cfg.Storage.Root)
		assert.Equal(t, config.NamingULID, cfg.Upload.Naming)
		require.NotNil(t, cfg.FileMode)
		assert.Equal(t, os.FileMode(0640), *cfg.FileMode)
	})

	t.Run("Config Path From Environment", func(t *testing.T) {
		resetGlobals(t)
		cfgFile = defaultConfigPath

		path := filepath.Join(t.TempDir(), "env.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 5050\n"), 0644))
		t.Setenv("FILEKIT_CONFIG_PATH", path)

		err := initializeConfig(&cobra.Command{})
		require.NoError(t, err)

		assert.Equal(t, path, cfgFile)
		assert.Equal(t, 5050, cfg.Server.Port)
	})

	t.Run("Invalid File", func(t *testing.T) {
		resetGlobals(t)
		cfgFile = filepath.Join(t.TempDir(), "broken.toml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("[server\n"), 0644))

		err := initializeConfig(&cobra.Command{})
		assert.ErrorContains(t, err, "failed to load configuration")
	})

	t.Run("Invalid Values", func(t *testing.T) {
		resetGlobals(t)
		maxUploadSize = "lots"

		err := initializeConfig(&cobra.Command{})
		assert.ErrorContains(t, err, "configuration error")
	})
}

func TestApplyOverrides(t *testing.T) {
	resetGlobals(t)
	c := &config.Config{
		Server:  config.ServerConfig{Port: 8080},
		Logging: config.LoggingConfig{Level: "info"},
	}

	port = 9999
	logLevel = "debug"
	host = "127.0.0.1"

	applyOverrides(c, &cobra.Command{})

	assert.Equal(t, 9999, c.Server.Port)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "127.0.0.1", c.Server.Host)
}

func TestApplyOverrides_AuditFlagNeedsChange(t *testing.T) {
	resetGlobals(t)
	cmd := &cobra.Command{}
	registerFlags(cmd)

	c := &config.Config{Logging: config.LoggingConfig{AuditEnabled: true}}
	applyOverrides(c, cmd)
	assert.True(t, c.Logging.AuditEnabled, "An unset flag keeps the file value")

	require.NoError(t, cmd.ParseFlags([]string{"--audit-enabled=false"}))
	applyOverrides(c, cmd)
	assert.False(t, c.Logging.AuditEnabled)
}

func TestRootCommandTree(t *testing.T) {
	names := make([]string, 0, len(RootCmd.Commands()))
	for _, c := range RootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "upload", "thumbnail", "hash-key", "housekeeping"})
}
