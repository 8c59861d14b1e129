// filepath: internal/cli/config_loader.go
package cli

import (
	"fmt"
	"os"
	"strconv"

	"filekit/internal/config"
	"filekit/internal/logging"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.toml"

var (
	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags variables
	cfgFile       string
	host          string
	port          int
	logLevel      string
	storageRoot   string
	maxUploadSize string
	auditEnabled  bool
)

func registerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config_path", defaultConfigPath, "Path to the base configuration file. (Env: FILEKIT_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (trace, debug, info, warn, error). (Env: FILEKIT_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&storageRoot, "storage-root", "", "Directory all stored files live under. (Env: FILEKIT_STORAGE_ROOT)")
	cmd.PersistentFlags().BoolVar(&auditEnabled, "audit-enabled", false, "Enable audit logging of file operations. (Env: FILEKIT_AUDIT_ENABLED=true)")

	registerServerFlags(cmd)
}

// registerServerFlags adds the flags of the server, shared by the root and serve commands.
func registerServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&host, "host", "", "Interface the HTTP server binds to. (Env: FILEKIT_HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "Port for the HTTP server. (Env: FILEKIT_PORT)")
	cmd.Flags().StringVar(&maxUploadSize, "max-upload-size", "", "Max size of one upload request (e.g. '32MB'). (Env: FILEKIT_MAX_UPLOAD_SIZE)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	// 1. Check environment variable for config path first
	if envPath := os.Getenv("FILEKIT_CONFIG_PATH"); envPath != "" && cfgFile == defaultConfigPath {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	applyOverrides(cfg, cmd)

	// 3. Validate
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize Logging
	logging.Init(cfg.Logging.Level)

	return nil
}

func applyOverrides(c *config.Config, cmd *cobra.Command) {
	getEnv := func(key string) string { return os.Getenv(key) }

	// --- Environment Variables ---
	if v := getEnv("FILEKIT_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := getEnv("FILEKIT_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getEnv("FILEKIT_MAX_UPLOAD_SIZE"); v != "" {
		c.Server.MaxUploadSize = v
	}
	if v := getEnv("FILEKIT_API_KEY_HASH"); v != "" {
		c.Server.APIKeyHash = v
	}
	if v := getEnv("FILEKIT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("FILEKIT_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.AuditEnabled = b
		}
	}
	if v := getEnv("FILEKIT_STORAGE_ROOT"); v != "" {
		c.Storage.Root = v
	}

	// --- CLI Flags ---
	if host != "" {
		c.Server.Host = host
	}
	if port != 0 {
		c.Server.Port = port
	}
	if maxUploadSize != "" {
		c.Server.MaxUploadSize = maxUploadSize
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("audit-enabled") {
		c.Logging.AuditEnabled = auditEnabled
	}
	if storageRoot != "" {
		c.Storage.Root = storageRoot
	}

	// --- Defaults ---
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Storage.Root == "" {
		c.Storage.Root = "storage_root"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
