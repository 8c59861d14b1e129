// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Naming strategies accepted in [upload] naming.
const (
	NamingOriginal = "original"
	NamingHash     = "hash"
	NamingULID     = "ulid"
)

// Config holds the application's configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Upload    UploadConfig    `toml:"upload"`
	Thumbnail ThumbnailConfig `toml:"thumbnail"`
	Logging   LoggingConfig   `toml:"logging"`

	MaxUploadSizeBytes int64        `toml:"-"` // Runtime computed value
	MaxFileSizeBytes   int64        `toml:"-"` // 0 means unlimited
	MinFileSizeBytes   int64        `toml:"-"`
	FileMode           *os.FileMode `toml:"-"` // nil leaves permissions untouched

	CleanupInterval time.Duration `toml:"-"` // 0 disables the staging cleanup
	StaleAfter      time.Duration `toml:"-"`
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	MaxUploadSize string `toml:"max_upload_size"` // e.g. "32MB", total multipart body
	APIKeyHash    string `toml:"api_key_hash"`    // bcrypt hash; empty disables auth
}

// StorageConfig holds the filesystem layout.
type StorageConfig struct {
	Root     string `toml:"root"`
	TempDir  string `toml:"temp_dir"`  // staging area, defaults to <root>/.tmp
	FileMode string `toml:"file_mode"` // octal, e.g. "0644"

	CleanupInterval string `toml:"cleanup_interval"` // e.g. "1h", "0" disables
	StaleAfter      string `toml:"stale_after"`      // age at which staged files count as orphaned
}

// UploadConfig holds the upload rule set and naming strategy.
type UploadConfig struct {
	FieldName         string   `toml:"field_name"`
	Naming            string   `toml:"naming"`
	HashLength        int      `toml:"hash_length"`
	MaxFileSize       string   `toml:"max_file_size"`
	MinFileSize       string   `toml:"min_file_size"`
	AllowedExtensions []string `toml:"allowed_extensions"`
	AllowedMimeTypes  []string `toml:"allowed_mime_types"`
	MinWidth          int      `toml:"min_width"`
	MinHeight         int      `toml:"min_height"`
	MaxWidth          int      `toml:"max_width"`
	MaxHeight         int      `toml:"max_height"`
	RollbackOnFailure bool     `toml:"rollback_on_failure"`
}

// ThumbnailConfig holds thumbnail encoding settings.
type ThumbnailConfig struct {
	Interpolation string `toml:"interpolation"`
	JPEGQuality   int    `toml:"jpeg_quality"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
// Used to persist a generated API key hash.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate processes configuration strings into runtime values.
// It sets defaults if values are missing and parses human-readable sizes.
func (c *Config) ParseAndValidate() error {
	// Default MaxUploadSize to 32MB if not specified
	if c.Server.MaxUploadSize == "" {
		c.Server.MaxUploadSize = "32MB"
	}

	sizeBytes, err := parseSize(c.Server.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	c.MaxUploadSizeBytes = sizeBytes

	if c.Upload.MaxFileSize != "" {
		if c.MaxFileSizeBytes, err = parseSize(c.Upload.MaxFileSize); err != nil {
			return fmt.Errorf("invalid max_file_size: %w", err)
		}
	}
	if c.Upload.MinFileSize != "" {
		if c.MinFileSizeBytes, err = parseSize(c.Upload.MinFileSize); err != nil {
			return fmt.Errorf("invalid min_file_size: %w", err)
		}
	}

	if c.Storage.FileMode != "" {
		mode, err := parseMode(c.Storage.FileMode)
		if err != nil {
			return fmt.Errorf("invalid file_mode: %w", err)
		}
		c.FileMode = &mode
	}
	if c.Storage.TempDir == "" && c.Storage.Root != "" {
		c.Storage.TempDir = filepath.Join(c.Storage.Root, ".tmp")
	}

	if c.Storage.CleanupInterval == "" {
		c.Storage.CleanupInterval = "1h"
	}
	if c.CleanupInterval, err = parseDuration(c.Storage.CleanupInterval); err != nil {
		return fmt.Errorf("invalid cleanup_interval: %w", err)
	}
	if c.Storage.StaleAfter == "" {
		c.Storage.StaleAfter = "24h"
	}
	if c.StaleAfter, err = parseDuration(c.Storage.StaleAfter); err != nil {
		return fmt.Errorf("invalid stale_after: %w", err)
	}
	if c.StaleAfter == 0 {
		return fmt.Errorf("invalid stale_after: staged files in use would be deleted")
	}

	if c.Upload.FieldName == "" {
		c.Upload.FieldName = "files"
	}
	switch c.Upload.Naming {
	case "":
		c.Upload.Naming = NamingOriginal
	case NamingOriginal, NamingHash, NamingULID:
	default:
		return fmt.Errorf("invalid naming strategy: %q", c.Upload.Naming)
	}
	if c.Upload.HashLength < 0 {
		return fmt.Errorf("invalid hash_length: %d", c.Upload.HashLength)
	}

	if c.Thumbnail.Interpolation == "" {
		c.Thumbnail.Interpolation = "approx-bilinear"
	}
	if c.Thumbnail.JPEGQuality == 0 {
		c.Thumbnail.JPEGQuality = 85
	}
	if c.Thumbnail.JPEGQuality < 1 || c.Thumbnail.JPEGQuality > 100 {
		return fmt.Errorf("invalid jpeg_quality: %d", c.Thumbnail.JPEGQuality)
	}

	return nil
}

// parseSize parses a size string (e.g., "100G", "500MB") into bytes.
func parseSize(sizeStr string) (int64, error) {
	re := regexp.MustCompile(`(?i)^(\d+)\s*(K|M|G|T)?B?$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(sizeStr))

	if len(matches) < 2 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", matches[1])
	}

	unit := ""
	if len(matches) > 2 {
		unit = strings.ToUpper(matches[2])
	}

	switch unit {
	case "T":
		return value * (1 << 40), nil
	case "G":
		return value * (1 << 30), nil
	case "M":
		return value * (1 << 20), nil
	case "K":
		return value * (1 << 10), nil
	default:
		return value, nil
	}
}

// parseDuration parses a duration string with a d, h, m or s unit
// (e.g. "30d", "12h"). "0" means disabled.
func parseDuration(durationStr string) (time.Duration, error) {
	trimmedStr := strings.TrimSpace(durationStr)
	if trimmedStr == "0" {
		return 0, nil
	}

	re := regexp.MustCompile(`^(\d+)\s*(d|h|m|s)$`)
	matches := re.FindStringSubmatch(trimmedStr)
	if len(matches) < 3 {
		return 0, fmt.Errorf("invalid duration format: %s", durationStr)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration number: %s", matches[1])
	}

	switch matches[2] {
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "m":
		return time.Duration(value) * time.Minute, nil
	default:
		return time.Duration(value) * time.Second, nil
	}
}

// parseMode parses an octal permission string such as "0644" or "755".
func parseMode(modeStr string) (os.FileMode, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(modeStr), 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid octal mode: %s", modeStr)
	}
	if v > 0o777 {
		return 0, fmt.Errorf("mode out of range: %s", modeStr)
	}
	return os.FileMode(v), nil
}
