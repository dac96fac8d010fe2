package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "info"

// Config holds CLI configuration for modboot.
type Config struct {
	Manifest string
	LockFile string
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LockFile: DefaultLockPath(),
		LogLevel: DefaultLogLevel,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Manifest == "" {
		return fmt.Errorf("manifest is required")
	}
	if c.LockFile == "" {
		return fmt.Errorf("lock-file is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("parse log-level: %w", err)
	}
	return nil
}

// DefaultLockPath returns the default single-instance lock file path.
// Returns ~/.modboot/modboot.lock if the user home directory is accessible.
func DefaultLockPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".modboot", "modboot.lock")
	}
	return "modboot.lock"
}

// Logger builds the CLI's zerolog logger with console output at the
// configured level.
func Logger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

// ApplyEnvConfig applies MODBOOT_* environment variables to the config.
// Explicitly set flags (tracked in changed) take precedence over the
// environment.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)
	s.setString("manifest", os.Getenv("MODBOOT_MANIFEST"), &cfg.Manifest)
	s.setString("lock-file", os.Getenv("MODBOOT_LOCK_FILE"), &cfg.LockFile)
	s.setString("log-level", os.Getenv("MODBOOT_LOG_LEVEL"), &cfg.LogLevel)
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}
