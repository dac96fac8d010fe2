package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
manifest = "/etc/modboot/boot.toml"
lock_file = "/var/run/modboot.lock"
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if fc.Manifest != "/etc/modboot/boot.toml" {
		t.Errorf("Manifest = %q", fc.Manifest)
	}
	if fc.LockFile != "/var/run/modboot.lock" {
		t.Errorf("LockFile = %q", fc.LockFile)
	}
	if fc.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", fc.LogLevel)
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("manifest = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFileConfig(path); err == nil {
		t.Fatal("LoadFileConfig() on invalid TOML returned nil error")
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := DefaultConfig()
	fc := FileConfig{
		Manifest: "/file/boot.toml",
		LogLevel: "warn",
	}

	ApplyFileConfig(&cfg, fc, map[string]bool{"log-level": true})

	if cfg.Manifest != "/file/boot.toml" {
		t.Errorf("Manifest = %q, want /file/boot.toml", cfg.Manifest)
	}
	// log-level flag was explicitly set; the file must not override it.
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	// lock_file absent from file; default survives.
	if cfg.LockFile != DefaultLockPath() {
		t.Errorf("LockFile = %q, want default", cfg.LockFile)
	}
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if FileExists(path) {
		t.Error("FileExists() = true for a missing file")
	}
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if !FileExists(path) {
		t.Error("FileExists() = false for an existing file")
	}
}
