package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/modboot/pkg/log"
)

func TestWatcher_LogsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boot.toml")
	if err := os.WriteFile(path, []byte("[[module]]\nname = \"a\"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	rec := log.NewRecorder()
	w := NewWatcher(path, rec)
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("[[module]]\nname = \"b\"\n"), 0o644); err != nil {
		t.Fatalf("rewrite manifest: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if rec.ContainsLevel(log.LevelWarn, "manifest changed") {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no change warning recorded; got %v", rec.Messages())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boot.toml")
	if err := os.WriteFile(path, []byte("[[module]]\nname = \"a\"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	rec := log.NewRecorder()
	w := NewWatcher(path, rec)
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other file: %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	if rec.ContainsLevel(log.LevelWarn, "manifest changed") {
		t.Errorf("warning recorded for an unrelated file; got %v", rec.Messages())
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boot.toml")
	if err := os.WriteFile(path, []byte("[[module]]\nname = \"a\"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	w := NewWatcher(path, log.NewNoopLogger())
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
}

func TestWatcher_Module(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "boot.toml"), log.NewNoopLogger())
	mod := w.Module()

	if mod.Name != "manifest-watcher" {
		t.Errorf("Name = %q, want manifest-watcher", mod.Name)
	}
	if mod.Startup == nil || mod.Shutdown == nil {
		t.Error("module actions must be set")
	}
}
