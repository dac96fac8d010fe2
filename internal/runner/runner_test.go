package runner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/modboot/internal/manifest"
	"github.com/bft-labs/modboot/pkg/lifecycle"
	"github.com/bft-labs/modboot/pkg/log"
)

func TestFromSpec(t *testing.T) {
	mod, err := FromSpec(manifest.ModuleSpec{
		Name:        "api",
		DependsOn:   []string{"storage"},
		StartCmd:    "true",
		StopCmd:     "true",
		StopTimeout: "2s",
	}, log.NewNoopLogger())
	if err != nil {
		t.Fatalf("FromSpec() error = %v", err)
	}

	if mod.Name != "api" {
		t.Errorf("Name = %q, want api", mod.Name)
	}
	if len(mod.Dependencies) != 1 || mod.Dependencies[0] != "storage" {
		t.Errorf("Dependencies = %v, want [storage]", mod.Dependencies)
	}
	if mod.ShutdownTimeout != 2*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 2s", mod.ShutdownTimeout)
	}
	if err := mod.Startup(); err != nil {
		t.Errorf("Startup() error = %v", err)
	}
}

func TestFromSpec_NoCommands(t *testing.T) {
	mod, err := FromSpec(manifest.ModuleSpec{Name: "marker"}, log.NewNoopLogger())
	if err != nil {
		t.Fatalf("FromSpec() error = %v", err)
	}
	if mod.Startup != nil || mod.Shutdown != nil {
		t.Error("empty commands should yield nil actions")
	}
}

func TestFromSpec_CommandFailure(t *testing.T) {
	mod, err := FromSpec(manifest.ModuleSpec{
		Name:     "broken",
		StartCmd: "exit 3",
	}, log.NewNoopLogger())
	if err != nil {
		t.Fatalf("FromSpec() error = %v", err)
	}
	if err := mod.Startup(); err == nil {
		t.Fatal("Startup() of a failing command returned nil error")
	}
}

func TestFromSpec_BadTimeout(t *testing.T) {
	_, err := FromSpec(manifest.ModuleSpec{Name: "x", StopTimeout: "soon"}, log.NewNoopLogger())
	if err == nil {
		t.Fatal("FromSpec() with an invalid timeout returned nil error")
	}
}

func TestFromManifest_RunsThroughLifecycle(t *testing.T) {
	dir := t.TempDir()
	started := filepath.Join(dir, "started")
	stopped := filepath.Join(dir, "stopped")

	m := manifest.Manifest{Modules: []manifest.ModuleSpec{
		{Name: "storage", StartCmd: "touch " + started, StopCmd: "touch " + stopped},
		{Name: "api", DependsOn: []string{"storage"}, StartCmd: "true"},
	}}

	modules, err := FromManifest(m, log.NewNoopLogger())
	if err != nil {
		t.Fatalf("FromManifest() error = %v", err)
	}

	mgr := lifecycle.NewManager()
	for _, mod := range modules {
		mgr.RegisterModule(mod)
	}
	if err := mgr.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if _, err := os.Stat(started); err != nil {
		t.Errorf("start command did not run: %v", err)
	}

	if err := mgr.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if _, err := os.Stat(stopped); err != nil {
		t.Errorf("stop command did not run: %v", err)
	}
}
