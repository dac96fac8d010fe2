// Package runner turns manifest entries into lifecycle modules whose
// startup and shutdown actions run the configured shell commands.
package runner

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/bft-labs/modboot/internal/manifest"
	"github.com/bft-labs/modboot/pkg/lifecycle"
	"github.com/bft-labs/modboot/pkg/log"
)

// FromSpec converts a manifest entry into a lifecycle module. Entries
// without a start or stop command get a nil action for that phase.
func FromSpec(spec manifest.ModuleSpec, logger log.Logger) (lifecycle.Module, error) {
	timeout, err := spec.StopTimeoutDuration()
	if err != nil {
		return lifecycle.Module{}, err
	}
	return lifecycle.Module{
		Name:            spec.Name,
		Dependencies:    spec.DependsOn,
		Startup:         command(spec.Name, spec.StartCmd, logger),
		Shutdown:        command(spec.Name, spec.StopCmd, logger),
		ShutdownTimeout: timeout,
	}, nil
}

// FromManifest converts every entry in the manifest.
func FromManifest(m manifest.Manifest, logger log.Logger) ([]lifecycle.Module, error) {
	modules := make([]lifecycle.Module, 0, len(m.Modules))
	for _, spec := range m.Modules {
		mod, err := FromSpec(spec, logger)
		if err != nil {
			return nil, err
		}
		modules = append(modules, mod)
	}
	return modules, nil
}

// command wraps a shell command line as a module action. Output is routed to
// the logger at debug level; a non-zero exit becomes the action's error.
func command(name, cmdline string, logger log.Logger) func() error {
	if cmdline == "" {
		return nil
	}
	return func() error {
		out, err := exec.Command("/bin/sh", "-c", cmdline).CombinedOutput()
		if trimmed := strings.TrimSpace(string(out)); trimmed != "" {
			logger.Debug("command output",
				log.String("module", name),
				log.String("output", trimmed),
			)
		}
		if err != nil {
			return fmt.Errorf("run %q: %w", cmdline, err)
		}
		return nil
	}
}
