package manifest

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultStopTimeout bounds a module shutdown when the manifest entry does
// not specify one.
const DefaultStopTimeout = 30 * time.Second

// Manifest describes the modules an application boots, loaded from TOML.
type Manifest struct {
	Modules []ModuleSpec `toml:"module"`
}

// ModuleSpec is a single manifest entry. Durations are strings to keep the
// TOML format friendly ("5s", "2m").
type ModuleSpec struct {
	Name        string   `toml:"name"`
	DependsOn   []string `toml:"depends_on"`
	StartCmd    string   `toml:"start_cmd"`
	StopCmd     string   `toml:"stop_cmd"`
	StopTimeout string   `toml:"stop_timeout"`
}

// StopTimeoutDuration parses the entry's stop timeout, falling back to
// DefaultStopTimeout when unset.
func (s ModuleSpec) StopTimeoutDuration() (time.Duration, error) {
	if s.StopTimeout == "" {
		return DefaultStopTimeout, nil
	}
	d, err := time.ParseDuration(s.StopTimeout)
	if err != nil {
		return 0, fmt.Errorf("module %q: parse stop_timeout: %w", s.Name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("module %q: stop_timeout must be positive", s.Name)
	}
	return d, nil
}

// Load reads and validates a TOML manifest from the given path.
func Load(path string) (Manifest, error) {
	var m Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := toml.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

// Validate checks the manifest for errors that can be caught without
// building the dependency graph.
func (m Manifest) Validate() error {
	if len(m.Modules) == 0 {
		return fmt.Errorf("manifest declares no modules")
	}
	seen := make(map[string]struct{}, len(m.Modules))
	for _, spec := range m.Modules {
		if spec.Name == "" {
			return fmt.Errorf("manifest entry without a name")
		}
		if _, dup := seen[spec.Name]; dup {
			return fmt.Errorf("duplicate module %q in manifest", spec.Name)
		}
		seen[spec.Name] = struct{}{}
		if _, err := spec.StopTimeoutDuration(); err != nil {
			return err
		}
	}
	return nil
}
