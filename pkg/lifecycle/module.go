package lifecycle

import (
	"fmt"
	"time"
)

// DefaultShutdownTimeout is the maximum time a shutdown action may run
// when the module does not specify its own timeout.
const DefaultShutdownTimeout = 30 * time.Second

// Module describes a named unit of application functionality with startup
// and shutdown actions and declared dependencies. Identity is by name.
// Dependencies reference other modules by name; every referenced name must
// resolve to a registered module before initialization can proceed.
//
// A Module is immutable once registered.
type Module struct {
	// Name uniquely identifies the module within a Manager.
	Name string

	// Dependencies lists the names of modules that must start before this one.
	Dependencies []string

	// Startup is invoked synchronously during Initialize, after all
	// dependencies have started. A nil Startup is a no-op. An error stops
	// the whole startup sequence and propagates to the Initialize caller.
	Startup func() error

	// Shutdown is invoked during Finalize, after all dependents have been
	// stopped. A nil Shutdown is a no-op. Errors are logged and do not stop
	// the remaining shutdowns.
	Shutdown func() error

	// ShutdownTimeout bounds how long the manager waits for Shutdown.
	// Zero means DefaultShutdownTimeout.
	ShutdownTimeout time.Duration
}

// validate checks the descriptor fields that can be checked in isolation.
func (m Module) validate() error {
	if m.Name == "" {
		return ErrModuleNameEmpty
	}
	for _, dep := range m.Dependencies {
		if dep == "" {
			return fmt.Errorf("module %q has an empty dependency name", m.Name)
		}
	}
	return nil
}
