package lifecycle

import "errors"

// Common lifecycle errors.
var (
	// ErrModuleNameEmpty is returned when a module is registered without a name.
	ErrModuleNameEmpty = errors.New("module name is empty")

	// ErrModuleAlreadyRegistered is returned when a module name is registered twice.
	ErrModuleAlreadyRegistered = errors.New("module already registered")

	// ErrRegistrationClosed is returned when registration is attempted after
	// initialization has started.
	ErrRegistrationClosed = errors.New("registration window closed")

	// ErrUnresolvedDependency is returned when a module depends on a name
	// that was never registered.
	ErrUnresolvedDependency = errors.New("unresolved dependency")

	// ErrDependencyCycle is returned when the dependency graph has no valid
	// start order.
	ErrDependencyCycle = errors.New("dependency cycle")
)
