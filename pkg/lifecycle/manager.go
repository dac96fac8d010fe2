package lifecycle

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/modboot/pkg/log"
)

// DefaultFinalizerTimeout bounds a finalizer that does not specify its own timeout.
const DefaultFinalizerTimeout = 30 * time.Second

// FatalFunc handles unrecoverable configuration errors: registration after
// initialization has started, an unresolved dependency name, or a dependency
// cycle. These states have no safe recovery; the default handler logs the
// diagnostic and terminates the process.
type FatalFunc func(msg string, fields ...log.Field)

// finalizer is an independently registered shutdown action with its own
// timeout, not tied to a module's dependency position.
type finalizer struct {
	name    string
	fn      func() error
	timeout time.Duration
}

// Manager orchestrates module startup and shutdown. Application code
// registers modules, initializers and finalizers during the registration
// window; the first Initialize call closes the window, computes a
// dependency-consistent startup order and runs it. Finalize later unwinds
// everything in reverse with per-entry timeout isolation.
//
// A Manager is an explicitly constructed instance with no package-level
// state; the application entry point owns it and passes it to collaborators.
type Manager struct {
	mu     sync.Mutex
	state  State
	logger log.Logger
	fatal  FatalFunc

	pending      []Module
	names        map[string]struct{}
	initializers []func() error
	finalizers   []finalizer

	// started is the realized startup order. Written once before the manager
	// enters Running, then read without locking.
	started []Module

	initialized atomic.Bool
	guardOwner  atomic.Bool
}

// Option configures optional behavior of a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for lifecycle diagnostics.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithFatalFunc replaces the handler for unrecoverable configuration errors.
// The default logs the diagnostic and calls os.Exit(1). Tests inject a
// recording handler instead.
func WithFatalFunc(fn FatalFunc) Option {
	return func(m *Manager) {
		m.fatal = fn
	}
}

// NewManager creates a new lifecycle manager in the Uninitialized state.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		state:  StateUninitialized,
		logger: log.NewNoopLogger(),
		names:  make(map[string]struct{}),
	}
	m.fatal = m.defaultFatal
	for _, o := range opts {
		o(m)
	}
	return m
}

// defaultFatal logs the diagnostic and terminates the process. A manager
// past its registration window cannot be safely reordered, so continuing
// would start modules against a stale plan.
func (m *Manager) defaultFatal(msg string, fields ...log.Field) {
	m.logger.Error(msg, fields...)
	os.Exit(1)
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsInitialized reports whether Initialize has ever completed. It remains
// true after Finalize; the flag answers "did this process ever initialize,"
// not "is it currently active."
func (m *Manager) IsInitialized() bool {
	return m.initialized.Load()
}

// StartupOrder returns the names of the started modules in realized startup
// order. It is empty before Initialize.
func (m *Manager) StartupOrder() []string {
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()

	names := make([]string, len(started))
	for i, mod := range started {
		names[i] = mod.Name
	}
	return names
}

// RegisterModule adds a module to the pending registry. It is safe to call
// from multiple goroutines during the registration window. Calling it once
// initialization has started is a fatal condition.
func (m *Manager) RegisterModule(mod Module) {
	m.mu.Lock()
	if m.state > StateRegistering {
		state := m.state
		m.mu.Unlock()
		m.fatal("module registered after initialization started",
			log.String("module", mod.Name),
			log.String("state", state.String()),
			log.Err(ErrRegistrationClosed),
		)
		return
	}
	if err := mod.validate(); err != nil {
		m.mu.Unlock()
		m.fatal("invalid module descriptor", log.String("module", mod.Name), log.Err(err))
		return
	}
	if _, exists := m.names[mod.Name]; exists {
		m.mu.Unlock()
		m.fatal("duplicate module name",
			log.String("module", mod.Name),
			log.Err(ErrModuleAlreadyRegistered),
		)
		return
	}
	if mod.ShutdownTimeout <= 0 {
		mod.ShutdownTimeout = DefaultShutdownTimeout
	}
	m.state = StateRegistering
	m.names[mod.Name] = struct{}{}
	m.pending = append(m.pending, mod)
	m.mu.Unlock()

	m.logger.Debug("module registered", log.String("module", mod.Name))
}

// RegisterInitializer adds a callback to run after all module startups
// complete, in registration order. Same timing restriction as RegisterModule.
func (m *Manager) RegisterInitializer(fn func() error) {
	m.mu.Lock()
	if m.state > StateRegistering {
		state := m.state
		m.mu.Unlock()
		m.fatal("initializer registered after initialization started",
			log.String("state", state.String()),
			log.Err(ErrRegistrationClosed),
		)
		return
	}
	m.state = StateRegistering
	m.initializers = append(m.initializers, fn)
	m.mu.Unlock()
}

// RegisterFinalizer adds a named shutdown callback with its own timeout.
// Finalizers run before module shutdowns, in reverse registration order.
// The name is used only for diagnostics. Same timing restriction as
// RegisterModule.
func (m *Manager) RegisterFinalizer(name string, fn func() error, timeout time.Duration) {
	m.mu.Lock()
	if m.state > StateRegistering {
		state := m.state
		m.mu.Unlock()
		m.fatal("finalizer registered after initialization started",
			log.String("finalizer", name),
			log.String("state", state.String()),
			log.Err(ErrRegistrationClosed),
		)
		return
	}
	if timeout <= 0 {
		timeout = DefaultFinalizerTimeout
	}
	m.state = StateRegistering
	m.finalizers = append(m.finalizers, finalizer{name: name, fn: fn, timeout: timeout})
	m.mu.Unlock()
}

// Initialize closes the registration window, computes the startup order and
// runs each module's startup action synchronously on the calling goroutine,
// strictly in dependency order. After all module startups complete, the
// registered initializer callbacks run in registration order.
//
// A startup or initializer error stops the sequence and propagates to the
// caller; later modules are never started, since their declared dependency
// was not satisfied. Calling Initialize again after it has completed is a
// no-op.
//
// An unresolved dependency name or a dependency cycle is a fatal condition.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	if m.state >= StateSorting {
		m.mu.Unlock()
		return nil
	}
	m.state = StateSorting
	mods := m.pending
	inits := m.initializers
	m.mu.Unlock()

	g, err := buildGraph(mods)
	if err != nil {
		m.fatal("cannot order modules", log.Err(err))
		return err
	}
	order, err := sortModules(mods, g)
	if err != nil {
		m.fatal("cannot order modules", log.Err(err))
		return err
	}

	sorted := make([]Module, len(order))
	names := make([]string, len(order))
	for i, idx := range order {
		sorted[i] = mods[idx]
		names[i] = mods[idx].Name
	}

	m.logger.Info(fmt.Sprintf("Startup sequence determined for %d modules", len(sorted)),
		log.Any("order", names),
	)

	for i, mod := range sorted {
		m.logger.Info(fmt.Sprintf("Starting module: '%s'", mod.Name))
		if mod.Startup == nil {
			continue
		}
		if err := mod.Startup(); err != nil {
			// Record what actually started so Finalize can still unwind it.
			m.mu.Lock()
			m.started = sorted[:i]
			m.mu.Unlock()
			return fmt.Errorf("start module %q: %w", mod.Name, err)
		}
	}

	m.mu.Lock()
	m.started = sorted
	m.mu.Unlock()

	for i, fn := range inits {
		if err := fn(); err != nil {
			return fmt.Errorf("initializer %d: %w", i, err)
		}
	}

	m.mu.Lock()
	m.state = StateRunning
	m.mu.Unlock()
	m.initialized.Store(true)

	m.logger.Info("initialization complete", log.Int("modules", len(sorted)))
	return nil
}

// Finalize runs the registered finalizers in reverse registration order,
// then the module shutdowns in the exact reverse of the realized startup
// order. Every action runs under its own timeout; a hung or failing action
// is logged and abandoned, never blocking the remaining entries. Calling
// Finalize again after it has completed is a no-op.
func (m *Manager) Finalize() error {
	m.mu.Lock()
	if m.state >= StateFinalizing {
		m.mu.Unlock()
		return nil
	}
	m.state = StateFinalizing
	finals := m.finalizers
	started := m.started
	m.mu.Unlock()

	// Stage 1: finalizers, last registered first.
	for i := len(finals) - 1; i >= 0; i-- {
		f := finals[i]
		m.logger.Info(fmt.Sprintf("Running finalizer: '%s'", f.name))
		m.runBounded("finalizer", f.name, f.fn, f.timeout)
	}

	// Stage 2: module shutdowns, last started first.
	for i := len(started) - 1; i >= 0; i-- {
		mod := started[i]
		m.logger.Info(fmt.Sprintf("Stopping module: '%s'", mod.Name))
		if mod.Shutdown == nil {
			continue
		}
		m.runBounded("module", mod.Name, mod.Shutdown, mod.ShutdownTimeout)
	}

	m.mu.Lock()
	m.state = StateFinalized
	m.mu.Unlock()

	m.logger.Info("finalization complete")
	return nil
}

// runBounded executes fn on its own goroutine and waits up to timeout for it
// to finish. On timeout the goroutine is abandoned, not cancelled: a single
// misbehaving callback must never block application shutdown, so a timed-out
// action may keep running detached from the orchestrator. Panics inside fn
// are recovered and logged.
func (m *Manager) runBounded(kind, name string, fn func() error, timeout time.Duration) {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic: %v", r)
			}
		}()
		done <- fn()
	}()

	select {
	case err := <-done:
		if err != nil {
			m.logger.Warn(fmt.Sprintf("Shutdown of %s '%s' failed", kind, name), log.Err(err))
		}
	case <-time.After(timeout):
		m.logger.Warn(fmt.Sprintf("Shutdown of %s '%s' timed out", kind, name),
			log.Duration("timeout", timeout),
		)
	}
}
