package lifecycle

import "sync/atomic"

// Guard ties the manager's Initialize and Finalize calls to a scope. The
// first guard constructed for a manager claims ownership and triggers
// initialization; its Close triggers finalization. Any guard constructed
// while an owner exists is an inert shell: it logs a warning at construction
// and does nothing on Close, so nested or defensive guards never cause
// double finalization or premature shutdown.
type Guard struct {
	manager *Manager
	owner   bool
	closed  atomic.Bool
}

// NewGuard claims ownership of the manager and triggers Initialize if it has
// not run yet. An initialization failure releases the claim and propagates.
// If another guard already owns the manager, the returned guard is non-owning
// and err is nil.
func NewGuard(m *Manager) (*Guard, error) {
	if !m.guardOwner.CompareAndSwap(false, true) {
		m.logger.Warn("lifecycle guard already owned, new guard is inert")
		return &Guard{manager: m}, nil
	}
	if err := m.Initialize(); err != nil {
		m.guardOwner.Store(false)
		return nil, err
	}
	return &Guard{manager: m, owner: true}, nil
}

// NewGuardWithModule registers mod and then claims ownership as NewGuard
// does. It lets an application entry point own exactly one module for the
// scope's lifetime in a single call.
func NewGuardWithModule(m *Manager, mod Module) (*Guard, error) {
	m.RegisterModule(mod)
	return NewGuard(m)
}

// Owns reports whether this guard drives finalization.
func (g *Guard) Owns() bool {
	return g.owner
}

// Close triggers Finalize on the manager if this guard is the owner. It is
// safe to call multiple times; non-owning guards do nothing.
func (g *Guard) Close() error {
	if !g.owner || !g.closed.CompareAndSwap(false, true) {
		return nil
	}
	return g.manager.Finalize()
}
