// Package lifecycle provides dependency-aware application lifecycle
// orchestration.
//
// A Manager collects named modules with declared dependencies during a
// registration window, linearizes them with a deterministic topological
// sort, starts them in order, and later shuts them down in reverse order
// with per-module timeout isolation. Separately registered initializer and
// finalizer callbacks run around the module phases.
//
// # Usage
//
// Register modules and drive the lifecycle through a guard:
//
//	m := lifecycle.NewManager(lifecycle.WithLogger(logger))
//
//	m.RegisterModule(lifecycle.Module{
//	    Name:            "storage",
//	    Startup:         openStore,
//	    Shutdown:        closeStore,
//	    ShutdownTimeout: 5 * time.Second,
//	})
//	m.RegisterModule(lifecycle.Module{
//	    Name:         "api",
//	    Dependencies: []string{"storage"},
//	    Startup:      startAPI,
//	    Shutdown:     stopAPI,
//	})
//
//	guard, err := lifecycle.NewGuard(m)
//	if err != nil {
//	    return err
//	}
//	defer guard.Close()
//
// # State Machine
//
// A manager moves through the states Uninitialized, Registering, Sorting,
// Running, Finalizing and Finalized, in that order, exactly once per
// process lifetime. Registration is legal only in the first two states;
// anything later is a fatal condition.
//
// # Shutdown Isolation
//
// Each finalizer and module shutdown runs on its own goroutine, raced
// against its timeout. A hung action is abandoned and keeps running
// detached; this leak is accepted so that one misbehaving callback can
// never block application shutdown. There is no cancellation signal into
// the callback, only abandonment by the orchestrator.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package lifecycle
