// Package lockfile provides cross-platform advisory file locking.
//
// It wraps github.com/gofrs/flock with a small non-blocking API used to
// enforce a single running instance per lock path.
//
// # Usage
//
//	lock := lockfile.New("/var/run/modboot.lock")
//	if err := lock.TryAcquire(); err != nil {
//	    return err
//	}
//	defer lock.Release()
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package lockfile
