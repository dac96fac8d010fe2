// Package log provides structured logging abstractions for modboot.
//
// The package defines a minimal Logger interface with typed field
// constructors, so library packages never depend on a concrete logging
// backend. Three implementations are provided:
//
//   - ZerologAdapter wraps github.com/rs/zerolog for production use.
//   - NoopLogger discards everything (the default for embedded use).
//   - Recorder captures entries in memory for tests that assert on
//     log output.
//
// # Usage
//
// Create a zerolog-backed logger with console output:
//
//	logger := log.NewZerologAdapter()
//	logger.Info("starting", log.String("component", "manager"))
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package log
