// Package checksum provides hashing helpers for boot-time integrity checks.
//
// It exposes SHA-256 and legacy Keccak-256 digests plus streaming file
// hashing, and can register itself as a lifecycle module whose startup runs
// a known-answer self-test.
//
// # Usage
//
//	checksum.Register(manager)
//
//	sum, err := checksum.SHA256File("/etc/modboot/boot.toml")
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package checksum
