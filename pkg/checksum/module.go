package checksum

import (
	"fmt"
	"time"

	"github.com/bft-labs/modboot/pkg/lifecycle"
)

// ModuleName is the name under which the checksum subsystem registers itself.
const ModuleName = "checksum"

// Known-answer vectors for the empty input.
const (
	emptySHA256    = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	emptyKeccak256 = "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
)

// Register adds the checksum subsystem to the manager as a module, so its
// self-test participates in the ordered startup sequence before any module
// that declares a dependency on it.
func Register(m *lifecycle.Manager) {
	m.RegisterModule(lifecycle.Module{
		Name:            ModuleName,
		Startup:         SelfTest,
		Shutdown:        func() error { return nil },
		ShutdownTimeout: time.Second,
	})
}

// SelfTest verifies the hash implementations against known-answer vectors.
// A broken build fails here, before anything depending on checksums starts.
func SelfTest() error {
	if got := SHA256Hex(nil); got != emptySHA256 {
		return fmt.Errorf("sha256 self-test failed: got %s", got)
	}
	if got := Keccak256Hex(nil); got != emptyKeccak256 {
		return fmt.Errorf("keccak256 self-test failed: got %s", got)
	}
	return nil
}
