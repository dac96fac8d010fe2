package checksum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bft-labs/modboot/pkg/lifecycle"
)

func TestSHA256Hex(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "empty",
			data: nil,
			want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name: "abc",
			data: []byte("abc"),
			want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SHA256Hex(tt.data); got != tt.want {
				t.Errorf("SHA256Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKeccak256Hex(t *testing.T) {
	// Legacy Keccak, not NIST SHA3-256.
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := Keccak256Hex(nil); got != want {
		t.Errorf("Keccak256Hex() = %s, want %s", got, want)
	}
}

func TestSHA256File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := SHA256File(path)
	if err != nil {
		t.Fatalf("SHA256File() error = %v", err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("SHA256File() = %s, want %s", got, want)
	}
}

func TestSHA256File_Missing(t *testing.T) {
	if _, err := SHA256File(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("SHA256File() on a missing file returned nil error")
	}
}

func TestSelfTest(t *testing.T) {
	if err := SelfTest(); err != nil {
		t.Fatalf("SelfTest() error = %v", err)
	}
}

func TestRegister_ParticipatesInLifecycle(t *testing.T) {
	m := lifecycle.NewManager()
	Register(m)

	dependentStarted := false
	m.RegisterModule(lifecycle.Module{
		Name:         "consumer",
		Dependencies: []string{ModuleName},
		Startup:      func() error { dependentStarted = true; return nil },
	})

	if err := m.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !dependentStarted {
		t.Error("dependent module did not start after the checksum module")
	}
	if got := m.StartupOrder()[0]; got != ModuleName {
		t.Errorf("first started module = %s, want %s", got, ModuleName)
	}
}
