package keybinding

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")

	if err := EnsureDefaults(dir); err != nil {
		t.Fatalf("EnsureDefaults() error = %v", err)
	}

	for _, name := range []string{"default.json", "macos-style.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected bundled profile %s: %v", name, err)
		}
	}

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if len(s.Profiles()) != 2 {
		t.Errorf("len(Profiles()) = %d, want 2", len(s.Profiles()))
	}

	if err := s.SetActive("macos-style.json"); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if got := s.Contexts()["terminal"][0].Shortcut; got != "Cmd+C" {
		t.Errorf("bundled macos-style terminal shortcut = %q, want %q", got, "Cmd+C")
	}
}

func TestEnsureDefaults_KeepsUserEdits(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")

	if err := EnsureDefaults(dir); err != nil {
		t.Fatalf("EnsureDefaults() error = %v", err)
	}

	edited := `{"name": "Mine", "contexts": {}}`
	writeProfileFile(t, dir, "default.json", edited)

	if err := EnsureDefaults(dir); err != nil {
		t.Fatalf("EnsureDefaults() second call error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "default.json"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != edited {
		t.Error("EnsureDefaults() overwrote an edited profile")
	}
}
