package keybinding

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed profiles/*.json
var defaultProfiles embed.FS

// EnsureDefaults creates dir if needed and writes any bundled profile
// that is not already present. Existing files are never overwritten, so
// user edits to a bundled profile survive restarts.
func EnsureDefaults(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}

	entries, err := defaultProfiles.ReadDir("profiles")
	if err != nil {
		return fmt.Errorf("read bundled profiles: %w", err)
	}

	for _, entry := range entries {
		target := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(target); err == nil {
			continue
		}

		data, err := defaultProfiles.ReadFile("profiles/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read bundled profile %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write profile %s: %w", entry.Name(), err)
		}
	}
	return nil
}
