package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testOptions(t *testing.T) Options {
	t.Helper()

	dir := t.TempDir()
	return Options{
		ConfigPath:   filepath.Join(dir, "keypanel.toml"),
		SettingsPath: filepath.Join(dir, "settings.json"),
		ProfilesDir:  filepath.Join(dir, "profiles"),
		LabelsPath:   filepath.Join(dir, "labels.json"),
		Platform:     "darwin",
		WatchEnabled: false,
		LogLevel:     "error",
		LogPath:      filepath.Join(dir, "keypanel.log"),
	}
}

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()

	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func TestNew_SeedsDefaultProfiles(t *testing.T) {
	opts := testOptions(t)
	app := newTestApp(t, opts)

	for _, name := range []string{"default.json", "macos-style.json"} {
		if _, err := os.Stat(filepath.Join(opts.ProfilesDir, name)); err != nil {
			t.Errorf("bundled profile %s not written: %v", name, err)
		}
	}

	if got := len(app.Bindings().Profiles()); got != 2 {
		t.Errorf("len(Profiles()) = %d, want 2", got)
	}

	snap := app.Config().Snapshot()
	if len(snap.AvailableProfiles) != 2 {
		t.Errorf("len(AvailableProfiles) = %d, want 2", len(snap.AvailableProfiles))
	}
	// Nothing selected before: the first scanned profile wins.
	if snap.KeyBindingsFilename != "default.json" {
		t.Errorf("KeyBindingsFilename = %q, want %q", snap.KeyBindingsFilename, "default.json")
	}
	if got := app.Bindings().ActiveProfile(); got != "default.json" {
		t.Errorf("ActiveProfile() = %q, want %q", got, "default.json")
	}
	if got := app.Controller().Model().SelectedProfile; got != "default.json" {
		t.Errorf("model SelectedProfile = %q, want %q", got, "default.json")
	}
}

func TestNew_KeepsExistingSelection(t *testing.T) {
	opts := testOptions(t)
	settings := []byte(`{"keyBindingsFilename": "macos-style.json"}`)
	if err := os.WriteFile(opts.SettingsPath, settings, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	app := newTestApp(t, opts)

	if got := app.Config().Snapshot().KeyBindingsFilename; got != "macos-style.json" {
		t.Errorf("KeyBindingsFilename = %q, want %q", got, "macos-style.json")
	}
	if got := app.Bindings().ActiveProfile(); got != "macos-style.json" {
		t.Errorf("ActiveProfile() = %q, want %q", got, "macos-style.json")
	}
}

func TestNew_StaleSelectionFallsBack(t *testing.T) {
	opts := testOptions(t)
	settings := []byte(`{"keyBindingsFilename": "removed.json"}`)
	if err := os.WriteFile(opts.SettingsPath, settings, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	app := newTestApp(t, opts)

	if got := app.Config().Snapshot().KeyBindingsFilename; got != "default.json" {
		t.Errorf("KeyBindingsFilename = %q, want fallback %q", got, "default.json")
	}
}

func TestNew_BadSettingsFile(t *testing.T) {
	opts := testOptions(t)
	if err := os.WriteFile(opts.SettingsPath, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := New(opts)
	if err == nil {
		t.Fatal("New() = nil error for broken settings file")
	}

	var compErr *ComponentError
	if !errors.As(err, &compErr) {
		t.Fatalf("New() error = %v, want *ComponentError", err)
	}
	if compErr.Component != "settings" {
		t.Errorf("Component = %q, want %q", compErr.Component, "settings")
	}
}

func TestApplication_SelectProfileFlow(t *testing.T) {
	app := newTestApp(t, testOptions(t))

	before := app.Controller().Model().BindingsRevision

	if err := app.Controller().SelectProfile("macos-style.json"); err != nil {
		t.Fatalf("SelectProfile() error = %v", err)
	}

	// The selection flows settings -> config store -> profile store.
	if got := app.Config().Snapshot().KeyBindingsFilename; got != "macos-style.json" {
		t.Errorf("KeyBindingsFilename = %q, want %q", got, "macos-style.json")
	}
	if got := app.Bindings().ActiveProfile(); got != "macos-style.json" {
		t.Errorf("ActiveProfile() = %q, want %q", got, "macos-style.json")
	}

	model := app.Controller().Model()
	if model.SelectedProfile != "macos-style.json" {
		t.Errorf("model SelectedProfile = %q, want %q", model.SelectedProfile, "macos-style.json")
	}
	if model.BindingsRevision <= before {
		t.Errorf("BindingsRevision = %d, want above %d after profile swap", model.BindingsRevision, before)
	}
	if app.Metrics().Snapshot().ModelUpdates == 0 {
		t.Error("ModelUpdates = 0 after selection change")
	}
}

func TestApplication_Dump(t *testing.T) {
	app := newTestApp(t, testOptions(t))

	var buf bytes.Buffer
	if err := app.Dump(&buf); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Profiles:", "Default", "macOS Style", "Copy to Clipboard", "^⇧C"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() output missing %q:\n%s", want, out)
		}
	}
}

func TestApplication_DumpWithLabelOverrides(t *testing.T) {
	opts := testOptions(t)
	overrides := []byte(`{"commands": {"copyToClipboard": "Yank"}}`)
	if err := os.WriteFile(opts.LabelsPath, overrides, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	app := newTestApp(t, opts)

	var buf bytes.Buffer
	if err := app.Dump(&buf); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Yank") {
		t.Errorf("Dump() output missing overridden label:\n%s", buf.String())
	}
}

func TestApplication_Reload(t *testing.T) {
	opts := testOptions(t)
	app := newTestApp(t, opts)

	// A profile added after startup appears on reload.
	extra := []byte(`{"name": "Extra", "contexts": {"terminal": [{"command": "find", "shortcut": "Ctrl+F"}]}}`)
	if err := os.WriteFile(filepath.Join(opts.ProfilesDir, "extra.json"), extra, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := app.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if got := len(app.Bindings().Profiles()); got != 3 {
		t.Errorf("len(Profiles()) = %d after reload, want 3", got)
	}
	if !app.Config().Snapshot().HasProfile("extra.json") {
		t.Error("reloaded profile not published to the settings document")
	}

	snap := app.Metrics().Snapshot()
	if snap.ConfigReloads != 1 || snap.ProfileReloads != 1 || snap.LabelReloads != 1 {
		t.Errorf("reload counters = %d/%d/%d, want 1/1/1",
			snap.ConfigReloads, snap.ProfileReloads, snap.LabelReloads)
	}
}

func TestApplication_CloseIdempotent(t *testing.T) {
	app := newTestApp(t, testOptions(t))

	app.Close()
	app.Close()
}

func TestApplication_RunAfterClose(t *testing.T) {
	app := newTestApp(t, testOptions(t))

	app.Close()
	if err := app.Run(); !errors.Is(err, ErrClosed) {
		t.Errorf("Run() after Close = %v, want ErrClosed", err)
	}
}

func TestApplication_NotRunningInitially(t *testing.T) {
	app := newTestApp(t, testOptions(t))

	if app.IsRunning() {
		t.Error("IsRunning() = true before Run")
	}
	// Shutdown before Run is a no-op.
	app.Shutdown()
}

func TestApplication_WatcherDisabled(t *testing.T) {
	app := newTestApp(t, testOptions(t))

	if app.watcher != nil {
		t.Error("watcher started with WatchEnabled false")
	}
}
