package keybinding

import (
	"errors"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	writeProfileFile(t, dir, "default.json",
		`{"name": "Default", "contexts": {"terminal": [{"command": "copyToClipboard", "shortcut": "Ctrl+Shift+C"}]}}`)
	writeProfileFile(t, dir, "macos-style.json",
		`{"name": "macOS Style", "contexts": {"terminal": [{"command": "copyToClipboard", "shortcut": "Cmd+C"}]}}`)

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s, dir
}

func TestOpen_ScansProfiles(t *testing.T) {
	s, _ := newTestStore(t)

	infos := s.Profiles()
	if len(infos) != 2 {
		t.Fatalf("len(Profiles()) = %d, want 2", len(infos))
	}
	if infos[0].Filename != "default.json" || infos[1].Filename != "macos-style.json" {
		t.Errorf("Profiles() order = %q, %q; want alphabetical", infos[0].Filename, infos[1].Filename)
	}
	if infos[1].DisplayName != "macOS Style" {
		t.Errorf("DisplayName = %q, want %q", infos[1].DisplayName, "macOS Style")
	}
	if s.ActiveProfile() != "" {
		t.Errorf("ActiveProfile() = %q before SetActive, want empty", s.ActiveProfile())
	}
}

func TestOpen_SkipsBrokenProfiles(t *testing.T) {
	dir := t.TempDir()
	writeProfileFile(t, dir, "default.json", `{"name": "Default", "contexts": {}}`)
	writeProfileFile(t, dir, "broken.json", `{"name": `)
	writeProfileFile(t, dir, "notes.txt", `not a profile`)

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	infos := s.Profiles()
	if len(infos) != 1 || infos[0].Filename != "default.json" {
		t.Errorf("Profiles() = %v, want only default.json", infos)
	}
}

func TestOpen_MissingDir(t *testing.T) {
	if _, err := Open("/nonexistent/profiles"); err == nil {
		t.Fatal("Open() expected error for missing directory")
	}
}

func TestStore_SetActive(t *testing.T) {
	s, _ := newTestStore(t)

	var events []Event
	sub := s.Subscribe(func(e Event) { events = append(events, e) })
	defer sub.Unsubscribe()

	if err := s.SetActive("macos-style.json"); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	if s.ActiveProfile() != "macos-style.json" {
		t.Errorf("ActiveProfile() = %q, want %q", s.ActiveProfile(), "macos-style.json")
	}

	contexts := s.Contexts()
	if got := contexts["terminal"][0].Shortcut; got != "Cmd+C" {
		t.Errorf("terminal shortcut = %q, want %q", got, "Cmd+C")
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Reason != ReasonSwitch || events[0].Filename != "macos-style.json" {
		t.Errorf("event = %+v, want switch to macos-style.json", events[0])
	}
}

func TestStore_SetActiveSameIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.SetActive("default.json"); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	var count int
	sub := s.Subscribe(func(Event) { count++ })
	defer sub.Unsubscribe()

	if err := s.SetActive("default.json"); err != nil {
		t.Fatalf("SetActive() same profile error = %v", err)
	}
	if count != 0 {
		t.Errorf("got %d events for same-profile SetActive, want 0", count)
	}
}

func TestStore_SetActiveUnknown(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.SetActive("default.json"); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	err := s.SetActive("missing.json")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("SetActive() error = %v, want ErrProfileNotFound", err)
	}
	if s.ActiveProfile() != "default.json" {
		t.Errorf("ActiveProfile() = %q after failed switch, want %q", s.ActiveProfile(), "default.json")
	}
}

func TestStore_SetActiveLoadFailureKeepsPrevious(t *testing.T) {
	s, dir := newTestStore(t)

	if err := s.SetActive("default.json"); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	// Corrupt the target after the scan so it is in the inventory but
	// no longer loads.
	writeProfileFile(t, dir, "macos-style.json", `{"name": `)

	err := s.SetActive("macos-style.json")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("SetActive() error = %v, want *ParseError", err)
	}

	if s.ActiveProfile() != "default.json" {
		t.Errorf("ActiveProfile() = %q after load failure, want %q", s.ActiveProfile(), "default.json")
	}
	if got := s.Contexts()["terminal"][0].Shortcut; got != "Ctrl+Shift+C" {
		t.Errorf("terminal shortcut = %q after load failure, want previous %q", got, "Ctrl+Shift+C")
	}
}

func TestStore_Reload(t *testing.T) {
	s, dir := newTestStore(t)

	if err := s.SetActive("default.json"); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	var events []Event
	sub := s.Subscribe(func(e Event) { events = append(events, e) })
	defer sub.Unsubscribe()

	// A new profile appears and the active one changes on disk.
	writeProfileFile(t, dir, "vim-style.json", `{"name": "Vim Style", "contexts": {}}`)
	writeProfileFile(t, dir, "default.json",
		`{"name": "Default", "contexts": {"terminal": [{"command": "copyToClipboard", "shortcut": "Ctrl+Ins"}]}}`)

	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if len(s.Profiles()) != 3 {
		t.Errorf("len(Profiles()) = %d after reload, want 3", len(s.Profiles()))
	}
	if got := s.Contexts()["terminal"][0].Shortcut; got != "Ctrl+Ins" {
		t.Errorf("terminal shortcut = %q after reload, want %q", got, "Ctrl+Ins")
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Reason != ReasonReload || events[0].Filename != "default.json" {
		t.Errorf("event = %+v, want reload of default.json", events[0])
	}
}

func TestStore_ReloadCorruptActiveKeepsDefinitions(t *testing.T) {
	s, dir := newTestStore(t)

	if err := s.SetActive("default.json"); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	var count int
	sub := s.Subscribe(func(Event) { count++ })
	defer sub.Unsubscribe()

	writeProfileFile(t, dir, "default.json", `{"name": `)

	err := s.Reload()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Reload() error = %v, want *ParseError", err)
	}

	// Previous definitions stay in effect and listeners still hear
	// about the reload attempt.
	if got := s.Contexts()["terminal"][0].Shortcut; got != "Ctrl+Shift+C" {
		t.Errorf("terminal shortcut = %q after failed reload, want %q", got, "Ctrl+Shift+C")
	}
	if count != 1 {
		t.Errorf("got %d events, want 1", count)
	}
}

func TestStore_Close(t *testing.T) {
	s, _ := newTestStore(t)

	s.Close()
	s.Close()

	if err := s.SetActive("default.json"); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("SetActive() after Close = %v, want ErrStoreClosed", err)
	}
	if err := s.Reload(); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Reload() after Close = %v, want ErrStoreClosed", err)
	}
}

func TestStore_ContextsIsCopy(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.SetActive("default.json"); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	contexts := s.Contexts()
	contexts["terminal"][0].Shortcut = "mutated"

	if got := s.Contexts()["terminal"][0].Shortcut; got != "Ctrl+Shift+C" {
		t.Errorf("store state mutated through Contexts() result: %q", got)
	}
}
