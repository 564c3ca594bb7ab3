// Package config owns the application settings document and notifies
// subscribers when it changes.
//
// The store is the config-side change broker. It hands out immutable
// snapshots, accepts whole-snapshot submissions, and re-reads its backing
// JSON file when the document changes externally. Writes are field-scoped:
// only the settings this application owns are written back into the current
// document, so fields owned by other tools survive a Submit untouched.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/mdlane/keypanel/internal/notify"
)

// JSON paths inside the settings document.
const (
	pathKeyBindings = "keyBindingsFilename"
)

// Event sources. Informational only: consumers converge on snapshot
// values, never on event origin.
const (
	// SourceSubmit marks a change submitted through the store API.
	SourceSubmit = "submit"
	// SourceFile marks a change picked up from the backing file.
	SourceFile = "file"
	// SourceRuntime marks a runtime-published change such as the
	// available-profiles inventory.
	SourceRuntime = "runtime"
)

// EventType represents the type of settings change.
type EventType int

const (
	// EventSet indicates a value was set or updated.
	EventSet EventType = iota

	// EventReload indicates the backing document was re-read.
	EventReload
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventSet:
		return "set"
	case EventReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Event represents a settings change notification.
type Event struct {
	// Type is the type of change.
	Type EventType

	// Old is the snapshot before the change.
	Old Snapshot

	// New is the snapshot after the change.
	New Snapshot

	// Source identifies where the change came from.
	Source string
}

// Store owns the settings document for one application instance.
type Store struct {
	mu sync.RWMutex

	// Backing file path
	path string

	// Current document bytes, exactly as on disk
	raw []byte

	// Current parsed state
	snapshot Snapshot

	notifier *notify.Notifier[Event]

	closed bool
}

// Open reads the settings document at path and returns a store for it.
// A missing file is not an error: the store starts from an empty document
// and creates the file on the first Submit that changes something.
func Open(path string) (*Store, error) {
	s := &Store{
		path:     path,
		raw:      []byte("{}"),
		notifier: notify.New[Event](),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: path, Err: errors.New("invalid JSON")}
	}

	s.raw = data
	s.snapshot.KeyBindingsFilename = gjson.GetBytes(data, pathKeyBindings).String()
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current settings state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Document returns a copy of the current raw document bytes.
func (s *Store) Document() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]byte, len(s.raw))
	copy(out, s.raw)
	return out
}

// Submit replaces the current settings state with the given snapshot.
// Submitting a snapshot value-equal to the current state is a no-op: no
// write happens and no listeners fire. Otherwise the owned fields are set
// into the current document, the file is written, and listeners are
// notified synchronously.
func (s *Store) Submit(snap Snapshot) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	if snap.Equal(s.snapshot) {
		s.mu.Unlock()
		return nil
	}

	raw, err := sjson.SetBytes(s.raw, pathKeyBindings, snap.KeyBindingsFilename)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("update settings document: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("write settings: %w", err)
	}

	old := s.snapshot
	s.raw = raw
	s.snapshot = snap.Clone()
	event := Event{Type: EventSet, Old: old.Clone(), New: s.snapshot.Clone(), Source: SourceSubmit}

	// Notify after releasing the lock so listeners can re-read the store.
	s.mu.Unlock()
	s.notifier.Notify(event)
	return nil
}

// SetAvailableProfiles publishes the selectable profile inventory.
// The list is runtime state fed from the profile directory scan; it is
// never persisted to the settings document. Listeners fire only when the
// list actually changed.
func (s *Store) SetAvailableProfiles(profiles []ProfileRef) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	next := s.snapshot.Clone()
	next.AvailableProfiles = make([]ProfileRef, len(profiles))
	copy(next.AvailableProfiles, profiles)

	if next.Equal(s.snapshot) {
		s.mu.Unlock()
		return
	}

	old := s.snapshot
	s.snapshot = next
	event := Event{Type: EventSet, Old: old.Clone(), New: next.Clone(), Source: SourceRuntime}

	s.mu.Unlock()
	s.notifier.Notify(event)
}

// Reload re-reads the backing file. It reports whether the document
// changed. A byte-identical document is skipped without notifying, so a
// watcher echo of the store's own write settles quietly. Listeners are
// notified on any document change even when the parsed values came out
// equal: consumers do their own value comparison.
func (s *Store) Reload() (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrStoreClosed
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data = []byte("{}")
	case err != nil:
		s.mu.Unlock()
		return false, fmt.Errorf("read settings: %w", err)
	}

	if bytes.Equal(data, s.raw) {
		s.mu.Unlock()
		return false, nil
	}

	if !gjson.ValidBytes(data) {
		s.mu.Unlock()
		return false, &ParseError{Path: s.path, Err: errors.New("invalid JSON")}
	}

	next := s.snapshot.Clone()
	next.KeyBindingsFilename = gjson.GetBytes(data, pathKeyBindings).String()

	old := s.snapshot
	s.raw = data
	s.snapshot = next
	event := Event{Type: EventReload, Old: old.Clone(), New: next.Clone(), Source: SourceFile}

	s.mu.Unlock()
	s.notifier.Notify(event)
	return true, nil
}

// Subscribe registers a listener for settings changes.
func (s *Store) Subscribe(fn func(Event)) *notify.Subscription[Event] {
	return s.notifier.Subscribe(fn)
}

// SubscriberCount returns the number of active change listeners.
func (s *Store) SubscriberCount() int {
	return s.notifier.Len()
}

// Close shuts the store down. It is safe to call Close multiple times.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.notifier.Close()
}
