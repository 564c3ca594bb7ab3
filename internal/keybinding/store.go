// Package keybinding owns key-binding profiles and notifies subscribers
// when the resolved contexts change.
//
// The store is the binding-side change broker. It scans a profiles
// directory, keeps the active profile's contexts loaded, and emits an
// event whenever the active profile switches or its definitions are
// re-read. Contexts are handed out as deep copies; callers never alias
// store state.
package keybinding

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mdlane/keypanel/internal/notify"
)

// EventReason describes why a key-binding event fired.
type EventReason int

const (
	// ReasonSwitch indicates the active profile changed.
	ReasonSwitch EventReason = iota

	// ReasonReload indicates profile definitions were re-read from disk.
	ReasonReload
)

// String returns the reason name.
func (r EventReason) String() string {
	switch r {
	case ReasonSwitch:
		return "switch"
	case ReasonReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Event represents a key-binding change notification.
type Event struct {
	// Reason describes what happened.
	Reason EventReason

	// Filename is the active profile file name at the time of the event.
	Filename string
}

// Store owns the key-binding profiles for one application instance.
type Store struct {
	mu sync.RWMutex

	// Profiles directory
	dir string

	// Scanned profile inventory, alphabetical by file name
	infos []ProfileInfo

	// Active profile file name, empty when none selected
	active string

	// Loaded active profile, nil until a selection loads
	profile *Profile

	notifier *notify.Notifier[Event]

	closed bool
}

// Open scans dir and returns a store for it.
func Open(dir string) (*Store, error) {
	infos, err := scanDir(dir)
	if err != nil {
		return nil, err
	}

	return &Store{
		dir:      dir,
		infos:    infos,
		notifier: notify.New[Event](),
	}, nil
}

// Dir returns the profiles directory.
func (s *Store) Dir() string {
	return s.dir
}

// Profiles returns the scanned profile inventory.
func (s *Store) Profiles() []ProfileInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ProfileInfo, len(s.infos))
	copy(out, s.infos)
	return out
}

// ActiveProfile returns the active profile file name, or empty.
func (s *Store) ActiveProfile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Contexts returns a deep copy of the active profile's contexts.
// The result is empty until a profile has been activated.
func (s *Store) Contexts() Contexts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return make(Contexts)
	}
	return s.profile.Contexts.Clone()
}

// SetActive switches the active profile. Switching to the already-active
// profile is a no-op. The target must be in the scanned inventory; the
// previous profile stays active when loading the new one fails.
func (s *Store) SetActive(filename string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	if filename == s.active && s.profile != nil {
		s.mu.Unlock()
		return nil
	}
	if !s.hasProfileLocked(filename) {
		s.mu.Unlock()
		return fmt.Errorf("%q: %w", filename, ErrProfileNotFound)
	}

	p, err := LoadProfile(filepath.Join(s.dir, filename))
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.active = filename
	s.profile = p
	event := Event{Reason: ReasonSwitch, Filename: filename}

	// Notify after releasing the lock so listeners can re-read the store.
	s.mu.Unlock()
	s.notifier.Notify(event)
	return nil
}

// Reload rescans the profiles directory and re-reads the active profile.
// Listeners are notified even when re-reading the active profile fails;
// in that case the previous definitions stay in effect and the load
// error is returned.
func (s *Store) Reload() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}

	infos, err := scanDir(s.dir)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.infos = infos

	var loadErr error
	if s.active != "" {
		p, err := LoadProfile(filepath.Join(s.dir, s.active))
		if err != nil {
			loadErr = err
		} else {
			s.profile = p
		}
	}

	event := Event{Reason: ReasonReload, Filename: s.active}
	s.mu.Unlock()

	s.notifier.Notify(event)
	return loadErr
}

// Subscribe registers a listener for key-binding changes.
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

// hasProfileLocked reports whether filename is in the scanned inventory.
func (s *Store) hasProfileLocked(filename string) bool {
	for _, info := range s.infos {
		if info.Filename == filename {
			return true
		}
	}
	return false
}

// scanDir lists the profile files in dir, alphabetical by file name.
// Unreadable or malformed files are skipped so one broken profile does
// not hide the rest.
func scanDir(dir string) ([]ProfileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan profiles: %w", err)
	}

	infos := make([]ProfileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := ReadInfo(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}
