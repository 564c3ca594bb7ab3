package settings

import "github.com/mdlane/keypanel/internal/config"

// Model is the presentation state the controller keeps in sync with
// the brokers. Views read it; only the controller writes it.
type Model struct {
	// SelectedProfile is the selected profile file name, mirroring the
	// config snapshot. Empty when the config carries no selection.
	SelectedProfile string

	// AvailableProfiles lists the selectable profiles.
	AvailableProfiles []config.ProfileRef

	// BindingsRevision counts key-binding change notifications since
	// the controller was created. It only ever increases; equal values
	// mean a rendered table is still current.
	BindingsRevision uint64
}

// Clone returns an independent copy of the model.
func (m Model) Clone() Model {
	out := m
	out.AvailableProfiles = make([]config.ProfileRef, len(m.AvailableProfiles))
	copy(out.AvailableProfiles, m.AvailableProfiles)
	return out
}

// HasProfile reports whether filename is in the available set.
func (m Model) HasProfile(filename string) bool {
	for _, ref := range m.AvailableProfiles {
		if ref.Filename == filename {
			return true
		}
	}
	return false
}

// profileRefsEqual compares two profile lists by value, in order.
func profileRefsEqual(a, b []config.ProfileRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
