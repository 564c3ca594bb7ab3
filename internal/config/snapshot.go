package config

// ProfileRef identifies a selectable key-binding profile.
type ProfileRef struct {
	// Filename is the profile's file name inside the profiles directory.
	Filename string

	// DisplayName is the human-readable profile name.
	DisplayName string
}

// Snapshot is an immutable point-in-time copy of the application settings.
//
// Consumers never receive an alias into store state: the store hands out
// clones, and every mutation path clones before changing anything.
type Snapshot struct {
	// KeyBindingsFilename is the file name of the active profile,
	// or empty when no selection has been made yet.
	KeyBindingsFilename string

	// AvailableProfiles lists selectable profiles in presentation order.
	// Published at runtime from the profile directory scan; not persisted.
	AvailableProfiles []ProfileRef
}

// Clone returns an independent deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		KeyBindingsFilename: s.KeyBindingsFilename,
	}
	if s.AvailableProfiles != nil {
		out.AvailableProfiles = make([]ProfileRef, len(s.AvailableProfiles))
		copy(out.AvailableProfiles, s.AvailableProfiles)
	}
	return out
}

// Equal reports whether two snapshots hold the same values.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.KeyBindingsFilename != other.KeyBindingsFilename {
		return false
	}
	if len(s.AvailableProfiles) != len(other.AvailableProfiles) {
		return false
	}
	for i, p := range s.AvailableProfiles {
		if p != other.AvailableProfiles[i] {
			return false
		}
	}
	return true
}

// HasProfile reports whether filename is one of the available profiles.
func (s Snapshot) HasProfile(filename string) bool {
	for _, p := range s.AvailableProfiles {
		if p.Filename == filename {
			return true
		}
	}
	return false
}
