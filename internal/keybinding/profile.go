package keybinding

// Profile is a named, file-backed set of key-binding definitions.
type Profile struct {
	// Filename is the profile's file name inside the profiles directory.
	Filename string

	// DisplayName is the human-readable profile name from the file,
	// falling back to the file name when absent.
	DisplayName string

	// Contexts holds the profile's bindings grouped by context.
	Contexts Contexts
}

// Clone returns an independent deep copy of the profile.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	return &Profile{
		Filename:    p.Filename,
		DisplayName: p.DisplayName,
		Contexts:    p.Contexts.Clone(),
	}
}

// ProfileInfo identifies a profile discovered in the profiles directory.
type ProfileInfo struct {
	// Filename is the profile's file name.
	Filename string

	// DisplayName is the human-readable profile name.
	DisplayName string
}
