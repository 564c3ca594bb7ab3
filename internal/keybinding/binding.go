package keybinding

// Binding associates a command code with a shortcut code.
// Both are opaque: they are resolved to human-readable labels only at
// presentation time.
type Binding struct {
	// Command is the command code, e.g. "copyToClipboard".
	Command string

	// Shortcut is the shortcut code, e.g. "Ctrl+Shift+C".
	Shortcut string
}

// Mapping is an ordered list of bindings for one context.
type Mapping []Binding

// Contexts maps a context identifier to its bindings.
type Contexts map[string]Mapping

// Clone returns an independent deep copy.
func (c Contexts) Clone() Contexts {
	if c == nil {
		return nil
	}
	out := make(Contexts, len(c))
	for id, m := range c {
		bindings := make(Mapping, len(m))
		copy(bindings, m)
		out[id] = bindings
	}
	return out
}
