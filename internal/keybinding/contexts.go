package keybinding

import "sort"

// contextOrder is the fixed presentation order for known contexts.
// Tables iterate contexts in this order, never in map insertion order.
var contextOrder = []string{
	"application",
	"window",
	"terminal",
	"editor",
	"selection",
}

// ContextOrder returns the registered context identifiers in
// presentation order.
func ContextOrder() []string {
	out := make([]string, len(contextOrder))
	copy(out, contextOrder)
	return out
}

// OrderedContexts returns the identifiers present in c in presentation
// order: registered contexts first, then any unregistered ones sorted
// lexically so nothing a profile defines is silently dropped.
func OrderedContexts(c Contexts) []string {
	out := make([]string, 0, len(c))
	known := make(map[string]bool, len(contextOrder))

	for _, id := range contextOrder {
		known[id] = true
		if _, ok := c[id]; ok {
			out = append(out, id)
		}
	}

	var extra []string
	for id := range c {
		if !known[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)

	return append(out, extra...)
}
