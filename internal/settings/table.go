package settings

import (
	"sort"

	"github.com/mdlane/keypanel/internal/keybinding"
)

// Row is one rendered binding: the resolved command label, the
// platform-formatted shortcut, and the raw command code the row was
// built from.
type Row struct {
	Label    string
	Shortcut string
	Command  string
}

// Section groups the rows of one context.
type Section struct {
	// Context is the raw context identifier.
	Context string

	// Label is the resolved context label.
	Label string

	// Rows holds the context's bindings, sorted by resolved label.
	Rows []Row
}

// RenderedTable is a fully resolved binding table, ready for display.
type RenderedTable struct {
	Sections []Section
}

// Rows returns the total number of rows across all sections.
func (t RenderedTable) Rows() int {
	n := 0
	for _, s := range t.Sections {
		n += len(s.Rows)
	}
	return n
}

// FormatTable renders contexts into a display table.
//
// Sections follow the registered context order, with unregistered
// contexts appended. Rows within a section are sorted by resolved
// command label using plain byte-wise comparison, so ordering does not
// depend on the host locale. A nil resolver leaves codes unresolved.
func FormatTable(contexts keybinding.Contexts, resolver LabelResolver, platform string) RenderedTable {
	if resolver == nil {
		resolver = identityResolver{}
	}

	var table RenderedTable
	for _, id := range keybinding.OrderedContexts(contexts) {
		mapping := contexts[id]

		rows := make([]Row, 0, len(mapping))
		for _, binding := range mapping {
			rows = append(rows, Row{
				Label:    resolver.ResolveCommand(binding.Command),
				Shortcut: FormatShortcut(binding.Shortcut, platform),
				Command:  binding.Command,
			})
		}

		// Sort by resolved label, byte-wise. Ties keep profile order.
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Label < rows[j].Label
		})

		table.Sections = append(table.Sections, Section{
			Context: id,
			Label:   resolver.ResolveContext(id),
			Rows:    rows,
		})
	}
	return table
}

// identityResolver resolves every code to itself.
type identityResolver struct{}

func (identityResolver) ResolveCommand(code string) string { return code }
func (identityResolver) ResolveContext(id string) string   { return id }
