package panel

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/mdlane/keypanel/internal/settings"
)

// span is a run of text drawn in one style.
type span struct {
	text  string
	style tcell.Style
}

// line is one row of styled spans.
type line struct {
	spans []span
}

// plain returns the line's text without styling.
func (l line) plain() string {
	out := ""
	for _, s := range l.spans {
		out += s.text
	}
	return out
}

// columnWidths returns the display widths of the label and shortcut
// columns across the whole table, so every section aligns.
func columnWidths(table settings.RenderedTable) (labelW, shortcutW int) {
	for _, section := range table.Sections {
		for _, row := range section.Rows {
			if w := runewidth.StringWidth(row.Label); w > labelW {
				labelW = w
			}
			if w := runewidth.StringWidth(row.Shortcut); w > shortcutW {
				shortcutW = w
			}
		}
	}
	return labelW, shortcutW
}

// buildLines renders the profile list and binding table into styled
// lines. The cursor index highlights one profile row; scrolling and
// clipping happen at draw time.
func buildLines(model settings.Model, table settings.RenderedTable, th Theme, cursor int) []line {
	lines := []line{
		{spans: []span{{"Profiles", th.Header}}},
	}

	for i, ref := range model.AvailableProfiles {
		prefix := "  "
		style := th.Label
		if i == cursor {
			prefix = "> "
			style = th.Selected
		}

		spans := []span{{prefix + ref.DisplayName, style}}
		if ref.Filename == model.SelectedProfile {
			spans = append(spans, span{" (active)", th.Active})
		}
		lines = append(lines, line{spans: spans})
	}
	if len(model.AvailableProfiles) == 0 {
		lines = append(lines, line{spans: []span{{"  no profiles found", th.Status}}})
	}

	labelW, shortcutW := columnWidths(table)
	for _, section := range table.Sections {
		lines = append(lines,
			line{},
			line{spans: []span{{section.Label, th.Header}}},
		)

		for _, row := range section.Rows {
			lines = append(lines, line{spans: []span{
				{"  ", th.Base},
				{runewidth.FillRight(row.Label, labelW), th.Label},
				{"  ", th.Base},
				{runewidth.FillRight(row.Shortcut, shortcutW), th.Shortcut},
				{"  ", th.Base},
				{row.Command, th.Code},
			}})
		}
		if len(section.Rows) == 0 {
			lines = append(lines, line{spans: []span{{"  (no bindings)", th.Status}}})
		}
	}

	return lines
}
