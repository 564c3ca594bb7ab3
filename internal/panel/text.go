package panel

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/mdlane/keypanel/internal/settings"
)

// WriteText writes the model and binding table as plain text, one row
// per binding, aligned into columns. It backs the non-interactive dump
// mode and is what the panel shows minus styling.
func WriteText(w io.Writer, model settings.Model, table settings.RenderedTable) error {
	if _, err := fmt.Fprintln(w, "Profiles:"); err != nil {
		return err
	}
	for _, ref := range model.AvailableProfiles {
		marker := " "
		if ref.Filename == model.SelectedProfile {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "  %s %s (%s)\n", marker, ref.DisplayName, ref.Filename); err != nil {
			return err
		}
	}
	if len(model.AvailableProfiles) == 0 {
		if _, err := fmt.Fprintln(w, "  (none)"); err != nil {
			return err
		}
	}

	labelW, shortcutW := columnWidths(table)
	for _, section := range table.Sections {
		if _, err := fmt.Fprintf(w, "\n%s\n", section.Label); err != nil {
			return err
		}
		for _, row := range section.Rows {
			_, err := fmt.Fprintf(w, "  %s  %s  %s\n",
				runewidth.FillRight(row.Label, labelW),
				runewidth.FillRight(row.Shortcut, shortcutW),
				row.Command)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
