package panel

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultAccent is the accent color used when the config carries none.
const DefaultAccent = "#7aa2f7"

// Theme holds the styles the panel draws with. All styles derive from
// a single accent color.
type Theme struct {
	accent colorful.Color

	Base        tcell.Style
	Header      tcell.Style
	Label       tcell.Style
	Shortcut    tcell.Style
	Code        tcell.Style
	Selected    tcell.Style
	Active      tcell.Style
	Status      tcell.Style
	StatusError tcell.Style
}

// NewTheme derives a theme from an accent color in "#rrggbb" form.
// Invalid input falls back to DefaultAccent.
func NewTheme(accentHex string) Theme {
	accent, err := colorful.Hex(accentHex)
	if err != nil {
		accent, _ = colorful.Hex(DefaultAccent)
	}

	bright := lighten(accent, 0.2)
	dim := darken(accent, 0.35)
	errRed, _ := colorful.Hex("#f7768e")

	return Theme{
		accent:      accent,
		Base:        tcell.StyleDefault,
		Header:      tcell.StyleDefault.Foreground(toTcell(accent)).Bold(true),
		Label:       tcell.StyleDefault,
		Shortcut:    tcell.StyleDefault.Foreground(toTcell(bright)),
		Code:        tcell.StyleDefault.Foreground(toTcell(dim)),
		Selected:    tcell.StyleDefault.Background(toTcell(dim)).Bold(true),
		Active:      tcell.StyleDefault.Foreground(toTcell(bright)).Bold(true),
		Status:      tcell.StyleDefault.Foreground(toTcell(dim)),
		StatusError: tcell.StyleDefault.Foreground(toTcell(errRed)).Bold(true),
	}
}

// TitleColors returns a gradient across n cells for the title line.
// Blending is done in HCL color space for perceptually uniform
// transitions.
func (t Theme) TitleColors(n int) []tcell.Color {
	if n <= 0 {
		return nil
	}

	from := t.accent
	to := lighten(t.accent, 0.45)

	colors := make([]tcell.Color, n)
	if n == 1 {
		colors[0] = toTcell(from)
		return colors
	}
	for i := range colors {
		step := float64(i) / float64(n-1)
		colors[i] = toTcell(from.BlendHcl(to, step).Clamped())
	}
	return colors
}

// lighten raises a color's luminance by amount, in HSL space.
func lighten(c colorful.Color, amount float64) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, clamp01(l+amount))
}

// darken lowers a color's luminance by amount, in HSL space.
func darken(c colorful.Color, amount float64) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, clamp01(l-amount))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// toTcell converts a colorful color to a tcell RGB color.
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
