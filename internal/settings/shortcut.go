package settings

import "strings"

// PlatformDarwin is the platform identifier for macOS, following
// runtime.GOOS naming.
const PlatformDarwin = "darwin"

// darwinGlyphs maps modifier names to their macOS keyboard glyphs.
var darwinGlyphs = map[string]string{
	"Cmd":   "⌘",
	"Shift": "⇧",
	"Alt":   "⌥",
	"Ctrl":  "^",
}

// FormatShortcut renders a shortcut code for a platform.
//
// On darwin the code is split on "+", known modifiers become their
// keyboard glyphs, unrecognized parts pass through unchanged, and the
// parts are joined without a separator: "Cmd+Shift+K" renders as
// "⌘⇧K". On every other platform the code is returned as-is.
func FormatShortcut(shortcut, platform string) string {
	if platform != PlatformDarwin {
		return shortcut
	}

	var b strings.Builder
	for _, part := range strings.Split(shortcut, "+") {
		if glyph, ok := darwinGlyphs[part]; ok {
			b.WriteString(glyph)
		} else {
			b.WriteString(part)
		}
	}
	return b.String()
}
