package command

// builtinCommandLabels holds the labels for the commands the bundled
// profiles bind. Profiles may bind commands outside this table; those
// fall back to their raw code.
var builtinCommandLabels = map[string]string{
	// Application
	"openSettings":         "Open Settings",
	"toggleCommandPalette": "Toggle Command Palette",
	"quitApplication":      "Quit Application",

	// Window
	"newWindow":   "New Window",
	"closeWindow": "Close Window",
	"newTerminal": "New Terminal",
	"closeTab":    "Close Tab",
	"nextTab":     "Next Tab",
	"previousTab": "Previous Tab",

	// Terminal
	"copyToClipboard":    "Copy to Clipboard",
	"pasteFromClipboard": "Paste from Clipboard",
	"clearScrollback":    "Clear Scrollback",
	"scrollPageUp":       "Scroll Page Up",
	"scrollPageDown":     "Scroll Page Down",
	"resetTerminal":      "Reset Terminal",

	// Editor
	"find":      "Find",
	"selectAll": "Select All",
	"zoomIn":    "Zoom In",
	"zoomOut":   "Zoom Out",
	"resetZoom": "Reset Zoom",

	// Selection
	"copySelection":  "Copy Selection",
	"clearSelection": "Clear Selection",
	"openLink":       "Open Link",
}

// builtinContextLabels holds the labels for the registered contexts.
var builtinContextLabels = map[string]string{
	"application": "Application",
	"window":      "Window",
	"terminal":    "Terminal",
	"editor":      "Editor",
	"selection":   "Selection",
}
