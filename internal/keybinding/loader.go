package keybinding

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// LoadProfile reads and parses a profile file.
// Shortcut syntax is not validated here: codes are opaque until
// presentation time.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	p, err := parseProfile(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	p.Filename = filepath.Base(path)
	if p.DisplayName == "" {
		p.DisplayName = displayNameFromFilename(p.Filename)
	}
	return p, nil
}

// ReadInfo reads only a profile's identity, for directory scans.
func ReadInfo(path string) (ProfileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProfileInfo{}, fmt.Errorf("read profile: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return ProfileInfo{}, &ParseError{Path: path, Err: errors.New("invalid JSON")}
	}

	info := ProfileInfo{
		Filename:    filepath.Base(path),
		DisplayName: gjson.GetBytes(data, "name").String(),
	}
	if info.DisplayName == "" {
		info.DisplayName = displayNameFromFilename(info.Filename)
	}
	return info, nil
}

// parseProfile decodes the profile document.
//
// Expected shape:
//
//	{
//	  "name": "Default",
//	  "contexts": {
//	    "terminal": [
//	      {"command": "copyToClipboard", "shortcut": "Ctrl+Shift+C"}
//	    ]
//	  }
//	}
func parseProfile(data []byte) (*Profile, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.New("profile document is not an object")
	}

	p := &Profile{
		DisplayName: doc.Get("name").String(),
		Contexts:    make(Contexts),
	}

	doc.Get("contexts").ForEach(func(ctx, list gjson.Result) bool {
		mapping := make(Mapping, 0, int(list.Get("#").Int()))
		list.ForEach(func(_, entry gjson.Result) bool {
			mapping = append(mapping, Binding{
				Command:  entry.Get("command").String(),
				Shortcut: entry.Get("shortcut").String(),
			})
			return true
		})
		p.Contexts[ctx.String()] = mapping
		return true
	})

	return p, nil
}

// displayNameFromFilename derives a fallback display name,
// e.g. "macos-style.json" becomes "macos-style".
func displayNameFromFilename(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
