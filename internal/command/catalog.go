// Package command maps command and context codes to human-readable
// labels.
//
// Codes are the stable identifiers key-binding profiles are written
// in; labels are what tables and menus show. Resolution is total: an
// unknown code resolves to itself so new commands degrade to their raw
// code instead of disappearing.
package command

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/tidwall/gjson"
)

// Catalog manages label registration by exact code.
type Catalog struct {
	mu       sync.RWMutex
	commands map[string]string // command code -> label
	contexts map[string]string // context id -> label
}

// NewCatalog creates a catalog seeded with the built-in labels.
func NewCatalog() *Catalog {
	c := &Catalog{
		commands: make(map[string]string, len(builtinCommandLabels)),
		contexts: make(map[string]string, len(builtinContextLabels)),
	}
	for code, label := range builtinCommandLabels {
		c.commands[code] = label
	}
	for id, label := range builtinContextLabels {
		c.contexts[id] = label
	}
	return c
}

// RegisterCommand adds or replaces the label for a command code.
func (c *Catalog) RegisterCommand(code, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands[code] = label
}

// RegisterContext adds or replaces the label for a context identifier.
func (c *Catalog) RegisterContext(id, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contexts[id] = label
}

// ResolveCommand returns the label for a command code.
// Unknown codes resolve to the code itself.
func (c *Catalog) ResolveCommand(code string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if label, ok := c.commands[code]; ok {
		return label
	}
	return code
}

// ResolveContext returns the label for a context identifier.
// Unknown identifiers resolve to the identifier itself.
func (c *Catalog) ResolveContext(id string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if label, ok := c.contexts[id]; ok {
		return label
	}
	return id
}

// HasCommand returns true if a label is registered for the code.
func (c *Catalog) HasCommand(code string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.commands[code]
	return ok
}

// Commands returns all registered command codes.
func (c *Catalog) Commands() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	codes := make([]string, 0, len(c.commands))
	for code := range c.commands {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Count returns the number of registered command labels.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.commands)
}

// LoadOverrides reads user label overrides from a JSON file and
// registers them on top of the built-ins. A missing file is not an
// error.
//
// Expected shape:
//
//	{
//	  "commands": {"copyToClipboard": "Copy"},
//	  "contexts": {"terminal": "Shell"}
//	}
func (c *Catalog) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read label overrides: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("label overrides %s: invalid JSON", path)
	}

	doc := gjson.ParseBytes(data)

	c.mu.Lock()
	defer c.mu.Unlock()

	doc.Get("commands").ForEach(func(code, label gjson.Result) bool {
		c.commands[code.String()] = label.String()
		return true
	})
	doc.Get("contexts").ForEach(func(id, label gjson.Result) bool {
		c.contexts[id.String()] = label.String()
		return true
	})
	return nil
}
