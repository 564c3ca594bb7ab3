package keybinding

import (
	"reflect"
	"testing"
)

func TestContextOrder_ReturnsCopy(t *testing.T) {
	first := ContextOrder()
	first[0] = "mutated"

	second := ContextOrder()
	if second[0] != "application" {
		t.Errorf("ContextOrder()[0] = %q after caller mutation, want %q", second[0], "application")
	}
}

func TestOrderedContexts(t *testing.T) {
	tests := []struct {
		name     string
		contexts Contexts
		want     []string
	}{
		{
			name: "registered contexts in presentation order",
			contexts: Contexts{
				"terminal":    {},
				"application": {},
				"editor":      {},
			},
			want: []string{"application", "terminal", "editor"},
		},
		{
			name: "unregistered contexts appended lexically",
			contexts: Contexts{
				"zz-custom":   {},
				"window":      {},
				"aa-custom":   {},
				"application": {},
			},
			want: []string{"application", "window", "aa-custom", "zz-custom"},
		},
		{
			name:     "empty contexts",
			contexts: Contexts{},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderedContexts(tt.contexts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("OrderedContexts() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContexts_Clone(t *testing.T) {
	original := Contexts{
		"terminal": {
			{Command: "copyToClipboard", Shortcut: "Ctrl+Shift+C"},
		},
	}

	clone := original.Clone()
	clone["terminal"][0].Shortcut = "Ctrl+Ins"
	clone["editor"] = Mapping{{Command: "find", Shortcut: "Ctrl+F"}}

	if original["terminal"][0].Shortcut != "Ctrl+Shift+C" {
		t.Errorf("original binding mutated through clone: %q", original["terminal"][0].Shortcut)
	}
	if _, ok := original["editor"]; ok {
		t.Error("original gained a context added to the clone")
	}
}

func TestContexts_CloneNil(t *testing.T) {
	var c Contexts
	if got := c.Clone(); got != nil {
		t.Errorf("Clone() of nil = %v, want nil", got)
	}
}
