package config

import "testing"

func TestSnapshot_Equal(t *testing.T) {
	base := Snapshot{
		KeyBindingsFilename: "default.json",
		AvailableProfiles: []ProfileRef{
			{Filename: "default.json", DisplayName: "Default"},
			{Filename: "vim.json", DisplayName: "Vim"},
		},
	}

	tests := []struct {
		name  string
		other Snapshot
		want  bool
	}{
		{
			name:  "identical",
			other: base.Clone(),
			want:  true,
		},
		{
			name: "different filename",
			other: Snapshot{
				KeyBindingsFilename: "vim.json",
				AvailableProfiles:   base.AvailableProfiles,
			},
			want: false,
		},
		{
			name: "different profile count",
			other: Snapshot{
				KeyBindingsFilename: "default.json",
				AvailableProfiles:   base.AvailableProfiles[:1],
			},
			want: false,
		},
		{
			name: "different display name",
			other: Snapshot{
				KeyBindingsFilename: "default.json",
				AvailableProfiles: []ProfileRef{
					{Filename: "default.json", DisplayName: "Standard"},
					{Filename: "vim.json", DisplayName: "Vim"},
				},
			},
			want: false,
		},
		{
			name:  "both empty",
			other: Snapshot{},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}

	if !(Snapshot{}).Equal(Snapshot{}) {
		t.Error("two zero snapshots should be equal")
	}
}

func TestSnapshot_Clone(t *testing.T) {
	orig := Snapshot{
		KeyBindingsFilename: "default.json",
		AvailableProfiles: []ProfileRef{
			{Filename: "default.json", DisplayName: "Default"},
		},
	}

	clone := orig.Clone()
	clone.KeyBindingsFilename = "vim.json"
	clone.AvailableProfiles[0].DisplayName = "Changed"

	if orig.KeyBindingsFilename != "default.json" {
		t.Errorf("original filename mutated to %q", orig.KeyBindingsFilename)
	}
	if orig.AvailableProfiles[0].DisplayName != "Default" {
		t.Errorf("original profile mutated to %q", orig.AvailableProfiles[0].DisplayName)
	}
}

func TestSnapshot_HasProfile(t *testing.T) {
	s := Snapshot{
		AvailableProfiles: []ProfileRef{
			{Filename: "default.json", DisplayName: "Default"},
			{Filename: "vim.json", DisplayName: "Vim"},
		},
	}

	if !s.HasProfile("vim.json") {
		t.Error("HasProfile(vim.json) = false, want true")
	}
	if s.HasProfile("emacs.json") {
		t.Error("HasProfile(emacs.json) = true, want false")
	}
	if (Snapshot{}).HasProfile("") {
		t.Error("empty snapshot should have no profiles")
	}
}
