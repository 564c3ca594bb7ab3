package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mdlane/keypanel/internal/panel"
)

// Options configures the application. Values come from the defaults,
// then the config file, then whatever the caller overrides.
type Options struct {
	// ConfigPath is the path to the keypanel.toml bootstrap config.
	ConfigPath string

	// SettingsPath is the shared settings document.
	SettingsPath string

	// ProfilesDir holds the key-binding profile files.
	ProfilesDir string

	// LabelsPath is the optional label override file.
	LabelsPath string

	// Accent is the theme accent color in "#rrggbb" form.
	Accent string

	// Platform overrides shortcut formatting; empty uses the host.
	Platform string

	// WatchEnabled turns file watching on.
	WatchEnabled bool

	// DebounceMS is the watcher debounce window in milliseconds.
	DebounceMS int

	// LogLevel sets the logging verbosity.
	LogLevel string

	// LogPath is the log destination. The value "stderr" writes to
	// standard error.
	LogPath string

	// Debug forces debug-level logging.
	Debug bool
}

// fileConfig mirrors the keypanel.toml layout.
type fileConfig struct {
	Paths struct {
		Settings string `koanf:"settings"`
		Profiles string `koanf:"profiles"`
		Labels   string `koanf:"labels"`
	} `koanf:"paths"`

	UI struct {
		Accent   string `koanf:"accent"`
		Platform string `koanf:"platform"`
	} `koanf:"ui"`

	Watch struct {
		Enabled    *bool `koanf:"enabled"`
		DebounceMS int   `koanf:"debounce_ms"`
	} `koanf:"watch"`

	Log struct {
		Level string `koanf:"level"`
		File  string `koanf:"file"`
	} `koanf:"log"`
}

// DefaultOptions returns options rooted in the XDG directories.
func DefaultOptions() (Options, error) {
	settings, err := xdg.ConfigFile("keypanel/settings.json")
	if err != nil {
		return Options{}, fmt.Errorf("resolve settings path: %w", err)
	}

	logPath, err := xdg.StateFile("keypanel/keypanel.log")
	if err != nil {
		logPath = "stderr"
	}

	base := filepath.Join(xdg.ConfigHome, "keypanel")
	return Options{
		ConfigPath:   filepath.Join(base, "keypanel.toml"),
		SettingsPath: settings,
		ProfilesDir:  filepath.Join(base, "profiles"),
		LabelsPath:   filepath.Join(base, "labels.json"),
		Accent:       panel.DefaultAccent,
		WatchEnabled: true,
		DebounceMS:   100,
		LogLevel:     "info",
		LogPath:      logPath,
	}, nil
}

// LoadOptions builds options from the defaults overlaid with the
// config file at configPath. An empty configPath uses the default
// location; a missing file is not an error.
func LoadOptions(configPath string) (Options, error) {
	opts, err := DefaultOptions()
	if err != nil {
		return Options{}, err
	}
	if configPath != "" {
		opts.ConfigPath = configPath
	}

	if _, err := os.Stat(opts.ConfigPath); err != nil {
		return opts, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(opts.ConfigPath), toml.Parser()); err != nil {
		return opts, fmt.Errorf("load config %s: %w", opts.ConfigPath, err)
	}

	var fc fileConfig
	if err := k.Unmarshal("", &fc); err != nil {
		return opts, fmt.Errorf("parse config %s: %w", opts.ConfigPath, err)
	}

	if fc.Paths.Settings != "" {
		opts.SettingsPath = expandPath(fc.Paths.Settings)
	}
	if fc.Paths.Profiles != "" {
		opts.ProfilesDir = expandPath(fc.Paths.Profiles)
	}
	if fc.Paths.Labels != "" {
		opts.LabelsPath = expandPath(fc.Paths.Labels)
	}
	if fc.UI.Accent != "" {
		opts.Accent = fc.UI.Accent
	}
	if fc.UI.Platform != "" {
		opts.Platform = fc.UI.Platform
	}
	if fc.Watch.Enabled != nil {
		opts.WatchEnabled = *fc.Watch.Enabled
	}
	if fc.Watch.DebounceMS > 0 {
		opts.DebounceMS = fc.Watch.DebounceMS
	}
	if fc.Log.Level != "" {
		opts.LogLevel = fc.Log.Level
	}
	if fc.Log.File != "" {
		opts.LogPath = expandPath(fc.Log.File)
	}

	return opts, nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
