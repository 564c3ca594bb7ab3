// Package main is the entry point for the keypanel settings panel.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mdlane/keypanel/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, dump := parseFlags()

	// Create application
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	// Headless mode: print the table and exit
	if dump {
		if err := application.Dump(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (app.Options, bool) {
	var (
		configPath  string
		settings    string
		profiles    string
		labels      string
		platform    string
		accent      string
		logLevel    string
		logFile     string
		debug       bool
		noWatch     bool
		dump        bool
		showVersion bool
		showHelp    bool
	)

	flag.StringVar(&configPath, "config", "", "Path to keypanel.toml")
	flag.StringVar(&configPath, "c", "", "Path to keypanel.toml (shorthand)")
	flag.StringVar(&settings, "settings", "", "Path to the shared settings document")
	flag.StringVar(&profiles, "profiles", "", "Key-binding profiles directory")
	flag.StringVar(&labels, "labels", "", "Path to the label overrides file")
	flag.StringVar(&platform, "platform", "", "Shortcut style platform (darwin, linux, windows)")
	flag.StringVar(&accent, "accent", "", "Accent color as #rrggbb")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "", "Log destination path, or 'stderr'")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&debug, "d", false, "Enable debug logging (shorthand)")
	flag.BoolVar(&noWatch, "no-watch", false, "Disable file watching")
	flag.BoolVar(&dump, "dump", false, "Print the binding table as text and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keypanel - key-binding settings panel\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keypanel [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keypanel                      Open the panel\n")
		fmt.Fprintf(os.Stderr, "  keypanel -dump                Print the binding table and exit\n")
		fmt.Fprintf(os.Stderr, "  keypanel -platform darwin     Preview shortcuts in macOS style\n")
		fmt.Fprintf(os.Stderr, "  keypanel -profiles ./profiles Use a specific profiles directory\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keypanel %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts, err := app.LoadOptions(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config file.
	if settings != "" {
		opts.SettingsPath = settings
	}
	if profiles != "" {
		opts.ProfilesDir = profiles
	}
	if labels != "" {
		opts.LabelsPath = labels
	}
	if platform != "" {
		opts.Platform = platform
	}
	if accent != "" {
		opts.Accent = accent
	}
	if logLevel != "" {
		opts.LogLevel = logLevel
	}
	if logFile != "" {
		opts.LogPath = logFile
	}
	if debug {
		opts.Debug = true
	}
	if noWatch || dump {
		opts.WatchEnabled = false
	}

	// Validate log level
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts, dump
}
