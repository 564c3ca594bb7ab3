package app

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/mdlane/keypanel/internal/command"
	"github.com/mdlane/keypanel/internal/config"
	"github.com/mdlane/keypanel/internal/keybinding"
	"github.com/mdlane/keypanel/internal/notify"
	"github.com/mdlane/keypanel/internal/panel"
	"github.com/mdlane/keypanel/internal/settings"
	"github.com/mdlane/keypanel/internal/watch"
)

// Application is the central coordinator for the keypanel components.
// It manages component lifecycles, store wiring, and the panel loop.
type Application struct {
	mu sync.Mutex

	// Core infrastructure
	logger  *Logger
	logFile *os.File
	metrics *Metrics

	// Stores
	config   *config.Store
	bindings *keybinding.Store

	// Presentation
	catalog    *command.Catalog
	controller *settings.Controller
	panel      *panel.Panel

	// File watching, nil when disabled
	watcher *watch.Watcher

	// Store bridges
	cfgSub   *notify.Subscription[config.Event]
	modelSub *notify.Subscription[settings.Model]

	// Watched paths in absolute form
	settingsPath string
	profilesDir  string
	labelsPath   string

	// State
	running atomic.Bool
	closed  bool

	// Options
	opts Options
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Logging
	if err := app.initLogging(); err != nil {
		return NewComponentError("logger", "init", err)
	}

	// 2. Key-binding profiles
	if err := keybinding.EnsureDefaults(app.opts.ProfilesDir); err != nil {
		return NewComponentError("profiles", "seed", err)
	}
	bindings, err := keybinding.Open(app.opts.ProfilesDir)
	if err != nil {
		return NewComponentError("profiles", "open", err)
	}
	app.bindings = bindings

	// 3. Settings document
	cfg, err := config.Open(app.opts.SettingsPath)
	if err != nil {
		return NewComponentError("settings", "open", err)
	}
	app.config = cfg

	// 4. Command catalog with optional label overrides
	app.catalog = command.NewCatalog()
	if err := app.catalog.LoadOverrides(app.opts.LabelsPath); err != nil {
		// Bad overrides fall back to the built-in labels.
		app.logger.Warn("label overrides ignored", "path", app.opts.LabelsPath, "error", err)
	}

	// 5. Reconcile the stores: publish the scanned profiles into the
	// settings document and activate the selected one
	app.republishProfiles()
	app.ensureSelection()

	// 6. Settings controller
	ctrlOpts := []settings.Option{
		settings.WithLogger(app.logger.WithComponent("settings")),
	}
	if app.opts.Platform != "" {
		ctrlOpts = append(ctrlOpts, settings.WithPlatform(app.opts.Platform))
	}
	app.controller = settings.New(app.catalog, ctrlOpts...)
	if err := app.controller.Attach(app.config, app.bindings); err != nil {
		return NewComponentError("controller", "attach", err)
	}

	// 7. Store bridges
	app.setupSubscriptions()

	// 8. File watcher
	if app.opts.WatchEnabled {
		if err := app.setupWatcher(); err != nil {
			// The app works without live reload.
			app.logger.Warn("file watching disabled", "error", err)
		}
	}

	// 9. Panel
	app.panel = panel.New(app.controller,
		panel.WithTheme(panel.NewTheme(app.opts.Accent)),
		panel.WithLogger(app.logger.WithComponent("panel")),
		panel.WithReload(app.Reload),
	)

	return nil
}

// initLogging builds the application logger from the options.
func (app *Application) initLogging() error {
	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(app.opts.LogLevel)
	if app.opts.Debug {
		cfg.Level = LogLevelDebug
	}

	if app.opts.LogPath != "" && app.opts.LogPath != "stderr" {
		f, err := os.OpenFile(app.opts.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		app.logFile = f
		cfg.Output = f
	}

	app.logger = NewLogger(cfg)
	SetLogger(app.logger)
	return nil
}

// republishProfiles pushes the scanned profile inventory into the
// settings document so every consumer sees the same available set.
func (app *Application) republishProfiles() {
	infos := app.bindings.Profiles()
	refs := make([]config.ProfileRef, len(infos))
	for i, info := range infos {
		refs[i] = config.ProfileRef{
			Filename:    info.Filename,
			DisplayName: info.DisplayName,
		}
	}
	app.config.SetAvailableProfiles(refs)
}

// ensureSelection activates the configured profile, falling back to the
// first available one when the configured value is missing or stale.
// Failures here degrade to an empty binding table instead of aborting
// startup.
func (app *Application) ensureSelection() {
	snap := app.config.Snapshot()
	selected := snap.KeyBindingsFilename

	if selected == "" || !snap.HasProfile(selected) {
		if len(snap.AvailableProfiles) == 0 {
			app.logger.Warn("no key-binding profiles found", "dir", app.opts.ProfilesDir)
			return
		}
		selected = snap.AvailableProfiles[0].Filename
		snap.KeyBindingsFilename = selected
		if err := app.config.Submit(snap); err != nil {
			app.logger.Warn("profile selection not persisted", "profile", selected, "error", err)
		}
	}

	if err := app.bindings.SetActive(selected); err != nil {
		app.logger.Warn("profile activation failed", "profile", selected, "error", err)
	}
}

// Run starts the panel loop. Blocks until the user quits or Shutdown
// is called.
func (app *Application) Run() error {
	app.mu.Lock()
	closed := app.closed
	app.mu.Unlock()
	if closed {
		return ErrClosed
	}

	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	model := app.controller.Model()
	app.logger.Info("keypanel started",
		"selected", model.SelectedProfile,
		"profiles", len(model.AvailableProfiles))

	return app.panel.Run()
}

// Shutdown requests the panel loop to exit. Safe to call from signal
// handlers; it does not wait for Run to return.
func (app *Application) Shutdown() {
	if !app.running.Load() {
		return
	}
	app.panel.Stop()
}

// Reload re-reads every input from disk: the settings document, the
// profile directory, and the label overrides. Errors are collected so
// one bad file does not stop the others from reloading.
func (app *Application) Reload() error {
	errs := NewErrorList()

	if _, err := app.config.Reload(); err != nil {
		errs.Add(NewComponentError("settings", "reload", err))
	} else {
		app.metrics.RecordConfigReload()
	}

	if err := app.bindings.Reload(); err != nil {
		errs.Add(NewComponentError("profiles", "reload", err))
	} else {
		app.metrics.RecordProfileReload()
	}
	app.republishProfiles()

	if err := app.catalog.LoadOverrides(app.opts.LabelsPath); err != nil {
		errs.Add(NewComponentError("labels", "reload", err))
	} else {
		app.metrics.RecordLabelReload()
		app.controller.Refresh()
	}

	return errs.AsError()
}

// Dump writes the current profile list and binding table as plain text.
func (app *Application) Dump(w io.Writer) error {
	table, _ := app.controller.Bindings()
	return panel.WriteText(w, app.controller.Model(), table)
}

// Close releases all resources in reverse initialization order.
// It is safe to call Close multiple times.
func (app *Application) Close() {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return
	}
	app.closed = true
	app.mu.Unlock()

	// 1. Stop the watcher so nothing reloads during teardown
	if app.watcher != nil {
		_ = app.watcher.Close()
	}

	// 2. Drop the store bridges
	if app.modelSub != nil {
		app.modelSub.Unsubscribe()
	}
	if app.cfgSub != nil {
		app.cfgSub.Unsubscribe()
	}

	// 3. Detach the controller
	if app.controller != nil {
		app.controller.Detach()
	}

	// 4. Close the stores
	if app.bindings != nil {
		app.bindings.Close()
	}
	if app.config != nil {
		app.config.Close()
	}

	if app.logger != nil {
		snap := app.metrics.Snapshot()
		app.logger.Debug("keypanel closed",
			"config_reloads", snap.ConfigReloads,
			"profile_reloads", snap.ProfileReloads,
			"watch_events", snap.WatchEvents,
			"model_updates", snap.ModelUpdates)
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

// IsRunning returns true if the panel loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the application metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Config returns the settings store.
func (app *Application) Config() *config.Store {
	return app.config
}

// Bindings returns the key-binding store.
func (app *Application) Bindings() *keybinding.Store {
	return app.bindings
}

// Catalog returns the command catalog.
func (app *Application) Catalog() *command.Catalog {
	return app.catalog
}

// Controller returns the settings controller.
func (app *Application) Controller() *settings.Controller {
	return app.controller
}
