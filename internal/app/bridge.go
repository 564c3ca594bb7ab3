package app

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/mdlane/keypanel/internal/config"
	"github.com/mdlane/keypanel/internal/settings"
	"github.com/mdlane/keypanel/internal/watch"
)

// setupSubscriptions wires the stores together. The settings document
// is the source of truth for profile selection: whenever it changes,
// the named profile is activated in the key-binding store, no matter
// who wrote the document.
func (app *Application) setupSubscriptions() {
	app.cfgSub = app.config.Subscribe(app.onConfigEvent)
	app.modelSub = app.controller.OnModelChanged(app.onModelChanged)
}

// onConfigEvent activates the profile the settings document now names.
// The event payload is ignored; reading the current snapshot collapses
// bursts to the final state. Activating the already-active profile is
// a no-op inside the store, so echoes stop here.
func (app *Application) onConfigEvent(config.Event) {
	snap := app.config.Snapshot()
	if snap.KeyBindingsFilename == "" {
		return
	}
	if err := app.bindings.SetActive(snap.KeyBindingsFilename); err != nil {
		app.logger.Warn("profile activation failed",
			"profile", snap.KeyBindingsFilename, "error", err)
	}
}

// onModelChanged counts effective model updates.
func (app *Application) onModelChanged(settings.Model) {
	app.metrics.RecordModelUpdate()
}

// setupWatcher starts watching the directories holding the settings
// document, the label overrides, and the key-binding profiles.
// Directories rather than files: a directory watch survives the
// rename-replace dance editors do on save, and catches files that do
// not exist yet.
func (app *Application) setupWatcher() error {
	w, err := watch.New(watch.WithDebounce(time.Duration(app.opts.DebounceMS) * time.Millisecond))
	if err != nil {
		return err
	}

	w.OnChange(app.onFileEvent)
	w.OnError(func(err error) {
		app.logger.Warn("watcher error", "error", err)
	})

	app.settingsPath = absPath(app.opts.SettingsPath)
	app.labelsPath = absPath(app.opts.LabelsPath)
	app.profilesDir = absPath(app.opts.ProfilesDir)

	seen := make(map[string]bool)
	watched := 0
	for _, dir := range []string{
		filepath.Dir(app.settingsPath),
		app.profilesDir,
		filepath.Dir(app.labelsPath),
	} {
		if dir == "" || dir == "." || seen[dir] {
			continue
		}
		seen[dir] = true
		if err := w.Watch(dir); err != nil {
			app.logger.Debug("not watching", "dir", dir, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		_ = w.Close()
		return errors.New("no watchable directories")
	}

	app.watcher = w
	app.logger.Debug("watching for changes", "dirs", watched)
	return nil
}

// onFileEvent reloads whichever store owns the changed path. Events
// for other files in the watched directories fall through. Handlers
// run on the watcher goroutine; the stores are safe for that.
func (app *Application) onFileEvent(ev watch.Event) {
	app.metrics.RecordWatchEvent()

	switch {
	case ev.Path == app.settingsPath:
		app.reloadSettings(ev.Path)
	case ev.Path == app.labelsPath:
		app.reloadLabels()
	case filepath.Dir(ev.Path) == app.profilesDir && strings.HasSuffix(ev.Path, ".json"):
		app.reloadProfiles(ev.Path)
	}
}

func (app *Application) reloadSettings(path string) {
	changed, err := app.config.Reload()
	if err != nil {
		app.logger.Warn("settings reload failed", "path", path, "error", err)
		return
	}
	app.metrics.RecordConfigReload()
	if changed {
		app.logger.Info("settings reloaded", "path", path)
	}
}

func (app *Application) reloadLabels() {
	if err := app.catalog.LoadOverrides(app.opts.LabelsPath); err != nil {
		app.logger.Warn("label reload failed", "path", app.opts.LabelsPath, "error", err)
		return
	}
	app.metrics.RecordLabelReload()
	app.controller.Refresh()
	app.logger.Info("labels reloaded", "path", app.opts.LabelsPath)
}

func (app *Application) reloadProfiles(path string) {
	if err := app.bindings.Reload(); err != nil {
		app.logger.Warn("profile reload kept previous bindings", "path", path, "error", err)
	} else {
		app.metrics.RecordProfileReload()
		app.logger.Info("profiles reloaded", "path", path)
	}

	// The inventory may have changed even when the active profile
	// failed to parse.
	app.republishProfiles()
}

// absPath resolves a path for comparison against watcher event paths,
// which are always absolute.
func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
