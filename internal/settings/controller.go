// Package settings keeps key-binding presentation state in sync with
// the stores that own it.
//
// The controller mirrors the config store's profile selection into a
// presentation model, tracks key-binding changes as a monotonic
// revision counter, and renders binding tables on demand. It never
// owns settings data: selection changes are submitted back to the
// config store and flow to the model through the store's own change
// notification, so every consumer converges on the same values no
// matter who initiated the change. Echoed notifications die out by
// value comparison, not by tagging events with their origin.
package settings

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/mdlane/keypanel/internal/config"
	"github.com/mdlane/keypanel/internal/keybinding"
	"github.com/mdlane/keypanel/internal/notify"
)

// ConfigBroker is the config store surface the controller needs.
type ConfigBroker interface {
	// Snapshot returns a caller-owned copy of the current config.
	Snapshot() config.Snapshot

	// Submit applies a full snapshot. Submitting a snapshot equal to
	// the current one is a no-op.
	Submit(s config.Snapshot) error

	// Subscribe registers a config change listener.
	Subscribe(fn func(config.Event)) *notify.Subscription[config.Event]
}

// BindingsBroker is the key-binding store surface the controller needs.
type BindingsBroker interface {
	// Contexts returns a caller-owned copy of the active bindings.
	Contexts() keybinding.Contexts

	// Subscribe registers a key-binding change listener.
	Subscribe(fn func(keybinding.Event)) *notify.Subscription[keybinding.Event]
}

// LabelResolver resolves command and context codes to display labels.
// Resolution is total: implementations return the code itself when no
// label is known.
type LabelResolver interface {
	ResolveCommand(code string) string
	ResolveContext(id string) string
}

// Logger is the interface for controller logging.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// nopLogger discards all log output.
type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(logger Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPlatform overrides the platform used for shortcut formatting.
// The default is runtime.GOOS.
func WithPlatform(platform string) Option {
	return func(c *Controller) {
		c.platform = platform
	}
}

// Controller synchronizes the presentation model with the config and
// key-binding brokers.
//
// Broker callbacks, selection changes, and reads may come from
// different goroutines; all state is guarded by one mutex. The mutex
// is never held across a broker call that can notify back into the
// controller.
type Controller struct {
	mu sync.Mutex

	resolver LabelResolver
	platform string
	logger   Logger

	// Attached brokers, nil while detached
	cfg ConfigBroker
	kb  BindingsBroker

	cfgSub *notify.Subscription[config.Event]
	kbSub  *notify.Subscription[keybinding.Event]

	model Model

	// Rendered table memo, valid while cachedRev matches the model's
	// bindings revision
	cached    *RenderedTable
	cachedRev uint64

	notifier *notify.Notifier[Model]
}

// New creates a detached controller. A nil resolver resolves every
// code to itself.
func New(resolver LabelResolver, opts ...Option) *Controller {
	if resolver == nil {
		resolver = identityResolver{}
	}

	c := &Controller{
		resolver: resolver,
		platform: runtime.GOOS,
		logger:   nopLogger{},
		notifier: notify.New[Model](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach connects the controller to its brokers, seeds the model from
// the current config snapshot, and advances the bindings revision so
// cached tables render fresh. Attaching an attached controller returns
// ErrAlreadyAttached.
func (c *Controller) Attach(cfg ConfigBroker, kb BindingsBroker) error {
	c.mu.Lock()
	if c.cfg != nil {
		c.mu.Unlock()
		return ErrAlreadyAttached
	}

	c.cfg = cfg
	c.kb = kb

	snap := cfg.Snapshot()
	c.model.SelectedProfile = snap.KeyBindingsFilename
	c.model.AvailableProfiles = snap.AvailableProfiles
	c.model.BindingsRevision++

	c.cfgSub = cfg.Subscribe(c.onConfigChanged)
	c.kbSub = kb.Subscribe(c.onBindingsChanged)

	model := c.model.Clone()
	c.mu.Unlock()

	c.logger.Debug("settings controller attached",
		"selected", model.SelectedProfile,
		"profiles", len(model.AvailableProfiles))
	c.notifier.Notify(model)
	return nil
}

// Detach disconnects the controller from its brokers. The model keeps
// its last values until the next Attach re-seeds it. Detaching a
// detached controller is a no-op, and Attach works again afterwards.
func (c *Controller) Detach() {
	c.mu.Lock()
	if c.cfg == nil {
		c.mu.Unlock()
		return
	}

	cfgSub, kbSub := c.cfgSub, c.kbSub
	c.cfg = nil
	c.kb = nil
	c.cfgSub = nil
	c.kbSub = nil
	c.mu.Unlock()

	cfgSub.Unsubscribe()
	kbSub.Unsubscribe()
	c.logger.Debug("settings controller detached")
}

// Attached reports whether the controller is connected to brokers.
func (c *Controller) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg != nil
}

// Model returns a copy of the presentation model.
func (c *Controller) Model() Model {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.Clone()
}

// SelectProfile requests a profile selection change.
//
// The model is not written directly: the new selection is submitted to
// the config broker and the model follows from the resulting change
// notification. Selecting the already-selected profile submits
// nothing, which is what stops notification loops between peers that
// all submit on change. A filename outside the available set returns
// UnknownProfileError and leaves everything untouched.
func (c *Controller) SelectProfile(filename string) error {
	c.mu.Lock()
	if c.cfg == nil {
		c.mu.Unlock()
		return ErrNotAttached
	}
	if !c.model.HasProfile(filename) {
		c.mu.Unlock()
		return &UnknownProfileError{Filename: filename}
	}
	if filename == c.model.SelectedProfile {
		c.mu.Unlock()
		return nil
	}
	cfg := c.cfg
	c.mu.Unlock()

	// Submit outside the lock: the broker notifies synchronously and
	// the callback takes the lock again.
	next := cfg.Snapshot()
	if next.KeyBindingsFilename == filename {
		return nil
	}
	next.KeyBindingsFilename = filename

	if err := cfg.Submit(next); err != nil {
		return fmt.Errorf("select profile %q: %w", filename, err)
	}
	return nil
}

// Bindings returns the rendered binding table and the revision it was
// built from. Tables are rendered on demand and memoized per revision,
// so repeated reads between binding changes cost one render.
func (c *Controller) Bindings() (RenderedTable, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rev := c.model.BindingsRevision
	if c.cached != nil && c.cachedRev == rev {
		return copyTable(*c.cached), rev
	}

	var contexts keybinding.Contexts
	if c.kb != nil {
		contexts = c.kb.Contexts()
	}

	table := FormatTable(contexts, c.resolver, c.platform)
	c.cached = &table
	c.cachedRev = rev
	return copyTable(table), rev
}

// Refresh advances the bindings revision without a broker event, so
// the next Bindings call renders a fresh table. Callers use it when an
// input outside the brokers changes, such as a label override reload.
func (c *Controller) Refresh() {
	c.mu.Lock()
	c.model.BindingsRevision++
	model := c.model.Clone()
	c.mu.Unlock()

	c.notifier.Notify(model)
}

// OnModelChanged registers a listener for model updates. The listener
// receives a copy of the model after every effective change.
func (c *Controller) OnModelChanged(fn func(Model)) *notify.Subscription[Model] {
	return c.notifier.Subscribe(fn)
}

// onConfigChanged re-reads the config snapshot and folds it into the
// model. The event payload is ignored on purpose: pulling the current
// snapshot means a burst of events collapses to the final state, and
// the comparison below drops the echo of our own submissions.
func (c *Controller) onConfigChanged(config.Event) {
	changed, model := c.applyConfigSnapshot()
	if changed {
		c.notifier.Notify(model)
	}
}

// applyConfigSnapshot updates the model from the broker's current
// snapshot and reports whether mirrored values actually differed.
func (c *Controller) applyConfigSnapshot() (changed bool, model Model) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfg == nil {
		return false, Model{}
	}

	// Treat the change as real if the snapshot read fails below; a
	// panic must not escape into the broker's notification loop.
	changed = true
	model = c.model.Clone()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("config change handler failed", "panic", r)
		}
	}()

	snap := c.cfg.Snapshot()
	if snap.KeyBindingsFilename == c.model.SelectedProfile &&
		profileRefsEqual(snap.AvailableProfiles, c.model.AvailableProfiles) {
		return false, model
	}

	c.model.SelectedProfile = snap.KeyBindingsFilename
	c.model.AvailableProfiles = snap.AvailableProfiles
	model = c.model.Clone()
	return true, model
}

// onBindingsChanged advances the bindings revision. Every notification
// counts: the revision tracks delivery, and rendering only happens
// when someone asks for the table.
func (c *Controller) onBindingsChanged(keybinding.Event) {
	c.mu.Lock()
	if c.kb == nil {
		c.mu.Unlock()
		return
	}
	c.model.BindingsRevision++
	model := c.model.Clone()
	c.mu.Unlock()

	c.notifier.Notify(model)
}

// copyTable returns a table whose section list is caller-owned.
func copyTable(t RenderedTable) RenderedTable {
	out := RenderedTable{Sections: make([]Section, len(t.Sections))}
	copy(out.Sections, t.Sections)
	return out
}
