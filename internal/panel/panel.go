// Package panel renders the key-binding table and profile selector as
// a full-screen terminal view.
//
// The panel owns the terminal event loop. Model changes from the
// controller arrive on other goroutines and are posted into the loop
// as refresh events, so all drawing and state updates happen on one
// goroutine.
package panel

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/mdlane/keypanel/internal/settings"
)

const scrollPage = 10

// Logger is the interface for panel logging.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

// eventRefresh asks the event loop to redraw.
type eventRefresh struct{ tcell.EventTime }

// eventQuit asks the event loop to exit.
type eventQuit struct{ tcell.EventTime }

// Option configures a Panel.
type Option func(*Panel)

// WithTheme sets the panel's theme.
func WithTheme(theme Theme) Option {
	return func(p *Panel) {
		p.theme = theme
	}
}

// WithLogger sets the panel's logger.
func WithLogger(logger Logger) Option {
	return func(p *Panel) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithReload sets the handler for the manual reload key.
func WithReload(fn func() error) Option {
	return func(p *Panel) {
		p.reload = fn
	}
}

// Panel is the interactive key-binding view.
type Panel struct {
	controller *settings.Controller
	theme      Theme
	logger     Logger
	reload     func() error

	// mu guards screen, which Stop and refresh posts read from other
	// goroutines. All other state belongs to the event loop goroutine.
	mu     sync.Mutex
	screen tcell.Screen

	cursor    int
	scroll    int
	status    string
	statusErr bool
}

// New creates a panel for a controller.
func New(controller *settings.Controller, opts ...Option) *Panel {
	p := &Panel{
		controller: controller,
		theme:      NewTheme(DefaultAccent),
		logger:     nopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run initializes the terminal and drives the event loop until the
// user quits or Stop is called.
func (p *Panel) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	p.mu.Lock()
	p.screen = screen
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.screen = nil
		p.mu.Unlock()
		screen.Fini()
	}()

	sub := p.controller.OnModelChanged(func(settings.Model) {
		p.postRefresh()
	})
	defer sub.Unsubscribe()

	p.logger.Debug("panel started")

	for {
		p.draw(screen)

		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if p.handleKey(e) {
				return nil
			}
		case *eventQuit:
			return nil
		case *eventRefresh:
			// Redraw happens at the top of the loop.
		}
	}
}

// Stop asks a running panel to exit. Safe to call from any goroutine,
// and a no-op when the panel is not running.
func (p *Panel) Stop() {
	p.mu.Lock()
	screen := p.screen
	p.mu.Unlock()
	if screen == nil {
		return
	}

	ev := &eventQuit{}
	ev.SetEventNow()
	_ = screen.PostEvent(ev) // best-effort; event queue may be full
}

// postRefresh schedules a redraw on the event loop.
func (p *Panel) postRefresh() {
	p.mu.Lock()
	screen := p.screen
	p.mu.Unlock()
	if screen == nil {
		return
	}

	ev := &eventRefresh{}
	ev.SetEventNow()
	_ = screen.PostEvent(ev) // best-effort; event queue may be full
}

// handleKey processes one key event and reports whether to quit.
func (p *Panel) handleKey(ev *tcell.EventKey) bool {
	p.status = ""
	p.statusErr = false

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		p.cursor--
	case tcell.KeyDown:
		p.cursor++
	case tcell.KeyEnter:
		p.applySelection()
	case tcell.KeyPgUp:
		p.scroll -= scrollPage
	case tcell.KeyPgDn:
		p.scroll += scrollPage
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			p.cursor--
		case 'j':
			p.cursor++
		case 'r':
			p.reloadStores()
		}
	}
	return false
}

// applySelection submits the profile under the cursor.
func (p *Panel) applySelection() {
	model := p.controller.Model()
	if p.cursor < 0 || p.cursor >= len(model.AvailableProfiles) {
		return
	}
	ref := model.AvailableProfiles[p.cursor]

	if err := p.controller.SelectProfile(ref.Filename); err != nil {
		p.status = fmt.Sprintf("select failed: %v", err)
		p.statusErr = true
		p.logger.Warn("profile selection failed", "profile", ref.Filename, "error", err)
		return
	}
	p.status = fmt.Sprintf("profile: %s", ref.DisplayName)
}

// reloadStores runs the reload handler, if any.
func (p *Panel) reloadStores() {
	if p.reload == nil {
		return
	}
	if err := p.reload(); err != nil {
		p.status = fmt.Sprintf("reload failed: %v", err)
		p.statusErr = true
		p.logger.Warn("manual reload failed", "error", err)
		return
	}
	p.status = "reloaded"
}

// draw repaints the whole screen from current controller state.
func (p *Panel) draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()

	model := p.controller.Model()
	table, _ := p.controller.Bindings()

	if max := len(model.AvailableProfiles) - 1; p.cursor > max {
		p.cursor = max
	}
	if p.cursor < 0 {
		p.cursor = 0
	}

	p.drawTitle(screen, width, model)

	lines := buildLines(model, table, p.theme, p.cursor)
	area := height - 2
	if area < 0 {
		area = 0
	}
	if max := len(lines) - area; p.scroll > max {
		p.scroll = max
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
	for i := 0; i < area && p.scroll+i < len(lines); i++ {
		p.drawLine(screen, 0, 1+i, width, lines[p.scroll+i])
	}

	p.drawStatus(screen, width, height-1)
	screen.Show()
}

// drawTitle paints the title bar with a gradient across its text.
func (p *Panel) drawTitle(screen tcell.Screen, width int, model settings.Model) {
	title := " keypanel"
	for _, ref := range model.AvailableProfiles {
		if ref.Filename == model.SelectedProfile {
			title += " · " + ref.DisplayName
			break
		}
	}

	colors := p.theme.TitleColors(runewidth.StringWidth(title))
	x := 0
	gr := uniseg.NewGraphemes(title)
	for gr.Next() && x < width {
		runes := gr.Runes()
		style := tcell.StyleDefault.Bold(true)
		if x < len(colors) {
			style = style.Foreground(colors[x])
		}
		screen.SetContent(x, 0, runes[0], runes[1:], style)
		x += runewidth.StringWidth(gr.Str())
	}
}

// drawLine blits spans left to right, clipping at maxX.
func (p *Panel) drawLine(screen tcell.Screen, x, y, maxX int, ln line) {
	for _, s := range ln.spans {
		gr := uniseg.NewGraphemes(s.text)
		for gr.Next() {
			if x >= maxX {
				return
			}
			runes := gr.Runes()
			screen.SetContent(x, y, runes[0], runes[1:], s.style)
			x += runewidth.StringWidth(gr.Str())
		}
	}
}

// drawStatus paints the bottom help or status line.
func (p *Panel) drawStatus(screen tcell.Screen, width, y int) {
	if y < 1 {
		return
	}

	text := p.status
	style := p.theme.Status
	if p.statusErr {
		style = p.theme.StatusError
	}
	if text == "" {
		text = "up/down select · enter apply · r reload · q quit"
	}

	p.drawLine(screen, 0, y, width, line{spans: []span{{" " + text, style}}})
}
