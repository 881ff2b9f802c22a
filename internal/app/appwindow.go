package app

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/settings"
)

// Actions of the application window.
const (
	ActionRefreshUIForSheet = "refresh-ui-for-sheet"
	ActionClearSheet        = "clear-sheet"
)

// Action is a named window command.
type Action func() error

// WindowState is the size of the window as last seen by the user.
type WindowState struct {
	Width     int
	Height    int
	Maximized bool
}

// AppWindow is the root of the UI model.
type AppWindow struct {
	properties
	penSounds *Prop[bool]

	settings         *settings.Settings
	styleManager     *StyleManager
	workspaceBrowser *WorkspaceBrowser
	canvas           *Canvas
	penssidebar      *PensSidebar
	sounds           *PenSounds
	window           WindowState
	actions          map[string]Action
	unbind           []func()
	logger           *log.Logger
}

// Option configures an AppWindow.
type Option func(*AppWindow)

// WithLogger sets the logger of the window and its canvas.
func WithLogger(l *log.Logger) Option {
	return func(w *AppWindow) { w.logger = l }
}

// WithPenSounds replaces the pen sound player.
func WithPenSounds(p *PenSounds) Option {
	return func(w *AppWindow) { w.sounds = p }
}

// NewAppWindow builds the UI model over s. Call SetupSettings to bind it.
func NewAppWindow(s *settings.Settings, opts ...Option) *AppWindow {
	w := &AppWindow{
		penSounds:        NewProp("pen-sounds", false),
		settings:         s,
		styleManager:     NewStyleManager(),
		workspaceBrowser: NewWorkspaceBrowser(),
		penssidebar:      NewPensSidebar(),
		actions:          make(map[string]Action),
		logger:           log.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.sounds == nil {
		w.sounds = NewPenSounds()
	}
	w.canvas = NewCanvas(w.logger)
	w.properties = newProperties(w.penSounds)
	w.penSounds.OnChange(func(enabled bool) {
		if err := w.sounds.SetEnabled(enabled); err != nil {
			w.logger.Warn("pen sounds unavailable", "err", err)
		}
	})

	w.AddAction(ActionRefreshUIForSheet, w.refreshUIForSheet)
	w.AddAction(ActionClearSheet, func() error {
		w.canvas.Sheet().Clear()
		return nil
	})
	return w
}

func (w *AppWindow) Settings() *settings.Settings        { return w.settings }
func (w *AppWindow) StyleManager() *StyleManager         { return w.styleManager }
func (w *AppWindow) WorkspaceBrowser() *WorkspaceBrowser { return w.workspaceBrowser }
func (w *AppWindow) Canvas() *Canvas                     { return w.canvas }
func (w *AppWindow) PensSidebar() *PensSidebar           { return w.penssidebar }
func (w *AppWindow) PenSounds() *PenSounds               { return w.sounds }

func (w *AppWindow) PenSoundsEnabled() bool { return w.penSounds.Get() }

func (w *AppWindow) SetPenSoundsEnabled(v bool) error { return w.penSounds.Set(v) }

// WindowState returns the current window size.
func (w *AppWindow) WindowState() WindowState { return w.window }

// Resize records a new window size.
func (w *AppWindow) Resize(width, height int, maximized bool) {
	w.window = WindowState{Width: width, Height: height, Maximized: maximized}
}

// AddAction registers fn under name, replacing an existing action.
func (w *AppWindow) AddAction(name string, fn Action) {
	w.actions[name] = fn
}

// Actions returns the registered action names, sorted.
func (w *AppWindow) Actions() []string {
	names := make([]string, 0, len(w.actions))
	for n := range w.actions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ActivateAction runs the named action.
func (w *AppWindow) ActivateAction(name string) error {
	fn, ok := w.actions[name]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "unknown action %q", name)
	}
	w.logger.Debug("activate action", "name", name)
	return fn()
}

func (w *AppWindow) refreshUIForSheet() error {
	c := w.canvas
	if err := c.endlessSheet.Set(c.Sheet().Endless); err != nil {
		return err
	}
	c.RegenerateRenderNodes()
	return nil
}

// Close removes all settings bindings and silences sounds.
func (w *AppWindow) Close() {
	for _, fn := range w.unbind {
		fn()
	}
	w.unbind = nil
	w.sounds.Close()
}
