package thicket

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, menu activations are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event SelectionEvent)
}

// SelectionEvent carries a menu activation for the ECS bridge.
type SelectionEvent struct {
	MenuID  uint32
	Menu    string
	Index   int
	Label   string
	Payload any
}

// menuHolder is implemented by Menu and by types embedding it.
type menuHolder interface {
	menu() *Menu
}

// Scene owns the widget tree, its shared resources (config, assets, border
// cache) and the per-frame input queue. Each frame it dispatches input
// events, advances time, then draws.
type Scene struct {
	root    *Widget
	store   EntityStore
	debug   bool
	config  Config
	assets  *Assets
	borders *BorderCache

	// ClearColor fills the screen before drawing when non-zero.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	events      []Event
	poller      inputPoller
	injectQueue []Event

	testRunner      *TestRunner
	screenshotQueue []string

	updateFunc func() error
	frame      uint64
}

// NewScene creates a scene with default config, placeholder assets and a
// root container covering the screen.
func NewScene() *Scene {
	assets := NewAssets(nil, nil)
	s := &Scene{
		root:          NewContainer("root"),
		assets:        assets,
		borders:       NewBorderCache(assets),
		ScreenshotDir: "screenshots",
	}
	s.SetConfig(DefaultConfig())
	return s
}

// Root returns the scene's root container.
func (s *Scene) Root() *Widget { return s.root }

// Config returns the active configuration.
func (s *Scene) Config() Config { return s.config }

// SetConfig replaces the configuration and resizes the root to the screen.
func (s *Scene) SetConfig(cfg Config) {
	s.config = cfg
	s.root.SetBounds(Rect{Width: float64(cfg.Screen.Width), Height: float64(cfg.Screen.Height)})
	s.SetDebugMode(cfg.Debug)
}

// Assets returns the asset loader.
func (s *Scene) Assets() *Assets { return s.assets }

// SetAssets replaces the asset loader and empties the border cache.
func (s *Scene) SetAssets(a *Assets) {
	s.assets = a
	s.borders = NewBorderCache(a)
}

// Borders returns the scene's border cache.
func (s *Scene) Borders() *BorderCache { return s.borders }

// Frame returns the number of completed updates.
func (s *Scene) Frame() uint64 { return s.frame }

// SetUpdateFunc registers a callback run at the end of every Update. An
// error from it stops Run.
func (s *Scene) SetUpdateFunc(fn func() error) { s.updateFunc = fn }

// --- Building ---

// Add attaches w to the root and hands the entity store to any menus in it.
func (s *Scene) Add(w *Widget) {
	s.root.AddChild(w)
	s.attachStore(w)
}

// NewMenu creates a menu configured from the scene.
func (s *Scene) NewMenu(name string, columns int) *Menu {
	m := NewMenu(name, columns)
	m.Configure(s.config, s.assets)
	return m
}

// NewWindow creates a window configured and framed from the scene.
func (s *Scene) NewWindow(name string, columns int) *Window {
	win := NewWindow(name, columns)
	win.Configure(s.config, s.assets, s.borders)
	return win
}

// NewTextArea creates a text area using the configured font size, color
// and reveal speed.
func (s *Scene) NewTextArea(name string) *TextArea {
	ta := NewTextArea(name, DefaultFont(s.config.Text.FontSize), colorOr(s.config.Text.Color, Color{0, 0, 0, 1}))
	ta.CharacterDelay = s.config.Text.CharacterDelay
	return ta
}

// OpenWindow attaches win to the root and opens it.
func (s *Scene) OpenWindow(win *Window) {
	if win.parent == nil {
		s.Add(win.Widget)
	}
	win.Open()
}

// SetEntityStore sets the optional ECS bridge on the scene and on every menu
// already in the tree.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
	s.attachStore(s.root)
}

func (s *Scene) attachStore(w *Widget) {
	if s.store == nil {
		return
	}
	w.Walk(func(n *Widget) bool {
		if h, ok := n.behavior.(menuHolder); ok {
			h.menu().Store = s.store
		}
		return true
	})
}

// --- Frame ---

// Update dispatches this frame's input and advances every widget by one
// tick.
func (s *Scene) Update() {
	s.update(1.0/float64(ebiten.TPS()), true)
}

// update runs one frame. Injected events take the frame's input slot; real
// devices are polled only when poll is set and nothing was injected.
func (s *Scene) update(dt float64, poll bool) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	s.events = s.events[:0]
	if ev, ok := s.popInjected(); ok {
		s.events = append(s.events, ev)
	} else if poll {
		s.events = s.poller.poll(s.events)
	}
	for i := range s.events {
		s.Dispatch(&s.events[i])
	}

	s.root.Update(dt)
	s.frame++

	if s.debug {
		stats.updateTime = time.Since(t0)
		stats.eventCount = len(s.events)
		s.debugLog(stats)
	}
}

// Dispatch offers ev to the tree and returns it if nothing consumed it.
func (s *Scene) Dispatch(ev *Event) *Event {
	return s.root.ProcessEvent(ev)
}

// Draw clears the screen, draws the tree and writes queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	if !s.ClearColor.IsZero() {
		screen.Fill(s.ClearColor.RGBA())
	}
	s.root.Draw(screen)
	s.flushScreenshots(screen)

	if s.debug {
		s.debugLog(debugStats{drawTime: time.Since(t0), widgetCount: countWidgets(s.root)})
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-widget
// access panics, tree depth and child count warnings are printed, and
// per-frame timing stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that widget
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
