package thicket

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// WindowState is the open/close lifecycle of a Window.
type WindowState uint8

const (
	WindowClosed WindowState = iota
	WindowOpening
	WindowNormal
	WindowClosing
)

func (s WindowState) String() string {
	switch s {
	case WindowClosed:
		return "closed"
	case WindowOpening:
		return "opening"
	case WindowNormal:
		return "normal"
	case WindowClosing:
		return "closing"
	}
	return "unknown"
}

// Window is a decorated Menu with an open/close lifecycle. Its first child is
// a GraphicBox that draws the frame behind the items. While opening or
// closing it swallows input.
type Window struct {
	*Menu

	Box *GraphicBox

	// EscapeExits closes the window on Escape.
	EscapeExits bool

	// AnimateOpen, if set, schedules and returns the opening animation. The
	// window becomes normal when it completes; nil opens at once.
	AnimateOpen func() *Animation
	// AnimateClose is the closing counterpart of AnimateOpen.
	AnimateClose func() *Animation
	// OnOpen runs once the window is fully open.
	OnOpen func()
	// OnClose runs after the window closed and left its parent.
	OnClose func()

	state    WindowState
	openAnim *Animation
}

// NewWindow creates a closed, hidden window with a plain light frame.
func NewWindow(name string, columns int) *Window {
	win := &Window{EscapeExits: true}
	win.Menu = &Menu{}
	win.Menu.init(name, columns, win)

	cfg := DefaultConfig().Window
	win.Box = NewGraphicBox(name+".frame", nil, nil, colorOr(cfg.BackgroundColor, ColorWhite))
	win.AddChildAt(win.Box.Widget, 0)
	win.SetPadding(cfg.Padding)
	win.Visible = false
	return win
}

// Configure applies menu settings and builds the frame from cfg.
func (win *Window) Configure(cfg Config, assets *Assets, borders *BorderCache) {
	win.Menu.Configure(cfg, assets)
	win.SetPadding(cfg.Window.Padding)
	win.Box.Color = colorOr(cfg.Window.BackgroundColor, win.Box.Color)
	if borders != nil {
		win.Box.Border = borders.Border(cfg.Window.Border)
	}
	if assets != nil {
		win.Box.Background = assets.ImageOrNil(cfg.Window.Background)
	}
}

// State returns the lifecycle state.
func (win *Window) State() WindowState { return win.state }

// Open shows a closed window: it lays out, runs AnimateOpen, and calls
// OnOpen once the window is normal.
func (win *Window) Open() {
	if win.state != WindowClosed {
		return
	}
	win.state = WindowOpening
	win.Visible = true
	win.MarkDirty()
	win.CheckRefresh()

	var ani *Animation
	if win.AnimateOpen != nil {
		ani = win.AnimateOpen()
	}
	if ani == nil {
		win.opened()
		return
	}
	win.openAnim = ani
	chain(ani, win.opened)
}

func (win *Window) opened() {
	win.openAnim = nil
	win.state = WindowNormal
	if win.OnOpen != nil {
		win.OnOpen()
	}
}

// Close hides an open or opening window: it runs AnimateClose, then removes
// the window from its parent and calls OnClose.
func (win *Window) Close() {
	if win.state != WindowNormal && win.state != WindowOpening {
		return
	}
	if win.openAnim != nil {
		win.openAnim.Abort()
		win.openAnim = nil
	}
	win.state = WindowClosing
	win.stopKeyRepeat()

	var ani *Animation
	if win.AnimateClose != nil {
		ani = win.AnimateClose()
	}
	if ani == nil {
		win.closed()
		return
	}
	chain(ani, win.closed)
}

func (win *Window) closed() {
	win.state = WindowClosed
	win.Visible = false
	win.RemoveFromParent()
	if win.OnClose != nil {
		win.OnClose()
	}
}

// chain appends fn to ani's completion callback.
func chain(ani *Animation, fn func()) {
	prev := ani.OnComplete
	ani.OnComplete = func() {
		if prev != nil {
			prev()
		}
		fn()
	}
}

// --- Behavior ---

func (win *Window) RefreshLayout(w *Widget) {
	win.Menu.RefreshLayout(w)
}

func (win *Window) DrawContent(*Widget, *ebiten.Image) {}

// HandleEvent closes on Escape and otherwise defers to the menu once the
// window is fully open.
func (win *Window) HandleEvent(_ *Widget, ev *Event) *Event {
	if win.state == WindowClosed {
		return ev
	}
	if ev.Type == EventKeyDown && ev.Key == ebiten.KeyEscape && win.EscapeExits {
		win.Close()
		return nil
	}
	if win.state != WindowNormal {
		if ev.Type == EventPointerMove {
			return ev
		}
		return nil
	}
	return win.Menu.HandleEvent(win.Widget, ev)
}

// --- PopUp ---

// popUpStartScale is the fraction of the final size a pop-up opens from.
const popUpStartScale = 0.1

// NewPopUp creates a width×height window that opens centered in its parent
// by growing from a tenth of its size around its center.
func NewPopUp(name string, columns int, width, height float64) *Window {
	win := NewWindow(name, columns)
	duration := DefaultConfig().Window.OpenDuration
	win.AnimateOpen = func() *Animation {
		return popUp(win, width, height, duration)
	}
	return win
}

func popUp(win *Window, width, height, duration float64) *Animation {
	var area Rect
	if p := win.parent; p != nil {
		area = p.CalcInternalRect()
	}
	final := Rect{Width: width, Height: height}
	center := area.Center()
	final.SetAttr(AttrCenterX, center.X)
	final.SetAttr(AttrCenterY, center.Y)

	start := final.Inflate(-final.Width*(1-popUpStartScale), -final.Height*(1-popUpStartScale))
	win.SetBounds(start)

	ani := NewAnimation(duration).
		To(win.BoundsProp(AttrWidth), final.Width).
		To(win.BoundsProp(AttrHeight), final.Height)
	ani.OnUpdate = func() {
		r := win.Bounds()
		r.SetAttr(AttrCenterX, center.X)
		r.SetAttr(AttrCenterY, center.Y)
		win.SetBounds(r)
	}
	return win.Animate(ani)
}
