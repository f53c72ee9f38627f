package thicket

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Event is one input event delivered through Widget.ProcessEvent. Key events
// carry Key; text events carry Rune; pointer events carry X, Y and Button in
// screen coordinates.
type Event struct {
	Type      EventType
	Key       ebiten.Key
	Rune      rune
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Repeat marks a key-down synthesized by a menu's key repeat.
	Repeat bool
}

// KeyDown returns a key-down event for k.
func KeyDown(k ebiten.Key) *Event { return &Event{Type: EventKeyDown, Key: k} }

// KeyUp returns a key-up event for k.
func KeyUp(k ebiten.Key) *Event { return &Event{Type: EventKeyUp, Key: k} }

// TextInput returns a text event for r.
func TextInput(r rune) *Event { return &Event{Type: EventText, Rune: r} }

// PointerDown returns a left-button press at (x, y).
func PointerDown(x, y float64) *Event {
	return &Event{Type: EventPointerDown, X: x, Y: y, Button: MouseButtonLeft}
}

// PointerUp returns a left-button release at (x, y).
func PointerUp(x, y float64) *Event {
	return &Event{Type: EventPointerUp, X: x, Y: y, Button: MouseButtonLeft}
}

// --- Polling ---

// inputPoller turns Ebitengine's per-frame input state into Events.
type inputPoller struct {
	keys      []ebiten.Key
	chars     []rune
	lastX     int
	lastY     int
	hasCursor bool
}

var pollButtons = [...]MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// poll appends this frame's events to dst: key releases, key presses, typed
// characters, then pointer move, press and release.
func (p *inputPoller) poll(dst []Event) []Event {
	mods := readModifiers()

	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		dst = append(dst, Event{Type: EventKeyUp, Key: k, Modifiers: mods})
	}
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		dst = append(dst, Event{Type: EventKeyDown, Key: k, Modifiers: mods})
	}
	p.chars = ebiten.AppendInputChars(p.chars[:0])
	for _, r := range p.chars {
		dst = append(dst, Event{Type: EventText, Rune: r, Modifiers: mods})
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if p.hasCursor && (mx != p.lastX || my != p.lastY) {
		dst = append(dst, Event{Type: EventPointerMove, X: x, Y: y, Modifiers: mods})
	}
	p.lastX, p.lastY, p.hasCursor = mx, my, true

	for _, b := range pollButtons {
		if inpututil.IsMouseButtonJustPressed(b.ebitenButton()) {
			dst = append(dst, Event{Type: EventPointerDown, X: x, Y: y, Button: b, Modifiers: mods})
		}
		if inpututil.IsMouseButtonJustReleased(b.ebitenButton()) {
			dst = append(dst, Event{Type: EventPointerUp, X: x, Y: y, Button: b, Modifiers: mods})
		}
	}
	return dst
}
