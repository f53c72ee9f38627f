package thicket

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts c to a premultiplied color.RGBA for Ebitengine draw calls.
func (c Color) RGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: clamp(c.A),
	}
}

// IsZero reports whether c is the zero value (fully transparent black).
func (c Color) IsZero() bool {
	return c == Color{}
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// EventType identifies a kind of input event delivered through ProcessEvent.
type EventType uint8

const (
	EventKeyDown     EventType = iota // a key went down (or a synthesized repeat)
	EventKeyUp                        // a key was released
	EventText                         // a printable character was typed
	EventPointerDown                  // a pointer button was pressed
	EventPointerUp                    // a pointer button was released
	EventPointerMove                  // the pointer moved
)

func (t EventType) String() string {
	switch t {
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventText:
		return "text"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventPointerMove:
		return "pointermove"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// ebitenButton maps a MouseButton to the Ebitengine constant.
func (b MouseButton) ebitenButton() ebiten.MouseButton {
	switch b {
	case MouseButtonRight:
		return ebiten.MouseButtonRight
	case MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Direction is a cursor navigation direction.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// directionForKey maps the navigation keys to a Direction.
func directionForKey(k ebiten.Key) Direction {
	switch k {
	case ebiten.KeyArrowUp:
		return DirUp
	case ebiten.KeyArrowDown:
		return DirDown
	case ebiten.KeyArrowLeft:
		return DirLeft
	case ebiten.KeyArrowRight:
		return DirRight
	default:
		return DirNone
	}
}
