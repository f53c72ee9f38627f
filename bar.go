package thicket

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Bar is a horizontal gauge such as an HP or XP bar. The filled portion is
// Value (clamped to [0, 1]) of the inner width.
type Bar struct {
	*Widget

	Value      float64
	Border     *Border
	Foreground Color
	Background Color
	// Outline, if non-zero, strokes the frame when there is no Border.
	Outline Color
}

// NewBar creates a bar with the given fill colors.
func NewBar(name string, value float64, fg, bg Color) *Bar {
	b := &Bar{Value: value, Foreground: fg, Background: bg}
	b.Widget = NewWidget(name, b)
	return b
}

// SetValue sets the fill fraction, clamped to [0, 1].
func (b *Bar) SetValue(v float64) {
	b.Value = min(max(v, 0), 1)
}

// ValueProp returns an animatable property for the fill fraction, so a bar
// can drain smoothly:
//
//	bar.Animate(thicket.NewAnimation(0.5).To(bar.ValueProp(), 0.25))
func (b *Bar) ValueProp() Property {
	return Property{
		Target: b,
		Name:   "value",
		Get:    func() float64 { return b.Value },
		Set:    b.SetValue,
	}
}

// FillRect returns the screen rect covered by the foreground.
func (b *Bar) FillRect() Rect {
	inner := b.Border.Inner(b.ScreenRect())
	inner.Width *= min(max(b.Value, 0), 1)
	return inner
}

func (b *Bar) RefreshLayout(*Widget) {}

// DrawContent fills the background, then the value, then the border.
func (b *Bar) DrawContent(w *Widget, dst *ebiten.Image) {
	frame := w.ScreenRect()
	inner := b.Border.Inner(frame)
	if !b.Background.IsZero() {
		fillRect(dst, inner, b.Background)
	}
	if !b.Foreground.IsZero() {
		fillRect(dst, b.FillRect(), b.Foreground)
	}
	switch {
	case b.Border != nil:
		b.Border.Draw(dst, frame)
	case !b.Outline.IsZero():
		vector.StrokeRect(dst, float32(frame.X), float32(frame.Y),
			float32(frame.Width), float32(frame.Height), 1, b.Outline.RGBA(), false)
	}
}

func (b *Bar) HandleEvent(_ *Widget, ev *Event) *Event { return ev }
