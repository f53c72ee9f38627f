package thicket

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrWordTooLong is returned by ConstrainWidth when a single word is wider
// than the available width.
var ErrWordTooLong = errors.New("thicket: word does not fit in width")

// --- Font ---

// Font wraps Ebitengine's text/v2 for TrueType font rendering.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("thicket: failed to parse TTF data: %w", err)
	}
	return newFont(source, size), nil
}

var defaultFontSource *text.GoTextFaceSource

// DefaultFont returns Go Regular at the given size.
func DefaultFont(size float64) *Font {
	if defaultFontSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic("thicket: embedded font: " + err.Error())
		}
		defaultFontSource = src
	}
	return newFont(defaultFontSource, size)
}

func newFont(source *text.GoTextFaceSource, size float64) *Font {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// Advance returns the horizontal advance of a single line of text.
func (f *Font) Advance(s string) float64 {
	return text.Advance(s, f.face)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// Face returns the underlying GoTextFace.
func (f *Font) Face() *text.GoTextFace { return f.face }

// drawText draws s with its top-left at (x, y).
func drawText(dst *ebiten.Image, s string, f *Font, x, y float64, c Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.LineSpacing = f.lh
	text.Draw(dst, s, f.face, op)
}

// --- Wrapping ---

// ConstrainWidth word-wraps s so no line is wider than width when drawn
// with f. Explicit newlines are kept. A word wider than width on its own
// yields ErrWordTooLong.
func ConstrainWidth(s string, f *Font, width float64) ([]string, error) {
	return wrapLines(s, width, f.Advance)
}

func wrapLines(s string, width float64, measure func(string) float64) ([]string, error) {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			if measure(word) > width {
				return nil, fmt.Errorf("%w: %q", ErrWordTooLong, word)
			}
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if measure(candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// --- TextSequence ---

// TextSequence reveals a block of lines one character at a time. Each call
// to Advance exposes one more rune; line breaks are free.
type TextSequence struct {
	lines []string
	line  int // index of the line being revealed
	pos   int // bytes of lines[line] revealed
}

// NewTextSequence creates a sequence with nothing revealed.
func NewTextSequence(lines []string) *TextSequence {
	s := &TextSequence{lines: lines}
	s.skipEmpty()
	return s
}

// HasNext reports whether any rune remains hidden.
func (s *TextSequence) HasNext() bool {
	return s.line < len(s.lines)
}

// Advance reveals the next rune. No-op when everything is revealed.
func (s *TextSequence) Advance() {
	if !s.HasNext() {
		return
	}
	_, size := utf8.DecodeRuneInString(s.lines[s.line][s.pos:])
	s.pos += size
	s.skipEmpty()
}

// skipEmpty moves past fully revealed lines.
func (s *TextSequence) skipEmpty() {
	for s.line < len(s.lines) && s.pos >= len(s.lines[s.line]) {
		s.line++
		s.pos = 0
	}
}

// Finish reveals everything.
func (s *TextSequence) Finish() {
	s.line = len(s.lines)
	s.pos = 0
}

// Reset hides everything again.
func (s *TextSequence) Reset() {
	s.line, s.pos = 0, 0
	s.skipEmpty()
}

// Visible returns the revealed text, one entry per started line.
func (s *TextSequence) Visible() []string {
	if !s.HasNext() {
		return s.lines
	}
	out := make([]string, 0, s.line+1)
	out = append(out, s.lines[:s.line]...)
	return append(out, s.lines[s.line][:s.pos])
}

// --- TextArea ---

// TextArea draws word-wrapped text. When Animated, text set with SetText
// appears one character every CharacterDelay seconds.
type TextArea struct {
	*Widget

	Font           *Font
	Color          Color
	Animated       bool
	CharacterDelay float64

	// OnFinished runs when the animated reveal completes.
	OnFinished func()

	text   string
	lines  []string
	seq    *TextSequence
	reveal *Task
}

// NewTextArea creates an animated text area.
func NewTextArea(name string, font *Font, c Color) *TextArea {
	ta := &TextArea{
		Font:           font,
		Color:          c,
		Animated:       true,
		CharacterDelay: DefaultConfig().Text.CharacterDelay,
		seq:            NewTextSequence(nil),
	}
	ta.Widget = NewWidget(name, ta)
	return ta
}

// Text returns the current text.
func (ta *TextArea) Text() string { return ta.text }

// Lines returns the wrapped lines.
func (ta *TextArea) Lines() []string { return ta.lines }

// Sequence returns the reveal sequence for the current text.
func (ta *TextArea) Sequence() *TextSequence { return ta.seq }

// Drawing reports whether an animated reveal is in progress.
func (ta *TextArea) Drawing() bool { return ta.reveal != nil }

// SetText wraps s to the area's width and starts revealing it. A word wider
// than the area is an error and leaves the previous text in place.
func (ta *TextArea) SetText(s string) error {
	width := ta.content.Width
	if width <= 0 {
		width = ta.Bounds().Inset(ta.padding).Width
	}
	lines, err := wrapLines(s, width, ta.Font.Advance)
	if err != nil {
		return err
	}
	ta.text = s
	ta.lines = lines
	ta.seq = NewTextSequence(lines)
	ta.stopReveal()

	if !ta.Animated || ta.CharacterDelay <= 0 {
		ta.seq.Finish()
		return nil
	}
	ta.reveal = ta.Task(ta.revealNext, ta.CharacterDelay, RepeatForever)
	return nil
}

// Skip reveals the rest of the text immediately.
func (ta *TextArea) Skip() {
	if ta.reveal == nil {
		return
	}
	ta.seq.Finish()
	ta.finishReveal()
}

func (ta *TextArea) revealNext() {
	ta.seq.Advance()
	if !ta.seq.HasNext() {
		ta.finishReveal()
	}
}

func (ta *TextArea) finishReveal() {
	ta.stopReveal()
	if ta.OnFinished != nil {
		ta.OnFinished()
	}
}

func (ta *TextArea) stopReveal() {
	if ta.reveal != nil {
		ta.reveal.Abort()
		ta.reveal = nil
	}
}

// RefreshLayout sizes the content to the wrapped text when no size is set.
func (ta *TextArea) RefreshLayout(w *Widget) {
	if w.content.Width > 0 || len(ta.lines) == 0 {
		return
	}
	var widest float64
	for _, l := range ta.lines {
		widest = max(widest, ta.Font.Advance(l))
	}
	w.content.Width = widest
	w.content.Height = float64(len(ta.lines)) * ta.Font.LineHeight()
}

// DrawContent draws the revealed lines.
func (ta *TextArea) DrawContent(w *Widget, dst *ebiten.Image) {
	if ta.Font == nil {
		return
	}
	r := w.ScreenRect()
	lh := ta.Font.LineHeight()
	for i, l := range ta.seq.Visible() {
		if l == "" {
			continue
		}
		drawText(dst, l, ta.Font, r.X, r.Y+float64(i)*lh, ta.Color)
	}
}

// HandleEvent lets Enter or a click skip an in-progress reveal.
func (ta *TextArea) HandleEvent(_ *Widget, ev *Event) *Event {
	if ta.reveal == nil {
		return ev
	}
	if (ev.Type == EventKeyDown && ev.Key == ebiten.KeyEnter) || ev.Type == EventPointerDown {
		ta.Skip()
		return nil
	}
	return ev
}
