package thicket

import (
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/text/cases"
)

// handleInput routes one event through the menu's keyboard, text and
// pointer handling. Returns nil when the menu used the event.
func (m *Menu) handleInput(ev *Event) *Event {
	switch ev.Type {
	case EventKeyDown:
		return m.handleKeyDown(ev)
	case EventKeyUp:
		if m.stopKeyRepeat() {
			return nil
		}
	case EventText:
		if m.KeyAware && m.Len() > 0 && !m.allDisabled() && unicode.IsPrint(ev.Rune) {
			m.handleTextInput(ev.Rune)
			return nil
		}
	case EventPointerDown:
		if m.TouchAware && m.handlePointer(ev.X, ev.Y) {
			return nil
		}
	}
	return ev
}

func (m *Menu) handleKeyDown(ev *Event) *Event {
	if !m.InFocus {
		m.InFocus = true
		m.MarkDirty()
	}
	if m.Len() == 0 || m.allDisabled() {
		return ev
	}

	switch ev.Key {
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		m.Activate()
		return nil
	case ebiten.KeyBackspace:
		if m.KeyAware && m.input != "" {
			m.Backspace()
			return nil
		}
		return ev
	}

	dir := directionForKey(ev.Key)
	if dir == DirNone {
		return ev
	}
	index := m.DetermineCursorMovement(m.selected, dir)
	if index != m.selected {
		m.ChangeSelection(index, true)
		if !ev.Repeat {
			m.startKeyRepeat(ev.Key)
		}
	}
	return nil
}

// handlePointer selects and activates the first enabled item under (x, y).
func (m *Menu) handlePointer(x, y float64) bool {
	if !m.grid.Bounds().Contains(x, y) {
		return false
	}
	for i, c := range m.grid.copyChildren() {
		if !selectable(c) || !c.Visible {
			continue
		}
		if c.ScreenRect().Contains(x, y) {
			m.ChangeSelection(i, true)
			m.Activate()
			return true
		}
	}
	return false
}

// --- Search ---

// Input returns the search buffer.
func (m *Menu) Input() string { return m.input }

// ClearInput empties the search buffer.
func (m *Menu) ClearInput() { m.input = "" }

// Backspace drops the last rune of the search buffer.
func (m *Menu) Backspace() {
	r := []rune(m.input)
	if len(r) > 0 {
		m.input = string(r[:len(r)-1])
	}
}

// handleTextInput appends r to the search buffer and selects the first
// matching item. A match restarts the timer that clears the buffer after
// InputTimeout; no match clears it at once.
func (m *Menu) handleTextInput(r rune) {
	m.input += string(r)
	if m.inputClear != nil {
		m.inputClear.Abort()
		m.inputClear = nil
	}

	index := m.FindSelection(m.input)
	if index < 0 {
		m.ClearInput()
		return
	}
	m.inputClear = m.Task(func() {
		m.ClearInput()
		m.inputClear = nil
	}, m.InputTimeout, 1)
	m.ChangeSelection(index, true)
}

// FindSelection returns the index of the first item whose label contains
// query, ignoring case, or -1.
func (m *Menu) FindSelection(query string) int {
	fold := cases.Fold()
	q := fold.String(query)
	for i, item := range m.Items() {
		if strings.Contains(fold.String(item.Label), q) {
			return i
		}
	}
	return -1
}

// --- Key repeat ---

// KeyRepeating reports whether a held key is being repeated or is waiting
// to start repeating.
func (m *Menu) KeyRepeating() bool { return m.repeatTask != nil }

// startKeyRepeat waits KeyRepeatDelay, then repeats k every
// KeyRepeatInterval until a key is released. Only one key repeats at a
// time.
func (m *Menu) startKeyRepeat(k ebiten.Key) {
	if m.repeatTask != nil {
		return
	}
	m.repeatKey = k
	m.repeatTask = m.Task(m.startKeyInterval, m.KeyRepeatDelay, 1)
}

func (m *Menu) startKeyInterval() {
	m.repeatTask = m.Task(m.handleKeyRepeat, m.KeyRepeatInterval, RepeatForever)
}

// handleKeyRepeat feeds one synthetic key press back through the menu.
func (m *Menu) handleKeyRepeat() {
	m.ProcessEvent(&Event{Type: EventKeyDown, Key: m.repeatKey, Repeat: true})
	m.CheckBounds()
}

// stopKeyRepeat cancels any pending or running repeat.
func (m *Menu) stopKeyRepeat() bool {
	if m.repeatTask == nil {
		return false
	}
	m.repeatTask.Abort()
	m.repeatTask = nil
	return true
}
