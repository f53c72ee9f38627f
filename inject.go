package thicket

import "github.com/hajimehoshi/ebiten/v2"

// Synthetic input. Injected events are delivered one per frame ahead of
// real device input, in the order they were queued, so a scripted run sees
// exactly what a player pressing the same keys would.

// InjectEvent queues an arbitrary event for a later frame.
func (s *Scene) InjectEvent(ev Event) {
	s.injectQueue = append(s.injectQueue, ev)
}

// InjectKeyDown queues a key press.
func (s *Scene) InjectKeyDown(k ebiten.Key) {
	s.InjectEvent(Event{Type: EventKeyDown, Key: k})
}

// InjectKeyUp queues a key release.
func (s *Scene) InjectKeyUp(k ebiten.Key) {
	s.InjectEvent(Event{Type: EventKeyUp, Key: k})
}

// InjectKey is a convenience that queues a press followed by a release.
// Consumes two frames.
func (s *Scene) InjectKey(k ebiten.Key) {
	s.InjectKeyDown(k)
	s.InjectKeyUp(k)
}

// InjectText queues one text event per rune of str.
func (s *Scene) InjectText(str string) {
	for _, r := range str {
		s.InjectEvent(Event{Type: EventText, Rune: r})
	}
}

// InjectPress queues a left-button press at the given screen coordinates.
func (s *Scene) InjectPress(x, y float64) {
	s.InjectEvent(Event{Type: EventPointerDown, X: x, Y: y, Button: MouseButtonLeft})
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.InjectEvent(Event{Type: EventPointerUp, X: x, Y: y, Button: MouseButtonLeft})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// popInjected removes and returns the oldest injected event.
func (s *Scene) popInjected() (Event, bool) {
	if len(s.injectQueue) == 0 {
		return Event{}, false
	}
	ev := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return ev, true
}
