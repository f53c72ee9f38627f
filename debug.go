package thicket

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and tree metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime  time.Duration
	drawTime    time.Duration
	eventCount  int
	widgetCount int
}

// debugLog prints timing stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	if stats.drawTime > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "[thicket] draw: %v | widgets: %d\n",
			stats.drawTime, stats.widgetCount)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[thicket] frame %d update: %v | events: %d\n",
		s.frame, stats.updateTime, stats.eventCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed widget
// is used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(w *Widget, op string) {
	if w.disposed {
		panic(fmt.Sprintf("thicket debug: %s on disposed widget %q (ID was %d)", op, w.Name, w.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(w *Widget) {
	depth := 0
	for p := w; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[thicket] warning: tree depth %d exceeds %d (widget %q)\n",
			depth, debugMaxTreeDepth, w.Name)
	}
}

// debugCheckChildCount warns on stderr if a widget has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(w *Widget) {
	if len(w.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[thicket] warning: widget %q has %d children (threshold %d)\n",
			w.Name, len(w.children), debugMaxChildCount)
	}
}

// countWidgets returns the size of the subtree rooted at w.
func countWidgets(w *Widget) int {
	n := 0
	w.Walk(func(*Widget) bool {
		n++
		return true
	})
	return n
}
