package thicket

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep is a single action in a test script. Key names follow
// ebiten.Key's text form ("ArrowDown", "Enter", "Escape").
type testStep struct {
	Action string     `json:"action"`
	Label  string     `json:"label,omitempty"`
	Key    ebiten.Key `json:"key,omitempty"`
	Text   string     `json:"text,omitempty"`
	X      float64    `json:"x,omitempty"`
	Y      float64    `json:"y,omitempty"`
	Frames int        `json:"frames,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input and screenshots across frames for
// scripted menu walkthroughs. Attach to a Scene via SetTestRunner.
//
// Supported actions: "key" (press and release), "keydown", "keyup", "text",
// "click", "wait" and "screenshot".
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "key", "keydown", "keyup", "text", "click", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. Its step runs at the
// start of every Scene update.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps have run.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Let pending injections drain first.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "key":
		s.InjectKey(st.Key)
	case "keydown":
		s.InjectKeyDown(st.Key)
	case "keyup":
		s.InjectKeyUp(st.Key)
	case "text":
		s.InjectText(st.Text)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
