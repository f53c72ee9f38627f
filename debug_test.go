package thicket

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	fn()

	w.Close()
	os.Stderr = old
	return <-done
}

func TestDebugMode_DisposedWidgetPanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewContainer("parent")
	s.Root().AddChild(parent)

	child := NewContainer("child")
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed widget, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestDebugMode_DisposedParentPanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewContainer("parent")
	parent.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild to disposed parent, got none")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "AddChild (parent)") {
			t.Errorf("panic message should name the parent, got: %s", msg)
		}
	}()

	parent.AddChild(NewContainer("child"))
}

func TestReleaseMode_DisposedWidgetNoPanic(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(false)

	child := NewContainer("child")
	child.Dispose()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("release mode should not panic on disposed widget, got: %v", r)
		}
	}()
	s.Root().AddChild(child)
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		current := s.Root()
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := NewContainer(fmt.Sprintf("depth_%d", i))
			current.AddChild(child)
			current = child
		}
	})

	if !strings.Contains(output, "warning: tree depth") {
		t.Errorf("expected tree depth warning in stderr, got: %q", output)
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		parent := NewContainer("many_children")
		s.Root().AddChild(parent)
		for i := 0; i < debugMaxChildCount+1; i++ {
			parent.AddChild(NewContainer(fmt.Sprintf("c_%d", i)))
		}
	})

	if !strings.Contains(output, "warning: widget") || !strings.Contains(output, "children") {
		t.Errorf("expected child count warning in stderr, got: %q", output)
	}
}

func TestDebugMode_FrameStats(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		s.InjectKeyDown(0)
		s.update(1.0/60, false)
	})

	if !strings.Contains(output, "[thicket] frame 1 update:") || !strings.Contains(output, "events: 1") {
		t.Errorf("expected update stats in stderr, got: %q", output)
	}
}

func TestDebugLogSilentWhenDisabled(t *testing.T) {
	s := NewScene()
	output := captureStderr(t, func() {
		s.debugLog(debugStats{updateTime: 1, eventCount: 3})
	})
	if output != "" {
		t.Errorf("expected no output with debug off, got: %q", output)
	}
}

func TestSetDebugModeFromConfig(t *testing.T) {
	s := NewScene()
	cfg := DefaultConfig()
	cfg.Debug = true
	s.SetConfig(cfg)
	defer s.SetDebugMode(false)

	if !s.debug || !globalDebug {
		t.Error("a config with debug set should enable debug mode")
	}
}

func TestCountWidgets(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	root.AddChild(a)
	a.AddChild(NewContainer("a1"))
	root.AddChild(NewContainer("b"))

	if got := countWidgets(root); got != 4 {
		t.Errorf("countWidgets = %d, want 4", got)
	}
	if got := countWidgets(NewContainer("solo")); got != 1 {
		t.Errorf("countWidgets(solo) = %d, want 1", got)
	}
}
