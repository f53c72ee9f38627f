package thicket

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestAnimationInterpolates(t *testing.T) {
	var v float64
	var l Ledger
	completed := 0
	ani := NewAnimation(1).To(FloatProp(&v), 10)
	ani.OnComplete = func() { completed++ }
	l.AddAnimation(ani)

	l.Update(0.5)
	if math.Abs(v-5) > 0.01 {
		t.Errorf("v at 0.5s = %f, want ~5", v)
	}
	if ani.State() != StateRunning {
		t.Errorf("state = %v, want running", ani.State())
	}

	l.Update(0.5)
	if v != 10 {
		t.Errorf("v at end = %f, want exactly 10", v)
	}
	if completed != 1 {
		t.Errorf("OnComplete ran %d times, want 1", completed)
	}
	if l.Len() != 0 {
		t.Errorf("ledger Len = %d, want 0", l.Len())
	}

	l.Update(0.5)
	if completed != 1 {
		t.Errorf("OnComplete ran again after finishing: %d", completed)
	}
}

func TestAnimationOvershootLandsOnEnd(t *testing.T) {
	var v float64
	var l Ledger
	l.AddAnimation(NewAnimation(0.3).To(FloatProp(&v), 7).Ease(ease.OutQuad))
	l.Update(0.2)
	l.Update(0.2)
	if v != 7 {
		t.Errorf("v = %f, want exactly 7", v)
	}
}

func TestAnimationRelative(t *testing.T) {
	v := 3.0
	var l Ledger
	l.AddAnimation(NewAnimation(1).To(FloatProp(&v), 4).Relative())
	l.Update(1)
	if v != 7 {
		t.Errorf("v = %f, want 7", v)
	}
}

func TestAnimationFromTo(t *testing.T) {
	v := 100.0
	var l Ledger
	l.AddAnimation(NewAnimation(1).FromTo(FloatProp(&v), 0, 10))
	l.Update(0.5)
	if math.Abs(v-5) > 0.01 {
		t.Errorf("v = %f, want ~5 (start overrides current value)", v)
	}
}

func TestAnimationZeroDuration(t *testing.T) {
	var v float64
	var l Ledger
	done := false
	ani := NewAnimation(0).To(FloatProp(&v), 3)
	ani.OnComplete = func() { done = true }
	l.AddAnimation(ani)
	l.Update(0.016)
	if v != 3 || !done {
		t.Errorf("v = %f done = %v, want 3 true", v, done)
	}
}

func TestAnimationRectProp(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	var l Ledger
	l.AddAnimation(NewAnimation(1).To(RectProp(&r, AttrRight), 50))
	l.Update(1)
	if r.Right() != 50 || r.Width != 10 {
		t.Errorf("rect = %v, want right edge 50 with width 10", r)
	}
}

func TestLastWriterWins(t *testing.T) {
	var v float64
	var l Ledger
	first := l.AddAnimation(NewAnimation(1).To(FloatProp(&v), 10))
	firstDone := false
	first.OnComplete = func() { firstDone = true }
	second := l.AddAnimation(NewAnimation(1).To(FloatProp(&v), 20))

	if first.State() != StateAborted {
		t.Errorf("first state = %v, want aborted", first.State())
	}
	if l.Len() != 1 {
		t.Errorf("ledger Len = %d, want 1", l.Len())
	}
	l.Update(1)
	if v != 20 || second.State() != StateFinished {
		t.Errorf("v = %f state = %v, want 20 finished", v, second.State())
	}
	if firstDone {
		t.Error("aborted animation should not run OnComplete")
	}
}

func TestDistinctPropertiesRunTogether(t *testing.T) {
	var a, b float64
	var l Ledger
	l.AddAnimation(NewAnimation(1).To(FloatProp(&a), 1))
	l.AddAnimation(NewAnimation(1).To(FloatProp(&b), 2))
	if l.Len() != 2 {
		t.Fatalf("ledger Len = %d, want 2", l.Len())
	}
	l.Update(1)
	if a != 1 || b != 2 {
		t.Errorf("a, b = %f, %f, want 1, 2", a, b)
	}
}

func TestAbortSkipsOnComplete(t *testing.T) {
	var v float64
	var l Ledger
	done := false
	ani := l.AddAnimation(NewAnimation(1).To(FloatProp(&v), 10))
	ani.OnComplete = func() { done = true }
	l.Update(0.25)
	ani.Abort()
	ani.Abort() // no-op

	if ani.State() != StateAborted || l.Len() != 0 {
		t.Errorf("state = %v Len = %d, want aborted 0", ani.State(), l.Len())
	}
	held := v
	l.Update(1)
	if done || v != held {
		t.Error("aborted animation should neither complete nor move")
	}
}

func TestOnUpdateEveryStep(t *testing.T) {
	var v float64
	var l Ledger
	steps := 0
	ani := NewAnimation(1).To(FloatProp(&v), 10)
	ani.OnUpdate = func() { steps++ }
	l.AddAnimation(ani)
	for range 4 {
		l.Update(0.25)
	}
	if steps != 4 {
		t.Errorf("OnUpdate ran %d times, want 4", steps)
	}
}

func TestRemoveAnimationsOfTarget(t *testing.T) {
	r := Rect{}
	var other float64
	var l Ledger
	x := l.AddAnimation(NewAnimation(1).To(RectProp(&r, AttrX), 10))
	y := l.AddAnimation(NewAnimation(1).To(RectProp(&r, AttrY), 10))
	o := l.AddAnimation(NewAnimation(1).To(FloatProp(&other), 10))

	l.RemoveAnimationsOf(&r)
	if x.State() != StateAborted || y.State() != StateAborted {
		t.Error("both rect animations should be aborted")
	}
	if o.State() == StateAborted {
		t.Error("unrelated animation should keep running")
	}
	if l.Len() != 1 {
		t.Errorf("ledger Len = %d, want 1", l.Len())
	}
}

func TestAddedDuringUpdateStartsNextUpdate(t *testing.T) {
	var a, b float64
	var l Ledger
	var chained *Animation
	first := NewAnimation(0.5).To(FloatProp(&a), 1)
	first.OnComplete = func() {
		chained = l.AddAnimation(NewAnimation(0.5).To(FloatProp(&b), 1))
	}
	l.AddAnimation(first)

	l.Update(0.5)
	if chained == nil {
		t.Fatal("OnComplete should have scheduled the chained animation")
	}
	if chained.State() != StatePending || b != 0 {
		t.Errorf("chained state = %v b = %f, want pending 0", chained.State(), b)
	}
	l.Update(0.5)
	if b != 1 {
		t.Errorf("b = %f, want 1", b)
	}
}

func TestAbortAll(t *testing.T) {
	var a float64
	var l Ledger
	ani := l.AddAnimation(NewAnimation(1).To(FloatProp(&a), 1))
	task := l.AddTask(NewTask(func() {}, 1, 1))
	l.AbortAll()
	if ani.State() != StateAborted || task.State() != StateAborted || l.Len() != 0 {
		t.Errorf("after AbortAll: %v %v Len=%d", ani.State(), task.State(), l.Len())
	}
}

func TestAnimStateString(t *testing.T) {
	tests := []struct {
		s    AnimState
		want string
	}{
		{StatePending, "pending"},
		{StateRunning, "running"},
		{StateFinished, "finished"},
		{StateAborted, "aborted"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
