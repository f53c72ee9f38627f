package thicket

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// recorder is a Behavior that logs layout passes, draws and events.
type recorder struct {
	BaseBehavior
	log       *[]string
	refreshes int
	onRefresh func(w *Widget)
	consume   EventType
	consumes  bool
	dst       *ebiten.Image
}

func (r *recorder) RefreshLayout(w *Widget) {
	r.refreshes++
	if r.onRefresh != nil {
		r.onRefresh(w)
	}
}

func (r *recorder) DrawContent(w *Widget, dst *ebiten.Image) {
	r.dst = dst
	if r.log != nil {
		*r.log = append(*r.log, w.Name)
	}
}

func (r *recorder) HandleEvent(w *Widget, ev *Event) *Event {
	if r.log != nil {
		*r.log = append(*r.log, "event:"+w.Name)
	}
	if r.consumes && ev.Type == r.consume {
		return nil
	}
	return ev
}

func newRecorded(name string, log *[]string) (*Widget, *recorder) {
	r := &recorder{log: log}
	return NewWidget(name, r), r
}

// --- Constructor defaults ---

func TestNewWidgetDefaults(t *testing.T) {
	w := NewContainer("test")
	if w.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if w.Name != "test" {
		t.Errorf("Name = %q, want %q", w.Name, "test")
	}
	if !w.Enabled || !w.Visible || w.Disabled {
		t.Errorf("flags = enabled:%v visible:%v disabled:%v, want true true false", w.Enabled, w.Visible, w.Disabled)
	}
	if !w.IsDirty() {
		t.Error("new widget should be dirty")
	}
	if w.Parent() != nil || w.NumChildren() != 0 {
		t.Error("new widget should be detached and childless")
	}
	if w.Bounds() != (Rect{}) {
		t.Errorf("detached Bounds = %v, want empty", w.Bounds())
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both = %d", a.ID)
	}
}

// --- Tree manipulation ---

func TestAddChildSetsParent(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.CheckRefresh()
	parent.AddChild(child)

	if child.Parent() != parent {
		t.Error("child.Parent() should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should hold exactly child")
	}
	if !parent.IsDirty() {
		t.Error("AddChild should mark the parent dirty")
	}
}

func TestAddChildAt(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(c)
	parent.AddChildAt(b, 1)

	for i, want := range []*Widget{a, b, c} {
		if parent.ChildAt(i) != want {
			t.Errorf("ChildAt(%d) = %q, want %q", i, parent.ChildAt(i).Name, want.Name)
		}
	}
	if parent.IndexOf(c) != 2 {
		t.Errorf("IndexOf(c) = %d, want 2", parent.IndexOf(c))
	}
	if parent.IndexOf(NewContainer("x")) != -1 {
		t.Error("IndexOf(stranger) should be -1")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { NewContainer("p").AddChild(nil) }},
		{"already parented", func() {
			a, b, c := NewContainer("a"), NewContainer("b"), NewContainer("c")
			a.AddChild(c)
			b.AddChild(c)
		}},
		{"self", func() {
			n := NewContainer("n")
			n.AddChild(n)
		}},
		{"cycle", func() {
			p, c, g := NewContainer("p"), NewContainer("c"), NewContainer("g")
			p.AddChild(c)
			c.AddChild(g)
			g.AddChild(p)
		}},
		{"index out of range", func() {
			NewContainer("p").AddChildAt(NewContainer("c"), 1)
		}},
		{"remove non-child", func() {
			NewContainer("p").RemoveChild(NewContainer("c"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("expected panic for %s, got none", tt.name)
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)

	parent.RemoveChild(a)
	if a.Parent() != nil {
		t.Error("removed child should have no parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != b {
		t.Error("parent should only hold b")
	}

	// A removed widget can be re-added elsewhere.
	other := NewContainer("other")
	other.AddChild(a)
	if a.Parent() != other {
		t.Error("re-added child should have the new parent")
	}
}

func TestRemoveFromParentDetached(t *testing.T) {
	n := NewContainer("n")
	n.RemoveFromParent() // no-op
	if n.Parent() != nil {
		t.Error("detached widget should stay detached")
	}
}

func TestClearChildren(t *testing.T) {
	parent := NewContainer("parent")
	kids := []*Widget{NewContainer("a"), NewContainer("b"), NewContainer("c")}
	for _, k := range kids {
		parent.AddChild(k)
	}
	parent.ClearChildren()
	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	for _, k := range kids {
		if k.Parent() != nil || k.IsDisposed() {
			t.Errorf("%s: parent=%v disposed=%v, want detached and alive", k.Name, k.Parent(), k.IsDisposed())
		}
	}
}

func TestWalkSkipsSubtree(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	a1 := NewContainer("a1")
	b := NewContainer("b")
	root.AddChild(a)
	a.AddChild(a1)
	root.AddChild(b)

	var visited []string
	root.Walk(func(w *Widget) bool {
		visited = append(visited, w.Name)
		return w != a
	})
	want := []string{"root", "a", "b"}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestDisabledPropagates(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	child.AddChild(grandchild)
	parent.AddChild(child)

	parent.SetDisabled(true)
	if !child.Disabled || !grandchild.Disabled {
		t.Error("SetDisabled should reach the whole subtree")
	}

	late := NewContainer("late")
	parent.AddChild(late)
	if !late.Disabled {
		t.Error("child added to a disabled parent should be disabled")
	}

	parent.SetDisabled(false)
	if child.Disabled || grandchild.Disabled || late.Disabled {
		t.Error("SetDisabled(false) should clear the subtree")
	}
}

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	fired := false
	task := child.Task(func() { fired = true }, 0.1, 1)
	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("Dispose should mark the subtree disposed")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed child should leave its parent")
	}
	if task.State() != StateAborted {
		t.Errorf("task state = %v, want aborted", task.State())
	}
	child.Update(1)
	if fired {
		t.Error("task should not fire after Dispose")
	}
	child.Dispose() // second call is a no-op
}

// --- Geometry ---

func TestBoundsInheritParentInternalRect(t *testing.T) {
	parent := NewContainer("parent")
	parent.SetBounds(Rect{10, 10, 100, 100})
	parent.SetPadding(5)
	child := NewContainer("child")
	parent.AddChild(child)

	if got, want := child.Bounds(), (Rect{15, 15, 90, 90}); got != want {
		t.Errorf("child.Bounds() = %v, want %v", got, want)
	}

	child.SetContentRect(Rect{2, 3, 10, 10})
	if got, want := child.ScreenRect(), (Rect{17, 18, 10, 10}); got != want {
		t.Errorf("child.ScreenRect() = %v, want %v", got, want)
	}

	child.SetBounds(Rect{0, 0, 20, 20})
	if !child.HasBoundsOverride() || child.Bounds() != (Rect{0, 0, 20, 20}) {
		t.Errorf("override Bounds = %v", child.Bounds())
	}
	child.ClearBounds()
	if child.HasBoundsOverride() || child.Bounds() != (Rect{15, 15, 90, 90}) {
		t.Errorf("cleared Bounds = %v, want parent internal rect", child.Bounds())
	}
}

func TestAnchors(t *testing.T) {
	parent := NewContainer("parent")
	parent.SetBounds(Rect{10, 10, 100, 100})
	parent.SetPadding(5)
	child := NewContainer("child")
	parent.AddChild(child)
	parent.CheckRefresh()

	child.SetAnchor(AttrWidth, 20)
	child.SetAnchor(AttrHeight, 8)
	child.SetAnchor(AttrRight, 105)
	child.SetAnchor(AttrCenterY, 60)
	child.CheckRefresh()

	got := child.ScreenRect()
	if got.Width != 20 || got.Height != 8 {
		t.Errorf("anchored size = %vx%v, want 20x8", got.Width, got.Height)
	}
	if got.Right() != 105 {
		t.Errorf("anchored Right = %v, want 105", got.Right())
	}
	if got.Center().Y != 60 {
		t.Errorf("anchored CenterY = %v, want 60", got.Center().Y)
	}
	if v, ok := child.Anchor(AttrRight); !ok || v != 105 {
		t.Errorf("Anchor(AttrRight) = %v, %v", v, ok)
	}

	child.ClearAnchors()
	if _, ok := child.Anchor(AttrRight); ok {
		t.Error("ClearAnchors should drop every anchor")
	}
}

func TestCalcBoundingRect(t *testing.T) {
	parent := NewContainer("parent")
	parent.SetBounds(Rect{0, 0, 100, 100})
	if got := parent.CalcBoundingRect(); got != parent.ScreenRect() {
		t.Errorf("childless CalcBoundingRect = %v, want own screen rect", got)
	}

	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)
	a.SetContentRect(Rect{10, 10, 10, 10})
	b.SetContentRect(Rect{40, 5, 10, 30})

	if got, want := parent.CalcBoundingRect(), (Rect{10, 5, 40, 30}); got != want {
		t.Errorf("CalcBoundingRect = %v, want %v", got, want)
	}
}

// --- Layout state machine ---

func TestCheckRefreshIdempotent(t *testing.T) {
	w, rec := newRecorded("w", nil)
	w.CheckRefresh()
	w.CheckRefresh()
	w.CheckRefresh()
	if rec.refreshes != 1 {
		t.Errorf("RefreshLayout ran %d times, want 1", rec.refreshes)
	}
	if w.RefreshCount() != 1 {
		t.Errorf("RefreshCount = %d, want 1", w.RefreshCount())
	}
	if w.IsDirty() {
		t.Error("widget should be clean after refresh")
	}

	w.MarkDirty()
	w.CheckRefresh()
	if rec.refreshes != 2 {
		t.Errorf("RefreshLayout ran %d times after MarkDirty, want 2", rec.refreshes)
	}
}

func TestMarkDirtyDuringRefreshRequeues(t *testing.T) {
	w, rec := newRecorded("w", nil)
	rec.onRefresh = func(w *Widget) {
		if rec.refreshes == 1 {
			w.MarkDirty()
		}
	}
	w.CheckRefresh()
	if !w.IsDirty() {
		t.Fatal("a mutation during refresh should leave the widget dirty")
	}
	w.CheckRefresh()
	if rec.refreshes != 2 || w.IsDirty() {
		t.Errorf("refreshes = %d dirty = %v, want 2 false", rec.refreshes, w.IsDirty())
	}
}

func TestNestedCheckRefreshIgnored(t *testing.T) {
	w, rec := newRecorded("w", nil)
	rec.onRefresh = func(w *Widget) { w.CheckRefresh() }
	w.CheckRefresh()
	if rec.refreshes != 1 {
		t.Errorf("RefreshLayout ran %d times, want 1", rec.refreshes)
	}
}

func TestContentWritesDuringRefreshDontRequeue(t *testing.T) {
	w, rec := newRecorded("w", nil)
	rec.onRefresh = func(w *Widget) { w.SetSize(10, 10) }
	w.CheckRefresh()
	if w.IsDirty() {
		t.Error("the layout pass's own content writes should not requeue it")
	}
	if w.ContentRect().Width != 10 {
		t.Errorf("content width = %v, want 10", w.ContentRect().Width)
	}
}

func TestRefreshMarksChildrenDirty(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.CheckRefresh()
	child.CheckRefresh()
	if child.IsDirty() {
		t.Fatal("child should be clean")
	}

	parent.MarkDirty()
	parent.CheckRefresh()
	if !child.IsDirty() {
		t.Error("parent refresh should mark children dirty")
	}
}

func TestOnRefreshLayoutRuns(t *testing.T) {
	w := NewContainer("w")
	calls := 0
	w.OnRefreshLayout = func(*Widget) { calls++ }
	w.CheckRefresh()
	if calls != 1 {
		t.Errorf("OnRefreshLayout calls = %d, want 1", calls)
	}
}

// --- Frame ---

func TestDrawClipsChildrenToParentBounds(t *testing.T) {
	root, rootRec := newRecorded("root", nil)
	root.SetBounds(Rect{0, 0, 64, 64})
	child, childRec := newRecorded("child", nil)
	grandchild, grandRec := newRecorded("grandchild", nil)
	root.AddChild(child)
	child.AddChild(grandchild)
	child.SetBounds(Rect{10, 10, 20, 20})

	root.Draw(ebiten.NewImage(64, 64))

	tests := []struct {
		name string
		rec  *recorder
		want image.Rectangle
	}{
		{"root", rootRec, image.Rect(0, 0, 64, 64)},
		{"child", childRec, image.Rect(0, 0, 64, 64)},
		{"grandchild", grandRec, image.Rect(10, 10, 30, 30)},
	}
	for _, tt := range tests {
		if tt.rec.dst == nil {
			t.Errorf("%s was not drawn", tt.name)
			continue
		}
		if got := tt.rec.dst.Bounds(); got != tt.want {
			t.Errorf("%s dst bounds = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDrawOrderParentBeforeChildren(t *testing.T) {
	var log []string
	root, _ := newRecorded("root", &log)
	root.SetBounds(Rect{0, 0, 64, 64})
	a, _ := newRecorded("a", &log)
	a1, _ := newRecorded("a1", &log)
	b, _ := newRecorded("b", &log)
	hidden, _ := newRecorded("hidden", &log)
	hiddenChild, _ := newRecorded("hiddenChild", &log)
	root.AddChild(a)
	a.AddChild(a1)
	root.AddChild(b)
	root.AddChild(hidden)
	hidden.AddChild(hiddenChild)
	hidden.Visible = false

	dst := ebiten.NewImage(64, 64)
	root.Draw(dst)

	want := []string{"root", "a", "a1", "b"}
	if len(log) != len(want) {
		t.Fatalf("draw order = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("draw[%d] = %q, want %q", i, log[i], want[i])
		}
	}
	if a.IsDirty() || a1.IsDirty() {
		t.Error("Draw should leave drawn widgets clean")
	}
}

func TestProcessEventChildrenFirst(t *testing.T) {
	var log []string
	root, _ := newRecorded("root", &log)
	a, _ := newRecorded("a", &log)
	b, rb := newRecorded("b", &log)
	c, _ := newRecorded("c", &log)
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)
	rb.consume, rb.consumes = EventKeyDown, true

	if got := root.ProcessEvent(KeyDown(ebiten.KeyA)); got != nil {
		t.Error("event should be consumed by b")
	}
	want := []string{"event:a", "event:b"}
	if len(log) != len(want) || log[0] != want[0] || log[1] != want[1] {
		t.Errorf("dispatch = %v, want %v", log, want)
	}

	log = log[:0]
	ev := KeyUp(ebiten.KeyA)
	if got := root.ProcessEvent(ev); got != ev {
		t.Error("unconsumed event should be returned")
	}
	want = []string{"event:a", "event:b", "event:c", "event:root"}
	if len(log) != len(want) {
		t.Fatalf("dispatch = %v, want %v", log, want)
	}
}

func TestUpdateOrder(t *testing.T) {
	var log []string
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.Task(func() { log = append(log, "parent.task") }, 0, 1)
	parent.OnUpdate = func(float64) { log = append(log, "parent.update") }
	child.OnUpdate = func(float64) { log = append(log, "child.update") }

	parent.Update(0.1)
	want := []string{"parent.task", "parent.update", "child.update"}
	if len(log) != len(want) {
		t.Fatalf("update order = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("update[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestRemoveAnimationsOfWidget(t *testing.T) {
	w := NewContainer("w")
	w.SetBounds(Rect{0, 0, 100, 100})
	ani := w.Animate(NewAnimation(1).To(w.ContentProp(AttrX), 50))
	w.Update(0.5)
	w.RemoveAnimationsOf(w)
	if ani.State() != StateAborted {
		t.Errorf("state = %v, want aborted", ani.State())
	}
	x := w.ContentRect().X
	w.Update(1)
	if w.ContentRect().X != x {
		t.Error("aborted animation should not move the content")
	}
}
