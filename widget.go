package thicket

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- ID counter ---

// widgetIDCounter is a plain counter (no atomic; thicket is single-threaded).
var widgetIDCounter uint32

func nextWidgetID() uint32 {
	widgetIDCounter++
	return widgetIDCounter
}

// --- Behavior ---

// Behavior supplies the type-specific parts of a Widget: how it lays out,
// how it draws itself, and how it reacts to events no child consumed.
// Grid, Menu, Window and the decoration widgets are Behaviors; a plain
// container has none.
type Behavior interface {
	// RefreshLayout repositions the widget's content rect and/or arranges its
	// children. It runs inside CheckRefresh while the widget is refreshing.
	RefreshLayout(w *Widget)
	// DrawContent draws the widget's own visuals. Children draw afterwards.
	DrawContent(w *Widget, dst *ebiten.Image)
	// HandleEvent processes an event that no child consumed. Returning nil
	// consumes it.
	HandleEvent(w *Widget, ev *Event) *Event
}

// BaseBehavior is a no-op Behavior to embed when only some hooks matter.
type BaseBehavior struct{}

func (BaseBehavior) RefreshLayout(*Widget)                    {}
func (BaseBehavior) DrawContent(*Widget, *ebiten.Image)       {}
func (BaseBehavior) HandleEvent(_ *Widget, ev *Event) *Event { return ev }

// --- Layout state ---

type layoutState uint8

const (
	layoutClean layoutState = iota
	layoutDirty
	layoutRefreshing
)

// --- Widget ---

// Widget is the fundamental UI tree element. It owns its children, a
// screen-space bounds rectangle assigned by its parent, a content rect
// relative to those bounds, and a ledger of animations and tasks.
//
// Layout is lazy: mutations mark the widget dirty and the next geometry read
// or Draw runs CheckRefresh, which recomputes layout once.
type Widget struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Widget
	children []*Widget

	// Geometry
	bounds    Rect // explicit override, valid when hasBounds
	hasBounds bool
	content   Rect // relative to Bounds()
	drawRect  Rect // screen space, last Draw
	anchors   map[Attr]float64
	padding   float64

	// Flags
	Enabled  bool
	Disabled bool
	Visible  bool

	// Layout state machine
	layout        layoutState
	refreshQueued bool
	refreshes     int

	behavior Behavior
	ledger   Ledger

	// OnRefreshLayout runs after the behavior's RefreshLayout during every
	// layout pass. Use it for per-instance geometry tweaks.
	OnRefreshLayout func(w *Widget)
	// OnUpdate runs once per Update after the ledger advances.
	OnUpdate func(dt float64)

	// Metadata
	UserData any

	disposed bool
}

// NewWidget creates a detached, dirty widget. behavior may be nil for a plain
// container.
func NewWidget(name string, behavior Behavior) *Widget {
	return &Widget{
		ID:       nextWidgetID(),
		Name:     name,
		Enabled:  true,
		Visible:  true,
		layout:   layoutDirty,
		behavior: behavior,
	}
}

// NewContainer creates a widget with no visual representation.
func NewContainer(name string) *Widget {
	return NewWidget(name, nil)
}

// Behavior returns the widget's behavior, or nil for a container.
func (w *Widget) Behavior() Behavior { return w.behavior }

// --- Tree manipulation ---

// AddChild appends child to this widget's children.
// Panics if child is nil, already has a parent, or is an ancestor of w.
func (w *Widget) AddChild(child *Widget) {
	w.AddChildAt(child, len(w.children))
}

// AddChildAt inserts child at the given index.
// Same checks as AddChild; also panics if index is out of range.
func (w *Widget) AddChildAt(child *Widget, index int) {
	if child == nil {
		panic("thicket: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(w, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if child.parent != nil {
		panic("thicket: cannot add widget because it is already contained by another")
	}
	if isAncestor(child, w) {
		panic("thicket: adding child would create a cycle")
	}
	if index < 0 || index > len(w.children) {
		panic("thicket: child index out of range")
	}
	child.parent = w
	w.children = append(w.children, nil)
	copy(w.children[index+1:], w.children[index:])
	w.children[index] = child
	if w.Disabled {
		setDisabledTree(child, true)
	}
	child.MarkDirty()
	w.MarkDirty()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(w)
	}
}

// RemoveChild detaches child from this widget.
// Panics if child.Parent() != w.
func (w *Widget) RemoveChild(child *Widget) {
	if child == nil || child.parent != w {
		panic("thicket: child's parent is not this widget")
	}
	w.removeChildByPtr(child)
	child.parent = nil
	child.MarkDirty()
	w.MarkDirty()
}

// RemoveFromParent detaches this widget from its parent.
// No-op if this widget has no parent.
func (w *Widget) RemoveFromParent() {
	if w.parent == nil {
		return
	}
	w.parent.RemoveChild(w)
}

// ClearChildren detaches every child, one RemoveChild at a time.
// Children are NOT disposed.
func (w *Widget) ClearChildren() {
	for _, child := range w.copyChildren() {
		w.RemoveChild(child)
	}
}

// Parent returns the parent widget, or nil when detached.
func (w *Widget) Parent() *Widget { return w.parent }

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (w *Widget) Children() []*Widget { return w.children }

// NumChildren returns the number of children.
func (w *Widget) NumChildren() int { return len(w.children) }

// ChildAt returns the child at the given index.
func (w *Widget) ChildAt(index int) *Widget { return w.children[index] }

// IndexOf returns the position of child in w's children, or -1.
func (w *Widget) IndexOf(child *Widget) int {
	for i, c := range w.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Walk visits w and its descendants depth-first in paint order. Returning
// false from fn skips that widget's subtree.
func (w *Widget) Walk(fn func(*Widget) bool) {
	if !fn(w) {
		return
	}
	for _, c := range w.copyChildren() {
		c.Walk(fn)
	}
}

// SetDisabled sets Disabled on w and its whole subtree.
func (w *Widget) SetDisabled(disabled bool) {
	setDisabledTree(w, disabled)
}

func setDisabledTree(w *Widget, disabled bool) {
	w.Disabled = disabled
	for _, c := range w.children {
		setDisabledTree(c, disabled)
	}
}

// --- Disposal ---

// Dispose removes this widget from its parent, aborts its animations, and
// recursively disposes all descendants.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	w.RemoveFromParent()
	w.dispose()
}

func (w *Widget) dispose() {
	w.disposed = true
	w.ledger.AbortAll()
	for _, child := range w.children {
		child.parent = nil
		child.dispose()
	}
	w.children = nil
	w.parent = nil
	w.anchors = nil
	w.behavior = nil
	w.OnRefreshLayout = nil
	w.OnUpdate = nil
	w.UserData = nil
}

// IsDisposed returns true if this widget has been disposed.
func (w *Widget) IsDisposed() bool { return w.disposed }

// --- Geometry ---

// Bounds returns the screen-space rectangle this widget must draw within:
// the explicit override if one was set, otherwise the parent's internal rect.
// A detached widget without an override has empty bounds.
func (w *Widget) Bounds() Rect {
	if w.hasBounds {
		return w.bounds
	}
	if w.parent != nil {
		return w.parent.CalcInternalRect()
	}
	return Rect{}
}

// SetBounds overrides the bounds normally derived from the parent.
func (w *Widget) SetBounds(r Rect) {
	if w.hasBounds && w.bounds == r {
		return
	}
	w.bounds = r
	w.hasBounds = true
	w.MarkDirty()
}

// ClearBounds drops the override so bounds follow the parent again.
func (w *Widget) ClearBounds() {
	if !w.hasBounds {
		return
	}
	w.hasBounds = false
	w.MarkDirty()
}

// HasBoundsOverride reports whether SetBounds is in effect.
func (w *Widget) HasBoundsOverride() bool { return w.hasBounds }

// ContentRect returns the content rect, relative to Bounds.
func (w *Widget) ContentRect() Rect { return w.content }

// SetContentRect replaces the content rect.
func (w *Widget) SetContentRect(r Rect) {
	w.content = r
	w.touchContent()
}

// SetSize sets the content rect's size, keeping its position.
func (w *Widget) SetSize(width, height float64) {
	w.content.Width = width
	w.content.Height = height
	w.touchContent()
}

// SetPosition moves the content rect's top-left, relative to Bounds.
func (w *Widget) SetPosition(x, y float64) {
	w.content.X = x
	w.content.Y = y
	w.touchContent()
}

// ScreenRect returns the content rect translated into screen space.
func (w *Widget) ScreenRect() Rect {
	b := w.Bounds()
	return w.content.Move(b.X, b.Y)
}

// DrawRect returns the screen-space rect used by the last Draw.
func (w *Widget) DrawRect() Rect { return w.drawRect }

// Padding returns the inset applied by CalcInternalRect.
func (w *Widget) Padding() float64 { return w.padding }

// SetPadding sets the inset applied by CalcInternalRect.
func (w *Widget) SetPadding(p float64) {
	if w.padding == p {
		return
	}
	w.padding = p
	w.MarkDirty()
}

// SetAnchor pins one attribute of the content rect during layout. Position
// attributes take screen-space values; AttrWidth and AttrHeight take sizes.
func (w *Widget) SetAnchor(a Attr, v float64) {
	if w.anchors == nil {
		w.anchors = make(map[Attr]float64)
	}
	w.anchors[a] = v
	w.MarkDirty()
}

// ClearAnchors removes every anchor.
func (w *Widget) ClearAnchors() {
	if len(w.anchors) == 0 {
		return
	}
	clear(w.anchors)
	w.MarkDirty()
}

// Anchor returns the anchored value for a and whether one is set.
func (w *Widget) Anchor(a Attr) (float64, bool) {
	v, ok := w.anchors[a]
	return v, ok
}

// applyAnchors writes anchored attributes into the content rect. Sizes go
// first so edge anchors see the final size.
func (w *Widget) applyAnchors() {
	if len(w.anchors) == 0 {
		return
	}
	b := w.Bounds()
	for _, a := range [...]Attr{AttrWidth, AttrHeight} {
		if v, ok := w.anchors[a]; ok {
			w.content.SetAttr(a, v)
		}
	}
	for a := AttrX; a <= AttrCenterY; a++ {
		v, ok := w.anchors[a]
		if !ok {
			continue
		}
		if a.horizontal() {
			v -= b.X
		} else {
			v -= b.Y
		}
		w.content.SetAttr(a, v)
	}
}

// ContentProp returns an animatable attribute of the content rect. Writes
// mark the widget dirty. The property's target is w, so
// RemoveAnimationsOf(w) stops it.
func (w *Widget) ContentProp(a Attr) Property {
	return Property{
		Target: w,
		Name:   "content." + a.String(),
		Get:    func() float64 { return w.content.Attr(a) },
		Set: func(v float64) {
			w.content.SetAttr(a, v)
			w.touchContent()
		},
	}
}

// BoundsProp returns an animatable attribute of the bounds. The first write
// turns the derived bounds into an override.
func (w *Widget) BoundsProp(a Attr) Property {
	return Property{
		Target: w,
		Name:   "bounds." + a.String(),
		Get:    func() float64 { return w.Bounds().Attr(a) },
		Set: func(v float64) {
			r := w.Bounds()
			r.SetAttr(a, v)
			w.SetBounds(r)
		},
	}
}

// --- Layout ---

// MarkDirty schedules a layout pass. A mutation that arrives while the
// widget is refreshing is remembered and leaves it dirty after the pass.
func (w *Widget) MarkDirty() {
	switch w.layout {
	case layoutRefreshing:
		w.refreshQueued = true
	default:
		w.layout = layoutDirty
	}
}

// touchContent invalidates after a content rect write. The layout pass owns
// the content rect, so its own writes don't requeue it.
func (w *Widget) touchContent() {
	if w.layout != layoutRefreshing {
		w.layout = layoutDirty
	}
}

// IsDirty reports whether a layout pass is pending.
func (w *Widget) IsDirty() bool { return w.layout == layoutDirty }

// RefreshCount returns how many layout passes have run.
func (w *Widget) RefreshCount() int { return w.refreshes }

// CheckRefresh runs a layout pass if the widget is dirty: the behavior's
// RefreshLayout, then OnRefreshLayout, then anchors. Every direct child is
// marked dirty afterwards so it recomputes against the new state. A request
// made while the pass is running is ignored rather than recursed into.
func (w *Widget) CheckRefresh() {
	if w.layout != layoutDirty {
		return
	}
	w.layout = layoutRefreshing
	w.refreshQueued = false

	if w.behavior != nil {
		w.behavior.RefreshLayout(w)
	}
	if w.OnRefreshLayout != nil {
		w.OnRefreshLayout(w)
	}
	w.applyAnchors()
	for _, c := range w.children {
		c.MarkDirty()
	}
	w.refreshes++

	if w.refreshQueued {
		w.layout = layoutDirty
	} else {
		w.layout = layoutClean
	}
	w.refreshQueued = false
}

// CalcInternalRect returns the bounds inset by padding, after refreshing.
// Children derive their own bounds from it.
func (w *Widget) CalcInternalRect() Rect {
	w.CheckRefresh()
	return w.Bounds().Inset(w.padding)
}

// CalcBoundingRect returns the union of the direct children's screen rects,
// or the widget's own screen rect if it has no children.
func (w *Widget) CalcBoundingRect() Rect {
	w.CheckRefresh()
	if len(w.children) == 0 {
		return w.ScreenRect()
	}
	r := w.children[0].ScreenRect()
	for _, c := range w.children[1:] {
		r = r.Union(c.ScreenRect())
	}
	return r
}

// --- Frame ---

// Draw refreshes layout if needed, draws this widget's own content and then
// each child in order. Children draw into a sub-image clipped to this
// widget's bounds, so nothing escapes them.
func (w *Widget) Draw(dst *ebiten.Image) {
	if w.disposed {
		return
	}
	w.CheckRefresh()
	if !w.Visible {
		return
	}
	w.drawRect = w.ScreenRect()
	if w.behavior != nil {
		w.behavior.DrawContent(w, dst)
	}
	if len(w.children) == 0 {
		return
	}
	clip, ok := dst.SubImage(w.Bounds().image()).(*ebiten.Image)
	if !ok {
		return
	}
	for _, c := range w.copyChildren() {
		c.Draw(clip)
	}
}

// Update advances this widget's animations and tasks by dt seconds, runs
// OnUpdate, then updates each child.
func (w *Widget) Update(dt float64) {
	if w.disposed {
		return
	}
	w.ledger.Update(dt)
	if w.OnUpdate != nil {
		w.OnUpdate(dt)
	}
	for _, c := range w.copyChildren() {
		if c.parent == w {
			c.Update(dt)
		}
	}
}

// ProcessEvent offers ev to each child in order, then to this widget's
// behavior. A nil return means the event was consumed; propagation stops at
// the first consumer.
func (w *Widget) ProcessEvent(ev *Event) *Event {
	if w.disposed || ev == nil {
		return ev
	}
	for _, c := range w.copyChildren() {
		if c.parent != w {
			continue
		}
		if ev = c.ProcessEvent(ev); ev == nil {
			return nil
		}
	}
	if w.behavior != nil {
		return w.behavior.HandleEvent(w, ev)
	}
	return ev
}

// --- Scheduling ---

// Ledger returns the widget's animation and task set.
func (w *Widget) Ledger() *Ledger { return &w.ledger }

// Animate schedules a on this widget.
func (w *Widget) Animate(a *Animation) *Animation {
	return w.ledger.AddAnimation(a)
}

// AnimateRelative schedules a with its end values taken as offsets from the
// captured start values.
func (w *Widget) AnimateRelative(a *Animation) *Animation {
	return w.ledger.AddAnimation(a.Relative())
}

// Task schedules fn to run after interval seconds, times times
// (RepeatForever for no limit).
func (w *Widget) Task(fn func(), interval float64, times int) *Task {
	return w.ledger.AddTask(NewTask(fn, interval, times))
}

// RemoveAnimationsOf aborts every animation on this widget that drives a
// property of target. Pass a widget to stop its ContentProp and BoundsProp
// animations.
func (w *Widget) RemoveAnimationsOf(target any) {
	w.ledger.RemoveAnimationsOf(target)
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of (or is) node.
func isAncestor(candidate, node *Widget) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from w.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (w *Widget) removeChildByPtr(child *Widget) {
	for i, c := range w.children {
		if c == child {
			copy(w.children[i:], w.children[i+1:])
			w.children[len(w.children)-1] = nil
			w.children = w.children[:len(w.children)-1]
			return
		}
	}
}

// copyChildren snapshots the child list so callbacks may mutate the tree
// while it is being iterated.
func (w *Widget) copyChildren() []*Widget {
	if len(w.children) == 0 {
		return nil
	}
	return append([]*Widget(nil), w.children...)
}
