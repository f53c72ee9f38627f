package thicket

import (
	"fmt"
	"image/color"
	"iter"

	"github.com/hajimehoshi/ebiten/v2"
)

// cursorGap is the space between the cursor's right edge and the item.
const cursorGap = 2

// --- MenuItem ---

// MenuItem is one selectable entry in a Menu. It draws Image if set,
// otherwise Label in Font.
type MenuItem struct {
	*Widget

	Image       *ebiten.Image
	Font        *Font
	Color       Color
	Label       string
	Description string
	Payload     any
	// Callback runs when the item is activated and the menu has no
	// OnSelection hook.
	Callback func()
	// InFocus is true while the item is the menu's selection.
	InFocus bool
}

// NewMenuItem creates an item that draws img.
func NewMenuItem(img *ebiten.Image, label, description string, payload any) *MenuItem {
	it := &MenuItem{Image: img, Label: label, Description: description, Payload: payload}
	it.Widget = NewWidget(label, it)
	return it
}

// NewTextMenuItem creates an item that draws its label.
func NewTextMenuItem(font *Font, label string, callback func()) *MenuItem {
	it := &MenuItem{Font: font, Color: Color{0.13, 0.13, 0.13, 1}, Label: label, Callback: callback}
	it.Widget = NewWidget(label, it)
	return it
}

// RefreshLayout sizes an empty content rect to the image or label.
func (it *MenuItem) RefreshLayout(w *Widget) {
	if it.Image != nil {
		fitImage(w, it.Image)
		return
	}
	if it.Font != nil && w.content.Width == 0 && w.content.Height == 0 {
		w.content.Width = it.Font.Advance(it.Label)
		w.content.Height = it.Font.LineHeight()
	}
}

// DrawContent draws the item, faded when disabled.
func (it *MenuItem) DrawContent(w *Widget, dst *ebiten.Image) {
	r := w.ScreenRect()
	tint := Color{}
	if !selectable(w) {
		tint = Color{1, 1, 1, 0.5}
	}
	if it.Image != nil {
		drawImageRect(dst, it.Image, r, tint)
		return
	}
	if it.Font != nil && it.Label != "" {
		c := it.Color
		if !selectable(w) {
			c.A *= 0.5
		}
		drawText(dst, it.Label, it.Font, r.X, r.Y, c)
	}
}

func (it *MenuItem) HandleEvent(_ *Widget, ev *Event) *Event { return ev }

// --- Menu ---

// Menu is a grid of MenuItems with a cursor. Arrow keys move the selection
// (wrapping, skipping disabled items), Enter activates it, typed text jumps
// to the first item whose label contains it, and a click activates the item
// under the pointer. The item grid scrolls to keep the selection visible.
type Menu struct {
	*Widget

	grid     *Grid
	cursor   *ImageWidget
	selected int

	// InFocus shows the cursor. A key press focuses the menu.
	InFocus bool
	// TouchAware lets pointer presses select and activate items.
	TouchAware bool
	// KeyAware lets typed text search item labels.
	KeyAware bool
	// CursorMargin is reserved left of and above the item grid.
	CursorMargin Vec2

	CursorMoveDuration float64
	ScrollDuration     float64
	KeyRepeatDelay     float64
	KeyRepeatInterval  float64
	InputTimeout       float64

	SelectSound Sound
	// Store, if set, receives a SelectionEvent on every activation.
	Store EntityStore

	// InitializeItems supplies the items used by ReloadItems.
	InitializeItems func() iter.Seq[*MenuItem]
	// OnSelection runs when an item is activated. When nil, the item's
	// Callback runs instead if the item is enabled.
	OnSelection func(item *MenuItem)
	// OnSelectionChange runs after the selection moves.
	OnSelectionChange func()

	cursorAnim *Animation
	cursorFrom Rect
	cursorT    float64

	input      string
	inputClear *Task
	repeatTask *Task
	repeatKey  ebiten.Key
}

// NewMenu creates an empty, focused menu with the given number of columns.
func NewMenu(name string, columns int) *Menu {
	m := &Menu{}
	m.init(name, columns, m)
	return m
}

// init builds the menu's widget and children. behavior lets a wrapping type
// such as Window take over the widget's hooks.
func (m *Menu) init(name string, columns int, behavior Behavior) {
	cfg := DefaultConfig().Menu
	m.Widget = NewWidget(name, behavior)
	m.InFocus = true
	m.TouchAware = true
	m.KeyAware = true
	m.CursorMargin = Vec2{12, 0}
	m.CursorMoveDuration = cfg.CursorMoveDuration
	m.ScrollDuration = cfg.ScrollDuration
	m.KeyRepeatDelay = cfg.KeyRepeatDelay
	m.KeyRepeatInterval = cfg.KeyRepeatInterval
	m.InputTimeout = cfg.InputTimeout
	m.SelectSound = nopSound{}

	m.grid = NewGrid(name+".items", columns)
	m.AddChild(m.grid.Widget)
	m.cursor = NewImageWidget(name+".cursor", defaultCursorImage())
	m.AddChild(m.cursor.Widget)
}

// Configure applies timings, the cursor image and the select sound.
func (m *Menu) Configure(cfg Config, assets *Assets) {
	m.CursorMoveDuration = cfg.Menu.CursorMoveDuration
	m.ScrollDuration = cfg.Menu.ScrollDuration
	m.KeyRepeatDelay = cfg.Menu.KeyRepeatDelay
	m.KeyRepeatInterval = cfg.Menu.KeyRepeatInterval
	m.InputTimeout = cfg.Menu.InputTimeout
	if assets == nil {
		return
	}
	if img := assets.ImageOrNil(cfg.Menu.CursorImage); img != nil {
		m.cursor.SetImage(img)
	}
	m.SelectSound = assets.Sound(cfg.Menu.SelectSound)
}

var cursorImage *ebiten.Image

// defaultCursorImage is a small solid block used until a cursor image is
// configured.
func defaultCursorImage() *ebiten.Image {
	if cursorImage == nil {
		cursorImage = ebiten.NewImage(6, 8)
		cursorImage.Fill(color.RGBA{0x20, 0x20, 0x20, 0xff})
	}
	return cursorImage
}

// menu lets Scene find menus inside wrapping behaviors.
func (m *Menu) menu() *Menu { return m }

// Grid returns the item grid.
func (m *Menu) Grid() *Grid { return m.grid }

// Cursor returns the cursor widget.
func (m *Menu) Cursor() *ImageWidget { return m.cursor }

// --- Items ---

// Len returns the number of items.
func (m *Menu) Len() int { return len(m.grid.children) }

// ItemAt returns the item at index.
func (m *Menu) ItemAt(index int) *MenuItem {
	return m.grid.children[index].behavior.(*MenuItem)
}

// Items returns every item in order.
func (m *Menu) Items() []*MenuItem {
	items := make([]*MenuItem, len(m.grid.children))
	for i := range items {
		items[i] = m.ItemAt(i)
	}
	return items
}

// AddItem appends item to the grid.
func (m *Menu) AddItem(item *MenuItem) {
	m.grid.AddChild(item.Widget)
	m.MarkDirty()
}

// RemoveItem removes item from the grid.
func (m *Menu) RemoveItem(item *MenuItem) {
	m.grid.RemoveChild(item.Widget)
	m.MarkDirty()
}

// ClearItems removes and disposes every item.
func (m *Menu) ClearItems() {
	for _, c := range m.grid.copyChildren() {
		c.Dispose()
	}
	m.MarkDirty()
}

// ReloadItems replaces the items with the ones from InitializeItems and
// clamps the selection to the new length. Old items that are not returned
// again are disposed. No-op without InitializeItems.
func (m *Menu) ReloadItems() {
	if m.InitializeItems == nil {
		return
	}
	m.MarkDirty()
	seq := m.InitializeItems()
	if seq == nil {
		return
	}
	keep := make(map[*Widget]bool)
	var items []*MenuItem
	for item := range seq {
		keep[item.Widget] = true
		items = append(items, item)
	}
	for _, c := range m.grid.copyChildren() {
		if keep[c] {
			m.grid.RemoveChild(c)
		} else {
			c.Dispose()
		}
	}
	for _, item := range items {
		m.AddItem(item)
	}
	if n := m.Len(); n > 0 && m.selected >= n {
		m.ChangeSelection(n-1, false)
	}
}

// SearchItems returns the first item whose Payload equals payload, or nil.
// Payloads must be comparable.
func (m *Menu) SearchItems(payload any) *MenuItem {
	for _, item := range m.Items() {
		if item.Payload == payload {
			return item
		}
	}
	return nil
}

// selectable reports whether an item can take the cursor.
func selectable(c *Widget) bool { return c.Enabled && !c.Disabled }

func (m *Menu) selectableCount() int {
	n := 0
	for _, c := range m.grid.children {
		if selectable(c) {
			n++
		}
	}
	return n
}

// allDisabled reports whether no item can take the cursor.
func (m *Menu) allDisabled() bool {
	return m.selectableCount() == 0
}

// --- Selection ---

// SelectedIndex returns the index of the selected item.
func (m *Menu) SelectedIndex() int { return m.selected }

// SelectedItem returns the selected item. Panics if the index is out of
// range, including when the menu is empty.
func (m *Menu) SelectedItem() *MenuItem {
	if m.selected < 0 || m.selected >= m.Len() {
		panic(fmt.Sprintf("thicket: selected index %d out of range for %d items", m.selected, m.Len()))
	}
	return m.ItemAt(m.selected)
}

// SelectedItemOrNil is SelectedItem without the panic.
func (m *Menu) SelectedItemOrNil() *MenuItem {
	if m.selected < 0 || m.selected >= m.Len() {
		return nil
	}
	return m.ItemAt(m.selected)
}

// ChangeSelection moves the selection to index: the old item loses focus,
// the select sound plays, the cursor moves (smoothly when animate), the grid
// scrolls if needed, the new item gains focus and OnSelectionChange runs.
func (m *Menu) ChangeSelection(index int, animate bool) {
	if prev := m.SelectedItemOrNil(); prev != nil {
		prev.InFocus = false
	}
	m.selected = index
	m.SelectSound.Play()
	m.moveCursor(animate)
	m.CheckBounds()
	m.SelectedItem().InFocus = true
	if m.OnSelectionChange != nil {
		m.OnSelectionChange()
	}
}

// DetermineCursorMovement returns the index the selection moves to from
// index in direction dir. Items are laid out row-major:
//
//	[0] [1] [2]
//	[3] [4] [5]
//	[6]
//
// Up and down keep the column and wrap between the first and last rows,
// including the short last row; left and right step by one and only apply
// with more than one column. Disabled items are skipped. With fewer than two
// enabled items the index is returned unchanged. Panics if the search wraps
// back to index without finding an enabled item.
func (m *Menu) DetermineCursorMovement(index int, dir Direction) int {
	if m.selectableCount() < 2 {
		return index
	}
	n := m.Len()
	columns := m.grid.Columns()
	rows, rem := n/columns, n%columns
	row, col := index/columns, index%columns

	delta := 0
	switch dir {
	case DirLeft:
		if columns > 1 {
			delta = -1
		}
	case DirRight:
		if columns > 1 {
			delta = 1
		}
	case DirDown:
		switch {
		case rem == 0:
			delta = columns
		case row == rows:
			delta = rem
		case col < rem:
			delta = columns
		case row == rows-1:
			delta = columns + rem
		default:
			delta = columns
		}
	case DirUp:
		switch {
		case rem == 0:
			delta = -columns
		case row != 0:
			delta = -columns
		case col < rem:
			delta = -rem
		default:
			delta = columns * (rows - 1)
		}
	}

	// A full lap lands back on index.
	delta %= n
	if delta == 0 {
		return index
	}
	orig := index
	for {
		index = ((index+delta)%n + n) % n
		if index == orig {
			panic("thicket: cursor movement found no other enabled item")
		}
		if selectable(m.grid.children[index]) {
			break
		}
	}
	return index
}

// --- Cursor ---

// ShowCursor attaches the cursor and focuses the selected item.
func (m *Menu) ShowCursor() {
	if m.cursor.parent == m.Widget {
		return
	}
	m.AddChild(m.cursor.Widget)
	m.moveCursor(false)
	if it := m.SelectedItemOrNil(); it != nil {
		it.InFocus = true
	}
}

// HideCursor detaches the cursor and unfocuses the selected item.
func (m *Menu) HideCursor() {
	if m.cursor.parent != m.Widget {
		return
	}
	m.RemoveChild(m.cursor.Widget)
	if it := m.SelectedItemOrNil(); it != nil {
		it.InFocus = false
	}
}

// CursorVisible reports whether the cursor is attached.
func (m *Menu) CursorVisible() bool { return m.cursor.parent == m.Widget }

// cursorTarget returns where the cursor rests beside the selected item:
// its right edge cursorGap left of the item, vertically centered.
func (m *Menu) cursorTarget() (Rect, bool) {
	item := m.SelectedItemOrNil()
	if item == nil {
		return Rect{}, false
	}
	m.cursor.CheckRefresh()
	size := m.cursor.ContentRect()
	r := item.ScreenRect()
	var t Rect
	t.Width, t.Height = size.Width, size.Height
	t.SetAttr(AttrRight, r.Left()-cursorGap)
	t.SetAttr(AttrCenterY, r.Center().Y)
	return t, true
}

// moveCursor places the cursor beside the selected item. When animate, it
// glides there over CursorMoveDuration, tracking the item if the grid
// scrolls meanwhile, and checks the scroll bounds every tick.
func (m *Menu) moveCursor(animate bool) {
	m.RemoveAnimationsOf(m.cursor.Widget)
	m.cursorAnim = nil
	to, ok := m.cursorTarget()
	if !ok {
		return
	}
	if !animate || !m.cursor.HasBoundsOverride() || m.CursorMoveDuration <= 0 {
		m.cursor.SetBounds(to)
		return
	}

	m.cursorFrom = m.cursor.Bounds()
	ani := NewAnimation(m.CursorMoveDuration).FromTo(Property{
		Target: m.cursor.Widget,
		Name:   "cursor.progress",
		Get:    func() float64 { return m.cursorT },
		Set:    func(v float64) { m.cursorT = v },
	}, 0, 1)
	ani.OnUpdate = func() {
		m.placeCursor()
		m.CheckBounds()
	}
	ani.OnComplete = func() { m.cursorAnim = nil }
	m.cursorAnim = m.Animate(ani)
}

// placeCursor interpolates between cursorFrom and the current target.
func (m *Menu) placeCursor() {
	to, ok := m.cursorTarget()
	if !ok {
		return
	}
	t := m.cursorT
	from := m.cursorFrom
	to.SetAttr(AttrRight, from.Right()+(to.Right()-from.Right())*t)
	to.SetAttr(AttrCenterY, from.Center().Y+(to.Center().Y-from.Center().Y)*t)
	m.cursor.SetBounds(to)
}

// followCursor keeps a resting cursor on its item while the grid scrolls.
func (m *Menu) followCursor() {
	if m.cursorAnim != nil || !m.CursorVisible() {
		return
	}
	if to, ok := m.cursorTarget(); ok {
		m.cursor.SetBounds(to)
	}
}

// --- Scrolling ---

// CheckBounds scrolls the item grid when the selected item or the cursor
// lies outside the menu's internal rect. Any scroll already running is
// replaced.
func (m *Menu) CheckBounds() {
	item := m.SelectedItemOrNil()
	if item == nil {
		return
	}
	target := item.ScreenRect()
	if m.CursorVisible() {
		target = target.Union(m.cursor.ScreenRect())
	}
	viewport := m.CalcInternalRect()
	content := m.grid.CalcBoundingRect()

	offsets, ok := ScrollDelta(target, content, viewport)
	if !ok {
		return
	}
	m.RemoveAnimationsOf(m.grid.Widget)
	ani := NewAnimation(m.ScrollDuration)
	for _, o := range offsets {
		a := AttrY
		if o.Edge.horizontal() {
			a = AttrX
		}
		ani.To(m.grid.ContentProp(a), o.Offset)
	}
	ani.OnUpdate = m.followCursor
	m.AnimateRelative(ani)
}

// --- Activation ---

// Activate plays the select sound and hands the selected item to
// OnSelection, or runs its Callback when OnSelection is nil and the item is
// enabled.
func (m *Menu) Activate() {
	item := m.SelectedItemOrNil()
	if item == nil {
		return
	}
	m.SelectSound.Play()
	if m.OnSelection != nil {
		m.OnSelection(item)
	} else if selectable(item.Widget) && item.Callback != nil {
		item.Callback()
	}
	if m.Store != nil {
		m.Store.EmitEvent(SelectionEvent{
			MenuID:  m.ID,
			Menu:    m.Name,
			Index:   m.selected,
			Label:   item.Label,
			Payload: item.Payload,
		})
	}
}

// --- Behavior ---

// RefreshLayout gives the grid the internal rect minus the cursor margin,
// then shows the cursor only when the menu is focused and has an item that
// can take it.
func (m *Menu) RefreshLayout(w *Widget) {
	inner := w.Bounds().Inset(w.padding)
	m.grid.SetBounds(Rect{
		X:      inner.X + m.CursorMargin.X,
		Y:      inner.Y + m.CursorMargin.Y,
		Width:  max(0, inner.Width-m.CursorMargin.X),
		Height: max(0, inner.Height-m.CursorMargin.Y),
	})

	if !m.InFocus || m.Len() == 0 || m.allDisabled() {
		m.HideCursor()
		return
	}
	m.ShowCursor()
	if m.cursorAnim == nil {
		m.moveCursor(false)
	}
}

func (m *Menu) DrawContent(*Widget, *ebiten.Image) {}

// HandleEvent implements keyboard and pointer navigation; see menu_input.go.
func (m *Menu) HandleEvent(_ *Widget, ev *Event) *Event {
	return m.handleInput(ev)
}
