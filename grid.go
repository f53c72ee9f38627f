package thicket

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// lineHeightFactor spaces rows by the tallest child when the grid does not
// expand to fill its bounds.
const lineHeightFactor = 1.2

// Grid arranges its children row-major into a fixed number of columns:
//
//	[0] [1] [2]
//	[3] [4]
//
// The grid's content rect position is the scroll offset applied to every
// cell; animating it scrolls the children. Children entirely outside the
// grid's bounds (inflated by one cell each way) are hidden.
type Grid struct {
	*Widget

	columns int

	// Expand fills the available height with evenly spaced rows. When false,
	// rows are spaced by the tallest child.
	Expand bool
	// LineSpacing, if non-zero, overrides the computed row height.
	LineSpacing float64
	// ColumnSpacing, if non-zero, overrides the computed column width.
	ColumnSpacing float64

	lineHeight  float64
	columnWidth float64
}

// NewGrid creates an expanding grid with the given number of columns.
// Panics if columns < 1.
func NewGrid(name string, columns int) *Grid {
	if columns < 1 {
		panic("thicket: grid needs at least one column")
	}
	g := &Grid{columns: columns, Expand: true}
	g.Widget = NewWidget(name, g)
	return g
}

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.columns }

// SetColumns changes the number of columns and marks the grid dirty.
// Panics if n < 1.
func (g *Grid) SetColumns(n int) {
	if n < 1 {
		panic("thicket: grid needs at least one column")
	}
	if g.columns == n {
		return
	}
	g.columns = n
	g.MarkDirty()
}

// Rows returns ceil(children / columns).
func (g *Grid) Rows() int {
	return (len(g.children) + g.columns - 1) / g.columns
}

// Cell returns the row and column of the child at index.
func (g *Grid) Cell(index int) (row, col int) {
	return index / g.columns, index % g.columns
}

// CellSize returns the column width and line height from the last layout.
func (g *Grid) CellSize() (width, height float64) {
	g.CheckRefresh()
	return g.columnWidth, g.lineHeight
}

// RefreshLayout positions every child in its cell and updates visibility.
func (g *Grid) RefreshLayout(w *Widget) {
	n := len(w.children)
	avail := w.Bounds().Inset(w.padding)
	if n == 0 {
		g.lineHeight, g.columnWidth = 0, 0
		w.content.Width, w.content.Height = 0, 0
		return
	}

	rows := g.Rows()
	switch {
	case g.LineSpacing != 0:
		g.lineHeight = g.LineSpacing
	case g.Expand:
		g.lineHeight = math.Floor(avail.Height / float64(rows))
	default:
		var tallest float64
		for _, c := range w.children {
			tallest = math.Max(tallest, c.content.Height)
		}
		g.lineHeight = math.Floor(tallest * lineHeightFactor)
	}
	if g.ColumnSpacing != 0 {
		g.columnWidth = g.ColumnSpacing
	} else {
		g.columnWidth = math.Floor(avail.Width / float64(g.columns))
	}

	ox, oy := w.content.X, w.content.Y
	for i, c := range w.copyChildren() {
		row, col := g.Cell(i)
		c.content.X = ox + float64(col)*g.columnWidth
		c.content.Y = oy + float64(row)*g.lineHeight
		c.touchContent()
	}
	w.content.Width = float64(g.columns) * g.columnWidth
	w.content.Height = float64(rows) * g.lineHeight

	// Cull against the bounds grown by one cell on every side.
	view := w.Bounds().Inflate(2*g.columnWidth, 2*g.lineHeight)
	for _, c := range w.children {
		r := c.content.Move(avail.X, avail.Y)
		c.Visible = view.Intersects(r)
	}
}

func (g *Grid) DrawContent(*Widget, *ebiten.Image) {}

func (g *Grid) HandleEvent(_ *Widget, ev *Event) *Event { return ev }

// ChildAtPoint returns the index of the first visible child whose screen
// rect contains (x, y), or -1.
func (g *Grid) ChildAtPoint(x, y float64) int {
	g.CheckRefresh()
	for i, c := range g.children {
		if c.Visible && c.ScreenRect().Contains(x, y) {
			return i
		}
	}
	return -1
}
