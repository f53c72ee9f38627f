package thicket

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Attr names one scalar attribute of a Rect. Setting a position attribute
// moves the rectangle; setting AttrWidth or AttrHeight resizes it in place.
type Attr uint8

const (
	AttrX Attr = iota
	AttrY
	AttrLeft
	AttrTop
	AttrRight
	AttrBottom
	AttrCenterX
	AttrCenterY
	AttrWidth
	AttrHeight
)

var attrNames = [...]string{
	AttrX:       "x",
	AttrY:       "y",
	AttrLeft:    "left",
	AttrTop:     "top",
	AttrRight:   "right",
	AttrBottom:  "bottom",
	AttrCenterX: "centerx",
	AttrCenterY: "centery",
	AttrWidth:   "width",
	AttrHeight:  "height",
}

func (a Attr) String() string {
	if int(a) < len(attrNames) {
		return attrNames[a]
	}
	return "unknown"
}

// horizontal reports whether a moves or sizes the rectangle along X.
func (a Attr) horizontal() bool {
	switch a {
	case AttrX, AttrLeft, AttrRight, AttrCenterX, AttrWidth:
		return true
	}
	return false
}

// Left returns the X coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the Y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Attr returns the value of the named attribute.
func (r Rect) Attr(a Attr) float64 {
	switch a {
	case AttrX, AttrLeft:
		return r.X
	case AttrY, AttrTop:
		return r.Y
	case AttrRight:
		return r.X + r.Width
	case AttrBottom:
		return r.Y + r.Height
	case AttrCenterX:
		return r.X + r.Width/2
	case AttrCenterY:
		return r.Y + r.Height/2
	case AttrWidth:
		return r.Width
	case AttrHeight:
		return r.Height
	}
	return 0
}

// SetAttr sets the named attribute.
func (r *Rect) SetAttr(a Attr, v float64) {
	switch a {
	case AttrX, AttrLeft:
		r.X = v
	case AttrY, AttrTop:
		r.Y = v
	case AttrRight:
		r.X = v - r.Width
	case AttrBottom:
		r.Y = v - r.Height
	case AttrCenterX:
		r.X = v - r.Width/2
	case AttrCenterY:
		r.Y = v - r.Height/2
	case AttrWidth:
		r.Width = v
	case AttrHeight:
		r.Height = v
	}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsRect reports whether other lies completely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Move returns r translated by (dx, dy).
func (r Rect) Move(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inflate returns r grown by dx horizontally and dy vertically, keeping the
// center fixed. Negative values shrink. The size never goes below zero.
func (r Rect) Inflate(dx, dy float64) Rect {
	r.X -= dx / 2
	r.Y -= dy / 2
	r.Width = math.Max(0, r.Width+dx)
	r.Height = math.Max(0, r.Height+dy)
	return r
}

// Inset returns r shrunk by pad on every side.
func (r Rect) Inset(pad float64) Rect {
	return r.Inflate(-2*pad, -2*pad)
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.Right(), other.Right())
	y1 := math.Max(r.Bottom(), other.Bottom())
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// image converts r to an integer image.Rectangle, rounding outward.
func (r Rect) image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}
