package thicket

// EdgeOffset is a translation along one edge attribute: the amount content
// must move so the named edge of a target lines up with the viewport.
type EdgeOffset struct {
	Edge   Attr
	Offset float64
}

// ScrollDelta computes the minimal translation that brings target into
// viewport, given the full content extent. It returns false when target is
// already inside viewport or content does not overflow viewport on any axis.
//
// For each overflowing axis, the side of the viewport's center on which the
// target's center falls picks the edge to align: a target left of center
// aligns left edges, right of center aligns right edges, and likewise top and
// bottom. An axis whose centers coincide contributes nothing. Offsets are
// ordered horizontal first.
func ScrollDelta(target, content, viewport Rect) ([]EdgeOffset, bool) {
	if viewport.ContainsRect(target) {
		return nil, false
	}

	scrollX := content.Width > viewport.Width
	scrollY := content.Height > viewport.Height
	if !scrollX && !scrollY {
		return nil, false
	}

	tc, vc := target.Center(), viewport.Center()
	var offsets []EdgeOffset
	if scrollX {
		switch {
		case tc.X < vc.X:
			offsets = append(offsets, EdgeOffset{AttrLeft, viewport.Left() - target.Left()})
		case tc.X > vc.X:
			offsets = append(offsets, EdgeOffset{AttrRight, viewport.Right() - target.Right()})
		}
	}
	if scrollY {
		switch {
		case tc.Y < vc.Y:
			offsets = append(offsets, EdgeOffset{AttrTop, viewport.Top() - target.Top()})
		case tc.Y > vc.Y:
			offsets = append(offsets, EdgeOffset{AttrBottom, viewport.Bottom() - target.Bottom()})
		}
	}
	if len(offsets) == 0 {
		return nil, false
	}
	return offsets, true
}
