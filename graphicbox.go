package thicket

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Border is a border image cut into a 3×3 grid of equal tiles: corners,
// edges and a center that can be tiled as a fill.
type Border struct {
	tiles [3][3]*ebiten.Image // [row][col]
	tw    int
	th    int
}

// NewBorder slices img into nine tiles. Panics if img is smaller than 3×3.
func NewBorder(img *ebiten.Image) *Border {
	b := img.Bounds()
	tw, th := b.Dx()/3, b.Dy()/3
	if tw == 0 || th == 0 {
		panic("thicket: border image must be at least 3x3")
	}
	br := &Border{tw: tw, th: th}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			x, y := b.Min.X+col*tw, b.Min.Y+row*th
			br.tiles[row][col] = img.SubImage(image.Rect(x, y, x+tw, y+th)).(*ebiten.Image)
		}
	}
	return br
}

// TileSize returns the width and height of one tile.
func (b *Border) TileSize() (int, int) { return b.tw, b.th }

// Inner returns r shrunk by one tile on every side.
func (b *Border) Inner(r Rect) Rect {
	if b == nil {
		return r
	}
	return r.Inflate(-2*float64(b.tw), -2*float64(b.th))
}

// Draw draws the edges and corners around r.
func (b *Border) Draw(dst *ebiten.Image, r Rect) {
	inner := b.Inner(r).image()
	outer := r.image()
	tw, th := b.tw, b.th

	for x := inner.Min.X; x < inner.Max.X; x += tw {
		w := min(tw, inner.Max.X-x)
		drawTile(dst, b.tiles[0][1], x, outer.Min.Y, w, th)
		drawTile(dst, b.tiles[2][1], x, inner.Max.Y, w, th)
	}
	for y := inner.Min.Y; y < inner.Max.Y; y += th {
		h := min(th, inner.Max.Y-y)
		drawTile(dst, b.tiles[1][0], outer.Min.X, y, tw, h)
		drawTile(dst, b.tiles[1][2], inner.Max.X, y, tw, h)
	}
	drawTile(dst, b.tiles[0][0], outer.Min.X, outer.Min.Y, tw, th)
	drawTile(dst, b.tiles[0][2], inner.Max.X, outer.Min.Y, tw, th)
	drawTile(dst, b.tiles[2][0], outer.Min.X, inner.Max.Y, tw, th)
	drawTile(dst, b.tiles[2][2], inner.Max.X, inner.Max.Y, tw, th)
}

// fillCenter tiles the center tile over r.
func (b *Border) fillCenter(dst *ebiten.Image, r Rect) {
	ir := r.image()
	for y := ir.Min.Y; y < ir.Max.Y; y += b.th {
		for x := ir.Min.X; x < ir.Max.X; x += b.tw {
			drawTile(dst, b.tiles[1][1], x, y, min(b.tw, ir.Max.X-x), min(b.th, ir.Max.Y-y))
		}
	}
}

// drawTile draws the top-left w×h of tile at (x, y).
func drawTile(dst, tile *ebiten.Image, x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	src := tile
	tb := tile.Bounds()
	if w < tb.Dx() || h < tb.Dy() {
		src = tile.SubImage(image.Rect(tb.Min.X, tb.Min.Y, tb.Min.X+w, tb.Min.Y+h)).(*ebiten.Image)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(src, op)
}

// --- BorderCache ---

// BorderCache shares sliced borders between widgets. It belongs to whoever
// builds the widgets (usually the Scene) and is filled on first use of each
// image name.
type BorderCache struct {
	assets  *Assets
	borders map[string]*Border
}

// NewBorderCache creates an empty cache that loads images through assets.
func NewBorderCache(assets *Assets) *BorderCache {
	return &BorderCache{assets: assets, borders: make(map[string]*Border)}
}

// Border returns the border for the named image, slicing it on first use.
// An empty name returns nil.
func (c *BorderCache) Border(name string) *Border {
	if name == "" {
		return nil
	}
	if b, ok := c.borders[name]; ok {
		return b
	}
	b := NewBorder(c.assets.Image(name))
	c.borders[name] = b
	return b
}

// Len returns the number of cached borders.
func (c *BorderCache) Len() int { return len(c.borders) }

// Clear drops every cached border.
func (c *BorderCache) Clear() { clear(c.borders) }

// --- GraphicBox ---

// GraphicBox draws a window frame: a background (image, solid color, or the
// border's tiled center) and a 9-slice border around it. It fills its
// parent's full bounds, ignoring the parent's padding, so it can sit behind
// padded content.
type GraphicBox struct {
	*Widget

	Border     *Border
	Background *ebiten.Image
	Color      Color
	FillTiles  bool
}

// NewGraphicBox creates a box. Any argument may be nil or zero.
func NewGraphicBox(name string, border *Border, background *ebiten.Image, c Color) *GraphicBox {
	g := &GraphicBox{Border: border, Background: background, Color: c}
	g.Widget = NewWidget(name, g)
	return g
}

// Frame returns the screen rect the box draws into.
func (g *GraphicBox) Frame() Rect {
	if p := g.parent; p != nil {
		return p.Bounds()
	}
	return g.ScreenRect()
}

// InnerRect returns the area inside the border.
func (g *GraphicBox) InnerRect() Rect {
	return g.Border.Inner(g.Frame())
}

func (g *GraphicBox) RefreshLayout(*Widget) {}

// DrawContent draws the background then the border.
func (g *GraphicBox) DrawContent(_ *Widget, dst *ebiten.Image) {
	frame := g.Frame()
	inner := g.Border.Inner(frame)
	switch {
	case g.Background != nil:
		drawImageRect(dst, g.Background, inner, Color{})
	case !g.Color.IsZero():
		fillRect(dst, inner, g.Color)
	case g.FillTiles && g.Border != nil:
		g.Border.fillCenter(dst, inner)
	}
	if g.Border != nil {
		g.Border.Draw(dst, frame)
	}
}

func (g *GraphicBox) HandleEvent(_ *Widget, ev *Event) *Event { return ev }

// fillRect fills r with a solid color.
func fillRect(dst *ebiten.Image, r Rect, c Color) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(dst,
		float32(math.Floor(r.X)), float32(math.Floor(r.Y)),
		float32(math.Ceil(r.Width)), float32(math.Ceil(r.Height)),
		c.RGBA(), false)
}
