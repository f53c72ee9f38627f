package thicket

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// ImageWidget draws an image stretched to its screen rect. An empty content
// rect is sized to the image on the next layout pass.
type ImageWidget struct {
	*Widget

	Image *ebiten.Image
	Tint  Color // zero value draws untinted
}

// NewImageWidget creates an image widget sized to img.
func NewImageWidget(name string, img *ebiten.Image) *ImageWidget {
	iw := &ImageWidget{Image: img}
	iw.Widget = NewWidget(name, iw)
	return iw
}

// SetImage replaces the image and resizes the content rect to fit it.
func (iw *ImageWidget) SetImage(img *ebiten.Image) {
	iw.Image = img
	iw.content.Width, iw.content.Height = 0, 0
	iw.MarkDirty()
}

// RefreshLayout sizes an empty content rect to the image.
func (iw *ImageWidget) RefreshLayout(w *Widget) {
	fitImage(w, iw.Image)
}

func fitImage(w *Widget, img *ebiten.Image) {
	if img == nil || (w.content.Width != 0 && w.content.Height != 0) {
		return
	}
	b := img.Bounds()
	w.content.Width = float64(b.Dx())
	w.content.Height = float64(b.Dy())
}

// DrawContent draws the image into the screen rect.
func (iw *ImageWidget) DrawContent(w *Widget, dst *ebiten.Image) {
	drawImageRect(dst, iw.Image, w.ScreenRect(), iw.Tint)
}

func (iw *ImageWidget) HandleEvent(_ *Widget, ev *Event) *Event { return ev }

// drawImageRect stretches img over r, optionally tinted.
func drawImageRect(dst, img *ebiten.Image, r Rect, tint Color) {
	if img == nil || r.Empty() {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width/float64(b.Dx()), r.Height/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	if !tint.IsZero() {
		op.ColorScale.Scale(float32(tint.R*tint.A), float32(tint.G*tint.A), float32(tint.B*tint.A), float32(tint.A))
	}
	dst.DrawImage(img, op)
}
