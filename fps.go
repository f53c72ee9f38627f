package thicket

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates an ImageWidget that displays the current FPS and TPS.
// The image is redrawn every ~0.5 seconds with ebitenutil.DebugPrint.
func NewFPSWidget() *ImageWidget {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	img := ebiten.NewImage(100, 32)

	iw := NewImageWidget("fps_widget", img)
	iw.SetBounds(Rect{Width: 100, Height: 32})

	var lastUpdate float64
	refresh := func() {
		img.Clear()
		// Semi-transparent background for readability
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	refresh()

	iw.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0
		refresh()
	}
	return iw
}
