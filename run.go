package thicket

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run. Zero sizes fall back to the
// scene's configured screen size.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	Scale   float64
	ShowFPS bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene         *Scene
	width, height int
}

func (g *game) Update() error {
	g.scene.Update()
	if g.scene.updateFunc != nil {
		return g.scene.updateFunc()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens a window and drives scene until the window closes or the update
// func returns an error. The logical screen is Width×Height, scaled up by
// Scale for the window.
func Run(scene *Scene, cfg RunConfig) error {
	screen := scene.Config().Screen
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = screen.Width, screen.Height
	}
	if cfg.Scale <= 0 {
		cfg.Scale = max(screen.Scale, 1)
	}
	if cfg.Title == "" {
		cfg.Title = screen.Title
	}
	scene.root.SetBounds(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)})
	if cfg.ShowFPS {
		scene.root.AddChild(NewFPSWidget().Widget)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(int(float64(cfg.Width)*cfg.Scale), int(float64(cfg.Height)*cfg.Scale))
	return ebiten.RunGame(&game{scene: scene, width: cfg.Width, height: cfg.Height})
}
