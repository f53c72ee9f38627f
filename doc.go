// Package thicket is a retained-mode widget and layout toolkit for menu-driven
// 2D games on [Ebitengine].
//
// Thicket provides the widget tree, grid layout, cursor-driven menus,
// decorated windows, text boxes and the animation scheduler that an RPG's
// command, item and dialogue screens are built from.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := thicket.NewScene()
//	win := scene.NewWindow("commands", 1)
//	win.AddItem(thicket.NewTextMenuItem(thicket.DefaultFont(10), "Fight", fight))
//	win.SetBounds(thicket.Rect{X: 8, Y: 8, Width: 96, Height: 64})
//	scene.OpenWindow(win)
//	thicket.Run(scene, thicket.RunConfig{Title: "My Game"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Widget tree
//
// Every element is a [Widget]. Each widget has bounds (the area it may
// occupy, inherited from its parent's padded bounds unless overridden) and a
// content rect (the area it actually draws, relative to its bounds). Widgets
// are laid out lazily: mutations mark a widget dirty and the next Draw or
// [Widget.CheckRefresh] recomputes it, then marks its children dirty.
//
// Specialized widgets ([Grid], [Menu], [Window], [TextArea], [GraphicBox],
// [Bar], [ImageWidget]) embed *Widget and implement [Behavior].
//
// # Menus
//
// A [Menu] arranges [MenuItem]s in a [Grid] and moves a cursor between
// enabled items with the arrow keys, wrapping at the edges. Holding a key
// repeats the move after a delay; typing selects the first item whose label
// contains the typed text; clicking an item activates it. Selections that
// leave the viewport scroll the grid into view.
//
// # Animation
//
// Every widget owns a [Ledger] that advances its [Animation]s and [Task]s.
// Animating a property that is already animating replaces the older
// animation. Easing comes from [gween].
//
// # ECS
//
// Menu activations can be forwarded to a [Donburi] world through the adapter
// in thicket/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package thicket
