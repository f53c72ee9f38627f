// Package ecs provides ECS adapters for thicket's menu events.
//
// The primary adapter is [NewDonburiStore], which publishes every menu
// activation into a [Donburi] world as a typed event. Subscribe to
// [SelectionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
