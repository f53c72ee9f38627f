package ecs

import (
	"github.com/phanxgames/thicket"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SelectionEventType is the Donburi event type for menu activations.
var SelectionEventType = events.NewEventType[thicket.SelectionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Selections are queued on SelectionEventType and delivered by
// ProcessEvents.
func NewDonburiStore(world donburi.World) thicket.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event thicket.SelectionEvent) {
	SelectionEventType.Publish(s.world, event)
}
