// Package ecs provides ECS adapters for xmap.
package ecs

import (
	"github.com/phanxgames/xmap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ViewEventType is the Donburi event type for map view lifecycle events.
// Subscribe to this in your ECS systems to react to model, theme and resize
// changes.
var ViewEventType = events.NewEventType[xmap.ViewEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// View events are published to ViewEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) xmap.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event xmap.ViewEvent) {
	ViewEventType.Publish(s.world, event)
}
