// Package ecs provides ECS adapters for festive.
package ecs

import (
	"github.com/phanxgames/festive"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType carries festive gesture changes. An event is queued when
// the cloud starts morphing toward a new shape, not when it arrives; the
// morph takes about a second. Time is the engine clock at the switch.
var GestureEventType = events.NewEventType[festive.GestureEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a GestureSink that queues events on world.
//
// The scene emits from Scene.Update on the game goroutine, after it reads the
// detector's latest gesture and before the engine ticks, at most once per
// frame. Hand detector goroutines never reach the sink, so the world needs
// no locking. Call GestureEventType.ProcessEvents (or
// events.ProcessAllEvents) from your own Update after the scene's to deliver
// the events in the same frame.
func NewDonburiSink(world donburi.World) festive.GestureSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitGesture(event festive.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}
