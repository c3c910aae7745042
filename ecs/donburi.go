package ecs

import (
	"github.com/phanxgames/parallax"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TransitionEventType is the Donburi event type for engine transition events.
// Subscribe to it in ECS systems to react to slides starting, finishing or
// being dropped.
var TransitionEventType = events.NewEventType[parallax.TransitionEvent]()

// Bridge subscribes to engine and publishes every transition event into
// world. Events are queued; call ProcessEvents to deliver them. The returned
// function removes the subscription.
func Bridge(world donburi.World, engine *parallax.Engine) (unsubscribe func()) {
	return engine.Subscribe(func(ev parallax.TransitionEvent) {
		TransitionEventType.Publish(world, ev)
	})
}
