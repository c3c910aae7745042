// Package ecs provides ECS adapters for parallax's transition engine.
//
// [Bridge] forwards every engine [parallax.TransitionEvent] (started,
// completed, dropped, cancelled) into a [Donburi] world as a typed event.
// Subscribe to [TransitionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	unsubscribe := ecs.Bridge(world, presentation.Engine())
//	defer unsubscribe()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
