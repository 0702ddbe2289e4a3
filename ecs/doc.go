// Package ecs provides ECS adapters for festive's gesture changes.
//
// The primary adapter is [NewDonburiSink], which bridges festive gesture
// changes into a [Donburi] world as typed events. Subscribe to
// [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetGestureSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
