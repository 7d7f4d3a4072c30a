// Package ecs provides ECS adapters for xmap's view lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges map view events
// (model attached, model cleared, theme changed, resized) into a [Donburi]
// world as typed events. Subscribe to [ViewEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	mv := xmap.NewMapView(host, xmap.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
