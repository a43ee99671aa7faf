// Package ecs provides ECS adapters for krait's observer hooks.
//
// The primary adapter is [NewDonburiObserver], which bridges per-frame
// statistics and the end of a run into a [Donburi] world as typed events.
// Subscribe to [FrameEventType] and [StopEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	tree.AddObserver(ecs.NewDonburiObserver(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
