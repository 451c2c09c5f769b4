// Package ecs provides ECS adapters for tilegrid's tile event system.
//
// The primary adapter is [NewDonburiStore], which bridges tile map pointer
// events (move, down, up, resolved to a tile) into a [Donburi] world as typed
// events. Subscribe to [TileEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
