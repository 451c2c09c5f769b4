package ecs

import (
	"github.com/phanxgames/tilegrid"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TileEventType is the Donburi event type for tilegrid tile events.
// Subscribe to this in your ECS systems to receive pointer events resolved
// to tiles.
var TileEventType = events.NewEventType[tilegrid.TileEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Tile events are published to TileEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) tilegrid.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitTileEvent(event tilegrid.TileEvent) {
	TileEventType.Publish(s.world, event)
}
