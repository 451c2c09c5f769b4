package ecs

import (
	"testing"

	"github.com/phanxgames/tilegrid"

	"github.com/yohamta/donburi"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitTileEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []tilegrid.TileEvent
	TileEventType.Subscribe(world, func(w donburi.World, e tilegrid.TileEvent) {
		received = append(received, e)
	})

	store.EmitTileEvent(tilegrid.TileEvent{
		Type:  tilegrid.TileEventDown,
		MapID: 7,
		Tile:  tilegrid.TileCoord{X: 3, Y: -2},
	})
	store.EmitTileEvent(tilegrid.TileEvent{Type: tilegrid.TileEventUp})

	// Events are queued until processed.
	TileEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != tilegrid.TileEventDown || e.MapID != 7 || e.Tile != (tilegrid.TileCoord{X: 3, Y: -2}) {
		t.Errorf("event 0: %+v", e)
	}
	if received[1].Type != tilegrid.TileEventUp {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiStore_SceneForwardsTileEvents(t *testing.T) {
	world := donburi.NewWorld()
	scene := tilegrid.NewScene()
	scene.SetEntityStore(NewDonburiStore(world))

	m, err := tilegrid.NewTileMap(tilegrid.Config{Name: "ground", TileWidth: 40, TileHeight: 40})
	if err != nil {
		t.Fatal(err)
	}
	scene.Root().AddChild(m.Node())

	var received []tilegrid.TileEvent
	TileEventType.Subscribe(world, func(w donburi.World, e tilegrid.TileEvent) {
		received = append(received, e)
	})

	scene.UpdateWithInput(tilegrid.InputSnapshot{
		Pointer: tilegrid.Vec2{X: 45, Y: -30},
		Moved:   true,
		Pressed: true,
	})
	TileEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected move and down events, got %v", received)
	}
	want := tilegrid.TileCoord{X: 1, Y: -1}
	for i, typ := range []tilegrid.TileEventType{tilegrid.TileEventMove, tilegrid.TileEventDown} {
		e := received[i]
		if e.Type != typ || e.Tile != want || e.MapName != "ground" {
			t.Errorf("event %d = %+v, want %v at %v", i, e, typ, want)
		}
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store tilegrid.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}
