// Package tilegrid is a tile-grid coordinate and occupancy engine for
// [Ebitengine], built on a small scene graph of nodes.
//
// A [TileMap] is a scene graph node that maps pointer positions to tiles and
// tracks which mounted nodes occupy which tiles. Two projections are
// supported: [ProjectionOrthogonal] (rectangular cells) and
// [ProjectionIsometric] (2:1 diamond cells).
//
// # Quick start
//
//	scene := tilegrid.NewScene()
//	m, err := tilegrid.NewTileMap(tilegrid.Config{
//		TileWidth: 64, TileHeight: 32,
//		Projection:    tilegrid.ProjectionIsometric,
//		GridDrawCount: 10,
//		DrawPointer:   true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene.Root().AddChild(m.Node())
//	m.SetOnTileDown(func(x, y int) { log.Printf("clicked %d,%d", x, y) })
//	tilegrid.Run(scene, tilegrid.RunConfig{Title: "Map", Width: 640, Height: 480})
//
// # Coordinates
//
// [PointerToTile] and [TileToWorld] are pure functions; [Transformer] bundles
// the tile size, projection and [TileAnchor] of a map. Tile coordinates are
// unbounded and may be negative. Division always floors, so positions left of
// or above the origin map to negative tiles.
//
// # Occupancy
//
// [OccupancyIndex] is a sparse cell -> occupants map that keeps insertion
// order and allows duplicates. Nodes mounted on a TileMap receive an
// [OccupancyHandle] to occupy, release and query tiles; unmounting a node
// evicts it from every tile.
//
// # Scripted input
//
// [Scene.InjectClick], [Scene.InjectDrag] and friends queue synthetic pointer
// events in screen space. A [TestRunner] loaded with [LoadTestScript] replays
// a YAML script of moves, clicks, drags, waits and screenshots.
//
// # Frame loop
//
// Each frame, [Scene.Update] (or [Scene.UpdateWithInput] with an explicit
// [InputSnapshot]) ticks every tile map once: the pointer tile is computed a
// single time and the mouse-tile callbacks fire. [Scene.Draw] then renders
// the debug overlays (grid, occupied cells, pointer cell) through a [Canvas].
//
// [Ebitengine]: https://ebitengine.org
package tilegrid
