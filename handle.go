package tilegrid

import (
	"fmt"
	"math"
	"slices"
)

// MaxFootprintTiles bounds the number of tiles OverTiles derives for a single
// node.
const MaxFootprintTiles = 1 << 16

// OccupancyHandle is the set of tile operations a mounted node gains from its
// tile map. It is bound to one (map, node) pair and created when the node is
// mounted; once the node is unmounted every method returns ErrDetached.
type OccupancyHandle struct {
	m    *TileMap
	node *Node

	// Footprint tracking, see SetTracking.
	tracking bool
	tracked  []TileCoord
}

// Node returns the node this handle is bound to.
func (h *OccupancyHandle) Node() *Node {
	return h.node
}

// Map returns the tile map the node is mounted on, or nil once detached.
func (h *OccupancyHandle) Map() *TileMap {
	return h.m
}

// Attached reports whether the node is still mounted on the map.
func (h *OccupancyHandle) Attached() bool {
	return h.m != nil
}

func (h *OccupancyHandle) detach() {
	h.m = nil
	h.tracking = false
	h.tracked = nil
}

// OccupyTile adds the node to the tile at (x, y).
func (h *OccupancyHandle) OccupyTile(x, y int) error {
	return h.OccupyRegion(x, y, 1, 1)
}

// OccupyRegion adds the node to every tile of the w x h rectangle whose
// top-left tile is (x, y).
func (h *OccupancyHandle) OccupyRegion(x, y, w, hgt int) error {
	if h.m == nil {
		return ErrDetached
	}
	h.m.index.OccupyRegion(TileCoord{x, y}, w, hgt, h.node)
	return nil
}

// UnOccupyTile removes one entry of the node from the tile at (x, y).
func (h *OccupancyHandle) UnOccupyTile(x, y int) error {
	return h.UnOccupyRegion(x, y, 1, 1)
}

// UnOccupyRegion removes one entry of the node from every tile of the w x h
// rectangle whose top-left tile is (x, y).
func (h *OccupancyHandle) UnOccupyRegion(x, y, w, hgt int) error {
	if h.m == nil {
		return ErrDetached
	}
	h.m.index.ReleaseRegion(TileCoord{x, y}, w, hgt, h.node)
	return nil
}

// OverTiles returns the tiles the node's footprint currently covers, x then
// y. The footprint is the node's Width x Height rectangle put through its
// local transform into map space; the covered tiles are the bounding box of
// that rectangle in tile space, with exclusive upper edges.
func (h *OccupancyHandle) OverTiles() ([]TileCoord, error) {
	if h.m == nil {
		return nil, ErrDetached
	}
	n := h.node
	if n.Width <= 0 && n.Height <= 0 {
		return nil, ErrNoFootprint
	}
	b := n.Bounds()
	if err := h.checkSpan(b); err != nil {
		return nil, err
	}
	lo, hi := h.m.tf.TileSpan(b)
	w, hgt := hi.X-lo.X+1, hi.Y-lo.Y+1
	tiles := make([]TileCoord, 0, w*hgt)
	forEachInRegion(lo, w, hgt, func(c TileCoord) {
		tiles = append(tiles, c)
	})
	return tiles, nil
}

// checkSpan rejects footprints whose tile span is not finite or would cover
// more than MaxFootprintTiles tiles. It works in continuous tile space so no
// integer conversion can overflow.
func (h *OccupancyHandle) checkSpan(b Rect) error {
	lo, hi := h.m.tf.cellBounds(b)
	for _, v := range [4]float64{lo.X, lo.Y, hi.X, hi.Y} {
		if math.IsNaN(v) || math.Abs(v) > math.MaxInt32 {
			return fmt.Errorf("tilegrid: node %q spans %v-%v: %w", h.node.Name, lo, hi, ErrFootprintTooLarge)
		}
	}
	w := math.Ceil(hi.X) - math.Floor(lo.X)
	hgt := math.Ceil(hi.Y) - math.Floor(lo.Y)
	if math.Max(w, 1)*math.Max(hgt, 1) > MaxFootprintTiles {
		return fmt.Errorf("tilegrid: node %q spans %vx%v tiles: %w", h.node.Name, w, hgt, ErrFootprintTooLarge)
	}
	return nil
}

// OccupyFootprint adds the node to every tile returned by OverTiles, and
// returns those tiles.
func (h *OccupancyHandle) OccupyFootprint() ([]TileCoord, error) {
	tiles, err := h.OverTiles()
	if err != nil {
		return nil, err
	}
	for _, c := range tiles {
		h.m.index.Occupy(c, h.node)
	}
	return tiles, nil
}

// UnOccupyFootprint removes one entry of the node from every tile returned by
// OverTiles, and returns those tiles. If the node moved since it occupied its
// footprint, use Vacate instead.
func (h *OccupancyHandle) UnOccupyFootprint() ([]TileCoord, error) {
	tiles, err := h.OverTiles()
	if err != nil {
		return nil, err
	}
	for _, c := range tiles {
		h.m.index.Release(c, h.node)
	}
	return tiles, nil
}

// Vacate removes the node from every tile it occupies and returns the number
// of entries removed.
func (h *OccupancyHandle) Vacate() (int, error) {
	if h.m == nil {
		return 0, ErrDetached
	}
	h.tracked = nil
	return h.m.index.Evict(h.node), nil
}

// Tiles returns the tiles currently holding the node, in row-major order.
// This is derived from the map's index; the node itself stores nothing.
func (h *OccupancyHandle) Tiles() []TileCoord {
	if h.m == nil {
		return nil
	}
	return h.m.index.TilesOf(h.node)
}

// SetTracking makes the map keep the node's footprint occupancy current: on
// every Tick the node's previous footprint tiles are released and its current
// OverTiles are occupied. Tracking requires a non-zero footprint.
func (h *OccupancyHandle) SetTracking(on bool) error {
	if h.m == nil {
		return ErrDetached
	}
	if !on {
		h.releaseTracked()
		h.tracking = false
		return nil
	}
	if h.node.Width <= 0 && h.node.Height <= 0 {
		return ErrNoFootprint
	}
	h.tracking = true
	h.retrack()
	return nil
}

// Tracking reports whether footprint tracking is enabled.
func (h *OccupancyHandle) Tracking() bool {
	return h.tracking
}

// retrack moves the tracked entries to the current footprint. Unchanged
// footprints leave the index untouched.
func (h *OccupancyHandle) retrack() {
	tiles, err := h.OverTiles()
	if err != nil {
		// Footprint was cleared after tracking started.
		h.releaseTracked()
		return
	}
	if slices.Equal(tiles, h.tracked) {
		return
	}
	h.releaseTracked()
	for _, c := range tiles {
		h.m.index.Occupy(c, h.node)
	}
	h.tracked = tiles
}

func (h *OccupancyHandle) releaseTracked() {
	for _, c := range h.tracked {
		h.m.index.Release(c, h.node)
	}
	h.tracked = nil
}
