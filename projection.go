package tilegrid

import (
	"fmt"
	"math"
)

// ToIso projects a Cartesian point into 2:1 isometric space.
func ToIso(x, y float64) Vec2 {
	return Vec2{X: x - y, Y: (x + y) / 2}
}

// ToCartesian converts an isometric point back to Cartesian space. It is the
// exact inverse of ToIso.
func ToCartesian(x, y float64) Vec2 {
	return Vec2{X: (2*y + x) / 2, Y: (2*y - x) / 2}
}

// PointerToTile returns the tile under a map-local pointer position for a
// center-anchored grid with the given tile size and projection.
func PointerToTile(p Vec2, tileWidth, tileHeight float64, proj Projection) TileCoord {
	return Transformer{TileWidth: tileWidth, TileHeight: tileHeight, Projection: proj}.PointerToTile(p)
}

// TileToWorld returns the map-local position of a tile for the given tile
// size and projection.
func TileToWorld(t TileCoord, tileWidth, tileHeight float64, proj Projection) Vec2 {
	return Transformer{TileWidth: tileWidth, TileHeight: tileHeight, Projection: proj}.TileToWorld(t)
}

// Transformer converts between map-local positions and tile coordinates. It is
// a plain value; all methods are pure.
type Transformer struct {
	TileWidth  float64
	TileHeight float64
	Projection Projection
	Anchor     TileAnchor
}

// Validate reports whether the transformer can produce finite results.
func (t Transformer) Validate() error {
	if !validTileSize(t.TileWidth) || !validTileSize(t.TileHeight) {
		return fmt.Errorf("tilegrid: tile size %vx%v: %w", t.TileWidth, t.TileHeight, ErrInvalidTileSize)
	}
	if t.Projection > ProjectionIsometric {
		return fmt.Errorf("tilegrid: %v: %w", t.Projection, ErrInvalidProjection)
	}
	if t.Anchor > AnchorCorner {
		return fmt.Errorf("tilegrid: %v: %w", t.Anchor, ErrInvalidAnchor)
	}
	if t.Projection == ProjectionIsometric && t.Anchor == AnchorCenter && t.TileHeight > 2*t.TileWidth {
		return fmt.Errorf("tilegrid: tile size %vx%v: %w", t.TileWidth, t.TileHeight, ErrIsoAspect)
	}
	return nil
}

func validTileSize(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// PointerToTile returns the tile that owns the map-local point p. Cells are
// half-open, so a point exactly on a boundary belongs to the tile on the
// positive side, and negative positions floor toward negative infinity.
func (t Transformer) PointerToTile(p Vec2) TileCoord {
	w, h := t.TileWidth, t.TileHeight

	if t.Projection == ProjectionIsometric {
		if t.Anchor == AnchorCorner {
			c := ToCartesian(p.X, p.Y)
			return TileCoord{floorDiv(c.X, w), floorDiv(c.Y, h)}
		}
		// The +1 corrects the origin skew introduced by shifting y up half
		// a tile before unprojecting.
		c := ToCartesian(p.X, p.Y-h/2)
		return TileCoord{floorDiv(c.X, w) + 1, floorDiv(c.Y, h) + 1}
	}

	if t.Anchor == AnchorCorner {
		return TileCoord{floorDiv(p.X, w), floorDiv(p.Y, h)}
	}
	return TileCoord{floorDiv(p.X+w/2, w), floorDiv(p.Y+h/2, h)}
}

// TileToWorld returns the map-local position of a tile: the tile coordinate
// scaled by the tile size, projected when the map is isometric. The result
// always maps back to the same tile under PointerToTile.
func (t Transformer) TileToWorld(c TileCoord) Vec2 {
	x := float64(c.X) * t.TileWidth
	y := float64(c.Y) * t.TileHeight
	if t.Projection == ProjectionIsometric {
		return ToIso(x, y)
	}
	return Vec2{X: x, Y: y}
}

// CellSpace maps a map-local point into continuous tile space, where the
// integer part of each axis is the tile coordinate.
func (t Transformer) CellSpace(p Vec2) Vec2 {
	w, h := t.TileWidth, t.TileHeight
	switch {
	case t.Projection == ProjectionIsometric && t.Anchor == AnchorCorner:
		c := ToCartesian(p.X, p.Y)
		return Vec2{X: c.X / w, Y: c.Y / h}
	case t.Projection == ProjectionIsometric:
		c := ToCartesian(p.X, p.Y-h/2)
		return Vec2{X: c.X/w + 1, Y: c.Y/h + 1}
	case t.Anchor == AnchorCorner:
		return Vec2{X: p.X / w, Y: p.Y / h}
	default:
		return Vec2{X: (p.X + w/2) / w, Y: (p.Y + h/2) / h}
	}
}

// CellToLocal is the inverse of CellSpace.
func (t Transformer) CellToLocal(u Vec2) Vec2 {
	w, h := t.TileWidth, t.TileHeight
	switch {
	case t.Projection == ProjectionIsometric && t.Anchor == AnchorCorner:
		return ToIso(u.X*w, u.Y*h)
	case t.Projection == ProjectionIsometric:
		p := ToIso((u.X-1)*w, (u.Y-1)*h)
		p.Y += h / 2
		return p
	case t.Anchor == AnchorCorner:
		return Vec2{X: u.X * w, Y: u.Y * h}
	default:
		return Vec2{X: u.X*w - w/2, Y: u.Y*h - h/2}
	}
}

// TileCenter returns the map-local center of the cell owned by c.
func (t Transformer) TileCenter(c TileCoord) Vec2 {
	return t.CellToLocal(Vec2{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5})
}

// TileCorners returns the outline of the cell owned by c in map-local space,
// clockwise from its top-left (tile-space) corner. Orthogonal cells are
// rectangles; isometric cells are diamonds.
func (t Transformer) TileCorners(c TileCoord) [4]Vec2 {
	x, y := float64(c.X), float64(c.Y)
	return [4]Vec2{
		t.CellToLocal(Vec2{X: x, Y: y}),
		t.CellToLocal(Vec2{X: x + 1, Y: y}),
		t.CellToLocal(Vec2{X: x + 1, Y: y + 1}),
		t.CellToLocal(Vec2{X: x, Y: y + 1}),
	}
}

// TileSpan returns the inclusive tile rectangle covering the map-local
// rectangle r. Each corner of r is mapped into tile space and the bounding
// box is taken; upper edges are exclusive, so a rectangle ending exactly on a
// tile boundary does not claim the next tile.
func (t Transformer) TileSpan(r Rect) (min, max TileCoord) {
	lo, hi := t.cellBounds(r)
	min = TileCoord{int(math.Floor(lo.X)), int(math.Floor(lo.Y))}
	max = TileCoord{lastCell(hi.X, min.X), lastCell(hi.Y, min.Y)}
	return min, max
}

// cellBounds returns the bounding box of r in continuous tile space.
func (t Transformer) cellBounds(r Rect) (lo, hi Vec2) {
	corners := [4]Vec2{
		t.CellSpace(Vec2{X: r.X, Y: r.Y}),
		t.CellSpace(Vec2{X: r.X + r.Width, Y: r.Y}),
		t.CellSpace(Vec2{X: r.X + r.Width, Y: r.Y + r.Height}),
		t.CellSpace(Vec2{X: r.X, Y: r.Y + r.Height}),
	}
	lo, hi = corners[0], corners[0]
	for _, c := range corners[1:] {
		lo.X = math.Min(lo.X, c.X)
		lo.Y = math.Min(lo.Y, c.Y)
		hi.X = math.Max(hi.X, c.X)
		hi.Y = math.Max(hi.Y, c.Y)
	}
	return lo, hi
}

// lastCell returns the last cell index touched by an interval ending
// (exclusively) at hi, never less than lo.
func lastCell(hi float64, lo int) int {
	last := int(math.Ceil(hi)) - 1
	if last < lo {
		return lo
	}
	return last
}

// floorDiv divides and floors toward negative infinity.
func floorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}
