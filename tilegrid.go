package tilegrid

import (
	"errors"
	"fmt"
	"image/color"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default grid line color.
var ColorWhite = Color{1, 1, 1, 1}

// Default overlay colors.
var (
	defaultOccupiedColor = Color{1, 0, 0, 1}            // #ff0000
	defaultPointerColor  = Color{0x60 / 255.0, 0, 1, 1} // #6000ff
)

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// TileCoord addresses a single tile. The grid is unbounded; negative
// coordinates are valid.
type TileCoord struct {
	X, Y int
}

// Add returns the componentwise sum of c and o.
func (c TileCoord) Add(o TileCoord) TileCoord {
	return TileCoord{c.X + o.X, c.Y + o.Y}
}

func (c TileCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Projection selects how tile space maps onto world space. It is fixed for the
// lifetime of a TileMap.
type Projection uint8

const (
	ProjectionOrthogonal Projection = iota // axis-aligned rectangular cells
	ProjectionIsometric                    // 2:1 diamond cells
)

func (p Projection) String() string {
	switch p {
	case ProjectionOrthogonal:
		return "orthogonal"
	case ProjectionIsometric:
		return "isometric"
	default:
		return fmt.Sprintf("Projection(%d)", uint8(p))
	}
}

// TileAnchor selects where tile (0,0) sits relative to the map origin.
type TileAnchor uint8

const (
	// AnchorCenter centers tile (0,0) on the origin: in orthogonal mode it
	// spans [-w/2, w/2) x [-h/2, h/2).
	AnchorCenter TileAnchor = iota
	// AnchorCorner puts the top-left corner of tile (0,0) on the origin: in
	// orthogonal mode it spans [0, w) x [0, h).
	AnchorCorner
)

func (a TileAnchor) String() string {
	switch a {
	case AnchorCenter:
		return "center"
	case AnchorCorner:
		return "corner"
	default:
		return fmt.Sprintf("TileAnchor(%d)", uint8(a))
	}
}

// TileEventType identifies a pointer event resolved to a tile.
type TileEventType uint8

const (
	TileEventMove TileEventType = iota // pointer moved this tick
	TileEventDown                      // pointer button pressed this tick
	TileEventUp                        // pointer button released this tick
)

func (t TileEventType) String() string {
	switch t {
	case TileEventMove:
		return "move"
	case TileEventDown:
		return "down"
	case TileEventUp:
		return "up"
	default:
		return fmt.Sprintf("TileEventType(%d)", uint8(t))
	}
}

// Errors returned by configuration and occupancy operations.
var (
	ErrInvalidTileSize   = errors.New("tilegrid: tile dimensions must be finite and positive")
	ErrInvalidGridCount  = errors.New("tilegrid: grid draw count must not be negative")
	ErrIsoAspect         = errors.New("tilegrid: centered isometric tiles need height <= 2*width")
	ErrInvalidProjection = errors.New("tilegrid: unknown projection")
	ErrInvalidAnchor     = errors.New("tilegrid: unknown tile anchor")
	ErrProjectionFixed   = errors.New("tilegrid: projection cannot change after construction")
	ErrDetached          = errors.New("tilegrid: occupant is not mounted on a tile map")
	ErrNoFootprint       = errors.New("tilegrid: occupant has no footprint to derive tiles from")
	ErrFootprintTooLarge = errors.New("tilegrid: occupant footprint covers too many tiles")
)
