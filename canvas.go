package tilegrid

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas receives the debug-overlay primitives a TileMap draws. Points are in
// the map's local space; implementations apply their own transform to reach
// the target surface. Implementations must not retain the points slice.
type Canvas interface {
	StrokeLine(p0, p1 Vec2, clr Color)
	FillPolygon(points []Vec2, clr Color)
	FillRect(r Rect, clr Color)
}

// ImageCanvas draws primitives onto an *ebiten.Image through an affine
// transform from map-local space to image pixels.
type ImageCanvas struct {
	dst       *ebiten.Image
	transform [6]float64

	// LineWidth is the stroke width in pixels. Default 1.
	LineWidth float32
	// AntiAlias enables anti-aliased lines and fills.
	AntiAlias bool

	verts []ebiten.Vertex
	inds  []uint16
	pts   []Vec2
}

// NewImageCanvas creates a canvas drawing onto dst. transform maps map-local
// coordinates to dst pixels, laid out as [a, b, c, d, tx, ty].
func NewImageCanvas(dst *ebiten.Image, transform [6]float64) *ImageCanvas {
	return &ImageCanvas{dst: dst, transform: transform, LineWidth: 1}
}

// SetTransform replaces the local-to-pixel transform.
func (c *ImageCanvas) SetTransform(m [6]float64) {
	c.transform = m
}

// StrokeLine draws a line segment from p0 to p1.
func (c *ImageCanvas) StrokeLine(p0, p1 Vec2, clr Color) {
	x0, y0 := transformPoint(c.transform, p0.X, p0.Y)
	x1, y1 := transformPoint(c.transform, p1.X, p1.Y)
	vector.StrokeLine(c.dst, float32(x0), float32(y0), float32(x1), float32(y1),
		c.LineWidth, clr.toRGBA(), c.AntiAlias)
}

// FillRect fills an axis-aligned local rectangle. Under a rotated transform
// the result is a parallelogram, so it goes through FillPolygon.
func (c *ImageCanvas) FillRect(r Rect, clr Color) {
	c.pts = append(c.pts[:0],
		Vec2{X: r.X, Y: r.Y},
		Vec2{X: r.X + r.Width, Y: r.Y},
		Vec2{X: r.X + r.Width, Y: r.Y + r.Height},
		Vec2{X: r.X, Y: r.Y + r.Height},
	)
	c.FillPolygon(c.pts, clr)
}

// FillPolygon fills a convex polygon using fan triangulation. Polygons with
// fewer than three points draw nothing.
func (c *ImageCanvas) FillPolygon(points []Vec2, clr Color) {
	n := len(points)
	if n < 3 {
		return
	}

	// Premultiplied vertex color.
	a := float32(clamp01(clr.A))
	r := float32(clamp01(clr.R)) * a
	g := float32(clamp01(clr.G)) * a
	b := float32(clamp01(clr.B)) * a

	c.verts = c.verts[:0]
	for _, p := range points {
		x, y := transformPoint(c.transform, p.X, p.Y)
		c.verts = append(c.verts, ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			// Untextured: sample the center of the white pixel.
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}

	// Fan triangulation: vertex 0 is the hub.
	c.inds = c.inds[:0]
	for i := 0; i < n-2; i++ {
		c.inds = append(c.inds, 0, uint16(i+1), uint16(i+2))
	}

	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      c.AntiAlias,
	}
	c.dst.DrawTriangles(c.verts, c.inds, whitePixel(), op)
}

var (
	whitePixelOnce sync.Once
	whitePixelImg  *ebiten.Image
)

// whitePixel returns a lazily created 1x1 white image used as the source for
// solid fills.
func whitePixel() *ebiten.Image {
	whitePixelOnce.Do(func() {
		whitePixelImg = ebiten.NewImage(1, 1)
		whitePixelImg.Fill(ColorWhite.toRGBA())
	})
	return whitePixelImg
}
