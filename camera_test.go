package tilegrid

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraDefaults(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if cam.Scrolling() {
		t.Error("new camera should not be scrolling")
	}
}

func TestCameraIdentityViewMatrix(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	sx, sy := cam.WorldToScreen(0, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X = 100
	cam.Y = 50
	sx, sy := cam.WorldToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(100,50) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.Zoom = 2.0
	sx1, _ := cam.WorldToScreen(1, 0)
	sx0, _ := cam.WorldToScreen(0, 0)
	if !approxEqual(sx1-sx0, 2.0, epsilon) {
		t.Errorf("screen distance = %f, want 2.0", sx1-sx0)
	}
}

func TestCameraScreenToWorldInverse(t *testing.T) {
	cam := newCamera(Rect{X: 10, Y: 20, Width: 640, Height: 480})
	cam.X, cam.Y = -35, 120
	cam.Zoom = 1.75
	cam.Rotation = 0.4
	sx, sy := cam.WorldToScreen(12.5, -8)
	wx, wy := cam.ScreenToWorld(sx, sy)
	if !approxEqual(wx, 12.5, 1e-6) || !approxEqual(wy, -8, 1e-6) {
		t.Errorf("round trip = (%f,%f), want (12.5,-8)", wx, wy)
	}
}

func TestCameraFollowSnap(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	target := NewNode("target")
	target.SetPosition(200, 150)
	cam.Follow(target, 0, 0, 1.0)
	cam.update(1.0 / 60)
	if !approxEqual(cam.X, 200, epsilon) || !approxEqual(cam.Y, 150, epsilon) {
		t.Errorf("cam = (%f,%f), want (200,150)", cam.X, cam.Y)
	}
	cam.Unfollow()
	target.SetPosition(0, 0)
	cam.update(1.0 / 60)
	if !approxEqual(cam.X, 200, epsilon) {
		t.Error("unfollowed camera should stay put")
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.ScrollTo(100, -50, 1.0, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("should be scrolling")
	}
	cam.update(0.5)
	if !approxEqual(cam.X, 50, 1e-3) || !approxEqual(cam.Y, -25, 1e-3) {
		t.Errorf("halfway = (%f,%f), want (50,-25)", cam.X, cam.Y)
	}
	cam.update(0.5)
	if cam.Scrolling() {
		t.Error("scroll should finish")
	}
	if !approxEqual(cam.X, 100, 1e-3) || !approxEqual(cam.Y, -50, 1e-3) {
		t.Errorf("end = (%f,%f), want (100,-50)", cam.X, cam.Y)
	}
}

func TestCameraScrollToTile(t *testing.T) {
	m := newTestMap(t, DefaultConfig())
	m.Node().SetPosition(100, 0)
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.ScrollToTile(m, TileCoord{2, 0}, 0.25, ease.Linear)
	cam.update(0.25)
	// Center of tile (2,0) is local (80,0), world (180,0).
	if !approxEqual(cam.X, 180, 1e-3) || !approxEqual(cam.Y, 0, 1e-3) {
		t.Errorf("cam = (%f,%f), want (180,0)", cam.X, cam.Y)
	}
}

func TestScreenToWorldNilCamera(t *testing.T) {
	x, y := screenToWorld(nil, 12, 34)
	if x != 12 || y != 34 {
		t.Errorf("screenToWorld(nil) = (%v,%v), want (12,34)", x, y)
	}
}
