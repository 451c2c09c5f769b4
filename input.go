package tilegrid

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSnapshot is the per-frame pointer state a TileMap ticks against.
// Pointer is in world space (after the camera transform).
type InputSnapshot struct {
	Pointer  Vec2
	Moved    bool // pointer position changed since the previous frame
	Pressed  bool // primary button went down this frame
	Released bool // primary button went up this frame
}

// pointerReader builds InputSnapshots from the live Ebitengine mouse state.
type pointerReader struct {
	lastX, lastY int
	seen         bool
	button       ebiten.MouseButton
}

// read samples the cursor and converts it to world space with cam (identity
// when cam is nil).
func (r *pointerReader) read(cam *Camera) InputSnapshot {
	mx, my := ebiten.CursorPosition()
	moved := r.seen && (mx != r.lastX || my != r.lastY)
	r.lastX, r.lastY, r.seen = mx, my, true

	wx, wy := screenToWorld(cam, float64(mx), float64(my))
	return InputSnapshot{
		Pointer:  Vec2{X: wx, Y: wy},
		Moved:    moved,
		Pressed:  inpututil.IsMouseButtonJustPressed(r.button),
		Released: inpututil.IsMouseButtonJustReleased(r.button),
	}
}

// screenToWorld converts screen coordinates to world coordinates using the primary camera.
func screenToWorld(cam *Camera, sx, sy float64) (float64, float64) {
	if cam != nil {
		return cam.ScreenToWorld(sx, sy)
	}
	return sx, sy
}
