package tilegrid

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, tile pointer events are forwarded to the ECS.
type EntityStore interface {
	EmitTileEvent(event TileEvent)
}

// TileEvent is a pointer event resolved to a tile by a TileMap.
type TileEvent struct {
	Type    TileEventType
	MapID   uint32
	MapName string
	Tile    TileCoord
	Local   Vec2 // pointer in map-local space
	World   Vec2 // pointer in world space
}

// Scene owns the node tree, cameras and input state. It ticks every TileMap
// in the tree once per Update and draws their overlays in Draw.
type Scene struct {
	root    *Node
	store   EntityStore
	debug   bool
	cameras []*Camera
	input   pointerReader

	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots" when empty.
	ScreenshotDir string

	injectQueue     []syntheticPointerEvent
	injected        injectState
	testRunner      *TestRunner
	screenshotQueue []string

	stats debugStats
}

// NewScene creates a new scene with a pre-created root node.
func NewScene() *Scene {
	return &Scene{
		root:  NewNode("root"),
		input: pointerReader{button: ebiten.MouseButtonLeft},
	}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update advances the scene one frame. The pointer comes from the inject
// queue when it holds events, otherwise from the live mouse, and is converted
// to world space through the primary camera.
func (s *Scene) Update() {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.advanceCameras()
	cam := s.primaryCamera()
	in, ok := s.processInjectedInput(cam)
	if !ok {
		in = s.input.read(cam)
	}
	s.tick(in)
}

// UpdateWithInput advances the scene one frame against an explicit input
// snapshot instead of the live mouse. Pointer must be in world space.
func (s *Scene) UpdateWithInput(in InputSnapshot) {
	s.advanceCameras()
	s.tick(in)
}

func (s *Scene) advanceCameras() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	for _, cam := range s.cameras {
		cam.update(dt)
	}
}

func (s *Scene) tick(in InputSnapshot) {
	var t0 time.Time
	if s.debug {
		s.stats = debugStats{}
		t0 = time.Now()
	}

	s.tickTree(s.root, in)

	if s.debug {
		s.stats.tickTime = time.Since(t0)
	}
}

// tickTree ticks n and its subtree in pre-order. Children are snapshotted so
// callbacks may mount or unmount nodes.
func (s *Scene) tickTree(n *Node, in InputSnapshot) {
	if n.onTick != nil {
		n.onTick(s, in)
		if s.debug {
			s.stats.maps++
		}
	}
	if len(n.children) == 0 {
		return
	}
	children := append([]*Node(nil), n.children...)
	for _, child := range children {
		if child.Parent == n {
			s.tickTree(child, in)
		}
	}
}

// Draw renders every visible tile map's overlays to screen, once per camera.
// With no cameras the world is drawn untransformed.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if len(s.cameras) == 0 {
		s.drawWithView(NewImageCanvas(screen, identityTransform), identityTransform)
	}
	for _, cam := range s.cameras {
		vp := cam.Viewport
		viewportImg := screen.SubImage(image.Rect(
			int(vp.X), int(vp.Y),
			int(vp.X+vp.Width), int(vp.Y+vp.Height),
		)).(*ebiten.Image)
		s.drawWithView(NewImageCanvas(viewportImg, identityTransform), cam.viewMatrix())
	}

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.debugLog(s.stats)
	}
	s.flushScreenshots(screen)
}

func (s *Scene) drawWithView(canvas *ImageCanvas, view [6]float64) {
	s.drawTree(s.root, canvas, view, identityTransform)
}

func (s *Scene) drawTree(n *Node, canvas *ImageCanvas, view, parent [6]float64) {
	if !n.Visible {
		return
	}
	world := multiplyAffine(parent, computeLocalTransform(n))
	if n.onDraw != nil {
		canvas.SetTransform(multiplyAffine(view, world))
		st := n.onDraw(canvas)
		s.stats.lines += st.Lines
		s.stats.fills += st.Fills
		s.stats.occupiedCells += st.OccupiedCells
	}
	for _, child := range n.children {
		s.drawTree(child, canvas, view, world)
	}
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
// The first camera converts the mouse cursor to world space.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = removeAt(s.cameras, i)
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

func (s *Scene) primaryCamera() *Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[0]
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are printed, and per-frame tick/draw
// stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
