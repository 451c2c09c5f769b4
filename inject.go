package tilegrid

// pointerAction is the button transition carried by an injected event.
type pointerAction uint8

const (
	actionHover pointerAction = iota // position only
	actionPress
	actionRelease
)

// syntheticPointerEvent represents a single injected pointer event.
// Screen coordinates are used and converted to world coordinates via the
// primary camera, identical to real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	action           pointerAction
}

// injectState is the pointer position last delivered from the inject queue.
type injectState struct {
	lastX, lastY float64
	seen         bool
}

// InjectPress queues a button press at the given screen coordinates. The
// event is consumed by the next Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, action: actionPress})
}

// InjectMove queues a pointer move to the given screen coordinates without
// changing the button state.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, action: actionHover})
}

// InjectRelease queues a button release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, action: actionRelease})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// processInjectedInput pops one event from the inject queue and converts it
// to an InputSnapshot in world space. Returns false if the queue is empty, in
// which case the live mouse should be read instead.
func (s *Scene) processInjectedInput(cam *Camera) (InputSnapshot, bool) {
	if len(s.injectQueue) == 0 {
		return InputSnapshot{}, false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	st := &s.injected
	moved := !st.seen || evt.screenX != st.lastX || evt.screenY != st.lastY
	st.lastX, st.lastY, st.seen = evt.screenX, evt.screenY, true

	wx, wy := screenToWorld(cam, evt.screenX, evt.screenY)
	return InputSnapshot{
		Pointer:  Vec2{X: wx, Y: wy},
		Moved:    moved,
		Pressed:  evt.action == actionPress,
		Released: evt.action == actionRelease,
	}, true
}
