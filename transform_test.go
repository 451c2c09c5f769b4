package tilegrid

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewNode("test")
	assertMatrix(t, "identity", computeLocalTransform(n), identityTransform)
}

func TestLocalTransformTranslation(t *testing.T) {
	n := NewNode("test")
	n.SetPosition(10, 20)
	assertMatrix(t, "translation", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScale(t *testing.T) {
	n := NewNode("test")
	n.SetScale(2, 3)
	assertMatrix(t, "scale", computeLocalTransform(n), [6]float64{2, 0, 0, 3, 0, 0})
}

func TestLocalTransformRotation(t *testing.T) {
	n := NewNode("test")
	n.SetRotation(math.Pi / 2)
	x, y := transformPoint(computeLocalTransform(n), 1, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 1)
}

func TestLocalTransformPivot(t *testing.T) {
	n := NewNode("test")
	n.SetPivot(5, 5)
	n.SetScale(2, 2)
	n.SetPosition(100, 100)
	// The pivot lands on the position.
	x, y := transformPoint(computeLocalTransform(n), 5, 5)
	assertNear(t, "x", x, 100)
	assertNear(t, "y", y, 100)
}

// --- Affine helpers ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 7, 8}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 7, 8}
	assertMatrix(t, "m*inv", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

// --- World transform ---

func TestWorldTransformNested(t *testing.T) {
	parent := NewNode("parent")
	parent.SetPosition(100, 50)
	parent.SetScale(2, 2)
	child := NewNode("child")
	child.SetPosition(10, 10)
	parent.AddChild(child)

	x, y := child.LocalToWorld(0, 0)
	assertNear(t, "x", x, 120)
	assertNear(t, "y", y, 70)

	lx, ly := child.WorldToLocal(120, 70)
	assertNear(t, "lx", lx, 0)
	assertNear(t, "ly", ly, 0)
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	n := NewNode("n")
	n.SetPosition(-30, 12)
	n.SetRotation(0.7)
	n.SetScale(1.5, 0.5)
	wx, wy := n.LocalToWorld(3, -4)
	lx, ly := n.WorldToLocal(wx, wy)
	assertNear(t, "lx", lx, 3)
	assertNear(t, "ly", ly, -4)
}

// --- Bounds ---

func TestBoundsUntransformed(t *testing.T) {
	n := NewNode("n")
	n.SetPosition(10, 20)
	n.SetSize(30, 40)
	b := n.Bounds()
	if b != (Rect{X: 10, Y: 20, Width: 30, Height: 40}) {
		t.Errorf("Bounds = %+v", b)
	}
}

func TestBoundsRotated(t *testing.T) {
	n := NewNode("n")
	n.SetSize(10, 20)
	n.SetRotation(math.Pi / 2)
	b := n.Bounds()
	assertNear(t, "X", b.X, -20)
	assertNear(t, "Y", b.Y, 0)
	assertNear(t, "Width", b.Width, 20)
	assertNear(t, "Height", b.Height, 10)
}

func TestBoundsPivotCentered(t *testing.T) {
	n := NewNode("n")
	n.SetSize(40, 40)
	n.SetPivot(20, 20)
	n.SetPosition(0, 0)
	b := n.Bounds()
	assertNear(t, "X", b.X, -20)
	assertNear(t, "Y", b.Y, -20)
}
