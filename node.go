package tilegrid

// nodeIDCounter is a plain counter; tilegrid is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a scene graph element. Tile maps are nodes, and so is everything
// mounted on them. Child positions are relative to the parent.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Width and Height are the node's footprint in local units, before
	// scale and rotation. Tile maps derive the tiles a node is over from it.
	Width, Height float64

	Visible bool

	// Metadata
	UserData any

	// Hooks installed by the owner of a node (a TileMap installs them on its
	// own node). Nil by default.
	onChildMounted   func(child *Node)
	onChildUnmounted func(child *Node)
	onTick           func(s *Scene, in InputSnapshot)
	onDraw           func(c Canvas) DrawStats

	disposed bool
}

// NewNode creates an empty node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		ScaleX:  1,
		ScaleY:  1,
		Visible: true,
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children and fires this node's mount
// hook. If child already has a parent, it is unmounted from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("tilegrid: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("tilegrid: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
	if n.onChildMounted != nil {
		n.onChildMounted(child)
	}
}

// RemoveChild detaches child from this node and fires this node's unmount hook.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("tilegrid: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	if n.onChildUnmounted != nil {
		n.onChildUnmounted(child)
	}
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node, firing the unmount
// hook for each. Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for len(n.children) > 0 {
		n.RemoveChild(n.children[len(n.children)-1])
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	// Detach first so the owner's unmount hook sees every child.
	children := append([]*Node(nil), n.children...)
	n.RemoveChildren()
	for _, child := range children {
		child.dispose()
	}
	n.disposed = true
	n.ID = 0
	n.children = nil
	n.UserData = nil
	n.onChildMounted = nil
	n.onChildUnmounted = nil
	n.onTick = nil
	n.onDraw = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = removeAt(n.children, i)
			return
		}
	}
}
