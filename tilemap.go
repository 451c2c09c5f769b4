package tilegrid

import "fmt"

// PointerTileState is the pointer position resolved against a tile map for
// the current tick.
type PointerTileState struct {
	Tile  TileCoord // tile under the pointer
	Local Vec2      // pointer in map-local space
	Valid bool      // false until the first tick
}

// TileMap is a scene graph node that maps pointer positions to tiles and
// tracks which mounted nodes occupy which tiles. Nodes added with AddChild
// are granted an OccupancyHandle; removing them (or disposing them) evicts
// them from every tile.
//
// Call Tick once per frame before Draw. All methods must be called from the
// goroutine that runs the frame loop.
type TileMap struct {
	node *Node // container node in the scene graph

	cfg Config
	tf  Transformer

	index   *OccupancyIndex[*Node]
	handles map[*Node]*OccupancyHandle
	order   []*OccupancyHandle // mount order, for deterministic tracking

	pointer PointerTileState

	onTileMove func(x, y int)
	onTileDown func(x, y int)
	onTileUp   func(x, y int)

	cellBuf [4]Vec2
}

// NewTileMap creates a tile map node from cfg. Zero colors take their
// defaults. Returns an error if the tile size, grid count, projection or
// anchor is invalid.
func NewTileMap(cfg Config) (*TileMap, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	name := cfg.Name
	if name == "" {
		name = "tilemap"
	}
	m := &TileMap{
		node:    NewNode(name),
		cfg:     cfg,
		tf:      cfg.transformer(),
		index:   NewOccupancyIndex[*Node](),
		handles: make(map[*Node]*OccupancyHandle),
	}
	m.node.onChildMounted = m.childMounted
	m.node.onChildUnmounted = m.childUnmounted
	m.node.onTick = m.tick
	m.node.onDraw = m.Draw
	return m, nil
}

// MustNewTileMap is like NewTileMap but panics on an invalid configuration.
func MustNewTileMap(cfg Config) *TileMap {
	m, err := NewTileMap(cfg)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// Node returns the underlying scene graph node for this tile map.
func (m *TileMap) Node() *Node {
	return m.node
}

// AddChild mounts child on the map.
func (m *TileMap) AddChild(child *Node) {
	m.node.AddChild(child)
}

// RemoveChild unmounts child, evicting it from every tile.
func (m *TileMap) RemoveChild(child *Node) {
	m.node.RemoveChild(child)
}

// --- Configuration accessors ---

// Config returns a copy of the current configuration.
func (m *TileMap) Config() Config {
	return m.cfg
}

// Configure replaces the whole configuration. The projection cannot change.
// On error the map is left unchanged.
func (m *TileMap) Configure(cfg Config) error {
	cfg = cfg.withDefaults()
	if cfg.Projection != m.cfg.Projection {
		return fmt.Errorf("tilegrid: %v -> %v: %w", m.cfg.Projection, cfg.Projection, ErrProjectionFixed)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Name != "" {
		m.node.Name = cfg.Name
	}
	m.cfg = cfg
	m.tf = cfg.transformer()
	return nil
}

// update applies a single-field change through Configure.
func (m *TileMap) update(fn func(*Config)) error {
	cfg := m.cfg
	fn(&cfg)
	return m.Configure(cfg)
}

// Projection returns the map's fixed projection.
func (m *TileMap) Projection() Projection { return m.cfg.Projection }

// Anchor returns where tile (0,0) sits relative to the origin.
func (m *TileMap) Anchor() TileAnchor { return m.cfg.Anchor }

// SetAnchor changes the tile anchor.
func (m *TileMap) SetAnchor(a TileAnchor) error {
	return m.update(func(c *Config) { c.Anchor = a })
}

// TileWidth returns the tile width in map-local units.
func (m *TileMap) TileWidth() float64 { return m.cfg.TileWidth }

// SetTileWidth changes the tile width. Non-positive widths are rejected.
func (m *TileMap) SetTileWidth(w float64) error {
	return m.update(func(c *Config) { c.TileWidth = w })
}

// TileHeight returns the tile height in map-local units.
func (m *TileMap) TileHeight() float64 { return m.cfg.TileHeight }

// SetTileHeight changes the tile height. Non-positive heights are rejected.
func (m *TileMap) SetTileHeight(h float64) error {
	return m.update(func(c *Config) { c.TileHeight = h })
}

// GridDrawCount returns the number of grid cells drawn per axis.
func (m *TileMap) GridDrawCount() int { return m.cfg.GridDrawCount }

// SetGridDrawCount sets the number of grid cells drawn per axis; 0 disables
// the grid overlay.
func (m *TileMap) SetGridDrawCount(n int) error {
	return m.update(func(c *Config) { c.GridDrawCount = n })
}

// HighlightOccupied reports whether occupied cells are highlighted.
func (m *TileMap) HighlightOccupied() bool { return m.cfg.HighlightOccupied }

// SetHighlightOccupied enables or disables the occupied-cell overlay.
func (m *TileMap) SetHighlightOccupied(on bool) { m.cfg.HighlightOccupied = on }

// DrawPointer reports whether the cell under the pointer is highlighted.
func (m *TileMap) DrawPointer() bool { return m.cfg.DrawPointer }

// SetDrawPointer enables or disables the pointer-tile overlay.
func (m *TileMap) SetDrawPointer(on bool) { m.cfg.DrawPointer = on }

// Transformer returns the map's current coordinate transformer.
func (m *TileMap) Transformer() Transformer { return m.tf }

// --- Mouse-tile callbacks ---

// SetOnTileMove sets the callback fired on ticks where the pointer moved.
// It replaces any previous callback; nil clears it.
func (m *TileMap) SetOnTileMove(fn func(x, y int)) { m.onTileMove = fn }

// OnTileMove returns the pointer-move callback, or nil.
func (m *TileMap) OnTileMove() func(x, y int) { return m.onTileMove }

// SetOnTileDown sets the callback fired on ticks where the pointer was pressed.
func (m *TileMap) SetOnTileDown(fn func(x, y int)) { m.onTileDown = fn }

// OnTileDown returns the pointer-down callback, or nil.
func (m *TileMap) OnTileDown() func(x, y int) { return m.onTileDown }

// SetOnTileUp sets the callback fired on ticks where the pointer was released.
func (m *TileMap) SetOnTileUp(fn func(x, y int)) { m.onTileUp = fn }

// OnTileUp returns the pointer-up callback, or nil.
func (m *TileMap) OnTileUp() func(x, y int) { return m.onTileUp }

// --- Coordinates ---

// PointerToTile returns the tile under a map-local point.
func (m *TileMap) PointerToTile(local Vec2) TileCoord {
	return m.tf.PointerToTile(local)
}

// TileToWorld returns the map-local position of tile c.
func (m *TileMap) TileToWorld(c TileCoord) Vec2 {
	return m.tf.TileToWorld(c)
}

// MouseToTile returns the tile under a world-space point, taking the map
// node's transform into account. Unlike PointerTile it is not cached.
func (m *TileMap) MouseToTile(world Vec2) TileCoord {
	lx, ly := m.node.WorldToLocal(world.X, world.Y)
	return m.tf.PointerToTile(Vec2{X: lx, Y: ly})
}

// PointerTile returns the pointer state computed by the most recent Tick.
func (m *TileMap) PointerTile() PointerTileState {
	return m.pointer
}

// PointerTileWorld returns the map-local position of the tile under the
// pointer (TileToWorld of PointerTile().Tile).
func (m *TileMap) PointerTileWorld() Vec2 {
	return m.tf.TileToWorld(m.pointer.Tile)
}

// --- Occupancy ---

// Index returns the map's occupancy index. Prefer OccupancyHandle methods for
// mounted nodes; the index is exposed for queries and iteration.
func (m *TileMap) Index() *OccupancyIndex[*Node] {
	return m.index
}

// OccupantsAt returns the nodes occupying c in insertion order.
func (m *TileMap) OccupantsAt(c TileCoord) []*Node {
	return m.index.OccupantsAt(c)
}

// IsOccupied reports whether any node occupies c.
func (m *TileMap) IsOccupied(c TileCoord) bool {
	return m.index.IsOccupied(c)
}

// --- Tick ---

// Tick resolves the pointer to a tile once for this frame, refreshes tracked
// occupants, and fires the mouse-tile callbacks whose input flags are set.
func (m *TileMap) Tick(in InputSnapshot) {
	m.tick(nil, in)
}

func (m *TileMap) tick(s *Scene, in InputSnapshot) {
	for _, h := range m.order {
		if h.tracking {
			h.retrack()
		}
	}

	lx, ly := m.node.WorldToLocal(in.Pointer.X, in.Pointer.Y)
	local := Vec2{X: lx, Y: ly}
	m.pointer = PointerTileState{
		Tile:  m.tf.PointerToTile(local),
		Local: local,
		Valid: true,
	}

	if in.Moved {
		m.dispatch(s, TileEventMove, m.onTileMove, in.Pointer)
	}
	if in.Pressed {
		m.dispatch(s, TileEventDown, m.onTileDown, in.Pointer)
	}
	if in.Released {
		m.dispatch(s, TileEventUp, m.onTileUp, in.Pointer)
	}
}

func (m *TileMap) dispatch(s *Scene, typ TileEventType, fn func(x, y int), world Vec2) {
	t := m.pointer.Tile
	if fn != nil {
		fn(t.X, t.Y)
	}
	if s != nil && s.store != nil {
		s.store.EmitTileEvent(TileEvent{
			Type:    typ,
			MapID:   m.node.ID,
			MapName: m.node.Name,
			Tile:    t,
			Local:   m.pointer.Local,
			World:   world,
		})
	}
}

// --- Mount hooks ---

func (m *TileMap) childMounted(child *Node) {
	m.register(child)
}

func (m *TileMap) childUnmounted(child *Node) {
	if h, ok := m.handles[child]; ok {
		h.detach()
		delete(m.handles, child)
		for i, oh := range m.order {
			if oh == h {
				m.order = removeAt(m.order, i)
				break
			}
		}
	}
	m.index.Evict(child)
}

func (m *TileMap) register(n *Node) *OccupancyHandle {
	if h, ok := m.handles[n]; ok {
		return h
	}
	h := &OccupancyHandle{m: m, node: n}
	m.handles[n] = h
	m.order = append(m.order, h)
	return h
}

// RegisterOccupant mounts n on the map if it is not already a child, and
// returns its occupancy handle.
func (m *TileMap) RegisterOccupant(n *Node) *OccupancyHandle {
	if n.Parent != m.node {
		m.node.AddChild(n)
	}
	return m.register(n)
}

// Handle returns the occupancy handle of a mounted child.
func (m *TileMap) Handle(n *Node) (*OccupancyHandle, bool) {
	h, ok := m.handles[n]
	return h, ok
}

// --- Debug overlays ---

// DrawStats counts the primitives issued by one Draw call.
type DrawStats struct {
	Lines         int
	Fills         int
	OccupiedCells int
}

// Draw issues the enabled debug overlays to c in map-local space: grid lines,
// then occupied cells, then the pointer cell. Nothing is drawn when the map
// node is hidden.
func (m *TileMap) Draw(c Canvas) DrawStats {
	var stats DrawStats
	if !m.node.Visible {
		return stats
	}

	if n := m.cfg.GridDrawCount; n > 0 {
		fn := float64(n)
		for i := 0; i <= n; i++ {
			fi := float64(i)
			c.StrokeLine(m.tf.CellToLocal(Vec2{X: 0, Y: fi}), m.tf.CellToLocal(Vec2{X: fn, Y: fi}), m.cfg.GridColor)
			c.StrokeLine(m.tf.CellToLocal(Vec2{X: fi, Y: 0}), m.tf.CellToLocal(Vec2{X: fi, Y: fn}), m.cfg.GridColor)
			stats.Lines += 2
		}
	}

	if m.cfg.HighlightOccupied {
		m.index.Each(func(tc TileCoord, _ []*Node) bool {
			m.fillCell(c, tc, m.cfg.OccupiedColor)
			stats.OccupiedCells++
			stats.Fills++
			return true
		})
	}

	if m.cfg.DrawPointer && m.pointer.Valid {
		m.fillCell(c, m.pointer.Tile, m.cfg.PointerColor)
		stats.Fills++
	}
	return stats
}

// fillCell fills the outline of tile tc: a rectangle in orthogonal mode, a
// diamond in isometric mode.
func (m *TileMap) fillCell(c Canvas, tc TileCoord, clr Color) {
	m.cellBuf = m.tf.TileCorners(tc)
	if m.cfg.Projection == ProjectionIsometric {
		c.FillPolygon(m.cellBuf[:], clr)
		return
	}
	tl, br := m.cellBuf[0], m.cellBuf[2]
	c.FillRect(Rect{X: tl.X, Y: tl.Y, Width: br.X - tl.X, Height: br.Y - tl.Y}, clr)
}
