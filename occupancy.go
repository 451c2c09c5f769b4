package tilegrid

import "sort"

// OccupancyIndex is a sparse map from tile coordinates to the ordered list of
// occupants in each cell ("map stack"). Occupants are kept in insertion order
// and duplicates are allowed: occupying the same cell twice stores two
// entries. A coordinate that was never occupied has zero occupants.
//
// The zero value is ready to use. OccupancyIndex is not safe for concurrent
// use; a tile map mutates it only from its own tick and mount hooks.
type OccupancyIndex[T comparable] struct {
	cells map[TileCoord][]T
}

// NewOccupancyIndex creates an empty index.
func NewOccupancyIndex[T comparable]() *OccupancyIndex[T] {
	return &OccupancyIndex[T]{cells: make(map[TileCoord][]T)}
}

// Occupy appends o to the cell at c, creating the cell if needed.
func (idx *OccupancyIndex[T]) Occupy(c TileCoord, o T) {
	if idx.cells == nil {
		idx.cells = make(map[TileCoord][]T)
	}
	idx.cells[c] = append(idx.cells[c], o)
}

// Release removes the last (most recent) entry of o from the cell at c, so
// it undoes the latest Occupy of o there exactly. It reports whether an
// entry was removed. Releasing from an empty cell is a no-op. A cell left
// empty is deleted.
func (idx *OccupancyIndex[T]) Release(c TileCoord, o T) bool {
	list := idx.cells[c]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i] == o {
			idx.store(c, removeAt(list, i))
			return true
		}
	}
	return false
}

// ReleaseAll removes every entry of o from the cell at c and returns how many
// were removed.
func (idx *OccupancyIndex[T]) ReleaseAll(c TileCoord, o T) int {
	list, ok := idx.cells[c]
	if !ok {
		return 0
	}
	kept, removed := filterOut(list, o)
	if removed > 0 {
		idx.store(c, kept)
	}
	return removed
}

// OccupantsAt returns a copy of the occupants at c in insertion order. The
// result is empty, never an error, for cells that were never occupied.
func (idx *OccupancyIndex[T]) OccupantsAt(c TileCoord) []T {
	list := idx.cells[c]
	out := make([]T, len(list))
	copy(out, list)
	return out
}

// Len returns the number of entries at c.
func (idx *OccupancyIndex[T]) Len(c TileCoord) int {
	return len(idx.cells[c])
}

// IsOccupied reports whether c holds at least one entry.
func (idx *OccupancyIndex[T]) IsOccupied(c TileCoord) bool {
	return len(idx.cells[c]) > 0
}

// OccupyRegion occupies every cell of the w x h rectangle anchored at origin,
// iterating x then y. Non-positive sizes occupy nothing.
func (idx *OccupancyIndex[T]) OccupyRegion(origin TileCoord, w, h int, o T) {
	forEachInRegion(origin, w, h, func(c TileCoord) {
		idx.Occupy(c, o)
	})
}

// ReleaseRegion releases one entry of o from every cell of the w x h
// rectangle anchored at origin. It undoes a matching OccupyRegion exactly.
func (idx *OccupancyIndex[T]) ReleaseRegion(origin TileCoord, w, h int, o T) {
	forEachInRegion(origin, w, h, func(c TileCoord) {
		idx.Release(c, o)
	})
}

// Evict removes o from every cell and returns the number of entries removed.
func (idx *OccupancyIndex[T]) Evict(o T) int {
	total := 0
	for c, list := range idx.cells {
		kept, removed := filterOut(list, o)
		if removed > 0 {
			idx.store(c, kept)
			total += removed
		}
	}
	return total
}

// TilesOf returns, in row-major order, every cell that holds o.
func (idx *OccupancyIndex[T]) TilesOf(o T) []TileCoord {
	var out []TileCoord
	for c, list := range idx.cells {
		for _, v := range list {
			if v == o {
				out = append(out, c)
				break
			}
		}
	}
	sortCoords(out)
	return out
}

// Each calls fn for every non-empty cell until fn returns false. Iteration
// order is unspecified. The slice passed to fn MUST NOT be retained or
// mutated, and fn must not mutate the index.
func (idx *OccupancyIndex[T]) Each(fn func(c TileCoord, occupants []T) bool) {
	for c, list := range idx.cells {
		if len(list) == 0 {
			continue
		}
		if !fn(c, list) {
			return
		}
	}
}

// Cells returns every non-empty cell in row-major order (y, then x).
func (idx *OccupancyIndex[T]) Cells() []TileCoord {
	out := make([]TileCoord, 0, len(idx.cells))
	idx.Each(func(c TileCoord, _ []T) bool {
		out = append(out, c)
		return true
	})
	sortCoords(out)
	return out
}

// CellCount returns the number of non-empty cells.
func (idx *OccupancyIndex[T]) CellCount() int {
	return len(idx.cells)
}

// Clear removes every entry.
func (idx *OccupancyIndex[T]) Clear() {
	clear(idx.cells)
}

// store writes list back to c, deleting the cell when it is empty.
func (idx *OccupancyIndex[T]) store(c TileCoord, list []T) {
	if len(list) == 0 {
		delete(idx.cells, c)
		return
	}
	idx.cells[c] = list
}

// removeAt removes element i, preserving order. Uses copy+zero to avoid
// retaining a dangling reference in the backing array.
func removeAt[T any](s []T, i int) []T {
	var zero T
	copy(s[i:], s[i+1:])
	s[len(s)-1] = zero
	return s[:len(s)-1]
}

// filterOut removes every element equal to o in place.
func filterOut[T comparable](s []T, o T) ([]T, int) {
	var zero T
	n := 0
	for _, v := range s {
		if v != o {
			s[n] = v
			n++
		}
	}
	removed := len(s) - n
	for i := n; i < len(s); i++ {
		s[i] = zero
	}
	return s[:n], removed
}

func forEachInRegion(origin TileCoord, w, h int, fn func(TileCoord)) {
	for xi := 0; xi < w; xi++ {
		for yi := 0; yi < h; yi++ {
			fn(TileCoord{origin.X + xi, origin.Y + yi})
		}
	}
}

func sortCoords(cs []TileCoord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Y != cs[j].Y {
			return cs[i].Y < cs[j].Y
		}
		return cs[i].X < cs[j].X
	})
}
