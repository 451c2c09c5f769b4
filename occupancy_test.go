package tilegrid

import (
	"slices"
	"testing"
)

func TestOccupancyZeroValue(t *testing.T) {
	var idx OccupancyIndex[string]
	if idx.IsOccupied(TileCoord{0, 0}) {
		t.Error("zero index should be empty")
	}
	idx.Occupy(TileCoord{1, 1}, "a")
	if !idx.IsOccupied(TileCoord{1, 1}) {
		t.Error("Occupy on zero value should work")
	}
}

func TestOccupancyNeverOccupied(t *testing.T) {
	idx := NewOccupancyIndex[string]()
	got := idx.OccupantsAt(TileCoord{-100, 42})
	if got == nil || len(got) != 0 {
		t.Errorf("OccupantsAt = %#v, want empty non-nil slice", got)
	}
	if idx.Release(TileCoord{-100, 42}, "a") {
		t.Error("Release on empty cell should report false")
	}
}

func TestOccupancyInsertionOrderAndDuplicates(t *testing.T) {
	idx := NewOccupancyIndex[string]()
	c := TileCoord{2, 3}
	idx.Occupy(c, "a")
	idx.Occupy(c, "b")
	idx.Occupy(c, "a")
	if got := idx.OccupantsAt(c); !slices.Equal(got, []string{"a", "b", "a"}) {
		t.Errorf("OccupantsAt = %v, want [a b a]", got)
	}
	if idx.Len(c) != 3 {
		t.Errorf("Len = %d, want 3", idx.Len(c))
	}
}

func TestOccupancyReleaseRemovesLast(t *testing.T) {
	idx := NewOccupancyIndex[string]()
	c := TileCoord{0, 0}
	for _, o := range []string{"a", "b", "a", "c"} {
		idx.Occupy(c, o)
	}
	if !idx.Release(c, "a") {
		t.Fatal("Release should report true")
	}
	if got := idx.OccupantsAt(c); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("after Release = %v, want [a b c]", got)
	}
	if idx.Release(c, "z") {
		t.Error("releasing an absent occupant should report false")
	}
}

func TestOccupancyReleaseAll(t *testing.T) {
	idx := NewOccupancyIndex[string]()
	c := TileCoord{0, 0}
	for _, o := range []string{"a", "b", "a"} {
		idx.Occupy(c, o)
	}
	if n := idx.ReleaseAll(c, "a"); n != 2 {
		t.Errorf("ReleaseAll = %d, want 2", n)
	}
	if got := idx.OccupantsAt(c); !slices.Equal(got, []string{"b"}) {
		t.Errorf("after ReleaseAll = %v, want [b]", got)
	}
	if n := idx.ReleaseAll(TileCoord{5, 5}, "a"); n != 0 {
		t.Errorf("ReleaseAll on empty cell = %d, want 0", n)
	}
}

func TestOccupancyEmptyCellsDropped(t *testing.T) {
	idx := NewOccupancyIndex[string]()
	c := TileCoord{1, 1}
	idx.Occupy(c, "a")
	idx.Release(c, "a")
	if idx.CellCount() != 0 {
		t.Errorf("CellCount = %d, want 0", idx.CellCount())
	}
	if idx.IsOccupied(c) {
		t.Error("released cell should be unoccupied")
	}
}

func TestOccupancyOccupantsAtIsCopy(t *testing.T) {
	idx := NewOccupancyIndex[string]()
	c := TileCoord{0, 0}
	idx.Occupy(c, "a")
	got := idx.OccupantsAt(c)
	got[0] = "mutated"
	if idx.OccupantsAt(c)[0] != "a" {
		t.Error("mutating the result must not affect the index")
	}
}

func TestOccupancyRegion(t *testing.T) {
	idx := NewOccupancyIndex[string]()
	idx.OccupyRegion(TileCoord{2, 3}, 2, 2, "objA")

	for _, c := range []TileCoord{{2, 3}, {3, 3}, {2, 4}, {3, 4}} {
		if got := idx.OccupantsAt(c); !slices.Equal(got, []string{"objA"}) {
			t.Errorf("OccupantsAt(%v) = %v, want [objA]", c, got)
		}
	}
	if idx.IsOccupied(TileCoord{4, 4}) {
		t.Error("(4,4) should be empty")
	}
	if idx.CellCount() != 4 {
		t.Errorf("CellCount = %d, want 4", idx.CellCount())
	}

	idx.ReleaseRegion(TileCoord{2, 3}, 2, 2, "objA")
	if idx.CellCount() != 0 {
		t.Errorf("after ReleaseRegion CellCount = %d, want 0", idx.CellCount())
	}
}

func TestOccupancyRegionNonPositive(t *testing.T) {
	idx := NewOccupancyIndex[string]()
	idx.OccupyRegion(TileCoord{0, 0}, 0, 5, "a")
	idx.OccupyRegion(TileCoord{0, 0}, 3, -1, "a")
	if idx.CellCount() != 0 {
		t.Errorf("CellCount = %d, want 0", idx.CellCount())
	}
}

func TestOccupancyRegionRestoresPriorState(t *testing.T) {
	idx := NewOccupancyIndex[string]()
	idx.Occupy(TileCoord{1, 1}, "objA")
	idx.Occupy(TileCoord{1, 1}, "objB")
	idx.Occupy(TileCoord{2, 0}, "objC")
	before := map[TileCoord][]string{}
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			c := TileCoord{x, y}
			before[c] = idx.OccupantsAt(c)
		}
	}

	idx.OccupyRegion(TileCoord{0, 0}, 3, 3, "objA")
	idx.ReleaseRegion(TileCoord{0, 0}, 3, 3, "objA")

	for c, want := range before {
		if got := idx.OccupantsAt(c); !slices.Equal(got, want) {
			t.Errorf("OccupantsAt%v = %v, want %v", c, got, want)
		}
	}
	if idx.CellCount() != 2 {
		t.Errorf("CellCount = %d, want 2", idx.CellCount())
	}
}

func TestOccupancyEvict(t *testing.T) {
	idx := NewOccupancyIndex[string]()
	idx.OccupyRegion(TileCoord{-1, -1}, 3, 1, "a")
	idx.Occupy(TileCoord{0, -1}, "a")
	idx.Occupy(TileCoord{0, -1}, "b")

	if n := idx.Evict("a"); n != 4 {
		t.Errorf("Evict = %d, want 4", n)
	}
	if got := idx.Cells(); !slices.Equal(got, []TileCoord{{0, -1}}) {
		t.Errorf("Cells = %v, want [(0,-1)]", got)
	}
	if n := idx.Evict("a"); n != 0 {
		t.Errorf("second Evict = %d, want 0", n)
	}
}

func TestOccupancyCellsRowMajor(t *testing.T) {
	idx := NewOccupancyIndex[int]()
	for _, c := range []TileCoord{{3, 1}, {-2, 1}, {0, -5}, {1, 0}} {
		idx.Occupy(c, 1)
	}
	want := []TileCoord{{0, -5}, {1, 0}, {-2, 1}, {3, 1}}
	if got := idx.Cells(); !slices.Equal(got, want) {
		t.Errorf("Cells = %v, want %v", got, want)
	}
}

func TestOccupancyTilesOf(t *testing.T) {
	idx := NewOccupancyIndex[string]()
	idx.OccupyRegion(TileCoord{5, 5}, 2, 1, "a")
	idx.Occupy(TileCoord{0, 0}, "b")
	idx.Occupy(TileCoord{5, 5}, "a")
	want := []TileCoord{{5, 5}, {6, 5}}
	if got := idx.TilesOf("a"); !slices.Equal(got, want) {
		t.Errorf("TilesOf = %v, want %v", got, want)
	}
	if got := idx.TilesOf("nobody"); len(got) != 0 {
		t.Errorf("TilesOf(nobody) = %v, want empty", got)
	}
}

func TestOccupancyEachStops(t *testing.T) {
	idx := NewOccupancyIndex[int]()
	idx.OccupyRegion(TileCoord{0, 0}, 4, 4, 1)
	calls := 0
	idx.Each(func(TileCoord, []int) bool {
		calls++
		return calls < 3
	})
	if calls != 3 {
		t.Errorf("Each called fn %d times, want 3", calls)
	}
}

func TestOccupancyClear(t *testing.T) {
	idx := NewOccupancyIndex[int]()
	idx.OccupyRegion(TileCoord{0, 0}, 2, 2, 1)
	idx.Clear()
	if idx.CellCount() != 0 {
		t.Errorf("CellCount = %d, want 0", idx.CellCount())
	}
}
