package engine

import (
	"testing"
	"time"
)

func newTestBoard() *Board {
	return NewBoard(testLayout())
}

func place(b *Board, color Color, cells ...Cell) []Handle {
	hs := make([]Handle, 0, len(cells))
	for _, c := range cells {
		hs = append(hs, b.Insert(c, color))
	}
	return hs
}

func cellsOf(b *Board, hs []Handle) map[Cell]bool {
	out := make(map[Cell]bool, len(hs))
	for _, h := range hs {
		out[b.Sphere(h).Cell] = true
	}
	return out
}

func TestInsertOccupiedPanics(t *testing.T) {
	b := newTestBoard()
	b.Insert(Cell{0, 0}, ColorRed)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on occupied cell")
		}
	}()
	b.Insert(Cell{0, 0}, ColorBlue)
}

func TestInsertOutOfBoundsPanics(t *testing.T) {
	b := newTestBoard()

	defer func() {
		if recover() == nil {
			t.Error("Expected panic outside the board")
		}
	}()
	b.Insert(Cell{0, b.Layout().Cols}, ColorBlue)
}

func TestConnectedSameColor(t *testing.T) {
	b := newTestBoard()
	reds := place(b, ColorRed, Cell{0, 0}, Cell{0, 1}, Cell{1, 0})
	place(b, ColorGreen, Cell{0, 2})
	far := b.Insert(Cell{0, 3}, ColorRed)

	got := b.ConnectedSameColor(reds[0])
	if len(got) != 3 {
		t.Fatalf("Expected cluster of 3, got %d", len(got))
	}
	if got[0] != reds[0] {
		t.Error("Cluster should start with the seed sphere")
	}

	members := cellsOf(b, got)
	if members[b.Sphere(far).Cell] {
		t.Error("Cluster leaked past the green separator")
	}

	// Purity and maximality.
	for _, h := range got {
		if b.Sphere(h).Color != ColorRed {
			t.Errorf("Cluster member %v is %v", b.Sphere(h).Cell, b.Sphere(h).Color)
		}
		for _, n := range b.NeighborsOf(h) {
			if b.Sphere(n).Color == ColorRed && !members[b.Sphere(n).Cell] {
				t.Errorf("Red neighbor %v missing from cluster", b.Sphere(n).Cell)
			}
		}
	}
}

func TestConnectedSameColorFollowsParity(t *testing.T) {
	b := newTestBoard()
	// (2,2) is on an even row, so its upper neighbors are (1,1) and (1,2).
	seed := b.Insert(Cell{2, 2}, ColorBlue)
	place(b, ColorBlue, Cell{1, 1})
	place(b, ColorBlue, Cell{1, 3})

	got := cellsOf(b, b.ConnectedSameColor(seed))
	if !got[Cell{1, 1}] {
		t.Error("Expected (1,1) in cluster")
	}
	if got[Cell{1, 3}] {
		t.Error("(1,3) is not adjacent to (2,2)")
	}
}

func TestFindOrphans(t *testing.T) {
	b := newTestBoard()
	chain := place(b, ColorRed, Cell{0, 0}, Cell{1, 0}, Cell{2, 0})
	loose := b.Insert(Cell{4, 6}, ColorBlue)

	orphans := b.FindOrphans()
	if len(orphans) != 1 || orphans[0] != loose {
		t.Fatalf("Expected only the loose sphere orphaned, got %v", orphans)
	}

	b.Fade(chain[1], 0)
	orphans = b.FindOrphans()
	got := cellsOf(b, orphans)
	if len(orphans) != 2 || !got[Cell{2, 0}] || !got[Cell{4, 6}] {
		t.Errorf("Expected (2,0) and (4,6) orphaned, got %v", got)
	}
}

func TestShiftDown(t *testing.T) {
	b := newTestBoard()
	place(b, ColorRed, Cell{0, 0}, Cell{0, 1})
	place(b, ColorBlue, Cell{1, 3})

	b.ShiftDown()

	if b.SettledCount() != 3 {
		t.Fatalf("Expected 3 settled, got %d", b.SettledCount())
	}
	for _, c := range []Cell{{1, 0}, {1, 1}, {2, 3}} {
		h, ok := b.At(c)
		if !ok {
			t.Errorf("Expected sphere at %v after shift", c)
			continue
		}
		if b.Sphere(h).Pos != b.Layout().Center(c) {
			t.Errorf("Sphere at %v has stale position %v", c, b.Sphere(h).Pos)
		}
	}
	if b.Occupied(Cell{0, 0}) {
		t.Error("Row 0 should be empty after shift")
	}

	seen := make(map[Cell]bool)
	for _, h := range b.Settled() {
		c := b.Sphere(h).Cell
		if seen[c] {
			t.Errorf("Two spheres share %v", c)
		}
		seen[c] = true
	}
}

func TestShiftDownCanSplitNeighbors(t *testing.T) {
	b := newTestBoard()
	b.Insert(Cell{0, 1}, ColorRed)
	lower := b.Insert(Cell{1, 0}, ColorBlue)
	if !AreNeighbors(Cell{0, 1}, Cell{1, 0}) {
		t.Fatal("(0,1) and (1,0) should touch before the shift")
	}

	b.ShiftDown()
	if AreNeighbors(Cell{1, 1}, Cell{2, 0}) {
		t.Fatal("(1,1) and (2,0) should not touch after the shift")
	}
	b.Insert(Cell{0, 1}, ColorGreen)

	orphans := b.FindOrphans()
	if len(orphans) != 1 || orphans[0] != lower {
		t.Errorf("Expected the shifted blue sphere orphaned, got %v", cellsOf(b, orphans))
	}
}

func TestActiveColorsAndLowestY(t *testing.T) {
	b := newTestBoard()
	if _, ok := b.LowestY(); ok {
		t.Error("Empty board should have no lowest y")
	}

	place(b, ColorRed, Cell{0, 0})
	place(b, ColorCyan, Cell{3, 2})

	if got := b.ActiveColors(); got != SetOf(ColorRed, ColorCyan) {
		t.Errorf("ActiveColors = %v", got.Colors())
	}
	y, ok := b.LowestY()
	if !ok || y != b.Layout().CellCenter(3, 2).Y {
		t.Errorf("LowestY = %v, %v", y, ok)
	}
}

func TestAnimateReleasesSlots(t *testing.T) {
	b := newTestBoard()
	hs := place(b, ColorRed, Cell{0, 0}, Cell{0, 1})
	fade := 300 * time.Millisecond

	b.Fade(hs[0], 0)
	if b.Occupied(Cell{0, 0}) {
		t.Error("Fading sphere must leave the grid immediately")
	}

	b.Animate(100*time.Millisecond, fade, 0, 640)
	if b.Sphere(hs[0]).State != SphereFading {
		t.Error("Sphere released before fade ended")
	}
	b.Animate(fade, fade, 0, 640)
	if b.Sphere(hs[0]).State != SphereFree {
		t.Errorf("Expected slot freed, got %v", b.Sphere(hs[0]).State)
	}

	// Freed slot is reused.
	if h := b.Insert(Cell{2, 2}, ColorBlue); h != hs[0] {
		t.Errorf("Expected handle %d reused, got %d", hs[0], h)
	}

	b.Detach(hs[1], V(0, 40))
	for i := 0; i < 40 && b.Sphere(hs[1]).State == SphereFloating; i++ {
		b.Animate(0, fade, 0.5, 640)
	}
	if b.Sphere(hs[1]).State != SphereFree {
		t.Error("Floating sphere never left the board")
	}
}
