package engine

import (
	"math"
	"testing"
)

func testLayout() Layout {
	return NewLayout(480, 16, 0)
}

func TestNewLayout(t *testing.T) {
	l := testLayout()

	if l.Cols != 14 {
		t.Errorf("Expected 14 columns, got %d", l.Cols)
	}
	if l.OffsetX != 8 {
		t.Errorf("Expected offset 8, got %v", l.OffsetX)
	}
	if got := l.CellCenter(0, 0); got != V(24, 16) {
		t.Errorf("CellCenter(0,0) = %v, want (24,16)", got)
	}
	// Odd rows are shifted right by one radius.
	if got := l.CellCenter(1, 0).X; got != 40 {
		t.Errorf("CellCenter(1,0).X = %v, want 40", got)
	}
	if got := l.CellCenter(2, 0).Y - l.CellCenter(1, 0).Y; math.Abs(got-16*math.Sqrt(3)) > 1e-9 {
		t.Errorf("Row height = %v, want %v", got, 16*math.Sqrt(3))
	}

	// The shifted row still fits inside the board.
	last := l.CellCenter(1, l.Cols-1)
	if last.X+l.Radius > 480 {
		t.Errorf("Last odd cell overflows board: right edge %v", last.X+l.Radius)
	}
}

func TestAreNeighborsSymmetric(t *testing.T) {
	for r1 := 0; r1 < 6; r1++ {
		for c1 := 0; c1 < 6; c1++ {
			a := Cell{Row: r1, Col: c1}
			if AreNeighbors(a, a) {
				t.Errorf("%v is its own neighbor", a)
			}
			for r2 := 0; r2 < 6; r2++ {
				for c2 := 0; c2 < 6; c2++ {
					b := Cell{Row: r2, Col: c2}
					if AreNeighbors(a, b) != AreNeighbors(b, a) {
						t.Errorf("AreNeighbors(%v,%v) is not symmetric", a, b)
					}
				}
			}
		}
	}
}

func TestAreNeighborsMatchesGeometry(t *testing.T) {
	l := testLayout()
	touch := 2 * l.Radius

	for r1 := 0; r1 < 8; r1++ {
		for c1 := 0; c1 < l.Cols; c1++ {
			a := Cell{Row: r1, Col: c1}
			for r2 := 0; r2 < 8; r2++ {
				for c2 := 0; c2 < l.Cols; c2++ {
					b := Cell{Row: r2, Col: c2}
					if a == b {
						continue
					}
					d := l.Center(a).Dist(l.Center(b))
					geometric := math.Abs(d-touch) < 1e-6
					if AreNeighbors(a, b) != geometric {
						t.Errorf("AreNeighbors(%v,%v) = %v, centers %.3f apart",
							a, b, AreNeighbors(a, b), d)
					}
				}
			}
		}
	}
}

func TestAreNeighborsParityRule(t *testing.T) {
	tests := []struct {
		name string
		a, b Cell
		want bool
	}{
		{"same row left", Cell{3, 4}, Cell{3, 3}, true},
		{"same row two apart", Cell{3, 4}, Cell{3, 6}, false},
		{"odd lower, upper same col", Cell{1, 2}, Cell{0, 2}, true},
		{"odd lower, upper col+1", Cell{1, 2}, Cell{0, 3}, true},
		{"odd lower, upper col-1", Cell{1, 2}, Cell{0, 1}, false},
		{"even lower, upper col-1", Cell{2, 2}, Cell{1, 1}, true},
		{"even lower, upper same col", Cell{2, 2}, Cell{1, 2}, true},
		{"even lower, upper col+1", Cell{2, 2}, Cell{1, 3}, false},
		{"two rows apart", Cell{0, 0}, Cell{2, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AreNeighbors(tt.a, tt.b); got != tt.want {
				t.Errorf("AreNeighbors(%v,%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNeighborCellsConsistent(t *testing.T) {
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			cell := Cell{Row: r, Col: c}
			seen := make(map[Cell]bool)
			for _, n := range neighborCells(cell) {
				if !AreNeighbors(cell, n) {
					t.Errorf("neighborCells(%v) returned non-neighbor %v", cell, n)
				}
				if seen[n] {
					t.Errorf("neighborCells(%v) returned %v twice", cell, n)
				}
				seen[n] = true
			}
		}
	}
}

func TestNearestCellRoundTrip(t *testing.T) {
	l := testLayout()
	for r := 0; r < 12; r++ {
		for c := 0; c < l.Cols; c++ {
			cell := Cell{Row: r, Col: c}
			if got := l.NearestCell(l.Center(cell)); got != cell {
				t.Errorf("NearestCell(Center(%v)) = %v", cell, got)
			}
		}
	}

	// Points outside the board clamp to it.
	if got := l.NearestCell(V(-100, -100)); got != (Cell{Row: 0, Col: 0}) {
		t.Errorf("Expected clamp to (0,0), got %v", got)
	}
	if got := l.NearestCell(V(1000, 16)); got.Col != l.Cols-1 {
		t.Errorf("Expected clamp to last column, got %v", got)
	}
}

func TestInBounds(t *testing.T) {
	l := testLayout()
	tests := []struct {
		cell Cell
		want bool
	}{
		{Cell{0, 0}, true},
		{Cell{40, 13}, true},
		{Cell{0, 14}, false},
		{Cell{-1, 0}, false},
		{Cell{0, -1}, false},
	}
	for _, tt := range tests {
		if got := l.InBounds(tt.cell); got != tt.want {
			t.Errorf("InBounds(%v) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}
