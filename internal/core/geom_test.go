package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	tests := []struct {
		x, y int
		want bool
	}{
		{10, 10, true},
		{14, 14, true},
		{12, 12, true},
		{15, 12, false},
		{12, 15, false},
		{9, 12, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
	if x, y := r.Center(); x != 15 || y != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", x, y)
	}
}

func TestCenteredRect(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)

	got := CenteredRect(outer, 40, 8)
	if got != NewRect(20, 8, 40, 8) {
		t.Errorf("CenteredRect = %+v", got)
	}

	// Oversized requests shrink to the outer rect.
	if got := CenteredRect(outer, 100, 30); got != outer {
		t.Errorf("Oversized CenteredRect = %+v", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.5, 0, 1, 0},
		{1.5, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := ClampF(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("ClampF(%v, %v, %v) = %v, want %v", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 5) != 3 || Min(5, 3) != 3 {
		t.Error("Min failed")
	}
	if Max(3, 5) != 5 || Max(5, 3) != 5 {
		t.Error("Max failed")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionFire)
	f.Pointer = Pointer{X: 3, Y: 4, Down: true, Present: true}

	if !f.Has(ActionFire) || f.Has(ActionSwap) {
		t.Error("Unexpected actions")
	}

	c := f.Clone()
	f.Clear()
	if f.Has(ActionFire) {
		t.Error("Clear should drop actions")
	}
	if !f.Pointer.Down {
		t.Error("Clear should keep pointer state")
	}
	if !c.Has(ActionFire) || c.Pointer != f.Pointer {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionFire) {
		t.Error("Zero frame should have no actions")
	}
}
