package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Errorf("Size = %dx%d, expected 80x24", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetCell(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, '●', ColorBrightRed)
	if c := s.GetCell(5, 5); c.Rune != '●' || c.Color != ColorBrightRed {
		t.Errorf("GetCell(5, 5) = %+v", c)
	}

	s.Set(1, 1, 'X')
	if c := s.GetCell(1, 1); c.Rune != 'X' || c.Color != ColorDefault {
		t.Errorf("Set should write an uncolored rune, got %+v", c)
	}

	// Out of bounds is silent.
	s.SetCell(-1, 0, 'A', ColorRed)
	s.SetCell(100, 0, 'A', ColorRed)
	s.SetCell(0, -1, 'A', ColorRed)
	s.SetCell(0, 100, 'A', ColorRed)

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(s.Bounds(), 'X', ColorGreen)
	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("After Clear, expected blank at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColor(2, 1, "Hello", ColorCyan)

	for i, ch := range "Hello" {
		if c := s.GetCell(2+i, 1); c.Rune != ch || c.Color != ColorCyan {
			t.Errorf("DrawTextColor: expected %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Clipped at the right edge.
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}

	// Multi-byte runes advance one cell each.
	s.DrawText(0, 3, "●○x")
	if s.Get(0, 3) != '●' || s.Get(1, 3) != '○' || s.Get(2, 3) != 'x' {
		t.Errorf("Unexpected row: %q", s.Row(3))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorDefault)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed: %q", s.Row(2))
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(NewRect(2, 2, 3, 3), '#', ColorOrange)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 5 && y >= 2 && y < 5
			got := s.Get(x, y)
			if inside && got != '#' {
				t.Errorf("Expected '#' inside rect at (%d, %d), got %q", x, y, got)
			}
			if !inside && got != ' ' {
				t.Errorf("Expected space outside rect at (%d, %d), got %q", x, y, got)
			}
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("Corner at %v = %q, want %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(3, 4) != '─' {
		t.Error("Horizontal edges missing")
	}
	if s.Get(1, 2) != '│' || s.Get(5, 3) != '│' {
		t.Error("Vertical edges missing")
	}
	if s.Get(3, 2) != ' ' {
		t.Error("Box interior should stay blank")
	}
	if s.GetCell(1, 1).Color != ColorGray {
		t.Error("Box should carry its color")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.SetCell(0, 0, 'A', ColorRed)
	s.Set(2, 1, 'B')

	if got := s.String(); got != "A  \n  B" {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetCell(1, 1, 'X', ColorBlue)
	s.SetCell(4, 4, 'Y', ColorBlue)

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Size after resize = %dx%d", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'X' || c.Color != ColorBlue {
		t.Errorf("Content not preserved: %+v", c)
	}

	s.Resize(6, 6)
	if s.Get(4, 4) != ' ' {
		t.Error("Clipped content should not reappear")
	}
	if s.Get(1, 1) != 'X' {
		t.Error("Content lost when growing")
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(0, 0, "abc")

	if got := s.Row(0); got != "abc  " {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.Row(10); got != strings.Repeat(" ", 5) {
		t.Errorf("Out of range row = %q", got)
	}
}
