// Package engine implements the PopQuiz grid, physics and connectivity core.
// It is UI-agnostic, single-threaded and deterministic for a given seed.
package engine

import (
	"fmt"
	"math"
)

// Vec is a 2D vector in virtual pixels. Y grows downward.
type Vec struct {
	X, Y float64
}

// V is a convenience constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// Cell identifies a grid slot.
type Cell struct {
	Row int
	Col int
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Layout maps grid cells to pixel positions for a hex-offset packing where
// odd rows are shifted right by one radius.
type Layout struct {
	Radius    float64
	Cols      int
	OffsetX   float64 // Left edge of column 0 on even rows
	TopY      float64 // Ceiling line
	RowHeight float64
	Width     float64
}

// NewLayout derives the column count and horizontal centering from the board width.
// The widest row (odd, shifted) spans Cols*2r + r.
func NewLayout(boardWidth, radius, topY float64) Layout {
	cols := int((boardWidth - radius) / (2 * radius))
	if cols < 1 {
		cols = 1
	}
	used := float64(cols)*2*radius + radius
	offset := (boardWidth - used) / 2
	if offset < 0 {
		offset = 0
	}
	return Layout{
		Radius:    radius,
		Cols:      cols,
		OffsetX:   offset,
		TopY:      topY,
		RowHeight: radius * math.Sqrt(3),
		Width:     boardWidth,
	}
}

// CellCenter returns the pixel center of (row, col).
func (l Layout) CellCenter(row, col int) Vec {
	x := l.OffsetX + l.Radius + float64(col)*2*l.Radius
	if row%2 == 1 {
		x += l.Radius
	}
	y := l.TopY + l.Radius + float64(row)*l.RowHeight
	return Vec{X: x, Y: y}
}

// Center returns the pixel center of a cell.
func (l Layout) Center(c Cell) Vec {
	return l.CellCenter(c.Row, c.Col)
}

// InBounds reports whether the cell lies on the board. Rows are unbounded downward.
func (l Layout) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Col < l.Cols
}

// NearestCell returns the cell whose center is approximately closest to p.
// The result is clamped to the board and is only a starting point for searches.
func (l Layout) NearestCell(p Vec) Cell {
	row := int(math.Round((p.Y - l.TopY - l.Radius) / l.RowHeight))
	if row < 0 {
		row = 0
	}
	x := p.X - l.OffsetX - l.Radius
	if row%2 == 1 {
		x -= l.Radius
	}
	col := int(math.Round(x / (2 * l.Radius)))
	if col < 0 {
		col = 0
	}
	if col >= l.Cols {
		col = l.Cols - 1
	}
	return Cell{Row: row, Col: col}
}

// AreNeighbors reports hex adjacency. The rule depends on the parity of the
// lower row (the larger row index); dc is measured as upper.Col - lower.Col.
func AreNeighbors(a, b Cell) bool {
	dr := a.Row - b.Row
	switch {
	case dr == 0:
		dc := a.Col - b.Col
		return dc == 1 || dc == -1
	case dr == 1 || dr == -1:
		upper, lower := a, b
		if dr > 0 {
			upper, lower = b, a
		}
		dc := upper.Col - lower.Col
		if lower.Row%2 == 1 {
			return dc == 0 || dc == 1
		}
		return dc == -1 || dc == 0
	default:
		return false
	}
}

// neighborCells returns the six candidate neighbors of c, some possibly off-board.
func neighborCells(c Cell) [6]Cell {
	r, col := c.Row, c.Col

	// Row above: c is the lower cell.
	upLeft, upRight := col-1, col
	if r%2 == 1 {
		upLeft, upRight = col, col+1
	}
	// Row below: c is the upper cell.
	downLeft, downRight := col-1, col
	if (r+1)%2 == 0 {
		downLeft, downRight = col, col+1
	}

	return [6]Cell{
		{Row: r, Col: col - 1},
		{Row: r, Col: col + 1},
		{Row: r - 1, Col: upLeft},
		{Row: r - 1, Col: upRight},
		{Row: r + 1, Col: downLeft},
		{Row: r + 1, Col: downRight},
	}
}
