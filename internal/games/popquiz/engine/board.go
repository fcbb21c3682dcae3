package engine

import (
	"fmt"
	"time"
)

// Handle is a stable index into the board's sphere arena.
type Handle int

// SphereState is the tagged state of an arena slot.
type SphereState uint8

const (
	SphereFree     SphereState = iota // Slot is unused
	SphereSettled                     // Occupies Cell on the live board
	SphereFloating                    // Detached from the ceiling, falling with Vel
	SphereFading                      // Matched; fades out from Since
)

// String returns the string representation of a sphere state.
func (s SphereState) String() string {
	switch s {
	case SphereFree:
		return "free"
	case SphereSettled:
		return "settled"
	case SphereFloating:
		return "floating"
	case SphereFading:
		return "fading"
	default:
		return "unknown"
	}
}

// Sphere is one arena slot. Cell is meaningful while Settled, Vel while
// Floating and Since while Fading.
type Sphere struct {
	State SphereState
	Color Color
	Cell  Cell
	Pos   Vec
	Vel   Vec
	Since time.Duration
}

// Board owns every sphere of a round.
// Settled spheres are indexed by cell, so adjacency queries never scan the arena.
type Board struct {
	layout  Layout
	spheres []Sphere
	free    []Handle
	cells   map[Cell]Handle
}

// NewBoard creates an empty board.
func NewBoard(layout Layout) *Board {
	return &Board{
		layout: layout,
		cells:  make(map[Cell]Handle),
	}
}

// Layout returns the board geometry.
func (b *Board) Layout() Layout {
	return b.layout
}

// Sphere returns a copy of the sphere at h.
func (b *Board) Sphere(h Handle) Sphere {
	if h < 0 || int(h) >= len(b.spheres) {
		return Sphere{}
	}
	return b.spheres[h]
}

// At returns the settled sphere occupying c.
func (b *Board) At(c Cell) (Handle, bool) {
	h, ok := b.cells[c]
	return h, ok
}

// Occupied reports whether a settled sphere occupies c.
func (b *Board) Occupied(c Cell) bool {
	_, ok := b.cells[c]
	return ok
}

// Insert settles a new sphere at c.
// Inserting into an occupied or off-board cell is a programming error and panics.
func (b *Board) Insert(c Cell, color Color) Handle {
	if !b.layout.InBounds(c) {
		panic(fmt.Sprintf("engine: insert outside board at %v", c))
	}
	if existing, ok := b.cells[c]; ok {
		panic(fmt.Sprintf("engine: cell %v already holds sphere %d", c, existing))
	}

	s := Sphere{
		State: SphereSettled,
		Color: color,
		Cell:  c,
		Pos:   b.layout.Center(c),
	}

	var h Handle
	if n := len(b.free); n > 0 {
		h = b.free[n-1]
		b.free = b.free[:n-1]
		b.spheres[h] = s
	} else {
		h = Handle(len(b.spheres))
		b.spheres = append(b.spheres, s)
	}
	b.cells[c] = h
	return h
}

// NeighborsOf returns the settled spheres adjacent to h.
func (b *Board) NeighborsOf(h Handle) []Handle {
	s := b.Sphere(h)
	if s.State != SphereSettled {
		return nil
	}
	out := make([]Handle, 0, 6)
	for _, c := range neighborCells(s.Cell) {
		if n, ok := b.cells[c]; ok && AreNeighbors(s.Cell, c) {
			out = append(out, n)
		}
	}
	return out
}

// ConnectedSameColor returns the same-colored component containing start,
// start included, in breadth-first order.
func (b *Board) ConnectedSameColor(start Handle) []Handle {
	s := b.Sphere(start)
	if s.State != SphereSettled {
		return nil
	}
	return b.flood([]Handle{start}, func(n Sphere) bool {
		return n.Color == s.Color
	})
}

// FindOrphans returns every settled sphere with no adjacency path to a
// row-0 sphere, in handle order.
func (b *Board) FindOrphans() []Handle {
	var roots []Handle
	for col := 0; col < b.layout.Cols; col++ {
		if h, ok := b.cells[Cell{Row: 0, Col: col}]; ok {
			roots = append(roots, h)
		}
	}

	anchored := make(map[Handle]bool, len(b.cells))
	for _, h := range b.flood(roots, nil) {
		anchored[h] = true
	}

	var orphans []Handle
	for h := range b.spheres {
		if b.spheres[h].State == SphereSettled && !anchored[Handle(h)] {
			orphans = append(orphans, Handle(h))
		}
	}
	return orphans
}

// flood runs a BFS over settled spheres from roots, following neighbors
// accepted by follow (nil follows every neighbor).
func (b *Board) flood(roots []Handle, follow func(Sphere) bool) []Handle {
	visited := make(map[Handle]bool, len(roots))
	queue := make([]Handle, 0, len(roots))
	for _, h := range roots {
		if !visited[h] {
			visited[h] = true
			queue = append(queue, h)
		}
	}

	for i := 0; i < len(queue); i++ {
		for _, n := range b.NeighborsOf(queue[i]) {
			if visited[n] {
				continue
			}
			if follow != nil && !follow(b.spheres[n]) {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
	return queue
}

// ShiftDown moves every settled sphere one row down and recomputes its position.
// Row parity flips, so diagonal contacts can break and leave spheres unanchored.
func (b *Board) ShiftDown() {
	clear(b.cells)
	for h := range b.spheres {
		s := &b.spheres[h]
		if s.State != SphereSettled {
			continue
		}
		s.Cell.Row++
		s.Pos = b.layout.Center(s.Cell)
		b.cells[s.Cell] = Handle(h)
	}
}

// IsCleared reports whether no settled sphere remains.
func (b *Board) IsCleared() bool {
	return len(b.cells) == 0
}

// SettledCount returns the number of settled spheres.
func (b *Board) SettledCount() int {
	return len(b.cells)
}

// Settled returns the settled spheres in handle order.
func (b *Board) Settled() []Handle {
	out := make([]Handle, 0, len(b.cells))
	for h := range b.spheres {
		if b.spheres[h].State == SphereSettled {
			out = append(out, Handle(h))
		}
	}
	return out
}

// ActiveColors returns the colors present among settled spheres.
func (b *Board) ActiveColors() ColorSet {
	var set ColorSet
	for _, h := range b.cells {
		set = set.With(b.spheres[h].Color)
	}
	return set
}

// LowestY returns the largest center y among settled spheres.
func (b *Board) LowestY() (float64, bool) {
	lowest, found := 0.0, false
	for _, h := range b.cells {
		if y := b.spheres[h].Pos.Y; !found || y > lowest {
			lowest, found = y, true
		}
	}
	return lowest, found
}

// Fade removes a settled sphere from the grid and starts its fade-out.
func (b *Board) Fade(h Handle, now time.Duration) {
	s := &b.spheres[h]
	if s.State != SphereSettled {
		return
	}
	delete(b.cells, s.Cell)
	s.State = SphereFading
	s.Since = now
}

// Detach removes a settled sphere from the grid and lets it fall with vel.
func (b *Board) Detach(h Handle, vel Vec) {
	s := &b.spheres[h]
	if s.State != SphereSettled {
		return
	}
	delete(b.cells, s.Cell)
	s.State = SphereFloating
	s.Vel = vel
}

// Animate advances floating spheres and frees slots whose animation ended:
// fading spheres after fade, floating spheres once below floorY.
func (b *Board) Animate(now, fade time.Duration, gravity, floorY float64) {
	for h := range b.spheres {
		s := &b.spheres[h]
		switch s.State {
		case SphereFading:
			if now-s.Since >= fade {
				b.release(Handle(h))
			}
		case SphereFloating:
			s.Vel.Y += gravity
			s.Pos = s.Pos.Add(s.Vel)
			if s.Pos.Y-b.layout.Radius > floorY {
				b.release(Handle(h))
			}
		}
	}
}

// release returns a slot to the free list.
func (b *Board) release(h Handle) {
	b.spheres[h] = Sphere{}
	b.free = append(b.free, h)
}

// Each calls fn for every non-free sphere in handle order.
func (b *Board) Each(fn func(h Handle, s Sphere)) {
	for h, s := range b.spheres {
		if s.State != SphereFree {
			fn(Handle(h), s)
		}
	}
}

// Reset drops every sphere.
func (b *Board) Reset() {
	b.spheres = b.spheres[:0]
	b.free = b.free[:0]
	clear(b.cells)
}
