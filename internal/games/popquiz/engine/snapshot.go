package engine

// SettledSnapshot is one settled sphere in a Snapshot.
type SettledSnapshot struct {
	Cell  Cell
	Color Color
}

// Snapshot captures the engine state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Score     int
	State     ControlState
	Status    RoundStatus
	Phase     Phase
	ProjX     float64
	ProjY     float64
	Loaded    Color
	Next      Color
	PendingID MatchID
	Settled   []SettledSnapshot // Handle order
	Floating  int
	Fading    int
	Stats     Stats
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   e.tick,
		Score:  e.score,
		State:  e.state,
		Status: e.status,
		Phase:  e.proj.Phase,
		ProjX:  e.proj.Pos.X,
		ProjY:  e.proj.Pos.Y,
		Loaded: e.loaded,
		Next:   e.next,
		Stats:  e.stats,
	}
	if e.pending != nil {
		snap.PendingID = e.pending.ID
	}
	e.board.Each(func(_ Handle, s Sphere) {
		switch s.State {
		case SphereSettled:
			snap.Settled = append(snap.Settled, SettledSnapshot{Cell: s.Cell, Color: s.Color})
		case SphereFloating:
			snap.Floating++
		case SphereFading:
			snap.Fading++
		}
	})
	return snap
}
