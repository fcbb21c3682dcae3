package engine

import (
	"errors"
	"math/rand"
	"time"

	"github.com/vovakirdan/popquiz/internal/config"
)

// Sentinel errors returned by Confirm and Skip.
var (
	ErrNoPendingMatch = errors.New("engine: no match is awaiting confirmation")
	ErrStaleMatch     = errors.New("engine: match id does not match the pending match")
)

// ControlState is the controller state. A pending match excludes aiming and
// flight, so firing while awaiting confirmation cannot be expressed.
type ControlState uint8

const (
	StateIdle ControlState = iota
	StateAiming
	StateFlying
	StateAwaitingConfirmation
)

// String returns the string representation of a control state.
func (s ControlState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAiming:
		return "aiming"
	case StateFlying:
		return "flying"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	default:
		return "unknown"
	}
}

// RoundStatus is the round lifecycle state.
type RoundStatus uint8

const (
	RoundActive RoundStatus = iota
	RoundWon
	RoundLost
)

// String returns the string representation of a round status.
func (s RoundStatus) String() string {
	switch s {
	case RoundActive:
		return "active"
	case RoundWon:
		return "won"
	case RoundLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Input is the aim signal for one frame, independent of its source.
type Input struct {
	Pointer Vec  // Aim position in board pixels
	Pressed bool // Engage while true, release on the first false frame
	Swap    bool // Exchange loaded and next colors while idle
}

// Stats counts round activity.
type Stats struct {
	Shots     int
	Misses    int
	Bounces   int
	Matches   int // Clusters that reached confirmation
	Pops      int // Confirmed clusters
	Rejected  int
	Popped    int // Spheres removed by confirmed clusters
	Orphans   int
	RowsAdded int
	Reseeds   int
}

// StepResult is returned by Engine.Step.
type StepResult struct {
	Tick   uint64
	State  ControlState
	Status RoundStatus
	Score  int
	Events []Event
}

// Engine is the round controller. It owns the board, the projectile and the
// pending match, and is advanced by a single caller one frame at a time.
type Engine struct {
	cfg     config.PopQuizConfig
	profile config.Profile

	layout   Layout
	bounds   Bounds
	anchor   Vec
	board    *Board
	proj     Projectile
	resolver *Resolver
	spawner  *Spawner
	rng      *rand.Rand

	state   ControlState
	status  RoundStatus
	pending *Pending
	loaded  Color
	next    Color

	now    time.Duration
	tick   uint64
	score  int
	stats  Stats
	events []Event
}

// New creates an engine and starts a round.
func New(cfg config.PopQuizConfig, profile config.Profile, seed int64) *Engine {
	e := &Engine{
		cfg:     cfg,
		profile: profile,
	}
	e.layout = NewLayout(cfg.Board.Width, cfg.Board.Radius, cfg.Board.TopMargin)
	e.bounds = Bounds{
		Left:    0,
		Right:   cfg.Board.Width,
		Ceiling: cfg.Board.TopMargin,
		Bottom:  cfg.Board.Height,
	}
	e.anchor = V(cfg.Board.Width/2, cfg.Board.Height-cfg.Board.AnchorOffset)
	e.board = NewBoard(e.layout)
	e.Reset(seed)
	return e
}

// Reset starts a new round with the same configuration.
func (e *Engine) Reset(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
	e.board.Reset()
	e.resolver = NewResolver(e.board, e.cfg.Scoring, e.cfg.Physics, e.rng)
	e.spawner = NewSpawner(e.board, e.profile, e.rng)

	e.state = StateIdle
	e.status = RoundActive
	e.pending = nil
	e.now = 0
	e.tick = 0
	e.score = 0
	e.stats = Stats{}
	e.events = nil
	e.proj.Rest(e.anchor)

	e.spawner.Seed(e.profile.InitialRows)
	e.spawner.Reset(e.now)
	e.loaded = e.drawAmmo()
	e.next = e.drawAmmo()
}

// Step advances the simulation by one frame of length dt.
// Order: animations, spawn check, input, flight.
func (e *Engine) Step(in Input, dt time.Duration) StepResult {
	e.events = nil
	e.now += dt
	e.tick++

	e.board.Animate(e.now, e.cfg.Physics.FadeDuration, e.cfg.Physics.Gravity, e.bounds.Bottom)

	if e.status == RoundActive && e.state != StateAwaitingConfirmation {
		e.stepActive(in)
	}

	return StepResult{
		Tick:   e.tick,
		State:  e.state,
		Status: e.status,
		Score:  e.score,
		Events: e.events,
	}
}

// stepActive runs the parts of a frame that pause while a match is pending.
func (e *Engine) stepActive(in Input) {
	if e.spawner.Due(e.now) {
		e.pushRow()
		if e.status != RoundActive {
			return
		}
	}

	switch e.state {
	case StateIdle:
		if in.Swap {
			e.loaded, e.next = e.next, e.loaded
		}
		if in.Pressed {
			e.proj.Aim(e.anchor, in.Pointer, e.cfg.Physics.MaxPull)
			e.state = StateAiming
		} else {
			e.proj.Rest(e.anchor)
		}
	case StateAiming:
		if in.Pressed {
			e.proj.Aim(e.anchor, in.Pointer, e.cfg.Physics.MaxPull)
			break
		}
		e.release()
	}

	if e.state == StateFlying {
		e.fly()
	}
}

// release fires on a long enough pull and otherwise cancels the aim.
func (e *Engine) release() {
	vel, ok := LaunchVelocity(e.anchor, e.proj.Pos, e.cfg.Physics)
	if !ok {
		e.proj.Rest(e.anchor)
		e.state = StateIdle
		return
	}
	e.proj.Launch(vel, e.now)
	e.state = StateFlying
	e.stats.Shots++
	e.emit(Event{Kind: EventShotFired, Color: e.loaded})
}

// fly integrates one frame of flight and resolves its outcome.
func (e *Engine) fly() {
	step := e.proj.Advance(e.board, e.bounds, e.cfg.Physics, e.now)
	for i := 0; i < step.Bounces; i++ {
		e.stats.Bounces++
		e.emit(Event{Kind: EventWallBounce})
	}

	switch step.Outcome {
	case FlightCollided:
		cell, ok := SnapCell(e.board, e.proj.Pos)
		if !ok {
			e.miss()
			return
		}
		e.settle(cell)
	case FlightMissed:
		e.miss()
	}
}

// miss returns the projectile to the anchor without placing a sphere.
func (e *Engine) miss() {
	e.proj.Rest(e.anchor)
	e.state = StateIdle
	e.stats.Misses++
	e.emit(Event{Kind: EventMiss, Color: e.loaded})
	e.advanceAmmo()
}

// settle inserts the projectile at cell and evaluates it for a match.
func (e *Engine) settle(cell Cell) {
	color := e.loaded
	h := e.board.Insert(cell, color)
	e.proj.Rest(e.anchor)
	e.emit(Event{Kind: EventSphereSettled, Color: color, Cell: cell})
	e.advanceAmmo()

	outcome := e.resolver.Evaluate(h)
	if outcome.Kind == MatchPending {
		p := outcome.Pending
		e.pending = &p
		e.state = StateAwaitingConfirmation
		e.stats.Matches++
		e.emit(Event{Kind: EventMatchPending, Match: p.ID, Color: p.Color, Count: p.Size()})
		return
	}

	e.state = StateIdle
	e.checkLoss()
}

// Confirm resolves the pending match identified by id. Spawning resumes with
// a fresh interval so time spent answering never counts against the player.
func (e *Engine) Confirm(id MatchID, awarded bool) (ConfirmResult, error) {
	if e.pending == nil {
		return ConfirmResult{}, ErrNoPendingMatch
	}
	if e.pending.ID != id {
		return ConfirmResult{}, ErrStaleMatch
	}

	e.events = nil
	p := *e.pending
	res := e.resolver.Confirm(p, awarded, e.now)

	e.pending = nil
	e.state = StateIdle
	e.spawner.Reset(e.now)

	if !awarded {
		e.stats.Rejected++
		e.emit(Event{Kind: EventMatchRejected, Match: p.ID, Color: p.Color, Count: p.Size()})
		e.checkLoss()
		res.Events = e.events
		return res, nil
	}

	// Each event's Score already includes its own Points.
	e.score += res.ClusterPoints + res.FlatBonus
	e.stats.Pops++
	e.stats.Popped += res.ClusterSize
	e.emit(Event{Kind: EventClusterPopped, Match: p.ID, Color: p.Color, Count: res.ClusterSize, Points: res.ClusterPoints + res.FlatBonus})

	e.score += res.OrphanBonus
	if res.Orphans > 0 {
		e.stats.Orphans += res.Orphans
		e.emit(Event{Kind: EventOrphanAvalanche, Match: p.ID, Color: p.Color, Count: res.Orphans, Points: res.OrphanBonus})
	}

	if res.Cleared {
		n := e.spawner.Seed(e.profile.InitialRows)
		res.Reseeded = true
		e.stats.Reseeds++
		e.emit(Event{Kind: EventBoardReseeded, Count: n})
	}

	if !e.profile.Endless() && e.score >= e.profile.WinScore && e.status == RoundActive {
		e.status = RoundWon
		e.emit(Event{Kind: EventRoundWon})
	}

	res.Events = e.events
	return res, nil
}

// Skip resolves the pending match as awarded without an answer.
func (e *Engine) Skip(id MatchID) (ConfirmResult, error) {
	return e.Confirm(id, true)
}

// pushRow inserts a new top row and checks the loss threshold.
func (e *Engine) pushRow() {
	n := e.spawner.PushRow(e.now)
	e.stats.RowsAdded++
	e.emit(Event{Kind: EventRowAdded, Count: n})
	e.checkLoss()
}

// checkLoss ends the round once the lowest settled sphere passes the loss line.
func (e *Engine) checkLoss() {
	if e.status != RoundActive {
		return
	}
	y, ok := e.board.LowestY()
	if !ok || y <= e.LossLine() {
		return
	}
	e.status = RoundLost
	if e.proj.Phase != PhaseIdle {
		e.proj.Rest(e.anchor)
	}
	if e.state == StateAiming || e.state == StateFlying {
		e.state = StateIdle
	}
	e.emit(Event{Kind: EventRoundLost})
}

// advanceAmmo moves the preview color into the launcher and draws a new preview.
func (e *Engine) advanceAmmo() {
	e.loaded = e.next
	e.next = e.drawAmmo()
}

// drawAmmo picks an ammo color from what is currently on the board.
func (e *Engine) drawAmmo() Color {
	return NextColor(e.rng, e.board.ActiveColors(), 0, e.profile)
}

// emit stamps and records an event.
func (e *Engine) emit(ev Event) {
	ev.Tick = e.tick
	ev.Score = e.score
	e.events = append(e.events, ev)
}

// LossLine returns the y a settled sphere center must not pass.
func (e *Engine) LossLine() float64 {
	return e.anchor.Y - e.cfg.Board.LossDistance
}

// Pending returns the match awaiting confirmation.
func (e *Engine) Pending() (Pending, bool) {
	if e.pending == nil {
		return Pending{}, false
	}
	return *e.pending, true
}

// Board returns the live board. Callers must not mutate it.
func (e *Engine) Board() *Board { return e.board }

// Projectile returns a copy of the projectile state.
func (e *Engine) Projectile() Projectile { return e.proj }

// Layout returns the board geometry.
func (e *Engine) Layout() Layout { return e.layout }

// Bounds returns the play area.
func (e *Engine) Bounds() Bounds { return e.bounds }

// Anchor returns the launch anchor.
func (e *Engine) Anchor() Vec { return e.anchor }

// State returns the controller state.
func (e *Engine) State() ControlState { return e.state }

// Status returns the round status.
func (e *Engine) Status() RoundStatus { return e.status }

// Score returns the cumulative score.
func (e *Engine) Score() int { return e.score }

// Loaded returns the color in the launcher.
func (e *Engine) Loaded() Color { return e.loaded }

// Next returns the preview color.
func (e *Engine) Next() Color { return e.next }

// Now returns the engine clock.
func (e *Engine) Now() time.Duration { return e.now }

// Tick returns the number of frames stepped.
func (e *Engine) Tick() uint64 { return e.tick }

// Stats returns the round counters.
func (e *Engine) Stats() Stats { return e.stats }

// Profile returns the round's difficulty profile.
func (e *Engine) Profile() config.Profile { return e.profile }

// NextRowIn returns the time left before the next spawn.
func (e *Engine) NextRowIn() time.Duration { return e.spawner.Remaining(e.now) }
