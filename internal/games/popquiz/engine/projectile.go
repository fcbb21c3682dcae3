package engine

import (
	"math"
	"time"

	"github.com/vovakirdan/popquiz/internal/config"
)

// Phase is the projectile's own state.
type Phase uint8

const (
	PhaseIdle   Phase = iota // Resting at the launch anchor
	PhaseAiming              // Following the pointer, clamped to the max pull
	PhaseFlying              // Ballistic, ignores input
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAiming:
		return "aiming"
	case PhaseFlying:
		return "flying"
	default:
		return "unknown"
	}
}

// Projectile is the single in-flight (or loaded) sphere.
type Projectile struct {
	Phase      Phase
	Pos        Vec
	Vel        Vec
	LaunchedAt time.Duration
}

// Rest returns the projectile to the anchor with zero velocity.
func (p *Projectile) Rest(anchor Vec) {
	p.Phase = PhaseIdle
	p.Pos = anchor
	p.Vel = Vec{}
}

// Aim moves the projectile toward pointer, at most maxPull away from anchor.
func (p *Projectile) Aim(anchor, pointer Vec, maxPull float64) {
	p.Phase = PhaseAiming
	pull := pointer.Sub(anchor)
	if d := pull.Len(); d > maxPull && d > 0 {
		pull = pull.Scale(maxPull / d)
	}
	p.Pos = anchor.Add(pull)
	p.Vel = Vec{}
}

// Launch puts the projectile in flight.
func (p *Projectile) Launch(vel Vec, now time.Duration) {
	p.Phase = PhaseFlying
	p.Vel = vel
	p.LaunchedAt = now
}

// LaunchVelocity converts the pull from anchor to aim into a launch velocity.
// The projectile flies opposite to the pull. The multiplier eases
// quadratically from MinPower to MaxPower over the normalized pull distance,
// so short pulls give soft shots. ok is false when the pull is below MinPull.
func LaunchVelocity(anchor, aim Vec, phys config.PhysicsConfig) (vel Vec, ok bool) {
	pull := anchor.Sub(aim)
	dist := pull.Len()
	if dist < phys.MinPull || dist == 0 {
		return Vec{}, false
	}

	capped := math.Min(dist, phys.MaxPull)
	t := capped / phys.MaxPull
	mult := phys.MinPower + (phys.MaxPower-phys.MinPower)*t*t

	dir := pull.Scale(1 / dist)
	return dir.Scale(capped * mult), true
}

// Bounds is the play area the projectile moves in.
type Bounds struct {
	Left, Right float64
	Ceiling     float64
	Bottom      float64
}

// FlightOutcome classifies one frame of flight.
type FlightOutcome uint8

const (
	FlightContinues FlightOutcome = iota
	FlightCollided                // Touched the ceiling or a settled sphere
	FlightMissed                  // Watchdog expired or fell out through the bottom edge
)

// FlightStep reports what happened during one Advance call.
type FlightStep struct {
	Outcome FlightOutcome
	Bounces int
}

// Advance integrates one frame of flight: gravity, then sub-steps no longer
// than one radius (half a diameter) each with wall reflection and contact
// checks, then friction once for the frame.
func (p *Projectile) Advance(board *Board, bounds Bounds, phys config.PhysicsConfig, now time.Duration) FlightStep {
	var step FlightStep
	if p.Phase != PhaseFlying {
		return step
	}
	if now-p.LaunchedAt >= phys.MaxFlight {
		step.Outcome = FlightMissed
		return step
	}

	r := board.Layout().Radius
	contact := phys.CollisionFactor * r

	p.Vel.Y += phys.Gravity

	n := int(math.Ceil(p.Vel.Len() / r))
	if n < 1 {
		n = 1
	}
	sub := p.Vel.Scale(1 / float64(n))

	for i := 0; i < n; i++ {
		p.Pos = p.Pos.Add(sub)

		if p.Pos.X-r < bounds.Left {
			p.Pos.X = bounds.Left + r
			p.Vel.X, sub.X = -p.Vel.X, -sub.X
			step.Bounces++
		} else if p.Pos.X+r > bounds.Right {
			p.Pos.X = bounds.Right - r
			p.Vel.X, sub.X = -p.Vel.X, -sub.X
			step.Bounces++
		}

		if p.Pos.Y-r <= bounds.Ceiling || board.Touches(p.Pos, contact) {
			step.Outcome = FlightCollided
			return step
		}
		if p.Vel.Y > 0 && p.Pos.Y-r > bounds.Bottom {
			step.Outcome = FlightMissed
			return step
		}
	}

	p.Vel = p.Vel.Scale(phys.Friction)
	return step
}

// Touches reports whether any settled sphere center lies closer than dist to p.
func (b *Board) Touches(p Vec, dist float64) bool {
	for _, h := range b.cells {
		if b.spheres[h].Pos.Dist(p) < dist {
			return true
		}
	}
	return false
}

// SnapCell finds the unoccupied cell nearest to p, scanning two rows either
// side of the approximate row across every column. Ties keep the first cell
// in scan order.
func SnapCell(board *Board, p Vec) (Cell, bool) {
	layout := board.Layout()
	guess := layout.NearestCell(p)

	best, found := Cell{}, false
	bestDist := math.Inf(1)
	for row := guess.Row - 2; row <= guess.Row+2; row++ {
		if row < 0 {
			continue
		}
		for col := 0; col < layout.Cols; col++ {
			c := Cell{Row: row, Col: col}
			if board.Occupied(c) {
				continue
			}
			if d := layout.Center(c).Dist(p); d < bestDist {
				best, bestDist, found = c, d, true
			}
		}
	}
	return best, found
}
