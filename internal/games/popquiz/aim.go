package popquiz

import (
	"math"

	"github.com/vovakirdan/popquiz/internal/config"
	"github.com/vovakirdan/popquiz/internal/core"
	"github.com/vovakirdan/popquiz/internal/games/popquiz/engine"
)

const (
	angleStep = 3 * math.Pi / 180
	maxAngle  = 80 * math.Pi / 180
	pullSteps = 12
)

// aimState turns discrete keys or the mouse into the engine's continuous
// pointer signal. Angle 0 shoots straight up; positive angles shoot right.
type aimState struct {
	angle    float64
	pull     float64
	minPull  float64
	maxPull  float64
	firing   int  // 2: press this frame, 1: release this frame
	dragging bool // Mouse button held on the previous frame
}

func newAimState(phys config.PhysicsConfig) aimState {
	return aimState{
		pull:    phys.MinPull + (phys.MaxPull-phys.MinPull)*0.85,
		minPull: phys.MinPull,
		maxPull: phys.MaxPull,
	}
}

// pointer returns where the projectile is pulled to for the current aim.
// The shot flies from there back through the anchor.
func (a aimState) pointer(anchor engine.Vec) engine.Vec {
	return anchor.Add(engine.V(-math.Sin(a.angle)*a.pull, math.Cos(a.angle)*a.pull))
}

// follow updates angle and pull from an absolute pointer position.
func (a *aimState) follow(anchor, p engine.Vec) {
	pull := p.Sub(anchor)
	d := pull.Len()
	if d == 0 {
		return
	}
	a.angle = core.ClampF(math.Atan2(-pull.X, pull.Y), -maxAngle, maxAngle)
	a.pull = core.ClampF(d, a.minPull, a.maxPull)
}

// update applies one frame of input and returns the engine signal.
func (a *aimState) update(in core.InputFrame, v viewport, eng *engine.Engine) engine.Input {
	anchor := eng.Anchor()
	idle := eng.State() == engine.StateIdle

	if in.Has(core.ActionAimLeft) {
		a.angle = core.ClampF(a.angle-angleStep, -maxAngle, maxAngle)
	}
	if in.Has(core.ActionAimRight) {
		a.angle = core.ClampF(a.angle+angleStep, -maxAngle, maxAngle)
	}
	step := (a.maxPull - a.minPull) / pullSteps
	if in.Has(core.ActionPullMore) {
		a.pull = core.ClampF(a.pull+step, a.minPull, a.maxPull)
	}
	if in.Has(core.ActionPullLess) {
		a.pull = core.ClampF(a.pull-step, a.minPull, a.maxPull)
	}

	out := engine.Input{Swap: in.Has(core.ActionSwap) && idle}

	// Mouse drag takes precedence while the button is held.
	if in.Pointer.Present && (in.Pointer.Down || a.dragging) {
		if in.Pointer.Down {
			p := v.toBoard(in.Pointer.X, in.Pointer.Y)
			a.follow(anchor, p)
			a.dragging = true
			out.Pressed = true
			out.Pointer = p
			return out
		}
		a.dragging = false
		out.Pointer = a.pointer(anchor)
		return out
	}

	if in.Has(core.ActionFire) && idle && a.firing == 0 {
		a.firing = 2
	}
	out.Pointer = a.pointer(anchor)
	switch a.firing {
	case 2:
		out.Pressed = true
		a.firing = 1
	case 1:
		a.firing = 0
	}
	return out
}
