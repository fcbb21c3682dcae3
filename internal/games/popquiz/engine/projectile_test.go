package engine

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/popquiz/internal/config"
)

func testPhysics() config.PhysicsConfig {
	phys := config.DefaultPopQuizConfig().Physics
	phys.Gravity = 0
	phys.Friction = 1
	return phys
}

func testBounds() Bounds {
	return Bounds{Left: 0, Right: 480, Ceiling: 0, Bottom: 640}
}

func TestLaunchVelocity(t *testing.T) {
	phys := config.DefaultPopQuizConfig().Physics
	anchor := V(240, 592)

	tests := []struct {
		name   string
		pull   float64
		wantOK bool
		speed  float64
	}{
		{"below min pull", 5, false, 0},
		{"full pull", 140, true, 140 * 0.24},
		{"half pull eases quadratically", 70, true, 70 * (0.10 + 0.14*0.25)},
		{"overpull clamps", 280, true, 140 * 0.24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Pull straight down, so the shot goes straight up.
			vel, ok := LaunchVelocity(anchor, anchor.Add(V(0, tt.pull)), phys)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(vel.X) > 1e-9 || vel.Y >= 0 {
				t.Errorf("Expected straight-up velocity, got %v", vel)
			}
			if math.Abs(vel.Len()-tt.speed) > 1e-9 {
				t.Errorf("Speed = %v, want %v", vel.Len(), tt.speed)
			}
		})
	}
}

func TestAimClampsToMaxPull(t *testing.T) {
	var p Projectile
	anchor := V(240, 592)
	p.Aim(anchor, V(240, 1000), 140)

	if p.Phase != PhaseAiming {
		t.Errorf("Expected aiming phase, got %v", p.Phase)
	}
	if d := p.Pos.Dist(anchor); math.Abs(d-140) > 1e-9 {
		t.Errorf("Aim distance = %v, want 140", d)
	}
}

func TestAdvanceWallBounce(t *testing.T) {
	b := newTestBoard()
	p := Projectile{Pos: V(20, 300)}
	p.Launch(V(-10, 0), 0)

	step := p.Advance(b, testBounds(), testPhysics(), time.Millisecond)
	if step.Outcome != FlightContinues {
		t.Fatalf("Expected flight to continue, got %v", step.Outcome)
	}
	if step.Bounces != 1 {
		t.Errorf("Expected 1 bounce, got %d", step.Bounces)
	}
	if p.Pos.X != 16 {
		t.Errorf("Expected clamp to x=16, got %v", p.Pos.X)
	}
	if p.Vel.X != 10 {
		t.Errorf("Expected reflected velocity 10, got %v", p.Vel.X)
	}
}

func TestAdvanceCeiling(t *testing.T) {
	b := newTestBoard()
	p := Projectile{Pos: V(240, 40)}
	p.Launch(V(0, -30), 0)

	step := p.Advance(b, testBounds(), testPhysics(), time.Millisecond)
	if step.Outcome != FlightCollided {
		t.Fatalf("Expected ceiling contact, got %v", step.Outcome)
	}

	cell, ok := SnapCell(b, p.Pos)
	if !ok || cell != (Cell{0, 7}) {
		t.Errorf("SnapCell = %v, %v; want (0,7)", cell, ok)
	}
}

func TestAdvanceSubstepsDoNotTunnel(t *testing.T) {
	b := newTestBoard()
	b.Insert(Cell{5, 7}, ColorRed)
	target := b.Layout().Center(Cell{5, 7})

	// One frame would jump from well below to well above the sphere.
	p := Projectile{Pos: target.Add(V(0, 60))}
	p.Launch(V(0, -120), 0)

	step := p.Advance(b, testBounds(), testPhysics(), time.Millisecond)
	if step.Outcome != FlightCollided {
		t.Fatalf("Expected contact, got %v", step.Outcome)
	}
	if p.Pos.Y < target.Y {
		t.Errorf("Projectile passed through the sphere: y=%v, sphere y=%v", p.Pos.Y, target.Y)
	}
}

func TestAdvanceWatchdog(t *testing.T) {
	b := newTestBoard()
	phys := testPhysics()
	p := Projectile{Pos: V(240, 300)}
	p.Launch(V(10, 0), 0)

	if step := p.Advance(b, testBounds(), phys, phys.MaxFlight-time.Millisecond); step.Outcome != FlightContinues {
		t.Fatalf("Expected flight before watchdog, got %v", step.Outcome)
	}
	if step := p.Advance(b, testBounds(), phys, phys.MaxFlight); step.Outcome != FlightMissed {
		t.Errorf("Expected watchdog miss, got %v", step.Outcome)
	}
}

func TestAdvanceBottomExit(t *testing.T) {
	b := newTestBoard()
	p := Projectile{Pos: V(240, 650)}
	p.Launch(V(0, 10), 0)

	if step := p.Advance(b, testBounds(), testPhysics(), time.Millisecond); step.Outcome != FlightMissed {
		t.Errorf("Expected miss past the bottom, got %v", step.Outcome)
	}
}

func TestTouches(t *testing.T) {
	b := newTestBoard()
	b.Insert(Cell{0, 0}, ColorRed)

	if !b.Touches(V(24, 40), 1.8*16) {
		t.Error("Expected contact 24px below the sphere")
	}
	if b.Touches(V(24, 56), 1.8*16) {
		t.Error("Unexpected contact 40px below the sphere")
	}
}

func TestSnapCell(t *testing.T) {
	b := newTestBoard()

	// Equidistant from (0,0) and (0,1): the first in scan order wins.
	if cell, ok := SnapCell(b, V(40, 16)); !ok || cell != (Cell{0, 0}) {
		t.Errorf("Tie resolved to %v, want (0,0)", cell)
	}

	// Occupied cells are skipped.
	b.Insert(Cell{0, 0}, ColorRed)
	if cell, ok := SnapCell(b, V(26, 16)); !ok || cell != (Cell{0, 1}) {
		t.Errorf("SnapCell = %v, want (0,1)", cell)
	}
}
