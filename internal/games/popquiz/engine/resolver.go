package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/popquiz/internal/config"
)

// MatchID identifies a pending match across the confirmation round trip.
type MatchID uint64

// Pending is a cluster waiting for external confirmation.
type Pending struct {
	ID      MatchID
	Members []Handle
	Color   Color
}

// Size returns the number of spheres in the cluster.
func (p Pending) Size() int {
	return len(p.Members)
}

// OutcomeKind is the result of evaluating a newly placed sphere.
type OutcomeKind uint8

const (
	NoMatch OutcomeKind = iota
	MatchPending
)

// Outcome is returned by Resolver.Evaluate.
type Outcome struct {
	Kind    OutcomeKind
	Pending Pending
}

// ConfirmResult describes a resolved match.
type ConfirmResult struct {
	Match         MatchID
	Awarded       bool
	Color         Color
	ClusterSize   int
	ClusterPoints int
	Orphans       int
	OrphanBonus   int
	FlatBonus     int
	Points        int  // Total awarded
	Cleared       bool // Board had no settled sphere left
	Reseeded      bool
	Events        []Event
}

// Resolver detects clusters and applies confirmed removals.
type Resolver struct {
	board   *Board
	scoring config.ScoringConfig
	physics config.PhysicsConfig
	rng     *rand.Rand
	lastID  MatchID
}

// NewResolver creates a resolver bound to a board.
func NewResolver(board *Board, scoring config.ScoringConfig, physics config.PhysicsConfig, rng *rand.Rand) *Resolver {
	return &Resolver{
		board:   board,
		scoring: scoring,
		physics: physics,
		rng:     rng,
	}
}

// Evaluate flood-fills from a newly placed sphere.
// Clusters smaller than the minimum size are left on the board.
func (r *Resolver) Evaluate(h Handle) Outcome {
	members := r.board.ConnectedSameColor(h)
	if len(members) < r.scoring.MinCluster {
		return Outcome{Kind: NoMatch}
	}
	r.lastID++
	return Outcome{
		Kind: MatchPending,
		Pending: Pending{
			ID:      r.lastID,
			Members: members,
			Color:   r.board.Sphere(h).Color,
		},
	}
}

// Confirm resolves a pending cluster. When awarded, members fade out and
// score size × points; orphans left by the removal start falling and score
// count × points × OrphanMultiplier; the flat bonus is added once.
// A declined match leaves the board untouched.
func (r *Resolver) Confirm(p Pending, awarded bool, now time.Duration) ConfirmResult {
	res := ConfirmResult{
		Match:   p.ID,
		Awarded: awarded,
		Color:   p.Color,
	}
	if !awarded {
		return res
	}

	for _, h := range p.Members {
		if r.board.Sphere(h).State == SphereSettled {
			r.board.Fade(h, now)
			res.ClusterSize++
		}
	}
	res.ClusterPoints = res.ClusterSize * p.Color.Points()

	orphans := r.board.FindOrphans()
	centerX := r.board.Layout().Width / 2
	for _, h := range orphans {
		r.board.Detach(h, r.fallVelocity(r.board.Sphere(h).Pos, centerX))
	}
	res.Orphans = len(orphans)
	res.OrphanBonus = res.Orphans * p.Color.Points() * r.scoring.OrphanMultiplier
	res.FlatBonus = r.scoring.FlatBonus

	res.Points = res.ClusterPoints + res.OrphanBonus + res.FlatBonus
	res.Cleared = r.board.IsCleared()
	return res
}

// fallVelocity gives an orphan a small kick away from the board center and downward.
func (r *Resolver) fallVelocity(pos Vec, centerX float64) Vec {
	speed := r.physics.FloatSpeed
	vx := r.rng.Float64() * speed * 0.5
	if pos.X < centerX {
		vx = -vx
	}
	vy := speed*0.25 + r.rng.Float64()*speed*0.75
	return Vec{X: vx, Y: vy}
}
