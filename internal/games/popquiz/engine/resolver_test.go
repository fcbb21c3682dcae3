package engine

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/popquiz/internal/config"
)

func newTestResolver(b *Board, minCluster int) *Resolver {
	cfg := config.DefaultPopQuizConfig()
	scoring := cfg.Scoring
	scoring.MinCluster = minCluster
	return NewResolver(b, scoring, cfg.Physics, rand.New(rand.NewSource(7)))
}

func TestEvaluateThreshold(t *testing.T) {
	tests := []struct {
		name       string
		minCluster int
		cells      []Cell
		want       OutcomeKind
	}{
		{"pair below default threshold", 3, []Cell{{0, 0}, {0, 1}}, NoMatch},
		{"triple meets default threshold", 3, []Cell{{0, 0}, {0, 1}, {0, 2}}, MatchPending},
		{"pair meets lowered threshold", 2, []Cell{{0, 0}, {0, 1}}, MatchPending},
		{"single never matches", 2, []Cell{{0, 0}}, NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard()
			hs := place(b, ColorYellow, tt.cells...)
			r := newTestResolver(b, tt.minCluster)

			out := r.Evaluate(hs[len(hs)-1])
			if out.Kind != tt.want {
				t.Fatalf("Evaluate = %v, want %v", out.Kind, tt.want)
			}
			if out.Kind == MatchPending {
				if out.Pending.Size() != len(tt.cells) {
					t.Errorf("Pending size = %d, want %d", out.Pending.Size(), len(tt.cells))
				}
				if out.Pending.Color != ColorYellow {
					t.Errorf("Pending color = %v", out.Pending.Color)
				}
			}
		})
	}
}

func TestEvaluateAssignsFreshIDs(t *testing.T) {
	b := newTestBoard()
	hs := place(b, ColorRed, Cell{0, 0}, Cell{0, 1}, Cell{0, 2})
	r := newTestResolver(b, 3)

	first := r.Evaluate(hs[2]).Pending.ID
	second := r.Evaluate(hs[2]).Pending.ID
	if first == 0 || second == first {
		t.Errorf("Expected distinct non-zero ids, got %d and %d", first, second)
	}
}

func TestConfirmAwarded(t *testing.T) {
	b := newTestBoard()
	reds := place(b, ColorRed, Cell{0, 0}, Cell{0, 1}, Cell{1, 0})
	hanging := b.Insert(Cell{2, 0}, ColorBlue) // held up only by (1,0)
	b.Insert(Cell{0, 5}, ColorGreen)

	r := newTestResolver(b, 3)
	out := r.Evaluate(reds[2])
	if out.Kind != MatchPending {
		t.Fatal("Expected a pending match")
	}

	res := r.Confirm(out.Pending, true, 0)

	if res.ClusterSize != 3 || res.ClusterPoints != 300 {
		t.Errorf("Cluster = %d spheres / %d points, want 3 / 300", res.ClusterSize, res.ClusterPoints)
	}
	if res.Orphans != 1 || res.OrphanBonus != 200 {
		t.Errorf("Orphans = %d / %d points, want 1 / 200", res.Orphans, res.OrphanBonus)
	}
	if res.FlatBonus != 500 {
		t.Errorf("FlatBonus = %d, want 500", res.FlatBonus)
	}
	if res.Points != 1000 {
		t.Errorf("Points = %d, want 1000", res.Points)
	}
	if res.Cleared {
		t.Error("Board still holds the green sphere")
	}

	for _, h := range reds {
		if b.Sphere(h).State != SphereFading {
			t.Errorf("Cluster member %d is %v, want fading", h, b.Sphere(h).State)
		}
	}
	if b.Sphere(hanging).State != SphereFloating {
		t.Errorf("Orphan is %v, want floating", b.Sphere(hanging).State)
	}
	if b.SettledCount() != 1 {
		t.Errorf("Expected 1 settled sphere left, got %d", b.SettledCount())
	}
}

func TestConfirmDeclinedLeavesBoard(t *testing.T) {
	b := newTestBoard()
	reds := place(b, ColorRed, Cell{0, 0}, Cell{0, 1}, Cell{0, 2})
	r := newTestResolver(b, 3)

	out := r.Evaluate(reds[0])
	res := r.Confirm(out.Pending, false, 0)

	if res.Awarded || res.Points != 0 {
		t.Errorf("Declined match scored %d", res.Points)
	}
	if b.SettledCount() != 3 {
		t.Errorf("Declined match removed spheres: %d left", b.SettledCount())
	}
}

func TestConfirmClearsBoard(t *testing.T) {
	b := newTestBoard()
	cyans := place(b, ColorCyan, Cell{0, 0}, Cell{0, 1}, Cell{0, 2})
	r := newTestResolver(b, 3)

	res := r.Confirm(r.Evaluate(cyans[1]).Pending, true, 0)
	if !res.Cleared {
		t.Error("Expected cleared board")
	}
	if res.Points != 3*200+500 {
		t.Errorf("Points = %d, want %d", res.Points, 3*200+500)
	}
}
