package engine

// EventKind classifies notifications for rendering, audio and scoring collaborators.
type EventKind uint8

const (
	EventUnknown         EventKind = iota
	EventShotFired                 // Projectile launched
	EventWallBounce                // Projectile reflected off a side wall
	EventSphereSettled             // Projectile snapped into Cell
	EventMiss                      // Watchdog or bottom exit
	EventMatchPending              // Cluster found, awaiting confirmation
	EventMatchRejected             // Pending cluster declined
	EventClusterPopped             // Pending cluster confirmed and removed
	EventOrphanAvalanche           // Spheres detached from the ceiling
	EventRowAdded                  // New top row spawned
	EventBoardReseeded             // Board emptied and refilled
	EventRoundWon
	EventRoundLost
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventShotFired:
		return "shot_fired"
	case EventWallBounce:
		return "wall_bounce"
	case EventSphereSettled:
		return "sphere_settled"
	case EventMiss:
		return "miss"
	case EventMatchPending:
		return "match_pending"
	case EventMatchRejected:
		return "match_rejected"
	case EventClusterPopped:
		return "cluster_popped"
	case EventOrphanAvalanche:
		return "orphan_avalanche"
	case EventRowAdded:
		return "row_added"
	case EventBoardReseeded:
		return "board_reseeded"
	case EventRoundWon:
		return "round_won"
	case EventRoundLost:
		return "round_lost"
	default:
		return "unknown"
	}
}

// Event is a single notification. Fields beyond Kind, Tick and Score are
// filled only where they mean something for the kind.
type Event struct {
	Kind   EventKind
	Tick   uint64
	Score  int // Score after the event
	Points int
	Count  int
	Color  Color
	Cell   Cell
	Match  MatchID
}
