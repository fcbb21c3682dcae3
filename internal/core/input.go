package core

// Action is a semantic input, abstracted from physical keys.
type Action int

const (
	ActionNone      Action = iota
	ActionAimLeft          // A, Left arrow
	ActionAimRight         // D, Right arrow
	ActionPullMore         // S, Down arrow
	ActionPullLess         // W, Up arrow
	ActionFire             // Space
	ActionSwap             // Tab, X
	ActionSkip             // Ctrl+S while a question is open
	ActionConfirm          // Enter
	ActionBack             // Esc, B
	ActionRestart          // R after the round ended
	ActionPause            // P
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAimLeft:
		return "AimLeft"
	case ActionAimRight:
		return "AimRight"
	case ActionPullMore:
		return "PullMore"
	case ActionPullLess:
		return "PullLess"
	case ActionFire:
		return "Fire"
	case ActionSwap:
		return "Swap"
	case ActionSkip:
		return "Skip"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Pointer is the mouse state in screen cells.
type Pointer struct {
	X, Y    int
	Down    bool // Left button held
	Present bool // A mouse event arrived this session
}

// InputFrame collects the input for one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
	Pointer Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear drops the frame's actions. Pointer state persists across frames
// because terminals report only button transitions.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	c.Pointer = f.Pointer
	return c
}
