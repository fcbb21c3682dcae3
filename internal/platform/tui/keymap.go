package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/popquiz/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action while aiming.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "left", "a", "h":
		return core.ActionAimLeft, false
	case "right", "d", "l":
		return core.ActionAimRight, false
	case "down", "s", "j":
		return core.ActionPullMore, false
	case "up", "w", "k":
		return core.ActionPullLess, false
	case " ":
		return core.ActionFire, false
	case "tab", "x":
		return core.ActionSwap, false
	case "ctrl+s":
		return core.ActionSkip, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapAnswerKey translates a key while a question is open. Keys that are not
// bound here belong to the answer text field.
func (km *KeyMapper) MapAnswerKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c":
		return core.ActionQuit, true
	case "enter":
		return core.ActionConfirm, false
	case "ctrl+s":
		return core.ActionSkip, false
	case "esc":
		return core.ActionPause, false
	}

	return core.ActionNone, false
}

// MapMouse updates the pointer of an input frame from a mouse message.
// Only the left button aims; other buttons are ignored.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, frame *core.InputFrame) {
	p := frame.Pointer
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		p.Down = true
	case tea.MouseActionRelease:
		p.Down = false
	case tea.MouseActionMotion:
		if !p.Down {
			return
		}
	}
	p.X, p.Y = msg.X, msg.Y
	p.Present = true
	frame.Pointer = p
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
