package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/popquiz/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{"arrow left aims", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionAimLeft, false},
		{"vim right aims", runeKey("l"), core.ActionAimRight, false},
		{"down pulls more", tea.KeyMsg{Type: tea.KeyDown}, core.ActionPullMore, false},
		{"w pulls less", runeKey("w"), core.ActionPullLess, false},
		{"space fires", tea.KeyMsg{Type: tea.KeySpace}, core.ActionFire, false},
		{"tab swaps", tea.KeyMsg{Type: tea.KeyTab}, core.ActionSwap, false},
		{"ctrl+s skips", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionSkip, false},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionPause, false},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isQuit := km.MapKey(tt.msg)
			if got != tt.want || isQuit != tt.isQuit {
				t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", tt.msg.String(), got, isQuit, tt.want, tt.isQuit)
			}
		})
	}
}

func TestMapAnswerKeyLeavesLettersToTheField(t *testing.T) {
	km := NewKeyMapper()

	for _, s := range []string{"q", "r", "p", "b", "a"} {
		if action, isQuit := km.MapAnswerKey(runeKey(s)); action != core.ActionNone || isQuit {
			t.Errorf("MapAnswerKey(%q) = (%v, %v), want it typed into the answer", s, action, isQuit)
		}
	}
	if action, _ := km.MapAnswerKey(tea.KeyMsg{Type: tea.KeyEnter}); action != core.ActionConfirm {
		t.Errorf("Enter should confirm, got %v", action)
	}
	if _, isQuit := km.MapAnswerKey(tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit {
		t.Error("Ctrl+C should still quit while answering")
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapMouse(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionMotion}, &frame)
	if frame.Pointer.Present {
		t.Fatal("Motion without a press should be ignored")
	}

	km.MapMouse(tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	if !frame.Pointer.Down || frame.Pointer.X != 5 || frame.Pointer.Y != 6 {
		t.Errorf("Unexpected pointer after press: %+v", frame.Pointer)
	}

	km.MapMouse(tea.MouseMsg{X: 7, Y: 6, Action: tea.MouseActionMotion}, &frame)
	if frame.Pointer.X != 7 {
		t.Errorf("Drag should move the pointer, got %+v", frame.Pointer)
	}

	km.MapMouse(tea.MouseMsg{X: 8, Y: 9, Action: tea.MouseActionRelease}, &frame)
	if frame.Pointer.Down || frame.Pointer.X != 8 {
		t.Errorf("Unexpected pointer after release: %+v", frame.Pointer)
	}

	km.MapMouse(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)
	if frame.Pointer.Down {
		t.Error("Right button should not aim")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("b"), MenuActionBack},
		{runeKey("q"), MenuActionQuit},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
