package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/popquiz/internal/core"
	"github.com/vovakirdan/popquiz/internal/storage"
	"github.com/vovakirdan/popquiz/internal/trivia"
)

// stubQuiz holds one open question and records the verdicts it receives.
type stubQuiz struct {
	question trivia.Question
	open     bool
	verdicts []bool
}

func (s *stubQuiz) ID() string { return "stub" }
func (s *stubQuiz) Title() string { return "Stub" }
func (s *stubQuiz) Reset(core.RuntimeConfig) {}
func (s *stubQuiz) Render(*core.Screen) {}
func (s *stubQuiz) Resize(int, int) {}
func (s *stubQuiz) SetDraft(string) {}
func (s *stubQuiz) State() core.GameState { return core.GameState{AwaitingAnswer: s.open} }
func (s *stubQuiz) Step(core.InputFrame) core.StepResult {
	return core.StepResult{State: s.State()}
}

func (s *stubQuiz) QuestionRequest() (trivia.Request, bool) { return trivia.Request{}, false }
func (s *stubQuiz) SetQuestion(uint64, trivia.Question) bool { return false }
func (s *stubQuiz) RoundRecord(string) storage.RoundRecord { return storage.RoundRecord{} }

func (s *stubQuiz) Question() (trivia.Question, bool) {
	return s.question, s.open
}

func (s *stubQuiz) Answer(correct bool) error {
	s.verdicts = append(s.verdicts, correct)
	s.open = false
	return nil
}

func typeAnswer(m GameModel, text string) GameModel {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(GameModel)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(GameModel)
}

func TestSubmitUsesGateVerdict(t *testing.T) {
	tests := []struct {
		name    string
		typed   string
		correct bool
	}{
		{"accepted alias", "Six!", true},
		{"rejected", "seven", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &stubQuiz{
				question: trivia.Question{ID: "hex", Prompt: "Sides of a hexagon?", Answers: []string{"6", "six"}},
				open:     true,
			}
			gate := trivia.NewGate(nil)
			m := NewGameModel(game, nil, gate, "ana", core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
			m.answer.Focus()

			next, _ := m.Update(TickMsg{})
			m = next.(GameModel)
			if !m.State().AwaitingAnswer {
				t.Fatal("Expected the question to be open")
			}

			typeAnswer(m, tt.typed)

			if len(game.verdicts) != 1 || game.verdicts[0] != tt.correct {
				t.Fatalf("Expected verdict %v, got %v", tt.correct, game.verdicts)
			}
			s := gate.Stats()
			if s.Answered != 1 {
				t.Errorf("Expected 1 answer recorded by the gate, got %d", s.Answered)
			}
			if (s.Correct == 1) != tt.correct {
				t.Errorf("Gate counted %d correct, verdict was %v", s.Correct, tt.correct)
			}
		})
	}
}
