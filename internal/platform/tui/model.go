package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/popquiz/internal/core"
	"github.com/vovakirdan/popquiz/internal/registry"
	"github.com/vovakirdan/popquiz/internal/storage"
	"github.com/vovakirdan/popquiz/internal/trivia"
)

// answerLimit caps the length of a typed answer.
const answerLimit = 64

// QuizGame is a registry game that pauses on trivia questions.
type QuizGame interface {
	registry.Game

	Resize(w, h int)
	QuestionRequest() (trivia.Request, bool)
	SetQuestion(match uint64, q trivia.Question) bool
	Question() (trivia.Question, bool)
	SetDraft(text string)
	Answer(correct bool) error
	RoundRecord(player string) storage.RoundRecord
}

// questionMsg delivers a fetched question for a match.
type questionMsg struct {
	match    uint64
	question trivia.Question
}

// askCmd fetches a question off the update loop.
func askCmd(gate *trivia.Gate, req trivia.Request) tea.Cmd {
	return func() tea.Msg {
		return questionMsg{
			match:    req.Match,
			question: gate.Ask(context.Background(), req),
		}
	}
}

// GameModel runs one game with its trivia prompt.
type GameModel struct {
	game       QuizGame
	screen     *core.Screen
	store      *storage.Store
	gate       *trivia.Gate
	player     string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	answer     textinput.Model
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	saved      bool // Whether the round has been saved
}

// NewGameModel creates a model for game. A nil store disables score saving.
func NewGameModel(game QuizGame, store *storage.Store, gate *trivia.Gate, player string, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if gate == nil {
		gate = trivia.NewGate(nil)
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = answerLimit

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		gate:       gate,
		player:     player,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		answer:     ti,
	}
}

// Init starts the round and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouse(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case questionMsg:
		if m.game.SetQuestion(msg.match, msg.question) {
			m.answer.Reset()
			m.game.SetDraft("")
			return m, m.answer.Focus()
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey routes keys to the answer field while a question is open and to
// the aiming controls otherwise.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyF2 {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.saveScreenshot()
		return m, nil
	}

	if m.gameState.AwaitingAnswer && !m.gameState.Paused {
		action, isQuit := m.keyMapper.MapAnswerKey(msg)
		if isQuit {
			return m.quit()
		}
		switch action {
		case core.ActionConfirm:
			m.submit()
			return m, nil
		case core.ActionNone:
			var cmd tea.Cmd
			m.answer, cmd = m.answer.Update(msg)
			m.game.SetDraft(m.answer.Value())
			return m, cmd
		default:
			m.inputFrame.Set(action)
			return m, nil
		}
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		return m.quit()
	}

	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		if m.standalone {
			return m.quit()
		}
		m.saveRound()
		m.backToMenu = true
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// submit has the gate judge the typed answer and hands its verdict to the
// game.
func (m *GameModel) submit() {
	q, ok := m.game.Question()
	if !ok {
		return
	}
	correct := m.gate.Record(q, m.answer.Value())
	//nolint:errcheck // Only fails when the question closed in between
	m.game.Answer(correct)
	m.answer.Reset()
	m.answer.Blur()
	m.game.SetDraft("")
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.answer.Reset()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if req, ok := m.game.QuestionRequest(); ok {
		cmds = append(cmds, askCmd(m.gate, req))
	}

	if m.gameState.GameOver {
		m.saveRound()
	}

	return m, tea.Batch(cmds...)
}

// saveRound stores the round once, if anything was scored.
func (m *GameModel) saveRound() {
	if m.saved || m.store == nil || m.gameState.Score <= 0 {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRound(m.game.RoundRecord(m.player))
	m.saved = true
}

func (m GameModel) quit() (tea.Model, tea.Cmd) {
	m.saveRound()
	m.quitting = true
	return m, tea.Quit
}

// saveScreenshot writes the current screen as plain text under ~/.popquiz.
func (m *GameModel) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("tui: screenshot: %w", err)
	}
	dir := filepath.Join(home, ".popquiz", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("tui: screenshot: %w", err)
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), []byte(screenshotText(m.screen)), 0o600)
}

// screenshotText returns the screen as plain lines without trailing blanks.
func screenshotText(s *core.Screen) string {
	lines := make([]string, s.Height())
	for y := range lines {
		lines[y] = strings.TrimRight(s.Row(y), " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a single game in the local terminal.
func Run(game QuizGame, store *storage.Store, gate *trivia.Gate, player string, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, gate, player, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
