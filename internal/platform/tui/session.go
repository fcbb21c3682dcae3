package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/popquiz/internal/config"
	"github.com/vovakirdan/popquiz/internal/core"
	"github.com/vovakirdan/popquiz/internal/games/popquiz/engine"
	"github.com/vovakirdan/popquiz/internal/registry"
	"github.com/vovakirdan/popquiz/internal/storage"
	"github.com/vovakirdan/popquiz/internal/trivia"
)

// hookable is implemented by games that report engine events.
type hookable interface {
	SetEventHook(fn func(engine.Event))
}

// SessionOptions are the shared dependencies of a session.
type SessionOptions struct {
	Store  *storage.Store
	Gate   *trivia.Gate
	Quiz   config.PopQuizConfig
	Sink   EventSink
	Player string
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel runs menu, game and scoreboard inside one program. It is
// the top-level model of SSH sessions and of local play without a preset.
type SessionModel struct {
	opts      SessionOptions
	config    core.RuntimeConfig
	view      sessionView
	menu      MenuModel
	scores    ScoreboardModel
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(opts SessionOptions, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, opts.Quiz, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates in the menu. The menu quits its own program
// on selection, so those commands are swallowed here.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.scores.embedded = true
		m.view = viewScores
		return m, m.scores.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.startGame(selected.GameID)
	}

	return m, cmd
}

// startGame creates the selected game and hands it the session's sink.
func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.menu = NewMenuModel(m.opts.Store, m.opts.Quiz, m.config)
		return m, nil
	}
	qg, ok := game.(QuizGame)
	if !ok {
		m.menu = NewMenuModel(m.opts.Store, m.opts.Quiz, m.config)
		return m, nil
	}
	if h, ok := game.(hookable); ok && m.opts.Sink != nil {
		if fn := m.opts.Sink(m.opts.Player, id); fn != nil {
			h.SetEventHook(fn)
		}
	}

	m.config = m.menu.Config()
	gameModel := NewGameModel(qg, m.opts.Store, m.opts.Gate, m.opts.Player, m.config)
	m.gameModel = &gameModel
	m.view = viewGame
	return m, m.gameModel.Init()
}

// updateGame handles updates while playing.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateScores handles updates on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.opts.Store, m.opts.Quiz, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.gameModel.View()
	case viewScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs a full session in the local terminal.
func RunSession(opts SessionOptions, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(opts, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
