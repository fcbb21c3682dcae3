// Package popquiz adapts the sphere engine to the terminal platform:
// keyboard and mouse aiming, the trivia question lifecycle and rendering
// into a core.Screen.
package popquiz

import (
	"strings"
	"time"

	"github.com/vovakirdan/popquiz/internal/config"
	"github.com/vovakirdan/popquiz/internal/core"
	"github.com/vovakirdan/popquiz/internal/games/popquiz/engine"
	"github.com/vovakirdan/popquiz/internal/registry"
	"github.com/vovakirdan/popquiz/internal/storage"
)

// configPath stores the custom config path set via CLI.
var configPath string

// SetConfigPath sets the config file used by registry-created games.
func SetConfigPath(path string) {
	configPath = path
}

// bannerDuration is how long answer feedback stays on screen, in engine time.
const bannerDuration = 2 * time.Second

// RoundStats extends the engine counters with trivia results.
type RoundStats struct {
	engine.Stats
	Questions int
	Correct   int
	Skipped   int
}

type banner struct {
	text  string
	color core.Color
	until time.Duration
}

// Game implements registry.Game for one difficulty preset.
type Game struct {
	preset  config.DifficultyPreset
	cfg     config.PopQuizConfig
	profile config.Profile

	runtime core.RuntimeConfig
	eng     *engine.Engine
	dt      time.Duration

	aim      aimState
	view     viewport
	quiz     quizState
	stats    RoundStats
	banner   banner
	hook     func(engine.Event)
	paused   bool
	tooSmall bool
}

// New creates a game for preset using the configured config file.
// A config that fails to load falls back to the built-in defaults.
func New(preset config.DifficultyPreset) *Game {
	cfg, err := config.LoadPopQuiz(configPath)
	if err != nil {
		cfg = config.DefaultPopQuizConfig()
	}
	return NewWithConfig(cfg, preset)
}

// NewWithConfig creates a game from an explicit configuration.
// Unknown presets use the normal profile.
func NewWithConfig(cfg config.PopQuizConfig, preset config.DifficultyPreset) *Game {
	profile, err := cfg.Profile(preset)
	if err != nil {
		preset = config.DifficultyNormal
		profile, err = cfg.Profile(preset)
		if err != nil {
			profile = config.DefaultPopQuizConfig().Difficulties[config.DifficultyNormal]
		}
	}
	return &Game{
		preset:  preset,
		cfg:     cfg,
		profile: profile,
	}
}

// ID returns the difficulty preset name.
func (g *Game) ID() string {
	return string(g.preset)
}

// Title returns the display name.
func (g *Game) Title() string {
	name := string(g.preset)
	if name == "" {
		return "PopQuiz"
	}
	return "PopQuiz (" + strings.ToUpper(name[:1]) + name[1:] + ")"
}

// SetEventHook registers fn to receive every engine event, in order.
func (g *Game) SetEventHook(fn func(engine.Event)) {
	g.hook = fn
}

// Reset starts a new round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	if g.runtime.Seed == 0 {
		g.runtime.Seed = time.Now().UnixNano()
	}
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = 60
	}
	g.dt = time.Second / time.Duration(g.runtime.TickRate)

	g.eng = engine.New(g.cfg, g.profile, g.runtime.Seed)
	g.aim = newAimState(g.cfg.Physics)
	g.quiz = quizState{}
	g.stats = RoundStats{}
	g.banner = banner{}
	g.paused = false
	g.resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the viewport to a new terminal size without restarting the round.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.resize(w, h)
}

func (g *Game) resize(w, h int) {
	g.view = newViewport(g.eng, w, h)
	g.tooSmall = !g.view.fits()
}

// Step advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil {
		g.Reset(core.DefaultConfig())
	}

	over := g.eng.Status() != engine.RoundActive
	if in.Has(core.ActionPause) && !over && !g.tooSmall {
		g.paused = !g.paused
	}
	if g.tooSmall || g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.quiz.open && in.Has(core.ActionSkip) {
		//nolint:errcheck // only fails without a pending match, checked above
		g.Skip()
	}

	var input engine.Input
	if !g.quiz.open && !over {
		input = g.aim.update(in, g.view, g.eng)
	}

	res := g.eng.Step(input, g.dt)
	g.dispatch(res.Events)

	if p, ok := g.eng.Pending(); ok && (!g.quiz.open || g.quiz.match != p.ID) {
		g.quiz.begin(p)
		g.stats.Questions++
	}

	return core.StepResult{State: g.State()}
}

// dispatch forwards events to the hook.
func (g *Game) dispatch(events []engine.Event) {
	if g.hook == nil {
		return
	}
	for _, ev := range events {
		g.hook(ev)
	}
}

// State returns the current coarse state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	status := g.eng.Status()
	return core.GameState{
		Score:          g.eng.Score(),
		GameOver:       status != engine.RoundActive,
		Won:            status == engine.RoundWon,
		Paused:         g.paused,
		AwaitingAnswer: g.quiz.open,
	}
}

// Stats returns the round counters.
func (g *Game) Stats() RoundStats {
	s := g.stats
	if g.eng != nil {
		s.Stats = g.eng.Stats()
	}
	return s
}

// RoundRecord summarizes the round for the leaderboard.
func (g *Game) RoundRecord(player string) storage.RoundRecord {
	s := g.Stats()
	rec := storage.RoundRecord{
		Difficulty: string(g.preset),
		Player:     player,
		Score:      g.State().Score,
		Outcome:    storage.OutcomeQuit,
		Shots:      s.Shots,
		Pops:       s.Pops,
		Orphans:    s.Orphans,
		Questions:  s.Questions,
		Correct:    s.Correct,
	}
	if g.eng != nil {
		rec.Duration = g.eng.Now()
		switch g.eng.Status() {
		case engine.RoundWon:
			rec.Outcome = storage.OutcomeWon
		case engine.RoundLost:
			rec.Outcome = storage.OutcomeLost
		}
	}
	return rec
}

func (g *Game) showBanner(text string, c core.Color) {
	g.banner = banner{text: text, color: c, until: g.eng.Now() + bannerDuration}
}

func init() {
	for i, preset := range config.Presets() {
		registry.Register(string(preset), i, func() registry.Game {
			return New(preset)
		})
	}
}
