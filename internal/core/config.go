package core

// RuntimeConfig describes the terminal a game renders into.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // 0 means the platform layer picks one from the clock
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the coarse status the platform layer reacts to.
type GameState struct {
	Score          int
	GameOver       bool
	Won            bool
	Paused         bool
	AwaitingAnswer bool // A trivia question is open; keys go to the answer prompt
}

// StepResult is returned by a game after each simulation tick.
type StepResult struct {
	State GameState
}
