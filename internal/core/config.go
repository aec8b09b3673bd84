package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	TickRate  int    // Simulation ticks per second
	Seed      int64  // RNG seed for world generation
	AssetsDir string // Directory holding texture files; empty means the game's configured dir
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 20,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Tick    uint64 // Ticks simulated since Reset
	Moves   int    // Accepted player moves
	Bumps   int    // Rejected player moves
	Quit    bool   // The player asked to terminate
	PlayerX int    // Player tile column
	PlayerY int    // Player tile row
}

// Cue asks the platform to play a registered sound on a channel.
type Cue struct {
	Sound   string
	Channel int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Cues  []Cue // Sounds triggered during this tick, in order
}
