// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/smolgame/internal/assets"
	"github.com/vovakirdan/smolgame/internal/core"
)

// Game is the core interface that all games must implement.
// Games contain pure logic with no engine dependencies (no ebiten, no Bubble Tea).
// The platform handles input mapping, timing, sound playback and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "smolgame").
	// Used for CLI commands and session history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh world and loads its assets.
	// The RuntimeConfig provides tick rate, RNG seed and asset directory.
	// An error means the game cannot run at all (e.g. an unsupported texture size).
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick.
	// Returns the resulting state and the sound cues raised during the tick.
	Step(in core.InputFrame) core.StepResult

	// Render blits the visible tiles onto dst. Every call is a full redraw.
	Render(dst core.Canvas)

	// State returns the current game state.
	State() core.GameState

	// View returns the visible window in tiles.
	View() core.ViewSize

	// TickRate returns the simulation rate in ticks per second chosen at Reset.
	TickRate() int

	// Textures returns the atlas the game's texture names resolve against.
	Textures() *assets.TextureRegistry

	// Sounds returns the sounds the game's cues refer to.
	Sounds() *assets.SoundRegistry
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
