// Package smol implements the tile-walking game in two variants: a 32x32
// level seen through a panning window, and a single-screen mini level.
package smol

import (
	"fmt"
	"image/color"
	"math/rand"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/smolgame/internal/assets"
	"github.com/vovakirdan/smolgame/internal/config"
	"github.com/vovakirdan/smolgame/internal/core"
	"github.com/vovakirdan/smolgame/internal/registry"
	"github.com/vovakirdan/smolgame/internal/world"
)

// Sound played while the sound key is held.
const (
	SoundLevel   = "level"
	ChannelLevel = 1
)

// configPath stores the custom config path set via CLI
var configPath string

// logger receives asset warnings raised during Reset
var logger = log.Default()

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger used for asset loading messages.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	logger = l
}

// Game implements both variants of the tile-walking game.
type Game struct {
	variant string

	// Configuration
	runtime  core.RuntimeConfig
	cfg      config.SmolConfig
	tickRate int

	// Owned state
	world    *world.World
	textures *assets.TextureRegistry
	sounds   *assets.SoundRegistry

	tick uint64
	quit bool
}

// New creates the larger, camera-panning variant.
func New() *Game {
	return &Game{variant: config.VariantSmol}
}

// NewMini creates the single-screen variant.
func NewMini() *Game {
	return &Game{variant: config.VariantMini}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == config.VariantMini {
		return "Smol Game (Mini)"
	}
	return "Smol Game"
}

// Reset loads the variant's configuration, registers its textures and sounds,
// and generates a new world from the runtime seed.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, err := config.LoadSmol(g.variant, configPath)
	if err != nil {
		return fmt.Errorf("smol: %w", err)
	}

	g.runtime = runtime
	g.cfg = cfg
	g.tickRate = runtime.TickRate
	if g.tickRate <= 0 {
		g.tickRate = cfg.TickRate
	}

	dir := runtime.AssetsDir
	if dir == "" {
		dir = cfg.Assets.Dir
	}
	if err := g.loadAssets(dir); err != nil {
		return err
	}

	g.world = world.New(world.Options{
		Width:    cfg.World.Width,
		Height:   cfg.World.Height,
		ViewCols: cfg.View.Cols,
		ViewRows: cfg.View.Rows,
		Diagonal: cfg.Movement.Diagonal,
		Camera:   cfg.Movement.Camera,
	})
	g.world.Generate(rand.New(rand.NewSource(runtime.Seed)), cfg.World.Walls, cfg.World.FillFloor)
	g.world.AddEntity(world.NewPlayer(world.Tile{X: cfg.Player.StartX, Y: cfg.Player.StartY}, cfg.Player.Cooldown))

	g.tick = 0
	g.quit = false
	return nil
}

// loadAssets registers every texture and sound the world refers to. Missing
// texture files fall back to the placeholder; an unsupported tile size or a
// malformed sound is returned as an error.
func (g *Game) loadAssets(dir string) error {
	g.textures = assets.NewTextureRegistry(dir, logger)
	size := g.cfg.View.TileSize

	specs := []assets.TextureSpec{
		{Name: world.TexturePlayer, Size: size, Path: g.cfg.Assets.Player, ColorKey: color.Black},
		{Name: world.TextureWall, Size: size, Path: g.cfg.Assets.Wall},
	}
	if g.cfg.World.FillFloor {
		specs = append(specs, assets.TextureSpec{Name: world.TextureFloor, Size: size, Path: g.cfg.Assets.Floor})
	}
	for _, spec := range specs {
		if _, err := g.textures.Register(spec); err != nil {
			return fmt.Errorf("smol: texture %q from %s: %w", spec.Name, filepath.Join(dir, spec.Path), err)
		}
	}

	g.sounds = assets.NewSoundRegistry()
	for _, s := range g.cfg.Sounds {
		if _, err := g.sounds.Register(s.Name, s.SoundDef); err != nil {
			return fmt.Errorf("smol: %w", err)
		}
	}
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.quit {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if in.Has(core.ActionQuit) {
		g.quit = true
		return core.StepResult{State: g.State()}
	}

	g.world.Update(in)
	if in.Has(core.ActionSound) {
		g.world.Cue(SoundLevel, ChannelLevel)
	}

	return core.StepResult{
		State: g.State(),
		Cues:  g.world.DrainCues(),
	}
}

// Render blits structures then entities onto dst.
func (g *Game) Render(dst core.Canvas) {
	g.world.Draw(dst)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Tick:  g.tick,
		Quit:  g.quit,
		Moves: g.world.Moves(),
		Bumps: g.world.Bumps(),
	}
	if p := g.world.Player(); p != nil {
		st.PlayerX = p.Pos.X
		st.PlayerY = p.Pos.Y
	}
	return st
}

// View returns the visible window.
func (g *Game) View() core.ViewSize {
	return core.ViewSize{
		Cols:     g.cfg.View.Cols,
		Rows:     g.cfg.View.Rows,
		TileSize: g.cfg.View.TileSize,
		Scale:    g.cfg.View.Scale,
	}
}

// TickRate returns the simulation rate chosen at Reset.
func (g *Game) TickRate() int {
	return g.tickRate
}

// Textures returns the game's texture atlas.
func (g *Game) Textures() *assets.TextureRegistry {
	return g.textures
}

// Sounds returns the game's sound table.
func (g *Game) Sounds() *assets.SoundRegistry {
	return g.sounds
}

// World exposes the level for inspection by tests and debug overlays.
func (g *Game) World() *world.World {
	return g.world
}

// Register the games with the registry
func init() {
	registry.Register(config.VariantSmol, func() registry.Game {
		return New()
	})
	registry.Register(config.VariantMini, func() registry.Game {
		return NewMini()
	})
}
