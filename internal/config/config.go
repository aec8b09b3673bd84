// Package config provides YAML-based configuration for the tile-walking game
// variants: world size, view, player timing, movement rules, assets and sounds.
package config

import (
	"fmt"

	"github.com/vovakirdan/smolgame/internal/assets"
)

// SmolConfig contains all configuration for one game variant.
type SmolConfig struct {
	Title    string         `yaml:"title"`
	TickRate int            `yaml:"tick_rate"` // Update callbacks per second
	World    WorldConfig    `yaml:"world"`
	View     ViewConfig     `yaml:"view"`
	Player   PlayerConfig   `yaml:"player"`
	Movement MovementConfig `yaml:"movement"`
	Assets   AssetsConfig   `yaml:"assets"`
	Sounds   []SoundConfig  `yaml:"sounds"`
}

// WorldConfig defines the level grid and its generation.
type WorldConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	Walls     int  `yaml:"walls"`      // Walls scattered by world generation
	FillFloor bool `yaml:"fill_floor"` // Back-fill empty tiles with passable floor
}

// ViewConfig defines the visible window.
type ViewConfig struct {
	Cols     int `yaml:"cols"`
	Rows     int `yaml:"rows"`
	TileSize int `yaml:"tile_size"` // Pixel edge of a tile: 8 or 16
	Scale    int `yaml:"scale"`     // Window upscale factor on desktop
}

// PlayerConfig defines the player's spawn and movement timing.
type PlayerConfig struct {
	StartX   int `yaml:"start_x"`
	StartY   int `yaml:"start_y"`
	Cooldown int `yaml:"cooldown"` // Ticks between accepted moves
}

// MovementConfig selects the movement rules of a variant.
type MovementConfig struct {
	Diagonal bool `yaml:"diagonal"` // Allow two-axis steps with corner resolution
	Camera   bool `yaml:"camera"`   // Pan the view to keep the player in place
}

// AssetsConfig maps entity types to texture files.
type AssetsConfig struct {
	Dir    string `yaml:"dir"`
	Player string `yaml:"player"`
	Wall   string `yaml:"wall"`
	Floor  string `yaml:"floor"`
}

// SoundConfig is a named sound definition.
type SoundConfig struct {
	Name            string `yaml:"name"`
	assets.SoundDef `yaml:",inline"`
}

// Validate checks the values that the world cannot work without. Texture
// sizes are left to the texture registry, which rejects them fatally.
func (c SmolConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: world size must be positive, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.World.Walls < 0 {
		return fmt.Errorf("config: wall count must not be negative, got %d", c.World.Walls)
	}
	if c.View.Cols <= 0 || c.View.Rows <= 0 {
		return fmt.Errorf("config: view size must be positive, got %dx%d", c.View.Cols, c.View.Rows)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Player.Cooldown < 0 {
		return fmt.Errorf("config: player cooldown must not be negative, got %d", c.Player.Cooldown)
	}
	if c.Player.StartX < 0 || c.Player.StartX >= c.World.Width || c.Player.StartY < 0 || c.Player.StartY >= c.World.Height {
		return fmt.Errorf("config: player start (%d,%d) is outside the %dx%d world",
			c.Player.StartX, c.Player.StartY, c.World.Width, c.World.Height)
	}
	seen := make(map[string]bool, len(c.Sounds))
	for _, s := range c.Sounds {
		if s.Name == "" {
			return fmt.Errorf("config: sound without a name")
		}
		if seen[s.Name] {
			return fmt.Errorf("config: sound %q defined twice", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
