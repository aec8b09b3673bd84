package config

import (
	_ "embed"

	"github.com/vovakirdan/smolgame/internal/assets"
)

//go:embed defaults/smolgame.yaml
var defaultSmolYAML []byte

//go:embed defaults/smolgame_mini.yaml
var defaultMiniYAML []byte

// Variant identifiers.
const (
	VariantSmol = "smolgame"
	VariantMini = "smolgame_mini"
)

func defaultSounds() []SoundConfig {
	return []SoundConfig{
		{Name: "collide", SoundDef: assets.SoundDef{Notes: "c2c1", Speed: 4}},
		{Name: "level", SoundDef: assets.SoundDef{Notes: "c3e3g3c4c4"}},
	}
}

func defaultAssets() AssetsConfig {
	return AssetsConfig{
		Dir:    ".",
		Player: "player.png",
		Wall:   "wall.png",
		Floor:  "floor.png",
	}
}

// DefaultSmolConfig returns the larger variant: a 32x32 level seen through a
// panning 16x12 window of 16px tiles.
func DefaultSmolConfig() SmolConfig {
	return SmolConfig{
		Title:    "smolgame",
		TickRate: 20,
		World: WorldConfig{
			Width:     32,
			Height:    32,
			Walls:     64,
			FillFloor: true,
		},
		View: ViewConfig{
			Cols:     16,
			Rows:     12,
			TileSize: 16,
			Scale:    4,
		},
		Player: PlayerConfig{
			StartX:   8,
			StartY:   6,
			Cooldown: 2,
		},
		Movement: MovementConfig{
			Diagonal: true,
			Camera:   true,
		},
		Assets: defaultAssets(),
		Sounds: defaultSounds(),
	}
}

// DefaultMiniConfig returns the smaller variant: a fixed 16x12 screen of 8px
// tiles with single-axis movement and no floor.
func DefaultMiniConfig() SmolConfig {
	return SmolConfig{
		Title:    "smolgame mini",
		TickRate: 20,
		World: WorldConfig{
			Width:  16,
			Height: 12,
			Walls:  24,
		},
		View: ViewConfig{
			Cols:     16,
			Rows:     12,
			TileSize: 8,
			Scale:    6,
		},
		Player: PlayerConfig{
			StartX:   8,
			StartY:   6,
			Cooldown: 2,
		},
		Assets: defaultAssets(),
		Sounds: defaultSounds(),
	}
}

// defaultFor returns the embedded YAML and hardcoded fallback of a variant.
func defaultFor(variant string) ([]byte, SmolConfig, bool) {
	switch variant {
	case VariantSmol:
		return defaultSmolYAML, DefaultSmolConfig(), true
	case VariantMini:
		return defaultMiniYAML, DefaultMiniConfig(), true
	default:
		return nil, SmolConfig{}, false
	}
}
