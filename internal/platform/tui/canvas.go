package tui

import (
	"github.com/vovakirdan/smolgame/internal/core"
	"github.com/vovakirdan/smolgame/internal/world"
)

// CellWidth is the number of terminal columns one tile occupies. Two columns
// keep tiles roughly square in most terminal fonts.
const CellWidth = 2

// Glyph is the terminal stand-in for a texture.
type Glyph struct {
	Text  string // CellWidth runes
	Color core.Color
}

// DefaultGlyphs maps the built-in textures to terminal glyphs.
func DefaultGlyphs() map[string]Glyph {
	return map[string]Glyph{
		world.TexturePlayer: {Text: "@@", Color: core.ColorBrightYellow},
		world.TextureWall:   {Text: "##", Color: core.ColorGray},
		world.TextureFloor:  {Text: "..", Color: core.ColorGreen},
	}
}

// unknownGlyph is drawn for textures without a glyph, like the placeholder
// texture in a pixel window.
var unknownGlyph = Glyph{Text: "??", Color: core.ColorMagenta}

// GlyphCanvas draws blits as colored text into a screen buffer.
type GlyphCanvas struct {
	screen *core.Screen
	glyphs map[string]Glyph
}

// NewGlyphCanvas creates a canvas drawing into screen.
func NewGlyphCanvas(screen *core.Screen, glyphs map[string]Glyph) *GlyphCanvas {
	if glyphs == nil {
		glyphs = DefaultGlyphs()
	}
	return &GlyphCanvas{screen: screen, glyphs: glyphs}
}

// Blit draws the glyph of texture at the given view tile. Later blits
// overwrite earlier ones, so entities cover structures.
func (c *GlyphCanvas) Blit(texture string, col, row int) {
	g, ok := c.glyphs[texture]
	if !ok {
		g = unknownGlyph
	}
	c.screen.DrawTextColored(col*CellWidth, row, g.Text, g.Color)
}
