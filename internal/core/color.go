package core

// Color is the foreground color of a screen cell. Platforms map it to their
// own palette; the terminal uses ANSI 256-color codes.
type Color uint8

// Colors used by glyphs and the HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorMagenta
	ColorWhite
	ColorBrightYellow
	ColorGray
)
