package core

// Canvas is the blit primitive a platform offers to games. Positions are in
// view tiles; the platform resolves the texture's atlas slot and pixel size.
type Canvas interface {
	Blit(texture string, col, row int)
}

// ViewSize describes the visible window of a game in tiles.
type ViewSize struct {
	Cols     int // Visible columns
	Rows     int // Visible rows
	TileSize int // Pixel edge of one tile (8 or 16)
	Scale    int // Window upscale factor for pixel platforms
}

// PixelSize returns the unscaled view size in pixels.
func (v ViewSize) PixelSize() (int, int) {
	return v.Cols * v.TileSize, v.Rows * v.TileSize
}
