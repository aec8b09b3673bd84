// Package world holds the tile grid: structures, entities, the player's
// cooldown-gated movement, collision against structures and the camera.
//
// A World is owned by a single game instance and is not safe for concurrent
// use; the platform drives Update and Draw from one goroutine.
package world

// Texture names of the built-in entity types.
const (
	TexturePlayer = "player"
	TextureWall   = "wall"
	TextureFloor  = "floor"
)

// Tile is a grid coordinate.
type Tile struct {
	X, Y int
}

// Add returns the tile displaced by d.
func (t Tile) Add(d Delta) Tile {
	return Tile{X: t.X + d.DX, Y: t.Y + d.DY}
}

// Delta is a requested displacement in tiles.
type Delta struct {
	DX, DY int
}

// IsZero reports whether d moves nowhere.
func (d Delta) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// IsDiagonal reports whether d moves along both axes.
func (d Delta) IsDiagonal() bool {
	return d.DX != 0 && d.DY != 0
}

// Kind selects the per-tick behavior of an entity.
type Kind int

const (
	KindStatic Kind = iota // Never updates
	KindPlayer             // Moves on input after its cooldown expires
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Entity is anything placed on the grid. Structures and entities share this
// record; which list holds it decides whether it collides or updates.
type Entity struct {
	Name    string
	Texture string
	Pos     Tile
	Allow   bool // Other occupants may share this tile
	Kind    Kind

	// Player state
	Cooldown     int // Ticks left before the next move is accepted
	CooldownTime int // Cooldown set after each accepted move
}

// NewWall returns a blocking structure.
func NewWall(pos Tile) *Entity {
	return &Entity{Name: "wall", Texture: TextureWall, Pos: pos, Kind: KindStatic}
}

// NewFloor returns a passable structure.
func NewFloor(pos Tile) *Entity {
	return &Entity{Name: "floor", Texture: TextureFloor, Pos: pos, Allow: true, Kind: KindStatic}
}

// NewPlayer returns a player that waits cooldownTime ticks between moves.
func NewPlayer(pos Tile, cooldownTime int) *Entity {
	return &Entity{
		Name:         "player",
		Texture:      TexturePlayer,
		Pos:          pos,
		Kind:         KindPlayer,
		CooldownTime: cooldownTime,
	}
}
