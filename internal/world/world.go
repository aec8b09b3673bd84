package world

import (
	"github.com/vovakirdan/smolgame/internal/core"
)

// Feedback sound played whenever a move is refused.
const (
	SoundCollide   = "collide"
	ChannelCollide = 0
)

// Options configures a World.
type Options struct {
	Width, Height int
	ViewCols      int  // Visible columns; tiles outside the view are not drawn
	ViewRows      int  // Visible rows
	Diagonal      bool // Accept two-axis moves, resolving corners
	Camera        bool // Pan the view opposite to every accepted move
}

// World owns the structures and entities of one level.
type World struct {
	opts       Options
	structures []*Entity
	entities   []*Entity

	offset Tile // Camera offset added to every drawn position
	cues   []core.Cue
	moves  int
	bumps  int
}

// New creates an empty world.
func New(opts Options) *World {
	return &World{opts: opts}
}

// Width returns the world width in tiles.
func (w *World) Width() int { return w.opts.Width }

// Height returns the world height in tiles.
func (w *World) Height() int { return w.opts.Height }

// AddStructure appends a structure. Earlier structures win occupancy checks.
func (w *World) AddStructure(e *Entity) {
	w.structures = append(w.structures, e)
}

// AddEntity appends an updating entity.
func (w *World) AddEntity(e *Entity) {
	w.entities = append(w.entities, e)
}

// Structures returns the structure list in placement order.
func (w *World) Structures() []*Entity { return w.structures }

// Entities returns the entity list in placement order.
func (w *World) Entities() []*Entity { return w.entities }

// Player returns the first player entity, or nil.
func (w *World) Player() *Entity {
	for _, e := range w.entities {
		if e.Kind == KindPlayer {
			return e
		}
	}
	return nil
}

// Camera returns the current camera offset.
func (w *World) Camera() Tile { return w.offset }

// Moves returns the number of accepted player moves.
func (w *World) Moves() int { return w.moves }

// Bumps returns the number of refused player moves.
func (w *World) Bumps() int { return w.bumps }

// InBounds reports whether t lies inside the world.
func (w *World) InBounds(t Tile) bool {
	return core.NewRect(0, 0, w.opts.Width, w.opts.Height).Contains(t.X, t.Y)
}

// StructureAt returns the first structure placed on t, or nil.
func (w *World) StructureAt(t Tile) *Entity {
	for _, s := range w.structures {
		if s.Pos == t {
			return s
		}
	}
	return nil
}

// Blocked reports whether nothing may enter t: it is outside the world or
// its first structure does not allow occupants.
func (w *World) Blocked(t Tile) bool {
	if !w.InBounds(t) {
		return true
	}
	s := w.StructureAt(t)
	return s != nil && !s.Allow
}

// CanGo reports whether a move by d from origin is permitted. A refused move
// queues the collide cue. The caller moves the entity.
func (w *World) CanGo(origin Tile, d Delta) bool {
	if w.canGo(origin, d) {
		return true
	}
	w.cue(SoundCollide, ChannelCollide)
	return false
}

func (w *World) canGo(origin Tile, d Delta) bool {
	if w.Blocked(origin.Add(d)) {
		return false
	}
	// A diagonal step may slip past one blocking corner but not squeeze
	// between two.
	if w.opts.Diagonal && d.IsDiagonal() {
		horizontal := origin.Add(Delta{DX: d.DX})
		vertical := origin.Add(Delta{DY: d.DY})
		if w.Blocked(horizontal) && w.Blocked(vertical) {
			return false
		}
	}
	return true
}

// Update advances every entity by one tick.
func (w *World) Update(in core.InputFrame) {
	for _, e := range w.entities {
		switch e.Kind {
		case KindPlayer:
			w.updatePlayer(e, in)
		case KindStatic:
			// nothing to advance
		}
	}
}

func (w *World) updatePlayer(p *Entity, in core.InputFrame) {
	ready := p.Cooldown <= 0
	p.Cooldown--
	if !ready {
		return
	}

	d := w.requested(in)
	if d.IsZero() {
		return
	}
	if !w.CanGo(p.Pos, d) {
		w.bumps++
		return
	}

	p.Pos = p.Pos.Add(d)
	p.Cooldown = p.CooldownTime
	w.moves++
	if w.opts.Camera {
		w.offset.X -= d.DX
		w.offset.Y -= d.DY
	}
}

// requested turns held direction keys into a displacement. Opposite keys
// cancel. Without diagonal movement the vertical axis wins.
func (w *World) requested(in core.InputFrame) Delta {
	var d Delta
	if in.Has(core.ActionUp) {
		d.DY--
	}
	if in.Has(core.ActionDown) {
		d.DY++
	}
	if in.Has(core.ActionLeft) {
		d.DX--
	}
	if in.Has(core.ActionRight) {
		d.DX++
	}
	if !w.opts.Diagonal && d.IsDiagonal() {
		d.DX = 0
	}
	return d
}

// Draw blits every structure and then every entity onto dst. Positions are
// shifted by the camera offset; tiles that land outside the view are skipped.
func (w *World) Draw(dst core.Canvas) {
	for _, s := range w.structures {
		w.blit(dst, s)
	}
	for _, e := range w.entities {
		w.blit(dst, e)
	}
}

func (w *World) blit(dst core.Canvas, e *Entity) {
	col := e.Pos.X + w.offset.X
	row := e.Pos.Y + w.offset.Y
	if !core.NewRect(0, 0, w.opts.ViewCols, w.opts.ViewRows).Contains(col, row) {
		return
	}
	dst.Blit(e.Texture, col, row)
}

func (w *World) cue(sound string, channel int) {
	w.cues = append(w.cues, core.Cue{Sound: sound, Channel: channel})
}

// Cue queues a sound for the platform, for callers outside the world.
func (w *World) Cue(sound string, channel int) {
	w.cue(sound, channel)
}

// DrainCues returns and clears the cues queued since the last call.
func (w *World) DrainCues() []core.Cue {
	cues := w.cues
	w.cues = nil
	return cues
}
