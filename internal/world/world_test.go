package world

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/smolgame/internal/core"
)

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// blit records one Blit call.
type blit struct {
	texture  string
	col, row int
}

type recordCanvas struct {
	blits []blit
}

func (c *recordCanvas) Blit(texture string, col, row int) {
	c.blits = append(c.blits, blit{texture, col, row})
}

func largeWorld() *World {
	return New(Options{Width: 32, Height: 32, ViewCols: 16, ViewRows: 12, Diagonal: true, Camera: true})
}

func TestCanGoOutOfBounds(t *testing.T) {
	w := New(Options{Width: 12, Height: 8, ViewCols: 12, ViewRows: 8, Diagonal: true})

	tests := []struct {
		origin Tile
		d      Delta
	}{
		{Tile{0, 0}, Delta{-1, 0}},
		{Tile{0, 0}, Delta{0, -1}},
		{Tile{0, 0}, Delta{-1, -1}},
		{Tile{11, 3}, Delta{1, 0}},
		{Tile{4, 7}, Delta{0, 1}},
		{Tile{11, 7}, Delta{1, 1}},
	}
	for _, tt := range tests {
		if w.CanGo(tt.origin, tt.d) {
			t.Errorf("CanGo(%v, %v) = true, expected false outside the world", tt.origin, tt.d)
		}
	}

	cues := w.DrainCues()
	if len(cues) != len(tests) {
		t.Fatalf("expected %d collide cues, got %d", len(tests), len(cues))
	}
	for _, c := range cues {
		if c.Sound != SoundCollide || c.Channel != ChannelCollide {
			t.Errorf("unexpected cue %+v", c)
		}
	}
	if len(w.DrainCues()) != 0 {
		t.Error("DrainCues should clear the queue")
	}
}

func TestCanGoAllowFlag(t *testing.T) {
	w := New(Options{Width: 12, Height: 8, ViewCols: 12, ViewRows: 8})
	w.AddStructure(NewWall(Tile{5, 5}))
	w.AddStructure(NewFloor(Tile{6, 5}))

	if w.CanGo(Tile{4, 5}, Delta{1, 0}) {
		t.Error("moving onto a wall should be refused")
	}
	if !w.CanGo(Tile{7, 5}, Delta{-1, 0}) {
		t.Error("moving onto a floor should be allowed")
	}
	if !w.CanGo(Tile{1, 1}, Delta{0, 1}) {
		t.Error("moving onto an empty tile should be allowed")
	}
}

func TestFirstStructureWins(t *testing.T) {
	w := New(Options{Width: 8, Height: 8, ViewCols: 8, ViewRows: 8})
	w.AddStructure(NewFloor(Tile{2, 2}))
	w.AddStructure(NewWall(Tile{2, 2}))
	w.AddStructure(NewWall(Tile{3, 3}))
	w.AddStructure(NewFloor(Tile{3, 3}))

	if !w.CanGo(Tile{1, 2}, Delta{1, 0}) {
		t.Error("floor placed first should let the move through")
	}
	if w.CanGo(Tile{2, 3}, Delta{1, 0}) {
		t.Error("wall placed first should block the move")
	}
	if got := w.StructureAt(Tile{2, 2}); got == nil || got.Name != "floor" {
		t.Errorf("StructureAt should return the first match, got %+v", got)
	}
	if w.StructureAt(Tile{0, 0}) != nil {
		t.Error("StructureAt on an empty tile should be nil")
	}
}

func TestDiagonalCornerRule(t *testing.T) {
	origin := Tile{5, 5}
	d := Delta{1, 1}

	tests := []struct {
		name  string
		walls []Tile
		want  bool
	}{
		{"open", nil, true},
		{"horizontal neighbor blocked", []Tile{{6, 5}}, true},
		{"vertical neighbor blocked", []Tile{{5, 6}}, true},
		{"both neighbors blocked", []Tile{{6, 5}, {5, 6}}, false},
		{"destination blocked", []Tile{{6, 6}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := largeWorld()
			for _, p := range tt.walls {
				w.AddStructure(NewWall(p))
			}
			if got := w.CanGo(origin, d); got != tt.want {
				t.Errorf("CanGo = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestDiagonalCornerRuleAppliesOverFloor(t *testing.T) {
	w := largeWorld()
	w.AddStructure(NewWall(Tile{6, 5}))
	w.AddStructure(NewWall(Tile{5, 6}))
	w.AddStructure(NewFloor(Tile{6, 6}))

	if w.CanGo(Tile{5, 5}, Delta{1, 1}) {
		t.Error("a floor at the destination must not let the player squeeze between two walls")
	}
}

func TestDiagonalCornerAtWorldEdge(t *testing.T) {
	w := largeWorld()
	w.AddStructure(NewWall(Tile{1, 0}))
	if !w.CanGo(Tile{0, 0}, Delta{1, 1}) {
		t.Error("one blocking neighbor should still allow the slip")
	}
}

func TestScenarioBlockedTwice(t *testing.T) {
	w := New(Options{Width: 12, Height: 8, ViewCols: 12, ViewRows: 8})
	w.AddStructure(NewWall(Tile{3, 3}))
	w.AddStructure(NewWall(Tile{3, 4}))
	p := NewPlayer(Tile{3, 2}, 2)
	w.AddEntity(p)

	down := input(core.ActionDown)
	for i := 0; i < 2; i++ {
		w.Update(down)
		if p.Pos != (Tile{3, 2}) {
			t.Fatalf("move %d: player moved to %v", i+1, p.Pos)
		}
	}
	if w.Bumps() != 2 {
		t.Errorf("Bumps = %d, expected 2", w.Bumps())
	}
	if w.Moves() != 0 {
		t.Errorf("Moves = %d, expected 0", w.Moves())
	}
}

func TestCooldownBlocksExactly(t *testing.T) {
	for _, cooldown := range []int{0, 1, 2, 5} {
		w := largeWorld()
		p := NewPlayer(Tile{0, 10}, cooldown)
		w.AddEntity(p)

		right := input(core.ActionRight)
		w.Update(right)
		if p.Pos.X != 1 {
			t.Fatalf("cooldown %d: first move not accepted, pos %v", cooldown, p.Pos)
		}

		for i := 0; i < cooldown; i++ {
			w.Update(right)
			if p.Pos.X != 1 {
				t.Fatalf("cooldown %d: moved during cooldown tick %d", cooldown, i+1)
			}
		}

		w.Update(right)
		if p.Pos.X != 2 {
			t.Errorf("cooldown %d: expected a move right after the cooldown, pos %v", cooldown, p.Pos)
		}
	}
}

func TestCooldownKeepsTickingWhileIdle(t *testing.T) {
	w := largeWorld()
	p := NewPlayer(Tile{4, 4}, 2)
	w.AddEntity(p)

	w.Update(input(core.ActionUp))
	idle := core.NewInputFrame()
	w.Update(idle)
	w.Update(idle)

	w.Update(input(core.ActionUp))
	if p.Pos != (Tile{4, 2}) {
		t.Errorf("expected a second move after idling through the cooldown, pos %v", p.Pos)
	}
}

func TestRefusedMoveDoesNotStartCooldown(t *testing.T) {
	w := largeWorld()
	w.AddStructure(NewWall(Tile{4, 3}))
	p := NewPlayer(Tile{4, 4}, 2)
	w.AddEntity(p)

	w.Update(input(core.ActionUp))
	w.Update(input(core.ActionLeft))
	if p.Pos != (Tile{3, 4}) {
		t.Errorf("a refused move should leave the player ready, pos %v", p.Pos)
	}
}

func TestOppositeKeysCancel(t *testing.T) {
	w := largeWorld()
	p := NewPlayer(Tile{4, 4}, 2)
	w.AddEntity(p)

	w.Update(input(core.ActionLeft, core.ActionRight))
	if p.Pos != (Tile{4, 4}) || w.Bumps() != 0 {
		t.Errorf("opposite keys should cancel, pos %v bumps %d", p.Pos, w.Bumps())
	}
}

func TestSingleAxisCollapsesToVertical(t *testing.T) {
	w := New(Options{Width: 16, Height: 12, ViewCols: 16, ViewRows: 12})
	p := NewPlayer(Tile{8, 6}, 2)
	w.AddEntity(p)

	w.Update(input(core.ActionDown, core.ActionRight))
	if p.Pos != (Tile{8, 7}) {
		t.Errorf("expected vertical move only, pos %v", p.Pos)
	}
	if w.Camera() != (Tile{}) {
		t.Errorf("camera should not move without camera option, got %v", w.Camera())
	}
}

func TestDiagonalMove(t *testing.T) {
	w := largeWorld()
	p := NewPlayer(Tile{8, 6}, 2)
	w.AddEntity(p)

	w.Update(input(core.ActionUp, core.ActionLeft))
	if p.Pos != (Tile{7, 5}) {
		t.Errorf("expected diagonal move, pos %v", p.Pos)
	}
}

func TestCameraFollowsPlayer(t *testing.T) {
	w := largeWorld()
	p := NewPlayer(Tile{8, 6}, 0)
	w.AddEntity(p)

	w.Update(input(core.ActionRight))
	w.Update(input(core.ActionDown, core.ActionRight))
	if w.Camera() != (Tile{-2, -1}) {
		t.Errorf("Camera = %v, expected (-2,-1)", w.Camera())
	}

	c := &recordCanvas{}
	w.Draw(c)
	if len(c.blits) != 1 || c.blits[0].col != 8 || c.blits[0].row != 6 {
		t.Errorf("player should stay at the view centre, got %+v", c.blits)
	}

	// A refused move leaves the camera alone.
	w.AddStructure(NewWall(Tile{11, 7}))
	w.Update(input(core.ActionRight))
	if w.Camera() != (Tile{-2, -1}) {
		t.Errorf("Camera moved on a refused move: %v", w.Camera())
	}
}

func TestDrawOrderAndClip(t *testing.T) {
	w := New(Options{Width: 32, Height: 32, ViewCols: 4, ViewRows: 3, Camera: true})
	w.AddStructure(NewWall(Tile{1, 1}))
	w.AddStructure(NewFloor(Tile{10, 10}))
	w.AddStructure(NewFloor(Tile{3, 2}))
	w.AddEntity(NewPlayer(Tile{1, 1}, 2))

	c := &recordCanvas{}
	w.Draw(c)

	want := []blit{
		{TextureWall, 1, 1},
		{TextureFloor, 3, 2},
		{TexturePlayer, 1, 1},
	}
	if len(c.blits) != len(want) {
		t.Fatalf("got %d blits, expected %d: %+v", len(c.blits), len(want), c.blits)
	}
	for i := range want {
		if c.blits[i] != want[i] {
			t.Errorf("blit %d = %+v, expected %+v", i, c.blits[i], want[i])
		}
	}
}

func TestGenerateWalls(t *testing.T) {
	w := New(Options{Width: 32, Height: 32, ViewCols: 16, ViewRows: 12})
	w.Generate(rand.New(rand.NewSource(7)), 64, false)

	if len(w.Structures()) != 64 {
		t.Fatalf("expected 64 walls, got %d", len(w.Structures()))
	}
	for _, s := range w.Structures() {
		if s.Allow || s.Texture != TextureWall {
			t.Errorf("unexpected structure %+v", s)
		}
		if s.Pos.X < 0 || s.Pos.X >= 31 || s.Pos.Y < 0 || s.Pos.Y >= 31 {
			t.Errorf("wall %v outside [0,31)x[0,31)", s.Pos)
		}
	}
}

func TestGenerateFillFloor(t *testing.T) {
	w := New(Options{Width: 32, Height: 32, ViewCols: 16, ViewRows: 12})
	w.Generate(rand.New(rand.NewSource(7)), 64, true)

	walls := make(map[Tile]bool)
	floors := 0
	for _, s := range w.Structures() {
		if s.Allow {
			floors++
			if walls[s.Pos] {
				t.Errorf("floor placed on wall tile %v", s.Pos)
			}
		} else {
			walls[s.Pos] = true
		}
	}
	if floors+len(walls) != 32*32 {
		t.Errorf("every tile should hold exactly one wall or floor: %d walls, %d floors", len(walls), floors)
	}
	// Walls never reach the last row or column, so those are always floor.
	for i := 0; i < 32; i++ {
		if w.Blocked(Tile{31, i}) || w.Blocked(Tile{i, 31}) {
			t.Errorf("edge tile blocked at index %d", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := New(Options{Width: 32, Height: 32})
	b := New(Options{Width: 32, Height: 32})
	a.Generate(rand.New(rand.NewSource(42)), 64, true)
	b.Generate(rand.New(rand.NewSource(42)), 64, true)

	if len(a.Structures()) != len(b.Structures()) {
		t.Fatal("same seed produced different structure counts")
	}
	for i := range a.Structures() {
		if *a.Structures()[i] != *b.Structures()[i] {
			t.Fatalf("structure %d differs: %+v vs %+v", i, a.Structures()[i], b.Structures()[i])
		}
	}
}

func TestKindString(t *testing.T) {
	if KindStatic.String() != "static" || KindPlayer.String() != "player" || Kind(9).String() != "unknown" {
		t.Error("unexpected Kind names")
	}
}
