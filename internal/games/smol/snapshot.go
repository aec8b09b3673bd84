package smol

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	PlayerX  int
	PlayerY  int
	Cooldown int
	CameraX  int
	CameraY  int
	Moves    int
	Bumps    int
	Walls    int
	Floors   int
	WallHash uint64 // FNV-1a over wall positions in placement order
	Quit     bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:  g.tick,
		Moves: g.world.Moves(),
		Bumps: g.world.Bumps(),
		Quit:  g.quit,
	}
	if p := g.world.Player(); p != nil {
		s.PlayerX = p.Pos.X
		s.PlayerY = p.Pos.Y
		s.Cooldown = p.Cooldown
	}
	cam := g.world.Camera()
	s.CameraX, s.CameraY = cam.X, cam.Y

	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	for _, st := range g.world.Structures() {
		if st.Allow {
			s.Floors++
			continue
		}
		s.Walls++
		for _, v := range [2]int{st.Pos.X, st.Pos.Y} {
			h ^= uint64(v)
			h *= prime
		}
	}
	s.WallHash = h
	return s
}
