package world

import "math/rand"

// Generate scatters walls at random tiles in [0,width-1)x[0,height-1).
// Walls may land on the same tile. With fillFloor every tile still without a
// structure then receives a passable floor.
func (w *World) Generate(rng *rand.Rand, walls int, fillFloor bool) {
	spanX := max(w.opts.Width-1, 1)
	spanY := max(w.opts.Height-1, 1)
	for i := 0; i < walls; i++ {
		w.AddStructure(NewWall(Tile{X: rng.Intn(spanX), Y: rng.Intn(spanY)}))
	}
	if fillFloor {
		w.fillFloor()
	}
}

// fillFloor checks every tile against every structure placed so far,
// including floors added earlier in the same pass.
func (w *World) fillFloor() {
	for x := 0; x < w.opts.Width; x++ {
		for y := 0; y < w.opts.Height; y++ {
			occupied := false
			for _, s := range w.structures {
				if s.Pos.X == x && s.Pos.Y == y {
					occupied = true
					break
				}
			}
			if !occupied {
				w.AddStructure(NewFloor(Tile{X: x, Y: y}))
			}
		}
	}
}
