package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/smolgame/internal/core"
)

// keyBindings lists the keys polled for each game action every tick.
var keyBindings = []struct {
	action core.Action
	keys   []ebiten.Key
}{
	{core.ActionUp, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{core.ActionDown, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{core.ActionLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{core.ActionRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	{core.ActionSound, []ebiten.Key{ebiten.KeySpace}},
	{core.ActionQuit, []ebiten.Key{ebiten.KeyQ}},
}

// PollInput builds the input frame of one tick from a key-state query such as
// ebiten.IsKeyPressed. Keys are sampled, not queued: a key counts only while held.
func PollInput(pressed func(ebiten.Key) bool) core.InputFrame {
	frame := core.NewInputFrame()
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if pressed(k) {
				frame.Set(b.action)
				break
			}
		}
	}
	return frame
}
