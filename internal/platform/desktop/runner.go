// Package desktop hosts a game in an ebiten window: fixed-rate Update and Draw
// callbacks, per-tick key polling, atlas blits, and channel-based sound.
package desktop

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/smolgame/internal/assets"
	"github.com/vovakirdan/smolgame/internal/core"
	"github.com/vovakirdan/smolgame/internal/registry"
	"github.com/vovakirdan/smolgame/internal/storage"
	"github.com/vovakirdan/smolgame/internal/world"
)

// Platform is the name stored with desktop sessions.
const Platform = "desktop"

// Runner adapts a registry.Game to ebiten.Game. It is also the core.Canvas
// the game renders into.
type Runner struct {
	game    registry.Game
	store   *storage.Store
	runtime core.RuntimeConfig
	logger  *log.Logger
	mixer   *mixer

	// GPU copies of the atlas banks, re-uploaded when a bank changes
	banks        [assets.BankCount]*ebiten.Image
	bankVersions [assets.BankCount]int

	target    *ebiten.Image // Screen being drawn during Draw
	state     core.GameState
	debug     bool
	playerAt  image.Point // View tile of the last player blit, for the debug outline
	playerSet bool
	saved     bool
}

// NewRunner creates a runner for an already reset game.
func NewRunner(game registry.Game, store *storage.Store, runtime core.RuntimeConfig, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		game:    game,
		store:   store,
		runtime: runtime,
		logger:  logger,
		mixer:   newMixer(game.Sounds(), logger),
		state:   game.State(),
	}
	for i := range r.bankVersions {
		r.bankVersions[i] = -1
	}
	return r
}

// Update polls input and advances the game by one tick.
func (r *Runner) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		r.debug = !r.debug
	}

	res := r.game.Step(PollInput(ebiten.IsKeyPressed))
	r.state = res.State
	for _, c := range res.Cues {
		r.mixer.play(c)
	}

	if r.state.Quit {
		r.finish()
		return ebiten.Termination
	}
	return nil
}

// Draw redraws the whole view.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.syncBanks()

	r.target = screen
	r.playerSet = false
	r.game.Render(r)
	r.target = nil

	if r.debug {
		r.drawDebug(screen)
	}
}

// Layout keeps the logical screen at the view's pixel size; ebiten scales it
// to the window.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.game.View().PixelSize()
}

// Blit draws a registered texture at a view tile.
func (r *Runner) Blit(texture string, col, row int) {
	if r.target == nil {
		return
	}
	size := r.game.View().TileSize
	slot, ok := r.game.Textures().Lookup(texture, size)
	if !ok {
		return
	}
	bank := r.banks[slot.Bank]
	if bank == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(col*size), float64(row*size))
	r.target.DrawImage(bank.SubImage(slot.Rect()).(*ebiten.Image), op)

	if texture == world.TexturePlayer {
		r.playerAt = image.Pt(col, row)
		r.playerSet = true
	}
}

// syncBanks uploads atlas banks whose pixels changed since the last frame.
func (r *Runner) syncBanks() {
	textures := r.game.Textures()
	for i := range r.banks {
		v := textures.Version(i)
		if v == r.bankVersions[i] {
			continue
		}
		if r.banks[i] == nil {
			r.banks[i] = ebiten.NewImage(assets.AtlasSize, assets.AtlasSize)
		}
		r.banks[i].WritePixels(textures.Bank(i).Pix)
		r.bankVersions[i] = v
	}
}

// drawDebug overlays tick counters and outlines the player's tile.
func (r *Runner) drawDebug(screen *ebiten.Image) {
	st := r.state
	msg := fmt.Sprintf("tick %d  tps %.0f  fps %.0f\npos %d,%d\nmoves %d  bumps %d",
		st.Tick, ebiten.ActualTPS(), ebiten.ActualFPS(), st.PlayerX, st.PlayerY, st.Moves, st.Bumps)
	ebitenutil.DebugPrintAt(screen, msg, 2, 2)

	if r.playerSet {
		size := float32(r.game.View().TileSize)
		x := float32(r.playerAt.X) * size
		y := float32(r.playerAt.Y) * size
		vector.StrokeRect(screen, x, y, size, size, 1, color.RGBA{R: 255, G: 220, A: 255}, false)
	}
}

// finish records the session once and silences the channels.
func (r *Runner) finish() {
	if r.saved {
		return
	}
	r.saved = true
	r.mixer.stop()

	if r.store == nil {
		return
	}
	st := r.game.State()
	_, err := r.store.SaveSession(storage.Session{
		GameID:   r.game.ID(),
		Platform: Platform,
		Seed:     r.runtime.Seed,
		Ticks:    int64(st.Tick),
		Moves:    st.Moves,
		Bumps:    st.Bumps,
		FinalX:   st.PlayerX,
		FinalY:   st.PlayerY,
	})
	if err != nil {
		r.logger.Warn("could not record session", "error", err)
	}
}

// Run opens a window for an already reset game and blocks until the player
// quits or closes the window.
func Run(game registry.Game, store *storage.Store, runtime core.RuntimeConfig, logger *log.Logger) error {
	view := game.View()
	w, h := view.PixelSize()
	scale := max(view.Scale, 1)

	ebiten.SetWindowSize(w*scale, h*scale)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetTPS(game.TickRate())

	r := NewRunner(game, store, runtime, logger)
	err := ebiten.RunGame(r)
	r.finish()
	return err
}
