package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/smolgame/internal/core"
	"github.com/vovakirdan/smolgame/internal/registry"
	"github.com/vovakirdan/smolgame/internal/storage"
	"github.com/vovakirdan/smolgame/internal/world"
)

// Platform names stored with each session.
const (
	PlatformTerm = "term"
	PlatformSSH  = "ssh"
)

// HUD layout below the map.
const (
	hudRows  = 2
	hudWidth = 56
)

// Model is the Bubble Tea model for playing a game in a terminal.
// The game must already be Reset; the model only steps and draws it.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	canvas     *GlyphCanvas
	store      *storage.Store
	config     core.RuntimeConfig
	platform   string
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	lastCue    string // Most recent sound cue, shown in place of audio
	status     string // One-line feedback for screenshot and clipboard keys
	quitting   bool
	saved      bool // Whether the session has been recorded
	embedded   bool // Quitting hands control back to a parent model instead of ending the program
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, platform string) Model {
	view := game.View()
	screen := core.NewScreen(max(view.Cols*CellWidth, hudWidth), view.Rows+hudRows)

	return Model{
		game:       game,
		screen:     screen,
		canvas:     NewGlyphCanvas(screen, nil),
		store:      store,
		config:     cfg,
		platform:   platform,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.game.TickRate())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "ctrl+s":
		m.status = m.saveScreenshot()
		return m, nil
	case "c":
		m.status = m.copyToClipboard()
		return m, nil
	}

	// Quit keys are forwarded to the game, which stops on its next tick.
	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, c := range result.Cues {
		m.lastCue = c.Sound
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	if m.gameState.Quit {
		return m.quit()
	}

	// Continue ticking
	return m, tickCmd(m.game.TickRate())
}

// quit records the session and stops the model.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.saveSession()
	m.quitting = true
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

// saveSession stores the session once, if a store is available.
func (m *Model) saveSession() {
	if m.saved || m.store == nil {
		return
	}
	st := m.game.State()
	//nolint:errcheck // Best-effort save, the player is leaving anyway
	m.store.SaveSession(storage.Session{
		GameID:   m.game.ID(),
		Platform: m.platform,
		Seed:     m.config.Seed,
		Ticks:    int64(st.Tick),
		Moves:    st.Moves,
		Bumps:    st.Bumps,
		FinalX:   st.PlayerX,
		FinalY:   st.PlayerY,
	})
	m.saved = true
}

// draw renders the map and the HUD into the screen buffer.
func (m *Model) draw() {
	m.screen.Clear()
	m.game.Render(m.canvas)

	view := m.game.View()
	st := m.gameState
	hud := fmt.Sprintf("%s  tick %d  pos %d,%d  moves %d  bumps %d",
		m.game.Title(), st.Tick, st.PlayerX, st.PlayerY, st.Moves, st.Bumps)
	m.screen.DrawTextColored(0, view.Rows, hud, core.ColorWhite)

	line := "arrows move  space sound  ctrl+s shot  c copy  q quit"
	color := core.ColorGray
	switch {
	case m.status != "":
		line = m.status
	case m.lastCue != "":
		line = "~ " + m.lastCue + " ~  " + line
		if m.lastCue == world.SoundCollide {
			color = core.ColorRed
		}
	}
	m.screen.DrawTextColored(0, view.Rows+1, line, color)
}

// mapText returns the visible map without the HUD.
func (m *Model) mapText() string {
	m.draw()
	lines := make([]string, m.game.View().Rows)
	for y := range lines {
		lines[y] = strings.TrimRight(m.screen.Row(y), " ")
	}
	return strings.Join(lines, "\n")
}

// saveScreenshot saves the current map to a file and reports the outcome.
func (m *Model) saveScreenshot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshot failed: " + err.Error()
	}
	dir := filepath.Join(home, ".smolgame", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.mapText()), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}
	return "saved " + path
}

// copyToClipboard puts the current map on the system clipboard.
func (m *Model) copyToClipboard() string {
	if clipboard.Unsupported {
		return "clipboard not available"
	}
	if err := clipboard.WriteAll(m.mapText()); err != nil {
		return "copy failed: " + err.Error()
	}
	return "map copied to clipboard"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	return RenderScreen(m.screen)
}

// IsQuitting returns true once the game has stopped.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run resets the game and plays it in the current terminal until it quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := game.Reset(cfg); err != nil {
		return err
	}

	model := NewModel(game, store, cfg, PlatformTerm)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
