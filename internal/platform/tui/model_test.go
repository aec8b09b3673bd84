package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/smolgame/internal/core"
	"github.com/vovakirdan/smolgame/internal/games/smol"
	"github.com/vovakirdan/smolgame/internal/storage"
	"github.com/vovakirdan/smolgame/internal/world"
)

func TestGlyphCanvas(t *testing.T) {
	s := core.NewScreen(8, 2)
	c := NewGlyphCanvas(s, nil)

	c.Blit(world.TextureFloor, 0, 0)
	c.Blit(world.TextureWall, 1, 0)
	c.Blit(world.TexturePlayer, 0, 0)
	c.Blit("chest", 3, 1)

	if got := s.Row(0); got != "@@##    " {
		t.Errorf("row 0 = %q", got)
	}
	if got := s.Row(1); got != "      ??" {
		t.Errorf("row 1 = %q", got)
	}
	if s.GetCell(0, 0).Color != core.ColorBrightYellow {
		t.Error("player glyph should keep its color")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")

	out := RenderScreen(s)
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

// newTestModel returns a terminal model around a wall-free game.
func newTestModel(t *testing.T) (Model, *storage.Store) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgPath := filepath.Join(home, "empty.yaml")
	if err := os.WriteFile(cfgPath, []byte("world:\n  walls: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	smol.SetConfigPath(cfgPath)
	smol.SetLogger(log.New(io.Discard))
	t.Cleanup(func() {
		smol.SetConfigPath("")
		smol.SetLogger(nil)
	})

	store, err := storage.Open(filepath.Join(home, "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	game := smol.New()
	cfg := core.RuntimeConfig{Seed: 99, AssetsDir: home}
	if err := game.Reset(cfg); err != nil {
		t.Fatal(err)
	}
	return NewModel(game, store, cfg, PlatformTerm), store
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelStepsOnTick(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(m, TickMsg{})
	if m.gameState.PlayerX != 9 || m.gameState.Tick != 1 {
		t.Errorf("unexpected state after one tick: %+v", m.gameState)
	}

	// Input is cleared after every tick.
	m = send(m, TickMsg{})
	m = send(m, TickMsg{})
	m = send(m, TickMsg{})
	if m.gameState.PlayerX != 9 {
		t.Errorf("player kept moving without input: %+v", m.gameState)
	}

	view := m.View()
	if !strings.Contains(view, "@@") || !strings.Contains(view, "moves 1") {
		t.Errorf("view is missing the player or HUD:\n%s", view)
	}
}

func TestModelShowsCues(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, tea.KeyMsg{Type: tea.KeySpace})
	m = send(m, TickMsg{})
	if m.lastCue != smol.SoundLevel {
		t.Errorf("lastCue = %q, expected %q", m.lastCue, smol.SoundLevel)
	}
}

func TestModelHighlightsCollisions(t *testing.T) {
	m, _ := newTestModel(t)
	row := m.game.View().Rows + 1

	m.lastCue = world.SoundCollide
	m.draw()
	if c := m.screen.GetCell(0, row); c.Rune != '~' || c.Color != core.ColorRed {
		t.Errorf("collide cue line = %+v, expected red '~'", c)
	}

	m.lastCue = smol.SoundLevel
	m.draw()
	if c := m.screen.GetCell(0, row); c.Color != core.ColorGray {
		t.Errorf("level cue line color = %v, expected gray", c.Color)
	}
}

func TestModelQuitRecordsSession(t *testing.T) {
	m, store := newTestModel(t)

	m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(m, TickMsg{})
	m = send(m, runeKey('q'))
	if m.IsQuitting() {
		t.Fatal("quit should wait for the next tick")
	}

	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("model should quit after the game stops")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}

	sessions, err := store.RecentSessions("smolgame", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected one recorded session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.Platform != PlatformTerm || s.Seed != 99 || s.Moves != 1 || s.FinalY != 7 {
		t.Errorf("unexpected session %+v", s)
	}

	// A second quit does not record twice.
	m.quit()
	sessions, _ = store.RecentSessions("smolgame", 10)
	if len(sessions) != 1 {
		t.Errorf("session recorded %d times", len(sessions))
	}
}

func TestEmbeddedModelDoesNotEndProgram(t *testing.T) {
	m, _ := newTestModel(t)
	m.embedded = true

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).IsQuitting() {
		t.Fatal("ctrl+c should stop the game")
	}
	if cmd != nil {
		t.Error("embedded model must hand control back instead of quitting the program")
	}
}

func TestScreenshot(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.status, "saved ") {
		t.Fatalf("status = %q", m.status)
	}
	data, err := os.ReadFile(strings.TrimPrefix(m.status, "saved "))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) != 12 {
		t.Errorf("screenshot should hold the 12 map rows, got %d", len(lines))
	}
	if !strings.Contains(lines[6], "@@") {
		t.Errorf("player missing from the centre row: %q", lines[6])
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(80, 24)
	if len(m.items) < 2 {
		t.Fatalf("expected both variants in the menu, got %+v", m.items)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := next.(MenuModel)
	if menu.Selected() == nil || menu.Selected().GameID != m.items[1].GameID {
		t.Errorf("Selected = %+v", menu.Selected())
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	h := NewHistoryModel(nil, 100, 30)
	if !strings.Contains(h.View(), "no database") {
		t.Errorf("history should explain the missing database:\n%s", h.View())
	}

	next, _ := h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(HistoryModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestSessionRows(t *testing.T) {
	rows := SessionRows([]storage.Session{{Platform: "ssh", Seed: 5, Ticks: 40, Moves: 3, Bumps: 1, FinalX: 2, FinalY: 9}})
	if len(rows) != 1 || len(rows[0]) != len(SessionColumns()) {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows[0][1] != "ssh" || rows[0][6] != "2,9" {
		t.Errorf("unexpected row %+v", rows[0])
	}
}
