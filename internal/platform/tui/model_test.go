package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/games/starfall"
	"github.com/vovakirdan/starfall/internal/storage"
)

func newTestModel(t *testing.T, opts ModelOptions) Model {
	t.Helper()
	g := starfall.New()
	if err := g.Preload(); err != nil {
		t.Fatal(err)
	}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}, opts)
	m.Init()
	return m
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	return m
}

func sendKey(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelSavesRoundOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := newTestModel(t, ModelOptions{Store: store, SessionID: "local"})
	// The default round lasts 10 seconds.
	m = tick(t, m, 11*60)
	if !m.State().GameOver {
		t.Fatal("expected the round to be over")
	}

	rounds, err := store.RecentRounds(starfall.GameID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 1 {
		t.Fatalf("saved %d rounds, expected 1", len(rounds))
	}
	if rounds[0].Reason != "time_up" || rounds[0].SessionID != "local" || rounds[0].Number != 1 {
		t.Errorf("round = %+v", rounds[0])
	}

	// Restart and finish a second round.
	m = sendKey(t, m, runeKey("r"))
	m = tick(t, m, 11*60)
	if rounds, _ = store.RecentRounds(starfall.GameID, 10); len(rounds) != 2 {
		t.Errorf("saved %d rounds after restart, expected 2", len(rounds))
	}
}

func TestModelHeldKeyMovesPlayer(t *testing.T) {
	m := newTestModel(t, ModelOptions{})
	g := m.game.(*starfall.Game)

	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(t, m, 1)
	if vx := g.Physics().Body(g.Round().Player()).Vel.X; vx >= 0 {
		t.Errorf("vx = %v after left, expected negative", vx)
	}

	// Without repeats the hold window runs out.
	m = tick(t, m, 30)
	if vx := g.Physics().Body(g.Round().Player()).Vel.X; vx != 0 {
		t.Errorf("vx = %v after the key expired, expected 0", vx)
	}

	// Right cancels a pending left.
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	tick(t, m, 1)
	if vx := g.Physics().Body(g.Round().Player()).Vel.X; vx <= 0 {
		t.Errorf("vx = %v after right, expected positive", vx)
	}
}

func TestModelPauseKey(t *testing.T) {
	m := newTestModel(t, ModelOptions{AllowBack: true})
	m = sendKey(t, m, runeKey("p"))
	m = tick(t, m, 1)
	if !m.State().Paused {
		t.Fatal("P should pause")
	}

	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Esc while paused should return to the menu")
	}
}

func TestModelQuitAndView(t *testing.T) {
	m := newTestModel(t, ModelOptions{})
	m = tick(t, m, 1)
	if view := m.View(); !strings.Contains(view, "Score: 0") {
		t.Errorf("view should show the score:\n%s", view)
	}

	next, cmd := m.Update(runeKey("q"))
	m = next.(Model)
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
