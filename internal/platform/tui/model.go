package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	hold      *keyHold
	tracker   *core.InputTracker
	rec       *recorder
	gameState core.GameState

	allowBack  bool // B/Esc returns to the menu when over or paused
	quitting   bool
	backToMenu bool
}

// ModelOptions configures optional collaborators of a Model.
type ModelOptions struct {
	Store     *storage.Store
	SessionID string // Stored with every round; empty for local play
	Logger    *log.Logger
	AllowBack bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		hold:      newKeyHold(cfg.TickRate),
		tracker:   core.NewInputTracker(),
		rec: &recorder{
			store:     opts.Store,
			sessionID: opts.SessionID,
			log:       opts.Logger,
		},
		allowBack: opts.AllowBack,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The play field is scaled to the screen, so a resize keeps the round.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack && m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}

	// Opposite directions cancel each other's hold window.
	switch action {
	case core.ActionLeft:
		m.hold.Release(core.ActionRight)
	case core.ActionRight:
		m.hold.Release(core.ActionLeft)
	}
	if action != core.ActionNone {
		m.hold.Press(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.tracker.Next(m.hold.Down())
	m.hold.Advance()

	result := m.game.Step(frame)
	m.gameState = result.State
	m.rec.observe(m.game, m.gameState)

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the state observed on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	if err := registry.Prepare(game); err != nil {
		return err
	}

	model := NewModel(game, cfg, ModelOptions{Store: store, Logger: logger})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
