// Package starfall implements a star-collecting platformer.
// The player runs and jumps across platforms collecting stars before the
// countdown runs out; every cleared batch of stars releases another
// bouncing bomb, and touching a bomb ends the round.
package starfall

import (
	_ "embed"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starfall/internal/clock"
	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/physics"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/stage"
)

// GameID is the registry and score-table identifier.
const GameID = "starfall"

const countdownStep = time.Second

//go:embed assets.yaml
var assetsYAML []byte

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives round events; discarded unless the platform sets one.
var logger = discardLogger()

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = discardLogger()
	}
	logger = l
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// Game adapts the round controller to the platform's fixed-tick loop.
// Each tick runs input, round update, physics, animation, then timers.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.StarfallConfig
	catalog *stage.Catalog
	world   *physics.World
	stage   *stage.Stage
	clock   *clock.Clock
	round   *Round
	log     *log.Logger
	err     error

	paused    bool
	tickCount int
	simTime   time.Duration
}

// New creates a new Starfall game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Starfall"
}

// Preload parses the embedded asset catalog and checks that the round's
// textures are present. Platforms treat an error as fatal.
func (g *Game) Preload() error {
	if g.catalog != nil {
		return nil
	}
	cat, err := stage.LoadCatalog(assetsYAML)
	if err != nil {
		return fmt.Errorf("starfall: %w", err)
	}
	if err := requireAssets(cat); err != nil {
		return fmt.Errorf("starfall: %w", err)
	}
	g.catalog = cat
	return nil
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger
	g.err = nil
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = core.DefaultConfig().TickRate
	}

	// Load game config
	cfg, err := config.LoadStarfall(configPath)
	if err != nil {
		g.log.Warn("falling back to default config", "err", err)
		cfg = config.DefaultStarfallConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyStarfallPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	if err := g.Preload(); err != nil {
		g.fail(err)
		return
	}

	g.world = physics.NewWorld(physics.Config{
		Width:   cfg.World.Width,
		Height:  cfg.World.Height,
		Gravity: cfg.World.Gravity,
	})
	g.stage = stage.New(g.catalog, g.world)
	g.clock = clock.New()
	g.round = NewRound(cfg, Deps{
		Physics: g.world,
		Stage:   g.stage,
		Timers:  g.clock,
		Log:     g.log,
		Rand:    rand.New(rand.NewSource(runtime.Seed)),
	})

	g.paused = false
	g.tickCount = 0
	g.simTime = 0

	if err := g.round.Setup(); err != nil {
		g.fail(err)
	}
}

func (g *Game) fail(err error) {
	g.err = err
	g.round = nil
	g.log.Error("starfall unavailable", "err", err)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.round == nil {
		return core.StepResult{State: g.State()}
	}

	over := g.round.State().Over

	// Handle pause toggle; a restart always unpauses
	if in.JustPressed(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if in.JustPressed(core.ActionRestart) {
		g.paused = false
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Derive dt from the tick count so that N ticks at rate R always sum
	// to exactly N/R seconds of simulated time.
	g.tickCount++
	now := time.Duration(g.tickCount) * time.Second / time.Duration(g.runtime.TickRate)
	dt := now - g.simTime
	g.simTime = now
	sec := dt.Seconds()

	g.round.Update(in, sec)
	g.world.Step(sec)
	g.stage.Update(sec)
	g.clock.Advance(dt)

	return core.StepResult{State: g.State()}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.round == nil {
		msg := "starfall failed to start"
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextColored(1, dst.Height()/2, msg, core.ColorRed)
		return
	}

	stage.Rasterize(g.stage.DisplayList(), dst, g.cfg.World.Width, g.cfg.World.Height)

	if g.paused {
		label := " PAUSED - press P to resume "
		dst.DrawTextColored((dst.Width()-len(label))/2, dst.Height()/2, label, core.ColorBrightWhite)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	st := g.round.State()
	return core.GameState{
		Score:    st.Score,
		GameOver: st.Over,
		Paused:   g.paused,
		Round:    st.Number,
	}
}

// Summary describes the round once it is over.
func (g *Game) Summary() (core.RoundSummary, bool) {
	if g.round == nil {
		return core.RoundSummary{}, false
	}
	st := g.round.State()
	if !st.Over {
		return core.RoundSummary{}, false
	}
	return core.RoundSummary{
		ID:       st.ID.String(),
		Game:     GameID,
		Number:   st.Number,
		Score:    st.Score,
		Reason:   string(st.Reason),
		Hazards:  st.Hazards,
		Batches:  st.Batches,
		Duration: time.Duration(st.Elapsed * float64(time.Second)),
	}, true
}

// DisplayList returns the draw operations of the current frame in world
// pixels, for front ends that draw without a terminal screen.
func (g *Game) DisplayList() []stage.DrawOp {
	if g.stage == nil {
		return nil
	}
	return g.stage.DisplayList()
}

// WorldSize returns the play-field size in pixels.
func (g *Game) WorldSize() (float64, float64) {
	return g.cfg.World.Width, g.cfg.World.Height
}

// Physics exposes the physics world of the current round.
func (g *Game) Physics() *physics.World {
	return g.world
}

// Round exposes the round controller.
func (g *Game) Round() *Round {
	return g.round
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
