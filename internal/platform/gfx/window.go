// Package gfx runs games in a desktop window using Ebitengine.
// The terminal front end draws glyph art; the window draws the same
// display list as flat colored rectangles in world pixels.
package gfx

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/stage"
)

// debugGlyphW is the advance of ebitenutil's debug font.
const debugGlyphW = 6

// errQuit ends RunGame without reporting a failure.
var errQuit = errors.New("quit")

// Scene is a game that can describe its frame as world-pixel draw ops.
type Scene interface {
	registry.Game
	DisplayList() []stage.DrawOp
	WorldSize() (float64, float64)
}

// Recorder receives the game state after every tick.
type Recorder func(g registry.Game, st core.GameState)

// Window adapts a Scene to ebiten.Game.
type Window struct {
	scene   Scene
	cfg     core.RuntimeConfig
	tracker *core.InputTracker
	record  Recorder
	state   core.GameState
	logger  *log.Logger
}

// NewWindow creates a window front end for the scene.
func NewWindow(scene Scene, cfg core.RuntimeConfig, record Recorder, logger *log.Logger) *Window {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Window{
		scene:   scene,
		cfg:     cfg,
		tracker: core.NewInputTracker(),
		record:  record,
		logger:  logger,
	}
}

// Update advances the game one tick with the current key state.
func (w *Window) Update() error {
	down := keyState(ebiten.IsKeyPressed)
	if down[core.ActionQuit] {
		return errQuit
	}
	return w.step(down)
}

func (w *Window) step(down map[core.Action]bool) error {
	res := w.scene.Step(w.tracker.Next(down))
	w.state = res.State
	if w.record != nil {
		w.record(w.scene, w.state)
	}
	return nil
}

// Draw renders the scene's display list.
func (w *Window) Draw(screen *ebiten.Image) {
	for _, op := range w.scene.DisplayList() {
		switch op.Kind {
		case stage.OpImage, stage.OpSprite:
			vector.DrawFilledRect(screen,
				float32(op.Box.Left()), float32(op.Box.Top()),
				float32(op.Box.Size.X), float32(op.Box.Size.Y),
				RGBA(op.Color), false)
		case stage.OpText:
			x := op.X - op.Origin*float64(len(op.Text)*debugGlyphW)
			ebitenutil.DebugPrintAt(screen, op.Text, int(x), int(op.Y))
		}
	}

	if w.state.Paused {
		ww, hh := w.scene.WorldSize()
		label := "PAUSED - press P to resume"
		ebitenutil.DebugPrintAt(screen, label, int(ww)/2-len(label)*debugGlyphW/2, int(hh)/2+24)
	}
}

// Layout keeps the logical screen at world size; ebiten scales the window.
func (w *Window) Layout(_, _ int) (int, int) {
	ww, hh := w.scene.WorldSize()
	return int(ww), int(hh)
}

// Run opens a window and plays the scene until it is closed or Q is pressed.
func Run(scene Scene, cfg core.RuntimeConfig, record Recorder, logger *log.Logger) error {
	if err := registry.Prepare(scene); err != nil {
		return err
	}

	w := NewWindow(scene, cfg, record, logger)
	scene.Reset(w.cfg)

	width, height := scene.WorldSize()
	ebiten.SetWindowSize(int(width), int(height))
	ebiten.SetWindowTitle(scene.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(w.cfg.TickRate)

	w.logger.Info("window opened", "game", scene.ID(), "tps", w.cfg.TickRate)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, errQuit) {
		return fmt.Errorf("gfx: %w", err)
	}
	return nil
}
