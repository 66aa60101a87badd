package starfall

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/starfall/internal/clock"
	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/physics"
	"github.com/vovakirdan/starfall/internal/stage"
)

// Physics is the simulation a round drives.
type Physics interface {
	NewBody(b physics.Body) physics.Entity
	Body(e physics.Entity) *physics.Body
	Enable(e physics.Entity, x, y float64)
	Disable(e physics.Entity)
	CountActive(layer physics.Layer) int
	Collide(a, b physics.Layer, fn physics.CollideFunc)
	Overlap(a, b physics.Layer, fn physics.CollideFunc)
	Grounded(e physics.Entity) bool
	Pause()
	Paused() bool
	Reset()
}

// Presenter places sprites and overlays.
type Presenter interface {
	Catalog() *stage.Catalog
	AddImage(key string, x, y float64) error
	AddSprite(e physics.Entity, key string) (*stage.Sprite, error)
	CreateAnim(a stage.Anim) error
	Play(e physics.Entity, key string) error
	SetTint(e physics.Entity, c core.Color)
	AddText(x, y float64, content string, origin float64, c core.Color) *stage.Text
	Reset()
}

// Timers schedules recurring callbacks in simulated time.
type Timers interface {
	AddEvent(delay time.Duration, loop bool, fn func()) *clock.Event
	Reset()
}

// Deps are the collaborators a round is built on.
type Deps struct {
	Physics Physics
	Stage   Presenter
	Timers  Timers
	Log     *log.Logger
	Rand    *rand.Rand
}

// EndReason tells why a round entered the over state.
type EndReason string

const (
	ReasonNone   EndReason = ""
	ReasonTimeUp EndReason = "time_up"
	ReasonHazard EndReason = "hazard"
)

// RoundState is the mutable state of one round.
type RoundState struct {
	ID       uuid.UUID
	Number   int
	Score    int
	TimeLeft int
	Over     bool
	Reason   EndReason
	Hazards  int // Hazards spawned so far
	Batches  int // Collectible batches cleared
	Elapsed  float64
}

// Round is the round controller: it builds the scene, reacts to input and
// collisions each frame, and ends the round on time-up or a hazard hit.
type Round struct {
	cfg   config.StarfallConfig
	phys  Physics
	stage Presenter
	timer Timers
	log   *log.Logger
	rng   *rand.Rand

	state   RoundState
	number  int
	player  physics.Entity
	stars   []physics.Entity
	hazards []physics.Entity

	scoreText *stage.Text
	timeText  *stage.Text
	overText  *stage.Text
	countdown *clock.Event
}

// NewRound creates a round controller. Call Preload once, then Setup.
func NewRound(cfg config.StarfallConfig, d Deps) *Round {
	if d.Log == nil {
		d.Log = discardLogger()
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewSource(0))
	}
	return &Round{
		cfg:   cfg,
		phys:  d.Physics,
		stage: d.Stage,
		timer: d.Timers,
		log:   d.Log,
		rng:   d.Rand,
	}
}

// State returns a copy of the round state.
func (r *Round) State() RoundState {
	return r.state
}

// Player returns the player's body handle.
func (r *Round) Player() physics.Entity {
	return r.player
}

// Stars returns the collectible handles in spawn order.
func (r *Round) Stars() []physics.Entity {
	return r.stars
}

// Hazards returns the hazard handles in spawn order.
func (r *Round) Hazards() []physics.Entity {
	return r.hazards
}

// Overlays returns the score, time and game-over texts.
func (r *Round) Overlays() (score, timeLeft, over *stage.Text) {
	return r.scoreText, r.timeText, r.overText
}

// Preload checks that every texture the round uses is in the catalog.
func (r *Round) Preload(cat *stage.Catalog) error {
	return requireAssets(cat)
}

func requireAssets(cat *stage.Catalog) error {
	return cat.Require([]string{keySky, keyGround, keyStar, keyBomb}, []string{keyDude})
}

// Init resets the round state for a new round.
func (r *Round) Init() {
	r.number++
	r.state = RoundState{
		ID:       uuid.New(),
		Number:   r.number,
		TimeLeft: r.cfg.Round.Duration,
	}
	r.stars = nil
	r.hazards = nil
	r.countdown = nil
}

// Setup starts a new round: Init followed by Create.
func (r *Round) Setup() error {
	r.Init()
	if err := r.Create(); err != nil {
		return fmt.Errorf("starfall: cannot create round: %w", err)
	}
	r.log.Info("round started", "round", r.state.Number, "id", r.state.ID, "duration", r.state.TimeLeft)
	return nil
}

// Restart discards the current round and all its entities, then sets up a
// fresh one. The old countdown cannot fire into the new round.
func (r *Round) Restart() error {
	r.stopCountdown()
	r.timer.Reset()
	r.phys.Reset()
	r.stage.Reset()
	return r.Setup()
}

// Update runs once per frame before the physics step.
func (r *Round) Update(in core.InputFrame, dt float64) {
	if in.JustPressed(core.ActionRestart) {
		if err := r.Restart(); err != nil {
			r.log.Error("restart failed", "err", err)
		}
		return
	}

	pb := r.phys.Body(r.player)
	if pb == nil {
		return
	}

	if r.state.Over {
		pb.SetVelocity(0, 0)
		r.play(animTurn)
		r.overText.SetVisible(true)
		return
	}

	r.state.Elapsed += dt

	switch {
	case in.IsDown(core.ActionLeft):
		pb.Vel.X = -r.cfg.Player.RunSpeed
		r.play(animLeft)
	case in.IsDown(core.ActionRight):
		pb.Vel.X = r.cfg.Player.RunSpeed
		r.play(animRight)
	default:
		pb.Vel.X = 0
		r.play(animTurn)
	}

	if in.IsDown(core.ActionUp) && r.phys.Grounded(r.player) {
		pb.Vel.Y = -r.cfg.Player.JumpSpeed
	}
}

// tick is the one-second countdown callback.
func (r *Round) tick() {
	if r.state.Over {
		return
	}
	r.state.TimeLeft--
	if r.state.TimeLeft < 0 {
		r.state.TimeLeft = 0
	}
	r.timeText.SetText(timeLabel(r.state.TimeLeft))
	if r.state.TimeLeft == 0 {
		r.end(ReasonTimeUp)
	}
}

// collect handles the player overlapping a star.
func (r *Round) collect(_, star physics.Entity) {
	if r.state.Over {
		return
	}
	r.phys.Disable(star)
	r.state.Score += r.cfg.Round.Award
	r.scoreText.SetText(scoreLabel(r.state.Score))

	if r.phys.CountActive(layerStar) == 0 {
		r.respawnBatch()
	}
}

// respawnBatch brings every star back at the top and adds one hazard on the
// half of the field away from the player.
func (r *Round) respawnBatch() {
	r.state.Batches++
	for i, s := range r.stars {
		r.phys.Enable(s, r.starX(i), 0)
		if b := r.phys.Body(s); b != nil {
			b.Bounce.Y = r.starBounce()
		}
	}

	x := r.hazardX(r.phys.Body(r.player).Pos.X)
	if err := r.spawnHazard(x); err != nil {
		r.log.Error("hazard spawn failed", "err", err)
		return
	}
	r.log.Debug("batch cleared", "round", r.state.Number, "batch", r.state.Batches, "hazard_x", x)
}

// hazardX picks a spawn x on the opposite half of the field.
func (r *Round) hazardX(playerX float64) float64 {
	mid := r.cfg.World.Width / 2
	if playerX < mid {
		return r.between(mid, r.cfg.World.Width)
	}
	return r.between(0, mid)
}

func (r *Round) spawnHazard(x float64) error {
	size, err := r.stage.Catalog().Size(keyBomb)
	if err != nil {
		return err
	}
	h := r.cfg.Hazards
	e := r.phys.NewBody(physics.Body{
		Pos:                core.V(x, h.SpawnY),
		Size:               size,
		Vel:                core.V(r.between(-h.MaxVX, h.MaxVX), h.VY),
		Bounce:             core.V(h.Bounce, h.Bounce),
		Layer:              layerHazard,
		CollideWorldBounds: true,
	})
	if _, err := r.stage.AddSprite(e, keyBomb); err != nil {
		return err
	}
	r.hazards = append(r.hazards, e)
	r.state.Hazards++
	return nil
}

// hitHazard handles the player colliding with a bomb.
func (r *Round) hitHazard(player, _ physics.Entity) {
	if r.state.Over {
		return
	}
	r.phys.Pause()
	r.stage.SetTint(player, core.ColorRed)
	r.play(animTurn)
	r.end(ReasonHazard)
}

// end moves the round to the over state. It is the only place the
// countdown is cancelled.
func (r *Round) end(reason EndReason) {
	if r.state.Over {
		return
	}
	r.state.Over = true
	r.state.Reason = reason
	r.stopCountdown()
	r.log.Info("round over",
		"round", r.state.Number,
		"reason", string(reason),
		"score", r.state.Score,
		"hazards", r.state.Hazards,
	)
}

func (r *Round) stopCountdown() {
	if r.countdown != nil {
		r.countdown.Remove()
		r.countdown = nil
	}
}

func (r *Round) play(anim string) {
	if err := r.stage.Play(r.player, anim); err != nil {
		r.log.Warn("animation failed", "anim", anim, "err", err)
	}
}

// starBounce draws a vertical bounce for a star.
func (r *Round) starBounce() float64 {
	c := r.cfg.Collectibles
	return c.MinBounce + r.rng.Float64()*(c.MaxBounce-c.MinBounce)
}

// between returns a whole number in [lo, hi].
func (r *Round) between(lo, hi float64) float64 {
	a, b := int(lo), int(hi)
	if b <= a {
		return float64(a)
	}
	return float64(a + r.rng.Intn(b-a+1))
}

func (r *Round) starX(i int) float64 {
	return r.cfg.Collectibles.StartX + float64(i)*r.cfg.Collectibles.StepX
}

func scoreLabel(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

func timeLabel(sec int) string {
	return fmt.Sprintf("Time: %d", sec)
}
