package starfall

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/starfall/internal/clock"
	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/physics"
	"github.com/vovakirdan/starfall/internal/stage"
)

const tickRate = 60

// harness drives a round with real collaborators in the same per-frame
// order as Game.Step.
type harness struct {
	t      *testing.T
	world  *physics.World
	stage  *stage.Stage
	clock  *clock.Clock
	round  *Round
	frames int
	sim    time.Duration
}

func newHarness(t *testing.T, seed int64) *harness {
	return newHarnessWith(t, seed, nil)
}

// newHarnessWith builds a harness; wrap, when set, replaces the physics
// collaborator the round sees.
func newHarnessWith(t *testing.T, seed int64, wrap func(*physics.World) Physics) *harness {
	t.Helper()
	cat, err := stage.LoadCatalog(assetsYAML)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	cfg := config.DefaultStarfallConfig()
	h := &harness{t: t}
	h.world = physics.NewWorld(physics.Config{Width: cfg.World.Width, Height: cfg.World.Height, Gravity: cfg.World.Gravity})
	h.stage = stage.New(cat, h.world)
	h.clock = clock.New()

	var phys Physics = h.world
	if wrap != nil {
		phys = wrap(h.world)
	}
	h.round = NewRound(cfg, Deps{
		Physics: phys,
		Stage:   h.stage,
		Timers:  h.clock,
		Rand:    rand.New(rand.NewSource(seed)),
	})
	if err := h.round.Preload(cat); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	if err := h.round.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return h
}

func (h *harness) frame(in core.InputFrame) {
	h.frames++
	now := time.Duration(h.frames) * time.Second / tickRate
	dt := now - h.sim
	h.sim = now

	h.round.Update(in, dt.Seconds())
	h.world.Step(dt.Seconds())
	h.stage.Update(dt.Seconds())
	h.clock.Advance(dt)
}

func (h *harness) idle(n int) {
	for i := 0; i < n; i++ {
		h.frame(core.NewInputFrame())
	}
}

func (h *harness) player() *physics.Body {
	return h.world.Body(h.round.Player())
}

func (h *harness) collectAll() {
	for _, s := range h.round.Stars() {
		if b := h.world.Body(s); b != nil && b.Enabled {
			h.round.collect(h.round.Player(), s)
		}
	}
}

func held(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Hold(a)
	}
	return in
}

func TestSetupInitialState(t *testing.T) {
	h := newHarness(t, 1)
	st := h.round.State()

	if st.Score != 0 || st.TimeLeft != 10 || st.Over {
		t.Errorf("initial state = %+v", st)
	}
	if st.Number != 1 {
		t.Errorf("round number = %d, expected 1", st.Number)
	}
	if got := len(h.round.Stars()); got != 12 {
		t.Fatalf("stars = %d, expected 12", got)
	}
	if len(h.round.Hazards()) != 0 {
		t.Error("hazard set should start empty")
	}
	for i, s := range h.round.Stars() {
		b := h.world.Body(s)
		if b.Pos.X != 12+70*float64(i) || b.Pos.Y != 0 {
			t.Errorf("star %d at %+v", i, b.Pos)
		}
	}
	if p := h.player(); p.Pos != core.V(100, 450) || p.Bounce.Y != 0.2 || !p.CollideWorldBounds {
		t.Errorf("player = %+v", p)
	}

	score, tl, over := h.round.Overlays()
	if score.Content != "Score: 0" || score.X != 16 || score.Y != 16 {
		t.Errorf("score overlay = %+v", score)
	}
	if tl.Content != "Time: 10" || tl.X != 700 || tl.Origin != 0.5 {
		t.Errorf("time overlay = %+v", tl)
	}
	if over.Visible || over.Content != "GAME OVER" || over.X != 400 || over.Y != 300 {
		t.Errorf("game over overlay = %+v", over)
	}
	if n := h.world.CountActive(layerPlatform); n != 4 {
		t.Errorf("platforms = %d, expected 4", n)
	}
}

func TestTimeRunsOutAfterTenSeconds(t *testing.T) {
	h := newHarness(t, 1)
	_, timeText, overText := h.round.Overlays()

	for sec := 1; sec <= 10; sec++ {
		h.idle(tickRate - 1)
		if got := h.round.State().TimeLeft; got != 11-sec {
			t.Fatalf("one frame before second %d: TimeLeft = %d, expected %d", sec, got, 11-sec)
		}
		h.idle(1)
		if got := h.round.State().TimeLeft; got != 10-sec {
			t.Fatalf("after second %d: TimeLeft = %d, expected %d", sec, got, 10-sec)
		}
	}

	st := h.round.State()
	if !st.Over || st.Reason != ReasonTimeUp {
		t.Fatalf("state after 10s = %+v, expected over by time_up", st)
	}
	if timeText.Content != "Time: 0" {
		t.Errorf("time overlay = %q, expected %q", timeText.Content, "Time: 0")
	}

	// The next frame forces the player to a stop and shows the overlay,
	// even with input held.
	h.player().SetVelocity(50, 50)
	h.round.Update(held(core.ActionRight, core.ActionUp), 1.0/tickRate)
	if v := h.player().Vel; v != (core.Vec{}) {
		t.Errorf("player velocity = %+v, expected (0,0)", v)
	}
	if !overText.Visible {
		t.Error("game over overlay should be visible")
	}
	if a := h.stage.Sprite(h.round.Player()).Animation(); a != animTurn {
		t.Errorf("animation = %q, expected %q", a, animTurn)
	}
}

func TestTimeFrozenAfterOver(t *testing.T) {
	h := newHarness(t, 1)
	h.idle(tickRate * 3)
	h.round.hitHazard(h.round.Player(), h.round.Player())

	left := h.round.State().TimeLeft
	h.idle(tickRate * 20)

	if got := h.round.State().TimeLeft; got != left {
		t.Errorf("TimeLeft changed after Over: %d -> %d", left, got)
	}
	if h.clock.Pending() != 0 {
		t.Errorf("countdown still scheduled after Over")
	}
}

func TestCountdownClampsAtZero(t *testing.T) {
	h := newHarness(t, 1)
	h.round.state.TimeLeft = 0
	h.round.tick()

	st := h.round.State()
	if st.TimeLeft != 0 || !st.Over {
		t.Errorf("state = %+v, expected clamped at 0 and over", st)
	}
}

func TestCollectAllStars(t *testing.T) {
	h := newHarness(t, 7)
	stars := h.round.Stars()
	scoreText, _, _ := h.round.Overlays()

	for i, s := range stars[:11] {
		h.round.collect(h.round.Player(), s)
		if got := h.round.State().Score; got != 10*(i+1) {
			t.Fatalf("score after %d stars = %d", i+1, got)
		}
		if h.world.Body(s).Enabled {
			t.Fatalf("collected star %d still enabled", i)
		}
	}
	if len(h.round.Hazards()) != 0 {
		t.Fatal("hazard spawned before the batch was cleared")
	}

	h.round.collect(h.round.Player(), stars[11])

	st := h.round.State()
	if st.Score != 120 || scoreText.Content != "Score: 120" {
		t.Errorf("score = %d, overlay %q, expected 120", st.Score, scoreText.Content)
	}
	if got := len(h.round.Hazards()); got != 1 {
		t.Errorf("hazards = %d, expected exactly 1", got)
	}
	if got := h.world.CountActive(layerStar); got != 12 {
		t.Errorf("active stars = %d, expected 12", got)
	}
	if st.Batches != 1 || st.Hazards != 1 {
		t.Errorf("batches=%d hazards=%d", st.Batches, st.Hazards)
	}
	for i, s := range stars {
		b := h.world.Body(s)
		if b.Pos.X != 12+70*float64(i) || b.Pos.Y != 0 {
			t.Errorf("star %d respawned at %+v", i, b.Pos)
		}
		if b.Bounce.Y < 0.4 || b.Bounce.Y > 0.8 {
			t.Errorf("star %d bounce %.3f outside [0.4, 0.8]", i, b.Bounce.Y)
		}
	}

	hz := h.world.Body(h.round.Hazards()[0])
	if hz.AllowGravity || !hz.CollideWorldBounds || hz.Bounce != core.V(1, 1) {
		t.Errorf("hazard body = %+v", hz)
	}
	if hz.Vel.Y != 20 || hz.Vel.X < -200 || hz.Vel.X > 200 {
		t.Errorf("hazard velocity = %+v", hz.Vel)
	}
	if hz.Pos.Y != 16 {
		t.Errorf("hazard y = %v, expected 16", hz.Pos.Y)
	}
}

func TestCollectThroughPhysicsOverlap(t *testing.T) {
	h := newHarness(t, 1)
	star := h.round.Stars()[5]
	sb := h.world.Body(star)
	sb.Pos = h.player().Pos
	sb.Prev = sb.Pos

	h.idle(1)

	if got := h.round.State().Score; got != 10 {
		t.Errorf("score = %d, expected 10", got)
	}
	if h.world.Body(star).Enabled {
		t.Error("collected star should be disabled")
	}
}

func TestSecondBatchAddsSecondHazard(t *testing.T) {
	h := newHarness(t, 3)
	h.collectAll()
	h.collectAll()

	st := h.round.State()
	if st.Score != 240 || len(h.round.Hazards()) != 2 || st.Batches != 2 {
		t.Errorf("after two batches: score=%d hazards=%d batches=%d", st.Score, len(h.round.Hazards()), st.Batches)
	}
}

func TestHazardSpawnsOnOppositeHalf(t *testing.T) {
	tests := []struct {
		name     string
		playerX  float64
		min, max float64
	}{
		{"player left", 100, 400, 800},
		{"player just left of midpoint", 399.5, 400, 800},
		{"player at midpoint", 400, 0, 400},
		{"player right", 700, 0, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 11)
			for i := 0; i < 500; i++ {
				x := h.round.hazardX(tt.playerX)
				if x < tt.min || x > tt.max {
					t.Fatalf("hazard x = %v outside [%v, %v]", x, tt.min, tt.max)
				}
			}

			h.player().Pos.X = tt.playerX
			h.collectAll()
			x := h.world.Body(h.round.Hazards()[0]).Pos.X
			if x < tt.min || x > tt.max {
				t.Errorf("spawned hazard x = %v outside [%v, %v]", x, tt.min, tt.max)
			}
		})
	}
}

func TestStarBounceRange(t *testing.T) {
	h := newHarness(t, 99)
	for i := 0; i < 2000; i++ {
		b := h.round.starBounce()
		if b < 0.4 || b > 0.8 {
			t.Fatalf("bounce %.4f outside [0.4, 0.8]", b)
		}
	}
	for i, s := range h.round.Stars() {
		if b := h.world.Body(s).Bounce.Y; b < 0.4 || b > 0.8 {
			t.Errorf("initial star %d bounce %.4f", i, b)
		}
	}
}

func TestHazardHitEndsRound(t *testing.T) {
	h := newHarness(t, 5)
	h.collectAll()
	scoreBefore := h.round.State().Score

	hz := h.world.Body(h.round.Hazards()[0])
	hz.Pos = h.player().Pos
	hz.Prev = hz.Pos
	h.idle(1)

	st := h.round.State()
	if !st.Over || st.Reason != ReasonHazard {
		t.Fatalf("state = %+v, expected over by hazard", st)
	}
	if !h.world.Paused() {
		t.Error("physics should be paused")
	}
	sp := h.stage.Sprite(h.round.Player())
	if !sp.Tinted || sp.Tint != core.ColorRed {
		t.Error("player should be tinted red")
	}
	if sp.Animation() != animTurn {
		t.Errorf("animation = %q, expected %q", sp.Animation(), animTurn)
	}
	if st.Score != scoreBefore {
		t.Errorf("score changed on hazard hit: %d -> %d", scoreBefore, st.Score)
	}

	// No further score change is possible.
	for _, s := range h.round.Stars() {
		h.round.collect(h.round.Player(), s)
	}
	h.idle(tickRate * 2)
	if got := h.round.State().Score; got != scoreBefore {
		t.Errorf("score changed after Over: %d -> %d", scoreBefore, got)
	}
}

func TestOverIsMonotonic(t *testing.T) {
	h := newHarness(t, 2)
	h.round.hitHazard(h.round.Player(), h.round.Player())

	rng := rand.New(rand.NewSource(42))
	actions := []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionPause}
	for i := 0; i < 600; i++ {
		in := core.NewInputFrame()
		for _, a := range actions {
			if rng.Intn(2) == 0 {
				in.Press(a)
			}
		}
		h.frame(in)
		if !h.round.State().Over {
			t.Fatalf("Over cleared at frame %d without restart", i)
		}
	}
}

func TestHeldRestartTriggersOnce(t *testing.T) {
	h := newHarness(t, 4)
	tracker := core.NewInputTracker()

	for i := 0; i < 30; i++ {
		h.frame(tracker.Next(map[core.Action]bool{core.ActionRestart: true}))
	}

	if got := h.round.State().Number; got != 2 {
		t.Errorf("round number = %d after holding restart 30 frames, expected 2", got)
	}

	h.frame(tracker.Next(nil))
	h.frame(tracker.Next(map[core.Action]bool{core.ActionRestart: true}))
	if got := h.round.State().Number; got != 3 {
		t.Errorf("round number = %d after a second press, expected 3", got)
	}
}

func TestRestartFromOver(t *testing.T) {
	h := newHarness(t, 4)
	h.collectAll()
	h.round.hitHazard(h.round.Player(), h.round.Player())
	oldID := h.round.State().ID

	in := core.NewInputFrame()
	in.Press(core.ActionRestart)
	h.frame(in)

	st := h.round.State()
	if st.Over || st.Score != 0 || st.TimeLeft != 10 || st.Number != 2 {
		t.Errorf("state after restart = %+v", st)
	}
	if st.ID == oldID {
		t.Error("restart should assign a new round ID")
	}
	if h.world.Paused() {
		t.Error("restart should resume physics")
	}
	if len(h.round.Hazards()) != 0 || h.world.CountActive(layerHazard) != 0 {
		t.Error("hazards survived restart")
	}
	if h.world.CountActive(layerStar) != 12 {
		t.Errorf("active stars = %d", h.world.CountActive(layerStar))
	}
	if sp := h.stage.Sprite(h.round.Player()); sp.Tinted {
		t.Error("new player should not be tinted")
	}
}

func TestOldCountdownCannotFireIntoNewRound(t *testing.T) {
	h := newHarness(t, 4)
	h.idle(54) // 0.9s into the first second

	in := core.NewInputFrame()
	in.Press(core.ActionRestart)
	h.frame(in)
	h.idle(11) // 0.2s after the restart

	if got := h.round.State().TimeLeft; got != 10 {
		t.Errorf("TimeLeft = %d, the previous round's timer fired into the new one", got)
	}
	if h.clock.Pending() != 1 {
		t.Errorf("pending timers = %d, expected exactly the new countdown", h.clock.Pending())
	}
	h.idle(49)
	if got := h.round.State().TimeLeft; got != 9 {
		t.Errorf("TimeLeft = %d one second after restart, expected 9", got)
	}
}

func TestAnimationFollowsHorizontalInput(t *testing.T) {
	tests := []struct {
		name  string
		in    core.InputFrame
		anim  string
		velX  float64
	}{
		{"none", held(), animTurn, 0},
		{"left", held(core.ActionLeft), animLeft, -160},
		{"right", held(core.ActionRight), animRight, 160},
		{"both prefers left", held(core.ActionLeft, core.ActionRight), animLeft, -160},
		{"up only", held(core.ActionUp), animTurn, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 1)
			h.round.Update(tt.in, 1.0/tickRate)

			if got := h.stage.Sprite(h.round.Player()).Animation(); got != tt.anim {
				t.Errorf("animation = %q, expected %q", got, tt.anim)
			}
			if got := h.player().Vel.X; got != tt.velX {
				t.Errorf("vel.x = %v, expected %v", got, tt.velX)
			}
		})
	}
}

// groundStub reports a fixed grounded flag.
type groundStub struct {
	*physics.World
	grounded bool
}

func (g *groundStub) Grounded(physics.Entity) bool {
	return g.grounded
}

func TestJumpRequiresGroundAndActiveRound(t *testing.T) {
	tests := []struct {
		name     string
		up       bool
		grounded bool
		over     bool
		jump     bool
	}{
		{"up on ground", true, true, false, true},
		{"up in air", true, false, false, false},
		{"ground without up", false, true, false, false},
		{"up on ground while over", true, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &groundStub{grounded: tt.grounded}
			h := newHarnessWith(t, 1, func(w *physics.World) Physics {
				stub.World = w
				return stub
			})
			if tt.over {
				h.round.end(ReasonTimeUp)
			}
			h.player().Vel.Y = 42

			in := held()
			if tt.up {
				in = held(core.ActionUp)
			}
			h.round.Update(in, 1.0/tickRate)

			jumped := h.player().Vel.Y == -330
			if jumped != tt.jump {
				t.Errorf("jumped = %v, expected %v (vel.y = %v)", jumped, tt.jump, h.player().Vel.Y)
			}
		})
	}
}

func TestNoDoubleJump(t *testing.T) {
	h := newHarness(t, 1)
	h.idle(tickRate * 2) // land on the ground
	if !h.world.Grounded(h.round.Player()) {
		t.Fatal("player should have landed")
	}

	h.frame(held(core.ActionUp))
	if h.player().Vel.Y >= 0 {
		t.Fatalf("expected upward velocity after jump, got %v", h.player().Vel.Y)
	}

	// Keep holding up while airborne: velocity only ever decays by gravity.
	prev := h.player().Vel.Y
	for i := 0; i < 20; i++ {
		h.frame(held(core.ActionUp))
		if v := h.player().Vel.Y; v < prev {
			t.Fatalf("frame %d: vel.y went from %v to %v, a second jump was applied", i, prev, v)
		}
		prev = h.player().Vel.Y
	}
}

func TestRoundDeterminism(t *testing.T) {
	run := func() (RoundState, core.Vec) {
		h := newHarness(t, 12345)
		for i := 0; i < 400; i++ {
			in := core.NewInputFrame()
			switch {
			case i%90 < 40:
				in.Hold(core.ActionRight)
			case i%90 < 70:
				in.Hold(core.ActionLeft)
			}
			if i%25 == 0 {
				in.Hold(core.ActionUp)
			}
			h.frame(in)
		}
		return h.round.State(), h.player().Pos
	}

	s1, p1 := run()
	s2, p2 := run()
	if s1.Score != s2.Score || s1.TimeLeft != s2.TimeLeft || s1.Over != s2.Over {
		t.Errorf("determinism failed: %+v vs %+v", s1, s2)
	}
	if p1 != p2 {
		t.Errorf("player positions differ: %+v vs %+v", p1, p2)
	}
}
