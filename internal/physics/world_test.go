package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/starfall/internal/core"
)

const (
	layerPlatform Layer = iota
	layerPlayer
	layerStar
)

const dt = 1.0 / 60

func newTestWorld() *World {
	return NewWorld(Config{Width: 800, Height: 600, Gravity: 300})
}

func TestBodyFallsAndLandsOnPlatform(t *testing.T) {
	w := newTestWorld()
	w.NewBody(Body{Pos: core.V(400, 568), Size: core.V(800, 64), Static: true, Layer: layerPlatform})
	p := w.NewBody(Body{
		Pos:          core.V(100, 450),
		Size:         core.V(32, 48),
		Bounce:       core.V(0, 0.2),
		AllowGravity: true,
		Layer:        layerPlayer,
	})
	w.Collide(layerPlayer, layerPlatform, nil)

	for i := 0; i < 180; i++ {
		w.Step(dt)
	}

	b := w.Body(p)
	if got, want := b.Box().Bottom(), 536.0; math.Abs(got-want) > 1 {
		t.Errorf("bottom = %.2f, expected about %.0f", got, want)
	}
	if !w.Grounded(p) {
		t.Error("body resting on a platform should be grounded")
	}
	if b.Vel.Y > 10 {
		t.Errorf("resting body still moving down at %.2f", b.Vel.Y)
	}
}

func TestWorldBoundsBlockAndBounce(t *testing.T) {
	w := newTestWorld()
	e := w.NewBody(Body{
		Pos:                core.V(10, 300),
		Size:               core.V(14, 14),
		Vel:                core.V(-200, 0),
		Bounce:             core.V(1, 1),
		CollideWorldBounds: true,
		Layer:              layerStar,
	})

	w.Step(dt)

	b := w.Body(e)
	if b.Box().Left() != 0 {
		t.Errorf("left = %.2f, expected 0", b.Box().Left())
	}
	if b.Vel.X != 200 {
		t.Errorf("vel.x = %.2f, expected reflected 200", b.Vel.X)
	}
	if !b.Blocked.Left {
		t.Error("expected Blocked.Left")
	}
}

func TestGroundedOnWorldFloor(t *testing.T) {
	w := newTestWorld()
	e := w.NewBody(Body{
		Pos:                core.V(100, 590),
		Size:               core.V(32, 48),
		AllowGravity:       true,
		CollideWorldBounds: true,
		Layer:              layerPlayer,
	})
	w.Step(dt)
	if !w.Grounded(e) {
		t.Error("body clamped to the floor should be grounded")
	}
}

func TestOverlapDoesNotSeparate(t *testing.T) {
	w := newTestWorld()
	p := w.NewBody(Body{Pos: core.V(100, 100), Size: core.V(32, 48), Layer: layerPlayer})
	s := w.NewBody(Body{Pos: core.V(110, 100), Size: core.V(24, 22), Layer: layerStar})

	var got [][2]Entity
	w.Overlap(layerPlayer, layerStar, func(a, b Entity) {
		got = append(got, [2]Entity{a, b})
	})
	w.Step(dt)

	if len(got) != 1 || got[0] != [2]Entity{p, s} {
		t.Fatalf("overlap callbacks = %v, expected one (player, star)", got)
	}
	if w.Body(s).Pos.X != 110 {
		t.Error("overlap must not move bodies")
	}
}

func TestDisabledBodiesAreSkipped(t *testing.T) {
	w := newTestWorld()
	w.NewBody(Body{Pos: core.V(100, 100), Size: core.V(32, 48), Layer: layerPlayer})
	s := w.NewBody(Body{Pos: core.V(100, 100), Size: core.V(24, 22), Layer: layerStar})

	calls := 0
	w.Overlap(layerPlayer, layerStar, func(a, b Entity) {
		calls++
		w.Disable(b)
	})
	w.Step(dt)
	w.Step(dt)

	if calls != 1 {
		t.Errorf("calls = %d, expected 1", calls)
	}
	if w.CountActive(layerStar) != 0 {
		t.Errorf("CountActive = %d, expected 0", w.CountActive(layerStar))
	}

	w.Enable(s, 300, 0)
	if w.CountActive(layerStar) != 1 {
		t.Error("Enable should reactivate the body")
	}
	if b := w.Body(s); b.Pos != core.V(300, 0) || b.Vel != (core.Vec{}) {
		t.Errorf("enabled body at %+v vel %+v", b.Pos, b.Vel)
	}
}

func TestPauseFreezesAndStopsRemainingChecks(t *testing.T) {
	w := newTestWorld()
	w.NewBody(Body{Pos: core.V(100, 100), Size: core.V(32, 48), Layer: layerPlayer})
	w.NewBody(Body{Pos: core.V(100, 100), Size: core.V(24, 22), Layer: layerStar})
	falling := w.NewBody(Body{Pos: core.V(400, 100), Size: core.V(10, 10), AllowGravity: true, Layer: layerStar})

	first, second := 0, 0
	w.Overlap(layerPlayer, layerStar, func(a, b Entity) {
		first++
		w.Pause()
	})
	w.Overlap(layerPlayer, layerStar, func(a, b Entity) { second++ })

	w.Step(dt)
	y := w.Body(falling).Pos.Y
	w.Step(dt)
	w.Step(dt)

	if first != 1 || second != 0 {
		t.Errorf("first=%d second=%d, expected 1 and 0", first, second)
	}
	if !w.Paused() {
		t.Fatal("world should be paused")
	}
	if w.Body(falling).Pos.Y != y {
		t.Error("paused world moved a body")
	}
}

func TestCollidersRunInRegistrationOrder(t *testing.T) {
	w := newTestWorld()
	w.NewBody(Body{Pos: core.V(100, 100), Size: core.V(32, 48), Layer: layerPlayer})
	w.NewBody(Body{Pos: core.V(100, 100), Size: core.V(24, 22), Layer: layerStar})

	var order []string
	w.Overlap(layerPlayer, layerStar, func(a, b Entity) { order = append(order, "first") })
	w.Overlap(layerPlayer, layerStar, func(a, b Entity) { order = append(order, "second") })
	w.Step(dt)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v", order)
	}
}

func TestResetRemovesEverything(t *testing.T) {
	w := newTestWorld()
	e := w.NewBody(Body{Pos: core.V(1, 1), Size: core.V(1, 1), Layer: layerStar})
	w.Collide(layerStar, layerStar, nil)
	w.Pause()

	w.Reset()

	if w.Body(e) != nil {
		t.Error("body survived Reset")
	}
	if w.Paused() {
		t.Error("Reset should resume the world")
	}
	if len(w.Bodies(layerStar)) != 0 {
		t.Error("Bodies should be empty after Reset")
	}
}

func TestHitFromBelowStopsUpwardMotion(t *testing.T) {
	w := newTestWorld()
	w.NewBody(Body{Pos: core.V(400, 100), Size: core.V(400, 32), Static: true, Layer: layerPlatform})
	p := w.NewBody(Body{Pos: core.V(400, 142), Size: core.V(32, 48), Vel: core.V(0, -330), Layer: layerPlayer})
	w.Collide(layerPlayer, layerPlatform, nil)

	w.Step(dt)

	b := w.Body(p)
	if b.Box().Top() != 116 {
		t.Errorf("top = %.2f, expected 116", b.Box().Top())
	}
	if b.Vel.Y < 0 {
		t.Errorf("vel.y = %.2f, expected upward motion stopped", b.Vel.Y)
	}
	if w.Grounded(p) {
		t.Error("hitting a ceiling is not grounded")
	}
}
