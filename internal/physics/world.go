package physics

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/starfall/internal/core"
)

// Config describes the simulated play-field.
type Config struct {
	Width   float64 // World width in pixels
	Height  float64 // World height in pixels
	Gravity float64 // Downward acceleration in pixels per second squared
}

// CollideFunc is called with the pair of bodies that touched. The first
// argument belongs to the collider's first layer.
type CollideFunc func(a, b Entity)

type pair struct {
	a, b  Layer
	solid bool
	fn    CollideFunc
}

// World owns every body and the collider registrations between layers.
type World struct {
	cfg    Config
	world  ecs.World
	bodies *ecs.Map1[Body]
	filter *ecs.Filter1[Body]
	pairs  []pair
	paused bool
	steps  int
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	w := &World{
		cfg:   cfg,
		world: ecs.NewWorld(),
	}
	w.bodies = ecs.NewMap1[Body](&w.world)
	w.filter = ecs.NewFilter1[Body](&w.world)
	return w
}

// Config returns the world dimensions and gravity.
func (w *World) Config() Config {
	return w.cfg
}

// NewBody adds an enabled body and returns its handle.
func (w *World) NewBody(b Body) Entity {
	b.Enabled = true
	b.Prev = b.Pos
	return w.bodies.NewEntity(&b)
}

// Body returns the body for an entity, or nil if it no longer exists.
// The pointer is only valid until the next body is created or removed.
func (w *World) Body(e Entity) *Body {
	if !w.world.Alive(e) {
		return nil
	}
	return w.bodies.Get(e)
}

// Remove deletes a body. Removing a dead entity is a no-op.
func (w *World) Remove(e Entity) {
	if w.world.Alive(e) {
		w.world.RemoveEntity(e)
	}
}

// Disable takes a body out of the simulation without deleting it.
func (w *World) Disable(e Entity) {
	if b := w.Body(e); b != nil {
		b.Enabled = false
		b.Vel = core.Vec{}
		b.Touching = Sides{}
		b.Blocked = Sides{}
	}
}

// Enable puts a body back into the simulation at (x, y) with zero velocity.
func (w *World) Enable(e Entity, x, y float64) {
	if b := w.Body(e); b != nil {
		b.Enabled = true
		b.Pos = core.V(x, y)
		b.Prev = b.Pos
		b.Vel = core.Vec{}
	}
}

// Grounded reports whether the body's lower edge rests on a solid surface
// (another body or the bottom of the world) as of the last step.
func (w *World) Grounded(e Entity) bool {
	b := w.Body(e)
	return b != nil && b.Enabled && (b.Touching.Down || b.Blocked.Down)
}

// Bodies returns the entities on a layer, enabled or not, in creation order.
func (w *World) Bodies(layer Layer) []Entity {
	var out []Entity
	query := w.filter.Query()
	for query.Next() {
		if query.Get().Layer == layer {
			out = append(out, query.Entity())
		}
	}
	return out
}

// CountActive returns the number of enabled bodies on a layer.
func (w *World) CountActive(layer Layer) int {
	n := 0
	query := w.filter.Query()
	for query.Next() {
		b := query.Get()
		if b.Layer == layer && b.Enabled {
			n++
		}
	}
	return n
}

// Collide registers a solid collision between two layers. Overlapping
// bodies are separated before fn (which may be nil) is called.
func (w *World) Collide(a, b Layer, fn CollideFunc) {
	w.pairs = append(w.pairs, pair{a: a, b: b, solid: true, fn: fn})
}

// Overlap registers an overlap check between two layers. Bodies are not
// separated; fn is called for every overlapping pair.
func (w *World) Overlap(a, b Layer, fn CollideFunc) {
	w.pairs = append(w.pairs, pair{a: a, b: b, fn: fn})
}

// Pause stops the simulation globally until Resume.
func (w *World) Pause() {
	w.paused = true
}

// Resume restarts a paused simulation.
func (w *World) Resume() {
	w.paused = false
}

// Paused reports whether the simulation is paused.
func (w *World) Paused() bool {
	return w.paused
}

// Steps returns the number of simulation steps taken since creation or Reset.
func (w *World) Steps() int {
	return w.steps
}

// Reset removes every body and collider and resumes the simulation.
func (w *World) Reset() {
	var all []Entity
	query := w.filter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		w.world.RemoveEntity(e)
	}
	w.pairs = nil
	w.paused = false
	w.steps = 0
}
