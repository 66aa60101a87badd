// Package physics implements the arcade physics used by the platformer:
// axis-aligned bodies with gravity, bounce and world-bound collision, plus
// collider and overlap callbacks between layers of bodies.
//
// Bodies live in an ark ECS world; an Entity is the opaque handle callers
// keep for a body.
package physics

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/starfall/internal/core"
)

// Entity is the opaque handle of a body.
type Entity = ecs.Entity

// Layer groups bodies for collider registration ("platforms", "stars", ...).
type Layer uint8

// Sides records contact on each edge of a body during the last step.
type Sides struct {
	Up, Down, Left, Right bool
}

// Any reports whether any side is in contact.
func (s Sides) Any() bool {
	return s.Up || s.Down || s.Left || s.Right
}

// Body is the physics component of an entity. Pos is the body's center.
type Body struct {
	Pos    core.Vec
	Prev   core.Vec // Position before the last integration step
	Size   core.Vec
	Vel    core.Vec
	Bounce core.Vec
	Layer  Layer

	Static             bool
	AllowGravity       bool
	CollideWorldBounds bool
	Enabled            bool

	Touching Sides // Contact with other bodies
	Blocked  Sides // Contact with the world bounds
}

// Box returns the body's current bounds.
func (b *Body) Box() core.Box {
	return core.Box{Center: b.Pos, Size: b.Size}
}

// prevBox returns the body's bounds before the last integration step.
func (b *Body) prevBox() core.Box {
	return core.Box{Center: b.Prev, Size: b.Size}
}

// SetVelocity sets both velocity components.
func (b *Body) SetVelocity(x, y float64) {
	b.Vel = core.V(x, y)
}

// restSpeed is the rebound speed under which a falling body settles instead
// of bouncing again. Without it resting bodies jitter forever.
const restSpeed = 10.0

// rebound reflects a velocity component. Settling applies only to the
// gravity axis of bodies affected by gravity.
func rebound(v, bounce float64, settle bool) float64 {
	r := -v * bounce
	if settle && math.Abs(r) < restSpeed {
		return 0
	}
	return r
}
