package physics

import "math"

// edgeSlop tolerates float drift when deciding which edge a body crossed.
const edgeSlop = 0.5

// Step advances the simulation by dt seconds: integrate enabled dynamic
// bodies, clamp them to the world bounds, then run colliders and overlaps
// in registration order. A paused world does nothing. Callbacks may pause
// the world, which stops the remaining checks of this step.
func (w *World) Step(dt float64) {
	if w.paused || dt <= 0 {
		return
	}
	w.steps++

	query := w.filter.Query()
	for query.Next() {
		b := query.Get()
		b.Touching = Sides{}
		b.Blocked = Sides{}
		if !b.Enabled || b.Static {
			continue
		}
		b.Prev = b.Pos
		if b.AllowGravity {
			b.Vel.Y += w.cfg.Gravity * dt
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		if b.CollideWorldBounds {
			w.clampToBounds(b)
		}
	}

	for _, p := range w.pairs {
		if w.runPair(p) {
			return
		}
	}
}

// runPair checks one registration and reports whether a callback paused
// the world.
func (w *World) runPair(p pair) bool {
	as := w.Bodies(p.a)
	bs := w.Bodies(p.b)
	for _, ea := range as {
		for _, eb := range bs {
			if ea == eb {
				continue
			}
			// Callbacks may create or disable bodies, so look both up again
			// on every iteration.
			a, b := w.Body(ea), w.Body(eb)
			if a == nil || b == nil || !a.Enabled || !b.Enabled {
				continue
			}
			if !a.Box().Intersects(b.Box()) {
				continue
			}
			if p.solid {
				separate(a, b)
			}
			if p.fn != nil {
				p.fn(ea, eb)
			}
			if w.paused {
				return true
			}
		}
	}
	return false
}

func (w *World) clampToBounds(b *Body) {
	half := b.Size.Scale(0.5)
	switch {
	case b.Pos.X-half.X < 0:
		b.Pos.X = half.X
		b.Vel.X = rebound(b.Vel.X, b.Bounce.X, false)
		b.Blocked.Left = true
	case b.Pos.X+half.X > w.cfg.Width:
		b.Pos.X = w.cfg.Width - half.X
		b.Vel.X = rebound(b.Vel.X, b.Bounce.X, false)
		b.Blocked.Right = true
	}
	switch {
	case b.Pos.Y-half.Y < 0:
		b.Pos.Y = half.Y
		b.Vel.Y = rebound(b.Vel.Y, b.Bounce.Y, false)
		b.Blocked.Up = true
	case b.Pos.Y+half.Y > w.cfg.Height:
		b.Pos.Y = w.cfg.Height - half.Y
		b.Vel.Y = rebound(b.Vel.Y, b.Bounce.Y, b.AllowGravity)
		b.Blocked.Down = true
	}
}

func separate(a, b *Body) {
	switch {
	case a.Static && b.Static:
	case b.Static:
		separateFromStatic(a, b)
	case a.Static:
		separateFromStatic(b, a)
	default:
		separateDynamic(a, b)
	}
}

// separateFromStatic pushes the dynamic body d out of the static body s
// through the edge it crossed during the last step.
func separateFromStatic(d, s *Body) {
	prev := d.prevBox()
	sb := s.Box()
	switch {
	case prev.Bottom() <= sb.Top()+edgeSlop && d.Vel.Y >= 0:
		landOn(d, s)
	case prev.Top() >= sb.Bottom()-edgeSlop && d.Vel.Y <= 0:
		hitFromBelow(d, s)
	case prev.Right() <= sb.Left()+edgeSlop:
		pushLeft(d, s)
	case prev.Left() >= sb.Right()-edgeSlop:
		pushRight(d, s)
	default:
		// Already inside, e.g. enabled on top of a platform: leave along
		// the shallower axis.
		ov := d.Box().Overlap(sb)
		switch {
		case ov.Y <= ov.X && d.Pos.Y <= s.Pos.Y:
			landOn(d, s)
		case ov.Y <= ov.X:
			hitFromBelow(d, s)
		case d.Pos.X <= s.Pos.X:
			pushLeft(d, s)
		default:
			pushRight(d, s)
		}
	}
}

func landOn(d, s *Body) {
	d.Pos.Y = s.Box().Top() - d.Size.Y/2
	if d.Vel.Y > 0 {
		d.Vel.Y = rebound(d.Vel.Y, d.Bounce.Y, d.AllowGravity)
	}
	d.Touching.Down = true
	s.Touching.Up = true
}

func hitFromBelow(d, s *Body) {
	d.Pos.Y = s.Box().Bottom() + d.Size.Y/2
	if d.Vel.Y < 0 {
		d.Vel.Y = rebound(d.Vel.Y, d.Bounce.Y, false)
	}
	d.Touching.Up = true
	s.Touching.Down = true
}

func pushLeft(d, s *Body) {
	d.Pos.X = s.Box().Left() - d.Size.X/2
	if d.Vel.X > 0 {
		d.Vel.X = rebound(d.Vel.X, d.Bounce.X, false)
	}
	d.Touching.Right = true
	s.Touching.Left = true
}

func pushRight(d, s *Body) {
	d.Pos.X = s.Box().Right() + d.Size.X/2
	if d.Vel.X < 0 {
		d.Vel.X = rebound(d.Vel.X, d.Bounce.X, false)
	}
	d.Touching.Left = true
	s.Touching.Right = true
}

// separateDynamic splits the overlap between two moving bodies and
// exchanges their velocities on the separating axis.
func separateDynamic(a, b *Body) {
	ov := a.Box().Overlap(b.Box())
	if ov.X < ov.Y {
		half := ov.X / 2
		if a.Pos.X <= b.Pos.X {
			a.Pos.X -= half
			b.Pos.X += half
			a.Touching.Right, b.Touching.Left = true, true
		} else {
			a.Pos.X += half
			b.Pos.X -= half
			a.Touching.Left, b.Touching.Right = true, true
		}
		a.Vel.X, b.Vel.X = b.Vel.X*a.Bounce.X, a.Vel.X*b.Bounce.X
		return
	}
	half := ov.Y / 2
	if a.Pos.Y <= b.Pos.Y {
		a.Pos.Y -= half
		b.Pos.Y += half
		a.Touching.Down, b.Touching.Up = true, true
	} else {
		a.Pos.Y += half
		b.Pos.Y -= half
		a.Touching.Up, b.Touching.Down = true, true
	}
	a.Vel.Y, b.Vel.Y = b.Vel.Y*a.Bounce.Y, a.Vel.Y*b.Bounce.Y
	if math.Abs(a.Vel.Y) < restSpeed && a.AllowGravity {
		a.Vel.Y = 0
	}
	if math.Abs(b.Vel.Y) < restSpeed && b.AllowGravity {
		b.Vel.Y = 0
	}
}
