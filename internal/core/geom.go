// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned rectangle on the character grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Vec is a 2D vector in world units (pixels of the logical play-field).
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Box is an axis-aligned rectangle in world units described by its center.
// Sprites and bodies are positioned by their center, like most 2D engines do.
type Box struct {
	Center Vec
	Size   Vec
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.Center.X - b.Size.X/2 }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.Center.X + b.Size.X/2 }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.Center.Y - b.Size.Y/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Center.Y + b.Size.Y/2 }

// Intersects reports whether two boxes overlap. Touching edges do not count.
func (b Box) Intersects(o Box) bool {
	if b.Left() >= o.Right() || o.Left() >= b.Right() {
		return false
	}
	if b.Top() >= o.Bottom() || o.Top() >= b.Bottom() {
		return false
	}
	return true
}

// Overlap returns the penetration depth on each axis (zero when apart).
func (b Box) Overlap(o Box) Vec {
	if !b.Intersects(o) {
		return Vec{}
	}
	ox := math.Min(b.Right(), o.Right()) - math.Max(b.Left(), o.Left())
	oy := math.Min(b.Bottom(), o.Bottom()) - math.Max(b.Top(), o.Top())
	return Vec{X: ox, Y: oy}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
