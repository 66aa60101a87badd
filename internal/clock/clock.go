// Package clock provides simulated-time timer events for frame-driven games.
// Time only moves when the owner calls Advance, so a round driven at any
// frame rate sees the same callbacks for the same elapsed time.
package clock

import "time"

// Event is a scheduled callback registered on a Clock.
type Event struct {
	delay   time.Duration
	elapsed time.Duration
	loop    bool
	fn      func()
	removed bool
	fired   int
}

// Remove cancels the event. A removed event never fires again, even when
// Remove is called from inside its own callback.
func (e *Event) Remove() {
	e.removed = true
}

// Removed reports whether the event was cancelled or has completed.
func (e *Event) Removed() bool {
	return e.removed
}

// Fired returns how many times the callback has run.
func (e *Event) Fired() int {
	return e.fired
}

// Clock owns timer events and the simulated time they run against.
type Clock struct {
	now    time.Duration
	events []*Event
}

// New creates a clock at time zero with no events.
func New() *Clock {
	return &Clock{}
}

// Now returns the simulated time elapsed since creation or the last Reset.
func (c *Clock) Now() time.Duration {
	return c.now
}

// AddEvent schedules fn to run after delay. Looping events repeat every delay.
// A non-positive delay is treated as one nanosecond.
func (c *Clock) AddEvent(delay time.Duration, loop bool, fn func()) *Event {
	if delay <= 0 {
		delay = time.Nanosecond
	}
	e := &Event{delay: delay, loop: loop, fn: fn}
	c.events = append(c.events, e)
	return e
}

// Advance moves simulated time forward by dt and runs due callbacks in
// registration order. Events added by a callback start counting from the
// next Advance.
func (c *Clock) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	c.now += dt

	due := c.events
	for _, e := range due {
		if e.removed {
			continue
		}
		e.elapsed += dt
		for !e.removed && e.elapsed >= e.delay {
			e.elapsed -= e.delay
			e.fired++
			if !e.loop {
				e.removed = true
			}
			e.fn()
		}
	}
	c.compact()
}

// Pending returns the number of events that can still fire.
func (c *Clock) Pending() int {
	n := 0
	for _, e := range c.events {
		if !e.removed {
			n++
		}
	}
	return n
}

// Reset cancels every event and rewinds time to zero.
func (c *Clock) Reset() {
	for _, e := range c.events {
		e.removed = true
	}
	c.events = nil
	c.now = 0
}

func (c *Clock) compact() {
	live := c.events[:0]
	for _, e := range c.events {
		if !e.removed {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(c.events); i++ {
		c.events[i] = nil
	}
	c.events = live
}
