package tui

import (
	"time"

	"github.com/vovakirdan/starfall/internal/core"
)

// holdWindow is how long a key counts as down after its last press event.
// Terminals report key repeats but never releases, so a held arrow shows
// up as a stream of presses roughly every 30-50ms after the initial delay.
const holdWindow = 200 * time.Millisecond

// keyHold approximates level key state from a terminal's press events.
type keyHold struct {
	window int // in ticks
	tick   int
	last   map[core.Action]int
}

func newKeyHold(tickRate int) *keyHold {
	if tickRate <= 0 {
		tickRate = 60
	}
	window := int(holdWindow * time.Duration(tickRate) / time.Second)
	return &keyHold{
		window: max(window, 1),
		last:   make(map[core.Action]int),
	}
}

// Press records a press event for the current tick.
func (k *keyHold) Press(a core.Action) {
	k.last[a] = k.tick
}

// Release forgets an action immediately.
func (k *keyHold) Release(a core.Action) {
	delete(k.last, a)
}

// Down reports the actions still inside their hold window.
func (k *keyHold) Down() map[core.Action]bool {
	down := make(map[core.Action]bool, len(k.last))
	for a, at := range k.last {
		if k.tick-at < k.window {
			down[a] = true
		}
	}
	return down
}

// Advance moves to the next tick and drops expired actions.
func (k *keyHold) Advance() {
	k.tick++
	for a, at := range k.last {
		if k.tick-at >= k.window {
			delete(k.last, a)
		}
	}
}

// Reset releases every action.
func (k *keyHold) Reset() {
	clear(k.last)
}
