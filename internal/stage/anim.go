package stage

import "fmt"

// RepeatForever makes an animation loop until another one replaces it.
const RepeatForever = -1

// Anim is a named frame range of a spritesheet.
type Anim struct {
	Key       string
	Sheet     string
	Start     int     // First frame index, inclusive
	End       int     // Last frame index, inclusive
	FrameRate float64 // Frames per second
	Repeat    int     // Extra loops after the first pass; RepeatForever loops
}

func (a Anim) frames() int {
	return a.End - a.Start + 1
}

func (a Anim) validate(sh SheetAsset) error {
	if a.Key == "" {
		return fmt.Errorf("stage: animation with empty key")
	}
	if a.Start < 0 || a.End < a.Start || a.End >= len(sh.Frames) {
		return fmt.Errorf("stage: animation %q: frames %d-%d outside sheet %q (%d frames)",
			a.Key, a.Start, a.End, a.Sheet, len(sh.Frames))
	}
	if a.FrameRate <= 0 {
		return fmt.Errorf("stage: animation %q: frame rate must be positive", a.Key)
	}
	return nil
}

// player tracks the animation currently running on one sprite.
type player struct {
	anim    Anim
	elapsed float64
	loops   int
	frame   int
	done    bool
}

func newPlayer(a Anim) *player {
	return &player{anim: a, frame: a.Start}
}

func (p *player) advance(dt float64) {
	if p.done {
		return
	}
	step := 1 / p.anim.FrameRate
	p.elapsed += dt
	for p.elapsed >= step {
		p.elapsed -= step
		if p.frame < p.anim.End {
			p.frame++
			continue
		}
		if p.anim.Repeat != RepeatForever && p.loops >= p.anim.Repeat {
			p.done = true
			return
		}
		p.loops++
		p.frame = p.anim.Start
	}
}
