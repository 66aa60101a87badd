package gfx

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/starfall/internal/core"
)

// bindings lists the keys that hold each action.
var bindings = map[core.Action][]ebiten.Key{
	core.ActionLeft:    {ebiten.KeyArrowLeft, ebiten.KeyA},
	core.ActionRight:   {ebiten.KeyArrowRight, ebiten.KeyD},
	core.ActionUp:      {ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace},
	core.ActionDown:    {ebiten.KeyArrowDown, ebiten.KeyS},
	core.ActionRestart: {ebiten.KeyR},
	core.ActionPause:   {ebiten.KeyP},
	core.ActionQuit:    {ebiten.KeyEscape, ebiten.KeyQ},
}

// keyState reads the true key state; windows report releases, unlike terminals.
func keyState(pressed func(ebiten.Key) bool) map[core.Action]bool {
	down := make(map[core.Action]bool, len(bindings))
	for action, keys := range bindings {
		for _, k := range keys {
			if pressed(k) {
				down[action] = true
				break
			}
		}
	}
	return down
}
