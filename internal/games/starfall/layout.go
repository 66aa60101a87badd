package starfall

import (
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/physics"
	"github.com/vovakirdan/starfall/internal/stage"
)

// Texture keys in the asset catalog.
const (
	keySky    = "sky"
	keyGround = "ground"
	keyStar   = "star"
	keyBomb   = "bomb"
	keyDude   = "dude"
)

// Player animations.
const (
	animLeft  = "left"
	animTurn  = "turn"
	animRight = "right"
)

// Collision layers.
const (
	layerPlatform physics.Layer = iota
	layerPlayer
	layerStar
	layerHazard
)

// Overlay placement in world pixels.
const (
	hudMargin  = 16
	timeInset  = 100 // Distance of the time overlay's center from the right edge
	centerText = 0.5
)

var playerAnims = []stage.Anim{
	{Key: animLeft, Sheet: keyDude, Start: 0, End: 3, FrameRate: 10, Repeat: stage.RepeatForever},
	{Key: animTurn, Sheet: keyDude, Start: 4, End: 4, FrameRate: 20},
	{Key: animRight, Sheet: keyDude, Start: 5, End: 8, FrameRate: 10, Repeat: stage.RepeatForever},
}

// Create builds the scene for the current round state: backdrop, platforms,
// player, stars, overlays, the countdown and the collision rules.
func (r *Round) Create() error {
	cat := r.stage.Catalog()
	w := r.cfg.World

	if err := r.stage.AddImage(keySky, w.Width/2, w.Height/2); err != nil {
		return err
	}

	groundSize, err := cat.Size(keyGround)
	if err != nil {
		return err
	}
	for _, p := range r.cfg.Platforms {
		e := r.phys.NewBody(physics.Body{
			Pos:    core.V(p.X, p.Y),
			Size:   groundSize.Scale(p.Scale),
			Static: true,
			Layer:  layerPlatform,
		})
		if _, err := r.stage.AddSprite(e, keyGround); err != nil {
			return err
		}
	}

	dudeSize, err := cat.Size(keyDude)
	if err != nil {
		return err
	}
	pc := r.cfg.Player
	r.player = r.phys.NewBody(physics.Body{
		Pos:                core.V(pc.X, pc.Y),
		Size:               dudeSize,
		Bounce:             core.V(pc.Bounce, pc.Bounce),
		Layer:              layerPlayer,
		AllowGravity:       true,
		CollideWorldBounds: true,
	})
	if _, err := r.stage.AddSprite(r.player, keyDude); err != nil {
		return err
	}
	for _, a := range playerAnims {
		if err := r.stage.CreateAnim(a); err != nil {
			return err
		}
	}

	starSize, err := cat.Size(keyStar)
	if err != nil {
		return err
	}
	for i := 0; i < r.cfg.Collectibles.Count; i++ {
		e := r.phys.NewBody(physics.Body{
			Pos:          core.V(r.starX(i), 0),
			Size:         starSize,
			Bounce:       core.V(0, r.starBounce()),
			Layer:        layerStar,
			AllowGravity: true,
		})
		if _, err := r.stage.AddSprite(e, keyStar); err != nil {
			return err
		}
		r.stars = append(r.stars, e)
	}

	r.scoreText = r.stage.AddText(hudMargin, hudMargin, scoreLabel(0), 0, core.ColorBrightWhite)
	r.timeText = r.stage.AddText(w.Width-timeInset, hudMargin, timeLabel(r.state.TimeLeft), centerText, core.ColorBrightWhite)
	r.overText = r.stage.AddText(w.Width/2, w.Height/2, "GAME OVER", centerText, core.ColorBrightRed)
	r.overText.SetVisible(false)

	r.countdown = r.timer.AddEvent(countdownStep, true, r.tick)

	r.phys.Collide(layerPlayer, layerPlatform, nil)
	r.phys.Collide(layerStar, layerPlatform, nil)
	r.phys.Overlap(layerPlayer, layerStar, r.collect)
	r.phys.Collide(layerPlayer, layerHazard, r.hitHazard)
	return nil
}
