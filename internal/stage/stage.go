package stage

import (
	"fmt"

	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/physics"
)

// Sprite is the visual side of a physics body.
type Sprite struct {
	Texture string
	Tint    core.Color
	Tinted  bool

	entity physics.Entity
	sheet  bool
	anim   *player
}

// Animation returns the key of the animation playing on the sprite, or ""
// if none was started.
func (s *Sprite) Animation() string {
	if s.anim == nil {
		return ""
	}
	return s.anim.anim.Key
}

// Frame returns the spritesheet frame currently shown.
func (s *Sprite) Frame() int {
	if s.anim == nil {
		return 0
	}
	return s.anim.frame
}

// Text is a screen-space overlay. Origin is the horizontal anchor: 0 puts
// X at the left edge of the text, 0.5 at its center.
type Text struct {
	X, Y    float64
	Content string
	Origin  float64
	Color   core.Color
	Visible bool
}

// SetText replaces the overlay content.
func (t *Text) SetText(s string) {
	t.Content = s
}

// SetVisible shows or hides the overlay.
func (t *Text) SetVisible(v bool) {
	t.Visible = v
}

type backdrop struct {
	key  string
	x, y float64
}

// Stage binds catalog textures to physics bodies and keeps overlays.
// Draw order is backdrops, then sprites in creation order, then texts.
type Stage struct {
	cat       *Catalog
	world     *physics.World
	backdrops []backdrop
	sprites   []*Sprite
	byEntity  map[physics.Entity]*Sprite
	anims     map[string]Anim
	texts     []*Text
}

// New creates an empty stage drawing bodies from world.
func New(cat *Catalog, world *physics.World) *Stage {
	return &Stage{
		cat:      cat,
		world:    world,
		byEntity: make(map[physics.Entity]*Sprite),
		anims:    make(map[string]Anim),
	}
}

// Catalog returns the catalog textures are resolved against.
func (s *Stage) Catalog() *Catalog {
	return s.cat
}

// AddImage places a static image centered at (x, y). It has no body.
func (s *Stage) AddImage(key string, x, y float64) error {
	if _, err := s.cat.Image(key); err != nil {
		return err
	}
	s.backdrops = append(s.backdrops, backdrop{key: key, x: x, y: y})
	return nil
}

// AddSprite attaches a texture to a body.
func (s *Stage) AddSprite(e physics.Entity, key string) (*Sprite, error) {
	_, isImage := s.cat.Images[key]
	_, isSheet := s.cat.Sheets[key]
	if !isImage && !isSheet {
		return nil, fmt.Errorf("stage: texture %q: %w", key, ErrAssetNotFound)
	}
	sp := &Sprite{Texture: key, entity: e, sheet: isSheet}
	s.sprites = append(s.sprites, sp)
	s.byEntity[e] = sp
	return sp, nil
}

// Sprite returns the sprite bound to a body, or nil.
func (s *Stage) Sprite(e physics.Entity) *Sprite {
	return s.byEntity[e]
}

// CreateAnim registers an animation. Keys are global to the stage.
func (s *Stage) CreateAnim(a Anim) error {
	sh, err := s.cat.Sheet(a.Sheet)
	if err != nil {
		return err
	}
	if err := a.validate(sh); err != nil {
		return err
	}
	s.anims[a.Key] = a
	return nil
}

// Play starts an animation on the sprite of e. Playing the animation that
// is already running does nothing, so it can be requested every frame.
func (s *Stage) Play(e physics.Entity, key string) error {
	sp := s.byEntity[e]
	if sp == nil {
		return fmt.Errorf("stage: no sprite for entity %v", e)
	}
	a, ok := s.anims[key]
	if !ok {
		return fmt.Errorf("stage: animation %q: %w", key, ErrAssetNotFound)
	}
	if sp.anim != nil && sp.anim.anim.Key == key {
		return nil
	}
	sp.anim = newPlayer(a)
	return nil
}

// SetTint colors the sprite of e.
func (s *Stage) SetTint(e physics.Entity, c core.Color) {
	if sp := s.byEntity[e]; sp != nil {
		sp.Tint = c
		sp.Tinted = true
	}
}

// ClearTint restores the texture's own color.
func (s *Stage) ClearTint(e physics.Entity) {
	if sp := s.byEntity[e]; sp != nil {
		sp.Tinted = false
	}
}

// AddText creates a visible overlay.
func (s *Stage) AddText(x, y float64, content string, origin float64, c core.Color) *Text {
	t := &Text{X: x, Y: y, Content: content, Origin: origin, Color: c, Visible: true}
	s.texts = append(s.texts, t)
	return t
}

// Texts returns the overlays in creation order.
func (s *Stage) Texts() []*Text {
	return s.texts
}

// Update advances every running animation by dt seconds.
func (s *Stage) Update(dt float64) {
	for _, sp := range s.sprites {
		if sp.anim != nil {
			sp.anim.advance(dt)
		}
	}
}

// Reset drops all sprites, overlays and animations. The catalog is kept.
func (s *Stage) Reset() {
	s.backdrops = nil
	s.sprites = nil
	s.byEntity = make(map[physics.Entity]*Sprite)
	s.anims = make(map[string]Anim)
	s.texts = nil
}
