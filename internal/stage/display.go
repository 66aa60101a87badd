package stage

import (
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/starfall/internal/core"
)

// OpKind identifies what a DrawOp draws.
type OpKind int

const (
	OpImage OpKind = iota
	OpSprite
	OpText
)

// DrawOp is one front-end independent drawing instruction in world pixels.
type DrawOp struct {
	Kind  OpKind
	Box   core.Box   // Bounds of images and sprites
	Color core.Color // Texture color, or the tint when one is set
	Glyph rune       // Fill glyph of images
	Art   []string   // Glyph art of the current spritesheet frame
	Frame int

	Text   string
	X, Y   float64
	Origin float64
}

// DisplayList returns the draw operations for the current frame. Disabled
// bodies and hidden overlays are skipped.
func (s *Stage) DisplayList() []DrawOp {
	ops := make([]DrawOp, 0, len(s.backdrops)+len(s.sprites)+len(s.texts))

	for _, bd := range s.backdrops {
		img := s.cat.Images[bd.key]
		ops = append(ops, DrawOp{
			Kind:  OpImage,
			Box:   core.Box{Center: core.V(bd.x, bd.y), Size: core.V(float64(img.Width), float64(img.Height))},
			Color: img.color,
			Glyph: firstRune(img.Glyph),
		})
	}

	for _, sp := range s.sprites {
		b := s.world.Body(sp.entity)
		if b == nil || !b.Enabled {
			continue
		}
		op := DrawOp{Kind: OpSprite, Box: b.Box()}
		if sp.sheet {
			sh := s.cat.Sheets[sp.Texture]
			op.Frame = sp.Frame()
			op.Art = sh.Frames[op.Frame]
			op.Color = sh.color
		} else {
			img := s.cat.Images[sp.Texture]
			op.Kind = OpImage
			op.Glyph = firstRune(img.Glyph)
			op.Color = img.color
		}
		if sp.Tinted {
			op.Color = sp.Tint
		}
		ops = append(ops, op)
	}

	for _, t := range s.texts {
		if !t.Visible {
			continue
		}
		ops = append(ops, DrawOp{Kind: OpText, Text: t.Content, X: t.X, Y: t.Y, Origin: t.Origin, Color: t.Color})
	}
	return ops
}

func firstRune(s string) rune {
	if s == "" {
		return ' '
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// Rasterize draws ops onto a terminal screen, scaling a worldW x worldH
// play-field to the screen size.
func Rasterize(ops []DrawOp, scr *core.Screen, worldW, worldH float64) {
	if scr.Width() == 0 || scr.Height() == 0 || worldW <= 0 || worldH <= 0 {
		return
	}
	sc := scaler{cols: float64(scr.Width()), rows: float64(scr.Height()), w: worldW, h: worldH}

	for _, op := range ops {
		switch op.Kind {
		case OpImage:
			if op.Glyph == ' ' {
				continue
			}
			scr.DrawRect(sc.rect(op.Box), op.Glyph, op.Color)
		case OpSprite:
			drawArt(scr, op, sc)
		case OpText:
			n := utf8.RuneCountInString(op.Text)
			col := int(math.Round(sc.x(op.X) - op.Origin*float64(n)))
			row := int(sc.y(op.Y))
			scr.DrawTextColored(col, row, op.Text, op.Color)
		}
	}
}

// scaler maps world pixels to terminal cells. Multiplying before dividing
// keeps round sizes exact.
type scaler struct {
	cols, rows float64
	w, h       float64
}

func (s scaler) x(px float64) float64 { return px * s.cols / s.w }
func (s scaler) y(px float64) float64 { return px * s.rows / s.h }

func (s scaler) rect(b core.Box) core.Rect {
	x0 := int(math.Floor(s.x(b.Left())))
	y0 := int(math.Floor(s.y(b.Top())))
	x1 := int(math.Ceil(s.x(b.Right())))
	y1 := int(math.Ceil(s.y(b.Bottom())))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// drawArt centers the frame's glyph rows on the sprite's cell center,
// anchored to its bottom row so feet stay on platforms.
func drawArt(scr *core.Screen, op DrawOp, sc scaler) {
	if len(op.Art) == 0 {
		return
	}
	r := sc.rect(op.Box)
	cx := int(sc.x(op.Box.Center.X))
	top := r.Bottom() - len(op.Art)
	for i, line := range op.Art {
		w := utf8.RuneCountInString(line)
		x := cx - w/2
		for _, ch := range line {
			if ch != ' ' {
				scr.SetColored(x, top+i, ch, op.Color)
			}
			x++
		}
	}
}
