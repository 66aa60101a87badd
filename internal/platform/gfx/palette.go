package gfx

import (
	"image/color"

	"github.com/vovakirdan/starfall/internal/core"
)

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {R: 220, G: 220, B: 220, A: 255},
	core.ColorRed:           {R: 205, G: 49, B: 49, A: 255},
	core.ColorGreen:         {R: 13, G: 160, B: 80, A: 255},
	core.ColorYellow:        {R: 229, G: 192, B: 16, A: 255},
	core.ColorBlue:          {R: 76, G: 140, B: 220, A: 255},
	core.ColorMagenta:       {R: 188, G: 63, B: 188, A: 255},
	core.ColorCyan:          {R: 17, G: 168, B: 205, A: 255},
	core.ColorWhite:         {R: 229, G: 229, B: 229, A: 255},
	core.ColorBrightRed:     {R: 255, G: 85, B: 85, A: 255},
	core.ColorBrightGreen:   {R: 35, G: 209, B: 139, A: 255},
	core.ColorBrightYellow:  {R: 255, G: 230, B: 80, A: 255},
	core.ColorBrightBlue:    {R: 59, G: 142, B: 234, A: 255},
	core.ColorBrightMagenta: {R: 214, G: 112, B: 214, A: 255},
	core.ColorBrightCyan:    {R: 41, G: 184, B: 219, A: 255},
	core.ColorBrightWhite:   {R: 255, G: 255, B: 255, A: 255},
	core.ColorOrange:        {R: 255, G: 135, B: 0, A: 255},
	core.ColorGray:          {R: 138, G: 138, B: 138, A: 255},
}

// RGBA converts a terminal color to the window palette.
func RGBA(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[core.ColorDefault]
}
