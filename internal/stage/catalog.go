// Package stage holds everything the player sees: the asset catalog,
// sprites bound to physics bodies, frame animations, tints and text
// overlays. A front end draws a stage from its DisplayList.
package stage

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/starfall/internal/core"
)

// ErrAssetNotFound is returned when a key is missing from the catalog.
var ErrAssetNotFound = errors.New("asset not found")

// ImageAsset is a single-frame texture. Terminal front ends fill its bounds
// with Glyph; pixel front ends fill them with Color.
type ImageAsset struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Color  string `yaml:"color"`
	Glyph  string `yaml:"glyph"`

	color core.Color
}

// SheetAsset is a spritesheet of equally sized frames. Each frame carries
// glyph art (one string per terminal row) for terminal front ends.
type SheetAsset struct {
	FrameWidth  int        `yaml:"frame_width"`
	FrameHeight int        `yaml:"frame_height"`
	Color       string     `yaml:"color"`
	Frames      [][]string `yaml:"frames"`

	color core.Color
}

// Catalog is the set of textures a game can reference by key.
type Catalog struct {
	Images map[string]ImageAsset `yaml:"images"`
	Sheets map[string]SheetAsset `yaml:"spritesheets"`
}

// LoadCatalog parses a YAML asset catalog and validates every entry.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("stage: cannot parse catalog: %w", err)
	}
	for key, img := range c.Images {
		if img.Width <= 0 || img.Height <= 0 {
			return nil, fmt.Errorf("stage: image %q: size must be positive", key)
		}
		col, ok := core.ParseColor(img.Color)
		if !ok {
			return nil, fmt.Errorf("stage: image %q: unknown color %q", key, img.Color)
		}
		img.color = col
		c.Images[key] = img
	}
	for key, sh := range c.Sheets {
		if sh.FrameWidth <= 0 || sh.FrameHeight <= 0 {
			return nil, fmt.Errorf("stage: spritesheet %q: frame size must be positive", key)
		}
		if len(sh.Frames) == 0 {
			return nil, fmt.Errorf("stage: spritesheet %q: no frames", key)
		}
		col, ok := core.ParseColor(sh.Color)
		if !ok {
			return nil, fmt.Errorf("stage: spritesheet %q: unknown color %q", key, sh.Color)
		}
		sh.color = col
		c.Sheets[key] = sh
	}
	return &c, nil
}

// Image returns the image registered under key.
func (c *Catalog) Image(key string) (ImageAsset, error) {
	img, ok := c.Images[key]
	if !ok {
		return ImageAsset{}, fmt.Errorf("stage: image %q: %w", key, ErrAssetNotFound)
	}
	return img, nil
}

// Sheet returns the spritesheet registered under key.
func (c *Catalog) Sheet(key string) (SheetAsset, error) {
	sh, ok := c.Sheets[key]
	if !ok {
		return SheetAsset{}, fmt.Errorf("stage: spritesheet %q: %w", key, ErrAssetNotFound)
	}
	return sh, nil
}

// Size returns the pixel size of an image, or of one frame of a spritesheet.
func (c *Catalog) Size(key string) (core.Vec, error) {
	if img, ok := c.Images[key]; ok {
		return core.V(float64(img.Width), float64(img.Height)), nil
	}
	if sh, ok := c.Sheets[key]; ok {
		return core.V(float64(sh.FrameWidth), float64(sh.FrameHeight)), nil
	}
	return core.Vec{}, fmt.Errorf("stage: texture %q: %w", key, ErrAssetNotFound)
}

// Require checks that every listed image and spritesheet is present.
func (c *Catalog) Require(images []string, sheets []string) error {
	var errs []error
	for _, key := range images {
		if _, err := c.Image(key); err != nil {
			errs = append(errs, err)
		}
	}
	for _, key := range sheets {
		if _, err := c.Sheet(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
