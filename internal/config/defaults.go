package config

import (
	_ "embed"
)

//go:embed defaults/starfall.yaml
var defaultStarfallYAML []byte

// DefaultStarfallConfig returns the default Starfall configuration.
func DefaultStarfallConfig() StarfallConfig {
	return StarfallConfig{
		World: WorldConfig{
			Width:   800,
			Height:  600,
			Gravity: 300,
		},
		Round: RoundConfig{
			Duration: 10,
			Award:    10,
		},
		Player: PlayerConfig{
			X:         100,
			Y:         450,
			Bounce:    0.2,
			RunSpeed:  160,
			JumpSpeed: 330,
		},
		Collectibles: CollectibleConfig{
			Count:     12,
			StartX:    12,
			StepX:     70,
			MinBounce: 0.4,
			MaxBounce: 0.8,
		},
		Hazards: HazardConfig{
			SpawnY: 16,
			MaxVX:  200,
			VY:     20,
			Bounce: 1,
		},
		Platforms: []PlatformConfig{
			{X: 400, Y: 568, Scale: 2},
			{X: 600, Y: 400, Scale: 1},
			{X: 50, Y: 250, Scale: 1},
			{X: 750, Y: 220, Scale: 1},
		},
	}
}
