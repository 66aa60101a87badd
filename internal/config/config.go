// Package config provides YAML and TOML game configuration loading and
// difficulty presets for the arcade platform.
package config

// StarfallConfig contains all configuration for the Starfall platformer.
type StarfallConfig struct {
	World        WorldConfig       `yaml:"world" toml:"world"`
	Round        RoundConfig       `yaml:"round" toml:"round"`
	Player       PlayerConfig      `yaml:"player" toml:"player"`
	Collectibles CollectibleConfig `yaml:"collectibles" toml:"collectibles"`
	Hazards      HazardConfig      `yaml:"hazards" toml:"hazards"`
	Platforms    []PlatformConfig  `yaml:"platforms" toml:"platforms"`
}

// WorldConfig defines the play-field in pixels.
type WorldConfig struct {
	Width   float64 `yaml:"width" toml:"width"`
	Height  float64 `yaml:"height" toml:"height"`
	Gravity float64 `yaml:"gravity" toml:"gravity"` // Pixels per second squared
}

// RoundConfig defines round length and scoring.
type RoundConfig struct {
	Duration int `yaml:"duration" toml:"duration"` // Seconds on the countdown
	Award    int `yaml:"award" toml:"award"`       // Points per collectible
}

// PlayerConfig defines the player's spawn point and movement.
type PlayerConfig struct {
	X         float64 `yaml:"x" toml:"x"`
	Y         float64 `yaml:"y" toml:"y"`
	Bounce    float64 `yaml:"bounce" toml:"bounce"`
	RunSpeed  float64 `yaml:"run_speed" toml:"run_speed"`
	JumpSpeed float64 `yaml:"jump_speed" toml:"jump_speed"` // Upward speed on jump (positive)
}

// CollectibleConfig defines the star row.
type CollectibleConfig struct {
	Count     int     `yaml:"count" toml:"count"`
	StartX    float64 `yaml:"start_x" toml:"start_x"`
	StepX     float64 `yaml:"step_x" toml:"step_x"`
	MinBounce float64 `yaml:"min_bounce" toml:"min_bounce"`
	MaxBounce float64 `yaml:"max_bounce" toml:"max_bounce"`
}

// HazardConfig defines how bombs are spawned.
type HazardConfig struct {
	SpawnY float64 `yaml:"spawn_y" toml:"spawn_y"`
	MaxVX  float64 `yaml:"max_vx" toml:"max_vx"` // Horizontal speed drawn from [-max_vx, max_vx]
	VY     float64 `yaml:"vy" toml:"vy"`
	Bounce float64 `yaml:"bounce" toml:"bounce"`
}

// PlatformConfig places one static platform, centered at (x, y).
type PlatformConfig struct {
	X     float64 `yaml:"x" toml:"x"`
	Y     float64 `yaml:"y" toml:"y"`
	Scale float64 `yaml:"scale" toml:"scale"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyStarfallPreset modifies the config based on a difficulty preset.
// Normal and fixed leave the loaded values untouched.
func ApplyStarfallPreset(cfg *StarfallConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Round.Duration = 20
		cfg.Hazards.MaxVX *= 0.6
		cfg.Hazards.VY *= 0.6
	case DifficultyHard:
		cfg.Round.Duration = 7
		cfg.Hazards.MaxVX *= 1.5
		cfg.Hazards.VY *= 1.5
	}
}
