package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadStarfall loads Starfall configuration.
// Search order: customPath -> ~/.arcade/configs/starfall.{yaml,toml} ->
// ./configs/starfall.{yaml,toml} -> embedded default.
// Files are decoded over the defaults, so they may set only some fields.
func LoadStarfall(customPath string) (StarfallConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return StarfallConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data)
		if err != nil {
			return StarfallConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return StarfallConfig{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	var candidates []string
	for _, name := range []string{"starfall.yaml", "starfall.toml"} {
		if p := userConfigPath(name); p != "" {
			candidates = append(candidates, p)
		}
	}
	candidates = append(candidates,
		filepath.Join("configs", "starfall.yaml"),
		filepath.Join("configs", "starfall.toml"),
	)
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if cfg, err := decode(p, data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode("starfall.yaml", defaultStarfallYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultStarfallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode picks the format from the file extension.
func decode(path string, data []byte) (StarfallConfig, error) {
	cfg := DefaultStarfallConfig()
	// Lists replace rather than merge.
	cfg.Platforms = nil

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, err
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	if cfg.Platforms == nil {
		cfg.Platforms = DefaultStarfallConfig().Platforms
	}
	return cfg, nil
}

// Validate reports values the game cannot run with.
func (c StarfallConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, errors.New("world size must be positive"))
	}
	if c.Round.Duration <= 0 {
		errs = append(errs, errors.New("round duration must be positive"))
	}
	if c.Round.Award < 0 {
		errs = append(errs, errors.New("award must not be negative"))
	}
	if c.Collectibles.Count <= 0 {
		errs = append(errs, errors.New("collectible count must be positive"))
	}
	if c.Collectibles.MinBounce > c.Collectibles.MaxBounce {
		errs = append(errs, errors.New("collectible min_bounce exceeds max_bounce"))
	}
	if c.Hazards.MaxVX < 0 {
		errs = append(errs, errors.New("hazard max_vx must not be negative"))
	}
	for i, p := range c.Platforms {
		if p.Scale <= 0 {
			errs = append(errs, fmt.Errorf("platform %d: scale must be positive", i))
		}
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
