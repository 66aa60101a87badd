package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := decode("starfall.yaml", defaultStarfallYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultStarfallConfig()) {
		t.Errorf("embedded defaults drifted from DefaultStarfallConfig:\n%+v\n%+v", cfg, DefaultStarfallConfig())
	}
}

func TestLoadCustomYAMLOverridesSomeFields(t *testing.T) {
	path := writeFile(t, "custom.yaml", "round:\n  duration: 30\n")

	cfg, err := LoadStarfall(path)
	if err != nil {
		t.Fatalf("LoadStarfall: %v", err)
	}
	if cfg.Round.Duration != 30 {
		t.Errorf("duration = %d, expected 30", cfg.Round.Duration)
	}
	if cfg.Round.Award != 10 || cfg.Collectibles.Count != 12 {
		t.Error("fields missing from the file should keep their defaults")
	}
	if len(cfg.Platforms) != 4 {
		t.Errorf("platforms = %d, expected the 4 defaults", len(cfg.Platforms))
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := writeFile(t, "custom.toml", `
[player]
run_speed = 200

[[platforms]]
x = 400
y = 568
scale = 2
`)

	cfg, err := LoadStarfall(path)
	if err != nil {
		t.Fatalf("LoadStarfall: %v", err)
	}
	if cfg.Player.RunSpeed != 200 {
		t.Errorf("run_speed = %v, expected 200", cfg.Player.RunSpeed)
	}
	if cfg.Player.JumpSpeed != 330 {
		t.Errorf("jump_speed = %v, expected default 330", cfg.Player.JumpSpeed)
	}
	if len(cfg.Platforms) != 1 {
		t.Errorf("platforms = %d, a platform list replaces the defaults", len(cfg.Platforms))
	}
}

func TestLoadCustomErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad yaml", "bad.yaml", "round: [1,"},
		{"bad toml", "bad.toml", "round = ["},
		{"unknown format", "cfg.json", "{}"},
		{"invalid values", "zero.yaml", "round:\n  duration: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadStarfall(writeFile(t, tt.file, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadStarfall(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}
}

func TestApplyStarfallPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		duration int
		maxVX    float64
	}{
		{DifficultyEasy, 20, 120},
		{DifficultyNormal, 10, 200},
		{DifficultyHard, 7, 300},
		{DifficultyFixed, 10, 200},
		{"", 10, 200},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultStarfallConfig()
			ApplyStarfallPreset(&cfg, tt.preset)
			if cfg.Round.Duration != tt.duration {
				t.Errorf("duration = %d, expected %d", cfg.Round.Duration, tt.duration)
			}
			if cfg.Hazards.MaxVX != tt.maxVX {
				t.Errorf("max_vx = %v, expected %v", cfg.Hazards.MaxVX, tt.maxVX)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown presets should map to empty")
	}
}
