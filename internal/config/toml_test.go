package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/statsview/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Chart.TextSize != nil || cfg.Render.Width != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesChartAndRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[chart]
text-size = 24.5
line-width = 8
colors = ["#FF0000", "#00FF00"]
animation-style = "split"
load-rotation = true
seed = 42

[render]
width = 640
format = "svg"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Chart.TextSize == nil || *cfg.Chart.TextSize != 24.5 {
		t.Fatalf("unexpected text size: %v", cfg.Chart.TextSize)
	}
	if cfg.Chart.LineWidth == nil || *cfg.Chart.LineWidth != 8 {
		t.Fatalf("unexpected line width: %v", cfg.Chart.LineWidth)
	}
	if len(cfg.Chart.Colors) != 2 || cfg.Chart.Colors[1] != "#00FF00" {
		t.Fatalf("unexpected colors: %v", cfg.Chart.Colors)
	}
	if cfg.Chart.AnimationStyle == nil || cfg.Chart.AnimationStyle.Style != model.StyleSplit {
		t.Fatalf("unexpected style: %v", cfg.Chart.AnimationStyle)
	}
	if cfg.Chart.LoadRotation == nil || !*cfg.Chart.LoadRotation {
		t.Fatalf("expected load-rotation true")
	}
	if cfg.Chart.Seed == nil || *cfg.Chart.Seed != 42 {
		t.Fatalf("unexpected seed: %v", cfg.Chart.Seed)
	}
	if cfg.Render.Width == nil || *cfg.Render.Width != 640 {
		t.Fatalf("unexpected width: %v", cfg.Render.Width)
	}
	if cfg.Render.Format == nil || *cfg.Render.Format != "svg" {
		t.Fatalf("unexpected format: %v", cfg.Render.Format)
	}
}

func TestLoadConfigNumericStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[chart]\nanimation-style = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Chart.AnimationStyle == nil || cfg.Chart.AnimationStyle.Style != model.StyleSimultaneous {
		t.Fatalf("unexpected style: %v", cfg.Chart.AnimationStyle)
	}
}

func TestLoadConfigRejectsUnknownStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[chart]\nanimation-style = 7\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown style")
	}
}
