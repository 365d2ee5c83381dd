// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/statsview/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Chart  ChartConfig  `toml:"chart"`
	Render RenderConfig `toml:"render"`
}

// ChartConfig maps chart appearance and animation settings.
type ChartConfig struct {
	TextSize       *float64    `toml:"text-size"`
	LineWidth      *float64    `toml:"line-width"`
	Density        *float64    `toml:"density"`
	Colors         []string    `toml:"colors"`
	TextColor      *string     `toml:"text-color"`
	AnimationStyle *StyleValue `toml:"animation-style"`
	LoadRotation   *bool       `toml:"load-rotation"`
	Seed           *int64      `toml:"seed"`
}

// RenderConfig maps offline rendering settings.
type RenderConfig struct {
	Width      *int    `toml:"width"`
	Height     *int    `toml:"height"`
	Format     *string `toml:"format"`
	Background *string `toml:"background"`
}

// StyleValue decodes an animation style given either as a name or a number.
type StyleValue struct {
	Style model.Style
}

// UnmarshalTOML implements toml.Unmarshaler.
func (v *StyleValue) UnmarshalTOML(data any) error {
	var raw string
	switch value := data.(type) {
	case string:
		raw = value
	case int64:
		raw = strconv.FormatInt(value, 10)
	default:
		return fmt.Errorf("animation-style must be a string or integer, got %T", data)
	}
	style, err := model.ParseStyle(raw)
	if err != nil {
		return err
	}
	v.Style = style
	return nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
