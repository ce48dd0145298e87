// Package config handles configuration loading and management.
package config

import (
	"github.com/Faultbox/tilebake/internal/engine/palette"
	"github.com/Faultbox/tilebake/internal/engine/tracer"
)

// Config holds all settings.
type Config struct {
	Palette  PaletteConfig `yaml:"palette"`
	Lighting tracer.Lights `yaml:"lighting"`
	Viewer   ViewerConfig  `yaml:"viewer"`
	Logging  LoggingConfig `yaml:"logging"`
}

// PaletteConfig declares where block surfaces live and which blocks
// exist.
type PaletteConfig struct {
	Dir    string             `yaml:"dir"`
	Blocks []palette.BlockDef `yaml:"blocks"`
}

// ViewerConfig holds display settings for the bakeview tool.
type ViewerConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Level  string `yaml:"level"`
	VSync  bool   `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Palette: PaletteConfig{
			Dir: "assets/textures",
			Blocks: []palette.BlockDef{
				{ID: 0, Name: "empty"},
				{ID: 1, Name: "brick", Surface: "brick"},
				{ID: 2, Name: "wall", Surface: "wall"},
				{ID: 3, Name: "ledge", Surface: "ledge"},
				{ID: 4, Name: "top", Surface: "top"},
				{ID: 5, Name: "grass", Surface: "grass"},
				{ID: 6, Name: "seed", Surface: "seed"},
			},
		},
		Lighting: tracer.DefaultLights(),
		Viewer: ViewerConfig{
			Width:  1280,
			Height: 720,
			Level:  "assets/levels/demo.yaml",
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
