// Package config handles game configuration loading and management.
package config

import (
	"github.com/Faultbox/ironvale/internal/engine/camera"
	"github.com/Faultbox/ironvale/internal/engine/shadow"
	"github.com/Faultbox/ironvale/internal/engine/terrain"
	"github.com/Faultbox/ironvale/internal/game/world"
)

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig   `yaml:"graphics"`
	Terrain  terrain.Config   `yaml:"terrain"`
	Trees    TreesConfig      `yaml:"trees"`
	Camera   CameraConfig     `yaml:"camera"`
	Nav      world.GridConfig `yaml:"nav"`
	Game     GameConfig       `yaml:"game"`
	Logging  LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Fullscreen       bool    `yaml:"fullscreen"`
	VSync            bool    `yaml:"vsync"`
	FPSLimit         int     `yaml:"fps_limit"`
	PixelRatio       float32 `yaml:"pixel_ratio"` // 0 follows the display
	Antialias        bool    `yaml:"antialias"`
	Samples          int     `yaml:"samples"`
	Shadows          bool    `yaml:"shadows"`
	ShadowResolution int32   `yaml:"shadow_resolution"`
}

// TreesConfig holds the tree model and how many trees to aim for.
type TreesConfig struct {
	Count int                `yaml:"count"` // 0 uses the default density
	Model terrain.TreeConfig `yaml:"model"`
}

// CameraConfig holds camera rig speeds and limits.
type CameraConfig struct {
	Speeds camera.Speeds      `yaml:"speeds"`
	Limits camera.Constraints `yaml:"limits"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	ShowFPS       bool `yaml:"show_fps"`
	ShowPath      bool `yaml:"show_path"`
	StartInMenu   bool `yaml:"start_in_menu"`
	SquadSize     int  `yaml:"squad_size"`     // units spawned for the player
	HarvestAmount int  `yaml:"harvest_amount"` // taken from a deposit per harvest
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			FPSLimit:         0,
			Antialias:        true,
			Samples:          4,
			Shadows:          true,
			ShadowResolution: shadow.DefaultResolution,
		},
		Terrain: terrain.DefaultConfig(),
		Trees: TreesConfig{
			Model: terrain.DefaultTreeConfig(),
		},
		Camera: CameraConfig{
			Speeds: camera.DefaultSpeeds(),
			Limits: camera.DefaultConstraints(),
		},
		Nav: world.DefaultGridConfig(),
		Game: GameConfig{
			ShowFPS:       false,
			ShowPath:      true,
			StartInMenu:   true,
			SquadSize:     4,
			HarvestAmount: 5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
