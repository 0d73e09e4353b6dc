// Package config handles game configuration loading and management.
package config

import "time"

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Game     GameConfig     `yaml:"game"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	ViewWidth  float32 `yaml:"view_width"` // World units visible across the screen
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	WalkSpeed     float32         `yaml:"walk_speed"` // Units per second
	MaxFrameDelta time.Duration   `yaml:"max_frame_delta"`
	Players       [2]PlayerConfig `yaml:"players"`
}

// PlayerConfig selects the character model and start spot for one side.
type PlayerConfig struct {
	Character int        `yaml:"character"`
	Start     [3]float32 `yaml:"start"`
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
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			ViewWidth:  8,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Game: GameConfig{
			WalkSpeed:     2.0,
			MaxFrameDelta: 100 * time.Millisecond,
			Players: [2]PlayerConfig{
				{Character: 1, Start: [3]float32{-1, 8, -0.5}},
				{Character: 2, Start: [3]float32{1, 8, -0.5}},
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
