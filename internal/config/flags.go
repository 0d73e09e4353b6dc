package config

import "flag"

// Command-line overrides. Zero values mean "not given".
var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagMute       = flag.Bool("mute", false, "Disable sound cues")
	flagWalkSpeed  = flag.Float64("walk-speed", 0, "Fighter walk speed in units per second")
	flagLogFile    = flag.String("log-file", "", "Write logs to this file as well as stdout")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config to the config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags layers CLI overrides on top of file and default values.
// --windowed wins over --fullscreen when both are given.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	switch {
	case *flagWindowed:
		cfg.Graphics.Fullscreen = false
	case *flagFullscreen:
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
	if *flagWalkSpeed != 0 {
		cfg.Game.WalkSpeed = float32(*flagWalkSpeed)
	}
}
