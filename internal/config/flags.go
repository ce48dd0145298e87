package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "path to config file")
	flagDebug    = flag.Bool("debug", false, "enable debug logging")
	flagLogFile  = flag.String("log-file", "", "write logs to this file")
	flagPalette  = flag.String("palette", "", "directory with block surface textures")
	flagLevel    = flag.String("level", "", "level file to open")
	flagInvertDM = flag.Bool("invert-dm", false, "invert diffuse map colors")
)

// ParseFlags parses command line flags. Call before Load.
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the config file path given on the command line,
// or "" if none was.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags overrides config values with command line flags.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagPalette != "" {
		cfg.Palette.Dir = *flagPalette
	}
	if *flagLevel != "" {
		cfg.Viewer.Level = *flagLevel
	}
	if *flagInvertDM {
		cfg.Lighting.InvertDM = true
	}
}
