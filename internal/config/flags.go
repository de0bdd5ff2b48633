package config

import "flag"

var (
	flagConfig        = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagIndexWidth    = flag.Int("index-width", 0, "Index buffer width in bits (16 or 32)")
	flagMaxPoly       = flag.Int("max-poly", 0, "Max vertex groups per face")
	flagLogFile       = flag.String("log-file", "", "Write logs to this file (rotated)")
	flagNoWarnUnknown = flag.Bool("no-warn-unknown", false, "Do not log skipped keywords")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagIndexWidth != 0 {
		cfg.Loader.IndexWidth = *flagIndexWidth
	}
	if *flagMaxPoly > 0 {
		cfg.Loader.MaxPolygon = *flagMaxPoly
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagNoWarnUnknown {
		cfg.Loader.WarnUnknown = false
	}
}
