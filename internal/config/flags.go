package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagStrategy = flag.String("strategy", "", "Culling strategy: world, local or view")
	flagWorkers  = flag.Int("workers", -1, "Culling workers (0 = one per CPU)")
	flagSlices   = flag.Int("slices", 0, "Sphere wireframe slices")
	flagScene    = flag.String("scene", "", "Default scene file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
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
	if *flagStrategy != "" {
		cfg.Culling.Strategy = *flagStrategy
	}
	if *flagWorkers >= 0 {
		cfg.Culling.Workers = *flagWorkers
	}
	if *flagSlices != 0 {
		cfg.Debug.SphereSlices = *flagSlices
	}
	if *flagScene != "" {
		cfg.Scene.Path = *flagScene
	}
}
