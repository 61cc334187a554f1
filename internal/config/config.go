// Package config handles cullview configuration loading and management.
package config

import "github.com/Faultbox/midgard-cull/pkg/math"

// Config holds all cullview settings.
type Config struct {
	Culling CullingConfig `yaml:"culling"`
	Debug   DebugConfig   `yaml:"debug"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// CullingConfig selects the culling strategy and its parallelism.
type CullingConfig struct {
	Strategy  string `yaml:"strategy"`   // world, local or view
	Workers   int    `yaml:"workers"`    // 0 = one per CPU
	BatchSize int    `yaml:"batch_size"` // Placements per worker task
}

// DebugConfig holds wireframe generation settings.
type DebugConfig struct {
	SphereSlices int        `yaml:"sphere_slices"`
	BoxPadding   float32    `yaml:"box_padding"`
	BoxColor     math.Color `yaml:"box_color"`
	SphereColor  math.Color `yaml:"sphere_color"`
	FrustumColor math.Color `yaml:"frustum_color"`
}

// SceneConfig holds the scene file used when none is given on the command line.
type SceneConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Culling: CullingConfig{
			Strategy:  "view",
			Workers:   0,
			BatchSize: 256,
		},
		Debug: DebugConfig{
			SphereSlices: 32,
			BoxPadding:   1.0,
			BoxColor:     math.ColorGreen,
			SphereColor:  math.ColorYellow,
			FrustumColor: math.ColorWhite,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
