package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-cull/internal/engine/culling"
	"github.com/Faultbox/midgard-cull/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test culling defaults
	if cfg.Culling.Strategy != "view" {
		t.Errorf("expected strategy 'view', got %s", cfg.Culling.Strategy)
	}
	if cfg.Culling.Workers != 0 {
		t.Errorf("expected workers 0, got %d", cfg.Culling.Workers)
	}
	if cfg.Culling.BatchSize != culling.DefaultBatchSize {
		t.Errorf("expected batch size %d, got %d", culling.DefaultBatchSize, cfg.Culling.BatchSize)
	}

	// Test debug defaults
	if cfg.Debug.SphereSlices != 32 {
		t.Errorf("expected 32 sphere slices, got %d", cfg.Debug.SphereSlices)
	}
	if cfg.Debug.BoxColor != math.ColorGreen {
		t.Errorf("expected green boxes, got %v", cfg.Debug.BoxColor)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
culling:
  strategy: local
  workers: 8
  batch_size: 64

debug:
  sphere_slices: 12
  box_padding: 0.5
  box_color: [1, 0, 1, 1]

scene:
  path: "scenes/town.yaml"

logging:
  level: "debug"
  log_file: "cull.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Culling.Strategy != "local" {
		t.Errorf("expected strategy 'local', got %s", cfg.Culling.Strategy)
	}
	if cfg.Culling.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Culling.Workers)
	}
	if cfg.Culling.BatchSize != 64 {
		t.Errorf("expected batch size 64, got %d", cfg.Culling.BatchSize)
	}

	if cfg.Debug.SphereSlices != 12 {
		t.Errorf("expected 12 slices, got %d", cfg.Debug.SphereSlices)
	}
	if cfg.Debug.BoxColor != (math.Color{1, 0, 1, 1}) {
		t.Errorf("expected magenta boxes, got %v", cfg.Debug.BoxColor)
	}
	// Not in the file, default kept
	if cfg.Debug.SphereColor != math.ColorYellow {
		t.Errorf("expected default sphere color, got %v", cfg.Debug.SphereColor)
	}

	if cfg.Scene.Path != "scenes/town.yaml" {
		t.Errorf("expected scene path, got %s", cfg.Scene.Path)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "cull.log" {
		t.Errorf("expected log file 'cull.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
culling:
  workers: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero slices", func(c *Config) { c.Debug.SphereSlices = 0 }, ErrInvalidSlices},
		{"two slices", func(c *Config) { c.Debug.SphereSlices = 2 }, ErrInvalidSlices},
		{"unknown strategy", func(c *Config) { c.Culling.Strategy = "bvh" }, culling.ErrUnknownStrategy},
		{"negative workers", func(c *Config) { c.Culling.Workers = -1 }, ErrInvalidConfig},
		{"zero batch", func(c *Config) { c.Culling.BatchSize = 0 }, ErrInvalidConfig},
		{"negative padding", func(c *Config) { c.Debug.BoxPadding = -1 }, ErrInvalidConfig},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected error to wrap ErrInvalidConfig, got %v", err)
			}
		})
	}

	cfg := Default()
	cfg.Debug.SphereSlices = 3
	if err := cfg.Validate(); err != nil {
		t.Errorf("3 slices should be valid: %v", err)
	}
}

func TestCullerOptions(t *testing.T) {
	cfg := Default()
	cfg.Culling.Strategy = "World"
	cfg.Culling.Workers = 3
	cfg.Culling.BatchSize = 10

	opts, err := cfg.CullerOptions()
	if err != nil {
		t.Fatalf("CullerOptions: %v", err)
	}
	if opts.Strategy != culling.WorldSpace || opts.Workers != 3 || opts.BatchSize != 10 {
		t.Errorf("unexpected options %+v", opts)
	}

	cfg.Culling.Workers = 0
	opts, _ = cfg.CullerOptions()
	if opts.Workers < 1 {
		t.Errorf("workers 0 should become one per CPU, got %d", opts.Workers)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Keep the real user config out of the search
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("culling:\n  strategy: world\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Culling.Strategy = "local"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Culling.Strategy != "local" {
		t.Errorf("expected saved strategy 'local', got %s", loaded.Culling.Strategy)
	}

	cfg.Debug.SphereSlices = 1
	if err := cfg.SaveTo(path); !errors.Is(err, ErrInvalidSlices) {
		t.Errorf("expected SaveTo to refuse invalid config, got %v", err)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "strategy flag",
			setup: func() {
				*flagStrategy = "local"
			},
			verify: func(cfg *Config) {
				if cfg.Culling.Strategy != "local" {
					t.Errorf("expected strategy 'local', got %s", cfg.Culling.Strategy)
				}
			},
			teardown: func() {
				*flagStrategy = ""
			},
		},
		{
			name: "workers flag",
			setup: func() {
				*flagWorkers = 0
			},
			verify: func(cfg *Config) {
				if cfg.Culling.Workers != 0 {
					t.Errorf("expected workers 0, got %d", cfg.Culling.Workers)
				}
			},
			teardown: func() {
				*flagWorkers = -1
			},
		},
		{
			name: "slices and scene flags",
			setup: func() {
				*flagSlices = 8
				*flagScene = "demo.yaml"
			},
			verify: func(cfg *Config) {
				if cfg.Debug.SphereSlices != 8 {
					t.Errorf("expected 8 slices, got %d", cfg.Debug.SphereSlices)
				}
				if cfg.Scene.Path != "demo.yaml" {
					t.Errorf("expected scene demo.yaml, got %s", cfg.Scene.Path)
				}
			},
			teardown: func() {
				*flagSlices = 0
				*flagScene = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			cfg.Culling.Workers = 4
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
culling:
  strategy: world
  batch_size: 32
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagStrategy = "local"
	defer func() {
		*flagConfig = ""
		*flagStrategy = ""
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Strategy should be from flag, not file
	if cfg.Culling.Strategy != "local" {
		t.Errorf("expected strategy 'local' from flag, got %s", cfg.Culling.Strategy)
	}

	// Batch size should be from file since no flag override
	if cfg.Culling.BatchSize != 32 {
		t.Errorf("expected batch size 32 from file, got %d", cfg.Culling.BatchSize)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("debug:\n  sphere_slices: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidSlices) {
		t.Errorf("expected ErrInvalidSlices, got %v", err)
	}
}
