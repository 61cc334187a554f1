package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Faultbox/midgard-cull/internal/engine/culling"
	"github.com/Faultbox/midgard-cull/internal/engine/debug"
	"github.com/Faultbox/midgard-cull/internal/logger"
)

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidSlices reports a sphere slice count below debug.MinSphereSlices.
	ErrInvalidSlices = fmt.Errorf("%w: sphere_slices", ErrInvalidConfig)
)

// Validate checks values that would otherwise be clamped or ignored later.
func (c *Config) Validate() error {
	if c.Debug.SphereSlices < debug.MinSphereSlices {
		return fmt.Errorf("%w: %d is below %d", ErrInvalidSlices, c.Debug.SphereSlices, debug.MinSphereSlices)
	}
	if _, err := culling.ParseStrategy(c.Culling.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Culling.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidConfig, c.Culling.Workers)
	}
	if c.Culling.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size %d must be positive", ErrInvalidConfig, c.Culling.BatchSize)
	}
	if c.Debug.BoxPadding < 0 {
		return fmt.Errorf("%w: box_padding %v must not be negative", ErrInvalidConfig, c.Debug.BoxPadding)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// CullerOptions converts the culling section. Workers 0 becomes one per CPU.
func (c *Config) CullerOptions() (culling.Options, error) {
	s, err := culling.ParseStrategy(c.Culling.Strategy)
	if err != nil {
		return culling.Options{}, err
	}
	workers := c.Culling.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return culling.Options{
		Strategy:  s,
		Workers:   workers,
		BatchSize: c.Culling.BatchSize,
	}, nil
}
