package viewer

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig marks a rejected viewer configuration.
var ErrInvalidConfig = errors.New("invalid viewer config")

// Config bundles the per-viewer sampling parameters. Angles are in
// radians, distances in world units.
type Config struct {
	// FOV is the angular width of the ray fan.
	FOV float64
	// RayCount is the number of rays sampled across the fan. A count of
	// one degenerates to a single ray along the heading.
	RayCount int
	// MaxRange is the distance beyond which hits stop registering.
	MaxRange float64
	// MinBrightness floors the projector's distance falloff, in [0, 1].
	MinBrightness float64
}

// Validate checks the configuration, wrapping ErrInvalidConfig so
// callers can test for it. Construction is the only place bad values
// can enter; casting itself never fails.
func (c Config) Validate() error {
	if c.RayCount < 1 {
		return fmt.Errorf("%w: ray count must be at least 1, got %d", ErrInvalidConfig, c.RayCount)
	}
	if c.FOV <= 0 || c.FOV > 2*math.Pi {
		return fmt.Errorf("%w: field of view must be in (0, 2*pi], got %f", ErrInvalidConfig, c.FOV)
	}
	if c.MaxRange <= 0 {
		return fmt.Errorf("%w: max range must be positive, got %f", ErrInvalidConfig, c.MaxRange)
	}
	if c.MinBrightness < 0 || c.MinBrightness > 1 {
		return fmt.Errorf("%w: min brightness must be in [0, 1], got %f", ErrInvalidConfig, c.MinBrightness)
	}
	return nil
}
