// Package viewer implements the observers of the simulation: a pose in
// the plane plus a fan of rays cast across a field of view, turned into
// per-ray hit records.
package viewer

import (
	"math"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
)

// Viewer is an observer with a position, a heading and sampling
// parameters. The heading is kept normalized to [0, 2*pi).
type Viewer struct {
	Pos     geometry.Vec2
	heading float64
	cfg     Config
}

// New creates a viewer at pos facing heading. The configuration is
// validated up front; a viewer that constructs always casts.
func New(pos geometry.Vec2, heading float64, cfg Config) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Viewer{Pos: pos, heading: normalizeAngle(heading), cfg: cfg}, nil
}

// Heading returns the viewing direction in radians, in [0, 2*pi).
func (v *Viewer) Heading() float64 {
	return v.heading
}

// Config returns the sampling configuration.
func (v *Viewer) Config() Config {
	return v.cfg
}

// SetConfig replaces the configuration after validating it.
func (v *Viewer) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	v.cfg = cfg
	return nil
}

// Turn rotates the viewer by delta radians.
func (v *Viewer) Turn(delta float64) {
	v.heading = normalizeAngle(v.heading + delta)
}

// Move shifts the viewer relative to its heading: forward along the
// view direction, strafe perpendicular to it.
func (v *Viewer) Move(forward, strafe float64) {
	dir := geometry.FromAngle(v.heading)
	side := geometry.Vec2{X: -dir.Y, Y: dir.X}
	v.Pos = v.Pos.Add(dir.Multiply(forward)).Add(side.Multiply(strafe))
}

// Angles returns the sampled ray angles from the left edge of the fan
// to the right. Edge angles are included; a single ray points along
// the heading.
func (v *Viewer) Angles() []float64 {
	n := v.cfg.RayCount
	angles := make([]float64, n)
	if n == 1 {
		angles[0] = v.heading
		return angles
	}
	start := v.heading - v.cfg.FOV/2
	step := v.cfg.FOV / float64(n-1)
	for i := range angles {
		angles[i] = start + float64(i)*step
	}
	return angles
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
