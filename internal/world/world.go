// Package world loads scene definitions: which primitives exist, how
// they are grouped and colored, and where the viewers start. Files use
// degrees for angles; the built objects use radians.
package world

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
	"github.com/CCernusca/2d-rendering/internal/core/scene"
	"github.com/CCernusca/2d-rendering/internal/core/viewer"
)

// Shape kinds accepted in scene files.
const (
	KindCircle  = "circle"
	KindRect    = "rect"
	KindSegment = "segment"
)

// defaultWorldSize is used when a scene file omits its dimensions.
const defaultWorldSize = 500

// ColorDef is an RGBA color with straight alpha.
type ColorDef struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// NRGBA converts the definition to an image color.
func (c ColorDef) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ShapeDef describes one primitive in a group's local frame. Kind
// selects which fields apply: circles use x/y/radius, rects use
// x/y/w/h, segments run from (x, y) to (x2, y2).
type ShapeDef struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius,omitempty"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
}

// build turns a validated definition into a shape.
func (s *ShapeDef) build() geometry.Shape {
	switch s.Kind {
	case KindCircle:
		return geometry.NewCircle(geometry.Vec2{X: s.X, Y: s.Y}, s.Radius)
	case KindRect:
		return geometry.NewRect(geometry.Vec2{X: s.X, Y: s.Y}, s.W, s.H)
	case KindSegment:
		return geometry.NewSegment(geometry.Vec2{X: s.X, Y: s.Y}, geometry.Vec2{X: s.X2, Y: s.Y2})
	}
	return nil
}

// GroupDef positions a set of shapes sharing one color.
type GroupDef struct {
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Color  ColorDef   `json:"color"`
	Shapes []ShapeDef `json:"shapes"`
}

// ViewerDef describes a viewer's pose and sampling parameters, with
// heading and fov in degrees.
type ViewerDef struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Heading       float64 `json:"heading"`
	FOV           float64 `json:"fov"`
	Rays          int     `json:"rays"`
	MaxRange      float64 `json:"max_range"`
	MinBrightness float64 `json:"min_brightness,omitempty"`
}

// Config converts the definition to a viewer configuration in radians.
func (v ViewerDef) Config() viewer.Config {
	return viewer.Config{
		FOV:           radians(v.FOV),
		RayCount:      v.Rays,
		MaxRange:      v.MaxRange,
		MinBrightness: v.MinBrightness,
	}
}

// Definition is a complete scene file.
type Definition struct {
	Name       string      `json:"name"`
	Width      int         `json:"width,omitempty"`
	Height     int         `json:"height,omitempty"`
	Background *ColorDef   `json:"background,omitempty"`
	Groups     []GroupDef  `json:"groups"`
	Viewers    []ViewerDef `json:"viewers"`
}

// Load reads, parses and validates a scene definition from a JSON
// file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}

	def.ApplyDefaults()
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene in %s: %w", path, err)
	}

	return &def, nil
}

// ApplyDefaults fills omitted dimensions.
func (d *Definition) ApplyDefaults() {
	if d.Width == 0 {
		d.Width = defaultWorldSize
	}
	if d.Height == 0 {
		d.Height = defaultWorldSize
	}
}

// Validate checks the definition is buildable.
func (d *Definition) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("invalid world dimensions: %dx%d", d.Width, d.Height)
	}

	for i, g := range d.Groups {
		for j, s := range g.Shapes {
			switch s.Kind {
			case KindCircle:
				if s.Radius <= 0 {
					return fmt.Errorf("group %d shape %d: invalid circle radius %f", i, j, s.Radius)
				}
			case KindRect:
				if s.W <= 0 || s.H <= 0 {
					return fmt.Errorf("group %d shape %d: invalid rect size %fx%f", i, j, s.W, s.H)
				}
			case KindSegment:
				if s.X == s.X2 && s.Y == s.Y2 {
					return fmt.Errorf("group %d shape %d: degenerate segment", i, j)
				}
			default:
				return fmt.Errorf("group %d shape %d: unknown shape kind %q", i, j, s.Kind)
			}
		}
	}

	for i, v := range d.Viewers {
		if err := v.Config().Validate(); err != nil {
			return fmt.Errorf("viewer %d: %w", i, err)
		}
	}

	return nil
}

// Build constructs the scene and its viewers from the definition.
func (d *Definition) Build() (*scene.Scene, []*viewer.Viewer, error) {
	d.ApplyDefaults()
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}

	sc := scene.New()
	if d.Background != nil {
		sc.SetBackground(d.Background.NRGBA())
	}

	for i := range d.Groups {
		g := &d.Groups[i]
		group := geometry.NewGroup(geometry.Vec2{X: g.X, Y: g.Y})
		for j := range g.Shapes {
			group.Add(g.Shapes[j].build())
		}
		sc.Add(&scene.Primitive{Shape: group, Color: g.Color.NRGBA()})
	}

	viewers := make([]*viewer.Viewer, 0, len(d.Viewers))
	for i, vd := range d.Viewers {
		v, err := viewer.New(geometry.Vec2{X: vd.X, Y: vd.Y}, radians(vd.Heading), vd.Config())
		if err != nil {
			return nil, nil, fmt.Errorf("viewer %d: %w", i, err)
		}
		viewers = append(viewers, v)
	}

	return sc, viewers, nil
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
