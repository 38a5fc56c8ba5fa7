package viewer

import (
	"image/color"
	"sort"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
	"github.com/CCernusca/2d-rendering/internal/core/scene"
)

// Layer is one surface crossed by a ray during a layered cast.
type Layer struct {
	Distance float64
	Color    color.NRGBA
}

// RayStack holds every surface a ray crossed, nearest first. The stack
// is truncated at the first surface that brings the accumulated alpha
// to full opacity; rays keep passing through translucent primitives
// until then.
type RayStack struct {
	Angle  float64
	Layers []Layer
	// End is where the beam finally stopped: the opaque surface, or max
	// range when the stack never reached full opacity.
	End geometry.Vec2
}

// Opaque reports whether the stack ends at a fully opaque surface.
func (s RayStack) Opaque() bool {
	total := 0
	for _, l := range s.Layers {
		total += int(l.Color.A)
	}
	return total >= 255
}

// CastLayered samples the scene like Cast but keeps every translucent
// surface a ray crosses instead of only the nearest one. Opaque scenes
// degenerate to single-layer stacks matching Cast.
func (v *Viewer) CastLayered(sc *scene.Scene) []RayStack {
	return v.CastLayeredView(sc.Snapshot())
}

// CastLayeredView runs the layered cast against an already-taken
// snapshot.
func (v *Viewer) CastLayeredView(view scene.View) []RayStack {
	stacks := make([]RayStack, 0, v.cfg.RayCount)
	for _, angle := range v.Angles() {
		stacks = append(stacks, v.castStack(view, angle))
	}
	return stacks
}

func (v *Viewer) castStack(view scene.View, angle float64) RayStack {
	ray := geometry.Ray{Origin: v.Pos, Direction: geometry.FromAngle(angle)}

	var layers []Layer
	for i := range view.Primitives {
		p := &view.Primitives[i]
		t, ok := p.Shape.IntersectRay(ray)
		if !ok || t > v.cfg.MaxRange {
			continue
		}
		layers = append(layers, Layer{Distance: t, Color: p.Color})
	}
	// Stable keeps snapshot order between equidistant surfaces.
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].Distance < layers[j].Distance
	})

	accumulated := 0
	cut := len(layers)
	opaque := false
	for i, l := range layers {
		accumulated += int(l.Color.A)
		if accumulated >= 255 {
			cut = i + 1
			opaque = true
			break
		}
	}
	layers = layers[:cut]

	stack := RayStack{Angle: angle, Layers: layers}
	if opaque {
		stack.End = ray.At(layers[cut-1].Distance)
	} else {
		stack.End = ray.At(v.cfg.MaxRange)
	}
	return stack
}
