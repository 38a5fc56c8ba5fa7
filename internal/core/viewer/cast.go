package viewer

import (
	"image/color"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
	"github.com/CCernusca/2d-rendering/internal/core/scene"
)

// RayHit is the result of a single ray. End is the point where the ray
// stopped, capped at max range on a miss so overview beams still draw.
type RayHit struct {
	// Angle the ray was cast at, in radians.
	Angle float64
	// Distance to the struck boundary, or max range on a miss.
	Distance float64
	// End is the world-space endpoint of the beam.
	End geometry.Vec2
	// Color of the struck primitive, or the scene background on a miss.
	Color color.NRGBA
	// Shape is the snapshot copy of the struck shape, nil on a miss.
	Shape geometry.Shape
	// OK reports whether anything was struck within range.
	OK bool
}

// Cast samples the scene across the field of view and returns one hit
// per ray, ordered left to right. The whole pass runs against a single
// snapshot, so concurrent scene edits cannot tear it.
func (v *Viewer) Cast(sc *scene.Scene) []RayHit {
	return v.CastView(sc.Snapshot())
}

// CastView runs the cast against an already-taken snapshot. Equidistant
// primitives tie toward the earliest one in snapshot order.
func (v *Viewer) CastView(view scene.View) []RayHit {
	hits := make([]RayHit, 0, v.cfg.RayCount)
	for _, angle := range v.Angles() {
		hits = append(hits, v.castRay(view, angle))
	}
	return hits
}

func (v *Viewer) castRay(view scene.View, angle float64) RayHit {
	ray := geometry.Ray{Origin: v.Pos, Direction: geometry.FromAngle(angle)}

	hit := RayHit{
		Angle:    angle,
		Distance: v.cfg.MaxRange,
		Color:    view.Background,
	}
	for i := range view.Primitives {
		p := &view.Primitives[i]
		t, ok := p.Shape.IntersectRay(ray)
		if !ok || t > v.cfg.MaxRange {
			continue
		}
		if t < hit.Distance || !hit.OK {
			hit.Distance = t
			hit.Color = p.Color
			hit.Shape = p.Shape
			hit.OK = true
		}
	}
	hit.End = ray.At(hit.Distance)
	return hit
}
