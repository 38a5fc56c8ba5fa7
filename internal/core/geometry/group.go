package geometry

import "math"

// Group positions child shapes relative to a shared offset, so a
// figure assembled from several primitives moves as one. A Group is
// itself a Shape and may nest.
type Group struct {
	Offset Vec2
	Shapes []Shape
}

// NewGroup creates a group at the given offset.
func NewGroup(offset Vec2, shapes ...Shape) *Group {
	return &Group{Offset: offset, Shapes: shapes}
}

// Add appends a child shape, positioned relative to the group offset.
func (g *Group) Add(s Shape) {
	g.Shapes = append(g.Shapes, s)
}

// IntersectRay returns the nearest child intersection. The ray is
// shifted into the group's local frame; distances are unchanged by the
// shift because the direction stays the same.
func (g *Group) IntersectRay(r Ray) (float64, bool) {
	if len(g.Shapes) == 0 {
		return 0, false
	}
	if !g.Bounds().Hit(r) {
		return 0, false
	}

	local := Ray{Origin: r.Origin.Subtract(g.Offset), Direction: r.Direction}

	nearest := math.Inf(1)
	hit := false
	for _, s := range g.Shapes {
		if t, ok := s.IntersectRay(local); ok && t < nearest {
			nearest = t
			hit = true
		}
	}
	if !hit {
		return 0, false
	}
	return nearest, true
}

// Contains reports whether p lies inside any child shape.
func (g *Group) Contains(p Vec2) bool {
	local := p.Subtract(g.Offset)
	for _, s := range g.Shapes {
		if s.Contains(local) {
			return true
		}
	}
	return false
}

// Bounds returns the union of the child bounds in world coordinates.
// An empty group collapses to a point at its offset.
func (g *Group) Bounds() AABB {
	if len(g.Shapes) == 0 {
		return AABB{Min: g.Offset, Max: g.Offset}
	}
	b := g.Shapes[0].Bounds()
	for _, s := range g.Shapes[1:] {
		b = b.Union(s.Bounds())
	}
	return b.Translate(g.Offset)
}

// Translate moves the group offset; children keep their relative
// positions.
func (g *Group) Translate(d Vec2) {
	g.Offset = g.Offset.Add(d)
}

// Clone returns a deep copy of the group and its children.
func (g *Group) Clone() Shape {
	shapes := make([]Shape, len(g.Shapes))
	for i, s := range g.Shapes {
		shapes[i] = s.Clone()
	}
	return &Group{Offset: g.Offset, Shapes: shapes}
}
