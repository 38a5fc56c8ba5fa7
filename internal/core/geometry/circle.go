package geometry

import "math"

// Circle is a disc with the given center and radius.
type Circle struct {
	Center Vec2
	Radius float64
}

// NewCircle creates a circle.
func NewCircle(center Vec2, radius float64) *Circle {
	return &Circle{Center: center, Radius: radius}
}

// IntersectRay solves the ray-circle quadratic and returns the smallest
// non-negative root.
func (c *Circle) IntersectRay(r Ray) (float64, bool) {
	oc := r.Origin.Subtract(c.Center)
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return 0, false
	}
	halfB := oc.Dot(r.Direction)
	cc := oc.Dot(oc) - c.Radius*c.Radius

	discriminant := halfB*halfB - a*cc
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < 0 {
		// Origin inside or past the near crossing, try the far one.
		root = (-halfB + sqrtD) / a
		if root < 0 {
			return 0, false
		}
	}
	return root, true
}

// Contains reports whether p lies inside or on the circle.
func (c *Circle) Contains(p Vec2) bool {
	return p.Subtract(c.Center).LengthSquared() <= c.Radius*c.Radius
}

// Bounds returns the circle's bounding box.
func (c *Circle) Bounds() AABB {
	r := Vec2{c.Radius, c.Radius}
	return AABB{Min: c.Center.Subtract(r), Max: c.Center.Add(r)}
}

// Translate moves the circle by d.
func (c *Circle) Translate(d Vec2) {
	c.Center = c.Center.Add(d)
}

// Clone returns a copy of the circle.
func (c *Circle) Clone() Shape {
	cp := *c
	return &cp
}
