package geometry

// Ray is a half-line starting at Origin and extending along Direction.
// Direction is kept unit-length so intersection parameters are
// distances in world units.
type Ray struct {
	Origin    Vec2
	Direction Vec2
}

// NewRay creates a ray with a normalized direction. A zero direction
// stays zero; such a ray intersects nothing.
func NewRay(origin, direction Vec2) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec2 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
