package geometry

// Shape is a closed 2D figure that rays can strike. Implementations use
// pointer receivers so a shape held in a scene can be repositioned in
// place.
type Shape interface {
	// IntersectRay returns the smallest non-negative distance along r to
	// the shape's boundary. When the origin is inside the shape this is
	// the exit distance; an origin exactly on the boundary yields 0. The
	// second result is false when the ray misses. Degenerate rays and
	// shapes report a miss, never an error.
	IntersectRay(r Ray) (float64, bool)

	// Contains reports whether p lies inside or on the shape.
	Contains(p Vec2) bool

	// Bounds returns an axis-aligned box enclosing the shape.
	Bounds() AABB

	// Translate moves the shape by d.
	Translate(d Vec2)

	// Clone returns an independent deep copy of the shape.
	Clone() Shape
}
