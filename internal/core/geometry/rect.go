package geometry

// Rect is an axis-aligned rectangle centered at Center, extending
// W/2 and H/2 along each axis.
type Rect struct {
	Center Vec2
	W, H   float64
}

// NewRect creates a rectangle from its center and side lengths.
func NewRect(center Vec2, w, h float64) *Rect {
	return &Rect{Center: center, W: w, H: h}
}

// IntersectRay runs the slab test against the rectangle's extents.
func (rc *Rect) IntersectRay(r Ray) (float64, bool) {
	b := rc.Bounds()
	tNear, tFar, ok := rayBoxInterval(r, b.Min, b.Max)
	if !ok {
		return 0, false
	}
	if tNear >= 0 {
		return tNear, true
	}
	// Origin inside, report the exit crossing.
	return tFar, true
}

// Contains reports whether p lies inside or on the rectangle.
func (rc *Rect) Contains(p Vec2) bool {
	return rc.Bounds().Contains(p)
}

// Bounds returns the rectangle's extent as a box.
func (rc *Rect) Bounds() AABB {
	half := Vec2{rc.W / 2, rc.H / 2}
	return AABB{Min: rc.Center.Subtract(half), Max: rc.Center.Add(half)}
}

// Translate moves the rectangle by d.
func (rc *Rect) Translate(d Vec2) {
	rc.Center = rc.Center.Add(d)
}

// Clone returns a copy of the rectangle.
func (rc *Rect) Clone() Shape {
	cp := *rc
	return &cp
}
