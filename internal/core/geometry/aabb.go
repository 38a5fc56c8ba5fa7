package geometry

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec2
}

// NewAABB creates a bounding box from min and max corners.
func NewAABB(min, max Vec2) AABB {
	return AABB{Min: min, Max: max}
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec2{math.Min(b.Min.X, other.Min.X), math.Min(b.Min.Y, other.Min.Y)},
		Max: Vec2{math.Max(b.Max.X, other.Max.X), math.Max(b.Max.Y, other.Max.Y)},
	}
}

// Translate returns the box shifted by d.
func (b AABB) Translate(d Vec2) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Hit reports whether the ray touches the box. Used as a cheap
// rejection test before exact shape intersection.
func (b AABB) Hit(r Ray) bool {
	_, _, ok := rayBoxInterval(r, b.Min, b.Max)
	return ok
}

// rayBoxInterval computes the entry and exit distances of a ray through
// the box [min, max] using the slab method. ok is false when the ray
// misses, points away, or has a zero direction. On success tFar >= 0 and
// tNear <= tFar; tNear may be negative when the origin is inside.
func rayBoxInterval(r Ray, min, max Vec2) (tNear, tFar float64, ok bool) {
	if r.Direction.X == 0 && r.Direction.Y == 0 {
		return 0, 0, false
	}

	tNear = math.Inf(-1)
	tFar = math.Inf(1)

	if r.Direction.X != 0 {
		t1 := (min.X - r.Origin.X) / r.Direction.X
		t2 := (max.X - r.Origin.X) / r.Direction.X
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
	} else if r.Origin.X < min.X || r.Origin.X > max.X {
		return 0, 0, false
	}

	if r.Direction.Y != 0 {
		t1 := (min.Y - r.Origin.Y) / r.Direction.Y
		t2 := (max.Y - r.Origin.Y) / r.Direction.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
	} else if r.Origin.Y < min.Y || r.Origin.Y > max.Y {
		return 0, 0, false
	}

	if tNear > tFar || tFar < 0 {
		return 0, 0, false
	}
	return tNear, tFar, true
}
