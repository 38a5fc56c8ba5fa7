package geometry

import "math"

// segmentEpsilon bounds both the parallel-denominator cutoff and the
// distance tolerance for Contains on a zero-area shape.
const segmentEpsilon = 1e-9

// Segment is a line segment between two endpoints. It has zero area, so
// Contains only reports points lying on the segment itself.
type Segment struct {
	A, B Vec2
}

// NewSegment creates a segment between two points.
func NewSegment(a, b Vec2) *Segment {
	return &Segment{A: a, B: b}
}

// IntersectRay solves the ray-segment system with the 2x2 determinant.
// Parallel and degenerate segments report a miss.
func (s *Segment) IntersectRay(r Ray) (float64, bool) {
	seg := s.B.Subtract(s.A)

	denominator := r.Direction.X*seg.Y - r.Direction.Y*seg.X
	if math.Abs(denominator) < segmentEpsilon {
		return 0, false
	}

	diff := s.A.Subtract(r.Origin)
	u := (r.Direction.X*diff.Y - r.Direction.Y*diff.X) / denominator
	t := (seg.X*diff.Y - seg.Y*diff.X) / denominator

	if u < 0 || u > 1 || t < 0 {
		return 0, false
	}
	return t, true
}

// Contains reports whether p lies on the segment.
func (s *Segment) Contains(p Vec2) bool {
	seg := s.B.Subtract(s.A)
	lenSq := seg.LengthSquared()
	if lenSq == 0 {
		return p.Subtract(s.A).Length() < segmentEpsilon
	}
	u := p.Subtract(s.A).Dot(seg) / lenSq
	u = math.Max(0, math.Min(1, u))
	closest := s.A.Add(seg.Multiply(u))
	return p.Subtract(closest).Length() < segmentEpsilon
}

// Bounds returns the segment's bounding box.
func (s *Segment) Bounds() AABB {
	return AABB{
		Min: Vec2{math.Min(s.A.X, s.B.X), math.Min(s.A.Y, s.B.Y)},
		Max: Vec2{math.Max(s.A.X, s.B.X), math.Max(s.A.Y, s.B.Y)},
	}
}

// Translate moves both endpoints by d.
func (s *Segment) Translate(d Vec2) {
	s.A = s.A.Add(d)
	s.B = s.B.Add(d)
}

// Clone returns a copy of the segment.
func (s *Segment) Clone() Shape {
	cp := *s
	return &cp
}
