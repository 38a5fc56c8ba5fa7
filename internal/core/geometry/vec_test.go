package geometry

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestVec2_Normalize(t *testing.T) {
	v := Vec2{3, 4}.Normalize()
	if math.Abs(v.Length()-1.0) > tolerance {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if math.Abs(v.X-0.6) > tolerance || math.Abs(v.Y-0.8) > tolerance {
		t.Errorf("Expected (0.6, 0.8), got %v", v)
	}
}

func TestVec2_Normalize_Zero(t *testing.T) {
	v := Vec2{}.Normalize()
	if v.X != 0 || v.Y != 0 {
		t.Errorf("Expected zero vector to stay zero, got %v", v)
	}
}

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, -1}

	if got := a.Add(b); got != (Vec2{4, 1}) {
		t.Errorf("Add: expected (4, 1), got %v", got)
	}
	if got := a.Subtract(b); got != (Vec2{-2, 3}) {
		t.Errorf("Subtract: expected (-2, 3), got %v", got)
	}
	if got := a.Multiply(2); got != (Vec2{2, 4}) {
		t.Errorf("Multiply: expected (2, 4), got %v", got)
	}
	if got := a.Dot(b); got != 1 {
		t.Errorf("Dot: expected 1, got %f", got)
	}
	if got := a.LengthSquared(); got != 5 {
		t.Errorf("LengthSquared: expected 5, got %f", got)
	}
}

func TestFromAngle(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  Vec2
	}{
		{"zero points right", 0, Vec2{1, 0}},
		{"quarter turn points down", math.Pi / 2, Vec2{0, 1}},
		{"half turn points left", math.Pi, Vec2{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromAngle(tt.angle)
			if math.Abs(got.X-tt.want.X) > tolerance || math.Abs(got.Y-tt.want.Y) > tolerance {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRay_At(t *testing.T) {
	r := NewRay(Vec2{1, 1}, Vec2{3, 0})
	p := r.At(2)
	if math.Abs(p.X-3) > tolerance || math.Abs(p.Y-1) > tolerance {
		t.Errorf("Expected (3, 1), got %v", p)
	}
}

func TestNewRay_NormalizesDirection(t *testing.T) {
	r := NewRay(Vec2{}, Vec2{0, 5})
	if math.Abs(r.Direction.Length()-1.0) > tolerance {
		t.Errorf("Expected unit direction, got length %f", r.Direction.Length())
	}
}
