package geometry

import "testing"

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(Vec2{5, -1}, Vec2{7, 1})

	tests := []struct {
		name string
		ray  Ray
		want bool
	}{
		{"head on", NewRay(Vec2{}, Vec2{1, 0}), true},
		{"offset miss", NewRay(Vec2{0, 5}, Vec2{1, 0}), false},
		{"behind", NewRay(Vec2{10, 0}, Vec2{1, 0}), false},
		{"from inside", NewRay(Vec2{6, 0}, Vec2{0, 1}), true},
		{"zero direction", NewRay(Vec2{6, 0}, Vec2{}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray); got != tt.want {
				t.Errorf("Expected hit=%t, got %t", tt.want, got)
			}
		})
	}
}

func TestAABB_Union(t *testing.T) {
	a := NewAABB(Vec2{0, 0}, Vec2{1, 1})
	b := NewAABB(Vec2{-1, 0.5}, Vec2{0.5, 2})

	u := a.Union(b)
	if u.Min != (Vec2{-1, 0}) || u.Max != (Vec2{1, 2}) {
		t.Errorf("Expected union (-1,0)-(1,2), got %v-%v", u.Min, u.Max)
	}
}

func TestAABB_Contains(t *testing.T) {
	box := NewAABB(Vec2{0, 0}, Vec2{2, 2})

	if !box.Contains(Vec2{1, 1}) {
		t.Error("Expected interior point to be contained")
	}
	if !box.Contains(Vec2{0, 2}) {
		t.Error("Expected corner to be contained")
	}
	if box.Contains(Vec2{3, 1}) {
		t.Error("Expected outside point not to be contained")
	}
}
