package scene

import (
	"image/color"
	"sync"
	"testing"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
)

func red() color.NRGBA { return color.NRGBA{R: 255, A: 255} }

func TestScene_AddRemove(t *testing.T) {
	s := New()
	p := &Primitive{Shape: geometry.NewCircle(geometry.Vec2{}, 1), Color: red()}

	s.Add(p)
	if s.Len() != 1 {
		t.Fatalf("Expected 1 primitive, got %d", s.Len())
	}

	if !s.Remove(p) {
		t.Error("Expected Remove to report success")
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty scene, got %d primitives", s.Len())
	}
	if s.Remove(p) {
		t.Error("Expected removing twice to report failure")
	}
}

func TestScene_RemoveByIdentity(t *testing.T) {
	s := New()
	a := &Primitive{Shape: geometry.NewCircle(geometry.Vec2{}, 1), Color: red()}
	b := &Primitive{Shape: geometry.NewCircle(geometry.Vec2{}, 1), Color: red()}

	s.Add(a)
	s.Add(b)
	s.Remove(a)

	view := s.Snapshot()
	if len(view.Primitives) != 1 {
		t.Fatalf("Expected 1 primitive left, got %d", len(view.Primitives))
	}
	if s.Remove(b); s.Len() != 0 {
		t.Error("Expected identity-based removal to find the second primitive")
	}
}

func TestScene_DuplicateAdds(t *testing.T) {
	s := New()
	p := &Primitive{Shape: geometry.NewCircle(geometry.Vec2{}, 1), Color: red()}

	s.Add(p)
	s.Add(p)
	if s.Len() != 2 {
		t.Fatalf("Expected duplicates to be kept, got %d", s.Len())
	}

	s.Remove(p)
	if s.Len() != 1 {
		t.Errorf("Expected one occurrence left, got %d", s.Len())
	}
}

func TestScene_SnapshotIsolation(t *testing.T) {
	s := New()
	circle := geometry.NewCircle(geometry.Vec2{}, 1)
	s.Add(&Primitive{Shape: circle, Color: red()})

	view := s.Snapshot()
	s.Edit(func() {
		circle.Translate(geometry.Vec2{X: 100, Y: 100})
	})

	snap := view.Primitives[0].Shape.(*geometry.Circle)
	if snap.Center != (geometry.Vec2{}) {
		t.Errorf("Expected snapshot to keep old center, got %v", snap.Center)
	}
}

func TestScene_Background(t *testing.T) {
	s := New()
	if s.Background() != DefaultBackground {
		t.Errorf("Expected default background, got %v", s.Background())
	}

	blue := color.NRGBA{B: 200, A: 255}
	s.SetBackground(blue)

	view := s.Snapshot()
	if view.Background != blue {
		t.Errorf("Expected snapshot background %v, got %v", blue, view.Background)
	}
}

func TestScene_ConcurrentAccess(t *testing.T) {
	s := New()
	s.Add(&Primitive{Shape: geometry.NewCircle(geometry.Vec2{X: 5, Y: 0}, 1), Color: red()})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				view := s.Snapshot()
				if len(view.Primitives) == 0 {
					t.Error("Expected snapshot to always see the primitive")
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			s.Edit(func() {})
		}
	}()

	wg.Wait()
}
