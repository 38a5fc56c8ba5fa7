// Package scene holds the shared world state: colored primitives and a
// background color. A Scene is the one mutable resource shared between
// viewer goroutines, so reads go through immutable snapshots and writes
// through the scene's lock.
package scene

import (
	"image/color"
	"sync"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
)

// DefaultBackground is the color reported by rays that hit nothing.
var DefaultBackground = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

// Primitive pairs a shape with its display color. An alpha below 255
// marks the primitive translucent for layered casting.
type Primitive struct {
	Shape geometry.Shape
	Color color.NRGBA
}

// Translucent reports whether rays pass through the primitive.
func (p Primitive) Translucent() bool {
	return p.Color.A < 255
}

// View is an immutable copy of the scene taken under the read lock.
// Casting works on a View, so concurrent edits can never tear an
// intersection pass.
type View struct {
	Primitives []Primitive
	Background color.NRGBA
}

// Scene is a concurrency-safe collection of primitives.
type Scene struct {
	mu         sync.RWMutex
	primitives []*Primitive
	background color.NRGBA
}

// New creates an empty scene with the default background.
func New() *Scene {
	return &Scene{background: DefaultBackground}
}

// Add inserts a primitive. Duplicates are allowed; the same pointer can
// be added twice and removed twice.
func (s *Scene) Add(p *Primitive) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primitives = append(s.primitives, p)
}

// Remove deletes the first occurrence of p, matched by pointer
// identity. It reports whether anything was removed.
func (s *Scene) Remove(p *Primitive) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.primitives {
		if existing == p {
			s.primitives = append(s.primitives[:i], s.primitives[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of primitives in the scene.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.primitives)
}

// Background returns the scene background color.
func (s *Scene) Background() color.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

// SetBackground sets the scene background color.
func (s *Scene) SetBackground(c color.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

// Edit runs fn while holding the write lock, for in-place shape
// mutation such as Translate. fn must not call other Scene methods.
func (s *Scene) Edit(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Snapshot returns a deep copy of the scene contents. Shapes are
// cloned, so later edits leave the snapshot untouched. Snapshot order
// is insertion order, which makes nearest-hit tie-breaking stable.
func (s *Scene) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prims := make([]Primitive, len(s.primitives))
	for i, p := range s.primitives {
		prims[i] = Primitive{Shape: p.Shape.Clone(), Color: p.Color}
	}
	return View{Primitives: prims, Background: s.background}
}
