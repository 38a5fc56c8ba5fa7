package simulation

import (
	"sort"
	"sync"

	"github.com/CCernusca/2d-rendering/internal/core/scene"
	"github.com/CCernusca/2d-rendering/internal/core/viewer"
)

// Sim owns the scene and the set of viewer units. Viewers join and
// leave while the simulation runs; the scene is the one shared mutable
// resource between them.
type Sim struct {
	scene *scene.Scene
	cfg   Config

	mu     sync.Mutex
	units  map[int]*Unit
	nextID int
	closed bool
	wg     sync.WaitGroup
}

// New creates a simulation around the given scene.
func New(sc *scene.Scene, cfg Config) *Sim {
	return &Sim{
		scene:  sc,
		cfg:    cfg,
		units:  make(map[int]*Unit),
		nextID: 1,
	}
}

// Scene returns the shared scene.
func (s *Sim) Scene() *scene.Scene {
	return s.scene
}

// Config returns the movement rules.
func (s *Sim) Config() Config {
	return s.cfg
}

// AddViewer spawns a unit goroutine for the viewer and returns it. The
// viewer is handed over to the unit; callers must not mutate it
// afterwards. Returns nil after Close.
func (s *Sim) AddViewer(v *viewer.Viewer) *Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	unit := newUnit(s.nextID, v, s.scene)
	s.nextID++
	s.units[unit.id] = unit

	s.wg.Add(1)
	go unit.run(&s.wg)
	return unit
}

// RemoveViewer stops a single unit without touching the others. It
// reports whether the unit existed.
func (s *Sim) RemoveViewer(id int) bool {
	s.mu.Lock()
	unit, ok := s.units[id]
	if ok {
		delete(s.units, id)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	unit.halt()
	return true
}

// Unit looks up a running unit by id.
func (s *Sim) Unit(id int) (*Unit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[id]
	return u, ok
}

// Units returns the running units ordered by id.
func (s *Sim) Units() []*Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	units := make([]*Unit, 0, len(s.units))
	for _, u := range s.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].id < units[j].id })
	return units
}

// Len returns the number of running units.
func (s *Sim) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.units)
}

// AddPrimitive inserts a primitive into the scene and wakes every unit.
func (s *Sim) AddPrimitive(p *scene.Primitive) {
	s.scene.Add(p)
	s.InvalidateAll()
}

// RemovePrimitive removes a primitive from the scene and wakes every
// unit. It reports whether the primitive was present.
func (s *Sim) RemovePrimitive(p *scene.Primitive) bool {
	ok := s.scene.Remove(p)
	s.InvalidateAll()
	return ok
}

// EditScene applies fn under the scene write lock, then wakes every
// unit to recast against the new state.
func (s *Sim) EditScene(fn func()) {
	s.scene.Edit(fn)
	s.InvalidateAll()
}

// InvalidateAll asks every unit to recast.
func (s *Sim) InvalidateAll() {
	for _, u := range s.Units() {
		u.Invalidate()
	}
}

// Close stops all units and waits for their goroutines to finish.
func (s *Sim) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	units := make([]*Unit, 0, len(s.units))
	for _, u := range s.units {
		units = append(units, u)
	}
	s.units = make(map[int]*Unit)
	s.mu.Unlock()

	for _, u := range units {
		u.halt()
	}
	s.wg.Wait()
}
