package simulation

import (
	"sync"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
	"github.com/CCernusca/2d-rendering/internal/core/project"
	"github.com/CCernusca/2d-rendering/internal/core/scene"
	"github.com/CCernusca/2d-rendering/internal/core/viewer"
)

// commandBuffer bounds how many unapplied pose commands a unit queues
// before further ones are dropped.
const commandBuffer = 16

// Command asks a unit to change its viewer's pose. Distances are world
// units, the turn is in radians.
type Command struct {
	Forward float64
	Strafe  float64
	Turn    float64
}

// ViewerState is a copy of a viewer's pose taken at cast time, safe to
// read outside the unit goroutine.
type ViewerState struct {
	Pos     geometry.Vec2
	Heading float64
	Config  viewer.Config
}

// Frame is one finished cast: the pose it was taken from, the layered
// ray results for overview drawing, and the projected strip.
type Frame struct {
	Viewer ViewerState
	Stacks []viewer.RayStack
	Strip  *project.Image
}

// Unit binds one viewer to one worker goroutine. The viewer must not
// be touched by other goroutines once the unit starts; pose changes go
// through Send. The scene stays shared and is only read via snapshots.
type Unit struct {
	id        int
	viewer    *viewer.Viewer
	scene     *scene.Scene
	projector project.Projector

	commands   chan Command
	invalidate chan struct{}
	frames     chan *Frame
	stop       chan struct{}
	haltOnce   sync.Once
}

func newUnit(id int, v *viewer.Viewer, sc *scene.Scene) *Unit {
	return &Unit{
		id:         id,
		viewer:     v,
		scene:      sc,
		projector:  project.FromConfig(v.Config()),
		commands:   make(chan Command, commandBuffer),
		invalidate: make(chan struct{}, 1),
		frames:     make(chan *Frame, 1),
		stop:       make(chan struct{}),
	}
}

// ID returns the unit's simulation-assigned identifier.
func (u *Unit) ID() int {
	return u.id
}

// Send queues a pose command without blocking. It reports false when
// the unit's buffer is full and the command was dropped.
func (u *Unit) Send(cmd Command) bool {
	select {
	case u.commands <- cmd:
		return true
	default:
		return false
	}
}

// Invalidate asks the unit to recast against the current scene.
// Repeated calls coalesce while a cast is in flight.
func (u *Unit) Invalidate() {
	select {
	case u.invalidate <- struct{}{}:
	default:
	}
}

// LatestFrame returns the newest finished frame, or false when nothing
// new arrived since the last call.
func (u *Unit) LatestFrame() (*Frame, bool) {
	select {
	case f := <-u.frames:
		return f, true
	default:
		return nil, false
	}
}

// halt stops the unit goroutine. Safe to call more than once.
func (u *Unit) halt() {
	u.haltOnce.Do(func() {
		close(u.stop)
	})
}

// run is the unit goroutine: cast once on startup, then recast
// whenever a command lands or the scene is invalidated.
func (u *Unit) run(wg *sync.WaitGroup) {
	defer wg.Done()

	u.recast()
	for {
		select {
		case <-u.stop:
			return
		case cmd := <-u.commands:
			u.apply(cmd)
			u.recast()
		case <-u.invalidate:
			u.recast()
		}
	}
}

func (u *Unit) apply(cmd Command) {
	if cmd.Forward != 0 || cmd.Strafe != 0 {
		u.viewer.Move(cmd.Forward, cmd.Strafe)
	}
	if cmd.Turn != 0 {
		u.viewer.Turn(cmd.Turn)
	}
}

func (u *Unit) recast() {
	view := u.scene.Snapshot()
	stacks := u.viewer.CastLayeredView(view)
	strip := u.projector.ProjectLayered(stacks, view.Background)

	u.publish(&Frame{
		Viewer: ViewerState{
			Pos:     u.viewer.Pos,
			Heading: u.viewer.Heading(),
			Config:  u.viewer.Config(),
		},
		Stacks: stacks,
		Strip:  strip,
	})
}

// publish replaces whatever frame is waiting; consumers only ever see
// the latest state.
func (u *Unit) publish(f *Frame) {
	for {
		select {
		case u.frames <- f:
			return
		default:
			select {
			case <-u.frames:
			default:
			}
		}
	}
}
