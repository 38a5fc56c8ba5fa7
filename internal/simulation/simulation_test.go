package simulation

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
	"github.com/CCernusca/2d-rendering/internal/core/scene"
	"github.com/CCernusca/2d-rendering/internal/core/viewer"
)

func testConfig() viewer.Config {
	return viewer.Config{FOV: math.Pi / 2, RayCount: 5, MaxRange: 100, MinBrightness: 0}
}

func mustViewer(t *testing.T, x, y, heading float64) *viewer.Viewer {
	t.Helper()
	v, err := viewer.New(geometry.Vec2{X: x, Y: y}, heading, testConfig())
	if err != nil {
		t.Fatalf("Expected viewer to construct, got %v", err)
	}
	return v
}

// waitFrame polls a unit until a frame arrives.
func waitFrame(t *testing.T, u *Unit) *Frame {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f, ok := u.LatestFrame(); ok {
			return f
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Expected a frame before the deadline")
	return nil
}

func TestSim_AddViewer_ProducesInitialFrame(t *testing.T) {
	sim := New(scene.New(), DefaultConfig())
	defer sim.Close()

	unit := sim.AddViewer(mustViewer(t, 0, 0, 0))
	frame := waitFrame(t, unit)

	if frame.Strip.Width() != testConfig().RayCount {
		t.Errorf("Expected %d strip columns, got %d", testConfig().RayCount, frame.Strip.Width())
	}
	if len(frame.Stacks) != testConfig().RayCount {
		t.Errorf("Expected %d stacks, got %d", testConfig().RayCount, len(frame.Stacks))
	}
}

func TestUnit_CommandMovesViewer(t *testing.T) {
	sim := New(scene.New(), DefaultConfig())
	defer sim.Close()

	unit := sim.AddViewer(mustViewer(t, 0, 0, 0))
	waitFrame(t, unit)

	if !unit.Send(Command{Forward: 5}) {
		t.Fatal("Expected command to queue")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f, ok := unit.LatestFrame(); ok && math.Abs(f.Viewer.Pos.X-5) < 1e-9 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Expected a frame from the moved pose")
}

func TestUnit_TurnCommand(t *testing.T) {
	sim := New(scene.New(), DefaultConfig())
	defer sim.Close()

	unit := sim.AddViewer(mustViewer(t, 0, 0, 0))
	waitFrame(t, unit)

	unit.Send(Command{Turn: math.Pi / 2})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f, ok := unit.LatestFrame(); ok && math.Abs(f.Viewer.Heading-math.Pi/2) < 1e-9 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Expected a frame from the turned pose")
}

func TestSim_AddPrimitiveInvalidates(t *testing.T) {
	sim := New(scene.New(), DefaultConfig())
	defer sim.Close()

	unit := sim.AddViewer(mustViewer(t, 0, 0, 0))
	first := waitFrame(t, unit)
	if len(first.Stacks[2].Layers) != 0 {
		t.Fatal("Expected the empty scene to produce no layers")
	}

	red := color.NRGBA{R: 255, A: 255}
	sim.AddPrimitive(&scene.Primitive{
		Shape: geometry.NewCircle(geometry.Vec2{X: 20}, 5),
		Color: red,
	})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f, ok := unit.LatestFrame(); ok && len(f.Stacks[2].Layers) == 1 {
			if f.Stacks[2].Layers[0].Color != red {
				t.Fatalf("Expected red layer, got %v", f.Stacks[2].Layers[0].Color)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Expected the new primitive to show up in a recast frame")
}

func TestSim_RemovePrimitiveInvalidates(t *testing.T) {
	sc := scene.New()
	prim := &scene.Primitive{
		Shape: geometry.NewCircle(geometry.Vec2{X: 20}, 5),
		Color: color.NRGBA{R: 255, A: 255},
	}
	sc.Add(prim)

	sim := New(sc, DefaultConfig())
	defer sim.Close()

	unit := sim.AddViewer(mustViewer(t, 0, 0, 0))
	first := waitFrame(t, unit)
	if len(first.Stacks[2].Layers) != 1 {
		t.Fatal("Expected the circle to block the middle ray")
	}

	if !sim.RemovePrimitive(prim) {
		t.Fatal("Expected removal of a present primitive to succeed")
	}
	if sim.RemovePrimitive(prim) {
		t.Error("Expected second removal to report false")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f, ok := unit.LatestFrame(); ok && len(f.Stacks[2].Layers) == 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Expected the removal to trigger a recast")
}

func TestSim_EditSceneInvalidates(t *testing.T) {
	sc := scene.New()
	circle := geometry.NewCircle(geometry.Vec2{X: 0, Y: 200}, 5)
	sc.Add(&scene.Primitive{Shape: circle, Color: color.NRGBA{G: 255, A: 255}})

	sim := New(sc, DefaultConfig())
	defer sim.Close()

	unit := sim.AddViewer(mustViewer(t, 0, 0, 0))
	waitFrame(t, unit)

	// Drag the circle into the fan; units must notice without commands.
	sim.EditScene(func() {
		circle.Translate(geometry.Vec2{X: 20, Y: -200})
	})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f, ok := unit.LatestFrame(); ok && len(f.Stacks[2].Layers) == 1 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Expected the scene edit to trigger a recast")
}

func TestSim_RemoveViewer(t *testing.T) {
	sim := New(scene.New(), DefaultConfig())
	defer sim.Close()

	a := sim.AddViewer(mustViewer(t, 0, 0, 0))
	b := sim.AddViewer(mustViewer(t, 10, 0, 0))
	waitFrame(t, a)
	waitFrame(t, b)

	if !sim.RemoveViewer(a.ID()) {
		t.Fatal("Expected removal of a running unit to succeed")
	}
	if sim.RemoveViewer(a.ID()) {
		t.Error("Expected second removal to report false")
	}
	if sim.Len() != 1 {
		t.Errorf("Expected 1 unit left, got %d", sim.Len())
	}

	// The survivor keeps casting.
	b.Invalidate()
	waitFrame(t, b)
}

func TestSim_UnitsOrderedByID(t *testing.T) {
	sim := New(scene.New(), DefaultConfig())
	defer sim.Close()

	first := sim.AddViewer(mustViewer(t, 0, 0, 0))
	second := sim.AddViewer(mustViewer(t, 1, 0, 0))
	third := sim.AddViewer(mustViewer(t, 2, 0, 0))

	units := sim.Units()
	if len(units) != 3 {
		t.Fatalf("Expected 3 units, got %d", len(units))
	}
	if units[0] != first || units[1] != second || units[2] != third {
		t.Error("Expected units in insertion order")
	}
	if first.ID() >= second.ID() || second.ID() >= third.ID() {
		t.Error("Expected ascending unit ids")
	}
}

func TestSim_CloseStopsUnits(t *testing.T) {
	sim := New(scene.New(), DefaultConfig())
	unit := sim.AddViewer(mustViewer(t, 0, 0, 0))
	waitFrame(t, unit)

	sim.Close()
	if sim.Len() != 0 {
		t.Errorf("Expected no units after close, got %d", sim.Len())
	}
	if sim.AddViewer(mustViewer(t, 0, 0, 0)) != nil {
		t.Error("Expected AddViewer after Close to return nil")
	}

	// Close twice is fine.
	sim.Close()
}

func TestConfig_TurnRadians(t *testing.T) {
	cfg := Config{TurnSpeed: 90}
	if math.Abs(cfg.TurnRadians()-math.Pi/2) > 1e-9 {
		t.Errorf("Expected pi/2, got %f", cfg.TurnRadians())
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MoveSpeed != 10 || cfg.TurnSpeed != 10 {
		t.Errorf("Expected stock speeds of 10, got %+v", cfg)
	}
}
