// Package game composites the simulation into one window: a bird's eye
// overview of the scene on top and one projected strip per viewer below
// it. Input goes to the selected viewer's simulation unit.
package game

import (
	"log"
	"math"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
	"github.com/CCernusca/2d-rendering/internal/core/viewer"
	"github.com/CCernusca/2d-rendering/internal/render"
	"github.com/CCernusca/2d-rendering/internal/simulation"
	"github.com/CCernusca/2d-rendering/internal/world"
)

// newViewerConfig is used for viewers placed with the mouse at runtime.
var newViewerConfig = viewer.Config{
	FOV:      100 * math.Pi / 180,
	RayCount: 100,
	MaxRange: 200,
}

// Game holds the window state and routes input to the simulation.
type Game struct {
	Sim      *simulation.Sim
	Def      *world.Definition
	Renderer render.Renderer
	InputMgr render.InputManager

	ShowRays    bool
	StripHeight int
	Debug       bool

	// Selected is the unit receiving movement commands.
	Selected int

	OverviewPanel Panel
	stripPanels   map[int]Panel

	frames        map[int]*simulation.Frame
	stripTextures map[int]render.Image
}

// New builds the scene a definition describes, starts one simulation
// unit per viewer and returns the game around them.
func New(r render.Renderer, input render.InputManager, def *world.Definition, cfg simulation.Config, opts Options) (*Game, error) {
	sc, viewers, err := def.Build()
	if err != nil {
		return nil, err
	}

	sim := simulation.New(sc, cfg)
	g := &Game{
		Sim:           sim,
		Def:           def,
		Renderer:      r,
		InputMgr:      input,
		ShowRays:      opts.ShowRays,
		StripHeight:   opts.StripHeight,
		Debug:         opts.Debug,
		OverviewPanel: Panel{X: 0, Y: 0, W: def.Width, H: def.Height},
		stripPanels:   make(map[int]Panel),
		frames:        make(map[int]*simulation.Frame),
		stripTextures: make(map[int]render.Image),
	}
	if g.StripHeight <= 0 {
		g.StripHeight = defaultStripHeight
	}

	for _, v := range viewers {
		unit := sim.AddViewer(v)
		if g.Selected == 0 {
			g.Selected = unit.ID()
		}
	}

	return g, nil
}

// Close stops all simulation units.
func (g *Game) Close() {
	g.Sim.Close()
}

// Update handles input and collects finished frames.
func (g *Game) Update() error {
	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}

	g.layoutPanels()
	g.handleSelection()
	g.handleViewerEdits()
	g.handleMovement()
	g.collectFrames()
	return nil
}

// Layout returns the logical screen size: the overview plus one strip
// row per live viewer.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.Def.Width
	h := g.Def.Height + g.Sim.Len()*(g.StripHeight+stripPad)
	return w, h
}

// layoutPanels recomputes the strip panel rectangles below the
// overview, in unit order.
func (g *Game) layoutPanels() {
	g.stripPanels = make(map[int]Panel)
	y := g.Def.Height + stripPad
	for _, u := range g.Sim.Units() {
		g.stripPanels[u.ID()] = Panel{X: 0, Y: y, W: g.Def.Width, H: g.StripHeight}
		y += g.StripHeight + stripPad
	}
}

var digitKeys = []render.Key{
	render.KeyDigit1, render.KeyDigit2, render.KeyDigit3,
	render.KeyDigit4, render.KeyDigit5, render.KeyDigit6,
	render.KeyDigit7, render.KeyDigit8, render.KeyDigit9,
}

// handleSelection switches the selected viewer via Tab, the digit keys
// or a click on a strip panel.
func (g *Game) handleSelection() {
	units := g.Sim.Units()
	if len(units) == 0 {
		return
	}

	if g.InputMgr.IsKeyJustPressed(render.KeyTab) {
		next := units[0].ID()
		for i, u := range units {
			if u.ID() == g.Selected {
				next = units[(i+1)%len(units)].ID()
				break
			}
		}
		g.Selected = next
	}

	for i, key := range digitKeys {
		if i < len(units) && g.InputMgr.IsKeyJustPressed(key) {
			g.Selected = units[i].ID()
		}
	}

	if g.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		x, y := g.InputMgr.GetCursorPosition()
		for id, p := range g.stripPanels {
			if p.Contains(x, y) {
				g.Selected = id
			}
		}
	}
}

// handleViewerEdits removes the selected viewer with R and places a new
// one with a right click on the overview.
func (g *Game) handleViewerEdits() {
	if g.InputMgr.IsKeyJustPressed(render.KeyR) {
		if g.Sim.RemoveViewer(g.Selected) {
			log.Printf("Removed viewer %d", g.Selected)
			g.dropViewerState(g.Selected)
			g.Selected = 0
			if units := g.Sim.Units(); len(units) > 0 {
				g.Selected = units[0].ID()
			}
		}
	}

	if g.InputMgr.IsMouseButtonJustPressed(render.MouseButtonRight) {
		x, y := g.InputMgr.GetCursorPosition()
		if !g.OverviewPanel.Contains(x, y) {
			return
		}
		pos := geometry.Vec2{
			X: float64(x - g.OverviewPanel.X),
			Y: float64(y - g.OverviewPanel.Y),
		}
		v, err := viewer.New(pos, 0, newViewerConfig)
		if err != nil {
			log.Printf("Failed to create viewer: %v", err)
			return
		}
		if unit := g.Sim.AddViewer(v); unit != nil {
			log.Printf("Added viewer %d at (%.0f, %.0f)", unit.ID(), pos.X, pos.Y)
			g.Selected = unit.ID()
		}
	}
}

// handleMovement turns key presses into pose commands for the selected
// unit. Each press moves or turns one step, like the viewers' original
// discrete controls.
func (g *Game) handleMovement() {
	unit, ok := g.Sim.Unit(g.Selected)
	if !ok {
		return
	}

	cfg := g.Sim.Config()
	var cmd simulation.Command
	if g.InputMgr.IsKeyJustPressed(render.KeyW) {
		cmd.Forward = cfg.MoveSpeed
	} else if g.InputMgr.IsKeyJustPressed(render.KeyS) {
		cmd.Forward = -cfg.MoveSpeed
	} else if g.InputMgr.IsKeyJustPressed(render.KeyA) {
		cmd.Strafe = -cfg.MoveSpeed
	} else if g.InputMgr.IsKeyJustPressed(render.KeyD) {
		cmd.Strafe = cfg.MoveSpeed
	} else if g.InputMgr.IsKeyJustPressed(render.KeyQ) {
		cmd.Turn = -cfg.TurnRadians()
	} else if g.InputMgr.IsKeyJustPressed(render.KeyE) {
		cmd.Turn = cfg.TurnRadians()
	} else {
		return
	}

	if !unit.Send(cmd) {
		log.Printf("Viewer %d is busy, command dropped", g.Selected)
	}
}

// collectFrames pulls the newest finished frame from every unit. Units
// without news keep their previous frame on screen.
func (g *Game) collectFrames() {
	for _, u := range g.Sim.Units() {
		if f, ok := u.LatestFrame(); ok {
			g.frames[u.ID()] = f
		}
	}
}

// dropViewerState forgets cached frames and textures of a removed unit.
func (g *Game) dropViewerState(id int) {
	delete(g.frames, id)
	if tex, ok := g.stripTextures[id]; ok {
		tex.Dispose()
		delete(g.stripTextures, id)
	}
}
