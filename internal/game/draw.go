package game

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
	"github.com/CCernusca/2d-rendering/internal/core/project"
	"github.com/CCernusca/2d-rendering/internal/core/scene"
	"github.com/CCernusca/2d-rendering/internal/render"
)

// Draw renders the overview and all strip panels to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(color.RGBA{30, 30, 30, 255})

	g.drawOverview(screen)
	g.drawStrips(screen)
	if g.Debug {
		g.drawDebug(screen)
	}
}

// drawOverview paints the scene from above: all groups, then every
// viewer as a dot with its beam fan.
func (g *Game) drawOverview(screen render.Image) {
	ov := g.OverviewPanel
	view := g.Sim.Scene().Snapshot()

	g.Renderer.FillRect(screen, float32(ov.X), float32(ov.Y), float32(ov.W), float32(ov.H), view.Background)

	// Opaque groups go down first so translucent ones blend over them.
	prims := make([]scene.Primitive, len(view.Primitives))
	copy(prims, view.Primitives)
	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].Color.A > prims[j].Color.A
	})

	origin := geometry.Vec2{X: float64(ov.X), Y: float64(ov.Y)}
	for i := range prims {
		g.drawShape(screen, prims[i].Shape, origin, prims[i].Color)
	}

	g.drawViewers(screen, origin)
}

// drawShape draws one shape at its world position shifted by offset.
// Groups recurse with their own offset added.
func (g *Game) drawShape(screen render.Image, s geometry.Shape, offset geometry.Vec2, clr color.NRGBA) {
	switch sh := s.(type) {
	case *geometry.Circle:
		c := sh.Center.Add(offset)
		g.Renderer.FillCircle(screen, float32(c.X), float32(c.Y), float32(sh.Radius), clr)
	case *geometry.Rect:
		c := sh.Center.Add(offset)
		g.Renderer.FillRect(screen,
			float32(c.X-sh.W/2), float32(c.Y-sh.H/2),
			float32(sh.W), float32(sh.H), clr)
	case *geometry.Segment:
		a := sh.A.Add(offset)
		b := sh.B.Add(offset)
		g.Renderer.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, clr)
	case *geometry.Group:
		inner := offset.Add(sh.Offset)
		for _, child := range sh.Shapes {
			g.drawShape(screen, child, inner, clr)
		}
	}
}

// drawViewers marks each viewer's last known pose and, when enabled,
// its beam fan up to each beam's end point.
func (g *Game) drawViewers(screen render.Image, origin geometry.Vec2) {
	for _, u := range g.Sim.Units() {
		f, ok := g.frames[u.ID()]
		if !ok {
			continue
		}
		pos := f.Viewer.Pos.Add(origin)

		if g.ShowRays {
			for _, stack := range f.Stacks {
				end := stack.End.Add(origin)
				g.Renderer.StrokeLine(screen,
					float32(pos.X), float32(pos.Y),
					float32(end.X), float32(end.Y),
					1, color.RGBA{255, 255, 255, 255})
			}
		}

		g.Renderer.FillCircle(screen, float32(pos.X), float32(pos.Y), viewerDotRadius, color.RGBA{255, 255, 255, 255})
		if u.ID() == g.Selected {
			g.Renderer.StrokeCircle(screen, float32(pos.X), float32(pos.Y), viewerDotRadius+3, 1, color.RGBA{255, 220, 0, 255})
		}
	}
}

// drawStrips blits each unit's projected strip, scaled from its ray
// count to the panel size.
func (g *Game) drawStrips(screen render.Image) {
	for _, u := range g.Sim.Units() {
		id := u.ID()
		p, ok := g.stripPanels[id]
		if !ok {
			continue
		}

		g.Renderer.FillRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), color.RGBA{0, 0, 0, 255})

		if f, ok := g.frames[id]; ok && f.Strip != nil && f.Strip.Width() > 0 {
			tex := g.stripTexture(id, f.Strip.Width())
			tex.WritePixels(stripPixels(f.Strip))

			opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
			opts.GeoM.Scale(float64(p.W)/float64(f.Strip.Width()), float64(p.H))
			opts.GeoM.Translate(float64(p.X), float64(p.Y))
			screen.DrawImage(tex, opts)
		}

		if id == g.Selected {
			g.Renderer.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), 2, color.RGBA{255, 220, 0, 255})
		} else {
			g.Renderer.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), 1, color.RGBA{90, 90, 90, 255})
		}

		g.Renderer.DrawText(screen, fmt.Sprintf("viewer %d", id), p.X+4, p.Y+2, color.RGBA{255, 255, 255, 255}, 1.0)
	}
}

// stripTexture returns the cached upload texture for a unit, recreated
// when the viewer's ray count changes.
func (g *Game) stripTexture(id, width int) render.Image {
	if tex, ok := g.stripTextures[id]; ok {
		if w, _ := tex.Size(); w == width {
			return tex
		}
		tex.Dispose()
	}
	tex := g.Renderer.NewImage(width, 1)
	g.stripTextures[id] = tex
	return tex
}

// stripPixels converts a projected strip to premultiplied RGBA bytes
// for upload.
func stripPixels(img *project.Image) []byte {
	pix := make([]byte, 4*len(img.Columns))
	for i, c := range img.Columns {
		a := uint32(c.A)
		pix[4*i+0] = uint8(uint32(c.R) * a / 255)
		pix[4*i+1] = uint8(uint32(c.G) * a / 255)
		pix[4*i+2] = uint8(uint32(c.B) * a / 255)
		pix[4*i+3] = c.A
	}
	return pix
}

// drawDebug prints the frame rate and the selected viewer's pose over
// the overview.
func (g *Game) drawDebug(screen render.Image) {
	f, ok := g.frames[g.Selected]
	if !ok {
		return
	}
	st := f.Viewer
	text := fmt.Sprintf("fps %.0f  viewer %d  pos (%.1f, %.1f)  heading %.1f  rays %d",
		g.Renderer.ActualFPS(), g.Selected, st.Pos.X, st.Pos.Y, st.Heading*180/math.Pi, st.Config.RayCount)
	g.Renderer.DrawText(screen, text, 4, 4, color.RGBA{0, 255, 0, 255}, 1.0)
}
