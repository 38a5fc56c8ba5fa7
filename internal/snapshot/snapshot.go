// Package snapshot renders a scene definition into a standalone image:
// the bird's-eye overview on top and one projected strip per viewer
// below, the same composite the interactive window shows. Everything is
// rasterized on the CPU, so snapshots work without a display.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"sort"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
	"github.com/CCernusca/2d-rendering/internal/core/project"
	"github.com/CCernusca/2d-rendering/internal/core/scene"
	"github.com/CCernusca/2d-rendering/internal/world"
)

const (
	// DefaultStripHeight matches the interactive window's strip rows.
	DefaultStripHeight = 50

	stripPad        = 4
	viewerDotRadius = 5
)

var (
	frameColor  = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	markerColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Options select what the snapshot includes.
type Options struct {
	// StripHeight is the height of each viewer strip row. Zero falls
	// back to DefaultStripHeight.
	StripHeight int
	// ShowBeams draws every cast beam on the overview.
	ShowBeams bool
}

// Render rasterizes def into a single image. The overview fills the
// top def.Width x def.Height area; one strip row per viewer follows
// below, in definition order.
func Render(def *world.Definition, opts Options) (*image.RGBA, error) {
	sc, viewers, err := def.Build()
	if err != nil {
		return nil, err
	}
	stripH := opts.StripHeight
	if stripH <= 0 {
		stripH = DefaultStripHeight
	}

	width := def.Width
	height := def.Height + len(viewers)*(stripH+stripPad)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(frameColor), image.Point{}, draw.Src)

	view := sc.Snapshot()
	drawOverview(img, view, def)

	// One cast per viewer feeds both the overview markers and the strip.
	y := def.Height + stripPad
	for _, v := range viewers {
		stacks := v.CastLayeredView(view)
		if opts.ShowBeams {
			for _, stack := range stacks {
				drawLine(img, v.Pos, stack.End, markerColor)
			}
		}
		fillCircle(img, v.Pos, viewerDotRadius, markerColor)

		proj := project.FromConfig(v.Config())
		strip := proj.ProjectLayered(stacks, view.Background)
		drawStrip(img, strip, image.Rect(0, y, width, y+stripH))
		y += stripH + stripPad
	}

	return img, nil
}

// Write renders def and saves the result as a PNG file.
func Write(def *world.Definition, opts Options, path string) error {
	img, err := Render(def, opts)
	if err != nil {
		return err
	}
	return SavePNG(img, path)
}

// SavePNG saves an image to a PNG file.
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()
	return png.Encode(file, img)
}

// drawOverview fills the scene area with the background and paints the
// primitives. Opaque groups go down first so translucent ones blend
// over them.
func drawOverview(img *image.RGBA, view scene.View, def *world.Definition) {
	blendRect(img, 0, 0, def.Width, def.Height, view.Background)

	prims := make([]scene.Primitive, len(view.Primitives))
	copy(prims, view.Primitives)
	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].Color.A > prims[j].Color.A
	})
	for _, p := range prims {
		drawShape(img, p.Shape, p.Color)
	}
}

// drawShape paints one shape in world coordinates. Groups recurse with
// their offset applied, the same placement the cast sees.
func drawShape(img *image.RGBA, shape geometry.Shape, col color.NRGBA) {
	switch s := shape.(type) {
	case *geometry.Circle:
		fillCircle(img, s.Center, s.Radius, col)
	case *geometry.Rect:
		min := s.Center.Subtract(geometry.Vec2{X: s.W / 2, Y: s.H / 2})
		blendRect(img, int(min.X), int(min.Y), int(min.X+s.W), int(min.Y+s.H), col)
	case *geometry.Segment:
		drawLine(img, s.A, s.B, col)
	case *geometry.Group:
		for _, inner := range s.Shapes {
			shifted := inner.Clone()
			shifted.Translate(s.Offset)
			drawShape(img, shifted, col)
		}
	}
}

// drawStrip scales a one-pixel-high strip across rect, one nearest
// source column per destination column.
func drawStrip(img *image.RGBA, strip *project.Image, rect image.Rectangle) {
	n := strip.Width()
	if n == 0 {
		return
	}
	w := rect.Dx()
	for px := 0; px < w; px++ {
		c := strip.Columns[px*n/w]
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			blendPixel(img, rect.Min.X+px, y, c)
		}
	}
}

// fillCircle paints a disc, testing pixel centers against the radius.
func fillCircle(img *image.RGBA, center geometry.Vec2, radius float64, col color.NRGBA) {
	x0 := int(math.Floor(center.X - radius))
	x1 := int(math.Ceil(center.X + radius))
	y0 := int(math.Floor(center.Y - radius))
	y1 := int(math.Ceil(center.Y + radius))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - center.X
			dy := float64(y) + 0.5 - center.Y
			if dx*dx+dy*dy <= radius*radius {
				blendPixel(img, x, y, col)
			}
		}
	}
}

func blendRect(img *image.RGBA, x0, y0, x1, y1 int, col color.NRGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			blendPixel(img, x, y, col)
		}
	}
}

// drawLine paints a one-pixel line by stepping along the longer axis.
func drawLine(img *image.RGBA, a, b geometry.Vec2, col color.NRGBA) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		blendPixel(img, int(a.X), int(a.Y), col)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(a.X + dx*t))
		y := int(math.Round(a.Y + dy*t))
		blendPixel(img, x, y, col)
	}
}

// blendPixel composites col over the pixel with straight alpha.
// Coordinates outside the image are skipped. Every pixel stays fully
// opaque, so the premultiplied store needs no extra conversion.
func blendPixel(img *image.RGBA, x, y int, col color.NRGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	if col.A == 255 {
		img.SetRGBA(x, y, color.RGBA{R: col.R, G: col.G, B: col.B, A: 255})
		return
	}
	dst := img.RGBAAt(x, y)
	a := float64(col.A) / 255
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(col.R)*a + float64(dst.R)*(1-a)),
		G: uint8(float64(col.G)*a + float64(dst.G)*(1-a)),
		B: uint8(float64(col.B)*a + float64(dst.B)*(1-a)),
		A: 255,
	})
}
