// Package project turns cast results into one-dimensional strip
// images: one pixel column per ray, darkened with distance. This is
// the "what the viewer sees" half of the simulation output.
package project

import (
	"image/color"

	"github.com/CCernusca/2d-rendering/internal/core/viewer"
)

// Projector converts hit records into pixel columns. It carries the
// same range and floor the viewer cast with.
type Projector struct {
	MaxRange      float64
	MinBrightness float64
}

// FromConfig derives a projector from a viewer configuration.
func FromConfig(cfg viewer.Config) Projector {
	return Projector{MaxRange: cfg.MaxRange, MinBrightness: cfg.MinBrightness}
}

// Image is a one-pixel-high strip, one column per ray, left to right.
// An Image is created per projection and never mutated afterwards.
type Image struct {
	Columns []color.NRGBA
}

// Width returns the number of columns.
func (img *Image) Width() int {
	return len(img.Columns)
}

// Pix returns the strip as straight-alpha RGBA bytes, four per column,
// for an N x 1 pixel upload.
func (img *Image) Pix() []byte {
	pix := make([]byte, 4*len(img.Columns))
	for i, c := range img.Columns {
		pix[4*i+0] = c.R
		pix[4*i+1] = c.G
		pix[4*i+2] = c.B
		pix[4*i+3] = c.A
	}
	return pix
}

// Brightness returns the distance falloff factor: 1 at zero distance,
// falling linearly to the floor at max range. The result is always
// inside [MinBrightness, 1].
func (p Projector) Brightness(distance float64) float64 {
	b := 1 - distance/p.MaxRange
	if b < p.MinBrightness {
		b = p.MinBrightness
	}
	if b > 1 {
		b = 1
	}
	return b
}

// Project converts one hit per ray into one shaded column per ray, in
// ray order. Hit columns keep their primitive's alpha; misses keep the
// background color unshaded. Pure function of its input.
func (p Projector) Project(hits []viewer.RayHit) *Image {
	img := &Image{Columns: make([]color.NRGBA, len(hits))}
	for i, h := range hits {
		if !h.OK {
			img.Columns[i] = h.Color
			continue
		}
		img.Columns[i] = p.shade(h.Color, h.Distance)
	}
	return img
}

// ProjectLayered composites layered cast results back to front over the
// background, so translucent surfaces tint what lies behind them. The
// resulting columns are fully opaque.
func (p Projector) ProjectLayered(stacks []viewer.RayStack, background color.NRGBA) *Image {
	img := &Image{Columns: make([]color.NRGBA, len(stacks))}
	for i, stack := range stacks {
		out := background
		for j := len(stack.Layers) - 1; j >= 0; j-- {
			l := stack.Layers[j]
			out = blend(p.shade(l.Color, l.Distance), out)
		}
		out.A = 255
		img.Columns[i] = out
	}
	return img
}

// shade darkens RGB by the distance falloff and preserves alpha.
func (p Projector) shade(c color.NRGBA, distance float64) color.NRGBA {
	b := p.Brightness(distance)
	return color.NRGBA{
		R: uint8(float64(c.R) * b),
		G: uint8(float64(c.G) * b),
		B: uint8(float64(c.B) * b),
		A: c.A,
	}
}

// blend composites src over dst with straight alpha.
func blend(src, dst color.NRGBA) color.NRGBA {
	a := float64(src.A) / 255
	return color.NRGBA{
		R: uint8(float64(src.R)*a + float64(dst.R)*(1-a)),
		G: uint8(float64(src.G)*a + float64(dst.G)*(1-a)),
		B: uint8(float64(src.B)*a + float64(dst.B)*(1-a)),
		A: 255,
	}
}
