package world

// Default returns the built-in demo scene: four colored groups, one of
// them translucent, watched by two viewers with different fields of
// view.
func Default() *Definition {
	return &Definition{
		Name:   "demo",
		Width:  defaultWorldSize,
		Height: defaultWorldSize,
		Viewers: []ViewerDef{
			{X: 150, Y: 75, Heading: 0, FOV: 100, Rays: 100, MaxRange: 200},
			{X: 450, Y: 200, Heading: 180, FOV: 200, Rays: 100, MaxRange: 100},
		},
		Groups: []GroupDef{
			{
				X: 325, Y: 75, Color: ColorDef{R: 255, A: 150},
				Shapes: []ShapeDef{{Kind: KindCircle, Radius: 50}},
			},
			{
				X: 325, Y: 325, Color: ColorDef{B: 255, A: 255},
				Shapes: []ShapeDef{
					{Kind: KindCircle, Radius: 50},
					{Kind: KindRect, X: 50, W: 100, H: 100},
				},
			},
			{
				X: 75, Y: 325, Color: ColorDef{G: 255, A: 255},
				Shapes: []ShapeDef{{Kind: KindRect, W: 100, H: 100}},
			},
			{
				X: 375, Y: 75, Color: ColorDef{R: 255, G: 255, A: 255},
				Shapes: []ShapeDef{{Kind: KindCircle, Radius: 50}},
			},
		},
	}
}
