package world

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/CCernusca/2d-rendering/internal/core/geometry"
	"github.com/CCernusca/2d-rendering/internal/core/viewer"
)

func TestDefinitionParsing(t *testing.T) {
	jsonData := `{
		"name": "test_scene",
		"width": 600,
		"height": 400,
		"background": {"r": 10, "g": 20, "b": 30, "a": 255},
		"groups": [
			{
				"x": 100,
				"y": 50,
				"color": {"r": 255, "g": 0, "b": 0, "a": 150},
				"shapes": [
					{"kind": "circle", "radius": 25},
					{"kind": "rect", "x": 50, "w": 40, "h": 20},
					{"kind": "segment", "x": -10, "y": -10, "x2": 10, "y2": 10}
				]
			}
		],
		"viewers": [
			{"x": 150, "y": 75, "heading": 90, "fov": 100, "rays": 64, "max_range": 200}
		]
	}`

	var def Definition
	if err := json.Unmarshal([]byte(jsonData), &def); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if def.Name != "test_scene" {
		t.Errorf("Expected name 'test_scene', got '%s'", def.Name)
	}
	if def.Width != 600 || def.Height != 400 {
		t.Errorf("Expected dimensions 600x400, got %dx%d", def.Width, def.Height)
	}
	if def.Background == nil || def.Background.B != 30 {
		t.Errorf("Expected background blue 30, got %+v", def.Background)
	}

	if len(def.Groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(def.Groups))
	}
	g := def.Groups[0]
	if g.X != 100 || g.Y != 50 {
		t.Errorf("Expected group at (100, 50), got (%f, %f)", g.X, g.Y)
	}
	if g.Color.A != 150 {
		t.Errorf("Expected group alpha 150, got %d", g.Color.A)
	}
	if len(g.Shapes) != 3 {
		t.Fatalf("Expected 3 shapes, got %d", len(g.Shapes))
	}
	if g.Shapes[0].Kind != KindCircle || g.Shapes[0].Radius != 25 {
		t.Errorf("Expected circle with radius 25, got %+v", g.Shapes[0])
	}
	if g.Shapes[1].Kind != KindRect || g.Shapes[1].W != 40 {
		t.Errorf("Expected rect with width 40, got %+v", g.Shapes[1])
	}
	if g.Shapes[2].Kind != KindSegment || g.Shapes[2].X2 != 10 {
		t.Errorf("Expected segment ending at x2=10, got %+v", g.Shapes[2])
	}

	if len(def.Viewers) != 1 {
		t.Fatalf("Expected 1 viewer, got %d", len(def.Viewers))
	}
	v := def.Viewers[0]
	if v.Heading != 90 || v.FOV != 100 || v.Rays != 64 {
		t.Errorf("Unexpected viewer definition: %+v", v)
	}
}

func TestLoadFromFile(t *testing.T) {
	tempFile, err := os.CreateTemp("", "world_test_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	sceneJSON := `{
		"name": "file_scene",
		"groups": [
			{"x": 0, "y": 0, "color": {"r": 255, "a": 255},
			 "shapes": [{"kind": "circle", "radius": 10}]}
		],
		"viewers": [
			{"x": 1, "y": 2, "heading": 0, "fov": 90, "rays": 3, "max_range": 50}
		]
	}`
	if _, err := tempFile.Write([]byte(sceneJSON)); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	tempFile.Close()

	def, err := Load(tempFile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if def.Name != "file_scene" {
		t.Errorf("Expected name 'file_scene', got '%s'", def.Name)
	}
	// Omitted dimensions fall back to the default world size.
	if def.Width != defaultWorldSize || def.Height != defaultWorldSize {
		t.Errorf("Expected default dimensions %dx%d, got %dx%d",
			defaultWorldSize, defaultWorldSize, def.Width, def.Height)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does_not_exist.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tempFile, err := os.CreateTemp("", "world_bad_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write([]byte("{not json")); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	tempFile.Close()

	if _, err := Load(tempFile.Name()); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestValidateRejects(t *testing.T) {
	valid := func() Definition {
		return Definition{
			Width:  500,
			Height: 500,
			Groups: []GroupDef{
				{Shapes: []ShapeDef{{Kind: KindCircle, Radius: 10}}},
			},
			Viewers: []ViewerDef{
				{FOV: 90, Rays: 3, MaxRange: 100},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Definition)
	}{
		{"ZeroRadius", func(d *Definition) { d.Groups[0].Shapes[0].Radius = 0 }},
		{"UnknownKind", func(d *Definition) { d.Groups[0].Shapes[0].Kind = "triangle" }},
		{"ZeroRectSize", func(d *Definition) {
			d.Groups[0].Shapes[0] = ShapeDef{Kind: KindRect, W: 0, H: 10}
		}},
		{"DegenerateSegment", func(d *Definition) {
			d.Groups[0].Shapes[0] = ShapeDef{Kind: KindSegment, X: 5, Y: 5, X2: 5, Y2: 5}
		}},
		{"NoRays", func(d *Definition) { d.Viewers[0].Rays = 0 }},
		{"NegativeRange", func(d *Definition) { d.Viewers[0].MaxRange = -1 }},
		{"NegativeWidth", func(d *Definition) { d.Width = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := valid()
			tt.mutate(&def)
			if err := def.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}

	def := valid()
	if err := def.Validate(); err != nil {
		t.Errorf("Expected valid definition to pass, got %v", err)
	}
}

func TestValidateWrapsViewerConfigError(t *testing.T) {
	def := Definition{
		Width:   500,
		Height:  500,
		Viewers: []ViewerDef{{FOV: 90, Rays: 0, MaxRange: 100}},
	}
	err := def.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !errors.Is(err, viewer.ErrInvalidConfig) {
		t.Errorf("Expected wrapped ErrInvalidConfig, got %v", err)
	}
}

func TestBuildProducesWorkingScene(t *testing.T) {
	def := Definition{
		Groups: []GroupDef{
			{
				X: 20, Y: 0,
				Color:  ColorDef{R: 255, A: 255},
				Shapes: []ShapeDef{{Kind: KindCircle, Radius: 5}},
			},
		},
		Viewers: []ViewerDef{
			{X: 0, Y: 0, Heading: 0, FOV: 90, Rays: 3, MaxRange: 100},
		},
	}

	sc, viewers, err := def.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if sc.Len() != 1 {
		t.Fatalf("Expected 1 primitive, got %d", sc.Len())
	}
	if len(viewers) != 1 {
		t.Fatalf("Expected 1 viewer, got %d", len(viewers))
	}

	// The middle ray of the fan looks straight along +X and should hit
	// the circle at distance 15 (center 20 minus radius 5).
	hits := viewers[0].Cast(sc)
	if len(hits) != 3 {
		t.Fatalf("Expected 3 hits, got %d", len(hits))
	}
	mid := hits[1]
	if !mid.OK {
		t.Fatal("Expected middle ray to hit the group circle")
	}
	if math.Abs(mid.Distance-15) > 1e-9 {
		t.Errorf("Expected distance 15, got %f", mid.Distance)
	}
	if mid.Color.R != 255 {
		t.Errorf("Expected red hit, got %+v", mid.Color)
	}
}

func TestBuildConvertsDegrees(t *testing.T) {
	def := Definition{
		Viewers: []ViewerDef{
			{X: 0, Y: 0, Heading: 180, FOV: 90, Rays: 3, MaxRange: 100},
		},
	}

	_, viewers, err := def.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if math.Abs(viewers[0].Heading()-math.Pi) > 1e-9 {
		t.Errorf("Expected heading pi, got %f", viewers[0].Heading())
	}
	if math.Abs(viewers[0].Config().FOV-math.Pi/2) > 1e-9 {
		t.Errorf("Expected fov pi/2, got %f", viewers[0].Config().FOV)
	}
}

func TestDefaultScene(t *testing.T) {
	def := Default()

	sc, viewers, err := def.Build()
	if err != nil {
		t.Fatalf("Failed to build default scene: %v", err)
	}

	if sc.Len() != 4 {
		t.Errorf("Expected 4 groups, got %d", sc.Len())
	}
	if len(viewers) != 2 {
		t.Fatalf("Expected 2 viewers, got %d", len(viewers))
	}

	first := viewers[0]
	if first.Pos != (geometry.Vec2{X: 150, Y: 75}) {
		t.Errorf("Expected first viewer at (150, 75), got %+v", first.Pos)
	}
	if first.Heading() != 0 {
		t.Errorf("Expected first viewer heading 0, got %f", first.Heading())
	}
	if first.Config().RayCount != 100 || first.Config().MaxRange != 200 {
		t.Errorf("Unexpected first viewer config: %+v", first.Config())
	}

	second := viewers[1]
	if math.Abs(second.Heading()-math.Pi) > 1e-9 {
		t.Errorf("Expected second viewer heading pi, got %f", second.Heading())
	}
	if second.Config().MaxRange != 100 {
		t.Errorf("Expected second viewer range 100, got %f", second.Config().MaxRange)
	}

	// One group is translucent so layered casts can see through it.
	translucent := 0
	for _, p := range sc.Snapshot().Primitives {
		if p.Translucent() {
			translucent++
		}
	}
	if translucent != 1 {
		t.Errorf("Expected exactly 1 translucent group, got %d", translucent)
	}
}

func TestBundledSceneFiles(t *testing.T) {
	configs := []string{
		"../../scenes/demo.json",
	}

	for _, configPath := range configs {
		if _, err := os.Stat(configPath); err != nil {
			t.Logf("Skipping %s (file not found, this is OK for unit tests)", configPath)
			continue
		}

		def, err := Load(configPath)
		if err != nil {
			t.Errorf("Failed to load %s: %v", configPath, err)
			continue
		}

		if _, _, err := def.Build(); err != nil {
			t.Errorf("Failed to build %s: %v", configPath, err)
		}
	}
}
