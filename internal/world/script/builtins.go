package script

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/CCernusca/2d-rendering/internal/world"
)

// kwPrefix marks keyword arguments after preprocessing.
const kwPrefix = "__kw_"

// preprocessSource rewrites scene script source into a form zygomys
// accepts. Three rewrites happen outside strings:
//
//   - :keyword becomes the string literal "__kw_keyword", so builtins
//     can spot keyword arguments without registering global symbols
//   - ; line comments become // comments, which is what zygomys parses
//   - a hyphen between identifier characters becomes an underscore,
//     since zygomys reads a bare hyphen as subtraction
//
// The := assignment operator and hyphens inside :keywords are left
// alone.
func preprocessSource(source string) string {
	out := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"' || b[i] == '`':
			quote := b[i]
			out = append(out, b[i])
			i++
			for i < len(b) && b[i] != quote {
				if quote == '"' && b[i] == '\\' && i+1 < len(b) {
					out = append(out, b[i], b[i+1])
					i += 2
					continue
				}
				out = append(out, b[i])
				i++
			}
			if i < len(b) {
				out = append(out, b[i])
				i++
			}

		case b[i] == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}

		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2

		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKeywordChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j

		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++

		default:
			out = append(out, b[i])
			i++
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKeywordChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// sexpShape carries a shape definition between builtins, from circle,
// rect or segment into group.
type sexpShape struct {
	def world.ShapeDef
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	switch s.def.Kind {
	case world.KindCircle:
		return fmt.Sprintf("(circle :x %.1f :y %.1f :r %.1f)", s.def.X, s.def.Y, s.def.Radius)
	case world.KindRect:
		return fmt.Sprintf("(rect :x %.1f :y %.1f :w %.1f :h %.1f)", s.def.X, s.def.Y, s.def.W, s.def.H)
	case world.KindSegment:
		return fmt.Sprintf("(segment :x %.1f :y %.1f :x2 %.1f :y2 %.1f)", s.def.X, s.def.Y, s.def.X2, s.def.Y2)
	}
	return fmt.Sprintf("(shape %q)", s.def.Kind)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpColor carries a color value produced by the color builtin.
type sexpColor struct {
	def world.ColorDef
}

func (c *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(color %d %d %d %d)", c.def.R, c.def.G, c.def.B, c.def.A)
}
func (c *sexpColor) Type() *zygo.RegisteredType { return nil }

// isKW reports whether a Sexp is a preprocessed keyword string,
// returning the keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs is a parsed mixed positional and keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs splits args into keyword and positional arguments. A
// trailing keyword with no value is recorded as nil.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// toFloat64 extracts a number from a Sexp.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toColor accepts either a value from the color builtin or an array of
// 3 or 4 numeric components.
func toColor(s zygo.Sexp) (world.ColorDef, error) {
	switch v := s.(type) {
	case *sexpColor:
		return v.def, nil
	case *zygo.SexpArray:
		return colorFromSexps(v.Val)
	}
	return world.ColorDef{}, fmt.Errorf("expected color, got %T (%s)", s, s.SexpString(nil))
}

// colorFromSexps builds a color from numeric components. Alpha
// defaults to opaque when omitted.
func colorFromSexps(items []zygo.Sexp) (world.ColorDef, error) {
	if len(items) != 3 && len(items) != 4 {
		return world.ColorDef{}, fmt.Errorf("color needs 3 or 4 components, got %d", len(items))
	}
	vals := [4]uint8{0, 0, 0, 255}
	for i, item := range items {
		f, err := toFloat64(item)
		if err != nil {
			return world.ColorDef{}, fmt.Errorf("color component %d: %w", i, err)
		}
		if f < 0 || f > 255 {
			return world.ColorDef{}, fmt.Errorf("color component %d out of range: %v", i, f)
		}
		vals[i] = uint8(f)
	}
	return world.ColorDef{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}

// numArg copies a numeric keyword argument into dst when present.
func numArg(pa kwArgs, fn, name string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, name, err)
	}
	*dst = f
	return nil
}

// intArg copies an integer keyword argument into dst when present.
func intArg(pa kwArgs, fn, name string, dst *int) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, name, err)
	}
	*dst = int(f)
	return nil
}

// registerBuiltins installs the scene DSL into a zygomys environment.
// The builtins append groups and viewers to def as the script runs.
//
// Source must be preprocessed with preprocessSource first so that
// :keyword tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, def *world.Definition) {

	// (color 255 0 0 150) with alpha optional.
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		c, err := colorFromSexps(args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpColor{def: c}, nil
	})

	// (circle :x 0 :y 0 :r 50), with :radius accepted as an alias.
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sd := world.ShapeDef{Kind: world.KindCircle}
		for _, field := range []struct {
			name string
			dst  *float64
		}{
			{"x", &sd.X}, {"y", &sd.Y}, {"r", &sd.Radius}, {"radius", &sd.Radius},
		} {
			if err := numArg(pa, "circle", field.name, field.dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpShape{def: sd}, nil
	})

	// (rect :x 50 :y 0 :w 100 :h 100)
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sd := world.ShapeDef{Kind: world.KindRect}
		for _, field := range []struct {
			name string
			dst  *float64
		}{
			{"x", &sd.X}, {"y", &sd.Y}, {"w", &sd.W}, {"h", &sd.H},
		} {
			if err := numArg(pa, "rect", field.name, field.dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpShape{def: sd}, nil
	})

	// (segment :x 0 :y 0 :x2 10 :y2 10), with :x1/:y1 accepted for the
	// first endpoint.
	env.AddFunction("segment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sd := world.ShapeDef{Kind: world.KindSegment}
		for _, field := range []struct {
			name string
			dst  *float64
		}{
			{"x", &sd.X}, {"y", &sd.Y}, {"x1", &sd.X}, {"y1", &sd.Y},
			{"x2", &sd.X2}, {"y2", &sd.Y2},
		} {
			if err := numArg(pa, "segment", field.name, field.dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		return &sexpShape{def: sd}, nil
	})

	// (group :x 325 :y 75 :color [255 0 0 150] (circle :r 50) ...)
	// Shapes are positional; their coordinates are local to the group.
	env.AddFunction("group", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		gd := world.GroupDef{}

		if err := numArg(pa, "group", "x", &gd.X); err != nil {
			return zygo.SexpNull, err
		}
		if err := numArg(pa, "group", "y", &gd.Y); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["color"]; ok {
			c, err := toColor(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("group: color: %w", err)
			}
			gd.Color = c
		}

		for i, p := range pa.positional {
			sh, ok := p.(*sexpShape)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("group: shape %d: expected shape expression, got %T (%s)",
					i, p, p.SexpString(nil))
			}
			gd.Shapes = append(gd.Shapes, sh.def)
		}

		def.Groups = append(def.Groups, gd)
		return zygo.SexpNull, nil
	})

	// (viewer :x 150 :y 75 :heading 0 :fov 100 :rays 100 :max-range 200)
	// Angles are in degrees, like in JSON scene files. :range is an
	// alias for :max-range.
	env.AddFunction("viewer", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		vd := world.ViewerDef{}

		for _, field := range []struct {
			name string
			dst  *float64
		}{
			{"x", &vd.X}, {"y", &vd.Y}, {"heading", &vd.Heading}, {"fov", &vd.FOV},
			{"range", &vd.MaxRange}, {"max-range", &vd.MaxRange},
			{"min-brightness", &vd.MinBrightness},
		} {
			if err := numArg(pa, "viewer", field.name, field.dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		if err := intArg(pa, "viewer", "rays", &vd.Rays); err != nil {
			return zygo.SexpNull, err
		}

		def.Viewers = append(def.Viewers, vd)
		return zygo.SexpNull, nil
	})

	// (background 20 20 30) or (background [20 20 30 255])
	env.AddFunction("background", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		var c world.ColorDef
		var err error
		if len(args) == 1 {
			c, err = toColor(args[0])
		} else {
			c, err = colorFromSexps(args)
		}
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("background: %w", err)
		}
		def.Background = &c
		return zygo.SexpNull, nil
	})

	// (world :name "demo" :width 500 :height 500)
	env.AddFunction("world", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("world: name: %w", err)
			}
			def.Name = s
		}
		if err := intArg(pa, "world", "width", &def.Width); err != nil {
			return zygo.SexpNull, err
		}
		if err := intArg(pa, "world", "height", &def.Height); err != nil {
			return zygo.SexpNull, err
		}

		return zygo.SexpNull, nil
	})
}
