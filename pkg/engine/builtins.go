package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/pocket"
	zygo "github.com/glycerine/zygomys/zygo"
)

// defaultCircleSegments is the vertex count of (circle ...) without
// :segments.
const defaultCircleSegments = 64

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a geom.Point returned by `pt`.
type sexpPoint struct {
	p geom.Point
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(pt %g %g)", p.p.X, p.p.Y)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpCurve wraps a closed polyline built by `polygon`, `rect` or `circle`.
type sexpCurve struct {
	curve geom.Polyline
}

func (c *sexpCurve) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(polygon %d points)", c.curve.Len())
}
func (c *sexpCurve) Type() *zygo.RegisteredType { return nil }

// sexpJob refers to a declared pocket by name.
type sexpJob struct {
	name string
}

func (j *sexpJob) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(pocket %q)", j.name)
}
func (j *sexpJob) Type() *zygo.RegisteredType { return nil }

// jobSet collects pockets in declaration order.
type jobSet struct {
	defaults pocket.Options
	jobs     []pocket.Job
}

func (s *jobSet) has(name string) bool {
	for _, j := range s.jobs {
		if j.Name == name {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
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

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// A value that is itself a keyword (:direction :ccw) is taken as the value.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// Keyword at end with no value: treat as flag with nil.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
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

// toBool accepts true/false; a bare trailing keyword counts as true.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_cw) and plain strings ("cw").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

func toDirection(s zygo.Sexp) (geom.Direction, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return geom.CW, fmt.Errorf("expected direction keyword (:cw, :ccw, :mixed): %w", err)
	}
	return geom.ParseDirection(name)
}

func toPoint(s zygo.Sexp) (geom.Point, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.p, nil
	}
	return geom.Point{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

func toCurve(s zygo.Sexp) (geom.Polyline, error) {
	if c, ok := s.(*sexpCurve); ok {
		return c.curve, nil
	}
	return geom.Polyline{}, fmt.Errorf("expected polygon, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// numbers converts every arg to a float64.
func numbers(fn string, names []string, args []zygo.Sexp) ([]float64, error) {
	if len(args) != len(names) {
		return nil, fmt.Errorf("%s requires exactly %d arguments, got %d", fn, len(names), len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, names[i], err)
		}
		out[i] = f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the job DSL builtins into a zygomys environment.
// Declared pockets are appended to jobs.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, jobs *jobSet) {

	// -----------------------------------------------------------------------
	// (pt 10 20)
	// -----------------------------------------------------------------------
	env.AddFunction("pt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := numbers("pt", []string{"x", "y"}, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPoint{p: geom.Pt(v[0], v[1])}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon (pt 0 0) (pt 10 0) (pt 5 8)) or (polygon (list ...))
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		items := args
		if len(args) == 1 {
			if list, err := sexpListToSlice(args[0]); err == nil {
				items = list
			}
		}
		if len(items) < 3 {
			return zygo.SexpNull, fmt.Errorf("polygon requires at least 3 points, got %d", len(items))
		}
		pts := make([]geom.Point, 0, len(items))
		for i, item := range items {
			p, err := toPoint(item)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: point %d: %w", i, err)
			}
			pts = append(pts, p)
		}
		return &sexpCurve{curve: geom.Polygon(pts...)}, nil
	})

	// -----------------------------------------------------------------------
	// (rect x y w h)
	// -----------------------------------------------------------------------
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := numbers("rect", []string{"x", "y", "width", "height"}, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if v[2] <= 0 || v[3] <= 0 {
			return zygo.SexpNull, fmt.Errorf("rect: width and height must be positive, got %g x %g", v[2], v[3])
		}
		return &sexpCurve{curve: geom.Rectangle(v[0], v[1], v[2], v[3])}, nil
	})

	// -----------------------------------------------------------------------
	// (circle cx cy r :segments 64)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		v, err := numbers("circle", []string{"cx", "cy", "r"}, pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		if v[2] <= 0 {
			return zygo.SexpNull, fmt.Errorf("circle: radius must be positive, got %g", v[2])
		}
		n := defaultCircleSegments
		if s, ok := pa.kw["segments"]; ok {
			f, err := toFloat64(s)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: segments: %w", err)
			}
			if f < 3 {
				return zygo.SexpNull, fmt.Errorf("circle: segments must be at least 3, got %g", f)
			}
			n = int(f)
		}
		return &sexpCurve{curve: geom.RegularPolygon(geom.Pt(v[0], v[1]), v[2], n)}, nil
	})

	// -----------------------------------------------------------------------
	// (pocket "name" :outline (rect ...) :islands (list (circle ...))
	//         :tool-diameter 6 :stepover 0.4 :direction :ccw ...)
	// -----------------------------------------------------------------------
	env.AddFunction("pocket", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("pocket requires a name argument")
		}
		jobName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pocket: name: %w", err)
		}
		if jobs.has(jobName) {
			return zygo.SexpNull, fmt.Errorf("pocket: duplicate name %q", jobName)
		}

		job := pocket.Job{Name: jobName, Options: jobs.defaults}
		if err := applyPocketArgs(&job, pa.kw); err != nil {
			return zygo.SexpNull, fmt.Errorf("pocket %q: %w", jobName, err)
		}
		jobs.jobs = append(jobs.jobs, job)

		return &sexpJob{name: jobName}, nil
	})
}

// applyPocketArgs fills job from keyword arguments. Stepovers are given as
// fractions of the tool diameter; without them the default fractions are
// kept when the diameter changes.
func applyPocketArgs(job *pocket.Job, kw map[string]zygo.Sexp) error {
	o := &job.Options
	stepover, minStepover := 0.0, 0.0
	if o.ToolDiameter > 0 {
		stepover = o.MaxEngagement / o.ToolDiameter
		minStepover = o.MinEngagement / o.ToolDiameter
	}

	v, ok := kw["outline"]
	if !ok {
		return fmt.Errorf("missing :outline")
	}
	outline, err := toCurve(v)
	if err != nil {
		return fmt.Errorf("outline: %w", err)
	}
	job.Outline = outline

	if v, ok := kw["islands"]; ok {
		items, err := sexpListToSlice(v)
		if err != nil {
			return fmt.Errorf("islands: %w", err)
		}
		for i, item := range items {
			c, err := toCurve(item)
			if err != nil {
				return fmt.Errorf("island %d: %w", i, err)
			}
			job.Islands = append(job.Islands, c)
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"tool-diameter", &o.ToolDiameter},
		{"margin", &o.Margin},
		{"stepover", &stepover},
		{"min-stepover", &minStepover},
		{"tolerance", &o.Tolerance},
		{"lead-in", &o.LeadInAngle},
		{"lead-out", &o.LeadOutAngle},
	}
	for _, f := range floats {
		if v, ok := kw[f.key]; ok {
			x, err := toFloat64(v)
			if err != nil {
				return fmt.Errorf("%s: %w", f.key, err)
			}
			*f.dst = x
		}
	}
	if hasAny(kw, "tool-diameter", "stepover", "min-stepover") {
		o.MaxEngagement = stepover * o.ToolDiameter
		o.MinEngagement = minStepover * o.ToolDiameter
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"smooth", &o.SmoothChords},
		{"check-crossings", &o.CheckCrossings},
	}
	for _, b := range bools {
		if v, ok := kw[b.key]; ok {
			x, err := toBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", b.key, err)
			}
			*b.dst = x
		}
	}

	if v, ok := kw["direction"]; ok {
		d, err := toDirection(v)
		if err != nil {
			return fmt.Errorf("direction: %w", err)
		}
		o.Direction = d
	}
	if v, ok := kw["start"]; ok {
		p, err := toPoint(v)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		o.StartPoint = &p
	}
	return nil
}

func hasAny(kw map[string]zygo.Sexp, keys ...string) bool {
	for _, k := range keys {
		if _, ok := kw[k]; ok {
			return true
		}
	}
	return false
}
