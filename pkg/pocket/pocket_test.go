package pocket_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/kernel"
	"github.com/chazu/trochomill/pkg/kernel/sdfx"
	"github.com/chazu/trochomill/pkg/pocket"
)

func rectJob(w, h, tool float64) pocket.Job {
	opts := pocket.DefaultOptions()
	opts.ToolDiameter = tool
	opts.MaxEngagement = 0.4 * tool
	opts.MinEngagement = 0.1 * tool
	return pocket.Job{Name: "rect", Outline: geom.Rectangle(0, 0, w, h), Options: opts}
}

func run(t *testing.T, job pocket.Job) *pocket.Result {
	t.Helper()
	res, err := pocket.New(sdfx.New()).Run(job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

// ---------------------------------------------------------------------------
// Rectangle pocket
// ---------------------------------------------------------------------------

func TestRectanglePocket(t *testing.T) {
	job := rectJob(40, 20, 6)
	job.Options.Margin = 0.5
	res := run(t, job)
	if res.Empty() {
		t.Fatalf("empty result, warnings: %v", res.Warnings)
	}

	clearance := job.Options.ToolRadius() + job.Options.Margin
	for _, sl := range res.Slices {
		c := sl.Center()
		wall := math.Min(math.Min(c.X, 40-c.X), math.Min(c.Y, 20-c.Y))
		if wall < clearance-1e-6 {
			t.Errorf("%v is %v from the wall, want at least %v", sl, wall, clearance)
		}
		if !sl.IsRoot() && sl.Engagement > job.Options.MaxEngagement+job.Options.Tolerance {
			t.Errorf("%v exceeds the stepover", sl)
		}
	}
	if !res.Path.End().Equal(res.Start, job.Options.Tolerance) {
		t.Errorf("path ends at %v, want base point %v", res.Path.End(), res.Start)
	}
	if !res.Path.Start().Equal(res.Start, job.Options.Tolerance) {
		t.Errorf("path starts at %v, want %v", res.Path.Start(), res.Start)
	}
	if math.Abs(res.Start.Y-10) > 0.5 {
		t.Errorf("start %v is not on the long axis", res.Start)
	}
	if gaps := res.Path.Gaps(job.Options.Tolerance); len(gaps) != 0 {
		t.Errorf("path has gaps at %v", gaps)
	}
}

func TestSmoothPocketIsConnected(t *testing.T) {
	job := rectJob(30, 30, 4)
	job.Options.SmoothChords = true
	job.Options.Direction = geom.CCW
	res := run(t, job)
	if res.Empty() {
		t.Fatalf("empty result, warnings: %v", res.Warnings)
	}
	if gaps := res.Path.Gaps(job.Options.Tolerance); len(gaps) != 0 {
		t.Errorf("path has gaps at %v", gaps)
	}
	for _, a := range res.Path.Arcs() {
		if a.Dir() != geom.CCW && math.Abs(a.Sweep) > math.Pi {
			t.Errorf("unexpected major clockwise arc %+v", a)
		}
	}
}

// ---------------------------------------------------------------------------
// Islands
// ---------------------------------------------------------------------------

func TestSingleIsland(t *testing.T) {
	job := rectJob(40, 40, 4)
	island := geom.Rectangle(15, 15, 10, 10)
	job.Islands = []geom.Polyline{island}
	res := run(t, job)
	if res.Empty() {
		t.Fatalf("empty result, warnings: %v", res.Warnings)
	}
	if d := res.Tree.Depth(); d < 2 {
		t.Errorf("tree depth = %d, want at least 2", d)
	}
	if island.Contains(res.Start) {
		t.Errorf("start %v lies inside the island", res.Start)
	}

	region, err := sdfx.New().Region(job.Boundary())
	if err != nil {
		t.Fatalf("Region: %v", err)
	}
	startWall := -region.Distance(res.Start)
	for _, s := range res.Tree.Segments() {
		for _, p := range []geom.Point{s.A, s.B} {
			if -region.Distance(p) > startWall+1e-9 {
				t.Errorf("medial point %v has more clearance than the start %v", p, res.Start)
			}
		}
	}
	for _, sl := range res.Slices {
		if island.Contains(sl.Center()) {
			t.Errorf("%v lies inside the island", sl)
		}
	}
}

// ---------------------------------------------------------------------------
// Failure modes
// ---------------------------------------------------------------------------

func TestToolLargerThanPocket(t *testing.T) {
	res := run(t, rectJob(5, 5, 6))
	if !res.Empty() {
		t.Fatalf("expected an empty result, got %d moves", res.Path.Len())
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning explaining the empty result")
	}
	if res.Slices != nil || res.Tree != nil {
		t.Error("empty result must not carry a partial tree or slices")
	}
}

func TestIdempotent(t *testing.T) {
	job := rectJob(30, 18, 4)
	job.Islands = []geom.Polyline{geom.RegularPolygon(geom.Pt(10, 9), 3, 24)}
	a, b := run(t, job), run(t, job)
	if !reflect.DeepEqual(a.Path.Moves, b.Path.Moves) {
		t.Fatal("two runs on the same input produced different paths")
	}
}

func TestExplicitStartPoint(t *testing.T) {
	job := rectJob(40, 20, 6)
	free := run(t, job)

	// On the diagonal spoke towards the lower left corner.
	want := geom.Pt(4, 4)
	job.Options.StartPoint = &want
	res := run(t, job)
	if res.Start.Dist(want) > 1 || res.Start.Dist(want) >= free.Start.Dist(want) {
		t.Errorf("start %v is no closer to %v than the default %v", res.Start, want, free.Start)
	}
}

func TestInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*pocket.Options)
	}{
		{"zero tool", func(o *pocket.Options) { o.ToolDiameter = 0 }},
		{"stepover above diameter", func(o *pocket.Options) { o.MaxEngagement = 4 }},
		{"zero stepover", func(o *pocket.Options) { o.MaxEngagement = 0 }},
		{"min above max", func(o *pocket.Options) { o.MinEngagement = 2 }},
		{"zero tolerance", func(o *pocket.Options) { o.Tolerance = 0 }},
		{"negative margin", func(o *pocket.Options) { o.Margin = -1 }},
		{"negative lead", func(o *pocket.Options) { o.LeadInAngle = -1 }},
		{"smooth mixed", func(o *pocket.Options) {
			o.SmoothChords = true
			o.Direction = geom.Mixed
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := rectJob(20, 20, 3)
			tt.modify(&job.Options)
			res, err := pocket.New(sdfx.New()).Run(job)
			if !errors.Is(err, pocket.ErrInvalidOptions) {
				t.Fatalf("err = %v, want ErrInvalidOptions", err)
			}
			var cfg *pocket.ConfigError
			if !errors.As(err, &cfg) || len(cfg.Problems) == 0 {
				t.Errorf("err = %v, want a ConfigError with problems", err)
			}
			if res != nil {
				t.Error("rejected run must not return a result")
			}
		})
	}
	if err := pocket.DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions invalid: %v", err)
	}
}

func TestDegenerateOutline(t *testing.T) {
	job := rectJob(20, 20, 3)
	job.Outline = geom.Polygon(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(20, 0))
	_, err := pocket.New(sdfx.New()).Run(job)
	if !errors.Is(err, kernel.ErrDegenerateCurve) {
		t.Errorf("err = %v, want ErrDegenerateCurve", err)
	}
}
