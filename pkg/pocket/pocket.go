// Package pocket runs the whole trochoidal pocketing pipeline: region,
// medial axis, branch tree, slices and finally the tool path.
package pocket

import (
	"errors"
	"fmt"

	"github.com/chazu/trochomill/pkg/diag"
	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/kernel"
	"github.com/chazu/trochomill/pkg/medial"
	"github.com/chazu/trochomill/pkg/slicer"
	"github.com/chazu/trochomill/pkg/toolpath"
)

// Job is one pocket to clear: an outer outline, optional islands to leave
// standing, and the cutting options.
type Job struct {
	Name    string          `json:"name"`
	Outline geom.Polyline   `json:"outline"`
	Islands []geom.Polyline `json:"islands,omitempty"`
	Options Options         `json:"options"`
}

// Boundary returns the job's outline and islands.
func (j Job) Boundary() kernel.Boundary {
	return kernel.Boundary{Outline: j.Outline, Islands: j.Islands}
}

// Result is the outcome of a run. A run whose medial axis could not be
// built has no path, tree or slices, and says why in Warnings.
type Result struct {
	Path     *toolpath.Path
	Tree     *medial.Tree
	Slices   []*slicer.Slice
	Start    geom.Point
	Warnings []string
}

// Empty reports whether no path was produced.
func (r *Result) Empty() bool { return r == nil || r.Path == nil || r.Path.Len() == 0 }

func (r *Result) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	diag.Logger().Warn(msg)
}

// Generator runs jobs against a geometry kernel.
type Generator struct {
	kernel kernel.Kernel
}

// New returns a generator that builds regions with k.
func New(k kernel.Kernel) *Generator {
	return &Generator{kernel: k}
}

// Run computes the tool path for job. Invalid options and unusable
// boundaries are errors; a pocket the tool cannot enter yields an empty
// result with a warning.
func (g *Generator) Run(job Job) (*Result, error) {
	opts := job.Options
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	b := job.Boundary().Clean(opts.Tolerance)
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("pocket %q: %w", job.Name, err)
	}
	region, err := g.kernel.Region(b)
	if err != nil {
		return nil, fmt.Errorf("pocket %q: region: %w", job.Name, err)
	}

	log := diag.Logger().With("job", job.Name)
	res := &Result{}
	toolR := opts.ToolRadius()
	step := toolR * medial.SampleFactor

	field := medial.NewField(region, toolR, opts.Margin)
	samples := medial.Sample(b, step, opts.Tolerance)
	segs := medial.Extract(region, b, samples, medial.ExtractOptions{
		Tolerance:      opts.Tolerance,
		CheckCrossings: opts.CheckCrossings,
	})
	log.Debug("medial axis extracted", "samples", len(samples), "segments", len(segs))

	tree, err := medial.Build(segs, field, medial.BuildOptions{
		Tolerance: opts.Tolerance,
		Start:     opts.StartPoint,
	})
	if errors.Is(err, medial.ErrNoSegments) || errors.Is(err, medial.ErrNoStartPoint) {
		res.warn("pocket %q: %v", job.Name, err)
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pocket %q: %w", job.Name, err)
	}

	sl := slicer.New(field, slicer.Options{
		MaxEngagement: opts.MaxEngagement,
		MinEngagement: opts.MinEngagement,
		Tolerance:     opts.Tolerance,
		Step:          step / 2,
		Direction:     opts.Direction,
	})
	if err := sl.Run(tree); err != nil {
		res.warn("pocket %q: %v", job.Name, err)
		return res, nil
	}
	for _, w := range sl.Warnings() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("pocket %q: %s", job.Name, w))
	}

	gen := g.generator(opts)
	root := sl.Root()
	gen.AppendSpiral(root.Center(), root.Start(), opts.MaxEngagement, opts.Direction)
	gen.AppendRootSlice(root)
	for _, s := range sl.Sequence()[1:] {
		gen.AppendSlice(s)
	}
	gen.AppendReturnToBase(sl.ReturnPath())

	res.Path = gen.Path()
	res.Tree = tree
	res.Slices = sl.Sequence()
	res.Start = root.Center()
	log.Debug("path generated", "moves", res.Path.Len(), "length", res.Path.Length(), "slices", len(res.Slices))
	return res, nil
}

func (g *Generator) generator(opts Options) toolpath.Generator {
	if !opts.SmoothChords {
		return toolpath.NewGenerator(opts.Tolerance)
	}
	return toolpath.NewSmoothGenerator(
		opts.Tolerance,
		SmoothDeviationFactor*opts.ToolRadius(),
		geom.Radians(opts.LeadInAngle),
		geom.Radians(opts.LeadOutAngle),
	)
}
