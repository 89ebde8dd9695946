package main

import (
	"log"

	"github.com/chazu/trochomill/pkg/config"
	"github.com/chazu/trochomill/pkg/engine"
	"github.com/chazu/trochomill/pkg/export"
	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/kernel"
	"github.com/chazu/trochomill/pkg/kernel/sdfx"
	"github.com/chazu/trochomill/pkg/pocket"
	"github.com/spf13/viper"
)

// App binds the job engine to the pocketing pipeline.
type App struct {
	engine *engine.Engine
	pocket *pocket.Generator
	gcode  export.GCodeOptions
}

// PointData is a JSON-serializable point.
type PointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MoveData is one tool move. Arcs carry their center, radius, sweep in
// radians and rotation.
type MoveData struct {
	Kind   string     `json:"kind"`
	From   PointData  `json:"from"`
	To     PointData  `json:"to"`
	Center *PointData `json:"center,omitempty"`
	Radius float64    `json:"radius,omitempty"`
	Sweep  float64    `json:"sweep,omitempty"`
	Dir    string     `json:"dir,omitempty"`
}

// PocketData summarizes one pocket's tool path.
type PocketData struct {
	Name     string     `json:"name"`
	Moves    []MoveData `json:"moves"`
	Slices   int        `json:"slices"`
	Branches int        `json:"branches"`
	Length   float64    `json:"length"`
	Start    PointData  `json:"start"`
	Empty    bool       `json:"empty"`
}

// EvalErrorData is a JSON-serializable error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full outcome of evaluating a job file.
type EvalResult struct {
	Pockets  []PocketData    `json:"pockets"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// Output pairs a job with its pipeline result for the exporters.
type Output struct {
	Job    pocket.Job
	Result *pocket.Result
}

// NewApp creates an App with built-in defaults and the sdfx kernel.
func NewApp() *App {
	return newApp(sdfx.New(), pocket.DefaultOptions(), export.DefaultGCodeOptions())
}

// NewAppFromConfig creates an App whose kernel, pocket and G-code defaults
// come from v.
func NewAppFromConfig(v *viper.Viper) (*App, error) {
	k, err := config.Kernel(v)
	if err != nil {
		return nil, err
	}
	opts, err := config.PocketOptions(v)
	if err != nil {
		return nil, err
	}
	return newApp(k, opts, config.GCodeOptions(v)), nil
}

func newApp(k kernel.Kernel, opts pocket.Options, gcode export.GCodeOptions) *App {
	return &App{
		engine: engine.NewEngine(opts),
		pocket: pocket.New(k),
		gcode:  gcode,
	}
}

// Evaluate takes Lisp source and returns every pocket's tool path plus
// errors and warnings.
func (a *App) Evaluate(source string) EvalResult {
	_, result := a.Generate(source)
	return result
}

// Generate evaluates source and runs every declared pocket. A pocket whose
// options are rejected is reported in Errors and skipped; the others still
// run.
func (a *App) Generate(source string) ([]Output, EvalResult) {
	result := EvalResult{
		Pockets:  []PocketData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into pocket jobs.
	jobs, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return nil, result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return nil, result
	}

	// Step 2: Run the pipeline for each job.
	var outputs []Output
	for _, job := range jobs {
		res, err := a.pocket.Run(job)
		if err != nil {
			log.Printf("Pocket %q error: %v", job.Name, err)
			result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
			continue
		}
		for _, w := range res.Warnings {
			result.Warnings = append(result.Warnings, EvalErrorData{Message: w})
		}
		outputs = append(outputs, Output{Job: job, Result: res})
		result.Pockets = append(result.Pockets, pocketData(job, res))
	}
	return outputs, result
}

func pocketData(job pocket.Job, res *pocket.Result) PocketData {
	d := PocketData{Name: job.Name, Moves: []MoveData{}, Empty: res.Empty()}
	if d.Empty {
		return d
	}
	d.Slices = len(res.Slices)
	d.Branches = res.Tree.Len()
	d.Length = res.Path.Length()
	d.Start = point(res.Start)
	for _, m := range res.Path.Moves {
		md := MoveData{Kind: "line", From: point(m.First()), To: point(m.Last())}
		if a, ok := m.(geom.Arc); ok {
			c := point(a.Center)
			md.Kind = "arc"
			md.Center = &c
			md.Radius = a.R
			md.Sweep = a.Sweep
			md.Dir = a.Dir().String()
		}
		d.Moves = append(d.Moves, md)
	}
	return d
}

func point(p geom.Point) PointData { return PointData{X: p.X, Y: p.Y} }

// GCode returns the G-code settings the App was configured with.
func (a *App) GCode() export.GCodeOptions { return a.gcode }
