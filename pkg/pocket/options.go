package pocket

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chazu/trochomill/pkg/geom"
)

// ErrInvalidOptions is wrapped by every ConfigError.
var ErrInvalidOptions = errors.New("pocket: invalid options")

// ConfigError lists every problem found in a set of options.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pocket: invalid options: %s", strings.Join(e.Problems, "; "))
}

func (e *ConfigError) Unwrap() error { return ErrInvalidOptions }

// Options controls one pocketing run. Lengths are in the same unit as the
// boundary coordinates; angles are in degrees.
type Options struct {
	ToolDiameter float64 `json:"toolDiameter"`
	Margin       float64 `json:"margin"`

	// MaxEngagement is the stepover: the largest advance of a slice into
	// uncut material.
	MaxEngagement float64 `json:"maxEngagement"`
	MinEngagement float64 `json:"minEngagement"`
	Tolerance     float64 `json:"tolerance"`

	// StartPoint, when set, overrides the point of maximum clearance as the
	// plunge point.
	StartPoint *geom.Point `json:"startPoint,omitempty"`

	Direction      geom.Direction `json:"direction"`
	SmoothChords   bool           `json:"smoothChords"`
	LeadInAngle    float64        `json:"leadInAngle"`
	LeadOutAngle   float64        `json:"leadOutAngle"`
	CheckCrossings bool           `json:"checkCrossings"`
}

// Default tool and cut parameters.
const (
	DefaultToolDiameter = 3.0
	DefaultStepover     = 0.4
	DefaultMinStepover  = 0.1
	DefaultTolerance    = 0.001
	DefaultLeadIn       = 3.0
	DefaultLeadOut      = 0.5

	// SmoothDeviationFactor bounds the sagitta of smoothing arcs as a
	// fraction of the tool radius.
	SmoothDeviationFactor = 0.1
)

// DefaultOptions returns options for a 3 mm tool cutting clockwise.
func DefaultOptions() Options {
	return Options{
		ToolDiameter:  DefaultToolDiameter,
		MaxEngagement: DefaultStepover * DefaultToolDiameter,
		MinEngagement: DefaultMinStepover * DefaultToolDiameter,
		Tolerance:     DefaultTolerance,
		Direction:     geom.CW,
		LeadInAngle:   DefaultLeadIn,
		LeadOutAngle:  DefaultLeadOut,
	}
}

// ToolRadius is half the tool diameter.
func (o Options) ToolRadius() float64 { return o.ToolDiameter / 2 }

// Validate checks the options before any geometry work. It returns a
// *ConfigError listing every problem, or nil.
func (o Options) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if o.ToolDiameter <= 0 {
		add("tool diameter must be positive, got %g", o.ToolDiameter)
	}
	if o.MaxEngagement <= 0 || (o.ToolDiameter > 0 && o.MaxEngagement > o.ToolDiameter) {
		add("stepover %g must be in (0, %g]", o.MaxEngagement, o.ToolDiameter)
	}
	if o.MinEngagement < 0 {
		add("minimum stepover must not be negative, got %g", o.MinEngagement)
	}
	if o.MinEngagement > o.MaxEngagement {
		add("minimum stepover %g exceeds stepover %g", o.MinEngagement, o.MaxEngagement)
	}
	if o.Tolerance <= 0 {
		add("tolerance must be positive, got %g", o.Tolerance)
	}
	if o.Margin < 0 {
		add("margin must not be negative, got %g", o.Margin)
	}
	if o.LeadInAngle < 0 || o.LeadOutAngle < 0 {
		add("lead angles must not be negative, got %g and %g", o.LeadInAngle, o.LeadOutAngle)
	}
	if o.SmoothChords && o.Direction == geom.Mixed {
		add("smoothing requires a fixed cutting direction")
	}
	if o.StartPoint != nil && !o.StartPoint.IsFinite() {
		add("start point %v is not finite", *o.StartPoint)
	}

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}
