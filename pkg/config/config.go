// Package config reads tool, cut and G-code defaults from a config file
// through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/chazu/trochomill/pkg/export"
	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/kernel"
	"github.com/chazu/trochomill/pkg/kernel/polygon"
	"github.com/chazu/trochomill/pkg/kernel/sdfx"
	"github.com/chazu/trochomill/pkg/pocket"
	"github.com/spf13/viper"
)

// Config keys.
const (
	CfgKernelBackend = "kernel.backend"

	CfgToolDiameter = "tool.diameter"
	CfgToolMargin   = "tool.margin"

	CfgCutStepover       = "cut.stepover"
	CfgCutMinStepover    = "cut.min_stepover"
	CfgCutDirection      = "cut.direction"
	CfgCutSmooth         = "cut.smooth"
	CfgCutLeadIn         = "cut.lead_in_deg"
	CfgCutLeadOut        = "cut.lead_out_deg"
	CfgCutTolerance      = "cut.tolerance"
	CfgCutCheckCrossings = "cut.check_crossings"

	CfgGCodeFeed       = "gcode.feed"
	CfgGCodePlungeFeed = "gcode.plunge_feed"
	CfgGCodeSafeZ      = "gcode.safe_z"
	CfgGCodeDepth      = "gcode.depth"
	CfgGCodeSpindleRPM = "gcode.spindle_rpm"
	CfgGCodeImperial   = "gcode.imperial"
	CfgGCodeDecimals   = "gcode.decimals"
)

// EnvPrefix prefixes environment overrides, e.g. TROCHOMILL_TOOL_DIAMETER.
const EnvPrefix = "TROCHOMILL"

// New returns a viper instance holding the built-in defaults with
// environment overrides enabled.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults installs the built-in defaults into v.
func SetDefaults(v *viper.Viper) {
	o := pocket.DefaultOptions()
	g := export.DefaultGCodeOptions()

	v.SetDefault(CfgKernelBackend, "sdfx")
	v.SetDefault(CfgToolDiameter, o.ToolDiameter)
	v.SetDefault(CfgToolMargin, o.Margin)
	v.SetDefault(CfgCutStepover, pocket.DefaultStepover)
	v.SetDefault(CfgCutMinStepover, pocket.DefaultMinStepover)
	v.SetDefault(CfgCutDirection, o.Direction.String())
	v.SetDefault(CfgCutSmooth, o.SmoothChords)
	v.SetDefault(CfgCutLeadIn, o.LeadInAngle)
	v.SetDefault(CfgCutLeadOut, o.LeadOutAngle)
	v.SetDefault(CfgCutTolerance, o.Tolerance)
	v.SetDefault(CfgCutCheckCrossings, o.CheckCrossings)

	v.SetDefault(CfgGCodeFeed, g.Feed)
	v.SetDefault(CfgGCodePlungeFeed, g.PlungeFeed)
	v.SetDefault(CfgGCodeSafeZ, g.SafeZ)
	v.SetDefault(CfgGCodeDepth, g.Depth)
	v.SetDefault(CfgGCodeSpindleRPM, g.SpindleRPM)
	v.SetDefault(CfgGCodeImperial, g.Imperial)
	v.SetDefault(CfgGCodeDecimals, g.Decimals)
}

// Load reads path (YAML, TOML or JSON, by extension) on top of the
// defaults. An empty path returns the defaults.
func Load(path string) (*viper.Viper, error) {
	v := New()
	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return v, nil
}

// PocketOptions builds pocket defaults from v. Stepovers are fractions of
// the tool diameter.
func PocketOptions(v *viper.Viper) (pocket.Options, error) {
	dir, err := geom.ParseDirection(v.GetString(CfgCutDirection))
	if err != nil {
		return pocket.Options{}, fmt.Errorf("config: %s: %w", CfgCutDirection, err)
	}
	d := v.GetFloat64(CfgToolDiameter)
	o := pocket.Options{
		ToolDiameter:   d,
		Margin:         v.GetFloat64(CfgToolMargin),
		MaxEngagement:  v.GetFloat64(CfgCutStepover) * d,
		MinEngagement:  v.GetFloat64(CfgCutMinStepover) * d,
		Tolerance:      v.GetFloat64(CfgCutTolerance),
		Direction:      dir,
		SmoothChords:   v.GetBool(CfgCutSmooth),
		LeadInAngle:    v.GetFloat64(CfgCutLeadIn),
		LeadOutAngle:   v.GetFloat64(CfgCutLeadOut),
		CheckCrossings: v.GetBool(CfgCutCheckCrossings),
	}
	if err := o.Validate(); err != nil {
		return pocket.Options{}, fmt.Errorf("config: %w", err)
	}
	return o, nil
}

// GCodeOptions builds G-code settings from v.
func GCodeOptions(v *viper.Viper) export.GCodeOptions {
	g := export.DefaultGCodeOptions()
	g.Feed = v.GetFloat64(CfgGCodeFeed)
	g.PlungeFeed = v.GetFloat64(CfgGCodePlungeFeed)
	g.SafeZ = v.GetFloat64(CfgGCodeSafeZ)
	g.Depth = v.GetFloat64(CfgGCodeDepth)
	g.SpindleRPM = v.GetInt(CfgGCodeSpindleRPM)
	g.Imperial = v.GetBool(CfgGCodeImperial)
	g.Decimals = v.GetInt(CfgGCodeDecimals)
	return g
}

// Kernel returns the geometry backend named by kernel.backend: "sdfx" or
// "polygon".
func Kernel(v *viper.Viper) (kernel.Kernel, error) {
	switch name := strings.ToLower(v.GetString(CfgKernelBackend)); name {
	case "sdfx", "":
		return sdfx.New(), nil
	case "polygon":
		return polygon.New(), nil
	default:
		return nil, fmt.Errorf("config: %s: unknown backend %q", CfgKernelBackend, name)
	}
}
