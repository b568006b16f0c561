// Package project defines parametric shape families, the parameter
// schema boundary that clamps raw slider values, and the instance
// state tying a family's parts, overrides and cached geometry together.
package project

import (
	"fmt"
	"math"
)

// Unit is the semantic category of a parameter.
type Unit int

const (
	Length Unit = iota
	Angle
	Count
	Ratio
)

func (u Unit) String() string {
	switch u {
	case Length:
		return "length"
	case Angle:
		return "angle"
	case Count:
		return "count"
	case Ratio:
		return "ratio"
	}
	return "unknown"
}

// Params maps parameter names to values. Geometry code receives only
// schema-clamped params and never re-validates ranges.
type Params map[string]float64

// Clone returns a copy of the parameter map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ParamSpec declares one parameter: its valid range, step for UI
// sliders, unit category and optional discrete options.
type ParamSpec struct {
	Name    string
	Default float64
	Min     float64
	Max     float64
	Step    float64
	Unit    Unit
	Options []float64
}

// clamp forces v into the spec's range. Count parameters round to the
// nearest integer before any use in loop bounds.
func (s ParamSpec) clamp(v float64) float64 {
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	if s.Unit == Count {
		v = math.Round(v)
	}
	return v
}

// Schema is an ordered list of parameter specs.
type Schema []ParamSpec

// Spec returns the spec for a parameter name.
func (s Schema) Spec(name string) (ParamSpec, bool) {
	for _, ps := range s {
		if ps.Name == name {
			return ps, true
		}
	}
	return ParamSpec{}, false
}

// Defaults returns the default parameter values, clamped.
func (s Schema) Defaults() Params {
	p := make(Params, len(s))
	for _, ps := range s {
		p[ps.Name] = ps.clamp(ps.Default)
	}
	return p
}

// Clamp validates a single named value against the schema.
func (s Schema) Clamp(name string, v float64) (float64, error) {
	ps, ok := s.Spec(name)
	if !ok {
		return 0, fmt.Errorf("project: unknown parameter %q", name)
	}
	return ps.clamp(v), nil
}
