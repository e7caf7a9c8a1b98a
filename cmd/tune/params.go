// Package main searches emitter parameters that keep a target share of the
// particle buffers alive and on screen.
package main

import (
	"github.com/pthm-cable/particles/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the emitter parameter set. Defaults come from cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "life", Path: "emitter.life", Min: 0.25, Max: 12, Default: cfg.Emitter.Life},
			{Name: "mass", Path: "emitter.mass", Min: 1, Max: 50, Default: cfg.Emitter.Mass},
			{Name: "velocity_x", Path: "emitter.velocity_x", Min: 0, Max: 3, Default: cfg.Emitter.VelocityX},
			{Name: "velocity_y", Path: "emitter.velocity_y", Min: 0, Max: 3, Default: cfg.Emitter.VelocityY},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies clamped parameter values to cfg. Order must match
// Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Emitter.Life = clamped[0]
	cfg.Emitter.Mass = clamped[1]
	cfg.Emitter.VelocityX = clamped[2]
	cfg.Emitter.VelocityY = clamped[3]
}
