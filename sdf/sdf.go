// Package sdf implements the signed distance field geometry kernel used by
// partforge. Solids are SDF3 values combined with min/max boolean blending;
// planar shapes are SDF2 values. Meshing happens once at the render boundary.
package sdf

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	pi        = math.Pi
	tau       = 2 * pi
	sqrtHalf  = 0.7071067811865476
	tolerance = 1e-9
	epsilon   = 1e-12
)

// SDF2 is the interface to a 2d signed distance function object.
type SDF2 interface {
	// Evaluate returns the minimum distance from p to the shape boundary.
	// The distance is negative if p is contained within the shape.
	Evaluate(p r2.Vec) float64

	// Bounds returns the bounding box that completely contains the SDF2.
	Bounds() r2.Box
}

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate returns the minimum distance from p to the solid surface.
	// The distance is negative if p is contained within the solid.
	Evaluate(p r3.Vec) float64

	// Bounds returns the bounding box that completely contains the SDF3.
	Bounds() r3.Box
}

// MinFunc is a minimum function for SDF union blending.
type MinFunc func(a, b float64) float64

// MaxFunc is a maximum function for SDF difference/intersection blending.
type MaxFunc func(a, b float64) float64

// Clamp clamps x between a and b, assume a <= b.
func Clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// Mix does a linear interpolation from x to y, a = [0,1].
func Mix(x, y, a float64) float64 {
	return x + (a * (y - x))
}

// Sign returns the sign of x.
func Sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}
