package form2

import (
	"partforge/sdf"

	"partforge/internal/d2"

	"gonum.org/v1/gonum/spatial/r2"
)

// Profile is a closed planar boundary with optional holes, the cross
// section handed to extrusion. The constructor normalizes winding so
// the outer loop is CCW and every hole is CW. Extrusion relies on that
// convention, builders never have to get it right themselves.
type Profile struct {
	Outer []r2.Vec
	Holes [][]r2.Vec
}

// NewProfile builds a profile from an outer loop and zero or more hole
// loops, normalizing the winding of each.
func NewProfile(outer []r2.Vec, holes ...[]r2.Vec) Profile {
	p := Profile{Outer: ccw(outer)}
	for _, h := range holes {
		p.Holes = append(p.Holes, cw(h))
	}
	return p
}

// AddHole appends a hole loop, normalized to CW winding.
func (p *Profile) AddHole(loop []r2.Vec) {
	p.Holes = append(p.Holes, cw(loop))
}

// Empty reports whether the profile has no usable outer boundary.
func (p Profile) Empty() bool {
	return len(p.Outer) < 3
}

// Bounds returns the bounding box of the outer boundary.
func (p Profile) Bounds() r2.Box {
	if p.Empty() {
		return r2.Box{}
	}
	return r2.Box(d2.Box{
		Min: d2.Set(p.Outer).Min(),
		Max: d2.Set(p.Outer).Max(),
	})
}

// SDF returns the signed distance field of the profile, holes
// subtracted from the outer boundary. Panics when the profile is empty.
func (p Profile) SDF() sdf.SDF2 {
	if p.Empty() {
		panic("empty profile")
	}
	s := Polygon(p.Outer)
	for _, h := range p.Holes {
		s = sdf.Difference2D(s, Polygon(h))
	}
	return s
}

// SignedArea returns the signed area of a closed loop via the shoelace
// formula. Positive for CCW winding.
func SignedArea(loop []r2.Vec) float64 {
	var sum float64
	n := len(loop)
	for i := 0; i < n; i++ {
		a := loop[i]
		b := loop[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// ccw returns the loop with CCW winding, reversing if needed.
func ccw(loop []r2.Vec) []r2.Vec {
	if SignedArea(loop) < 0 {
		return reversed(loop)
	}
	return loop
}

// cw returns the loop with CW winding, reversing if needed.
func cw(loop []r2.Vec) []r2.Vec {
	if SignedArea(loop) > 0 {
		return reversed(loop)
	}
	return loop
}

func reversed(loop []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(loop))
	for i, v := range loop {
		out[len(loop)-1-i] = v
	}
	return out
}
