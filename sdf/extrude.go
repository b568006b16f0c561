package sdf

import (
	"math"

	"partforge/internal/d2"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Extrude3D extrudes an SDF2 to an SDF3 of the given height.
// The solid is centered on z = 0, spanning [-height/2, height/2].
func Extrude3D(sdf SDF2, height float64) SDF3 {
	if sdf == nil {
		return nil
	}
	s := extrude3{
		sdf:  sdf,
		half: height / 2,
	}
	bb := d2.Box(sdf.Bounds())
	s.bb = r3.Box{
		Min: r3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: -s.half},
		Max: r3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: s.half},
	}
	return &s
}

type extrude3 struct {
	sdf  SDF2
	half float64
	bb   r3.Box
}

func (s *extrude3) Evaluate(p r3.Vec) float64 {
	a := s.sdf.Evaluate(r2.Vec{X: p.X, Y: p.Y})
	b := math.Abs(p.Z) - s.half
	if a < 0 && b < 0 {
		return math.Max(a, b)
	}
	// exterior distance to the capped prism.
	ax := math.Max(a, 0)
	bx := math.Max(b, 0)
	return math.Hypot(ax, bx)
}

func (s *extrude3) Bounds() r3.Box {
	return s.bb
}

// ExtrudeBeveled extrudes an SDF2 to an SDF3 of the given height with
// beveled top and bottom edges. segments == 1 gives a flat chamfer of
// width bevel, segments > 1 gives a round of radius bevel (the segment
// count only matters once meshed, the field itself is exact). A zero or
// negative bevel degenerates to a plain extrusion. The solid is
// centered on z = 0.
func ExtrudeBeveled(sdf SDF2, height, bevel float64, segments int) SDF3 {
	if sdf == nil {
		return nil
	}
	if bevel <= 0 {
		return Extrude3D(sdf, height)
	}
	bevel = math.Min(bevel, height/2)
	s := extrudeBevel3{
		sdf:     sdf,
		half:    height / 2,
		bevel:   bevel,
		chamfer: segments <= 1,
	}
	bb := d2.Box(sdf.Bounds())
	s.bb = r3.Box{
		Min: r3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: -s.half},
		Max: r3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: s.half},
	}
	return &s
}

type extrudeBevel3 struct {
	sdf     SDF2
	half    float64
	bevel   float64
	chamfer bool
	bb      r3.Box
}

func (s *extrudeBevel3) Evaluate(p r3.Vec) float64 {
	a := s.sdf.Evaluate(r2.Vec{X: p.X, Y: p.Y})
	b := math.Abs(p.Z) - s.half
	if s.chamfer {
		// 45 degree cut across the top and bottom edges.
		return math.Max(math.Max(a, b), (a+b+s.bevel)*sqrtHalf)
	}
	// rounded edge of radius bevel.
	qx := a + s.bevel
	qy := b + s.bevel
	inside := math.Min(math.Max(qx, qy), 0)
	ox := math.Max(qx, 0)
	oy := math.Max(qy, 0)
	return inside + math.Hypot(ox, oy) - s.bevel
}

func (s *extrudeBevel3) Bounds() r3.Box {
	return s.bb
}
