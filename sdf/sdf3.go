package sdf

import (
	"math"

	"partforge/internal/d2"
	"partforge/internal/d3"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// 3d signed distance combinators. Boolean evaluation of part trees
// reduces to chains of these, see csg.go.

// Transform3D applies a transformation matrix to an SDF3.
func Transform3D(sdf SDF3, m m44) SDF3 {
	s := transform3{}
	s.sdf = sdf
	s.matrix = m
	s.inverse = m.Inverse()
	s.bb = m.MulBox(sdf.Bounds())
	return &s
}

type transform3 struct {
	sdf     SDF3
	matrix  m44
	inverse m44
	bb      r3.Box
}

func (s *transform3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(s.inverse.MulPosition(p))
}

func (s *transform3) Bounds() r3.Box {
	return s.bb
}

// Translate3DBy translates an SDF3 by v.
func Translate3DBy(sdf SDF3, v r3.Vec) SDF3 {
	return Transform3D(sdf, Translate3D(v))
}

// ScaleUniform3D scales an SDF3 by k on all axes while preserving
// correct distances (uniform scaling keeps the field metric).
func ScaleUniform3D(sdf SDF3, k float64) SDF3 {
	s := scaleUniform3{
		sdf:  sdf,
		k:    k,
		inv:  1 / k,
		bb:   Scale3D(d3.Elem(k)).MulBox(sdf.Bounds()),
	}
	return &s
}

type scaleUniform3 struct {
	sdf SDF3
	k   float64
	inv float64
	bb  r3.Box
}

func (s *scaleUniform3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(r3.Scale(s.inv, p)) * s.k
}

func (s *scaleUniform3) Bounds() r3.Box {
	return s.bb
}

// Union3D returns the union of multiple SDF3 objects.
// Passing nil members is allowed, they are elided from the union.
func Union3D(sdfs ...SDF3) SDF3 {
	s := union3{}
	for _, x := range sdfs {
		if x != nil {
			s.sdf = append(s.sdf, x)
		}
	}
	if len(s.sdf) == 0 {
		return nil
	}
	if len(s.sdf) == 1 {
		return s.sdf[0]
	}
	bb := d3.Box(s.sdf[0].Bounds())
	for _, x := range s.sdf[1:] {
		bb = bb.Extend(d3.Box(x.Bounds()))
	}
	s.min = math.Min
	s.bb = r3.Box(bb)
	return &s
}

type union3 struct {
	sdf []SDF3
	min MinFunc
	bb  r3.Box
}

func (s *union3) Evaluate(p r3.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = s.min(d, x.Evaluate(p))
	}
	return d
}

// SetMin sets the minimum function used for blending the members.
func (s *union3) SetMin(min MinFunc) {
	s.min = min
}

func (s *union3) Bounds() r3.Box {
	return s.bb
}

// Difference3D returns the difference of two SDF3s, s0 - s1.
func Difference3D(s0, s1 SDF3) SDF3 {
	if s1 == nil {
		return s0
	}
	if s0 == nil {
		return nil
	}
	return &diff3{
		s0:  s0,
		s1:  s1,
		max: math.Max,
	}
}

type diff3 struct {
	s0  SDF3
	s1  SDF3
	max MaxFunc
}

func (s *diff3) Evaluate(p r3.Vec) float64 {
	return s.max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// SetMax sets the maximum function used for blending the subtraction.
func (s *diff3) SetMax(max MaxFunc) {
	s.max = max
}

func (s *diff3) Bounds() r3.Box {
	return s.s0.Bounds()
}

// Intersect3D returns the intersection of two SDF3s.
// The bounds are the intersection of the member bounds, so a solid
// intersected with itself keeps its own bounding box.
func Intersect3D(s0, s1 SDF3) SDF3 {
	if s0 == nil || s1 == nil {
		return nil
	}
	s := intersect3{
		s0:  s0,
		s1:  s1,
		max: math.Max,
	}
	s.bb = r3.Box(d3.Box(s0.Bounds()).Intersect(d3.Box(s1.Bounds())))
	return &s
}

type intersect3 struct {
	s0  SDF3
	s1  SDF3
	max MaxFunc
	bb  r3.Box
}

func (s *intersect3) Evaluate(p r3.Vec) float64 {
	return s.max(s.s0.Evaluate(p), s.s1.Evaluate(p))
}

// SetMax sets the maximum function used for blending the intersection.
func (s *intersect3) SetMax(max MaxFunc) {
	s.max = max
}

func (s *intersect3) Bounds() r3.Box {
	return s.bb
}

// Offset3D returns an SDF3 that grows (positive offset) or shrinks
// (negative offset) the surface of the argument SDF3.
func Offset3D(sdf SDF3, offset float64) SDF3 {
	s := offset3{
		sdf:    sdf,
		offset: offset,
	}
	bb := d3.Box(sdf.Bounds())
	s.bb = r3.Box(bb.Enlarge(d3.Elem(2 * offset)))
	return &s
}

type offset3 struct {
	sdf    SDF3
	offset float64
	bb     r3.Box
}

func (s *offset3) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(p) - s.offset
}

func (s *offset3) Bounds() r3.Box {
	return s.bb
}

// Revolve3D returns the full revolution of an SDF2 profile about the
// Y axis of the profile, which becomes the Z axis of the solid.
// The profile should live in the x >= 0 half plane.
func Revolve3D(sdf SDF2) SDF3 {
	if sdf == nil {
		return nil
	}
	s := revolve3{sdf: sdf}
	bb := d2.Box(sdf.Bounds())
	xmax := math.Max(math.Abs(bb.Min.X), math.Abs(bb.Max.X))
	s.bb = r3.Box{
		Min: r3.Vec{X: -xmax, Y: -xmax, Z: bb.Min.Y},
		Max: r3.Vec{X: xmax, Y: xmax, Z: bb.Max.Y},
	}
	return &s
}

type revolve3 struct {
	sdf SDF2
	bb  r3.Box
}

func (s *revolve3) Evaluate(p r3.Vec) float64 {
	q := r2.Vec{X: math.Hypot(p.X, p.Y), Y: p.Z}
	return s.sdf.Evaluate(q)
}

func (s *revolve3) Bounds() r3.Box {
	return s.bb
}
