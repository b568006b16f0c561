package sdf

import (
	"math"

	"partforge/internal/d2"

	"gonum.org/v1/gonum/spatial/r2"
)

// 2d signed distance combinators. Profiles built in form2 pass through
// these before extrusion into solids.

// Transform2D applies a transformation matrix to an SDF2.
func Transform2D(sdf SDF2, m m33) SDF2 {
	s := transform2{}
	s.sdf = sdf
	s.matrix = m
	s.inverse = m.Inverse()
	s.bb = m.MulBox(sdf.Bounds())
	return &s
}

type transform2 struct {
	sdf     SDF2
	matrix  m33
	inverse m33
	bb      r2.Box
}

func (s *transform2) Evaluate(p r2.Vec) float64 {
	return s.sdf.Evaluate(s.inverse.MulPosition(p))
}

func (s *transform2) Bounds() r2.Box {
	return s.bb
}

// Translate2DBy translates an SDF2 by v.
func Translate2DBy(sdf SDF2, v r2.Vec) SDF2 {
	return Transform2D(sdf, Translate2D(v))
}

// Union2D returns the union of multiple SDF2 objects.
// Passing nil members is allowed, they are elided from the union.
func Union2D(sdfs ...SDF2) SDF2 {
	s := union2{}
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
	bb := d2.Box(s.sdf[0].Bounds())
	for _, x := range s.sdf[1:] {
		bb = bb.Extend(d2.Box(x.Bounds()))
	}
	s.min = math.Min
	s.bb = r2.Box(bb)
	return &s
}

type union2 struct {
	sdf []SDF2
	min MinFunc
	bb  r2.Box
}

func (s *union2) Evaluate(p r2.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = s.min(d, x.Evaluate(p))
	}
	return d
}

// SetMin sets the minimum function used for blending the members.
func (s *union2) SetMin(min MinFunc) {
	s.min = min
}

func (s *union2) Bounds() r2.Box {
	return s.bb
}

// Difference2D returns the difference of two SDF2 objects, s0 - s1.
func Difference2D(s0, s1 SDF2) SDF2 {
	if s1 == nil {
		return s0
	}
	if s0 == nil {
		return nil
	}
	return &diff2{
		s0:  s0,
		s1:  s1,
		max: math.Max,
	}
}

type diff2 struct {
	s0  SDF2
	s1  SDF2
	max MaxFunc
}

func (s *diff2) Evaluate(p r2.Vec) float64 {
	return s.max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// SetMax sets the maximum function used for blending the subtraction.
func (s *diff2) SetMax(max MaxFunc) {
	s.max = max
}

func (s *diff2) Bounds() r2.Box {
	return s.s0.Bounds()
}

// Intersect2D returns the intersection of two SDF2 objects.
func Intersect2D(s0, s1 SDF2) SDF2 {
	if s0 == nil || s1 == nil {
		return nil
	}
	s := intersect2{
		s0:  s0,
		s1:  s1,
		max: math.Max,
	}
	bb0 := d2.Box(s0.Bounds())
	bb1 := d2.Box(s1.Bounds())
	s.bb = r2.Box(d2.Box{
		Min: d2.MaxElem(bb0.Min, bb1.Min),
		Max: d2.MinElem(bb0.Max, bb1.Max),
	})
	return &s
}

type intersect2 struct {
	s0  SDF2
	s1  SDF2
	max MaxFunc
	bb  r2.Box
}

func (s *intersect2) Evaluate(p r2.Vec) float64 {
	return s.max(s.s0.Evaluate(p), s.s1.Evaluate(p))
}

// SetMax sets the maximum function used for blending the intersection.
func (s *intersect2) SetMax(max MaxFunc) {
	s.max = max
}

func (s *intersect2) Bounds() r2.Box {
	return s.bb
}

// Offset2D returns an SDF2 that grows (positive offset) or shrinks
// (negative offset) the boundary of the argument SDF2.
func Offset2D(sdf SDF2, offset float64) SDF2 {
	s := offset2{
		sdf:    sdf,
		offset: offset,
	}
	bb := d2.Box(sdf.Bounds())
	s.bb = r2.Box(bb.Enlarge(d2.Elem(2 * offset)))
	return &s
}

type offset2 struct {
	sdf    SDF2
	offset float64
	bb     r2.Box
}

func (s *offset2) Evaluate(p r2.Vec) float64 {
	return s.sdf.Evaluate(p) - s.offset
}

func (s *offset2) Bounds() r2.Box {
	return s.bb
}

// Center2D centers the bounding box of an SDF2 on the origin.
func Center2D(sdf SDF2) SDF2 {
	c := d2.Box(sdf.Bounds()).Center()
	return Translate2DBy(sdf, r2.Scale(-1, c))
}

// Multi2D stamps an SDF2 at each of a set of points.
// Used for hole patterns where every instance shares one base shape.
func Multi2D(sdf SDF2, points []r2.Vec) SDF2 {
	if sdf == nil || len(points) == 0 {
		return nil
	}
	s := multi2{
		sdf:    sdf,
		points: points,
	}
	sbb := d2.Box(sdf.Bounds())
	bb := sbb.Translate(points[0])
	for _, p := range points[1:] {
		bb = bb.Extend(sbb.Translate(p))
	}
	s.bb = r2.Box(bb)
	return &s
}

type multi2 struct {
	sdf    SDF2
	points []r2.Vec
	bb     r2.Box
}

func (s *multi2) Evaluate(p r2.Vec) float64 {
	d := math.MaxFloat64
	for _, c := range s.points {
		d = math.Min(d, s.sdf.Evaluate(r2.Sub(p, c)))
	}
	return d
}

func (s *multi2) Bounds() r2.Box {
	return s.bb
}
