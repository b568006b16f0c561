package form2

import (
	"math"

	"partforge/sdf"

	"partforge/internal/d2"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	tolerance = 1e-9
	epsilon   = 1e-12
)

// polygon2 is an SDF2 made from a closed loop of line segments.
// Distance is exact, containment uses the winding number so either
// loop orientation evaluates correctly.
type polygon2 struct {
	vertex []r2.Vec  // closed vertex loop, first == last
	unit   []r2.Vec  // unit vector per segment
	length []float64 // length per segment
	bb     r2.Box
}

// Polygon returns an SDF2 made from a closed loop of line segments.
// Panics with fewer than 3 vertices.
func Polygon(vertex []r2.Vec) sdf.SDF2 {
	if len(vertex) < 3 {
		panic("polygon needs at least 3 vertices")
	}
	s := polygon2{vertex: vertex}
	// close the loop if necessary.
	n := len(vertex)
	if !d2.EqualWithin(vertex[0], vertex[n-1], tolerance) {
		s.vertex = append(s.vertex, vertex[0])
	}

	nsegs := len(s.vertex) - 1
	s.unit = make([]r2.Vec, nsegs)
	s.length = make([]float64, nsegs)
	vmin := s.vertex[0]
	vmax := s.vertex[0]
	for i := 0; i < nsegs; i++ {
		l := r2.Sub(s.vertex[i+1], s.vertex[i])
		s.length[i] = r2.Norm(l)
		s.unit[i] = r2.Unit(l)
		vmin = d2.MinElem(vmin, s.vertex[i])
		vmax = d2.MaxElem(vmax, s.vertex[i])
	}
	s.bb = r2.Box{Min: vmin, Max: vmax}
	return &s
}

// Evaluate returns the minimum distance from p to the polygon.
func (s *polygon2) Evaluate(p r2.Vec) float64 {
	dd := math.MaxFloat64 // squared distance to boundary
	wn := 0               // winding number

	nsegs := len(s.vertex) - 1
	pb := r2.Sub(p, s.vertex[0])
	for i := 0; i < nsegs; i++ {
		a := s.vertex[i]
		b := s.vertex[i+1]
		pa := pb
		pb = r2.Sub(p, b)

		t := r2.Dot(pa, s.unit[i])                          // projection onto segment
		dn := r2.Dot(pa, r2.Vec{X: s.unit[i].Y, Y: -s.unit[i].X}) // normal distance to line

		if t < 0 {
			dd = math.Min(dd, r2.Norm2(pa))
		} else if t > s.length[i] {
			dd = math.Min(dd, r2.Norm2(pb))
		} else {
			dd = math.Min(dd, dn*dn)
		}

		// winding number accumulation, see
		// http://geomalgorithms.com/a03-_inclusion.html
		if a.Y <= p.Y {
			if b.Y > p.Y && dn < 0 {
				wn++ // upward crossing, p left of segment
			}
		} else {
			if b.Y <= p.Y && dn > 0 {
				wn-- // downward crossing, p right of segment
			}
		}
	}

	d := math.Sqrt(dd)
	if wn != 0 {
		return -d
	}
	return d
}

// Bounds returns the bounding box of the polygon.
func (s *polygon2) Bounds() r2.Box {
	return s.bb
}

// Circle returns an exact SDF2 circle. Panics on non-positive radius.
func Circle(radius float64) sdf.SDF2 {
	if radius <= 0 {
		panic("circle radius <= 0")
	}
	return &circle2{radius: radius}
}

type circle2 struct {
	radius float64
}

func (s *circle2) Evaluate(p r2.Vec) float64 {
	return r2.Norm(p) - s.radius
}

func (s *circle2) Bounds() r2.Box {
	return r2.Box{Min: d2.Elem(-s.radius), Max: d2.Elem(s.radius)}
}
