// Package form2 builds planar profiles for extrusion. It provides the
// low level geometric primitives (line and circle intersections, point
// in triangle tests), rounded polygon path construction with per vertex
// fillets, and the Profile type holding an outer boundary plus holes
// with a normalized winding convention.
package form2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// parallelTol is the determinant magnitude below which two line
// directions are treated as parallel.
const parallelTol = 1e-10

// LineLineIntersect returns the intersection of two infinite lines,
// each given by a point and a direction. Near parallel lines (determinant
// magnitude below 1e-10) return the midpoint of p1 and p2 as a defined
// fallback, callers tolerate the approximation for near collinear edges.
func LineLineIntersect(p1, d1, p2, d2 r2.Vec) r2.Vec {
	det := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(det) < parallelTol {
		return r2.Scale(0.5, r2.Add(p1, p2))
	}
	dp := r2.Sub(p2, p1)
	t := (dp.X*d2.Y - dp.Y*d2.X) / det
	return r2.Add(p1, r2.Scale(t, d1))
}

// LineCircleIntersect returns where a ray from origin along dir enters
// the circle at center with the given radius. ok is false when the ray
// misses the circle entirely. When both roots exist the positive
// parametric root nearest the origin is preferred, falling back to the
// far root if the near one is behind the origin.
func LineCircleIntersect(origin, dir, center r2.Vec, radius float64) (p r2.Vec, ok bool) {
	f := r2.Sub(origin, center)
	a := r2.Dot(dir, dir)
	b := 2 * r2.Dot(f, dir)
	c := r2.Dot(f, f) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return r2.Vec{}, false
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t <= 0 {
		t = (-b + sq) / (2 * a)
	}
	return r2.Add(origin, r2.Scale(t, dir)), true
}

// PointInTriangle reports whether p lies inside the triangle a, b, c.
// The boundary counts as inside. Works for either triangle winding by
// requiring the three edge cross products to share a sign.
func PointInTriangle(p, a, b, c r2.Vec) bool {
	d1 := cross2(r2.Sub(b, a), r2.Sub(p, a))
	d2 := cross2(r2.Sub(c, b), r2.Sub(p, b))
	d3 := cross2(r2.Sub(a, c), r2.Sub(p, c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func cross2(a, b r2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}
