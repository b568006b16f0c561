package form2

import (
	"math"
	"testing"

	"partforge/internal/d2"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestLineLineIntersect(t *testing.T) {
	// x axis meets y axis at the origin.
	p := LineLineIntersect(r2.Vec{X: -5}, r2.Vec{X: 1}, r2.Vec{Y: -5}, r2.Vec{Y: 1})
	if !d2.EqualWithin(p, r2.Vec{}, tolerance) {
		t.Errorf("axes intersect at %v, want origin", p)
	}
	// 45 degree lines.
	p = LineLineIntersect(r2.Vec{Y: 1}, r2.Vec{X: 1, Y: 1}, r2.Vec{Y: -1}, r2.Vec{X: 1, Y: -1})
	if !d2.EqualWithin(p, r2.Vec{X: -1}, tolerance) {
		t.Errorf("diagonal intersect %v, want (-1,0)", p)
	}
}

func TestLineLineIntersectParallel(t *testing.T) {
	p1 := r2.Vec{X: 0, Y: 0}
	p2 := r2.Vec{X: 0, Y: 2}
	p := LineLineIntersect(p1, r2.Vec{X: 1}, p2, r2.Vec{X: 1})
	want := r2.Vec{X: 0, Y: 1}
	if !d2.EqualWithin(p, want, tolerance) {
		t.Errorf("parallel fallback %v, want midpoint %v", p, want)
	}
}

func TestLineCircleIntersect(t *testing.T) {
	// ray from the left through a unit circle at the origin.
	p, ok := LineCircleIntersect(r2.Vec{X: -5}, r2.Vec{X: 1}, r2.Vec{}, 1)
	if !ok {
		t.Fatal("expected intersection")
	}
	if !d2.EqualWithin(p, r2.Vec{X: -1}, tolerance) {
		t.Errorf("entry point %v, want (-1,0)", p)
	}
	// ray starting inside prefers the forward exit root.
	p, ok = LineCircleIntersect(r2.Vec{}, r2.Vec{X: 1}, r2.Vec{}, 1)
	if !ok {
		t.Fatal("expected intersection from inside")
	}
	if !d2.EqualWithin(p, r2.Vec{X: 1}, tolerance) {
		t.Errorf("exit point %v, want (1,0)", p)
	}
	// miss.
	if _, ok = LineCircleIntersect(r2.Vec{X: -5, Y: 3}, r2.Vec{X: 1}, r2.Vec{}, 1); ok {
		t.Error("expected miss")
	}
}

func TestPointInTriangle(t *testing.T) {
	a := r2.Vec{X: 0, Y: 0}
	b := r2.Vec{X: 10, Y: 0}
	c := r2.Vec{X: 5, Y: 10}
	cases := []struct {
		p    r2.Vec
		want bool
	}{
		{r2.Vec{X: 5, Y: 3}, true},
		{r2.Vec{X: 5, Y: 0}, true}, // on edge
		{a, true},                  // on vertex
		{r2.Vec{X: 5, Y: 11}, false},
		{r2.Vec{X: -1, Y: 0}, false},
	}
	for _, tc := range cases {
		if got := PointInTriangle(tc.p, a, b, c); got != tc.want {
			t.Errorf("PointInTriangle(%v) = %v, want %v", tc.p, got, tc.want)
		}
		// winding independent.
		if got := PointInTriangle(tc.p, c, b, a); got != tc.want {
			t.Errorf("PointInTriangle(%v) CW = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestRoundedPolygonPathSharp(t *testing.T) {
	square := []FilletVertex{
		Sharp(0, 0), Sharp(10, 0), Sharp(10, 10), Sharp(0, 10),
	}
	path := RoundedPolygonPath(square, 4)
	if len(path) != 4 {
		t.Fatalf("sharp square expanded to %d points, want 4", len(path))
	}
}

func TestRoundedPolygonPathArcCount(t *testing.T) {
	const segments = 5
	square := []FilletVertex{
		Fillet(0, 0, 2), Sharp(10, 0), Sharp(10, 10), Sharp(0, 10),
	}
	path := RoundedPolygonPath(square, segments)
	if len(path) != 3+segments+1 {
		t.Fatalf("path has %d points, want %d", len(path), 3+segments+1)
	}
}

// Fillet arcs must stay within the sharp polygon no matter how large
// the requested radius is.
func TestFilletContainment(t *testing.T) {
	corners := []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	hull := Polygon(corners)
	for _, radius := range []float64{0.5, 2, 5, 10, 100} {
		verts := make([]FilletVertex, len(corners))
		for i, c := range corners {
			verts[i] = FilletVertex{P: c, Radius: radius}
		}
		path := RoundedPolygonPath(verts, 8)
		for _, p := range path {
			if d := hull.Evaluate(p); d > tolerance {
				t.Errorf("radius %g: point %v escapes hull by %g", radius, p, d)
			}
		}
	}
}

func TestFilletCollinearSkipped(t *testing.T) {
	// middle vertex lies on the segment between its neighbors.
	verts := []FilletVertex{
		Sharp(0, 0), Fillet(5, 0, 2), Sharp(10, 0), Sharp(5, 10),
	}
	path := RoundedPolygonPath(verts, 6)
	if len(path) != 4 {
		t.Fatalf("collinear fillet should stay sharp, got %d points", len(path))
	}
}

func TestArcPathFullCircle(t *testing.T) {
	const segments = 12
	pts := ArcPath(r2.Vec{X: 3, Y: 4}, 2, 0, 0, segments)
	if len(pts) != segments+1 {
		t.Fatalf("%d points, want %d", len(pts), segments+1)
	}
	if !d2.EqualWithin(pts[0], pts[segments], tolerance) {
		t.Errorf("full circle should close: %v vs %v", pts[0], pts[segments])
	}
	for _, p := range pts {
		r := math.Hypot(p.X-3, p.Y-4)
		if math.Abs(r-2) > tolerance {
			t.Errorf("point %v off radius: %g", p, r)
		}
	}
}

func TestArcPathSweepDirection(t *testing.T) {
	// from -pi/4 to pi/4 the CCW sweep crosses angle zero.
	pts := ArcPath(r2.Vec{}, 1, -math.Pi/4, math.Pi/4, 2)
	mid := pts[1]
	if !d2.EqualWithin(mid, r2.Vec{X: 1}, tolerance) {
		t.Errorf("midpoint %v, want (1,0)", mid)
	}
}

func TestProfileWinding(t *testing.T) {
	// outer given CW, hole given CCW, both must be flipped.
	outer := []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	hole := []r2.Vec{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}
	p := NewProfile(outer, hole)
	if SignedArea(p.Outer) <= 0 {
		t.Error("outer boundary not CCW after normalization")
	}
	if SignedArea(p.Holes[0]) >= 0 {
		t.Error("hole not CW after normalization")
	}
}

func TestProfileSDF(t *testing.T) {
	outer := []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	hole := []r2.Vec{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}
	s := NewProfile(outer, hole).SDF()
	if d := s.Evaluate(r2.Vec{X: 5, Y: 5}); d <= 0 {
		t.Errorf("hole center should be outside the material: d=%g", d)
	}
	if d := s.Evaluate(r2.Vec{X: 2, Y: 2}); d >= 0 {
		t.Errorf("material point should be inside: d=%g", d)
	}
	if d := s.Evaluate(r2.Vec{X: -1, Y: -1}); d <= 0 {
		t.Errorf("exterior point should be outside: d=%g", d)
	}
}

func TestPolygonDistance(t *testing.T) {
	square := Polygon([]r2.Vec{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}})
	if d := square.Evaluate(r2.Vec{X: 2}); math.Abs(d-1) > tolerance {
		t.Errorf("outside distance %g, want 1", d)
	}
	if d := square.Evaluate(r2.Vec{}); math.Abs(d+1) > tolerance {
		t.Errorf("center distance %g, want -1", d)
	}
}
