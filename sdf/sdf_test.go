package sdf

import (
	"math"
	"testing"

	"partforge/internal/d2"
	"partforge/internal/d3"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const testTol = 1e-9

// circle2 is a minimal exact SDF2 for exercising the combinators.
type circle2 struct {
	center r2.Vec
	radius float64
}

func (c *circle2) Evaluate(p r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, c.center)) - c.radius
}

func (c *circle2) Bounds() r2.Box {
	return r2.Box{
		Min: r2.Sub(c.center, d2.Elem(c.radius)),
		Max: r2.Add(c.center, d2.Elem(c.radius)),
	}
}

func TestMatrixInverse(t *testing.T) {
	m := Translate3D(r3.Vec{X: 1, Y: -2, Z: 3}).
		Mul(RotateZ(0.7)).
		Mul(RotateX(-1.2)).
		Mul(Scale3D(r3.Vec{X: 2, Y: 2, Z: 2}))
	inv := m.Inverse()
	pts := []r3.Vec{
		{},
		{X: 1, Y: 2, Z: 3},
		{X: -5, Y: 0.5, Z: 12},
	}
	for _, p := range pts {
		q := inv.MulPosition(m.MulPosition(p))
		if !d3.EqualWithin(p, q, testTol) {
			t.Errorf("inverse roundtrip %v -> %v", p, q)
		}
	}
}

func TestMatrix2DInverse(t *testing.T) {
	m := Translate2D(r2.Vec{X: 3, Y: -1}).Mul(Rotate2D(1.1)).Mul(Scale2D(r2.Vec{X: 0.5, Y: 4}))
	inv := m.Inverse()
	pts := []r2.Vec{{}, {X: 2, Y: 7}, {X: -0.25, Y: 1}}
	for _, p := range pts {
		q := inv.MulPosition(m.MulPosition(p))
		if !d2.EqualWithin(p, q, testTol) {
			t.Errorf("inverse roundtrip %v -> %v", p, q)
		}
	}
}

func TestExtrudeCentered(t *testing.T) {
	c := &circle2{radius: 5}
	s := Extrude3D(c, 8)
	bb := s.Bounds()
	if bb.Min.Z != -4 || bb.Max.Z != 4 {
		t.Errorf("extrusion not centered on z=0: %v", bb)
	}
	if d := s.Evaluate(r3.Vec{}); d >= 0 {
		t.Errorf("center of solid not inside: d=%g", d)
	}
	if d := s.Evaluate(r3.Vec{Z: 4.5}); d <= 0 {
		t.Errorf("point above cap not outside: d=%g", d)
	}
	// field symmetric in z.
	d0 := s.Evaluate(r3.Vec{X: 2, Y: 1, Z: 3})
	d1 := s.Evaluate(r3.Vec{X: 2, Y: 1, Z: -3})
	if math.Abs(d0-d1) > testTol {
		t.Errorf("asymmetric extrusion: %g vs %g", d0, d1)
	}
}

func TestExtrudeBeveledChamfer(t *testing.T) {
	c := &circle2{radius: 5}
	s := ExtrudeBeveled(c, 8, 1, 1)
	// edge corner (r=5, z=4) is cut off.
	if d := s.Evaluate(r3.Vec{X: 4.95, Z: 3.95}); d <= 0 {
		t.Errorf("chamfered corner still solid: d=%g", d)
	}
	// deep interior unaffected.
	if d := s.Evaluate(r3.Vec{}); d >= 0 {
		t.Errorf("interior lost: d=%g", d)
	}
	// mid-height surface unaffected away from the bevel.
	if d := s.Evaluate(r3.Vec{X: 4.9}); d >= 0 {
		t.Errorf("mid-height wall lost: d=%g", d)
	}
}

func TestExtrudeBeveledRounded(t *testing.T) {
	c := &circle2{radius: 5}
	s := ExtrudeBeveled(c, 8, 1, 4)
	// the rounded edge center (r=4, z=3) keeps distance -1 from surface.
	d := s.Evaluate(r3.Vec{X: 4, Z: 3})
	if math.Abs(d+1) > 1e-6 {
		t.Errorf("round center distance %g, want -1", d)
	}
	// 45 degrees out along the round the surface sits at radius 1.
	p := r3.Vec{X: 4 + sqrtHalf, Z: 3 + sqrtHalf}
	if d := s.Evaluate(p); math.Abs(d) > 1e-6 {
		t.Errorf("round surface distance %g, want 0", d)
	}
}

func TestExtrudeBeveledDegenerate(t *testing.T) {
	c := &circle2{radius: 5}
	s := ExtrudeBeveled(c, 8, 0, 3)
	d0 := s.Evaluate(r3.Vec{X: 1, Y: 2, Z: 3})
	d1 := Extrude3D(c, 8).Evaluate(r3.Vec{X: 1, Y: 2, Z: 3})
	if d0 != d1 {
		t.Errorf("zero bevel should match plain extrusion: %g vs %g", d0, d1)
	}
}

func TestIntersectBounds(t *testing.T) {
	a := Extrude3D(&circle2{radius: 5}, 4)
	b := Translate3DBy(a, r3.Vec{X: 3})
	s := Intersect3D(a, b)
	bb := d3.Box(s.Bounds())
	want := d3.Box{
		Min: r3.Vec{X: -2, Y: -5, Z: -2},
		Max: r3.Vec{X: 5, Y: 5, Z: 2},
	}
	if !bb.Equals(want, testTol) {
		t.Errorf("intersection bounds %v, want %v", bb, want)
	}
	// self intersection keeps the member bounds.
	self := Intersect3D(a, a)
	if !d3.Box(self.Bounds()).Equals(d3.Box(a.Bounds()), testTol) {
		t.Errorf("self intersection bounds changed: %v", self.Bounds())
	}
}

func TestCombine(t *testing.T) {
	a := Extrude3D(&circle2{radius: 5}, 4)
	hole := Extrude3D(&circle2{radius: 1}, 6)
	s, err := Combine([]Step{
		{Solid: a, Op: OpAdd},
		{Solid: hole, Op: OpSubtract},
		{Solid: nil, Op: OpAdd}, // skipped
	})
	if err != nil {
		t.Fatal(err)
	}
	if d := s.Evaluate(r3.Vec{}); d <= 0 {
		t.Errorf("hole center still solid: d=%g", d)
	}
	if d := s.Evaluate(r3.Vec{X: 3}); d >= 0 {
		t.Errorf("ring material missing: d=%g", d)
	}
	if _, err := Combine(nil); err == nil {
		t.Error("empty step list accepted")
	}
}

// panicBounds blows up when its bounds are queried, standing in for a
// solid whose construction went wrong upstream.
type panicBounds struct{}

func (panicBounds) Evaluate(p r3.Vec) float64 { return 0 }
func (panicBounds) Bounds() r3.Box            { panic("no bounds") }

func TestCombineFaultIsolation(t *testing.T) {
	a := Extrude3D(&circle2{radius: 5}, 4)
	s, err := Combine([]Step{
		{Solid: a, Op: OpAdd},
		{Solid: panicBounds{}, Op: OpIntersect},
	})
	if err != nil {
		t.Fatal(err)
	}
	// the failing step degrades the result to the accumulated bounds.
	if s.Bounds() != a.Bounds() {
		t.Errorf("fallback bounds %v, want %v", s.Bounds(), a.Bounds())
	}
	if d := s.Evaluate(r3.Vec{}); d >= 0 {
		t.Errorf("fallback box center not solid: d=%g", d)
	}

	// a panicking seed leaves nothing to fall back on.
	if _, err := Combine([]Step{{Solid: panicBounds{}, Op: OpAdd}}); err == nil {
		t.Error("all-failing step list accepted")
	}
}

func TestFallbackBox(t *testing.T) {
	bb := r3.Box{Min: r3.Vec{X: -1, Y: -2, Z: -3}, Max: r3.Vec{X: 1, Y: 2, Z: 3}}
	s := FallbackBox(bb)
	if s.Bounds() != bb {
		t.Errorf("bounds %v, want %v", s.Bounds(), bb)
	}
	if d := s.Evaluate(r3.Vec{}); math.Abs(d+1) > testTol {
		t.Errorf("center distance %g, want -1", d)
	}
	if d := s.Evaluate(r3.Vec{X: 2}); math.Abs(d-1) > testTol {
		t.Errorf("outside distance %g, want 1", d)
	}
}

func TestOffsetAndUnion(t *testing.T) {
	a := &circle2{radius: 2}
	grown := Offset2D(a, 1)
	if d := grown.Evaluate(r2.Vec{X: 2.5}); d >= 0 {
		t.Errorf("offset did not grow: d=%g", d)
	}
	b := &circle2{center: r2.Vec{X: 10}, radius: 2}
	u := Union2D(a, b)
	if d := u.Evaluate(r2.Vec{X: 10}); d >= 0 {
		t.Errorf("union missing second member: d=%g", d)
	}
	bb := d2.Box(u.Bounds())
	if bb.Min.X != -2 || bb.Max.X != 12 {
		t.Errorf("union bounds %v", bb)
	}
}
