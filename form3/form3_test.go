package form3

import (
	"math"
	"testing"

	"partforge/internal/d3"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func TestBox(t *testing.T) {
	s := Box(r3.Vec{X: 2, Y: 4, Z: 6}, 0)
	if d := s.Evaluate(r3.Vec{}); math.Abs(d+1) > tol {
		t.Errorf("center distance %g, want -1", d)
	}
	if d := s.Evaluate(r3.Vec{X: 2}); math.Abs(d-1) > tol {
		t.Errorf("outside distance %g, want 1", d)
	}
	want := d3.Box{Min: r3.Vec{X: -1, Y: -2, Z: -3}, Max: r3.Vec{X: 1, Y: 2, Z: 3}}
	if !d3.Box(s.Bounds()).Equals(want, tol) {
		t.Errorf("bounds %v, want %v", s.Bounds(), want)
	}
}

func TestBoxPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("zero size should panic")
		}
	}()
	Box(r3.Vec{X: 1, Y: 0, Z: 1}, 0)
}

func TestSphere(t *testing.T) {
	s := Sphere(3)
	if d := s.Evaluate(r3.Vec{X: 5}); math.Abs(d-2) > tol {
		t.Errorf("distance %g, want 2", d)
	}
	if d := s.Evaluate(r3.Vec{}); math.Abs(d+3) > tol {
		t.Errorf("center distance %g, want -3", d)
	}
}

func TestCylinder(t *testing.T) {
	s := Cylinder(10, 2, 0)
	if d := s.Evaluate(r3.Vec{X: 4}); math.Abs(d-2) > tol {
		t.Errorf("radial distance %g, want 2", d)
	}
	if d := s.Evaluate(r3.Vec{Z: 7}); math.Abs(d-2) > tol {
		t.Errorf("axial distance %g, want 2", d)
	}
	if d := s.Evaluate(r3.Vec{}); d >= 0 {
		t.Errorf("center not inside: d=%g", d)
	}
}

func TestCapsule(t *testing.T) {
	s := Capsule(10, 2)
	// cap apex at z = 5.
	if d := s.Evaluate(r3.Vec{Z: 5}); math.Abs(d) > tol {
		t.Errorf("cap apex distance %g, want 0", d)
	}
	// diagonal to the cap center at z = 3.
	if d := s.Evaluate(r3.Vec{X: 3, Z: 3}); math.Abs(d-1) > tol {
		t.Errorf("cap diagonal distance %g, want 1", d)
	}
}

func TestCone(t *testing.T) {
	s := Cone(10, 4, 2, 0)
	if d := s.Evaluate(r3.Vec{}); d >= 0 {
		t.Errorf("center not inside: d=%g", d)
	}
	// outside the top radius at the top face height.
	if d := s.Evaluate(r3.Vec{X: 5, Z: 5}); d <= 0 {
		t.Errorf("beyond top edge not outside: d=%g", d)
	}
	// halfway up the radius of the slope midpoint is 3.
	if d := s.Evaluate(r3.Vec{X: 2.9}); d >= 0 {
		t.Errorf("slope interior point not inside: d=%g", d)
	}
	bb := s.Bounds()
	if bb.Max.X != 4 || bb.Max.Z != 5 {
		t.Errorf("bounds %v", bb)
	}
}

func TestLathe(t *testing.T) {
	// rectangle profile from the axis out to r=2, z in [-3,3] revolves
	// into a solid cylinder.
	profile := []r2.Vec{
		{X: 0, Y: -3}, {X: 2, Y: -3}, {X: 2, Y: 3}, {X: 0, Y: 3},
	}
	s := Lathe(profile)
	if d := s.Evaluate(r3.Vec{}); d >= 0 {
		t.Errorf("axis center not inside: d=%g", d)
	}
	if d := s.Evaluate(r3.Vec{X: 3}); math.Abs(d-1) > tol {
		t.Errorf("radial distance %g, want 1", d)
	}
	if d := s.Evaluate(r3.Vec{Y: 3}); math.Abs(d-1) > tol {
		t.Errorf("revolved radial distance %g, want 1", d)
	}
	bb := s.Bounds()
	if bb.Min.Z != -3 || bb.Max.Z != 3 || bb.Max.X != 2 {
		t.Errorf("bounds %v", bb)
	}
}
