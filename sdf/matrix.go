package sdf

import (
	"math"

	"partforge/internal/d2"
	"partforge/internal/d3"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Affine transform matrices for positioning solids before boolean evaluation.
// All constructors produce affine matrices (bottom row 0 0 [0] 1), which is
// what the inverse implementations assume.

// m33 is a 3x3 row-major matrix operating on 2d homogeneous coordinates.
type m33 [9]float64

// m44 is a 4x4 row-major matrix operating on 3d homogeneous coordinates.
type m44 [16]float64

// Identity2D returns the 2d identity transform.
func Identity2D() m33 {
	return m33{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translate2D returns a 2d translation matrix.
func Translate2D(v r2.Vec) m33 {
	return m33{
		1, 0, v.X,
		0, 1, v.Y,
		0, 0, 1,
	}
}

// Scale2D returns a 2d scaling matrix.
func Scale2D(v r2.Vec) m33 {
	return m33{
		v.X, 0, 0,
		0, v.Y, 0,
		0, 0, 1,
	}
}

// Rotate2D returns a 2d rotation matrix, theta in radians, counter-clockwise.
func Rotate2D(theta float64) m33 {
	c := math.Cos(theta)
	s := math.Sin(theta)
	return m33{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Mul multiplies two 2d transforms, a then b applied as a.Mul(b) == a∘b.
func (a m33) Mul(b m33) m33 {
	var m m33
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i*3+k] * b[k*3+j]
			}
			m[i*3+j] = sum
		}
	}
	return m
}

// MulPosition transforms a 2d position.
func (a m33) MulPosition(v r2.Vec) r2.Vec {
	return r2.Vec{
		X: a[0]*v.X + a[1]*v.Y + a[2],
		Y: a[3]*v.X + a[4]*v.Y + a[5],
	}
}

// Inverse inverts an affine 2d transform.
func (a m33) Inverse() m33 {
	det := a[0]*a[4] - a[1]*a[3]
	d := 1 / det
	// inverse of the linear part.
	i00 := a[4] * d
	i01 := -a[1] * d
	i10 := -a[3] * d
	i11 := a[0] * d
	return m33{
		i00, i01, -(i00*a[2] + i01*a[5]),
		i10, i11, -(i10*a[2] + i11*a[5]),
		0, 0, 1,
	}
}

// MulBox returns a bounding box that contains the transformed box.
func (a m33) MulBox(bb r2.Box) r2.Box {
	vs := d2.Box(bb).Vertices()
	out := d2.Box{Min: a.MulPosition(vs[0]), Max: a.MulPosition(vs[0])}
	for _, v := range vs[1:] {
		out = out.Include(a.MulPosition(v))
	}
	return r2.Box(out)
}

// Identity3D returns the 3d identity transform.
func Identity3D() m44 {
	return m44{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate3D returns a 3d translation matrix.
func Translate3D(v r3.Vec) m44 {
	return m44{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scale3D returns a 3d scaling matrix.
func Scale3D(v r3.Vec) m44 {
	return m44{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation about the X axis, theta in radians.
func RotateX(theta float64) m44 {
	c := math.Cos(theta)
	s := math.Sin(theta)
	return m44{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation about the Y axis, theta in radians.
func RotateY(theta float64) m44 {
	c := math.Cos(theta)
	s := math.Sin(theta)
	return m44{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation about the Z axis, theta in radians.
func RotateZ(theta float64) m44 {
	c := math.Cos(theta)
	s := math.Sin(theta)
	return m44{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two 3d transforms.
func (a m44) Mul(b m44) m44 {
	var m m44
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[i*4+k] * b[k*4+j]
			}
			m[i*4+j] = sum
		}
	}
	return m
}

// MulPosition transforms a 3d position.
func (a m44) MulPosition(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: a[0]*v.X + a[1]*v.Y + a[2]*v.Z + a[3],
		Y: a[4]*v.X + a[5]*v.Y + a[6]*v.Z + a[7],
		Z: a[8]*v.X + a[9]*v.Y + a[10]*v.Z + a[11],
	}
}

// Inverse inverts an affine 3d transform.
func (a m44) Inverse() m44 {
	// cofactor inverse of the upper-left 3x3.
	c00 := a[5]*a[10] - a[6]*a[9]
	c01 := a[2]*a[9] - a[1]*a[10]
	c02 := a[1]*a[6] - a[2]*a[5]
	c10 := a[6]*a[8] - a[4]*a[10]
	c11 := a[0]*a[10] - a[2]*a[8]
	c12 := a[2]*a[4] - a[0]*a[6]
	c20 := a[4]*a[9] - a[5]*a[8]
	c21 := a[1]*a[8] - a[0]*a[9]
	c22 := a[0]*a[5] - a[1]*a[4]
	det := a[0]*c00 + a[1]*c10 + a[2]*c20
	d := 1 / det
	i00, i01, i02 := c00*d, c01*d, c02*d
	i10, i11, i12 := c10*d, c11*d, c12*d
	i20, i21, i22 := c20*d, c21*d, c22*d
	tx, ty, tz := a[3], a[7], a[11]
	return m44{
		i00, i01, i02, -(i00*tx + i01*ty + i02*tz),
		i10, i11, i12, -(i10*tx + i11*ty + i12*tz),
		i20, i21, i22, -(i20*tx + i21*ty + i22*tz),
		0, 0, 0, 1,
	}
}

// MulBox returns a bounding box that contains the transformed box.
func (a m44) MulBox(bb r3.Box) r3.Box {
	vs := d3.Box(bb).Vertices()
	out := d3.Box{Min: a.MulPosition(vs[0]), Max: a.MulPosition(vs[0])}
	for _, v := range vs[1:] {
		out = out.Include(a.MulPosition(v))
	}
	return r3.Box(out)
}
