// Package render turns solids into triangle meshes and writes them to
// mesh file formats. Meshing happens exactly once, here, at the export
// boundary. Everything upstream stays an exact signed distance field.
package render

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the triangle's unit normal by the right hand rule.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if the triangle has two vertices within tol
// of one another and spans no area.
func (t Triangle3) Degenerate(tol float64) bool {
	return r3.Norm(r3.Sub(t.V[0], t.V[1])) < tol ||
		r3.Norm(r3.Sub(t.V[1], t.V[2])) < tol ||
		r3.Norm(r3.Sub(t.V[2], t.V[0])) < tol
}

// Renderer streams a solid's surface as triangles. ReadTriangles
// follows io.Reader semantics: it fills dst, returns the count read and
// io.EOF once the surface is exhausted.
type Renderer interface {
	ReadTriangles(dst []Triangle3) (int, error)
}

// RenderAll reads the full contents of a Renderer and returns the
// triangles read. io.EOF is consumed, not returned.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var err error
	var nt int
	result := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		if err != nil {
			break
		}
		result = append(result, buf[:nt]...)
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

type triangle3Buffer struct {
	buf []Triangle3
}

// Read reads from this buffer.
func (b *triangle3Buffer) Read(t []Triangle3) int {
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n
}

// Write appends triangles to this buffer.
func (b *triangle3Buffer) Write(t []Triangle3) int {
	b.buf = append(b.buf, t...)
	return len(t)
}

func (b *triangle3Buffer) Len() int { return len(b.buf) }
