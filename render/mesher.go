package render

import (
	"errors"
	"io"

	"partforge/sdf"

	sdfxrender "github.com/deadsy/sdfx/render"
	sdfxsdf "github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// degenerateTol rejects marching cubes slivers whose vertices would
// collapse in the float32 coordinates of the mesh file formats.
const degenerateTol = 1e-6

// mesher tessellates an SDF3 with sdfx's uniform marching cubes and
// streams the result. Tessellation runs on the first ReadTriangles call.
type mesher struct {
	s      sdf.SDF3
	cells  int
	meshed bool
	buf    triangle3Buffer
}

// NewMesher returns a Renderer that meshes s at the given marching
// cubes resolution. meshCells is the number of cells along the longest
// axis of the solid's bounding box.
func NewMesher(s sdf.SDF3, meshCells int) Renderer {
	if s == nil {
		panic("nil SDF3 argument to NewMesher")
	}
	if meshCells < 2 {
		panic("meshCells must be 2 or larger")
	}
	return &mesher{s: s, cells: meshCells}
}

func (m *mesher) ReadTriangles(dst []Triangle3) (int, error) {
	if len(dst) == 0 {
		return 0, errors.New("empty triangle buffer passed to ReadTriangles")
	}
	if !m.meshed {
		m.mesh()
		m.meshed = true
	}
	if m.buf.Len() == 0 {
		return 0, io.EOF
	}
	return m.buf.Read(dst), nil
}

func (m *mesher) mesh() {
	mc := sdfxrender.NewMarchingCubesUniform(m.cells)
	tris := sdfxrender.ToTriangles(fieldAdapter{m.s}, mc)
	out := make([]Triangle3, 0, len(tris))
	for _, t := range tris {
		tri := Triangle3{V: [3]r3.Vec{
			fromV3(t[0]),
			fromV3(t[1]),
			fromV3(t[2]),
		}}
		if tri.Degenerate(degenerateTol) {
			continue
		}
		out = append(out, tri)
	}
	m.buf.Write(out)
}

// fieldAdapter exposes an SDF3 under sdfx's field interface.
type fieldAdapter struct {
	s sdf.SDF3
}

func (a fieldAdapter) Evaluate(p v3.Vec) float64 {
	return a.s.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (a fieldAdapter) BoundingBox() sdfxsdf.Box3 {
	bb := a.s.Bounds()
	return sdfxsdf.Box3{
		Min: v3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
		Max: v3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
	}
}

func fromV3(v v3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
