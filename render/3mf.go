package render

import (
	"errors"

	"github.com/hpinc/go3mf"
)

// NamedModel is one object of a 3MF package: a triangle mesh with the
// part name it is listed under.
type NamedModel struct {
	Name  string
	Model []Triangle3
}

// Create3MF writes the models as a 3MF package with one named mesh
// object per model, all placed in the build. Dimensions are interpreted
// as millimeters.
func Create3MF(path string, models ...NamedModel) error {
	if len(models) == 0 {
		return errors.New("no models to write")
	}
	m := new(go3mf.Model)
	m.Units = go3mf.UnitMillimeter
	for k, nm := range models {
		if len(nm.Model) == 0 {
			return errors.New("empty triangle slice for model " + nm.Name)
		}
		obj := &go3mf.Object{
			ID:   uint32(k + 1),
			Name: nm.Name,
			Mesh: mesh3MF(nm.Model),
		}
		m.Resources.Objects = append(m.Resources.Objects, obj)
		m.Build.Items = append(m.Build.Items, &go3mf.Item{ObjectID: obj.ID})
	}
	w, err := go3mf.CreateWriter(path)
	if err != nil {
		return err
	}
	if err := w.Encode(m); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// mesh3MF indexes the triangle soup into a 3MF mesh, merging vertices
// that agree exactly after the float32 conversion.
func mesh3MF(model []Triangle3) *go3mf.Mesh {
	mesh := new(go3mf.Mesh)
	index := make(map[go3mf.Point3D]uint32)
	add := func(p go3mf.Point3D) uint32 {
		if vi, ok := index[p]; ok {
			return vi
		}
		vi := uint32(len(mesh.Vertices.Vertex))
		mesh.Vertices.Vertex = append(mesh.Vertices.Vertex, p)
		index[p] = vi
		return vi
	}
	for _, t := range model {
		var vi [3]uint32
		for j, v := range t.V {
			vi[j] = add(go3mf.Point3D{float32(v.X), float32(v.Y), float32(v.Z)})
		}
		if vi[0] == vi[1] || vi[1] == vi[2] || vi[2] == vi[0] {
			continue // collapsed by the float32 rounding
		}
		mesh.Triangles.Triangle = append(mesh.Triangles.Triangle, go3mf.Triangle{
			V1: vi[0], V2: vi[1], V3: vi[2],
		})
	}
	return mesh
}
