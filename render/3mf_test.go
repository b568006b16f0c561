package render_test

import (
	"os"
	"testing"

	"partforge/form3"
	"partforge/render"

	"gonum.org/v1/gonum/spatial/r3"
)

func Test3MF(t *testing.T) {
	const path = "parts.3mf"
	defer os.Remove(path)
	box, err := render.RenderAll(render.NewMesher(form3.Box(r3.Vec{X: 1, Y: 1, Z: 1}, 0.1), 32))
	if err != nil {
		t.Fatal(err)
	}
	ball, err := render.RenderAll(render.NewMesher(form3.Sphere(0.5), 32))
	if err != nil {
		t.Fatal(err)
	}
	err = render.Create3MF(path,
		render.NamedModel{Name: "box", Model: box},
		render.NamedModel{Name: "ball", Model: ball},
	)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty 3mf package written")
	}
}

func Test3MFNoModels(t *testing.T) {
	if err := render.Create3MF("nope.3mf"); err == nil {
		t.Error("empty package accepted")
	}
}
