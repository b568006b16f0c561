package render_test

import (
	"io"
	"os"
	"testing"

	"partforge/form3"
	"partforge/internal/d3"
	"partforge/render"
	"partforge/sdf"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

// imgDelta is the normalized image comparison tolerance (0 is a
// perfect match, 1 matches anything).
const imgDelta = 0

type viewConfig struct {
	// what position (point) to look at
	lookat r3.Vec
	// which way is up (direction)
	up r3.Vec
	// where the camera/eye located at (point)
	eyepos r3.Vec
	far    float64
	near   float64
}

// Exporting the same solid twice must produce pixel-identical renders.
func TestExportRenderDeterminism(t *testing.T) {
	view := viewConfig{
		up:     r3.Vec{Z: 1},
		eyepos: d3.Elem(3),
		near:   1,
		far:    10,
	}
	object := sdf.Union3D(
		form3.Cylinder(1.5, 0.5, 0.1),
		form3.Box(r3.Vec{X: 1.5, Y: 1.5, Z: 0.4}, 0.1),
	)
	names := [2]string{"detA", "detB"}
	pngs := [2]string{}
	for k, name := range names {
		stlPath := "test_" + name + ".stl"
		pngPath := "test_" + name + ".png"
		err := render.CreateSTL(stlPath, render.NewMesher(object, 100))
		if err != nil {
			t.Fatal(err)
		}
		stlToPNG(t, stlPath, pngPath, view)
		pngs[k] = pngPath
		defer os.Remove(stlPath)
	}
	if !equalImages(t, pngs[0], pngs[1]) {
		t.Error("two exports of the same solid rendered differently")
	}
	if !t.Failed() {
		os.Remove(pngs[0])
		os.Remove(pngs[1])
	}
}

func stlToPNG(t testing.TB, stlName, outputname string, view viewConfig) {
	mesh, err := fauxgl.LoadSTL(stlName)
	if err != nil {
		t.Fatal(err)
	}
	const (
		width, height = 640, 360 // output width and height in pixels
		scale         = 1        // optional supersampling
		fovy          = 30       // vertical field of view in degrees
	)

	var (
		far    = view.far
		near   = view.near
		eye    = fauxgl.V(view.eyepos.X, view.eyepos.Y, view.eyepos.Z) // camera position
		center = fauxgl.V(view.lookat.X, view.lookat.Y, view.lookat.Z) // view center position
		up     = fauxgl.V(view.up.X, view.up.Y, view.up.Z)             // up vector
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()                  // light direction
		color  = fauxgl.HexColor("#468966")                            // object color
	)

	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	// create a rendering context
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	// create transformation matrix and light direction
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)
	// use builtin phong shader
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	// render
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(width, height, image, resize.Bilinear)
	err = fauxgl.SavePNG(outputname, image)
	if err != nil {
		t.Fatal(err)
	}
}

func equalImages(t *testing.T, png1, png2 string) bool {
	fp1, err := os.Open(png1)
	if err != nil {
		t.Fatal(err)
	}
	defer fp1.Close()
	fp2, err := os.Open(png2)
	if err != nil {
		t.Fatal(err)
	}
	defer fp2.Close()
	b1, err := io.ReadAll(fp1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := io.ReadAll(fp2)
	if err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", b1, b2, imgDelta)
	if err != nil {
		t.Fatal(err)
	}
	return equal
}
