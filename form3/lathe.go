package form3

import (
	"partforge/form2"
	"partforge/sdf"

	"gonum.org/v1/gonum/spatial/r2"
)

// Lathe revolves a closed polygon profile about the Z axis. The
// profile lives in the XZ half plane, X is the radius from the axis
// and Y becomes the Z of the solid. Used for tube and barrel shapes
// like stand feet. Panics on profiles with fewer than 3 vertices or
// negative radii.
func Lathe(profile []r2.Vec) sdf.SDF3 {
	if len(profile) < 3 {
		panic("lathe profile needs at least 3 vertices")
	}
	for _, p := range profile {
		if p.X < 0 {
			panic("lathe profile crosses the axis of revolution")
		}
	}
	return sdf.Revolve3D(form2.Polygon(profile))
}
