// Package matter compensates geometry for the physical behavior of
// 3D printing materials before export.
package matter

import "partforge/sdf"

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{shrink: 0.2e-2, pullShrink: 0.45} // 0.2% shrinkage
	// PETG shrinks more than PLA as it cools.
	PETG = ViscousMaterial{shrink: 0.4e-2, pullShrink: 0.55}
)

type ViscousMaterial struct {
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage.
	pullShrink float64
}

// Scale grows a solid to counter the material's thermal shrinkage so
// the cooled print matches the modeled dimensions.
func (m ViscousMaterial) Scale(s sdf.SDF3) sdf.SDF3 {
	scale := 1 / (1 - m.shrink)
	return sdf.ScaleUniform3D(s, scale)
}

// InternalDimScale oversizes an internal dimension (a bore or slot
// width) so the printed hole measures the requested size.
func (m ViscousMaterial) InternalDimScale(real float64) float64 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink
}
