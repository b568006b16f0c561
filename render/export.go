package render

import (
	"math"

	"partforge/sdf"
)

// UpAxis selects which model axis maps to "up" in the exported mesh.
type UpAxis int

const (
	// UpAxisZ keeps geometry as modeled, Z up.
	UpAxisZ UpAxis = iota
	// UpAxisY rotates the model so Z up becomes Y up, for viewers and
	// game pipelines with a Y-up convention.
	UpAxisY
)

func (a UpAxis) String() string {
	switch a {
	case UpAxisZ:
		return "z"
	case UpAxisY:
		return "y"
	}
	return "unknown"
}

// ExportOptions adjust a solid for a target file's conventions before
// meshing. The zero value is not valid, use DefaultExportOptions.
type ExportOptions struct {
	// UnitScale multiplies all coordinates. Model units are
	// millimeters, a scale of 0.1 exports centimeters.
	UnitScale float64
	// UpAxis orients the exported mesh.
	UpAxis UpAxis
}

// DefaultExportOptions exports millimeters with Z up, unchanged.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{UnitScale: 1, UpAxis: UpAxisZ}
}

// Apply returns s transformed per the options. The distance field
// metric is preserved so meshing resolution stays meaningful.
func (o ExportOptions) Apply(s sdf.SDF3) sdf.SDF3 {
	if s == nil {
		return nil
	}
	if o.UpAxis == UpAxisY {
		s = sdf.Transform3D(s, sdf.RotateX(-math.Pi/2))
	}
	if o.UnitScale > 0 && o.UnitScale != 1 {
		s = sdf.ScaleUniform3D(s, o.UnitScale)
	}
	return s
}
