// Package infill generates repeating lattice patterns (honeycomb or
// triangular grid) clipped to a boundary profile. Used to fill frame
// voids with printable structure instead of solid material.
package infill

import (
	"errors"
	"fmt"
	"math"
	"runtime/debug"

	"partforge/form2"
	"partforge/form3"
	"partforge/internal/d2"
	"partforge/sdf"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoInfill reports that no lattice can be generated for the given
// boundary and configuration. Callers render the boundary shape alone.
var ErrNoInfill = errors.New("infill: no pattern fits the boundary")

// shapeErr carries a recovered construction panic with its stack. It
// matches ErrNoInfill under errors.Is, generation failures are never
// fatal to the caller.
type shapeErr struct {
	panicObj any
	stack    string
}

func (e *shapeErr) Error() string {
	return fmt.Sprintf("infill: %v", e.panicObj)
}

func (e *shapeErr) Unwrap() error { return ErrNoInfill }

// Pattern selects the lattice type.
type Pattern int

const (
	None Pattern = iota
	Honeycomb
	Triangle
)

func (p Pattern) String() string {
	switch p {
	case None:
		return "none"
	case Honeycomb:
		return "honeycomb"
	case Triangle:
		return "triangle"
	}
	return "unknown"
}

// ParsePattern maps a pattern name to its value.
func ParsePattern(s string) (Pattern, error) {
	switch s {
	case "none", "":
		return None, nil
	case "honeycomb":
		return Honeycomb, nil
	case "triangle":
		return Triangle, nil
	}
	return None, errors.New("infill: unknown pattern " + s)
}

// Anchor selects which boundary edge the tiling sits flush against.
// It decides how partial cells look at the opposite edge, so it must
// be reproducible bit for bit for equal inputs.
type Anchor int

const (
	FromStart Anchor = iota // row 0 flush with the bounding box minimum edge
	FromEnd                 // row 0 flush with the bounding box maximum edge
)

// Config holds the lattice parameters. Derived geometry, recomputed
// whenever the boundary or any field changes, never persisted.
type Config struct {
	Pattern       Pattern
	CellSize      float64
	WallThickness float64
	Anchor        Anchor
}

const (
	// boundary expansion before tiling, in cell sizes. Keeps the
	// pattern's own edge artifacts outside the visible clip region.
	expandCells = 1.5
	// fraction of wall thickness the clip boundary is grown by, so the
	// lattice always overlaps the surrounding frame with no seam.
	clipOutset = 0.25
	// extra slab depth so the final intersection never leaves
	// coplanar faces.
	depthEpsilon = 1e-3
)

// Generate produces the lattice solid for a boundary profile extruded
// to the given depth. Returns (nil, ErrNoInfill) when the pattern is
// None, the boundary is degenerate, no cell fits, or construction
// panics; the caller's geometry stays valid without the infill part.
func Generate(boundary form2.Profile, depth float64, cfg Config) (s sdf.SDF3, err error) {
	if cfg.Pattern == None || boundary.Empty() || depth <= 0 || cfg.CellSize <= 0 {
		return nil, ErrNoInfill
	}
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = &shapeErr{panicObj: r, stack: string(debug.Stack())}
		}
	}()

	bbb := d2.Box(boundary.Bounds())
	if cfg.CellSize > d2.Max(bbb.Size()) {
		return nil, ErrNoInfill
	}

	boundSDF := boundary.SDF()
	expanded := sdf.Offset2D(boundSDF, expandCells*cfg.CellSize)
	bb := d2.Box(expanded.Bounds())

	var pattern sdf.SDF3
	switch cfg.Pattern {
	case Honeycomb:
		pattern = honeycombSlab(boundary, expanded, bb, depth, cfg)
	case Triangle:
		pattern = triangleGrid(bb, depth, cfg)
	}
	if pattern == nil {
		return nil, ErrNoInfill
	}

	clip := sdf.Extrude3D(sdf.Offset2D(boundSDF, clipOutset*cfg.WallThickness), depth)
	return sdf.Intersect3D(pattern, clip), nil
}

// holeRadius is the hexagon hole radius leaving a WallThickness wide
// wall between adjacent hexagon flats. Non-positive means the wall is
// too thick for any hole to fit and the fill degrades to a solid slab.
func holeRadius(cfg Config) float64 {
	return cfg.CellSize - cfg.WallThickness/math.Sqrt(3)
}

// honeycombSlab builds the hex-perforated slab covering bb.
func honeycombSlab(boundary form2.Profile, expanded sdf.SDF2, bb d2.Box, depth float64, cfg Config) sdf.SDF3 {
	slab := form2.Polygon([]r2.Vec{
		bb.Min,
		{X: bb.Max.X, Y: bb.Min.Y},
		bb.Max,
		{X: bb.Min.X, Y: bb.Max.Y},
	})
	r := holeRadius(cfg)
	if r <= 0 {
		// wall too thick, solid slab with zero holes.
		return sdf.Extrude3D(slab, depth+depthEpsilon)
	}
	centers := hexCenters(boundary, expanded, bb, cfg)
	if len(centers) == 0 {
		return nil
	}
	hex := form2.Polygon(form2.ArcPath(r2.Vec{}, r, math.Pi/6, math.Pi/6, 6))
	holes := sdf.Multi2D(hex, centers)
	return sdf.Extrude3D(sdf.Difference2D(slab, holes), depth+depthEpsilon)
}

// hexCenters produces the candidate hexagon centers over bb, culled
// against the expanded boundary. Standard hex packing, 1.5*cell row
// spacing, sqrt(3)*cell column spacing, odd rows offset half a column.
func hexCenters(boundary form2.Profile, expanded sdf.SDF2, bb d2.Box, cfg Config) []r2.Vec {
	rowStep := 1.5 * cfg.CellSize
	colStep := math.Sqrt(3) * cfg.CellSize

	// triangular boundaries get a cheap exact cull before the SDF.
	var tri []r2.Vec
	if len(boundary.Outer) == 3 {
		tri = expandTriangle(boundary.Outer, expandCells*cfg.CellSize)
	}
	contains := func(p r2.Vec) bool {
		if tri != nil {
			if !form2.PointInTriangle(p, tri[0], tri[1], tri[2]) {
				return false
			}
			return true
		}
		return expanded.Evaluate(p) <= 0
	}

	var centers []r2.Vec
	size := bb.Size()
	nrows := int(size.Y/rowStep) + 1
	ncols := int(size.X/colStep) + 1
	for row := 0; row <= nrows; row++ {
		var y float64
		if cfg.Anchor == FromStart {
			y = bb.Min.Y + float64(row)*rowStep
		} else {
			y = bb.Max.Y - float64(row)*rowStep
		}
		xoff := 0.0
		if row%2 == 1 {
			xoff = colStep / 2
		}
		for col := 0; col <= ncols; col++ {
			var x float64
			if cfg.Anchor == FromStart {
				x = bb.Min.X + xoff + float64(col)*colStep
			} else {
				x = bb.Max.X - xoff - float64(col)*colStep
			}
			p := r2.Vec{X: x, Y: y}
			if contains(p) {
				centers = append(centers, p)
			}
		}
	}
	return centers
}

// expandTriangle offsets each edge of a CCW triangle outward and
// intersects adjacent offset lines to recover the corners.
func expandTriangle(tri []r2.Vec, offset float64) []r2.Vec {
	out := make([]r2.Vec, 3)
	for i := 0; i < 3; i++ {
		// the two edges meeting at vertex i.
		prev := tri[(i+2)%3]
		cur := tri[i]
		next := tri[(i+1)%3]
		d1 := d2.Normalize(r2.Sub(cur, prev))
		d2v := d2.Normalize(r2.Sub(next, cur))
		// outward normals for CCW winding point right of travel.
		n1 := r2.Vec{X: d1.Y, Y: -d1.X}
		n2 := r2.Vec{X: d2v.Y, Y: -d2v.X}
		p1 := r2.Add(cur, r2.Scale(offset, n1))
		p2 := r2.Add(cur, r2.Scale(offset, n2))
		out[i] = form2.LineLineIntersect(p1, d1, p2, d2v)
	}
	return out
}

// triangleGrid builds three families of thin strips at 0, +60 and -60
// degrees and merges them with a plain union. Each family lays its
// first strip flush with the anchor edge of the region and steps
// inward one cell at a time. Strips never need pairwise booleans, only
// the final boundary intersection.
func triangleGrid(bb d2.Box, depth float64, cfg Config) sdf.SDF3 {
	if cfg.WallThickness <= 0 {
		return nil
	}
	center := bb.Center()
	// strips long enough to cross the region at any angle.
	length := r2.Norm(bb.Size()) + 2*cfg.CellSize
	corners := bb.Vertices()

	var strips []sdf.SDF3
	for _, angle := range []float64{0, math.Pi / 3, -math.Pi / 3} {
		rot := sdf.RotateZ(angle)
		// perpendicular offset axis of this family.
		perp := r2.Vec{X: -math.Sin(angle), Y: math.Cos(angle)}

		// extent of the region projected onto the offset axis.
		pmin := r2.Dot(perp, corners[0])
		pmax := pmin
		for _, q := range corners[1:] {
			d := r2.Dot(perp, q)
			pmin = math.Min(pmin, d)
			pmax = math.Max(pmax, d)
		}

		n := int((pmax - pmin) / cfg.CellSize)
		for k := 0; k <= n; k++ {
			// centerline offset with the first strip's outer edge on
			// the anchor extent.
			var off float64
			if cfg.Anchor == FromStart {
				off = pmin + cfg.WallThickness/2 + float64(k)*cfg.CellSize
			} else {
				off = pmax - cfg.WallThickness/2 - float64(k)*cfg.CellSize
			}
			strip := form3.Box(r3.Vec{X: length, Y: cfg.WallThickness, Z: depth + depthEpsilon}, 0)
			pos := r2.Add(center, r2.Scale(off-r2.Dot(perp, center), perp))
			m := sdf.Translate3D(r3.Vec{X: pos.X, Y: pos.Y}).Mul(rot)
			strips = append(strips, sdf.Transform3D(strip, m))
		}
	}
	return sdf.Union3D(strips...)
}
