package project

import (
	"math"

	"partforge/form2"
	"partforge/form3"
	"partforge/infill"
	"partforge/part"
	"partforge/sdf"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// frame is a triangular wall-hook frame: a hollow triangle with a grip
// ring at the apex, rounded foot bumps at the base corners, capsule
// feet extending past the base, and optional lattice infill in the
// inner void. The profile lives in the XY plane, Y up, extruded along Z.
type frame struct{}

func init() {
	Register(frame{})
}

const (
	// fraction of the wall thickness a bevel radius override maps to.
	bevelScale = 0.5
	// how far the feet reach into the frame past the base corners,
	// as a fraction of the foot radius. Guarantees the union overlap.
	footJointOverlap = 0.35
	// arc resolution of the grip ring and bore.
	ringSegments = 24
	boreSegments = 32
	// fillet arc resolution.
	filletSegments = 8
)

func (frame) Name() string { return "frame" }

func (frame) Schema() Schema {
	return Schema{
		{Name: "baseWidth", Default: 50, Min: 20, Max: 150, Step: 1, Unit: Length},
		{Name: "height", Default: 60, Min: 30, Max: 200, Step: 1, Unit: Length},
		{Name: "wallThickness", Default: 3, Min: 1, Max: 10, Step: 0.5, Unit: Length},
		{Name: "depth", Default: 8, Min: 2, Max: 30, Step: 0.5, Unit: Length},
		{Name: "cornerFillet", Default: 3, Min: 0, Max: 12, Step: 0.5, Unit: Length},
		{Name: "gripDiameter", Default: 16, Min: 4, Max: 80, Step: 1, Unit: Length},
		{Name: "footLength", Default: 12, Min: 4, Max: 40, Step: 1, Unit: Length},
		{Name: "fillPattern", Default: 1, Min: 0, Max: 2, Step: 1, Unit: Count, Options: []float64{0, 1, 2}},
		{Name: "cellSize", Default: 6, Min: 2, Max: 20, Step: 0.5, Unit: Length},
		{Name: "fillWall", Default: 0.8, Min: 0.2, Max: 15, Step: 0.1, Unit: Length},
		{Name: "fillAnchor", Default: 0, Min: 0, Max: 1, Step: 1, Unit: Count, Options: []float64{0, 1}},
	}
}

func (frame) CardinalityKeys() []string {
	return []string{"fillPattern"}
}

// PartParams keeps unrelated geometry cached across edits: a cell size
// change rebuilds only the infill, a foot length change only the feet.
func (frame) PartParams(kind part.Kind) []string {
	switch kind {
	case part.KindFrame:
		return []string{"baseWidth", "height", "wallThickness", "depth", "cornerFillet", "gripDiameter"}
	case part.KindFoot:
		return []string{"baseWidth", "height", "depth", "footLength"}
	case part.KindInfill:
		return []string{
			"baseWidth", "height", "wallThickness", "depth", "cornerFillet",
			"gripDiameter", "fillPattern", "cellSize", "fillWall", "fillAnchor",
		}
	}
	return nil
}

func (frame) Parts(params Params) []part.Part {
	parts := []part.Part{
		part.New("frame", part.KindFrame),
		part.New("foot-0", part.KindFoot),
		part.New("foot-1", part.KindFoot),
	}
	if params["fillPattern"] != 0 {
		parts = append(parts, part.New("infill", part.KindInfill))
	}
	return parts
}

func (f frame) Build(p part.Part, params Params) sdf.SDF3 {
	switch p.Kind {
	case part.KindFrame:
		return f.buildBody(p, params)
	case part.KindFoot:
		return f.buildFoot(p.ID == "foot-1", params)
	case part.KindInfill:
		return f.buildInfill(params)
	case part.KindBase, part.KindFin:
		panic("frame: kind not part of this family: " + p.Kind.String())
	}
	panic("frame: unknown part kind")
}

func (frame) Bounds(params Params) r3.Box {
	bw := params["baseWidth"]
	h := params["height"]
	w := params["wallThickness"]
	depth := params["depth"]
	margin := w + params["footLength"]
	return r3.Box{
		Min: r3.Vec{X: -bw/2 - margin, Y: -margin, Z: -depth / 2},
		Max: r3.Vec{X: bw/2 + margin, Y: h + params["gripDiameter"]/2 + w, Z: depth / 2},
	}
}

// corners returns the centerline triangle: base left, base right, apex.
func (frame) corners(params Params) (a, b, c r2.Vec) {
	bw := params["baseWidth"]
	a = r2.Vec{X: -bw / 2}
	b = r2.Vec{X: bw / 2}
	c = r2.Vec{Y: params["height"]}
	return a, b, c
}

// buildBody constructs the frame profile and extrudes it with the
// part's bevel override. Panics on parameter combinations where the
// grip ring no longer fits the triangle, the instance boundary
// degrades those to the bounding box placeholder.
func (f frame) buildBody(p part.Part, params Params) sdf.SDF3 {
	profile := f.bodyProfile(params)
	w := params["wallThickness"]
	bevel := p.Overrides.BevelRadius * w * bevelScale
	return sdf.ExtrudeBeveled(profile.SDF(), params["depth"], bevel, p.Overrides.BevelSegments)
}

func (f frame) bodyProfile(params Params) form2.Profile {
	w := params["wallThickness"]
	half := w / 2
	gripR := params["gripDiameter"] / 2
	ringOuter := gripR + w
	a, b, c := f.corners(params)

	// the ring must fit inside the triangle with room for the legs.
	if 2*ringOuter >= params["baseWidth"] || 2*ringOuter >= params["height"] {
		panic("frame: grip ring exceeds frame dimensions")
	}

	outer := f.boundary(a, b, c, half, ringOuter, w, params)
	void := f.voidLoop(a, b, c, half, ringOuter, params)
	bore := form2.ArcPath(c, gripR, 0, 0, boreSegments)
	return form2.NewProfile(outer, void, bore)
}

// boundary builds the outer loop: offset base and legs outward by
// half a wall, splice the legs into the grip ring over the apex, and
// round the base corners into foot bumps.
func (frame) boundary(a, b, c r2.Vec, half, ringOuter, bumpRadius float64, params Params) []r2.Vec {
	baseDir := r2.Vec{X: 1}
	upLeft := r2.Unit(r2.Sub(c, a))  // along the left leg toward the apex
	upRight := r2.Unit(r2.Sub(c, b)) // along the right leg toward the apex

	// offset lines: base down, legs outward.
	basePt := r2.Add(a, r2.Vec{Y: -half})
	leftPt := r2.Add(a, r2.Scale(half, outwardNormal(upLeft, false)))
	rightPt := r2.Add(b, r2.Scale(half, outwardNormal(upRight, true)))

	bl := form2.LineLineIntersect(basePt, baseDir, leftPt, upLeft)
	br := form2.LineLineIntersect(basePt, baseDir, rightPt, upRight)

	pr, ok := form2.LineCircleIntersect(br, upRight, c, ringOuter)
	if !ok {
		panic("frame: right leg misses the grip ring")
	}
	pl, ok := form2.LineCircleIntersect(bl, upLeft, c, ringOuter)
	if !ok {
		panic("frame: left leg misses the grip ring")
	}

	thetaR := math.Atan2(pr.Y-c.Y, pr.X-c.X)
	thetaL := math.Atan2(pl.Y-c.Y, pl.X-c.X)
	ring := form2.ArcPath(c, ringOuter, thetaR, thetaL, ringSegments)

	verts := []form2.FilletVertex{
		{P: bl, Radius: bumpRadius},
		{P: br, Radius: bumpRadius},
	}
	for _, q := range ring {
		verts = append(verts, form2.FilletVertex{P: q})
	}
	return form2.RoundedPolygonPath(verts, filletSegments)
}

// voidLoop builds the inner void: legs and base offset inward by half
// a wall, base corners filleted, apex cut by an arc hugging the ring's
// outer circle so the ring wall stays solid.
func (frame) voidLoop(a, b, c r2.Vec, half, ringOuter float64, params Params) []r2.Vec {
	baseDir := r2.Vec{X: 1}
	upLeft := r2.Unit(r2.Sub(c, a))
	upRight := r2.Unit(r2.Sub(c, b))

	basePt := r2.Add(a, r2.Vec{Y: half})
	leftPt := r2.Sub(a, r2.Scale(half, outwardNormal(upLeft, false)))
	rightPt := r2.Sub(b, r2.Scale(half, outwardNormal(upRight, true)))

	bl := form2.LineLineIntersect(basePt, baseDir, leftPt, upLeft)
	br := form2.LineLineIntersect(basePt, baseDir, rightPt, upRight)

	vr, ok := form2.LineCircleIntersect(br, upRight, c, ringOuter)
	if !ok {
		panic("frame: right void edge misses the grip ring")
	}
	vl, ok := form2.LineCircleIntersect(bl, upLeft, c, ringOuter)
	if !ok {
		panic("frame: left void edge misses the grip ring")
	}

	// the void's top arc wraps under the ring: traverse CW from the
	// right splice to the left splice through the ring's bottom, which
	// is the reverse of the CCW arc from left to right.
	thetaR := math.Atan2(vr.Y-c.Y, vr.X-c.X)
	thetaL := math.Atan2(vl.Y-c.Y, vl.X-c.X)
	arc := form2.ArcPath(c, ringOuter, thetaL, thetaR, ringSegments)

	cf := params["cornerFillet"]
	verts := []form2.FilletVertex{
		{P: bl, Radius: cf},
		{P: br, Radius: cf},
	}
	for k := len(arc) - 1; k >= 0; k-- {
		verts = append(verts, form2.FilletVertex{P: arc[k]})
	}
	return form2.RoundedPolygonPath(verts, filletSegments)
}

// outwardNormal returns the outward offset direction for a leg
// direction pointing toward the apex of a CCW triangle.
func outwardNormal(up r2.Vec, right bool) r2.Vec {
	n := r2.Vec{X: up.Y, Y: -up.X}
	if !right {
		n = r2.Scale(-1, n)
	}
	return n
}

// buildFoot places a capsule along a leg's downward extension at a
// base corner, overlapping the joint so the union has no seam.
func (f frame) buildFoot(rightFoot bool, params Params) sdf.SDF3 {
	a, b, c := f.corners(params)
	corner := a
	if rightFoot {
		corner = b
	}
	dir := r2.Unit(r2.Sub(corner, c)) // away from the apex, through the corner

	radius := params["depth"] / 2
	length := params["footLength"] + footJointOverlap*radius
	if length < 2*radius {
		// deep frames with short feet degenerate to a ball foot.
		length = 2 * radius
	}
	capsule := form3.Capsule(length, radius)

	// capsule axis z -> x, then rotate into the leg direction.
	angle := math.Atan2(dir.Y, dir.X)
	center := r2.Add(corner, r2.Scale((params["footLength"]-footJointOverlap*radius)/2, dir))
	m := sdf.Translate3D(r3.Vec{X: center.X, Y: center.Y}).
		Mul(sdf.RotateZ(angle)).
		Mul(sdf.RotateY(math.Pi / 2))
	return sdf.Transform3D(capsule, m)
}

// buildInfill fills the inner void with the configured lattice.
// Returns nil when no lattice fits, the frame renders alone.
func (f frame) buildInfill(params Params) sdf.SDF3 {
	w := params["wallThickness"]
	half := w / 2
	gripR := params["gripDiameter"] / 2
	ringOuter := gripR + w
	a, b, c := f.corners(params)
	if 2*ringOuter >= params["baseWidth"] || 2*ringOuter >= params["height"] {
		panic("frame: grip ring exceeds frame dimensions")
	}
	boundary := form2.NewProfile(f.voidLoop(a, b, c, half, ringOuter, params))

	var pattern infill.Pattern
	switch params["fillPattern"] {
	case 1:
		pattern = infill.Honeycomb
	case 2:
		pattern = infill.Triangle
	default:
		return nil
	}
	anchor := infill.FromStart
	if params["fillAnchor"] != 0 {
		anchor = infill.FromEnd
	}
	cfg := infill.Config{
		Pattern:       pattern,
		CellSize:      params["cellSize"],
		WallThickness: params["fillWall"],
		Anchor:        anchor,
	}
	s, err := infill.Generate(boundary, params["depth"], cfg)
	if err != nil {
		return nil
	}
	return s
}
