package project

import (
	"fmt"
	"math"

	"partforge/form2"
	"partforge/form3"
	"partforge/part"
	"partforge/sdf"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// finstand is a desk stand: a rounded box base on four lathed feet,
// carrying two perpendicular rows of fins whose top edge is a sine
// wave. Fin count changes the part list (cardinality), the wave shape
// parameters only change geometry. Z is up.
type finstand struct{}

func init() {
	Register(finstand{})
}

const (
	// fin rows span this fraction of the base footprint.
	finRunRatio = 0.9
	// resolution of the sine top edge per wave period.
	waveSamples = 16
	// fin shoulders get this fraction of the fin thickness as fillet.
	shoulderFillet = 1.0
)

func (finstand) Name() string { return "finstand" }

func (finstand) Schema() Schema {
	return Schema{
		{Name: "baseLength", Default: 80, Min: 40, Max: 200, Step: 1, Unit: Length},
		{Name: "baseWidth", Default: 40, Min: 20, Max: 120, Step: 1, Unit: Length},
		{Name: "baseHeight", Default: 8, Min: 3, Max: 20, Step: 0.5, Unit: Length},
		{Name: "finCount", Default: 6, Min: 1, Max: 12, Step: 1, Unit: Count},
		{Name: "finHeight", Default: 30, Min: 10, Max: 80, Step: 1, Unit: Length},
		{Name: "finThickness", Default: 3, Min: 1, Max: 8, Step: 0.5, Unit: Length},
		{Name: "waveAmplitude", Default: 4, Min: 0, Max: 15, Step: 0.5, Unit: Length},
		{Name: "waveCount", Default: 2, Min: 0, Max: 8, Step: 1, Unit: Count},
		{Name: "footHeight", Default: 6, Min: 2, Max: 20, Step: 0.5, Unit: Length},
	}
}

func (finstand) CardinalityKeys() []string {
	return []string{"finCount"}
}

// PartParams keeps the base cached across fin edits and vice versa.
func (finstand) PartParams(kind part.Kind) []string {
	switch kind {
	case part.KindBase:
		return []string{"baseLength", "baseWidth", "baseHeight", "footHeight"}
	case part.KindFin:
		return []string{
			"baseLength", "baseWidth", "baseHeight", "finCount",
			"finHeight", "finThickness", "waveAmplitude", "waveCount",
		}
	}
	return nil
}

func (finstand) Parts(params Params) []part.Part {
	n := int(params["finCount"])
	parts := make([]part.Part, 0, 2*n+1)
	parts = append(parts, part.New("base", part.KindBase))
	for i := 0; i < n; i++ {
		parts = append(parts, part.New(fmt.Sprintf("fin-x-%d", i), part.KindFin))
	}
	for i := 0; i < n; i++ {
		parts = append(parts, part.New(fmt.Sprintf("fin-y-%d", i), part.KindFin))
	}
	return parts
}

func (f finstand) Build(p part.Part, params Params) sdf.SDF3 {
	switch p.Kind {
	case part.KindBase:
		return f.buildBase(params)
	case part.KindFin:
		return f.buildFin(p, params)
	case part.KindFrame, part.KindFoot, part.KindInfill:
		panic("finstand: kind not part of this family: " + p.Kind.String())
	}
	panic("finstand: unknown part kind")
}

func (finstand) Bounds(params Params) r3.Box {
	l := params["baseLength"]
	w := params["baseWidth"]
	return r3.Box{
		Min: r3.Vec{X: -l / 2, Y: -w / 2, Z: -params["footHeight"]},
		Max: r3.Vec{
			X: l / 2,
			Y: w / 2,
			Z: params["baseHeight"] + params["finHeight"] + params["waveAmplitude"],
		},
	}
}

// buildBase unions the rounded base plate with four lathed feet at
// the corners. Feet belong to the base part, not the part list.
func (finstand) buildBase(params Params) sdf.SDF3 {
	l := params["baseLength"]
	w := params["baseWidth"]
	h := params["baseHeight"]
	plate := form3.Box(r3.Vec{X: l, Y: w, Z: h}, 0.2*h)
	plate = sdf.Translate3DBy(plate, r3.Vec{Z: h / 2})

	fh := params["footHeight"]
	rTop := math.Min(l, w) * 0.08
	rBottom := rTop * 0.7
	foot := form3.Lathe([]r2.Vec{
		{X: 0, Y: -fh},
		{X: rBottom, Y: -fh},
		{X: rTop, Y: 0},
		{X: 0, Y: 0},
	})

	inset := rTop * 1.5
	solids := []sdf.SDF3{plate}
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			at := r3.Vec{X: sx * (l/2 - inset), Y: sy * (w/2 - inset)}
			solids = append(solids, sdf.Translate3DBy(foot, at))
		}
	}
	return sdf.Union3D(solids...)
}

// buildFin extrudes the sine-topped fin profile with the part's bevel
// override and places it in its row.
func (f finstand) buildFin(p part.Part, params Params) sdf.SDF3 {
	n := int(params["finCount"])
	alongX, index := finSlot(p.ID)
	if index < 0 || index >= n {
		panic("finstand: part id out of range: " + p.ID)
	}

	run := params["baseLength"]
	span := params["baseWidth"]
	if !alongX {
		run, span = span, run
	}
	run *= finRunRatio

	thickness := params["finThickness"]
	profile := finProfile(run, params["finHeight"], params["waveAmplitude"], params["waveCount"], thickness)
	bevel := p.Overrides.BevelRadius * thickness * bevelScale
	plate := sdf.ExtrudeBeveled(profile.SDF(), thickness, bevel, p.Overrides.BevelSegments)

	// profile is built in (run, up); stand the plate upright with the
	// thickness across the row axis.
	offset := -span/2 + span*float64(index+1)/float64(n+1)
	m := sdf.RotateX(math.Pi / 2)
	if !alongX {
		m = sdf.RotateZ(math.Pi / 2).Mul(m)
	}
	pos := r3.Vec{Z: params["baseHeight"]}
	if alongX {
		pos.Y = offset
	} else {
		pos.X = offset
	}
	return sdf.Transform3D(plate, sdf.Translate3D(pos).Mul(m))
}

// finSlot parses a fin part id ("fin-x-3", "fin-y-0") into its row
// axis and index. Returns index -1 for malformed ids.
func finSlot(id string) (alongX bool, index int) {
	var axis byte
	if _, err := fmt.Sscanf(id, "fin-%c-%d", &axis, &index); err != nil {
		return false, -1
	}
	switch axis {
	case 'x':
		return true, index
	case 'y':
		return false, index
	}
	return false, -1
}

// finProfile builds the fin cross section: a rectangle whose top edge
// is a sine wave, with filleted shoulders where the wave meets the
// sides. Centered on x=0, sitting on y=0.
func finProfile(run, height, amplitude, waves, thickness float64) form2.Profile {
	if run <= 0 || height <= 0 {
		panic("finstand: degenerate fin profile")
	}
	top := func(x float64) float64 {
		if waves == 0 || amplitude == 0 {
			return height
		}
		return height + amplitude*math.Sin(2*math.Pi*waves*(x/run+0.5))
	}

	shoulder := thickness * shoulderFillet
	verts := []form2.FilletVertex{
		form2.Sharp(-run/2, 0),
		form2.Sharp(run/2, 0),
		{P: r2.Vec{X: run / 2, Y: top(run / 2)}, Radius: shoulder},
	}
	// sample the sine edge right to left, skipping the corners that
	// carry the shoulder fillets.
	samples := int(math.Max(waves, 1)) * waveSamples
	for k := samples - 1; k > 0; k-- {
		x := -run/2 + run*float64(k)/float64(samples)
		verts = append(verts, form2.Sharp(x, top(x)))
	}
	verts = append(verts, form2.FilletVertex{P: r2.Vec{X: -run / 2, Y: top(-run / 2)}, Radius: shoulder})
	return form2.NewProfile(form2.RoundedPolygonPath(verts, filletSegments))
}
