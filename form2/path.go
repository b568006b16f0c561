package form2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// fillet radii below this are emitted as sharp vertices.
	minFilletRadius = 0.001
	// raw CCW sweeps beyond this are treated as collinear edges and
	// the fillet is skipped, a near full circle arc is never intended.
	maxFilletSweep = math.Pi * 1.95
	// realized radius is held back from the theoretical maximum so the
	// arc tangent points never overshoot the adjacent edges.
	filletClampRatio = 0.9
)

// FilletVertex is a polygon vertex tagged with a fillet radius.
// A zero radius keeps the vertex sharp.
type FilletVertex struct {
	P      r2.Vec
	Radius float64
}

// Fillet tags a point with a fillet radius.
func Fillet(x, y, radius float64) FilletVertex {
	return FilletVertex{P: r2.Vec{X: x, Y: y}, Radius: radius}
}

// Sharp tags a point with no fillet.
func Sharp(x, y float64) FilletVertex {
	return FilletVertex{P: r2.Vec{X: x, Y: y}}
}

// RoundedPolygonPath expands a closed loop of fillet vertices into an
// ordered point list, replacing each filleted vertex with an arc of
// segments+1 points. The effective radius is clamped to 90% of
// min(L1,L2)*tan(theta/2) for adjacent edge lengths L1, L2 and corner
// angle theta, which keeps the arc within the edges it replaces.
// Degenerate corners (tiny radius, collinear edges, zero length edges)
// fall back to the sharp vertex.
func RoundedPolygonPath(verts []FilletVertex, segments int) []r2.Vec {
	n := len(verts)
	if segments < 1 {
		segments = 1
	}
	path := make([]r2.Vec, 0, n*(segments+1))
	for i := 0; i < n; i++ {
		prev := verts[(i+n-1)%n].P
		cur := verts[i]
		next := verts[(i+1)%n].P
		arc := filletArc(prev, cur, next, segments)
		if arc == nil {
			path = append(path, cur.P)
			continue
		}
		path = append(path, arc...)
	}
	return path
}

// filletArc returns the arc replacing vertex cur, or nil when the
// vertex should stay sharp.
func filletArc(prev r2.Vec, cur FilletVertex, next r2.Vec, segments int) []r2.Vec {
	if cur.Radius < minFilletRadius {
		return nil
	}
	e1 := r2.Sub(prev, cur.P)
	e2 := r2.Sub(next, cur.P)
	l1 := r2.Norm(e1)
	l2 := r2.Norm(e2)
	if l1 < epsilon || l2 < epsilon {
		return nil
	}
	u := r2.Scale(1/l1, e1)
	v := r2.Scale(1/l2, e2)
	bisect := r2.Add(u, v)
	bl := r2.Norm(bisect)
	if bl < epsilon {
		// collinear edges, flat vertex.
		return nil
	}
	bisect = r2.Scale(1/bl, bisect)

	// corner angle between the edges, halved for the tangent offsets.
	cosTheta := r2.Dot(u, v)
	theta := math.Acos(clamp(cosTheta, -1, 1))
	halfTan := math.Tan(theta / 2)
	if halfTan < epsilon {
		return nil
	}
	r := math.Min(cur.Radius, filletClampRatio*math.Min(l1, l2)*halfTan)
	if r < minFilletRadius {
		return nil
	}

	tangentDist := r / halfTan
	t1 := r2.Add(cur.P, r2.Scale(tangentDist, u))
	t2 := r2.Add(cur.P, r2.Scale(tangentDist, v))
	center := r2.Add(cur.P, r2.Scale(r/math.Sin(theta/2), bisect))

	a0 := math.Atan2(t1.Y-center.Y, t1.X-center.X)
	a1 := math.Atan2(t2.Y-center.Y, t2.X-center.X)
	sweep := ccwSweep(a0, a1)
	if sweep > maxFilletSweep {
		return nil
	}
	return arcPoints(center, r, a0, sweep, segments)
}

// ArcPath returns segments+1 points along the CCW arc from angle a0 to
// a1 about center. Equal angles produce a full circle, which is how
// exact center circular bores are punched.
func ArcPath(center r2.Vec, radius, a0, a1 float64, segments int) []r2.Vec {
	sweep := ccwSweep(a0, a1)
	if sweep == 0 {
		sweep = 2 * math.Pi
	}
	return arcPoints(center, radius, a0, sweep, segments)
}

// ccwSweep folds a1-a0 into the CCW range [0, 2*pi).
func ccwSweep(a0, a1 float64) float64 {
	sweep := math.Mod(a1-a0, 2*math.Pi)
	if sweep < 0 {
		sweep += 2 * math.Pi
	}
	return sweep
}

func arcPoints(center r2.Vec, radius, a0, sweep float64, segments int) []r2.Vec {
	pts := make([]r2.Vec, segments+1)
	da := sweep / float64(segments)
	for k := 0; k <= segments; k++ {
		a := a0 + da*float64(k)
		pts[k] = r2.Vec{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return pts
}

func clamp(x, a, b float64) float64 {
	return math.Min(b, math.Max(x, a))
}
