package sdf

import (
	"errors"
	"log"
	"math"

	"partforge/internal/d3"

	"gonum.org/v1/gonum/spatial/r3"
)

// Boolean step evaluation. A part tree flattens to an ordered list of
// steps which fold left to right into a single solid. Every step
// allocates a fresh combinator, inputs are never mutated, so a solid
// may appear in any number of step lists concurrently.

// Op selects how a step's solid combines with the accumulated result.
type Op int

const (
	// OpAdd unions the solid into the result.
	OpAdd Op = iota
	// OpSubtract removes the solid from the result.
	OpSubtract
	// OpIntersect keeps only the overlap of solid and result.
	OpIntersect
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpIntersect:
		return "intersect"
	}
	return "unknown"
}

// Step is one boolean operation in an evaluation sequence.
type Step struct {
	Solid SDF3
	Op    Op
}

// Combine folds an ordered list of steps into a single solid. The
// first live step seeds the result and its Op is ignored, steps with a
// nil solid are skipped. An empty (or all-nil) list is an error. A
// step that panics during evaluation is logged with its index and
// degrades the result to the bounding box accumulated so far, the fold
// itself never panics. A result with degenerate bounds degrades to its
// bounding box placeholder too.
func Combine(steps []Step) (SDF3, error) {
	var acc SDF3
	for k, st := range steps {
		if st.Solid == nil {
			continue
		}
		acc = combineStep(acc, st, k)
	}
	if acc == nil {
		return nil, errors.New("empty boolean step list")
	}
	size := d3.Box(acc.Bounds()).Size()
	if math.IsNaN(size.X+size.Y+size.Z) || size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		log.Printf("sdf: boolean result has degenerate bounds %v, using bounding box placeholder", acc.Bounds())
		return FallbackBox(acc.Bounds()), nil
	}
	return acc, nil
}

func combineStep(acc SDF3, st Step, index int) (s SDF3) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sdf: boolean step %d (%s) failed: %v, degrading to accumulated bounding box", index, st.Op, r)
			if acc == nil {
				s = nil
				return
			}
			s = FallbackBox(acc.Bounds())
		}
	}()
	if acc == nil {
		// touch the bounds so a degenerate seed fails here, inside the
		// recovery window, not at the caller.
		_ = st.Solid.Bounds()
		return st.Solid
	}
	switch st.Op {
	case OpSubtract:
		return Difference3D(acc, st.Solid)
	case OpIntersect:
		return Intersect3D(acc, st.Solid)
	default:
		return Union3D(acc, st.Solid)
	}
}

// FallbackBox returns an axis-aligned box solid filling bb. Used as a
// stand-in when a part's construction fails, so the rest of the
// assembly still evaluates and renders.
func FallbackBox(bb r3.Box) SDF3 {
	b := d3.Box(bb)
	return &fallbackBox{
		center: b.Center(),
		half:   r3.Scale(0.5, b.Size()),
		bb:     bb,
	}
}

type fallbackBox struct {
	center r3.Vec
	half   r3.Vec
	bb     r3.Box
}

func (s *fallbackBox) Evaluate(p r3.Vec) float64 {
	q := r3.Sub(d3.AbsElem(r3.Sub(p, s.center)), s.half)
	inside := math.Min(d3.Max(q), 0)
	outside := r3.Norm(d3.MaxElem(q, r3.Vec{}))
	return inside + outside
}

func (s *fallbackBox) Bounds() r3.Box {
	return s.bb
}
