package project

import (
	"fmt"
	"sort"

	"partforge/part"
	"partforge/sdf"

	"gonum.org/v1/gonum/spatial/r3"
)

// Family is one parametric shape family. Implementations are pure
// with respect to params: equal inputs produce equal geometry.
type Family interface {
	// Name is the registry key.
	Name() string
	// Schema declares the family's parameters.
	Schema() Schema
	// CardinalityKeys names the parameters that change the part list
	// itself rather than just part shapes.
	CardinalityKeys() []string
	// Parts returns the part list for the given params. Cardinality
	// only, geometry is not built here.
	Parts(params Params) []part.Part
	// Build constructs one part's solid. May panic on degenerate
	// parameter combinations, the instance boundary recovers into a
	// bounding box placeholder. A nil return omits the part from the
	// assembly (an infill that cannot fit).
	Build(p part.Part, params Params) sdf.SDF3
	// Bounds returns nominal assembly bounds for the given params.
	// Must never panic, it sizes the fallback placeholder.
	Bounds(params Params) r3.Box
}

// PartDeps is an optional Family extension declaring which parameters
// each part kind actually reads. Instances narrow cache invalidation
// to those parameters, so edits elsewhere keep the kind's geometry
// cached. A nil return means the kind depends on every parameter.
type PartDeps interface {
	PartParams(kind part.Kind) []string
}

var families = map[string]Family{}

// Register adds a family to the registry. Panics on duplicate names,
// registration happens in init functions.
func Register(f Family) {
	if _, exists := families[f.Name()]; exists {
		panic(fmt.Sprintf("project: family %q registered twice", f.Name()))
	}
	families[f.Name()] = f
}

// Lookup returns a registered family by name.
func Lookup(name string) (Family, bool) {
	f, ok := families[name]
	return f, ok
}

// Names returns the registered family names, sorted.
func Names() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
