// Package part holds the flat list of named sub-parts a shape family
// produces, with per-part override state (non-uniform scale, bevel)
// and selection bookkeeping. The list is owned by the active project
// instance and mutated only through the methods here.
package part

// Kind tags a part with its role in the family. A closed enum so
// geometry selection is an exhaustive switch, not string comparison.
type Kind int

const (
	KindFrame Kind = iota // main frame body
	KindFoot              // support foot
	KindInfill            // lattice fill
	KindBase              // stand base plate
	KindFin               // stand fin
)

func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindFoot:
		return "foot"
	case KindInfill:
		return "infill"
	case KindBase:
		return "base"
	case KindFin:
		return "fin"
	}
	return "unknown"
}

// Overrides are the per-part adjustments applied on top of the family
// geometry. Scale is per part. Bevel is shared per Kind because the
// beveled geometry itself is shared per kind, not per instance.
type Overrides struct {
	ScaleX        float64
	ScaleY        float64
	ScaleZ        float64
	BevelRadius   float64
	BevelSegments int
}

// DefaultOverrides returns the neutral override state.
func DefaultOverrides() Overrides {
	return Overrides{ScaleX: 1, ScaleY: 1, ScaleZ: 1, BevelSegments: 1}
}

// Field names an override field for List.Update.
type Field int

const (
	FieldScaleX Field = iota
	FieldScaleY
	FieldScaleZ
	FieldBevelRadius
	FieldBevelSegments
)

// propagates reports whether a field must stay equal across all parts
// of the same kind.
func (f Field) propagates() bool {
	return f == FieldBevelRadius || f == FieldBevelSegments
}

// Part is one named sub-part of the assembly.
type Part struct {
	ID        string
	Kind      Kind
	Overrides Overrides
}

// New returns a part with neutral overrides.
func New(id string, kind Kind) Part {
	return Part{ID: id, Kind: kind, Overrides: DefaultOverrides()}
}

// List owns the parts of the active instance.
type List struct {
	parts    []Part
	selected string
}

// Reset replaces the whole list. Used when a cardinality parameter
// changes. A selection referencing a now missing id is cleared.
func (l *List) Reset(parts []Part) {
	l.parts = parts
	if l.selected != "" {
		if _, ok := l.Get(l.selected); !ok {
			l.selected = ""
		}
	}
}

// Parts returns the parts in stable order.
func (l *List) Parts() []Part {
	return l.parts
}

// IDs returns the part ids in stable order.
func (l *List) IDs() []string {
	ids := make([]string, len(l.parts))
	for i, p := range l.parts {
		ids[i] = p.ID
	}
	return ids
}

// Get returns the part with the given id.
func (l *List) Get(id string) (Part, bool) {
	for _, p := range l.parts {
		if p.ID == id {
			return p, true
		}
	}
	return Part{}, false
}

// Update sets an override field on the part with the given id. Bevel
// fields propagate to every part of the same kind, keeping the shared
// derived geometry consistent. Reports whether the id existed.
func (l *List) Update(id string, field Field, value float64) bool {
	idx := -1
	for i := range l.parts {
		if l.parts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	if field.propagates() {
		kind := l.parts[idx].Kind
		for i := range l.parts {
			if l.parts[i].Kind == kind {
				setField(&l.parts[i].Overrides, field, value)
			}
		}
		return true
	}
	setField(&l.parts[idx].Overrides, field, value)
	return true
}

func setField(o *Overrides, field Field, value float64) {
	switch field {
	case FieldScaleX:
		o.ScaleX = value
	case FieldScaleY:
		o.ScaleY = value
	case FieldScaleZ:
		o.ScaleZ = value
	case FieldBevelRadius:
		o.BevelRadius = value
	case FieldBevelSegments:
		n := int(value)
		if n < 1 {
			n = 1
		}
		o.BevelSegments = n
	}
}

// Delete removes a part permanently. Deleted parts are never recreated
// implicitly. A selection referencing the part is cleared. Reports
// whether the id existed.
func (l *List) Delete(id string) bool {
	for i := range l.parts {
		if l.parts[i].ID == id {
			l.parts = append(l.parts[:i], l.parts[i+1:]...)
			if l.selected == id {
				l.selected = ""
			}
			return true
		}
	}
	return false
}

// Select marks a part as selected. Reports whether the id existed.
func (l *List) Select(id string) bool {
	if _, ok := l.Get(id); !ok {
		return false
	}
	l.selected = id
	return true
}

// Selected returns the selected part id, if any.
func (l *List) Selected() (string, bool) {
	return l.selected, l.selected != ""
}

// ClearSelection drops the selection.
func (l *List) ClearSelection() {
	l.selected = ""
}
