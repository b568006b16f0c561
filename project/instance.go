package project

import (
	"encoding/binary"
	"hash/fnv"
	"log"
	"math"
	"sort"

	"partforge/part"
	"partforge/sdf"

	"gonum.org/v1/gonum/spatial/r3"
)

// Item is one renderable part of an assembly.
type Item struct {
	ID    string
	Kind  part.Kind
	Solid sdf.SDF3
}

// Instance is an active family with its parameter values, part list
// and geometry cache. Builds are synchronous and single threaded, a
// parameter change fully recomputes dependent geometry on the next
// Assembly call.
type Instance struct {
	family Family
	params Params
	list   part.List
	cache  map[itemKey]sdf.SDF3
}

// itemKey identifies a part's geometry by value. Equal keys mean the
// cached solid can be reused as-is.
type itemKey struct {
	id        string
	kind      part.Kind
	overrides part.Overrides
	paramHash uint64
}

// NewInstance creates an instance with the family's default params.
func NewInstance(f Family) *Instance {
	i := &Instance{
		family: f,
		params: f.Schema().Defaults(),
		cache:  map[itemKey]sdf.SDF3{},
	}
	i.list.Reset(f.Parts(i.params))
	return i
}

// Family returns the instance's family.
func (i *Instance) Family() Family {
	return i.family
}

// Params returns a copy of the current parameter values.
func (i *Instance) Params() Params {
	return i.params.Clone()
}

// List exposes the part list for selection, deletion and overrides.
func (i *Instance) List() *part.List {
	return &i.list
}

// Set clamps and applies one parameter value. Cardinality parameters
// reset the part list, shape-only parameters keep part ids intact and
// only invalidate geometry (by changing the cache key).
func (i *Instance) Set(name string, value float64) error {
	v, err := i.family.Schema().Clamp(name, value)
	if err != nil {
		return err
	}
	if i.params[name] == v {
		return nil
	}
	i.params[name] = v
	for _, key := range i.family.CardinalityKeys() {
		if key == name {
			i.list.Reset(i.family.Parts(i.params))
			break
		}
	}
	return nil
}

// Assembly builds (or reuses) geometry for every live part and returns
// the renderable items. Parts whose build yields nil (infeasible
// infill) are omitted while staying in the part list. A build panic
// degrades that one part to a bounding box placeholder, other parts
// are unaffected. Superseded cache entries are dropped.
func (i *Instance) Assembly() []Item {
	next := make(map[itemKey]sdf.SDF3, len(i.list.Parts()))
	items := make([]Item, 0, len(i.list.Parts()))
	for _, p := range i.list.Parts() {
		key := i.key(p)
		solid, ok := i.cache[key]
		if !ok {
			solid = i.buildPart(p)
		}
		next[key] = solid
		if solid == nil {
			continue
		}
		items = append(items, Item{ID: p.ID, Kind: p.Kind, Solid: solid})
	}
	i.cache = next
	return items
}

// Dims returns the bounding box size of one part's solid for display.
// Cached geometry is reused, a cold lookup fills the cache for the
// next Assembly call.
func (i *Instance) Dims(id string) (r3.Vec, bool) {
	p, ok := i.list.Get(id)
	if !ok {
		return r3.Vec{}, false
	}
	key := i.key(p)
	solid, ok := i.cache[key]
	if !ok {
		solid = i.buildPart(p)
		i.cache[key] = solid
	}
	if solid == nil {
		return r3.Vec{}, false
	}
	bb := solid.Bounds()
	return r3.Sub(bb.Max, bb.Min), true
}

// buildPart runs a family build with fault isolation: a panic logs a
// diagnostic snapshot and substitutes the family's nominal bounding
// box, never crashing the caller.
func (i *Instance) buildPart(p part.Part) (s sdf.SDF3) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("project: build of %s/%s failed: %v (params=%v overrides=%+v), using bounding box placeholder",
				i.family.Name(), p.ID, r, i.params, p.Overrides)
			s = sdf.FallbackBox(i.family.Bounds(i.params))
		}
	}()
	s = i.family.Build(p, i.params)
	if s == nil {
		return nil
	}
	o := p.Overrides
	if o.ScaleX != 1 || o.ScaleY != 1 || o.ScaleZ != 1 {
		s = sdf.Transform3D(s, sdf.Scale3D(r3.Vec{X: o.ScaleX, Y: o.ScaleY, Z: o.ScaleZ}))
	}
	return s
}

// key identifies the current geometry of one part in the cache.
func (i *Instance) key(p part.Part) itemKey {
	return itemKey{id: p.ID, kind: p.Kind, overrides: p.Overrides, paramHash: i.partHash(p.Kind)}
}

// partHash value-hashes the parameters a part kind depends on, the
// whole snapshot for families without declared dependencies. Iteration
// order is fixed by sorting so equal values always hash equal.
func (i *Instance) partHash(kind part.Kind) uint64 {
	var names []string
	if d, ok := i.family.(PartDeps); ok {
		names = append(names, d.PartParams(kind)...)
	}
	if names == nil {
		names = make([]string, 0, len(i.params))
		for name := range i.params {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	h := fnv.New64a()
	var buf [8]byte
	for _, name := range names {
		h.Write([]byte(name))
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(i.params[name]))
		h.Write(buf[:])
	}
	return h.Sum64()
}
