// Package scene describes the host model the cutlist is computed from: a tree
// of faces, groups and component instances with materials and layers.
//
// The engine only depends on the Scene and Entity interfaces. Model is an
// in-memory implementation used by the command line tool, the HTTP API and
// the tests.
package scene

import (
	"math"

	"github.com/piwi3910/slabcut/internal/model"
)

// Kind enumerates the types of entities in a scene.
type Kind int

const (
	KindFace     Kind = iota // primitive surface, contributes geometry
	KindEdge                 // primitive without surface, contributes nothing
	KindGroup                // plain container
	KindInstance             // placed instance of a reusable definition
)

func (k Kind) String() string {
	switch k {
	case KindFace:
		return "face"
	case KindEdge:
		return "edge"
	case KindGroup:
		return "group"
	case KindInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Point is a 3D coordinate in mm.
type Point struct {
	X, Y, Z float64
}

// Box is an axis aligned bounding box. The zero value is empty.
type Box struct {
	Min, Max Point
	valid    bool
}

// NewBox returns the box spanning two corners given in any order.
func NewBox(a, b Point) Box {
	return Box{
		Min:   Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		Max:   Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
		valid: true,
	}
}

// Empty reports whether the box contains no point.
func (b Box) Empty() bool {
	return !b.valid
}

// Add returns the union of two boxes.
func (b Box) Add(o Box) Box {
	if o.Empty() {
		return b
	}
	if b.Empty() {
		return o
	}
	return Box{
		Min:   Point{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y), Z: math.Min(b.Min.Z, o.Min.Z)},
		Max:   Point{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y), Z: math.Max(b.Max.Z, o.Max.Z)},
		valid: true,
	}
}

// Width returns the extent along x.
func (b Box) Width() float64 {
	if b.Empty() {
		return 0
	}
	return b.Max.X - b.Min.X
}

// Height returns the extent along y.
func (b Box) Height() float64 {
	if b.Empty() {
		return 0
	}
	return b.Max.Y - b.Min.Y
}

// Depth returns the extent along z.
func (b Box) Depth() float64 {
	if b.Empty() {
		return 0
	}
	return b.Max.Z - b.Min.Z
}

// Solid reports whether the box has a strictly positive extent on all three axes.
func (b Box) Solid() bool {
	return b.Width() > 0 && b.Height() > 0 && b.Depth() > 0
}

// Material is a named appearance carrying a stock table.
type Material struct {
	Name        string
	DisplayName string
	Attributes  model.MaterialAttributes
}

// Definition is the shared content of every instance of a component.
// Its name is the definition identity.
type Definition struct {
	Name     string
	GUID     string
	Entities []Entity
}

// Entity is a node of the scene tree.
type Entity interface {
	ID() int64
	Kind() Kind
	Visible() bool
	LayerVisible() bool
	// Drawable reports whether the entity carries a material slot.
	Drawable() bool
	Material() *Material
	SetMaterial(m *Material)
	// Bounds is only meaningful for faces.
	Bounds() Box
	// Entities returns the children of a group.
	Entities() []Entity
	// Definition returns the definition of an instance.
	Definition() *Definition
}

// Path is the chain of entities from a traversal root to one placement.
type Path []Entity

// Last returns the final entity of the path, or nil.
func (p Path) Last() Entity {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Extend returns a new path with e appended, leaving p untouched.
func (p Path) Extend(e Entity) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, e)
}

// HasPrefix reports whether prefix is a leading sub-path of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// IDs returns the entity ids along the path.
func (p Path) IDs() []int64 {
	ids := make([]int64, len(p))
	for i, e := range p {
		ids[i] = e.ID()
	}
	return ids
}

// Scene is the host model the cutlist reads and the update commands write.
type Scene interface {
	// Path is the file the scene was loaded from.
	Path() string
	PageLabel() string
	// Entities returns the top level entities of the whole model.
	Entities() []Entity
	// ActiveEntities returns the entities of the context being edited.
	ActiveEntities() []Entity
	// ActivePath returns the path from the root to the context being edited.
	ActivePath() Path
	Selection() []Entity
	Materials() []*Material
	FindMaterial(name string) *Material
	FindDefinition(name string) *Definition
	RenameDefinition(name, newName string) bool
	FindEntity(id int64) Entity
}
