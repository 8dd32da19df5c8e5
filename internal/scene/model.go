package scene

import (
	"github.com/google/uuid"

	"github.com/piwi3910/slabcut/internal/model"
)

// Layer is a visibility category entities can be assigned to.
type Layer struct {
	Name    string
	Visible bool
}

type entityBase struct {
	id       int64
	hidden   bool
	layer    *Layer
	material *Material
}

func (e *entityBase) ID() int64           { return e.id }
func (e *entityBase) Visible() bool       { return !e.hidden }
func (e *entityBase) Material() *Material { return e.material }
func (e *entityBase) Bounds() Box         { return Box{} }
func (e *entityBase) Entities() []Entity  { return nil }
func (e *entityBase) Definition() *Definition {
	return nil
}

func (e *entityBase) LayerVisible() bool {
	return e.layer == nil || e.layer.Visible
}

func (e *entityBase) SetMaterial(m *Material) { e.material = m }

// Layer returns the layer of the entity, or nil for the default layer.
func (e *entityBase) Layer() *Layer { return e.layer }

// Option customizes an entity when it is created.
type Option func(*entityBase)

// WithMaterial paints the entity.
func WithMaterial(m *Material) Option {
	return func(e *entityBase) { e.material = m }
}

// OnLayer assigns the entity to a layer.
func OnLayer(l *Layer) Option {
	return func(e *entityBase) { e.layer = l }
}

// Hidden makes the entity invisible.
func Hidden() Option {
	return func(e *entityBase) { e.hidden = true }
}

// WithID forces the entity id instead of taking the next free one.
func WithID(id int64) Option {
	return func(e *entityBase) { e.id = id }
}

// Face is a planar surface. Its bounds are the only geometry the cutlist reads.
type Face struct {
	entityBase
	bounds Box
}

func (f *Face) Kind() Kind     { return KindFace }
func (f *Face) Drawable() bool { return true }
func (f *Face) Bounds() Box    { return f.bounds }

// Edge is a line. It has no surface and no material slot.
type Edge struct {
	entityBase
}

func (e *Edge) Kind() Kind            { return KindEdge }
func (e *Edge) Drawable() bool        { return false }
func (e *Edge) Material() *Material   { return nil }
func (e *Edge) SetMaterial(*Material) {}

// Group is a plain container of entities.
type Group struct {
	entityBase
	children []Entity
}

func (g *Group) Kind() Kind         { return KindGroup }
func (g *Group) Drawable() bool     { return true }
func (g *Group) Entities() []Entity { return g.children }

// Instance is a placement of a component definition.
type Instance struct {
	entityBase
	definition *Definition
}

func (i *Instance) Kind() Kind               { return KindInstance }
func (i *Instance) Drawable() bool           { return true }
func (i *Instance) Definition() *Definition { return i.definition }

// Model is an in-memory Scene.
type Model struct {
	path        string
	filePath    string
	pageLabel   string
	nextID      int64
	entities    []Entity
	activePath  Path
	selection   []Entity
	materials   []*Material
	layers      []*Layer
	definitions map[string]*Definition
	index       map[int64]Entity
}

// NewModel creates an empty model saved at path.
func NewModel(path string) *Model {
	return &Model{
		path:        path,
		definitions: make(map[string]*Definition),
		index:       make(map[int64]Entity),
	}
}

// Path returns the scene path, or the file the scene was loaded from when
// the document named none.
func (m *Model) Path() string {
	if m.path == "" {
		return m.filePath
	}
	return m.path
}

func (m *Model) PageLabel() string  { return m.pageLabel }
func (m *Model) Entities() []Entity { return m.entities }
func (m *Model) ActivePath() Path   { return m.activePath }
func (m *Model) Selection() []Entity {
	return m.selection
}
func (m *Model) Materials() []*Material { return m.materials }
func (m *Model) Layers() []*Layer       { return m.layers }

// SetFilePath records the file the scene was loaded from.
func (m *Model) SetFilePath(path string) { m.filePath = path }

// SetPageLabel sets the label of the selected page.
func (m *Model) SetPageLabel(label string) { m.pageLabel = label }

// ActiveEntities returns the content of the innermost entity of the active
// path, or the top level entities when no context is open.
func (m *Model) ActiveEntities() []Entity {
	last := m.activePath.Last()
	if last == nil {
		return m.entities
	}
	if def := last.Definition(); def != nil {
		return def.Entities
	}
	return last.Entities()
}

// SetActivePath opens a group or instance for editing.
func (m *Model) SetActivePath(p Path) { m.activePath = p }

// Select replaces the selection.
func (m *Model) Select(entities ...Entity) { m.selection = entities }

// AddEntities appends top level entities.
func (m *Model) AddEntities(entities ...Entity) {
	m.entities = append(m.entities, entities...)
}

// AddMaterial registers a material. An empty display name defaults to the name.
func (m *Model) AddMaterial(name, displayName string, attrs model.MaterialAttributes) *Material {
	if displayName == "" {
		displayName = name
	}
	mat := &Material{Name: name, DisplayName: displayName, Attributes: attrs}
	m.materials = append(m.materials, mat)
	return mat
}

// AddLayer registers a layer.
func (m *Model) AddLayer(name string, visible bool) *Layer {
	l := &Layer{Name: name, Visible: visible}
	m.layers = append(m.layers, l)
	return l
}

// FindLayer returns the layer with the given name, or nil.
func (m *Model) FindLayer(name string) *Layer {
	for _, l := range m.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// FindMaterial returns the material with the given name, or nil.
func (m *Model) FindMaterial(name string) *Material {
	for _, mat := range m.materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// FindDefinition returns the definition with the given name, or nil.
func (m *Model) FindDefinition(name string) *Definition {
	return m.definitions[name]
}

// Definitions returns every definition of the model.
func (m *Model) Definitions() map[string]*Definition {
	return m.definitions
}

// RenameDefinition renames a definition. It refuses names already in use.
func (m *Model) RenameDefinition(name, newName string) bool {
	def, ok := m.definitions[name]
	if !ok || newName == "" {
		return false
	}
	if _, taken := m.definitions[newName]; taken {
		return false
	}
	delete(m.definitions, name)
	def.Name = newName
	m.definitions[newName] = def
	return true
}

// FindEntity returns the entity with the given id, or nil.
func (m *Model) FindEntity(id int64) Entity {
	e, ok := m.index[id]
	if !ok {
		return nil
	}
	return e
}

// Face creates a face spanning box.
func (m *Model) Face(box Box, opts ...Option) *Face {
	f := &Face{bounds: box}
	m.register(&f.entityBase, f, opts)
	return f
}

// Edge creates an edge.
func (m *Model) Edge(opts ...Option) *Edge {
	e := &Edge{}
	m.register(&e.entityBase, e, opts)
	return e
}

// Group creates a group holding children.
func (m *Model) Group(children []Entity, opts ...Option) *Group {
	g := &Group{children: children}
	m.register(&g.entityBase, g, opts)
	return g
}

// Definition creates and registers a component definition.
func (m *Model) Definition(name string, children ...Entity) *Definition {
	def := &Definition{
		Name:     name,
		GUID:     uuid.NewSHA1(uuid.NameSpaceOID, []byte(m.path+"#"+name)).String(),
		Entities: children,
	}
	m.definitions[name] = def
	return def
}

// Instance places a definition.
func (m *Model) Instance(def *Definition, opts ...Option) *Instance {
	i := &Instance{definition: def}
	m.register(&i.entityBase, i, opts)
	return i
}

func (m *Model) register(base *entityBase, e Entity, opts []Option) {
	for _, opt := range opts {
		opt(base)
	}
	if base.id == 0 {
		m.nextID++
		base.id = m.nextID
	} else if base.id > m.nextID {
		m.nextID = base.id
	}
	m.index[base.id] = e
}

// Slab creates the two opposite faces of an x by y by z board lying on the
// origin. Their union bounds the whole board.
func (m *Model) Slab(x, y, z float64, opts ...Option) []Entity {
	bottom := m.Face(NewBox(Point{}, Point{X: x, Y: y}), opts...)
	top := m.Face(NewBox(Point{Z: z}, Point{X: x, Y: y, Z: z}), opts...)
	return []Entity{bottom, top}
}

// BoxOf returns the box from the origin to (x, y, z).
func BoxOf(x, y, z float64) Box {
	return NewBox(Point{}, Point{X: x, Y: y, Z: z})
}
