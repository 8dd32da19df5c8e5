package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/slabcut/internal/model"
)

var (
	ErrUnknownDefinition = errors.New("unknown definition")
	ErrUnknownMaterial   = errors.New("unknown material")
	ErrUnknownLayer      = errors.New("unknown layer")
	ErrUnknownEntity     = errors.New("unknown entity")
	ErrUnknownNodeType   = errors.New("unknown node type")
	ErrDuplicateEntity   = errors.New("duplicate entity id")
	ErrInvalidBounds     = errors.New("invalid bounds")
)

// Document is the file representation of a Model (JSON or YAML).
type Document struct {
	Path        string          `json:"path,omitempty" yaml:"path,omitempty"`
	PageLabel   string          `json:"page_label,omitempty" yaml:"page_label,omitempty"`
	Materials   []MaterialDoc   `json:"materials,omitempty" yaml:"materials,omitempty"`
	Layers      []LayerDoc      `json:"layers,omitempty" yaml:"layers,omitempty"`
	Definitions []DefinitionDoc `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	Entities    []NodeDoc       `json:"entities" yaml:"entities"`
	Selection   []int64         `json:"selection,omitempty" yaml:"selection,omitempty"`
	ActivePath  []int64         `json:"active_path,omitempty" yaml:"active_path,omitempty"`
}

// MaterialDoc describes a material and its stock table.
type MaterialDoc struct {
	Name              string    `json:"name" yaml:"name"`
	DisplayName       string    `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Type              string    `json:"type,omitempty" yaml:"type,omitempty"`
	LengthIncrease    float64   `json:"length_increase,omitempty" yaml:"length_increase,omitempty"`
	WidthIncrease     float64   `json:"width_increase,omitempty" yaml:"width_increase,omitempty"`
	ThicknessIncrease float64   `json:"thickness_increase,omitempty" yaml:"thickness_increase,omitempty"`
	StdThicknesses    []float64 `json:"std_thicknesses,omitempty" yaml:"std_thicknesses,omitempty"`
}

// LayerDoc describes a layer. Layers are visible unless stated otherwise.
type LayerDoc struct {
	Name    string `json:"name" yaml:"name"`
	Visible *bool  `json:"visible,omitempty" yaml:"visible,omitempty"`
}

// DefinitionDoc describes a component definition.
type DefinitionDoc struct {
	Name     string    `json:"name" yaml:"name"`
	Entities []NodeDoc `json:"entities" yaml:"entities"`
}

// NodeDoc describes one entity.
type NodeDoc struct {
	ID         int64     `json:"id,omitempty" yaml:"id,omitempty"`
	Type       string    `json:"type" yaml:"type"` // face, edge, group, instance
	Hidden     bool      `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Layer      string    `json:"layer,omitempty" yaml:"layer,omitempty"`
	Material   string    `json:"material,omitempty" yaml:"material,omitempty"`
	Min        []float64 `json:"min,omitempty" yaml:"min,omitempty"` // face corner x, y, z
	Max        []float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Entities   []NodeDoc `json:"entities,omitempty" yaml:"entities,omitempty"` // group children
	Definition string    `json:"definition,omitempty" yaml:"definition,omitempty"`
}

// Build turns the document into a Model.
func (d Document) Build() (*Model, error) {
	m := NewModel(d.Path)
	m.SetPageLabel(d.PageLabel)

	for _, md := range d.Materials {
		t, err := model.ParseMaterialType(md.Type)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", md.Name, err)
		}
		attrs := model.MaterialAttributes{
			Type:              t,
			LengthIncrease:    md.LengthIncrease,
			WidthIncrease:     md.WidthIncrease,
			ThicknessIncrease: md.ThicknessIncrease,
			StdThicknesses:    append([]float64(nil), md.StdThicknesses...),
		}
		sort.Float64s(attrs.StdThicknesses)
		m.AddMaterial(md.Name, md.DisplayName, attrs)
	}
	for _, ld := range d.Layers {
		m.AddLayer(ld.Name, ld.Visible == nil || *ld.Visible)
	}

	b := &builder{model: m, seen: make(map[int64]bool)}
	b.reserveIDs(d)

	// Definitions may nest each other, so register every name before building content.
	for _, dd := range d.Definitions {
		m.Definition(dd.Name)
	}
	for _, dd := range d.Definitions {
		children, err := b.nodes(dd.Entities)
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", dd.Name, err)
		}
		m.FindDefinition(dd.Name).Entities = children
	}

	top, err := b.nodes(d.Entities)
	if err != nil {
		return nil, err
	}
	m.AddEntities(top...)

	var selection []Entity
	for _, id := range d.Selection {
		e := m.FindEntity(id)
		if e == nil {
			return nil, fmt.Errorf("selection: %w %d", ErrUnknownEntity, id)
		}
		selection = append(selection, e)
	}
	m.Select(selection...)

	var active Path
	for _, id := range d.ActivePath {
		e := m.FindEntity(id)
		if e == nil {
			return nil, fmt.Errorf("active path: %w %d", ErrUnknownEntity, id)
		}
		active = append(active, e)
	}
	m.SetActivePath(active)

	return m, nil
}

type builder struct {
	model *Model
	seen  map[int64]bool
}

// reserveIDs makes sure generated ids never collide with explicit ones.
func (b *builder) reserveIDs(d Document) {
	var walk func(nodes []NodeDoc)
	walk = func(nodes []NodeDoc) {
		for _, n := range nodes {
			if n.ID > b.model.nextID {
				b.model.nextID = n.ID
			}
			walk(n.Entities)
		}
	}
	for _, dd := range d.Definitions {
		walk(dd.Entities)
	}
	walk(d.Entities)
}

func (b *builder) nodes(docs []NodeDoc) ([]Entity, error) {
	entities := make([]Entity, 0, len(docs))
	for _, nd := range docs {
		e, err := b.node(nd)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (b *builder) node(nd NodeDoc) (Entity, error) {
	var opts []Option
	if nd.ID != 0 {
		if b.seen[nd.ID] {
			return nil, fmt.Errorf("%w %d", ErrDuplicateEntity, nd.ID)
		}
		b.seen[nd.ID] = true
		opts = append(opts, WithID(nd.ID))
	}
	if nd.Hidden {
		opts = append(opts, Hidden())
	}
	if nd.Layer != "" {
		l := b.model.FindLayer(nd.Layer)
		if l == nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownLayer, nd.Layer)
		}
		opts = append(opts, OnLayer(l))
	}
	if nd.Material != "" {
		mat := b.model.FindMaterial(nd.Material)
		if mat == nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownMaterial, nd.Material)
		}
		opts = append(opts, WithMaterial(mat))
	}

	switch strings.ToLower(nd.Type) {
	case "face":
		if len(nd.Min) != 3 || len(nd.Max) != 3 {
			return nil, fmt.Errorf("face %d: %w", nd.ID, ErrInvalidBounds)
		}
		box := NewBox(
			Point{X: nd.Min[0], Y: nd.Min[1], Z: nd.Min[2]},
			Point{X: nd.Max[0], Y: nd.Max[1], Z: nd.Max[2]},
		)
		return b.model.Face(box, opts...), nil
	case "edge":
		return b.model.Edge(opts...), nil
	case "group":
		children, err := b.nodes(nd.Entities)
		if err != nil {
			return nil, err
		}
		return b.model.Group(children, opts...), nil
	case "instance", "component":
		def := b.model.FindDefinition(nd.Definition)
		if def == nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownDefinition, nd.Definition)
		}
		return b.model.Instance(def, opts...), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownNodeType, nd.Type)
}

// NewDocument describes a Model so it can be written back to a file.
// Definitions are listed by name for a stable output.
func NewDocument(m *Model) Document {
	d := Document{
		Path:      m.path,
		PageLabel: m.PageLabel(),
		Entities:  nodeDocs(m.Entities()),
	}
	for _, mat := range m.Materials() {
		d.Materials = append(d.Materials, MaterialDoc{
			Name:              mat.Name,
			DisplayName:       mat.DisplayName,
			Type:              mat.Attributes.Type.String(),
			LengthIncrease:    mat.Attributes.LengthIncrease,
			WidthIncrease:     mat.Attributes.WidthIncrease,
			ThicknessIncrease: mat.Attributes.ThicknessIncrease,
			StdThicknesses:    mat.Attributes.StdThicknesses,
		})
	}
	for _, l := range m.Layers() {
		visible := l.Visible
		d.Layers = append(d.Layers, LayerDoc{Name: l.Name, Visible: &visible})
	}

	names := make([]string, 0, len(m.Definitions()))
	for name := range m.Definitions() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := m.Definitions()[name]
		d.Definitions = append(d.Definitions, DefinitionDoc{Name: def.Name, Entities: nodeDocs(def.Entities)})
	}

	for _, e := range m.Selection() {
		d.Selection = append(d.Selection, e.ID())
	}
	d.ActivePath = m.ActivePath().IDs()
	if len(d.ActivePath) == 0 {
		d.ActivePath = nil
	}
	return d
}

type layered interface {
	Layer() *Layer
}

func nodeDocs(entities []Entity) []NodeDoc {
	docs := make([]NodeDoc, 0, len(entities))
	for _, e := range entities {
		nd := NodeDoc{ID: e.ID(), Type: e.Kind().String(), Hidden: !e.Visible()}
		if l, ok := e.(layered); ok && l.Layer() != nil {
			nd.Layer = l.Layer().Name
		}
		if mat := e.Material(); mat != nil {
			nd.Material = mat.Name
		}
		switch e.Kind() {
		case KindFace:
			box := e.Bounds()
			nd.Min = []float64{box.Min.X, box.Min.Y, box.Min.Z}
			nd.Max = []float64{box.Max.X, box.Max.Y, box.Max.Z}
		case KindGroup:
			nd.Entities = nodeDocs(e.Entities())
		case KindInstance:
			nd.Definition = e.Definition().Name
		}
		docs = append(docs, nd)
	}
	return docs
}
