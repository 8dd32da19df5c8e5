package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/scene"
)

type materials struct {
	oak, walnut, maple *scene.Material
}

func newMaterials(m *scene.Model) materials {
	wood := model.DefaultMaterialAttributes(model.MaterialTypeSolidWood)
	return materials{
		oak:    m.AddMaterial("Oak", "", wood),
		walnut: m.AddMaterial("Walnut", "", wood),
		maple:  m.AddMaterial("Maple", "", wood),
	}
}

func TestResolveMaterial_Owned(t *testing.T) {
	m := scene.NewModel("material.skp")
	mats := newMaterials(m)
	outer := m.Group(nil, scene.WithMaterial(mats.walnut))
	leg := m.Instance(m.Definition("Leg", m.Slab(45, 45, 700)...), scene.WithMaterial(mats.oak))

	for _, smart := range []bool{true, false} {
		mat, origin := ResolveMaterial(scene.Path{outer, leg}, smart)
		assert.Same(t, mats.oak, mat)
		assert.Equal(t, model.MaterialOriginOwned, origin)
	}
}

func TestResolveMaterial_NotSmartIgnoresAncestorsAndChildren(t *testing.T) {
	m := scene.NewModel("material.skp")
	mats := newMaterials(m)
	outer := m.Group(nil, scene.WithMaterial(mats.walnut))
	leg := m.Instance(m.Definition("Leg", m.Slab(45, 45, 700, scene.WithMaterial(mats.oak))...))

	mat, origin := ResolveMaterial(scene.Path{outer, leg}, false)
	assert.Nil(t, mat)
	assert.Equal(t, model.MaterialOriginUnknown, origin)
}

func TestResolveMaterial_DominantChild(t *testing.T) {
	m := scene.NewModel("material.skp")
	mats := newMaterials(m)
	def := m.Definition("Panel",
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.walnut)),
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.oak)),
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.walnut)),
		m.Face(scene.BoxOf(10, 10, 0)),
	)
	outer := m.Group(nil, scene.WithMaterial(mats.maple))
	inst := m.Instance(def)

	mat, origin := ResolveMaterial(scene.Path{outer, inst}, true)
	assert.Same(t, mats.walnut, mat, "children win over ancestors")
	assert.Equal(t, model.MaterialOriginChild, origin)
}

func TestResolveMaterial_DominantChildTieGoesToSmallestName(t *testing.T) {
	m := scene.NewModel("material.skp")
	mats := newMaterials(m)
	def := m.Definition("Panel",
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.walnut)),
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.oak)),
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.maple)),
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.walnut)),
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.oak)),
	)

	mat, _ := ResolveMaterial(scene.Path{m.Instance(def)}, true)
	assert.Same(t, mats.oak, mat)
}

func TestResolveMaterial_GroupCountsAsOneVote(t *testing.T) {
	m := scene.NewModel("material.skp")
	mats := newMaterials(m)
	walnutGroup := m.Group([]scene.Entity{
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.walnut)),
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.walnut)),
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.walnut)),
	})
	def := m.Definition("Panel",
		walnutGroup,
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.oak)),
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.oak)),
	)

	mat, origin := ResolveMaterial(scene.Path{m.Instance(def)}, true)
	assert.Same(t, mats.oak, mat)
	assert.Equal(t, model.MaterialOriginChild, origin)
}

func TestResolveMaterial_PaintedGroupWithoutPaintedFaces(t *testing.T) {
	m := scene.NewModel("material.skp")
	mats := newMaterials(m)
	def := m.Definition("Panel",
		m.Group([]scene.Entity{m.Face(scene.BoxOf(10, 10, 0))}, scene.WithMaterial(mats.maple)),
	)

	mat, origin := ResolveMaterial(scene.Path{m.Instance(def)}, true)
	assert.Same(t, mats.maple, mat)
	assert.Equal(t, model.MaterialOriginChild, origin)
}

func TestResolveMaterial_NestedComponentsDoNotVote(t *testing.T) {
	m := scene.NewModel("material.skp")
	mats := newMaterials(m)
	knob := m.Definition("Knob", m.Slab(20, 20, 20, scene.WithMaterial(mats.walnut))...)
	def := m.Definition("Drawer",
		m.Instance(knob, scene.WithMaterial(mats.walnut)),
		m.Instance(knob, scene.WithMaterial(mats.walnut)),
		m.Face(scene.BoxOf(10, 10, 0), scene.WithMaterial(mats.oak)),
	)

	mat, _ := ResolveMaterial(scene.Path{m.Instance(def)}, true)
	assert.Same(t, mats.oak, mat)
}

func TestResolveMaterial_Inherited(t *testing.T) {
	m := scene.NewModel("material.skp")
	mats := newMaterials(m)
	leg := m.Instance(m.Definition("Leg", m.Slab(45, 45, 700)...))
	inner := m.Group(nil)
	outer := m.Group(nil, scene.WithMaterial(mats.walnut))
	root := m.Group(nil, scene.WithMaterial(mats.maple))

	mat, origin := ResolveMaterial(scene.Path{root, outer, inner, leg}, true)
	assert.Same(t, mats.walnut, mat, "nearest painted ancestor wins")
	assert.Equal(t, model.MaterialOriginInherited, origin)
}

func TestResolveMaterial_NothingFound(t *testing.T) {
	m := scene.NewModel("material.skp")
	leg := m.Instance(m.Definition("Leg", m.Slab(45, 45, 700)...))

	mat, origin := ResolveMaterial(scene.Path{m.Group(nil), leg}, true)
	assert.Nil(t, mat)
	assert.Equal(t, model.MaterialOriginUnknown, origin)
}

func TestResolveMaterial_UnusablePaths(t *testing.T) {
	m := scene.NewModel("material.skp")

	mat, origin := ResolveMaterial(nil, true)
	assert.Nil(t, mat)
	assert.Equal(t, model.MaterialOriginUnknown, origin)

	mat, origin = ResolveMaterial(scene.Path{m.Edge()}, true)
	assert.Nil(t, mat)
	assert.Equal(t, model.MaterialOriginUnknown, origin)
}
