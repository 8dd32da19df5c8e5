package engine

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/slabcut/internal/scene"
)

func TestComputeBounds_MergesFacesAndGroups(t *testing.T) {
	m := scene.NewModel("bounds.skp")
	inner := m.Group([]scene.Entity{
		m.Face(scene.NewBox(scene.Point{X: -10, Y: 0, Z: 0}, scene.Point{X: 0, Y: 20, Z: 0})),
	})
	def := m.Definition("Panel",
		m.Face(scene.BoxOf(100, 50, 0)),
		m.Face(scene.NewBox(scene.Point{Z: 18}, scene.Point{X: 100, Y: 50, Z: 18})),
		inner,
		m.Edge(),
	)

	box := ComputeBounds(def)
	assert.InDelta(t, 110.0, box.Width(), 1e-9)
	assert.InDelta(t, 50.0, box.Height(), 1e-9)
	assert.InDelta(t, 18.0, box.Depth(), 1e-9)
}

func TestComputeBounds_IgnoresNestedInstances(t *testing.T) {
	m := scene.NewModel("bounds.skp")
	big := m.Definition("Big", m.Slab(1000, 1000, 1000)...)
	def := m.Definition("Small", append(m.Slab(10, 10, 10), m.Instance(big))...)

	box := ComputeBounds(def)
	assert.InDelta(t, 10.0, box.Width(), 1e-9)
	assert.InDelta(t, 10.0, box.Depth(), 1e-9)
}

func TestComputeBounds_OrderIndependent(t *testing.T) {
	m := scene.NewModel("bounds.skp")
	children := []scene.Entity{
		m.Face(scene.NewBox(scene.Point{X: 5, Y: 5}, scene.Point{X: 9, Y: 7})),
		m.Group([]scene.Entity{m.Face(scene.NewBox(scene.Point{Z: -3}, scene.Point{X: 1, Y: 1, Z: -3}))}),
		m.Face(scene.NewBox(scene.Point{X: -2, Z: 4}, scene.Point{X: 0, Y: 3, Z: 4})),
	}
	reversed := slices.Clone(children)
	slices.Reverse(reversed)

	a := ComputeBounds(&scene.Definition{Name: "A", Entities: children})
	b := ComputeBounds(&scene.Definition{Name: "B", Entities: reversed})
	assert.Equal(t, a, b)
}

func TestComputeBounds_Empty(t *testing.T) {
	assert.True(t, ComputeBounds(nil).Empty())

	m := scene.NewModel("bounds.skp")
	def := m.Definition("Lines", m.Edge(), m.Group(nil))
	assert.True(t, ComputeBounds(def).Empty())
}
