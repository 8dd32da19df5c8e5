package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/slabcut/internal/metrics"
	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/scene"
)

// bench is a small workbench: four oak legs, an oak top, two plywood
// shelves of different thickness and a painted knob.
type bench struct {
	model                  *scene.Model
	oak, plywood, paint    *scene.Material
	legs                   []*scene.Instance
	top, shelf, back, knob *scene.Instance
}

func newBench() *bench {
	m := scene.NewModel("/projects/workbench.skp")
	m.SetPageLabel("Front")
	b := &bench{model: m}

	b.oak = m.AddMaterial("Oak", "", model.MaterialAttributes{
		Type:           model.MaterialTypeSolidWood,
		LengthIncrease: 50,
		WidthIncrease:  5,
		StdThicknesses: []float64{18, 27, 35, 45},
	})
	b.plywood = m.AddMaterial("Plywood", "", model.MaterialAttributes{
		Type:           model.MaterialTypeSheetGood,
		StdThicknesses: []float64{12, 18},
	})
	b.paint = m.AddMaterial("Paint", "", model.DefaultMaterialAttributes(model.MaterialTypeUnknown))

	leg := m.Definition("Leg", m.Slab(45, 45, 700)...)
	for i := 0; i < 4; i++ {
		b.legs = append(b.legs, m.Instance(leg, scene.WithMaterial(b.oak)))
	}
	b.top = m.Instance(m.Definition("Top", m.Slab(1200, 400, 25)...), scene.WithMaterial(b.oak))
	b.shelf = m.Instance(m.Definition("Shelf", m.Slab(1000, 350, 18)...), scene.WithMaterial(b.plywood))
	b.back = m.Instance(m.Definition("Back", m.Slab(1000, 300, 10)...), scene.WithMaterial(b.plywood))
	b.knob = m.Instance(m.Definition("Knob", m.Slab(30, 30, 30)...), scene.WithMaterial(b.paint))

	for _, l := range b.legs {
		m.AddEntities(l)
	}
	m.AddEntities(b.top, b.shelf, b.back, b.knob)
	return b
}

func testEngine() *Engine {
	return New(model.DefaultSettings(), nil, nil)
}

func partNumbers(r model.Report) []string {
	var numbers []string
	for _, g := range r.Groups {
		for _, p := range g.Parts {
			numbers = append(numbers, p.Number)
		}
	}
	return numbers
}

func TestGenerate_Bench(t *testing.T) {
	b := newBench()
	r := testEngine().Generate(b.model)

	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
	assert.Empty(t, r.Tips)
	assert.Equal(t, "workbench.skp", r.Filename)
	assert.Equal(t, "Front", r.PageLabel)

	require.Len(t, r.Groups, 5)
	type summary struct {
		material  string
		thickness float64
		available bool
		parts     int
	}
	var got []summary
	for _, g := range r.Groups {
		got = append(got, summary{g.MaterialName, g.RawThickness, g.RawThicknessAvailable, g.PartCount})
	}
	assert.Equal(t, []summary{
		{"Oak", 45, true, 4},
		{"Oak", 27, true, 1},
		{"Plywood", 18, true, 1},
		{"Plywood", 10, false, 1},
		{"Paint", 30, false, 1},
	}, got)

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, partNumbers(r))

	legs := r.Groups[0].Parts[0]
	assert.Equal(t, "Leg", legs.Name)
	assert.Equal(t, "Leg", legs.DefinitionID)
	assert.Equal(t, 4, legs.Count)
	assert.Len(t, legs.EntityIDs, 4)
	assert.Equal(t, model.Size{Length: 700, Width: 45, Thickness: 45}, legs.Size())
	assert.Equal(t, model.Size{Length: 750, Width: 50, Thickness: 45}, legs.RawSize())
	assert.Equal(t, []model.MaterialOrigin{model.MaterialOriginOwned}, legs.MaterialOrigins)
	assert.Equal(t, "Oak", legs.MaterialName)

	top := r.Groups[1].Parts[0]
	assert.Equal(t, model.Size{Length: 1250, Width: 405, Thickness: 27}, top.RawSize())
}

func TestGenerate_MaterialUsages(t *testing.T) {
	b := newBench()
	b.model.AddMaterial("Ash", "ash", model.DefaultMaterialAttributes(model.MaterialTypeSolidWood))

	r := testEngine().Generate(b.model)

	var names []string
	counts := map[string]int{}
	for _, u := range r.MaterialUsages {
		names = append(names, u.DisplayName)
		counts[u.Name] = u.UseCount
	}
	assert.Equal(t, []string{"ash", "Oak", "Paint", "Plywood"}, names)
	assert.Equal(t, map[string]int{"Ash": 0, "Oak": 5, "Paint": 1, "Plywood": 2}, counts)
}

func TestGenerate_AreaAndVolume(t *testing.T) {
	m := scene.NewModel("totals.skp")
	oak := m.AddMaterial("Oak", "", model.MaterialAttributes{
		Type:           model.MaterialTypeSolidWood,
		StdThicknesses: []float64{18},
	})
	ply := m.AddMaterial("Ply", "", model.MaterialAttributes{
		Type:           model.MaterialTypeSheetGood,
		StdThicknesses: []float64{18},
	})
	paint := m.AddMaterial("Paint", "", model.MaterialAttributes{})
	m.AddEntities(
		m.Instance(m.Definition("Short", m.Slab(100, 50, 18)...), scene.WithMaterial(oak)),
		m.Instance(m.Definition("Long", m.Slab(200, 50, 18)...), scene.WithMaterial(oak)),
		m.Instance(m.Definition("Panel", m.Slab(200, 100, 18)...), scene.WithMaterial(ply)),
		m.Instance(m.Definition("Knob", m.Slab(200, 100, 18)...), scene.WithMaterial(paint)),
	)

	r := testEngine().Generate(m)
	require.Len(t, r.Groups, 3)

	wood := r.Groups[0]
	assert.Equal(t, "Oak", wood.MaterialName)
	assert.InDelta(t, 100.0*50+200.0*50, wood.RawArea, 1e-9)
	assert.InDelta(t, (100.0*50+200.0*50)*18, wood.RawVolume, 1e-9)
	assert.InDelta(t, 0.015, wood.RawAreaM2, 1e-12)

	sheet := r.Groups[1]
	assert.InDelta(t, 200.0*100, sheet.RawArea, 1e-9)
	assert.Zero(t, sheet.RawVolume, "only solid wood accumulates volume")

	unknown := r.Groups[2]
	assert.Equal(t, model.MaterialTypeUnknown, unknown.MaterialType)
	assert.Zero(t, unknown.RawArea)
	assert.Zero(t, unknown.RawVolume)
}

func TestGenerate_AreaCountsEveryInstance(t *testing.T) {
	m := scene.NewModel("totals.skp")
	oak := m.AddMaterial("Oak", "", model.MaterialAttributes{Type: model.MaterialTypeSolidWood, StdThicknesses: []float64{20}})
	slat := m.Definition("Slat", m.Slab(100, 10, 20)...)
	m.AddEntities(m.Instance(slat, scene.WithMaterial(oak)), m.Instance(slat, scene.WithMaterial(oak)))

	r := testEngine().Generate(m)
	require.Len(t, r.Groups, 1)
	// 100 x 10 x 20 orients to 100 x 20 x 10; the width stays 20.
	assert.InDelta(t, 2*100.0*20, r.Groups[0].RawArea, 1e-9)
}

func numberingScene() *scene.Model {
	m := scene.NewModel("numbers.skp")
	for _, name := range []string{"Ash", "Beech", "Cherry"} {
		mat := m.AddMaterial(name, "", model.MaterialAttributes{Type: model.MaterialTypeSolidWood, StdThicknesses: []float64{20}})
		m.AddEntities(
			m.Instance(m.Definition(name+" rail", m.Slab(500, 50, 20)...), scene.WithMaterial(mat)),
			m.Instance(m.Definition(name+" stile", m.Slab(400, 50, 20)...), scene.WithMaterial(mat)),
		)
	}
	return m
}

func TestGenerate_Numbering(t *testing.T) {
	tests := []struct {
		name    string
		letters bool
		byGroup bool
		want    []string
	}{
		{"letters continuous", true, false, []string{"A", "B", "C", "D", "E", "F"}},
		{"letters by group", true, true, []string{"A", "B", "A", "B", "A", "B"}},
		{"digits continuous", false, false, []string{"1", "2", "3", "4", "5", "6"}},
		{"digits by group", false, true, []string{"1", "2", "1", "2", "1", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := model.DefaultSettings()
			settings.PartNumberWithLetters = tt.letters
			settings.PartNumberSequenceByGroup = tt.byGroup

			r := New(settings, nil, nil).Generate(numberingScene())
			require.Len(t, r.Groups, 3)
			assert.Equal(t, tt.want, partNumbers(r))
		})
	}
}

func TestGenerate_PartOrderStrategy(t *testing.T) {
	settings := model.DefaultSettings()
	settings.PartOrderStrategy = "name"
	r := New(settings, nil, nil).Generate(numberingScene())
	assert.Equal(t, "Ash rail", r.Groups[0].Parts[0].Name)

	settings.PartOrderStrategy = "length"
	r = New(settings, nil, nil).Generate(numberingScene())
	assert.Equal(t, "Ash stile", r.Groups[0].Parts[0].Name)
}

func TestGenerate_EmptyScene(t *testing.T) {
	m := scene.NewModel("empty.skp")
	m.AddMaterial("Oak", "", model.DefaultMaterialAttributes(model.MaterialTypeSolidWood))

	r := testEngine().Generate(m)
	assert.Equal(t, []string{model.ErrorNoEntities}, r.Errors)
	assert.Empty(t, r.Warnings)
	assert.Empty(t, r.Tips)
	assert.Empty(t, r.Groups)
	require.Len(t, r.MaterialUsages, 1)
	assert.Zero(t, r.MaterialUsages[0].UseCount)
}

func TestGenerate_NoComponentInModel(t *testing.T) {
	m := scene.NewModel("loose.skp")
	m.AddEntities(m.Slab(100, 100, 100)...)

	r := testEngine().Generate(m)
	assert.Equal(t, []string{model.ErrorNoComponentInModel}, r.Errors)
	assert.Equal(t, []string{model.TipNoComponent}, r.Tips)
	assert.Empty(t, r.Warnings)
}

func TestGenerate_NoComponentInSelection(t *testing.T) {
	b := newBench()
	b.model.Select(b.model.Edge())

	r := testEngine().Generate(b.model)
	assert.Equal(t, []string{model.ErrorNoComponentInSelection}, r.Errors)
	assert.Equal(t, []string{model.TipNoComponent}, r.Tips)
	assert.Empty(t, r.Groups)
}

func TestGenerate_SelectionIsPartial(t *testing.T) {
	b := newBench()
	b.model.Select(b.legs[0], b.legs[1])

	r := testEngine().Generate(b.model)
	assert.Equal(t, []string{model.WarningPartialCutlist}, r.Warnings)
	require.Len(t, r.Groups, 1)
	assert.Equal(t, 2, r.Groups[0].PartCount)
}

func TestGenerate_NoTypedMaterials(t *testing.T) {
	b := newBench()
	b.model.Select(b.knob)

	r := testEngine().Generate(b.model)
	assert.Equal(t, []string{model.WarningPartialCutlist, model.WarningNoTypedMaterialsSelection}, r.Warnings)
	assert.Equal(t, []string{model.TipNoTypedMaterials}, r.Tips)

	m := scene.NewModel("untyped.skp")
	m.AddEntities(m.Instance(m.Definition("Box", m.Slab(10, 10, 10)...)))
	r = testEngine().Generate(m)
	assert.Equal(t, []string{model.WarningNoTypedMaterialsModel}, r.Warnings)
	assert.Equal(t, []string{model.TipNoTypedMaterials}, r.Tips)
	require.Len(t, r.Groups, 1)
	assert.Equal(t, "", r.Groups[0].MaterialName)
}

func TestGenerate_ActivePath(t *testing.T) {
	b := newBench()
	frame := b.model.Group([]scene.Entity{b.legs[0], b.legs[1]})
	b.model.AddEntities(frame)
	b.model.SetActivePath(scene.Path{frame})

	r := testEngine().Generate(b.model)
	require.Len(t, r.Groups, 1)
	assert.Equal(t, 2, r.Groups[0].PartCount)
	assert.Empty(t, r.Warnings)
}

func TestGenerate_OriginsAccumulate(t *testing.T) {
	m := scene.NewModel("origins.skp")
	oak := m.AddMaterial("Oak", "", model.DefaultMaterialAttributes(model.MaterialTypeSolidWood))
	leg := m.Definition("Leg", m.Slab(45, 45, 700)...)
	m.AddEntities(
		m.Instance(leg, scene.WithMaterial(oak)),
		m.Group([]scene.Entity{m.Instance(leg)}, scene.WithMaterial(oak)),
	)

	r := testEngine().Generate(m)
	require.Len(t, r.Groups, 1)
	require.Len(t, r.Groups[0].Parts, 1)
	p := r.Groups[0].Parts[0]
	assert.Equal(t, 2, p.Count)
	assert.Equal(t, []model.MaterialOrigin{model.MaterialOriginOwned, model.MaterialOriginInherited}, p.MaterialOrigins)
}

func TestGenerate_SameDefinitionSplitsByMaterial(t *testing.T) {
	b := newBench()
	b.legs[3].SetMaterial(b.plywood)

	r := testEngine().Generate(b.model)
	var legGroups []string
	for _, g := range r.Groups {
		for _, p := range g.Parts {
			if p.DefinitionID == "Leg" {
				legGroups = append(legGroups, g.ID)
			}
		}
	}
	assert.Len(t, legGroups, 2)
	assert.NotEqual(t, legGroups[0], legGroups[1])
}

func TestGenerate_WithoutAutoOrient(t *testing.T) {
	settings := model.DefaultSettings()
	settings.AutoOrient = false
	b := newBench()
	b.model.Select(b.legs[0])

	r := New(settings, nil, nil).Generate(b.model)
	require.Len(t, r.Groups, 1)
	p := r.Groups[0].Parts[0]
	assert.Equal(t, model.Size{Length: 45, Width: 45, Thickness: 700}, p.Size())
	assert.Equal(t, 700.0, r.Groups[0].RawThickness, "thicker than every standard size")
	assert.False(t, r.Groups[0].RawThicknessAvailable)
}

func TestGenerate_SmartMaterialOff(t *testing.T) {
	settings := model.DefaultSettings()
	settings.SmartMaterial = false
	m := scene.NewModel("plain.skp")
	oak := m.AddMaterial("Oak", "", model.DefaultMaterialAttributes(model.MaterialTypeSolidWood))
	m.AddEntities(m.Group([]scene.Entity{m.Instance(m.Definition("Leg", m.Slab(45, 45, 700)...))}, scene.WithMaterial(oak)))

	r := New(settings, nil, nil).Generate(m)
	require.Len(t, r.Groups, 1)
	assert.Equal(t, "", r.Groups[0].MaterialName)
	assert.Equal(t, []model.MaterialOrigin{model.MaterialOriginUnknown}, r.Groups[0].Parts[0].MaterialOrigins)
}

func TestGenerate_IsIdempotent(t *testing.T) {
	b := newBench()
	e := testEngine()

	first, err := json.Marshal(e.Generate(b.model))
	require.NoError(t, err)
	second, err := json.Marshal(e.Generate(b.model))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	third, err := json.Marshal(testEngine().Generate(newBench().model))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(third), "ids do not depend on the engine instance")
}

func TestGenerate_GroupsPartitionInstances(t *testing.T) {
	b := newBench()
	frame := b.model.Definition("Frame", b.model.Instance(b.model.FindDefinition("Leg")), b.model.Instance(b.model.FindDefinition("Top")))
	b.model.AddEntities(b.model.Instance(frame), b.model.Instance(frame))

	r := testEngine().Generate(b.model)
	paths := Discover(b.model.ActiveEntities(), nil)

	assert.Equal(t, len(paths), r.InstanceCount())

	for _, g := range r.Groups {
		count := 0
		for _, p := range g.Parts {
			assert.Len(t, p.EntityIDs, p.Count)
			count += p.Count
		}
		assert.Equal(t, g.PartCount, count)
	}
}

func TestGenerate_RecordsMetrics(t *testing.T) {
	rec := metrics.New()
	e := New(model.DefaultSettings(), nil, rec)

	e.Generate(newBench().model)
	e.Generate(scene.NewModel("empty.skp"))

	families, err := rec.Registry().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["slabcut_generations_total"])
	assert.True(t, names["slabcut_part_instances_total"])
	assert.True(t, names["slabcut_diagnostics_total"])
}
