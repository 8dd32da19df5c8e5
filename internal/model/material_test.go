package model

import (
	"encoding/json"
	"testing"
)

func TestParseMaterialType(t *testing.T) {
	tests := []struct {
		in      string
		want    MaterialType
		wantErr bool
	}{
		{"solid_wood", MaterialTypeSolidWood, false},
		{" Solid Wood ", MaterialTypeSolidWood, false},
		{"plywood", MaterialTypeSheetGood, false},
		{"2", MaterialTypeSheetGood, false},
		{"", MaterialTypeUnknown, false},
		{"metal", MaterialTypeUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMaterialType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMaterialTypeJSON(t *testing.T) {
	data, err := json.Marshal(MaterialAttributes{Type: MaterialTypeSheetGood})
	if err != nil {
		t.Fatal(err)
	}
	var attrs MaterialAttributes
	if err := json.Unmarshal(data, &attrs); err != nil {
		t.Fatal(err)
	}
	if attrs.Type != MaterialTypeSheetGood {
		t.Errorf("type lost in JSON: %s", data)
	}
	if err := json.Unmarshal([]byte(`{"type":"metal"}`), &attrs); err == nil {
		t.Error("expected an error for an unknown type")
	}
}

func TestTypeOrder(t *testing.T) {
	if !(MaterialTypeSolidWood.TypeOrder() < MaterialTypeSheetGood.TypeOrder() &&
		MaterialTypeSheetGood.TypeOrder() < MaterialTypeUnknown.TypeOrder()) {
		t.Error("expected solid wood, then sheet goods, then unknown")
	}
}

func TestEffectiveDropsAllowancesOfUnknown(t *testing.T) {
	attrs := MaterialAttributes{Type: MaterialTypeUnknown, LengthIncrease: 10, StdThicknesses: []float64{18}}
	eff := attrs.Effective()
	if eff.LengthIncrease != 0 || len(eff.StdThicknesses) != 0 {
		t.Errorf("unknown material kept allowances: %+v", eff)
	}

	wood := DefaultMaterialAttributes(MaterialTypeSolidWood)
	if wood.Effective().LengthIncrease != 50 {
		t.Error("solid wood allowances should be kept")
	}
}

// ─── Group and Part Ids ─────────────────────────────────

func TestGroupKeyID(t *testing.T) {
	oak18 := NewGroupKey("Oak", MaterialTypeSolidWood, 18)
	if oak18.ID() != NewGroupKey("Oak", MaterialTypeSolidWood, 18).ID() {
		t.Error("group ids must be stable")
	}
	if oak18.ID() == NewGroupKey("Oak", MaterialTypeSolidWood, 27).ID() {
		t.Error("thickness must be part of the id")
	}

	unknown := NewGroupKey("Paint", MaterialTypeUnknown, 18)
	if unknown != NewGroupKey("Paint", MaterialTypeUnknown, 27) {
		t.Error("unknown materials are not split by thickness")
	}
}

func TestGroupDefPartIDs(t *testing.T) {
	g := NewGroupDef(NewGroupKey("Oak", MaterialTypeSolidWood, 18), 18, true)
	p := &PartDef{DefinitionID: "Leg"}
	g.SetPartDef("Leg", p)
	if p.ID == "" {
		t.Fatal("part id not assigned")
	}
	if g.PartDef("Leg") != p {
		t.Error("part not stored")
	}

	other := NewGroupDef(NewGroupKey("Oak", MaterialTypeSolidWood, 27), 27, true)
	q := &PartDef{DefinitionID: "Leg"}
	other.SetPartDef("Leg", q)
	if p.ID == q.ID {
		t.Error("part ids must differ between groups")
	}

	p.AddInstance(1, MaterialOriginOwned)
	p.AddInstance(2, MaterialOriginOwned)
	p.AddInstance(3, MaterialOriginInherited)
	if p.Count != 3 || len(p.MaterialOrigins) != 2 {
		t.Errorf("unexpected part %+v", p)
	}
}
