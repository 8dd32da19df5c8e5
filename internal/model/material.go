package model

import (
	"fmt"
	"strings"
)

// MaterialType classifies a material for stock sizing.
type MaterialType int

const (
	MaterialTypeUnknown   MaterialType = iota // No stock table, no thickness grouping
	MaterialTypeSolidWood                     // Rough lumber, thickness rounded up to stock
	MaterialTypeSheetGood                     // Plywood, MDF and other panels
)

func (t MaterialType) String() string {
	switch t {
	case MaterialTypeSolidWood:
		return "solid_wood"
	case MaterialTypeSheetGood:
		return "sheet_good"
	default:
		return "unknown"
	}
}

// ParseMaterialType converts a type name into a MaterialType.
// It accepts the canonical names as well as a few common aliases.
func ParseMaterialType(s string) (MaterialType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown", "none", "0":
		return MaterialTypeUnknown, nil
	case "solid_wood", "solid wood", "solidwood", "hardwood", "1":
		return MaterialTypeSolidWood, nil
	case "sheet_good", "sheet good", "sheetgood", "plywood", "panel", "2":
		return MaterialTypeSheetGood, nil
	}
	return MaterialTypeUnknown, fmt.Errorf("unknown material type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t MaterialType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *MaterialType) UnmarshalText(text []byte) error {
	parsed, err := ParseMaterialType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TypeOrder returns the sort rank of the type in a report.
// Solid wood groups come first, then sheet goods, then everything unclassified.
func (t MaterialType) TypeOrder() int {
	switch t {
	case MaterialTypeSolidWood:
		return 1
	case MaterialTypeSheetGood:
		return 2
	default:
		return 99
	}
}

// MaterialAttributes is the stock table attached to a material.
// All lengths are in mm.
type MaterialAttributes struct {
	Type              MaterialType `json:"type" yaml:"type"`
	LengthIncrease    float64      `json:"length_increase" yaml:"length_increase"`
	WidthIncrease     float64      `json:"width_increase" yaml:"width_increase"`
	ThicknessIncrease float64      `json:"thickness_increase" yaml:"thickness_increase"`
	StdThicknesses    []float64    `json:"std_thicknesses" yaml:"std_thicknesses"` // ascending
}

// DefaultMaterialAttributes returns sensible stock allowances for a material type.
func DefaultMaterialAttributes(t MaterialType) MaterialAttributes {
	switch t {
	case MaterialTypeSolidWood:
		return MaterialAttributes{
			Type:              t,
			LengthIncrease:    50,
			WidthIncrease:     5,
			ThicknessIncrease: 0,
			StdThicknesses:    []float64{18, 27, 35, 45, 64, 80, 100},
		}
	case MaterialTypeSheetGood:
		return MaterialAttributes{
			Type:           t,
			StdThicknesses: []float64{5, 8, 10, 15, 18, 22},
		}
	default:
		return MaterialAttributes{Type: MaterialTypeUnknown}
	}
}

// Effective returns the attributes that apply to sizing.
// Unknown materials never carry allowances or a stock table.
func (a MaterialAttributes) Effective() MaterialAttributes {
	if a.Type == MaterialTypeUnknown {
		return MaterialAttributes{Type: MaterialTypeUnknown}
	}
	return a
}

// MaterialOrigin records how a part's material was determined.
type MaterialOrigin int

const (
	MaterialOriginUnknown   MaterialOrigin = iota // No material could be found
	MaterialOriginOwned                           // Set on the component itself
	MaterialOriginInherited                       // Taken from an enclosing group or component
	MaterialOriginChild                           // Dominant material among the component's faces
)

func (o MaterialOrigin) String() string {
	switch o {
	case MaterialOriginOwned:
		return "owned"
	case MaterialOriginInherited:
		return "inherited"
	case MaterialOriginChild:
		return "child"
	default:
		return "unknown"
	}
}

// MaterialUsage counts how many part instances resolved to a material.
type MaterialUsage struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Type        MaterialType `json:"type"`
	UseCount    int          `json:"use_count"`
}
