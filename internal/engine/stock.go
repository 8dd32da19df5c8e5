package engine

import (
	"sort"

	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/scene"
)

// SizeFromBounds converts a box into a part size. With autoOrient the
// largest extent becomes the length and the smallest the thickness;
// otherwise x, y and z map to length, width and thickness.
func SizeFromBounds(box scene.Box, autoOrient bool) model.Size {
	if !autoOrient {
		return model.Size{Length: box.Width(), Width: box.Height(), Thickness: box.Depth()}
	}
	extents := []float64{box.Width(), box.Height(), box.Depth()}
	sort.Float64s(extents)
	return model.Size{Length: extents[2], Width: extents[1], Thickness: extents[0]}
}

// StdThickness is the outcome of a standard thickness lookup.
type StdThickness struct {
	Value     float64
	Available bool
}

// FindStdThickness looks for the first standard thickness at least as thick
// as thickness. std must be ascending.
//
// With nearestHighest the standard value is used and reported available.
// Without it the thickness is kept and only reported available when it
// matches a standard value exactly. When every standard value is thinner the
// thickness is kept and reported unavailable.
func FindStdThickness(thickness float64, std []float64, nearestHighest bool) StdThickness {
	for _, s := range std {
		if thickness <= s {
			if nearestHighest {
				return StdThickness{Value: s, Available: true}
			}
			return StdThickness{Value: thickness, Available: thickness == s}
		}
	}
	return StdThickness{Value: thickness, Available: false}
}

// RawSize applies the allowances of a material to a finished size.
// Unknown materials get no allowance.
func RawSize(size model.Size, attrs model.MaterialAttributes) (model.Size, StdThickness) {
	attrs = attrs.Effective()
	std := FindStdThickness(
		size.Thickness+attrs.ThicknessIncrease,
		attrs.StdThicknesses,
		attrs.Type == model.MaterialTypeSolidWood,
	)
	return model.Size{
		Length:    size.Length + attrs.LengthIncrease,
		Width:     size.Width + attrs.WidthIncrease,
		Thickness: std.Value,
	}, std
}
