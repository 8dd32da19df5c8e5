package model

import (
	"cmp"
	"slices"
	"strings"
)

// partProperties maps the property names usable in an order strategy to
// comparators on part defs.
var partProperties = map[string]func(a, b *PartDef) int{
	"name": func(a, b *PartDef) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	},
	"length":        func(a, b *PartDef) int { return cmp.Compare(a.Size.Length, b.Size.Length) },
	"width":         func(a, b *PartDef) int { return cmp.Compare(a.Size.Width, b.Size.Width) },
	"thickness":     func(a, b *PartDef) int { return cmp.Compare(a.Size.Thickness, b.Size.Thickness) },
	"count":         func(a, b *PartDef) int { return cmp.Compare(a.Count, b.Count) },
	"raw_length":    func(a, b *PartDef) int { return cmp.Compare(a.RawSize.Length, b.RawSize.Length) },
	"raw_width":     func(a, b *PartDef) int { return cmp.Compare(a.RawSize.Width, b.RawSize.Width) },
	"raw_thickness": func(a, b *PartDef) int { return cmp.Compare(a.RawSize.Thickness, b.RawSize.Thickness) },
}

type orderKey struct {
	compare    func(a, b *PartDef) int
	descending bool
}

// PartOrder is a total ordering of part defs built from a strategy string.
//
// A strategy lists properties separated by ">", each optionally prefixed with
// "-" for descending order, e.g. "-thickness>-length>name". Unknown properties
// are ignored. Ties left by the strategy are broken by definition id.
type PartOrder struct {
	keys []orderKey
}

// ParsePartOrder builds a PartOrder from a strategy string.
func ParsePartOrder(strategy string) PartOrder {
	var order PartOrder
	for _, token := range strings.Split(strategy, ">") {
		token = strings.TrimSpace(token)
		descending := strings.HasPrefix(token, "-")
		name := strings.ToLower(strings.TrimPrefix(token, "-"))
		compare, ok := partProperties[name]
		if !ok {
			continue
		}
		order.keys = append(order.keys, orderKey{compare: compare, descending: descending})
	}
	return order
}

// Compare returns -1, 0 or +1. It only returns 0 for parts with the same definition id.
func (o PartOrder) Compare(a, b *PartDef) int {
	for _, k := range o.keys {
		c := k.compare(a, b)
		if k.descending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(a.DefinitionID, b.DefinitionID)
}

// Sort orders parts in place.
func (o PartOrder) Sort(parts []*PartDef) {
	slices.SortStableFunc(parts, o.Compare)
}
