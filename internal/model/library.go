package model

import (
	"sort"
	"strings"
)

// MaterialEntry is the stock table stored for one material name.
type MaterialEntry struct {
	Name        string             `json:"name"`
	DisplayName string             `json:"display_name,omitempty"`
	Attributes  MaterialAttributes `json:"attributes"`
}

// MaterialLibrary holds stock tables shared across scenes. Scene materials
// with a matching name take their attributes from the library.
type MaterialLibrary struct {
	Materials []MaterialEntry `json:"materials"`
}

// NewMaterialLibrary returns an empty library.
func NewMaterialLibrary() MaterialLibrary {
	return MaterialLibrary{Materials: []MaterialEntry{}}
}

// Find returns the entry with the given name, compared case-insensitively.
func (l MaterialLibrary) Find(name string) (MaterialEntry, bool) {
	for _, e := range l.Materials {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return MaterialEntry{}, false
}

// Upsert adds an entry or replaces the one with the same name.
// Standard thicknesses are kept ascending.
func (l *MaterialLibrary) Upsert(entry MaterialEntry) {
	entry.Attributes.StdThicknesses = append([]float64(nil), entry.Attributes.StdThicknesses...)
	sort.Float64s(entry.Attributes.StdThicknesses)
	for i, e := range l.Materials {
		if strings.EqualFold(e.Name, entry.Name) {
			l.Materials[i] = entry
			return
		}
	}
	l.Materials = append(l.Materials, entry)
}

// Remove deletes the entry with the given name. It reports whether one was found.
func (l *MaterialLibrary) Remove(name string) bool {
	for i, e := range l.Materials {
		if strings.EqualFold(e.Name, name) {
			l.Materials = append(l.Materials[:i], l.Materials[i+1:]...)
			return true
		}
	}
	return false
}

// Merge adds the entries of other that are not in the library yet and
// returns how many were added. Existing entries are kept.
func (l *MaterialLibrary) Merge(other MaterialLibrary) int {
	added := 0
	for _, e := range other.Materials {
		if _, ok := l.Find(e.Name); ok {
			continue
		}
		l.Upsert(e)
		added++
	}
	return added
}
