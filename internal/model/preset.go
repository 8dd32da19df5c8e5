package model

import "strings"

// Preset is a named set of generation settings.
type Preset struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Settings    Settings `json:"settings"`
	IsBuiltIn   bool     `json:"is_built_in"`
}

// BuiltInPresets returns the presets shipped with the application.
func BuiltInPresets() []Preset {
	byGroup := DefaultSettings()
	byGroup.PartNumberSequenceByGroup = true

	numeric := DefaultSettings()
	numeric.PartNumberWithLetters = false

	asDrawn := DefaultSettings()
	asDrawn.AutoOrient = false
	asDrawn.SmartMaterial = false

	byName := DefaultSettings()
	byName.PartOrderStrategy = "name>-thickness>-length"

	return []Preset{
		{Name: "default", Description: "Letters numbered across the whole cutlist", Settings: DefaultSettings(), IsBuiltIn: true},
		{Name: "by-group", Description: "Part letters restart in every group", Settings: byGroup, IsBuiltIn: true},
		{Name: "numeric", Description: "Parts numbered 1, 2, 3", Settings: numeric, IsBuiltIn: true},
		{Name: "as-drawn", Description: "Model axes and owned materials only", Settings: asDrawn, IsBuiltIn: true},
		{Name: "by-name", Description: "Parts listed alphabetically", Settings: byName, IsBuiltIn: true},
	}
}

// FindPreset returns the preset with the given name, compared case-insensitively.
func FindPreset(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
