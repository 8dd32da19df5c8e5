package model

// DefaultPartOrderStrategy sorts thickest, then longest, then widest parts first.
const DefaultPartOrderStrategy = "-thickness>-length>-width>-count>name"

// Settings holds the options of one cutlist generation.
type Settings struct {
	AutoOrient                bool   `json:"auto_orient"`                   // Sort extents so length >= width >= thickness
	SmartMaterial             bool   `json:"smart_material"`                // Resolve inherited and dominant child materials
	PartNumberWithLetters     bool   `json:"part_number_with_letters"`      // A, B, C... instead of 1, 2, 3...
	PartNumberSequenceByGroup bool   `json:"part_number_sequence_by_group"` // Restart numbering in every group
	PartOrderStrategy         string `json:"part_order_strategy"`           // e.g. "-thickness>-length>name"
}

func DefaultSettings() Settings {
	return Settings{
		AutoOrient:                true,
		SmartMaterial:             true,
		PartNumberWithLetters:     true,
		PartNumberSequenceByGroup: false,
		PartOrderStrategy:         DefaultPartOrderStrategy,
	}
}
