package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/slabcut/internal/model"
)

// DefaultPresetsPath returns the default file path for custom presets.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SaveCustomPresets saves custom presets to a JSON file. Built-in presets
// are never written.
func SaveCustomPresets(path string, presets []model.Preset) error {
	return writeJSON(path, customOnly(presets))
}

// LoadCustomPresets loads custom presets from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomPresets(path string) ([]model.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Preset{}, nil
		}
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	var presets []model.Preset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	// Loaded presets are never built-in
	for i := range presets {
		presets[i].IsBuiltIn = false
	}
	return presets, nil
}

// AllPresets returns the built-in presets followed by the custom presets
// stored at path. A custom preset never shadows a built-in one.
func AllPresets(path string) ([]model.Preset, error) {
	presets := model.BuiltInPresets()
	custom, err := LoadCustomPresets(path)
	if err != nil {
		return presets, err
	}
	for _, p := range custom {
		if _, taken := model.FindPreset(presets, p.Name); taken {
			continue
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// ExportPreset exports a single preset to a JSON file (for sharing).
func ExportPreset(path string, preset model.Preset) error {
	preset.IsBuiltIn = false
	return writeJSON(path, preset)
}

// ImportPreset imports a single preset from a JSON file.
func ImportPreset(path string) (model.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Preset{}, fmt.Errorf("failed to read preset: %w", err)
	}

	var preset model.Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		return model.Preset{}, fmt.Errorf("failed to parse preset: %w", err)
	}

	preset.IsBuiltIn = false
	if preset.Name == "" {
		return model.Preset{}, errors.New("imported preset has no name")
	}
	return preset, nil
}

func customOnly(presets []model.Preset) []model.Preset {
	custom := []model.Preset{}
	for _, p := range presets {
		if !p.IsBuiltIn {
			custom = append(custom, p)
		}
	}
	return custom
}
