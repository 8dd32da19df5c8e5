package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/scene"
)

// DefaultMaterialsPath returns the default file path for the material library.
// This is located at ~/.slabcut/materials.json.
func DefaultMaterialsPath() string {
	return filepath.Join(DefaultConfigDir(), "materials.json")
}

// SaveMaterialLibrary writes the library to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveMaterialLibrary(path string, lib model.MaterialLibrary) error {
	return writeJSON(path, lib)
}

// LoadMaterialLibrary reads the library from the specified JSON file.
// If the file does not exist, it returns an empty library.
func LoadMaterialLibrary(path string) (model.MaterialLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewMaterialLibrary(), nil
		}
		return model.MaterialLibrary{}, fmt.Errorf("failed to read material library: %w", err)
	}
	var lib model.MaterialLibrary
	if err := json.Unmarshal(data, &lib); err != nil {
		return model.MaterialLibrary{}, fmt.Errorf("failed to parse material library: %w", err)
	}
	if lib.Materials == nil {
		lib.Materials = []model.MaterialEntry{}
	}
	return lib, nil
}

// ImportMaterialLibrary merges the library stored at path into existing.
// Materials already present are kept.
func ImportMaterialLibrary(path string, existing model.MaterialLibrary) (model.MaterialLibrary, int, error) {
	imported, err := LoadMaterialLibrary(path)
	if err != nil {
		return existing, 0, err
	}
	added := existing.Merge(imported)
	return existing, added, nil
}

// ApplyMaterialLibrary gives every scene material found in the library the
// library's stock table. It returns the names of the materials it changed.
func ApplyMaterialLibrary(s scene.Scene, lib model.MaterialLibrary) []string {
	var applied []string
	for _, mat := range s.Materials() {
		entry, ok := lib.Find(mat.Name)
		if !ok {
			continue
		}
		mat.Attributes = entry.Attributes
		if entry.DisplayName != "" {
			mat.DisplayName = entry.DisplayName
		}
		applied = append(applied, mat.Name)
	}
	return applied
}
