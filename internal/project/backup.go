package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/slabcut/internal/model"
)

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string                `json:"version"`
	CreatedAt string                `json:"created_at"`
	Config    model.AppConfig       `json:"config"`
	Materials model.MaterialLibrary `json:"materials"`
	Presets   []model.Preset        `json:"presets,omitempty"`
}

// ExportAllData exports the config, the material library and the custom
// presets to a single JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, library model.MaterialLibrary, presets []model.Preset) error {
	backup := BackupData{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Materials: library,
		Presets:   customOnly(presets),
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported data.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentScenes == nil {
		backup.Config.RecentScenes = []string{}
	}
	if backup.Materials.Materials == nil {
		backup.Materials.Materials = []model.MaterialEntry{}
	}
	return backup, nil
}
