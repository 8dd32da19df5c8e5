package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/scene"
)

// isYAML reports whether path names a YAML file.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// DecodeDocument parses a scene document, as YAML when asYAML is set and
// as JSON otherwise.
func DecodeDocument(data []byte, asYAML bool) (scene.Document, error) {
	var doc scene.Document
	if asYAML {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return scene.Document{}, fmt.Errorf("failed to parse scene: %w", err)
		}
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return scene.Document{}, fmt.Errorf("failed to parse scene: %w", err)
	}
	return doc, nil
}

// EncodeDocument serializes a scene document.
func EncodeDocument(doc scene.Document, asYAML bool) ([]byte, error) {
	if asYAML {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal scene: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scene: %w", err)
	}
	return data, nil
}

// LoadScene reads a scene document (.json, .yaml or .yml) and builds the model.
// A document without a path takes the file name.
func LoadScene(path string) (*scene.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	doc, err := DecodeDocument(data, isYAML(path))
	if err != nil {
		return nil, err
	}
	m, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %s: %w", filepath.Base(path), err)
	}
	m.SetFilePath(path)
	return m, nil
}

// SaveScene writes the model back as a scene document in the format given
// by the extension of path.
func SaveScene(path string, m *scene.Model) error {
	data, err := EncodeDocument(scene.NewDocument(m), isYAML(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scene: %w", err)
	}
	return nil
}

// SaveReport writes a report as indented JSON.
func SaveReport(path string, report model.Report) error {
	return writeJSON(path, report)
}

// LoadReport reads a report written by SaveReport.
func LoadReport(path string) (model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Report{}, fmt.Errorf("failed to read report: %w", err)
	}
	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return model.Report{}, fmt.Errorf("failed to parse report: %w", err)
	}
	return report, nil
}
