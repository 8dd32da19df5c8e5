package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default generation settings applied to every new cutlist
	DefaultAutoOrient                bool   `json:"default_auto_orient"`
	DefaultSmartMaterial             bool   `json:"default_smart_material"`
	DefaultPartNumberWithLetters     bool   `json:"default_part_number_with_letters"`
	DefaultPartNumberSequenceByGroup bool   `json:"default_part_number_sequence_by_group"`
	DefaultPartOrderStrategy         string `json:"default_part_order_strategy"`

	// Output
	ExportFormats []string `json:"export_formats"` // "json", "csv", "xlsx", "pdf", "labels", "dxf"

	// Service
	ListenAddr string `json:"listen_addr"`
	LogLevel   string `json:"log_level"`  // "debug", "info", "warn", "error"
	LogFormat  string `json:"log_format"` // "json" or "console"

	// Application preferences
	RecentScenes []string `json:"recent_scenes"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultAutoOrient:                defaults.AutoOrient,
		DefaultSmartMaterial:             defaults.SmartMaterial,
		DefaultPartNumberWithLetters:     defaults.PartNumberWithLetters,
		DefaultPartNumberSequenceByGroup: defaults.PartNumberSequenceByGroup,
		DefaultPartOrderStrategy:         defaults.PartOrderStrategy,
		ExportFormats:                    []string{"json"},
		ListenAddr:                       ":8095",
		LogLevel:                         "info",
		LogFormat:                        "console",
		RecentScenes:                     []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
func (c AppConfig) ApplyToSettings(s *Settings) {
	s.AutoOrient = c.DefaultAutoOrient
	s.SmartMaterial = c.DefaultSmartMaterial
	s.PartNumberWithLetters = c.DefaultPartNumberWithLetters
	s.PartNumberSequenceByGroup = c.DefaultPartNumberSequenceByGroup
	if c.DefaultPartOrderStrategy != "" {
		s.PartOrderStrategy = c.DefaultPartOrderStrategy
	}
}

// AddRecentScene moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentScene(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentScenes {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentScenes = recent
}
