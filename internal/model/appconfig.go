package model

// AppConfig holds the persisted application settings.
type AppConfig struct {
	// Last files picked by the user
	LastSourcePath      string `json:"last_source_path"`
	LastDestinationPath string `json:"last_destination_path"`

	// Optional overrides
	CatalogPath string `json:"catalog_path,omitempty"` // glass.txt location, empty = config dir
	FontPath    string `json:"font_path,omitempty"`    // UTF-8 TTF font for PDF exports
}

// DefaultAppConfig returns an empty configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{}
}

// ApplyDefaults fills empty source and destination paths from the config.
// Values already set by the caller win.
func (c AppConfig) ApplyDefaults(source, destination *string) {
	if *source == "" {
		*source = c.LastSourcePath
	}
	if *destination == "" {
		*destination = c.LastDestinationPath
	}
}
