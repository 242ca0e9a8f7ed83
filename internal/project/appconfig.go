package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/SibGlass/internal/model"
)

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.sibglass/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".sibglass")
}

// DefaultConfigPath returns the default path for the settings file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// DefaultCatalogPath returns the default path for the material catalog.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "glass.txt")
}

// DefaultAutosavePath returns the default path for the autosave snapshot.
func DefaultAutosavePath() string {
	return filepath.Join(DefaultConfigDir(), "autosave.json")
}

// DefaultLogPath returns the default path of the error log.
func DefaultLogPath() string {
	return filepath.Join(DefaultConfigDir(), "errors.log")
}

// CatalogPath returns the catalog file configured in cfg, or the default.
func CatalogPath(cfg model.AppConfig) string {
	if cfg.CatalogPath != "" {
		return cfg.CatalogPath
	}
	return DefaultCatalogPath()
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.DefaultAppConfig(), err
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.DefaultAppConfig(), fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return config, nil
}

// RememberSource stores source as the last used AluPro file.
func RememberSource(path, source string) error {
	return updateAppConfig(path, func(c *model.AppConfig) { c.LastSourcePath = source })
}

// RememberDestination stores destination as the last used request template.
func RememberDestination(path, destination string) error {
	return updateAppConfig(path, func(c *model.AppConfig) { c.LastDestinationPath = destination })
}

func updateAppConfig(path string, update func(*model.AppConfig)) error {
	config, err := LoadAppConfig(path)
	if err != nil {
		return err
	}
	update(&config)
	return SaveAppConfig(path, config)
}

func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
