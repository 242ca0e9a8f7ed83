package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/SibGlass/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.LastSourcePath = "/tmp/alupro.xlsx"
	cfg.LastDestinationPath = "/tmp/sibglass.xlsx"
	cfg.FontPath = "/usr/share/fonts/DejaVuSans.ttf"

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded config %+v, want %+v", loaded, cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"last_source_path"`, `"last_destination_path"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected key %s in %s", key, data)
		}
	}
	if strings.Contains(string(data), "catalog_path") {
		t.Error("empty catalog_path should be omitted")
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg != model.DefaultAppConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	if cfg != model.DefaultAppConfig() {
		t.Errorf("expected defaults alongside the error, got %+v", cfg)
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestRememberPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	if err := RememberSource(path, "a.xlsx"); err != nil {
		t.Fatalf("RememberSource failed: %v", err)
	}
	if err := RememberDestination(path, "b.xlsx"); err != nil {
		t.Fatalf("RememberDestination failed: %v", err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LastSourcePath != "a.xlsx" || cfg.LastDestinationPath != "b.xlsx" {
		t.Errorf("unexpected remembered paths: %+v", cfg)
	}
}

func TestCatalogPath(t *testing.T) {
	if got := CatalogPath(model.AppConfig{}); got != DefaultCatalogPath() {
		t.Errorf("expected default catalog path, got %s", got)
	}
	if got := CatalogPath(model.AppConfig{CatalogPath: "/data/glass.txt"}); got != "/data/glass.txt" {
		t.Errorf("expected configured catalog path, got %s", got)
	}
	if filepath.Base(DefaultCatalogPath()) != "glass.txt" {
		t.Errorf("unexpected default catalog file %s", DefaultCatalogPath())
	}
}
