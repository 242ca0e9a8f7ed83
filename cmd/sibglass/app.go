package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/piwi3910/SibGlass/internal/model"
	"github.com/piwi3910/SibGlass/internal/project"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	configPath string
	verbose    bool

	dataDir string
	config  model.AppConfig
	log     *slog.Logger
	logFile io.Closer
}

// setup loads the settings and configures logging. The data directory is
// the directory of the settings file, so --config moves everything.
func (a *app) setup(stderr io.Writer) {
	if a.configPath == "" {
		a.configPath = project.DefaultConfigPath()
	}
	a.dataDir = filepath.Dir(a.configPath)

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	var out io.Writer = stderr
	if err := os.MkdirAll(a.dataDir, 0755); err == nil {
		f, err := os.OpenFile(a.logPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			a.logFile = f
			out = io.MultiWriter(stderr, f)
		}
	}
	a.log = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		a.log.Warn("settings file unreadable, using defaults", "path", a.configPath, "error", err)
	}
	a.config = cfg
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

func (a *app) logPath() string {
	return filepath.Join(a.dataDir, filepath.Base(project.DefaultLogPath()))
}

func (a *app) autosavePath() string {
	return filepath.Join(a.dataDir, filepath.Base(project.DefaultAutosavePath()))
}

// catalogPath honours an explicit catalog_path setting; otherwise the
// catalog lives next to the settings file.
func (a *app) catalogPath() string {
	path := project.CatalogPath(a.config)
	if a.config.CatalogPath == "" {
		path = filepath.Join(a.dataDir, filepath.Base(path))
	}
	return path
}

func (a *app) loadCatalog() (model.GlassCatalog, error) {
	path := a.catalogPath()
	catalog, exists, err := project.LoadCatalog(path)
	if err != nil {
		return catalog, err
	}
	switch {
	case !exists:
		a.log.Warn("catalog file not found, it is created on the first save", "path", path)
	case catalog.IsEmpty():
		a.log.Warn("catalog is empty, formulas are built without material names", "path", path)
	}
	return catalog, nil
}

func (a *app) pdfFontPath() string {
	return a.config.FontPath
}

// remember stores a validated file as the last used one of its role. A
// failure only costs the convenience, so it is logged and not returned.
func (a *app) remember(source, destination string) {
	var err error
	if source != "" {
		err = project.RememberSource(a.configPath, source)
	}
	if err == nil && destination != "" {
		err = project.RememberDestination(a.configPath, destination)
	}
	if err != nil {
		a.log.Warn("cannot update settings", "path", a.configPath, "error", err)
		return
	}
	if source != "" {
		a.config.LastSourcePath = source
	}
	if destination != "" {
		a.config.LastDestinationPath = destination
	}
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
