package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/SibGlass/internal/model"
)

const autosaveVersion = "1.0.0"

// State is the autosave snapshot of the form: picked files, requisites and
// the material selection. It is written before a generation pass and
// cleared once the request has been saved.
type State struct {
	Version   string `json:"version"`
	CreatedAt string `json:"created_at"`

	SourcePath      string `json:"alupro"`
	DestinationPath string `json:"sibglass"`
	Customer        string `json:"customer"`
	Address         string `json:"address"`
	model.Selection
}

// SaveAutosave writes state to path, stamping version and time.
func SaveAutosave(path string, state State) error {
	state.Version = autosaveVersion
	state.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := writeJSON(path, state); err != nil {
		return fmt.Errorf("failed to write autosave file: %w", err)
	}
	return nil
}

// LoadAutosave reads the snapshot at path. A missing or unreadable snapshot
// is reported as absent, never as an error; only I/O failures other than a
// missing file are returned.
func LoadAutosave(path string) (State, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("failed to read autosave file: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil || state.Version == "" {
		return State{}, false, nil
	}
	return state, true, nil
}

// ClearAutosave removes the snapshot. A missing file is not an error.
func ClearAutosave(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove autosave file: %w", err)
	}
	return nil
}
