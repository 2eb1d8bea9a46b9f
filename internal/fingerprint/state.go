package fingerprint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openrocket/motor-database/internal/util"
)

// State records the last completed build. The next build compares its
// input hash against this to decide whether anything needs to run.
type State struct {
	InputHash   string `json:"input_hash"`
	MotorCount  int    `json:"motor_count"`
	CurveCount  int    `json:"curve_count"`
	GeneratedAt string `json:"generated_at"`
}

// LoadState reads the build state file. A missing or corrupt file means
// no previous build; the caller then runs unconditionally.
func LoadState(path string) *State {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		util.WarnLog("Build state corrupted, forcing a full build: %v", err)
		return nil
	}
	if state.InputHash == "" {
		return nil
	}
	return &state
}

// SaveState writes the build state file. Only called after a changed
// build completes, so an aborted run leaves the previous state in place.
func SaveState(path string, state *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save build state: %w", err)
	}
	return nil
}
