package thrustcurve

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openrocket/motor-database/internal/util"
)

// Cache is the on-disk layout shared by the fetcher and the builder:
// metadata JSON files under the data dir and downloaded simfiles in
// per-manufacturer subdirectories.
type Cache struct {
	DataDir  string
	StateDir string
}

// epoch is the sync stamp that forces a full download
const epoch = "1970-01-01"

func (c *Cache) motorsPath() string        { return filepath.Join(c.DataDir, "motors_metadata.json") }
func (c *Cache) manufacturersPath() string { return filepath.Join(c.DataDir, "manufacturers.json") }
func (c *Cache) simfileMapPath() string    { return filepath.Join(c.DataDir, "simfile_to_motor.json") }
func (c *Cache) syncStatePath() string     { return filepath.Join(c.StateDir, "last_sync.json") }

// loadJSON reads a cache file into out. A missing, empty or corrupt file
// is not an error; the caller starts fresh with a warning.
func loadJSON(path, what string, out any) bool {
	data, err := os.ReadFile(path)
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		util.WarnLog("%s cache corrupted, starting fresh: %v", what, err)
		return false
	}
	return true
}

func saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadMotors returns the cached motor metadata keyed by upstream motor id
func (c *Cache) LoadMotors() map[string]MotorMetadata {
	var wrapper struct {
		Motors map[string]MotorMetadata `json:"motors"`
	}
	if !loadJSON(c.motorsPath(), "motor metadata", &wrapper) || wrapper.Motors == nil {
		return map[string]MotorMetadata{}
	}
	return wrapper.Motors
}

// SaveMotors writes the motor metadata cache
func (c *Cache) SaveMotors(motors map[string]MotorMetadata) error {
	wrapper := struct {
		Motors map[string]MotorMetadata `json:"motors"`
	}{Motors: motors}
	if err := saveJSON(c.motorsPath(), wrapper); err != nil {
		return fmt.Errorf("failed to save motor metadata: %w", err)
	}
	return nil
}

// LoadManufacturers returns the cached canonical manufacturer list
func (c *Cache) LoadManufacturers() []Manufacturer {
	var wrapper struct {
		Manufacturers []Manufacturer `json:"manufacturers"`
	}
	loadJSON(c.manufacturersPath(), "manufacturer list", &wrapper)
	return wrapper.Manufacturers
}

// SaveManufacturers writes the manufacturer list cache
func (c *Cache) SaveManufacturers(manufacturers []Manufacturer) error {
	wrapper := struct {
		Manufacturers []Manufacturer `json:"manufacturers"`
	}{Manufacturers: manufacturers}
	if err := saveJSON(c.manufacturersPath(), wrapper); err != nil {
		return fmt.Errorf("failed to save manufacturers: %w", err)
	}
	return nil
}

// LoadSimfileMap returns the cached simfile id to motor mapping
func (c *Cache) LoadSimfileMap() map[string]SimfileInfo {
	m := map[string]SimfileInfo{}
	loadJSON(c.simfileMapPath(), "simfile mapping", &m)
	return m
}

// SaveSimfileMap writes the simfile mapping cache
func (c *Cache) SaveSimfileMap(mapping map[string]SimfileInfo) error {
	if err := saveJSON(c.simfileMapPath(), mapping); err != nil {
		return fmt.Errorf("failed to save simfile mapping: %w", err)
	}
	return nil
}

// LastSync returns the timestamp of the last completed sync, or the epoch
// when no valid sync state exists
func (c *Cache) LastSync() string {
	var state struct {
		LastUpdated string `json:"last_updated"`
	}
	if !loadJSON(c.syncStatePath(), "sync state", &state) || state.LastUpdated == "" {
		return epoch
	}
	return state.LastUpdated
}

// SaveLastSync records the completion time of a sync
func (c *Cache) SaveLastSync(stamp string) error {
	state := struct {
		LastUpdated string `json:"last_updated"`
	}{LastUpdated: stamp}
	if err := saveJSON(c.syncStatePath(), state); err != nil {
		return fmt.Errorf("failed to save sync state: %w", err)
	}
	return nil
}

// SimfilePath returns where a downloaded simfile lands:
// <data>/<manufacturer>/<motor>_<simfileId>.<ext>
func (c *Cache) SimfilePath(manufacturer, motorName, simfileID, format string) string {
	ext := strings.ToLower(format)
	name := fmt.Sprintf("%s_%s.%s", sanitizeFilename(motorName), simfileID, ext)
	return filepath.Join(c.DataDir, sanitizeFilename(manufacturer), name)
}

// WriteSimfile saves a decoded simfile payload, creating the manufacturer
// directory as needed
func (c *Cache) WriteSimfile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// sanitizeFilename keeps letters, digits, spaces, dashes and underscores
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
