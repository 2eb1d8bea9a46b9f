package artifact

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest is the JSON document clients poll to discover a new database
// release. DatabaseVersion is a YYYYMMDDHHMMSS integer so clients compare
// versions numerically.
type Manifest struct {
	SchemaVersion   int    `json:"schema_version"`
	DatabaseVersion int64  `json:"database_version"`
	GeneratedAt     string `json:"generated_at"`
	MotorCount      int    `json:"motor_count"`
	CurveCount      int    `json:"curve_count"`
	SHA256          string `json:"sha256"`
	SHA256Gz        string `json:"sha256_gz"`
	Sig             string `json:"sig,omitempty"`
	KeyID           string `json:"key_id,omitempty"`
	DownloadURL     string `json:"download_url,omitempty"`
}

// LoadManifest reads a manifest file
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// WriteManifest writes a manifest file with stable formatting
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
