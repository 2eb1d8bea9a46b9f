// Package fingerprint decides whether a build can be skipped: it hashes
// the complete input set so an unchanged data dir maps to the same hash
// regardless of file order or timestamps.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// InputFile is one thrust-curve file that participates in a build
type InputFile struct {
	Rel  string // slash-separated path relative to the data dir, the input's id
	Path string // absolute path for reading
}

// curveExtensions are the file types the parser understands
var curveExtensions = map[string]bool{
	".eng":  true,
	".rasp": true,
	".rse":  true,
}

// Collect walks the data dir and returns all thrust-curve files sorted by
// relative path. The sort fixes both the fingerprint serialization and
// the merge order.
func Collect(dataDir string) ([]InputFile, error) {
	var inputs []InputFile
	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !curveExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return err
		}
		inputs = append(inputs, InputFile{Rel: filepath.ToSlash(rel), Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect inputs from %s: %w", dataDir, err)
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Rel < inputs[j].Rel })
	return inputs, nil
}

// Compute hashes the input set. The serialization is length-prefixed so
// no combination of file names and contents can collide with another:
// a version line, the schema version, then per file its id, size and bytes.
func Compute(inputs []InputFile, schemaVersion int) (string, error) {
	h := sha256.New()
	fmt.Fprintf(h, "motordb-fingerprint-v1\nschema %d\n", schemaVersion)

	for _, in := range inputs {
		f, err := os.Open(in.Path)
		if err != nil {
			return "", fmt.Errorf("failed to open input %s: %w", in.Rel, err)
		}
		st, err := f.Stat()
		if err != nil {
			f.Close()
			return "", err
		}
		fmt.Fprintf(h, "%d %s\n%d\n", len(in.Rel), in.Rel, st.Size())
		if _, err := io.Copy(h, f); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to hash input %s: %w", in.Rel, err)
		}
		f.Close()
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
