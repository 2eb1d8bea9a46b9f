package thrustcurve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	dir := t.TempDir()
	return &Cache{
		DataDir:  filepath.Join(dir, "data"),
		StateDir: filepath.Join(dir, "state"),
	}
}

func TestCacheMotorsRoundTrip(t *testing.T) {
	c := newTestCache(t)

	assert.Empty(t, c.LoadMotors())

	motors := map[string]MotorMetadata{
		"5f4294d20002310000000001": {
			MotorID:      "5f4294d20002310000000001",
			Manufacturer: "AeroTech",
			Designation:  "F32T",
			CommonName:   "F32",
		},
	}
	require.NoError(t, c.SaveMotors(motors))
	assert.Equal(t, motors, c.LoadMotors())
}

func TestCacheCorruptFileResets(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, os.MkdirAll(c.DataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(c.DataDir, "motors_metadata.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(c.DataDir, "simfile_to_motor.json"), []byte("   "), 0o644))

	assert.Empty(t, c.LoadMotors())
	assert.Empty(t, c.LoadSimfileMap())
}

func TestCacheLastSync(t *testing.T) {
	c := newTestCache(t)

	assert.Equal(t, "1970-01-01", c.LastSync())

	require.NoError(t, c.SaveLastSync("2026-08-30 12:00:00"))
	assert.Equal(t, "2026-08-30 12:00:00", c.LastSync())

	// Corrupt state falls back to a full sync
	require.NoError(t, os.WriteFile(filepath.Join(c.StateDir, "last_sync.json"), []byte("garbage"), 0o644))
	assert.Equal(t, "1970-01-01", c.LastSync())
}

func TestCacheSimfileMapRoundTrip(t *testing.T) {
	c := newTestCache(t)

	mapping := map[string]SimfileInfo{
		"5f4294d20002e90000000042": {
			MotorID: "5f4294d20002310000000001",
			Format:  "RASP",
			Source:  "cert",
			License: "PD",
		},
	}
	require.NoError(t, c.SaveSimfileMap(mapping))
	assert.Equal(t, mapping, c.LoadSimfileMap())
}

func TestSimfilePathSanitized(t *testing.T) {
	c := newTestCache(t)

	path := c.SimfilePath("R.A.T.T. Works", "H70/H", "5f4294d20002e90000000042", "RASP")
	assert.Equal(t,
		filepath.Join(c.DataDir, "RATT Works", "H70H_5f4294d20002e90000000042.rasp"),
		path)

	require.NoError(t, c.WriteSimfile(path, []byte("data")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}
