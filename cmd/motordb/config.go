package main

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/openrocket/motor-database/internal/util"
)

// applyLogFlags sets the logger level from the global flags
func applyLogFlags() {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))
}

// GetConfigString retrieves a string config value with proper precedence:
// 1. Command-line flag (if set)
// 2. Environment variable (MOTORDB_*)
// 3. Config file
// 4. Default value
func GetConfigString(key string, defaultValue string) string {
	val := viper.GetString(key)
	if val == "" {
		return defaultValue
	}
	return val
}

func dataDir() string  { return viper.GetString("data-dir") }
func outDir() string   { return viper.GetString("out-dir") }
func stateDir() string { return viper.GetString("state-dir") }

func dbPath() string         { return filepath.Join(outDir(), "motors.db") }
func gzPath() string         { return filepath.Join(outDir(), "motors.db.gz") }
func manifestPath() string   { return filepath.Join(outDir(), "manifest.json") }
func buildStatePath() string { return filepath.Join(stateDir(), "build.json") }
