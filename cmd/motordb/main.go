package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openrocket/motor-database/internal/util"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "motordb",
		Short: "Build the OpenRocket motor database from thrustcurve.org data",
		Long: `motordb maintains the OpenRocket motor database: it syncs thrust-curve
files and motor metadata from thrustcurve.org, normalizes them into a
relational SQLite database, and ships the result as a signed, compressed
artifact with a JSON manifest for update clients.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/motordb.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "data/thrustcurve.org", "thrust-curve data directory")
	rootCmd.PersistentFlags().String("out-dir", "artifacts", "build output directory")
	rootCmd.PersistentFlags().String("state-dir", "state", "sync and build state directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("out-dir", rootCmd.PersistentFlags().Lookup("out-dir"))
	viper.BindPFlag("state-dir", rootCmd.PersistentFlags().Lookup("state-dir"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in common locations
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("motordb")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match. Dashed keys like
	// data-dir map to MOTORDB_DATA_DIR.
	viper.SetEnvPrefix("MOTORDB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
