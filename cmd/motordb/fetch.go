package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openrocket/motor-database/internal/thrustcurve"
	"github.com/openrocket/motor-database/internal/util"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Sync motor metadata and thrust-curve files from thrustcurve.org",
	Long: `Fetch motor metadata and simfiles from the thrustcurve.org API into the
local data directory.

The sync is incremental: only motors updated since the last completed
fetch are re-downloaded. Corrupt or missing cache files fall back to a
full sync.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("api-url", "", "override the API base URL (for testing)")
	fetchCmd.Flags().String("format", "RASP", "simfile format to download (RASP or RockSim)")
	viper.BindPFlag("api-url", fetchCmd.Flags().Lookup("api-url"))
	viper.BindPFlag("format", fetchCmd.Flags().Lookup("format"))
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	applyLogFlags()

	cache := &thrustcurve.Cache{
		DataDir:  dataDir(),
		StateDir: stateDir(),
	}
	client := thrustcurve.NewClient(viper.GetString("api-url"))
	syncer := thrustcurve.NewSyncer(client, cache, nil)
	syncer.Format = GetConfigString("format", "RASP")

	util.InfoLog("Data directory: %s", dataDir())
	start := time.Now()

	result, err := syncer.Sync(context.Background())
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	util.InfoLog("Fetched in %v", time.Since(start).Round(time.Millisecond))
	util.InfoLog("  Manufacturers: %d", result.ManufacturersSeen)
	util.InfoLog("  Motors updated: %d", result.MotorsUpdated)
	util.InfoLog("  Files downloaded: %d", result.FilesDownloaded)
	return nil
}
