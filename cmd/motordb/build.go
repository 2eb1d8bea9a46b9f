package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openrocket/motor-database/internal/pipeline"
	"github.com/openrocket/motor-database/internal/util"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the motor database artifact from the local data directory",
	Long: `Parse all cached thrust-curve files, merge them into the relational
database and assemble the compressed artifact plus manifest.

The build fingerprints its inputs first: if nothing changed since the
last completed build, it exits without touching the outputs. Use --force
to rebuild anyway. With --sign the manifest is signed; this requires the
MOTOR_DB_PRIVATE_KEY_BASE64 environment variable.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Bool("force", false, "rebuild even when inputs are unchanged")
	buildCmd.Flags().Bool("sign", false, "sign the manifest after assembly")
	buildCmd.Flags().String("download-url", "", "artifact download URL published in the manifest")
	viper.BindPFlag("force", buildCmd.Flags().Lookup("force"))
	viper.BindPFlag("sign", buildCmd.Flags().Lookup("sign"))
	viper.BindPFlag("download-url", buildCmd.Flags().Lookup("download-url"))
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	applyLogFlags()

	if _, err := os.Stat(dataDir()); os.IsNotExist(err) {
		return fmt.Errorf("data directory does not exist: %s (run fetch first)", dataDir())
	}

	cfg := pipeline.Config{
		DataDir:     dataDir(),
		OutDir:      outDir(),
		StateFile:   buildStatePath(),
		LockFile:    filepath.Join(stateDir(), "build.lock"),
		DownloadURL: viper.GetString("download-url"),
		Force:       viper.GetBool("force"),
		Sign:        viper.GetBool("sign"),
	}

	start := time.Now()
	result, err := pipeline.NewBuilder(cfg, nil).Run()
	if err != nil {
		return err
	}

	if result.Skipped {
		util.InfoLog("Previous build: %d motors, %d curves (%s)",
			result.State.MotorCount, result.State.CurveCount, result.State.GeneratedAt)
		return nil
	}

	if !util.IsQuiet() {
		result.Report.Render(os.Stdout, gzPath())
	}
	util.SuccessLog("Built in %v", time.Since(start).Round(time.Millisecond))
	util.InfoLog("  Artifact: %s", gzPath())
	util.InfoLog("  Manifest: %s", manifestPath())
	return nil
}
