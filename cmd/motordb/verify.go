package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openrocket/motor-database/internal/artifact"
	"github.com/openrocket/motor-database/internal/sign"
	"github.com/openrocket/motor-database/internal/util"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the artifact against its manifest and a public key",
	Long: `Check that the compressed artifact matches the manifest's digest and
that the manifest signature verifies under the given base64 Ed25519
public key. Exits non-zero on any mismatch.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("public-key", "", "base64 SubjectPublicKeyInfo Ed25519 public key")
	viper.BindPFlag("public-key", verifyCmd.Flags().Lookup("public-key"))
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	applyLogFlags()

	pubB64 := viper.GetString("public-key")
	if pubB64 == "" {
		return fmt.Errorf("a public key is required (use --public-key or set MOTORDB_PUBLIC_KEY)")
	}

	manifest, err := artifact.LoadManifest(manifestPath())
	if err != nil {
		return err
	}

	if err := sign.VerifyManifest(manifest, gzPath(), pubB64); err != nil {
		return err
	}

	util.SuccessLog("Verified %s", gzPath())
	util.InfoLog("  Database version: %d", manifest.DatabaseVersion)
	util.InfoLog("  Motors: %d, curves: %d", manifest.MotorCount, manifest.CurveCount)
	return nil
}
