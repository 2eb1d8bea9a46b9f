package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openrocket/motor-database/internal/artifact"
	"github.com/openrocket/motor-database/internal/sign"
	"github.com/openrocket/motor-database/internal/util"
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign an existing artifact's manifest",
	Long: `Recompute the compressed artifact's digest, sign it with the key from
MOTOR_DB_PRIVATE_KEY_BASE64 and update the manifest in place. The key id
from MOTOR_DB_KEY_ID is recorded when set.`,
	RunE: runSign,
}

func init() {
	rootCmd.AddCommand(signCmd)
}

func runSign(cmd *cobra.Command, args []string) error {
	applyLogFlags()

	manifest, err := artifact.LoadManifest(manifestPath())
	if err != nil {
		return err
	}

	// The manifest may predate the artifact on disk; re-hash so the
	// signature always covers the actual bytes
	shaGz, err := artifact.SHA256File(gzPath())
	if err != nil {
		return err
	}
	manifest.SHA256Gz = shaGz

	if err := sign.SignManifest(manifest); err != nil {
		return fmt.Errorf("signing failed: %w", err)
	}
	if err := manifest.Write(manifestPath()); err != nil {
		return err
	}

	util.SuccessLog("Signed %s", gzPath())
	util.InfoLog("  Signature: %s", manifest.Sig)
	if manifest.KeyID != "" {
		util.InfoLog("  Key id: %s", manifest.KeyID)
	}
	return nil
}
