package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openrocket/motor-database/internal/sign"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an Ed25519 signing keypair",
	Long: `Generate a fresh Ed25519 keypair for artifact signing.

The private key is printed base64-encoded (PKCS#8 DER) for storing as a
CI secret; the public key (SubjectPublicKeyInfo DER) is what update
clients embed to verify manifests.`,
	RunE: runKeygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}

func runKeygen(cmd *cobra.Command, args []string) error {
	privB64, pubB64, err := sign.GenerateKeypair()
	if err != nil {
		return err
	}

	fmt.Printf("Private key (store as %s secret):\n%s\n\n", sign.EnvPrivateKey, privB64)
	fmt.Printf("Public key (embed in update clients):\n%s\n", pubB64)
	return nil
}
