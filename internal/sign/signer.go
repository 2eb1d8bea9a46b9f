package sign

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/openrocket/motor-database/internal/artifact"
)

const (
	// EnvPrivateKey holds the base64 PKCS#8 signing key, typically a CI secret
	EnvPrivateKey = "MOTOR_DB_PRIVATE_KEY_BASE64"
	// EnvKeyID names the signing key so clients can rotate trust anchors
	EnvKeyID = "MOTOR_DB_KEY_ID"

	messagePrefix = "openrocket-motordb-v1"
)

var (
	// ErrMissingSigningKey means signing was requested without a key configured
	ErrMissingSigningKey = errors.New("signing key not configured")
	// ErrSignatureVerification means the manifest signature does not match
	ErrSignatureVerification = errors.New("signature verification failed")
)

// Message builds the exact byte string that is signed. Clients rebuild it
// from the manifest fields, so the format is frozen.
func Message(databaseVersion int64, sha256Gz string) []byte {
	return []byte(fmt.Sprintf("%s\n%d\n%s\n", messagePrefix, databaseVersion, sha256Gz))
}

// Sign signs a database version and compressed-artifact digest, returning
// the signature base64-encoded for the manifest
func Sign(priv ed25519.PrivateKey, databaseVersion int64, sha256Gz string) string {
	sig := ed25519.Sign(priv, Message(databaseVersion, sha256Gz))
	return base64.StdEncoding.EncodeToString(sig)
}

// Verify checks a manifest signature against the public key
func Verify(pub ed25519.PublicKey, databaseVersion int64, sha256Gz, sigB64 string) error {
	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return fmt.Errorf("%w: signature is not valid base64: %v", ErrSignatureVerification, err)
	}
	if !ed25519.Verify(pub, Message(databaseVersion, sha256Gz), sig) {
		return ErrSignatureVerification
	}
	return nil
}

// SignManifest fills in a manifest's sig and key_id from the environment.
// The key comes from EnvPrivateKey; a missing key is an error because a
// build that asked for signing must not ship unsigned.
func SignManifest(m *artifact.Manifest) error {
	b64 := os.Getenv(EnvPrivateKey)
	if b64 == "" {
		return fmt.Errorf("%w: set %s", ErrMissingSigningKey, EnvPrivateKey)
	}
	priv, err := ParsePrivateKey(b64)
	if err != nil {
		return err
	}

	m.Sig = Sign(priv, m.DatabaseVersion, m.SHA256Gz)
	if keyID := os.Getenv(EnvKeyID); keyID != "" {
		m.KeyID = keyID
	}
	return nil
}

// VerifyManifest checks a manifest against the artifact it describes and
// the given public key: the compressed file must hash to sha256_gz and
// the signature must cover (database_version, sha256_gz).
func VerifyManifest(m *artifact.Manifest, gzPath, pubB64 string) error {
	sum, err := artifact.SHA256File(gzPath)
	if err != nil {
		return err
	}
	if sum != m.SHA256Gz {
		return fmt.Errorf("%w: artifact digest %s does not match manifest %s",
			ErrSignatureVerification, sum, m.SHA256Gz)
	}

	if m.Sig == "" {
		return fmt.Errorf("%w: manifest carries no signature", ErrSignatureVerification)
	}
	pub, err := ParsePublicKey(pubB64)
	if err != nil {
		return err
	}
	return Verify(pub, m.DatabaseVersion, m.SHA256Gz, m.Sig)
}
