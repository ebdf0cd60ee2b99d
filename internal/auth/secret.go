package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SessionSecretKey is the settings key of the per-database signing secret.
const SessionSecretKey = "session_secret"

// SecretStore is the slice of the settings store the secret lookup needs.
type SecretStore interface {
	GetOrInit(ctx context.Context, key string, create func() (string, error)) (string, error)
}

// NewSecret returns 32 random bytes, hex encoded.
func NewSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// StoredSecret returns the signing secret kept with the database, creating a
// random one on first use.
func StoredSecret(ctx context.Context, settings SecretStore) (string, error) {
	secret, err := settings.GetOrInit(ctx, SessionSecretKey, NewSecret)
	if err != nil {
		return "", fmt.Errorf("load session secret: %w", err)
	}
	return secret, nil
}
