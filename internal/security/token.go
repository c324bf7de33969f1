package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// oneShotTokenSize is the raw token entropy in bytes.
const oneShotTokenSize = 32

// OneShotToken is a raw value handed to the user and the hash kept in storage.
type OneShotToken struct {
	Raw  string
	Hash string
}

// NewOneShotToken returns a random hex token paired with its SHA-256 hash.
func NewOneShotToken() (OneShotToken, error) {
	buf := make([]byte, oneShotTokenSize)
	if _, err := rand.Read(buf); err != nil {
		return OneShotToken{}, fmt.Errorf("generate token: %w", err)
	}

	raw := hex.EncodeToString(buf)
	return OneShotToken{Raw: raw, Hash: HashToken(raw)}, nil
}

// HashToken is the deterministic fingerprint stored instead of the raw token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
