package utils

import (
	"crypto/ed25519"
	"fmt"
)

// ValidateSignature reports whether signature is a valid Ed25519 signature
// over payload under publicKey. The key length is checked first because
// ed25519.Verify panics on keys of the wrong size.
func ValidateSignature(publicKey, payload, signature []byte) (bool, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return false, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(publicKey))
	}
	ok := ed25519.Verify(publicKey, payload, signature)
	return ok, nil
}
