package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewConfirmationToken generates a cryptographically random 64-character hex
// token. Token generation is the only cryptographic responsibility this
// service carries; verification treats tokens as opaque strings.
func NewConfirmationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate confirmation token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
