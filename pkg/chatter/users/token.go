package users

import (
	"crypto/rand"
	"encoding/hex"
)

// TokenLength is the number of random bytes in a bearer token (16 bytes = 32 hex chars)
const TokenLength = 16

// GenerateToken returns a new random bearer token.
func GenerateToken() (string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
