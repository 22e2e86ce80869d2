package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const shortCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// generateShortCode draws length characters uniformly at random from the
// alphanumeric alphabet. Collisions are handled by the caller retrying on the
// uniqueness constraint, not here.
func generateShortCode(length int) (string, error) {
	alphabetSize := big.NewInt(int64(len(shortCodeAlphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		code[i] = shortCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
