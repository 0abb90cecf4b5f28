package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateAuthCode returns a zero-padded numeric one-time login code of the
// given length.
func GenerateAuthCode(length int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
