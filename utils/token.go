package utils

import (
	"crypto/rand"
	"math/big"
)

// 62-symbol alphabet; at 32+ characters brute force is infeasible.
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomToken returns an unguessable token of n characters.
func RandomToken(n int) string {
	if n <= 0 {
		n = 32
	}
	out := make([]byte, n)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range out {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform entropy source is
			// broken, nothing sensible to fall back to.
			panic(err)
		}
		out[i] = tokenAlphabet[v.Int64()]
	}
	return string(out)
}
