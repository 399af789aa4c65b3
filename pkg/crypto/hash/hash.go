/*
Package hash contains the Keccak-256 hash used for EVM signatures, topics and
address checksums.
*/
package hash

import (
	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes the incoming byte slices using the legacy Keccak-256
// algorithm (the one used by Ethereum, not the final SHA3-256).
func Keccak256(data ...[]byte) [32]byte {
	var (
		res    [32]byte
		hasher = sha3.NewLegacyKeccak256()
	)
	for _, b := range data {
		_, _ = hasher.Write(b)
	}
	hasher.Sum(res[:0])
	return res
}

// Keccak256String is a convenience wrapper for hashing strings.
func Keccak256String(s string) [32]byte {
	return Keccak256([]byte(s))
}
