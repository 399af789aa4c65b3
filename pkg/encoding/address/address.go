/*
Package address implements EVM account addresses with EIP-55 mixed-case
checksum encoding.
*/
package address

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/evm-abi/pkg/crypto/hash"
)

// Length is the size of an address in bytes.
const Length = 20

// Various address errors.
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrBadChecksum    = errors.New("bad address checksum")
)

// Address is a 20-byte EVM account address.
type Address [Length]byte

// String returns the EIP-55 checksummed representation of the address.
func (a Address) String() string {
	return Checksum(a)
}

// Checksum returns the "0x"-prefixed EIP-55 encoding of the address: hex
// letters are upper-cased when the corresponding nibble of the Keccak-256
// hash of the lowercase hex address is 8 or more.
func Checksum(a Address) string {
	var (
		lower = []byte(hex.EncodeToString(a[:]))
		h     = hash.Keccak256(lower)
	)
	for i, c := range lower {
		if c < 'a' {
			continue
		}
		nibble := h[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			lower[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(lower)
}

// FromString parses a hex-encoded address with an optional "0x" prefix.
// Mixed-case strings must have a valid EIP-55 checksum, all-lowercase and
// all-uppercase strings are accepted as is.
func FromString(s string) (Address, error) {
	var a Address

	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(raw) != 2*Length {
		return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	copy(a[:], b)
	if strings.ToLower(raw) != raw && strings.ToUpper(raw) != raw {
		if Checksum(a)[2:] != raw {
			return a, fmt.Errorf("%w: %q", ErrBadChecksum, s)
		}
	}
	return a, nil
}

// FromBytes converts a 20-byte slice into an address.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Length {
		return a, fmt.Errorf("%w: length %d", ErrInvalidAddress, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// Normalize returns the checksummed form of the given address string.
func Normalize(s string) (string, error) {
	a, err := FromString(s)
	if err != nil {
		return "", err
	}
	return Checksum(a), nil
}

// IsValid checks whether the given string is a valid address.
func IsValid(s string) bool {
	_, err := FromString(s)
	return err == nil
}
