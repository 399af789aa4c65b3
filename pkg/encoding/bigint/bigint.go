/*
Package bigint converts integers to and from 256-bit big-endian two's
complement words used by the EVM ABI.
*/
package bigint

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

// WordSize is the size of a serialized integer in bytes.
const WordSize = 32

// ErrTooBig is returned for integers that don't fit into 256 bits.
var ErrTooBig = errors.New("integer doesn't fit into 256 bits")

var (
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	minInt256  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
)

// ToWord converts an integer into a 32-byte big-endian word, negative values
// are stored in two's complement form. Values below -2^255 or above 2^256-1
// can't be represented.
func ToWord(n *big.Int) ([WordSize]byte, error) {
	if n.Cmp(maxUint256) > 0 || n.Cmp(minInt256) < 0 {
		return [WordSize]byte{}, ErrTooBig
	}
	u, _ := uint256.FromBig(n)
	return u.Bytes32(), nil
}

// FromWord reads an integer stored in the last size bytes of the given
// big-endian word. Signed values are sign-extended from size*8 bits, unsigned
// values are masked to this width.
func FromWord(word []byte, size int, signed bool) *big.Int {
	if size > len(word) {
		size = len(word)
	}
	u := new(uint256.Int).SetBytes(word[len(word)-size:])
	if !signed {
		return u.ToBig()
	}
	if size < WordSize {
		u.ExtendSign(u, new(uint256.Int).SetUint64(uint64(size-1)))
	}
	if u.Sign() < 0 {
		return new(big.Int).Neg(new(uint256.Int).Neg(u).ToBig())
	}
	return u.ToBig()
}

// Bounds returns the minimum and maximum values of an integer type of the
// given width in bits.
func Bounds(bits int, signed bool) (*big.Int, *big.Int) {
	if !signed {
		hi := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		return big.NewInt(0), hi.Sub(hi, big.NewInt(1))
	}
	hi := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	lo := new(big.Int).Neg(hi)
	return lo, hi.Sub(hi, big.NewInt(1))
}
