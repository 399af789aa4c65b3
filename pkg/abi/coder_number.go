package abi

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/evm-abi/pkg/encoding/bigint"
)

// numberCoder handles intN and uintN types.
type numberCoder struct {
	baseCoder
	size   int
	signed bool
}

func newNumberCoder(coerce CoerceFunc, size int, signed bool, local string) *numberCoder {
	var name = fmt.Sprintf("uint%d", size*8)
	if signed {
		name = name[1:]
	}
	return &numberCoder{
		baseCoder: baseCoder{
			coerce:    coerce,
			coderName: name,
			coderType: name,
			local:     local,
		},
		size:   size,
		signed: signed,
	}
}

func (c *numberCoder) encode(value any) ([]byte, error) {
	n, err := toBigInt(value)
	if err != nil {
		return nil, argError(ErrInvalidValue, fmt.Sprintf("invalid %s value", c.coderName), c, value)
	}
	lo, hi := bigint.Bounds(c.size*8, c.signed)
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return nil, argError(ErrOutOfBounds, "value out-of-bounds", c, value)
	}
	word, err := bigint.ToWord(n)
	if err != nil {
		return nil, argError(ErrOutOfBounds, "value out-of-bounds", c, value)
	}
	return word[:], nil
}

// decodeBig reads the raw integer without applying the coercion.
func (c *numberCoder) decodeBig(data []byte, offset int) (*big.Int, error) {
	if offset < 0 || len(data) < offset+WordSize {
		return nil, insufficientData(c, c.coderName+" type", data, offset)
	}
	return bigint.FromWord(data[offset:offset+WordSize], c.size, c.signed), nil
}

func (c *numberCoder) decode(data []byte, offset int) (any, int, error) {
	n, err := c.decodeBig(data, offset)
	if err != nil {
		return nil, 0, err
	}
	return c.coerce(c.coderName, n), WordSize, nil
}

// uint256Coder is used for length and offset words.
var uint256Coder = newNumberCoder(RawCoerce, WordSize, false, "")

// encodeLength returns the word encoding of a non-negative length.
func encodeLength(n int) []byte {
	word, _ := bigint.ToWord(big.NewInt(int64(n)))
	return word[:]
}

// decodeLength reads a length or offset word and checks that it fits an int.
func decodeLength(data []byte, offset int) (int, error) {
	n, err := uint256Coder.decodeBig(data, offset)
	if err != nil {
		return 0, err
	}
	if !n.IsInt64() || n.Int64() > int64(maxInt) {
		return 0, fmt.Errorf("%w: %s", ErrLengthTooLarge, n)
	}
	return int(n.Int64()), nil
}

const maxInt = int(^uint(0) >> 1)
