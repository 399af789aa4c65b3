package abi

import (
	"fmt"
)

// fixedBytesCoder handles bytes1..bytes32. The value is right-padded to the
// declared length and stored at the beginning of the word.
type fixedBytesCoder struct {
	baseCoder
	length int
}

func newFixedBytesCoder(coerce CoerceFunc, length int, local string) *fixedBytesCoder {
	var name = fmt.Sprintf("bytes%d", length)
	return &fixedBytesCoder{
		baseCoder: baseCoder{
			coerce:    coerce,
			coderName: name,
			coderType: name,
			local:     local,
		},
		length: length,
	}
}

func (c *fixedBytesCoder) encode(value any) ([]byte, error) {
	data, err := toBytes(value)
	if err != nil || len(data) > c.length {
		return nil, argError(ErrInvalidValue, fmt.Sprintf("invalid %s value", c.coderName), c, value)
	}
	var word = make([]byte, WordSize)
	copy(word, data)
	return word, nil
}

func (c *fixedBytesCoder) decode(data []byte, offset int) (any, int, error) {
	if offset < 0 || len(data) < offset+WordSize {
		return nil, 0, insufficientData(c, c.coderName+" type", data, offset)
	}
	var value = make([]byte, c.length)
	copy(value, data[offset:offset+c.length])
	return c.coerce(c.coderName, value), WordSize, nil
}
