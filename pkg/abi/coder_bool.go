package abi

import (
	"errors"
	"fmt"
)

type boolCoder struct {
	baseCoder
}

func newBoolCoder(coerce CoerceFunc, local string) *boolCoder {
	return &boolCoder{baseCoder{
		coerce:    coerce,
		coderName: "bool",
		coderType: "bool",
		local:     local,
	}}
}

func (c *boolCoder) encode(value any) ([]byte, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, argError(ErrInvalidValue, "invalid bool value", c, value)
	}
	if b {
		return uint256Coder.encode(1)
	}
	return uint256Coder.encode(0)
}

func (c *boolCoder) decode(data []byte, offset int) (any, int, error) {
	n, err := uint256Coder.decodeBig(data, offset)
	if err != nil {
		if errors.Is(err, ErrInsufficientData) {
			return nil, 0, insufficientData(c, "boolean type", data, offset)
		}
		return nil, 0, fmt.Errorf("bool: %w", err)
	}
	return c.coerce("bool", n.Sign() != 0), WordSize, nil
}
