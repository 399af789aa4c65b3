package abi

import (
	"github.com/nspcc-dev/evm-abi/pkg/encoding/address"
)

// addressCoder stores a 20-byte address in the low bytes of the word.
type addressCoder struct {
	baseCoder
}

func newAddressCoder(coerce CoerceFunc, local string) *addressCoder {
	return &addressCoder{baseCoder{
		coerce:    coerce,
		coderName: "address",
		coderType: "address",
		local:     local,
	}}
}

func toAddress(value any) (address.Address, error) {
	switch v := value.(type) {
	case address.Address:
		return v, nil
	case *address.Address:
		if v != nil {
			return *v, nil
		}
	case string:
		return address.FromString(v)
	case []byte:
		return address.FromBytes(v)
	case [address.Length]byte:
		return v, nil
	}
	return address.Address{}, address.ErrInvalidAddress
}

func (c *addressCoder) encode(value any) ([]byte, error) {
	a, err := toAddress(value)
	if err != nil {
		return nil, argError(ErrInvalidValue, "invalid address", c, value)
	}
	var word = make([]byte, WordSize)
	copy(word[WordSize-address.Length:], a[:])
	return word, nil
}

func (c *addressCoder) decode(data []byte, offset int) (any, int, error) {
	if offset < 0 || len(data) < offset+WordSize {
		return nil, 0, insufficientData(c, "address type", data, offset)
	}
	var a address.Address
	copy(a[:], data[offset+WordSize-address.Length:offset+WordSize])
	return c.coerce("address", address.Checksum(a)), WordSize, nil
}
