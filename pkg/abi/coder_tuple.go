package abi

import (
	"strings"
)

type tupleCoder struct {
	baseCoder
	coders []coder
}

func newTupleCoder(coerce CoerceFunc, coders []coder, local string) *tupleCoder {
	var (
		dynamic bool
		types   = make([]string, len(coders))
	)
	for i, c := range coders {
		if c.dynamic() {
			dynamic = true
		}
		types[i] = c.typ()
	}
	return &tupleCoder{
		baseCoder: baseCoder{
			coerce:    coerce,
			coderName: "tuple",
			coderType: "tuple(" + strings.Join(types, ",") + ")",
			local:     local,
			isDynamic: dynamic,
		},
		coders: coders,
	}
}

func (c *tupleCoder) encode(value any) ([]byte, error) {
	return pack(c.coders, value)
}

func (c *tupleCoder) decode(data []byte, offset int) (any, int, error) {
	res, consumed, err := unpack(c.coders, data, offset)
	if err != nil {
		return nil, 0, err
	}
	return c.coerce("tuple", res), consumed, nil
}
