package abi

import (
	"fmt"
	"strconv"
)

// arrayCoder handles T[N] (length >= 0) and T[] (length == -1) types.
type arrayCoder struct {
	baseCoder
	elem   coder
	length int
}

func newArrayCoder(coerce CoerceFunc, elem coder, length int, local string) *arrayCoder {
	var suffix = "[]"
	if length >= 0 {
		suffix = "[" + strconv.Itoa(length) + "]"
	}
	return &arrayCoder{
		baseCoder: baseCoder{
			coerce:    coerce,
			coderName: "array",
			coderType: elem.typ() + suffix,
			local:     local,
			isDynamic: length == -1 || elem.dynamic(),
		},
		elem:   elem,
		length: length,
	}
}

func (c *arrayCoder) encode(value any) ([]byte, error) {
	list, ok := toList(value)
	if !ok {
		return nil, &ArgumentError{
			Arg:       c.local,
			CoderType: "array",
			Value:     value,
			Reason:    "expected array value",
			Err:       ErrInvalidArray,
		}
	}
	var (
		count  = c.length
		prefix []byte
	)
	if count == -1 {
		count = len(list)
		prefix = encodeLength(count)
	}
	if count != len(list) {
		var label = "in coder array"
		if c.local != "" {
			label += " " + c.local
		}
		return nil, &ArgumentError{
			Arg:       c.local,
			CoderType: "array",
			Value:     value,
			Reason:    fmt.Sprintf("wrong number of values %s: expected %d, got %d", label, count, len(list)),
			Err:       ErrCountMismatch,
		}
	}
	var coders = make([]coder, count)
	for i := range coders {
		coders[i] = c.elem
	}
	data, err := pack(coders, list)
	if err != nil {
		return nil, err
	}
	return append(prefix, data...), nil
}

func (c *arrayCoder) decode(data []byte, offset int) (any, int, error) {
	var (
		consumed int
		count    = c.length
	)
	if count == -1 {
		if offset < 0 || len(data) < offset+WordSize {
			return nil, 0, insufficientData(c, "dynamic array length", data, offset)
		}
		n, err := decodeLength(data, offset)
		if err != nil {
			return nil, 0, argError(ErrLengthTooLarge, "array count too large", c, err.Error())
		}
		count = n
		consumed += WordSize
		offset += WordSize
	}
	// Every element takes at least one word, so the count can't exceed
	// the amount of remaining words unless the data is malformed.
	if !isNullCoder(c.elem) && (offset > len(data) || count > (len(data)-offset)/WordSize) {
		return nil, 0, argError(ErrInsufficientData, "insufficient data for array", c, count)
	}
	var coders = make([]coder, count)
	for i := range coders {
		coders[i] = newAnonymousCoder(c.elem)
	}
	res, n, err := unpack(coders, data, offset)
	if err != nil {
		return nil, 0, err
	}
	return c.coerce(c.coderType, res), consumed + n, nil
}

// anonymousCoder hides the name of the wrapped coder, array elements are
// decoded with it so that they don't get named in the result.
type anonymousCoder struct {
	coder
}

func newAnonymousCoder(c coder) *anonymousCoder {
	return &anonymousCoder{coder: c}
}

func (c *anonymousCoder) localName() string {
	return ""
}

func isNullCoder(c coder) bool {
	if a, ok := c.(*anonymousCoder); ok {
		c = a.coder
	}
	_, ok := c.(*nullCoder)
	return ok
}
