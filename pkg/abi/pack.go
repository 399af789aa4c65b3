package abi

import (
	"fmt"
)

type packedPart struct {
	data    []byte
	dynamic bool
}

// pack encodes values with the given coders using the head/tail layout:
// static values are written in place, dynamic ones are replaced by offsets
// (from the start of the packed data) to their encodings that follow the
// static part in declaration order.
func pack(coders []coder, values any) ([]byte, error) {
	list, ok := toList(values)
	if !ok {
		keyed, isMap := values.(map[string]any)
		if !isMap {
			return nil, &ArgumentError{
				CoderType: "tuple",
				Value:     values,
				Reason:    "invalid tuple value",
				Err:       ErrInvalidTuple,
			}
		}
		list = make([]any, len(coders))
		for i, c := range coders {
			list[i] = keyed[c.localName()]
		}
	}
	if len(coders) != len(list) {
		return nil, &ArgumentError{
			CoderType: "tuple",
			Value:     values,
			Reason:    fmt.Sprintf("types/value length mismatch: %d types, %d values", len(coders), len(list)),
			Err:       ErrCountMismatch,
		}
	}

	var (
		parts       = make([]packedPart, len(coders))
		staticSize  int
		dynamicSize int
	)
	for i, c := range coders {
		data, err := c.encode(list[i])
		if err != nil {
			return nil, err
		}
		parts[i] = packedPart{data: data, dynamic: c.dynamic()}
		if parts[i].dynamic {
			staticSize += WordSize
			dynamicSize += alignSize(len(data))
		} else {
			staticSize += alignSize(len(data))
		}
	}

	var (
		res           = make([]byte, staticSize+dynamicSize)
		offset        int
		dynamicOffset = staticSize
	)
	for _, part := range parts {
		if part.dynamic {
			copy(res[offset:], encodeLength(dynamicOffset))
			offset += WordSize
			copy(res[dynamicOffset:], part.data)
			dynamicOffset += alignSize(len(part.data))
		} else {
			copy(res[offset:], part.data)
			offset += alignSize(len(part.data))
		}
	}
	return res, nil
}

// unpack decodes values laid out by pack starting at offset. Dynamic values
// are read at the offset stored in their head word (relative to the start
// of the packed data), only the head word counts as consumed for them.
func unpack(coders []coder, data []byte, offset int) (*Result, int, error) {
	var (
		baseOffset = offset
		consumed   int
		values     = make([]any, 0, len(coders))
		positions  = make([]int, len(coders))
	)
	for i, c := range coders {
		var (
			value any
			n     int
			err   error
		)
		if c.dynamic() {
			var dynamicOffset int
			dynamicOffset, err = decodeLength(data, offset)
			if err != nil {
				return nil, 0, err
			}
			if dynamicOffset > len(data)-baseOffset {
				return nil, 0, argError(ErrInsufficientData,
					fmt.Sprintf("offset %d is out of data bounds (len=%d)", dynamicOffset, len(data)), c, dynamicOffset)
			}
			value, _, err = c.decode(data, baseOffset+dynamicOffset)
			n = WordSize
		} else {
			value, n, err = c.decode(data, offset)
		}
		if err != nil {
			return nil, 0, err
		}
		positions[i] = -1
		if !isNullCoder(c) || value != nil {
			positions[i] = len(values)
			values = append(values, value)
		}
		offset += n
		consumed += n
	}

	var res = newResult(values)
	for i, c := range coders {
		if positions[i] >= 0 {
			res.name(c.localName(), positions[i])
		}
	}
	return res, consumed, nil
}
