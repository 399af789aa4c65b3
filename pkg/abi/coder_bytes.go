package abi

// dynamicBytesCoder handles bytes, the value is prefixed with its length.
type dynamicBytesCoder struct {
	baseCoder
}

func newDynamicBytesCoder(coerce CoerceFunc, local string) *dynamicBytesCoder {
	return &dynamicBytesCoder{baseCoder{
		coerce:    coerce,
		coderName: "bytes",
		coderType: "bytes",
		local:     local,
		isDynamic: true,
	}}
}

func (c *dynamicBytesCoder) encode(value any) ([]byte, error) {
	data, err := toBytes(value)
	if err != nil {
		return nil, argError(ErrInvalidValue, "invalid bytes value", c, value)
	}
	return encodeDynamicBytes(data), nil
}

func (c *dynamicBytesCoder) decode(data []byte, offset int) (any, int, error) {
	value, consumed, err := decodeDynamicBytes(c, data, offset)
	if err != nil {
		return nil, 0, err
	}
	return c.coerce("bytes", value), consumed, nil
}

// stringCoder handles UTF-8 strings, encoded the same way as bytes.
type stringCoder struct {
	baseCoder
	ignoreErrors bool
}

func newStringCoder(coerce CoerceFunc, ignoreErrors bool, local string) *stringCoder {
	return &stringCoder{
		baseCoder: baseCoder{
			coerce:    coerce,
			coderName: "string",
			coderType: "string",
			local:     local,
			isDynamic: true,
		},
		ignoreErrors: ignoreErrors,
	}
}

func (c *stringCoder) encode(value any) ([]byte, error) {
	s, ok := value.(string)
	if !ok {
		if b, isBytes := value.([]byte); isBytes {
			return encodeDynamicBytes(b), nil
		}
		return nil, argError(ErrInvalidValue, "invalid string value", c, value)
	}
	return encodeDynamicBytes([]byte(s)), nil
}

func (c *stringCoder) decode(data []byte, offset int) (any, int, error) {
	raw, consumed, err := decodeDynamicBytes(c, data, offset)
	if err != nil {
		return nil, 0, err
	}
	s, err := ToUTF8String(raw, c.ignoreErrors)
	if err != nil {
		return nil, 0, argError(ErrInvalidUTF8, err.Error(), c, hexString(raw))
	}
	return c.coerce("string", s), consumed, nil
}

// encodeDynamicBytes returns length || data || zero padding.
func encodeDynamicBytes(data []byte) []byte {
	var res = make([]byte, WordSize+alignSize(len(data)))
	copy(res, encodeLength(len(data)))
	copy(res[WordSize:], data)
	return res
}

func decodeDynamicBytes(c coder, data []byte, offset int) ([]byte, int, error) {
	if offset < 0 || len(data) < offset+WordSize {
		return nil, 0, insufficientData(c, "dynamicBytes length", data, offset)
	}
	length, err := decodeLength(data, offset)
	if err != nil {
		return nil, 0, argError(ErrLengthTooLarge, "dynamic bytes count too large", c, err.Error())
	}
	if len(data)-offset-WordSize < length {
		return nil, 0, argError(ErrInsufficientData, "insufficient data for dynamicBytes type", c,
			hexString(data[offset+WordSize:]))
	}
	var value = make([]byte, length)
	copy(value, data[offset+WordSize:offset+WordSize+length])
	return value, WordSize + alignSize(length), nil
}
