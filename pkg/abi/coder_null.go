package abi

// nullCoder encodes nothing, it's used for empty types like the missing
// return value of a constructor.
type nullCoder struct {
	baseCoder
}

func newNullCoder(coerce CoerceFunc, local string) *nullCoder {
	return &nullCoder{baseCoder{
		coerce:    coerce,
		coderName: "null",
		local:     local,
	}}
}

func (c *nullCoder) encode(_ any) ([]byte, error) {
	return []byte{}, nil
}

func (c *nullCoder) decode(_ []byte, _ int) (any, int, error) {
	return c.coerce("null", nil), 0, nil
}
