package abi

import (
	"fmt"
)

// Options are the settings of Coder.
type Options struct {
	// Coerce is applied to every decoded value, DefaultCoerce is used if
	// it's nil.
	Coerce CoerceFunc
	// MaxDepth limits the nesting of types, DefaultMaxDepth is used if it's
	// not positive.
	MaxDepth int
	// IgnoreUTF8Errors makes string decoding skip malformed sequences
	// instead of failing.
	IgnoreUTF8Errors bool
}

// Coder encodes and decodes lists of values according to the Solidity
// contract ABI. It holds no state except for its options and can be used
// concurrently.
type Coder struct {
	opts coderOptions
}

// NewCoder returns a new Coder with the given options.
func NewCoder(o Options) *Coder {
	var opts = coderOptions{
		coerce:           o.Coerce,
		maxDepth:         o.MaxDepth,
		ignoreUTF8Errors: o.IgnoreUTF8Errors,
	}
	if opts.coerce == nil {
		opts.coerce = DefaultCoerce
	}
	if opts.maxDepth <= 0 {
		opts.maxDepth = DefaultMaxDepth
	}
	return &Coder{opts: opts}
}

// DefaultCoder is a Coder with default options.
var DefaultCoder = NewCoder(Options{})

// ParseParamType parses the type string using the coder's depth limit.
func (c *Coder) ParseParamType(s string) (ParamType, error) {
	return parseParam(s, true, c.opts.maxDepth)
}

// ParseSignature parses the signature using the coder's depth limit.
func (c *Coder) ParseSignature(s string) (Fragment, error) {
	return parseSignature(s, c.opts.maxDepth)
}

func (c *Coder) parseTypes(types []string) ([]ParamType, error) {
	var params = make([]ParamType, len(types))
	for i, t := range types {
		p, err := c.ParseParamType(t)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}
	return params, nil
}

func (c *Coder) tupleCoder(types []ParamType) (*tupleCoder, error) {
	var coders = make([]coder, len(types))
	for i := range types {
		cd, err := getParamCoder(c.opts, types[i])
		if err != nil {
			return nil, err
		}
		coders[i] = cd
	}
	return newTupleCoder(c.opts.coerce, coders, "_"), nil
}

// Validate checks that all types (including nested ones) are supported.
func (c *Coder) Validate(types []ParamType) error {
	_, err := c.tupleCoder(types)
	return err
}

// Encode encodes values according to the given type strings and returns the
// "0x"-prefixed hex result.
func (c *Coder) Encode(types []string, values []any) (string, error) {
	if len(types) != len(values) {
		return "", countMismatch(len(types), len(values))
	}
	params, err := c.parseTypes(types)
	if err != nil {
		return "", err
	}
	return c.EncodeParams(params, values)
}

// EncodeParams encodes values according to the given parameter types and
// returns the "0x"-prefixed hex result.
func (c *Coder) EncodeParams(types []ParamType, values []any) (string, error) {
	data, err := c.Pack(types, values)
	if err != nil {
		return "", err
	}
	return hexString(data), nil
}

// Pack is the same as EncodeParams, but returns raw bytes.
func (c *Coder) Pack(types []ParamType, values []any) ([]byte, error) {
	if len(types) != len(values) {
		return nil, countMismatch(len(types), len(values))
	}
	tc, err := c.tupleCoder(types)
	if err != nil {
		return nil, err
	}
	return tc.encode(values)
}

// Decode decodes data according to the given type strings.
func (c *Coder) Decode(types []string, data []byte) (*Result, error) {
	params, err := c.parseTypes(types)
	if err != nil {
		return nil, err
	}
	return c.DecodeParams(params, data)
}

// DecodeParams decodes data according to the given parameter types. The
// types are copied, so the caller keeps ownership of them.
func (c *Coder) DecodeParams(types []ParamType, data []byte) (*Result, error) {
	var params = make([]ParamType, len(types))
	for i := range types {
		params[i] = types[i].Copy()
	}
	tc, err := c.tupleCoder(params)
	if err != nil {
		return nil, err
	}
	// The top-level tuple is not coerced, so the result is always a Result.
	res, _, err := unpack(tc.coders, data, 0)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func countMismatch(types, values int) error {
	return &ArgumentError{
		CoderType: "tuple",
		Value:     fmt.Sprintf("%d types, %d values", types, values),
		Reason:    "types/values length mismatch",
		Err:       ErrCountMismatch,
	}
}
