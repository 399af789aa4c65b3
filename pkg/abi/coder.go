package abi

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
)

// WordSize is the size of the ABI encoding unit.
const WordSize = 32

// CoerceFunc is applied to every decoded value before it's returned to the
// caller. typ is the coder type name ("uint8", "bool", "address", "bytes4",
// "string", "bytes", "tuple", "null" or the array type like "uint8[]"). Numbers
// are given as *big.Int, booleans as bool, addresses and strings as string,
// byte values as []byte and composites as *Result.
type CoerceFunc func(typ string, value any) any

var paramTypeNumber = regexp.MustCompile(`^(u?int)([0-9]*)$`)

// DefaultCoerce renders numbers that are at most 48 bits wide as "0x"-prefixed
// hex strings (with a leading '-' for negative ones) and returns all other
// values as is. The hex rendering of narrow numbers is kept for compatibility
// with existing consumers of the decoded data.
func DefaultCoerce(typ string, value any) any {
	match := paramTypeNumber.FindStringSubmatch(typ)
	if match == nil {
		return value
	}
	n, ok := value.(*big.Int)
	if !ok {
		return value
	}
	var bits = 256
	if match[2] != "" {
		bits, _ = strconv.Atoi(match[2])
	}
	if bits > 48 {
		return value
	}
	if n.Sign() < 0 {
		return "-0x" + new(big.Int).Neg(n).Text(16)
	}
	return "0x" + n.Text(16)
}

// RawCoerce returns all values as is.
func RawCoerce(_ string, value any) any {
	return value
}

// coder is implemented by every type-specific coder. The set of
// implementations is closed: null, number, bool, fixed bytes, address,
// dynamic bytes, string, array, tuple and the anonymous wrapper.
type coder interface {
	// name is the coder type name ("uint256", "bool", "array", "tuple").
	name() string
	// typ is the full type ("uint256", "uint8[3]", "tuple(bool,string)").
	typ() string
	// localName is the parameter name, it may be empty.
	localName() string
	// dynamic is true when the encoded size depends on the value.
	dynamic() bool
	// encode returns the value encoded into a multiple of WordSize bytes.
	encode(value any) ([]byte, error)
	// decode reads the value starting at offset and returns it with the
	// number of bytes consumed.
	decode(data []byte, offset int) (any, int, error)
}

// baseCoder holds the properties common for all coders.
type baseCoder struct {
	coerce    CoerceFunc
	coderName string
	coderType string
	local     string
	isDynamic bool
}

func (c *baseCoder) name() string      { return c.coderName }
func (c *baseCoder) typ() string       { return c.coderType }
func (c *baseCoder) localName() string { return c.local }
func (c *baseCoder) dynamic() bool     { return c.isDynamic }

// insufficientData builds the error for a read past the end of data.
func insufficientData(c coder, what string, data []byte, offset int) error {
	var end = offset + WordSize
	if end > len(data) {
		end = len(data)
	}
	var rest []byte
	if offset < len(data) {
		rest = data[offset:end]
	}
	return argError(ErrInsufficientData, fmt.Sprintf("insufficient data for %s", what), c, hexString(rest))
}

func alignSize(size int) int {
	return WordSize * ((size + WordSize - 1) / WordSize)
}
