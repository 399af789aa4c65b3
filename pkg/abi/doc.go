/*
Package abi implements the Ethereum contract ABI encoding used by EVM-compatible
chains.

Types are described either with strings ("uint256", "address[]",
"tuple(uint8 a, string b)[2]") or with ParamType trees that are usually taken
from JSON ABI descriptions. Human-readable function and event signatures are
parsed into Fragments:

	f, err := abi.ParseSignature("function transfer(address to, uint256 amount) returns (bool)")

Values are encoded with a Coder into the head/tail layout where static values
are stored in place and dynamic ones (strings, bytes, dynamic arrays and
composites containing them) are referenced by offsets:

	data, err := abi.DefaultCoder.Encode([]string{"uint256", "string"}, []any{100, "hi"})

Decoding returns a Result that exposes values both by position and by
parameter name. Numbers are returned as *big.Int except for the ones that are
48 bits wide or less which are rendered as hex strings by DefaultCoerce, use
RawCoerce in Options to get *big.Int for all of them.
*/
package abi
