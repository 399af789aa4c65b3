package abi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResult(t *testing.T) {
	r := NewResult([]any{1, 2, 3, 4}, []string{"a", "", "length", "a"})
	require.Equal(t, 4, r.Len())
	require.Equal(t, []string{"a", "_length"}, r.Names())

	v, ok := r.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, "_length", r.NameOf(2))
	require.Equal(t, "", r.NameOf(3))

	r = NewResult([]any{1}, []string{"a", "b"})
	require.Equal(t, []string{"a"}, r.Names())
}

func TestResultAsValue(t *testing.T) {
	types := []string{"tuple(uint8 a, string b)"}
	data, err := DefaultCoder.Encode(types, []any{[]any{5, "x"}})
	require.NoError(t, err)

	res, err := DefaultCoder.Decode(types, fromHex(t, data))
	require.NoError(t, err)

	tuple := res.Index(0).(*Result)
	again, err := DefaultCoder.Encode(types, []any{tuple.Map()})
	require.NoError(t, err)
	require.Equal(t, data, again)

	again, err = DefaultCoder.Encode(types, []any{*tuple})
	require.NoError(t, err)
	require.Equal(t, data, again)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultCoder.Validate([]ParamType{{Type: "uint8"}, {Type: "tuple", Components: []ParamType{{Type: "bool"}}}}))
	require.ErrorIs(t, DefaultCoder.Validate([]ParamType{{Type: "tuple", Components: []ParamType{{Type: "uint7"}}}}), ErrInvalidBitLength)
}
