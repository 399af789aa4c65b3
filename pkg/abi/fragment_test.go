package abi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSignatureFunction(t *testing.T) {
	f, err := ParseSignature("function transfer(address to, uint amount) returns (bool)")
	require.NoError(t, err)
	require.Equal(t, Fragment{
		Type:    FunctionType,
		Name:    "transfer",
		Inputs:  []ParamType{{Type: "address", Name: "to"}, {Type: "uint256", Name: "amount"}},
		Outputs: []ParamType{{Type: "bool"}},
	}, f)
	require.Equal(t, "transfer(address,uint256)", f.Signature())
}

func TestParseSignatureModifiers(t *testing.T) {
	testCases := []struct {
		sig        string
		constant   bool
		payable    bool
		mutability string
	}{
		{"balanceOf(address) view returns (uint)", true, false, "view"},
		{"hash(bytes) pure returns (bytes32)", true, false, "pure"},
		{"deposit() payable", false, true, "payable"},
		{"totalSupply() constant returns (uint)", true, false, ""},
		{"foo() external", false, false, ""},
	}
	for _, tc := range testCases {
		f, err := ParseSignature(tc.sig)
		require.NoError(t, err, tc.sig)
		require.Equal(t, tc.constant, f.Constant, tc.sig)
		require.Equal(t, tc.payable, f.Payable, tc.sig)
		require.Equal(t, tc.mutability, f.StateMutability, tc.sig)
	}
}

func TestParseSignatureNoIndexedInFunctions(t *testing.T) {
	f, err := ParseSignature("foo(uint8 indexed)")
	require.NoError(t, err)
	require.Equal(t, []ParamType{{Type: "uint8", Name: "indexed"}}, f.Inputs)
}

func TestParseSignatureTuple(t *testing.T) {
	f, err := ParseSignature("submit(tuple(uint8 kind, string data)[] items, bytes sig)")
	require.NoError(t, err)
	require.Len(t, f.Inputs, 2)
	require.Equal(t, "tuple[]", f.Inputs[0].Type)
	require.Equal(t, "items", f.Inputs[0].Name)
	require.Len(t, f.Inputs[0].Components, 2)
	require.Equal(t, "submit((uint8,string)[],bytes)", f.Signature())
}

func TestParseSignatureGas(t *testing.T) {
	f, err := ParseSignature("foo(uint8) @100")
	require.NoError(t, err)
	require.Equal(t, big.NewInt(100), f.Gas)

	_, err = ParseSignature("foo(uint8)@1x")
	require.ErrorIs(t, err, ErrInvalidSignature)

	_, err = ParseSignature("foo(uint8)@1@2")
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseSignatureEvent(t *testing.T) {
	f, err := ParseSignature("event Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)
	require.Equal(t, Fragment{
		Type: EventType,
		Name: "Transfer",
		Inputs: []ParamType{
			{Type: "address", Name: "from", Indexed: true},
			{Type: "address", Name: "to", Indexed: true},
			{Type: "uint256", Name: "value"},
		},
	}, f)
	require.Equal(t, "Transfer(address,address,uint256)", f.Signature())

	f, err = ParseSignature("event Foo(uint8) anonymous")
	require.NoError(t, err)
	require.True(t, f.Anonymous)

	_, err = ParseSignature("event 1Foo(uint8)")
	require.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = ParseSignature("event Foo")
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseSignatureConstructor(t *testing.T) {
	f, err := ParseSignature("constructor(uint8 a, string b)")
	require.NoError(t, err)
	require.Equal(t, ConstructorType, f.Type)
	require.Equal(t, "", f.Name)
	require.Len(t, f.Inputs, 2)
	require.Nil(t, f.Outputs)

	_, err = ParseSignature("constructor() returns (uint8)")
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseSignatureErrors(t *testing.T) {
	testCases := []struct {
		sig string
		err error
	}{
		{"1foo(uint8)", ErrInvalidIdentifier},
		{"foo bar(uint8)", ErrInvalidIdentifier},
		{"(uint8)", ErrInvalidIdentifier},
		{"foo", ErrInvalidSignature},
		{"foo(uint8) returns bool", ErrInvalidSignature},
		{"foo(uint8) returns (bool) view", ErrInvalidSignature},
		{"foo() returns (bool) returns (bool)", ErrInvalidSignature},
		{"foo(uint8 a b)", ErrUnexpectedCharacter},
		{"foo(tuple(uint8)", ErrUnexpectedEOF},
	}
	for _, tc := range testCases {
		_, err := ParseSignature(tc.sig)
		require.ErrorIs(t, err, tc.err, tc.sig)
	}
}

func TestFragmentString(t *testing.T) {
	for _, sig := range []string{
		"function transfer(address to, uint256 amount) returns (bool)",
		"function balanceOf(address) view returns (uint256)",
		"function deposit() payable",
		"function run(tuple(uint8 a,bytes) x) @21000",
		"event Transfer(address indexed from, address indexed to, uint256 value)",
		"event Log(string) anonymous",
		"constructor(uint8 a)",
	} {
		f, err := ParseSignature(sig)
		require.NoError(t, err, sig)
		require.Equal(t, sig, f.String())

		f2, err := ParseSignature(f.String())
		require.NoError(t, err)
		require.Equal(t, f, f2)
	}
}
