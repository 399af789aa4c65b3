package contract

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/nspcc-dev/evm-abi/pkg/abi"
	"github.com/stretchr/testify/require"
)

const testABI = `[
	{"type": "constructor", "inputs": [{"name": "supply", "type": "uint"}], "stateMutability": "nonpayable"},
	{"type": "function", "name": "transfer", "inputs": [{"name": "to", "type": "address"}, {"name": "amount", "type": "uint256"}], "outputs": [{"name": "", "type": "bool"}], "stateMutability": "nonpayable"},
	{"name": "balanceOf", "inputs": [{"name": "owner", "type": "address"}], "outputs": [{"name": "", "type": "uint"}], "constant": true},
	{"type": "function", "name": "balanceOf", "inputs": [{"name": "owner", "type": "address"}, {"name": "id", "type": "uint256"}], "outputs": [{"name": "", "type": "uint256"}]},
	{"type": "function", "name": "submit", "inputs": [{"name": "orders", "type": "tuple[]", "components": [{"name": "id", "type": "uint"}, {"name": "data", "type": "bytes"}]}], "outputs": []},
	{"type": "event", "name": "Transfer", "inputs": [{"name": "from", "type": "address", "indexed": true}, {"name": "to", "type": "address", "indexed": true}, {"name": "value", "type": "uint256", "indexed": false}], "anonymous": false},
	{"type": "event", "name": "Debug", "inputs": [{"name": "msg", "type": "string"}], "anonymous": true},
	{"type": "fallback", "stateMutability": "payable"},
	{"type": "receive", "stateMutability": "payable"}
]`

func TestParseJSON(t *testing.T) {
	iface, err := ParseJSON([]byte(testABI))
	require.NoError(t, err)
	require.NoError(t, iface.IsValid())

	require.NotNil(t, iface.Constructor)
	require.Equal(t, abi.ConstructorType, iface.Constructor.Type)
	require.Equal(t, "uint256", iface.Constructor.Inputs[0].Type)
	require.Len(t, iface.Methods, 4)
	require.Len(t, iface.Events, 2)
	require.Len(t, iface.Fragments(), 7)

	m := iface.GetMethod("balanceOf", -1)
	require.NotNil(t, m)
	require.Equal(t, abi.FunctionType, m.Type)
	require.True(t, m.Constant)
	require.Equal(t, "uint256", m.Outputs[0].Type)

	m = iface.GetMethod("balanceOf", 2)
	require.NotNil(t, m)
	require.Equal(t, "balanceOf(address,uint256)", m.Signature())

	m = iface.GetMethod("balanceOf(address,uint256)", -1)
	require.NotNil(t, m)
	require.Len(t, m.Inputs, 2)

	require.Nil(t, iface.GetMethod("balanceOf", 3))
	require.Nil(t, iface.GetMethod("balanceOf(uint256)", -1))
	require.Nil(t, iface.GetMethod("missing", -1))

	m = iface.GetMethod("submit", 1)
	require.NotNil(t, m)
	require.Equal(t, "submit((uint256,bytes)[])", m.Signature())

	sel, _ := hex.DecodeString("a9059cbb")
	var id [SelectorSize]byte
	copy(id[:], sel)
	m = iface.MethodBySelector(id)
	require.NotNil(t, m)
	require.Equal(t, "transfer", m.Name)
	require.Nil(t, iface.MethodBySelector([SelectorSize]byte{}))

	e := iface.GetEvent("Transfer")
	require.NotNil(t, e)
	require.Equal(t, e, iface.EventByTopic(EventID(e)))
	require.Equal(t, e, iface.GetEvent("Transfer(address,address,uint256)"))

	debug := iface.GetEvent("Debug")
	require.NotNil(t, debug)
	require.True(t, debug.Anonymous)
	require.Nil(t, iface.EventByTopic(EventID(debug)))
	require.Nil(t, iface.GetEvent("Missing"))
}

func TestParseJSONErrors(t *testing.T) {
	testCases := map[string]string{
		"not JSON":          `{`,
		"not an array":      `{"type": "function"}`,
		"bad type":          `[{"type": "function", "name": "f", "inputs": [{"type": "uint8)"}]}]`,
		"named type":        `[{"type": "function", "name": "f", "inputs": [{"type": "uint8 x"}]}]`,
		"two constructors":  `[{"type": "constructor", "inputs": []}, {"type": "constructor", "inputs": []}]`,
		"bad nested output": `[{"type": "function", "name": "f", "inputs": [], "outputs": [{"type": "tuple", "components": [{"type": "(bool)"}]}]}]`,
	}
	for name, data := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJSON([]byte(data))
			require.Error(t, err)
		})
	}
}

func TestInterfaceIsValid(t *testing.T) {
	fn := func(sig string) abi.Fragment {
		f, err := abi.ParseSignature(sig)
		require.NoError(t, err)
		return f
	}

	require.NoError(t, (&Interface{}).IsValid())

	iface := &Interface{Methods: []abi.Fragment{fn("foo(uint8)"), fn("foo(uint16)")}}
	require.NoError(t, iface.IsValid())

	iface.Methods = append(iface.Methods, fn("foo(uint8 other) returns (bool)"))
	require.Error(t, iface.IsValid())

	iface = &Interface{Methods: []abi.Fragment{{Type: abi.FunctionType, Name: "1x"}}}
	require.ErrorIs(t, iface.IsValid(), abi.ErrInvalidIdentifier)

	iface = &Interface{Methods: []abi.Fragment{{Type: abi.FunctionType, Name: "x", Inputs: []abi.ParamType{{Type: "uint7"}}}}}
	require.ErrorIs(t, iface.IsValid(), abi.ErrInvalidBitLength)

	iface = &Interface{Methods: []abi.Fragment{{Type: abi.FunctionType, Name: "x", Inputs: []abi.ParamType{{}}}}}
	require.ErrorIs(t, iface.IsValid(), abi.ErrInvalidType)

	iface = &Interface{Methods: []abi.Fragment{{Type: abi.FunctionType, Name: "x", Outputs: []abi.ParamType{{Type: "foo"}}}}}
	require.ErrorIs(t, iface.IsValid(), abi.ErrInvalidType)

	iface = &Interface{Constructor: &abi.Fragment{Type: abi.ConstructorType, Inputs: []abi.ParamType{{Type: "bytes33"}}}}
	require.ErrorIs(t, iface.IsValid(), abi.ErrInvalidBytesLength)

	iface = &Interface{Events: []abi.Fragment{fn("event E(uint8)"), fn("event E(uint8 indexed x)")}}
	require.Error(t, iface.IsValid())

	iface = &Interface{Events: []abi.Fragment{fn("event E(uint8)"), fn("event E(bool)")}}
	require.NoError(t, iface.IsValid())

	iface = &Interface{Events: []abi.Fragment{fn("event (uint8)")}}
	require.ErrorIs(t, iface.IsValid(), abi.ErrInvalidIdentifier)
}

func TestInterfaceMarshalJSON(t *testing.T) {
	iface, err := ParseJSON([]byte(testABI))
	require.NoError(t, err)

	data, err := json.Marshal(iface)
	require.NoError(t, err)

	iface2, err := ParseJSON(data)
	require.NoError(t, err)
	require.Equal(t, iface, iface2)
}
