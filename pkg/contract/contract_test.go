package contract

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/nspcc-dev/evm-abi/internal/testserdes"
	"github.com/nspcc-dev/evm-abi/pkg/abi"
	"github.com/nspcc-dev/evm-abi/pkg/crypto/hash"
	"github.com/stretchr/testify/require"
)

const (
	testFrom = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testTo   = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

func word(s string) string {
	return strings.Repeat("0", 64-len(s)) + s
}

func fromHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	require.NoError(t, err)
	return b
}

func mustParse(t *testing.T, sig string) *abi.Fragment {
	f, err := abi.ParseSignature(sig)
	require.NoError(t, err)
	return &f
}

func TestMethodID(t *testing.T) {
	testCases := []struct {
		sig string
		id  string
	}{
		{"function transfer(address to, uint amount) returns (bool)", "a9059cbb"},
		{"balanceOf(address)", "70a08231"},
		{"approve(address,uint256)", "095ea7b3"},
		{"totalSupply() view returns (uint)", "18160ddd"},
	}
	for _, tc := range testCases {
		mid := MethodID(mustParse(t, tc.sig))
		require.Equal(t, tc.id, hex.EncodeToString(mid[:]), tc.sig)
	}
}

func TestEventID(t *testing.T) {
	f := mustParse(t, "event Transfer(address indexed from, address indexed to, uint256 value)")
	require.Equal(t, "Transfer(address,address,uint256)", Signature(f))
	id := EventID(f)
	require.Equal(t, "ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", hex.EncodeToString(id[:]))
}

func TestEncodeFunctionCall(t *testing.T) {
	f := mustParse(t, "function transfer(address to, uint256 amount) returns (bool)")

	data, err := EncodeFunctionCall(abi.DefaultCoder, f, []any{testFrom, 1000})
	require.NoError(t, err)
	require.Equal(t, "a9059cbb"+word("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")+word("3e8"), hex.EncodeToString(data))

	res, err := DecodeFunctionCall(abi.DefaultCoder, f, data)
	require.NoError(t, err)
	to, ok := res.Get("to")
	require.True(t, ok)
	require.Equal(t, testFrom, to)
	amount, ok := res.Get("amount")
	require.True(t, ok)
	require.Equal(t, big.NewInt(1000), amount)

	_, err = DecodeFunctionCall(abi.DefaultCoder, f, data[1:])
	require.ErrorIs(t, err, ErrSelectorMismatch)
	_, err = DecodeFunctionCall(abi.DefaultCoder, f, data[:2])
	require.ErrorIs(t, err, ErrSelectorMismatch)

	_, err = EncodeFunctionCall(abi.DefaultCoder, f, []any{testFrom})
	require.ErrorIs(t, err, abi.ErrCountMismatch)

	ev := mustParse(t, "event Foo(uint8)")
	_, err = EncodeFunctionCall(abi.DefaultCoder, ev, []any{1})
	require.ErrorIs(t, err, ErrNotFunction)
	_, err = DecodeFunctionCall(abi.DefaultCoder, ev, nil)
	require.ErrorIs(t, err, ErrNotFunction)
	_, err = DecodeFunctionResult(abi.DefaultCoder, ev, nil)
	require.ErrorIs(t, err, ErrNotFunction)
}

func TestEncodeConstructor(t *testing.T) {
	f := mustParse(t, "constructor(uint8 decimals, string name)")
	data, err := EncodeFunctionCall(abi.DefaultCoder, f, []any{18, "x"})
	require.NoError(t, err)
	require.Equal(t, word("12")+word("40")+word("1")+"78"+strings.Repeat("0", 62), hex.EncodeToString(data))

	res, err := DecodeFunctionCall(abi.DefaultCoder, f, data)
	require.NoError(t, err)
	name, ok := res.Get("name")
	require.True(t, ok)
	require.Equal(t, "x", name)
}

func TestDecodeFunctionResult(t *testing.T) {
	f := mustParse(t, "function getReserves() view returns (uint112 reserve0, uint112 reserve1, uint32 timestamp)")
	data := fromHex(t, word("64")+word("c8")+word("5f5e100"))

	res, err := DecodeFunctionResult(abi.DefaultCoder, f, data)
	require.NoError(t, err)
	require.Equal(t, 3, res.Len())
	r0, _ := res.Get("reserve0")
	require.Equal(t, big.NewInt(100), r0)
	ts, _ := res.Get("timestamp")
	require.Equal(t, "0x5f5e100", ts)

	_, err = DecodeFunctionResult(abi.DefaultCoder, f, data[:64])
	require.ErrorIs(t, err, abi.ErrInsufficientData)
}

func TestDecodeLog(t *testing.T) {
	f := mustParse(t, "event Transfer(address indexed from, address indexed to, uint256 value)")
	id := EventID(f)
	topics := [][]byte{
		id[:],
		fromHex(t, word("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")),
		fromHex(t, word("fb6916095ca1df60bb79ce92ce3ea74c37c5d359")),
	}

	res, err := DecodeLog(abi.DefaultCoder, f, fromHex(t, word("3e8")), topics)
	require.NoError(t, err)
	require.Equal(t, []any{testFrom, testTo, big.NewInt(1000)}, res.Values())
	require.Equal(t, []string{"from", "to", "value"}, res.Names())

	_, err = DecodeLog(abi.DefaultCoder, f, fromHex(t, word("3e8")), topics[1:])
	require.ErrorIs(t, err, ErrTopicMismatch)

	_, err = DecodeLog(abi.DefaultCoder, f, fromHex(t, word("3e8")), topics[:2])
	require.ErrorIs(t, err, ErrTopicCount)

	_, err = DecodeLog(abi.DefaultCoder, f, nil, topics)
	require.ErrorIs(t, err, abi.ErrInsufficientData)

	_, err = DecodeLog(abi.DefaultCoder, mustParse(t, "foo(uint8)"), nil, nil)
	require.ErrorIs(t, err, ErrNotEvent)
}

func TestDecodeLogHashedTopics(t *testing.T) {
	f := mustParse(t, "event Message(string indexed text, uint8[2] indexed pair, uint8 n, address indexed sender)")
	var (
		id       = EventID(f)
		textHash = hash.Keccak256String("hello")
		pairHash = hash.Keccak256(fromHex(t, word("1")+word("2")))
	)
	topics := [][]byte{id[:], textHash[:], pairHash[:], fromHex(t, word("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))}

	res, err := DecodeLog(abi.DefaultCoder, f, fromHex(t, word("7")), topics)
	require.NoError(t, err)
	require.Equal(t, 4, res.Len())
	require.Equal(t, textHash[:], res.Index(0))
	require.Equal(t, pairHash[:], res.Index(1))
	require.Equal(t, "0x7", res.Index(2))
	sender, ok := res.Get("sender")
	require.True(t, ok)
	require.Equal(t, testFrom, sender)

	topics[1] = topics[1][:20]
	_, err = DecodeLog(abi.DefaultCoder, f, fromHex(t, word("7")), topics)
	require.Error(t, err)
}

func TestDecodeLogAnonymous(t *testing.T) {
	f := mustParse(t, "event Anon(uint8 indexed a, bool b) anonymous")

	res, err := DecodeLog(abi.DefaultCoder, f, fromHex(t, word("1")), [][]byte{fromHex(t, word("5"))})
	require.NoError(t, err)
	require.Equal(t, []any{"0x5", true}, res.Values())

	_, err = DecodeLog(abi.DefaultCoder, mustParse(t, "event Bad(,uint8) anonymous"), nil, nil)
	require.ErrorIs(t, err, abi.ErrInvalidType)
}

func TestFragmentJSON(t *testing.T) {
	for _, sig := range []string{
		"function transfer(address to, uint256 value) returns (bool)",
		"function f(tuple(uint8 a, string[] b) x, bytes32[2]) view returns (bool) @100",
		"event Transfer(address indexed from, address indexed to, uint256 value)",
		"constructor(uint256 supply) payable",
	} {
		testserdes.MarshalUnmarshalJSON(t, mustParse(t, sig), new(abi.Fragment))
	}
}

func TestCallRoundTrip(t *testing.T) {
	f := mustParse(t, "function f(tuple(uint8 a, string[] b) x, bytes32[2] h, int16 n, address to)")
	values := []any{
		map[string]any{"a": 7, "b": []any{"one", "", "three"}},
		[]any{"0x" + strings.Repeat("ab", 32), "0x" + strings.Repeat("cd", 32)},
		-300,
		testTo,
	}

	res := testserdes.EncodeDecode(t, abi.DefaultCoder, f.Inputs, values)
	x, ok := res.Get("x")
	require.True(t, ok)
	require.Equal(t, "0x7", x.(*abi.Result).Index(0))
	require.Equal(t, "-0x12c", res.Index(2))
	require.Equal(t, testTo, res.Index(3))

	data, err := EncodeFunctionCall(abi.DefaultCoder, f, values)
	require.NoError(t, err)
	decoded, err := DecodeFunctionCall(abi.DefaultCoder, f, data)
	require.NoError(t, err)
	require.Equal(t, res.Len(), decoded.Len())
	for i := 0; i < res.Len(); i++ {
		require.Equal(t, res.NameOf(i), decoded.NameOf(i))
	}
}
