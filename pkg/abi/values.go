package abi

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/holiman/uint256"
)

var (
	errNotInteger = errors.New("not an integer")
	errNotBytes   = errors.New("not a byte string")
)

// toBigInt converts a number-like value into an integer. Strings are either
// "0x"-prefixed hex (with an optional leading '-') or decimal numbers.
func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, errNotInteger
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case *uint256.Int:
		if v == nil {
			return nil, errNotInteger
		}
		return v.ToBig(), nil
	case string:
		return parseBigInt(v)
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, errNotInteger
		}
		n, _ := big.NewFloat(v).Int(nil)
		return n, nil
	case float32:
		return toBigInt(float64(v))
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	case reflect.String:
		// Covers json.Number and similar string-based types.
		return parseBigInt(rv.String())
	}
	return nil, errNotInteger
}

func parseBigInt(s string) (*big.Int, error) {
	var (
		neg  bool
		base = 10
		n    = new(big.Int)
	)
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	if s == "" || s[0] == '-' || s[0] == '+' {
		return nil, errNotInteger
	}
	if _, ok := n.SetString(s, base); !ok {
		return nil, errNotInteger
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

// toBytes converts a byte-like value: []byte, a byte array or a "0x"-prefixed
// hex string.
func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return decodeHex(v)
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return b, nil
	}
	return nil, errNotBytes
}

func decodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, fmt.Errorf("%w: missing 0x prefix", errNotBytes)
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errNotBytes, err.Error())
	}
	return b, nil
}

// hexString returns "0x"-prefixed lowercase hex representation of b.
func hexString(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// toList converts a list-like value into a slice of values. Any slice or
// array (except byte strings) is accepted as well as decoded results.
func toList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case *Result:
		if v == nil {
			return nil, false
		}
		return v.Values(), true
	case Result:
		return v.Values(), true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	var list = make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return list, true
}
