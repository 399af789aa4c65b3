package cmdargs

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/urfave/cli"
)

const (
	// ValuesParsingDoc is a documentation for values parsing.
	ValuesParsingDoc = `   Values are given as a JSON array with one element per type. Integers can be
   specified as JSON numbers or as decimal or 0x-prefixed hex strings (with an
   optional leading '-'). Byte values (bytes, bytesN) are 0x-prefixed hex
   strings, addresses are 0x-prefixed hex strings with an optional EIP-55
   checksum. Arrays and tuples are JSON arrays, tuples can also be given as
   JSON objects keyed by component names, e.g.:
    * '[1, "0x1234", true]' for 'uint8,bytes2,bool'
    * '[[1, 2], {"a": "x", "b": 5}]' for 'uint8[2],tuple(string a, int b)'`
)

var (
	// ErrMissingParameter is returned when a mandatory argument is absent.
	ErrMissingParameter = errors.New("missing argument")
	// ErrInvalidParameter is returned when an argument can't be parsed.
	ErrInvalidParameter = errors.New("can't parse argument")
)

// EnsureNone returns an error if there are any positional arguments present.
// It can be used to check for them in commands that don't accept arguments.
func EnsureNone(ctx *cli.Context) *cli.ExitError {
	if ctx.Args().Present() {
		return cli.NewExitError("additional arguments given while this command expects none", 1)
	}
	return nil
}

// GetSingleArg returns the only positional argument of the command, what is
// used in the error message.
func GetSingleArg(ctx *cli.Context, what string) (string, *cli.ExitError) {
	switch ctx.NArg() {
	case 0:
		return "", cli.NewExitError(fmt.Errorf("%w: %s", ErrMissingParameter, what), 1)
	case 1:
		return ctx.Args().First(), nil
	default:
		return "", cli.NewExitError(fmt.Errorf("%w: expected exactly one argument (%s), got %d",
			ErrInvalidParameter, what, ctx.NArg()), 1)
	}
}

// DecodeHex decodes a hex string with an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParameter, err)
	}
	return b, nil
}

// ParseValues parses a JSON array of values. Numbers are kept as json.Number
// and objects are converted into maps to be used as keyed tuple values. An
// empty string is an empty list.
func ParseValues(s string) ([]any, error) {
	if strings.TrimSpace(s) == "" {
		return []any{}, nil
	}
	d := json.NewDecoder(bytes.NewBufferString(s))
	d.UseNumber()
	d.UseOrderedObject()

	var v any
	if err := d.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON values: %s", ErrInvalidParameter, err)
	}
	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON values", ErrInvalidParameter)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: values must be a JSON array", ErrInvalidParameter)
	}
	for i := range list {
		list[i] = fromJSON(list[i])
	}
	return list, nil
}

func fromJSON(v any) any {
	switch v := v.(type) {
	case []any:
		for i := range v {
			v[i] = fromJSON(v[i])
		}
		return v
	case json.OrderedObject:
		m := make(map[string]any, len(v))
		for i := range v {
			if _, ok := m[v[i].Key]; ok {
				continue
			}
			m[v[i].Key] = fromJSON(v[i].Value)
		}
		return m
	}
	return v
}
