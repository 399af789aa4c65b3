package testserdes

import (
	"encoding/json"
	"testing"

	"github.com/nspcc-dev/evm-abi/pkg/abi"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// MarshalUnmarshalJSON checks if expected stays the same after
// marshal/unmarshal via JSON.
func MarshalUnmarshalJSON(t *testing.T, expected, actual any) {
	data, err := json.Marshal(expected)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, actual))
	require.Equal(t, expected, actual)
}

// MarshalUnmarshalYAML checks if expected stays the same after
// marshal/unmarshal via YAML.
func MarshalUnmarshalYAML(t *testing.T, expected, actual any) {
	data, err := yaml.Marshal(expected)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, actual))
	require.Equal(t, expected, actual)
}

// EncodeDecode encodes values with the given coder, decodes them back and
// checks that decoded values are encoded into the same data. The decoded
// result is returned for further checks.
func EncodeDecode(t *testing.T, c *abi.Coder, types []abi.ParamType, values []any) *abi.Result {
	data, err := c.Pack(types, values)
	require.NoError(t, err)
	require.Zero(t, len(data)%abi.WordSize)

	res, err := c.DecodeParams(types, data)
	require.NoError(t, err)
	require.Equal(t, len(types), res.Len())

	again, err := c.Pack(types, res.Values())
	require.NoError(t, err)
	require.Equal(t, data, again)
	return res
}
