package config

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/evm-abi/pkg/abi"
	"github.com/nspcc-dev/evm-abi/pkg/storage/dbconfig"
	"github.com/stretchr/testify/require"
)

func TestCoderConfigOptions(t *testing.T) {
	o := CoderConfig{MaxDepth: 8, IgnoreUTF8Errors: true}.Options()
	require.Equal(t, 8, o.MaxDepth)
	require.True(t, o.IgnoreUTF8Errors)
	require.Nil(t, o.Coerce)

	o = CoderConfig{RawNumbers: true}.Options()
	require.NotNil(t, o.Coerce)

	res, err := abi.NewCoder(o).Decode([]string{"uint8"}, append(make([]byte, 31), 7))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(7), res.Index(0))
}

func TestApplicationConfigurationValidate(t *testing.T) {
	a := Default().ApplicationConfiguration
	require.NoError(t, a.Validate())

	a.LogLevel = ""
	require.NoError(t, a.Validate())

	a.LogLevel = "warn"
	require.NoError(t, a.Validate())

	a.LogLevel = "verbose"
	require.Error(t, a.Validate())
}

func TestDBConfigurationValidate(t *testing.T) {
	a := Default().ApplicationConfiguration
	a.DBConfiguration.Type = dbconfig.BoltDB
	require.Error(t, a.Validate())
	a.DBConfiguration.BoltDBOptions.FilePath = "signatures.bolt"
	require.NoError(t, a.Validate())

	a.DBConfiguration.Type = dbconfig.LevelDB
	require.Error(t, a.Validate())
	a.DBConfiguration.LevelDBOptions.DataDirectoryPath = "signatures"
	require.NoError(t, a.Validate())

	a.DBConfiguration.Type = "badgerdb"
	require.Error(t, a.Validate())
}
