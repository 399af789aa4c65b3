package options

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/evm-abi/pkg/config"
	"github.com/nspcc-dev/evm-abi/pkg/contract"
	"github.com/nspcc-dev/evm-abi/pkg/storage/dbconfig"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func TestHandleLoggingParams(t *testing.T) {
	d := t.TempDir()
	testLog := filepath.Join(d, "sub", "file.log")

	t.Run("invalid level", func(t *testing.T) {
		cfg := config.ApplicationConfiguration{
			LogPath:  testLog,
			LogLevel: "qwerty",
		}
		_, _, err := HandleLoggingParams(false, cfg)
		require.Error(t, err)
	})
	t.Run("default", func(t *testing.T) {
		cfg := config.ApplicationConfiguration{
			LogPath: testLog,
		}
		logger, lvl, err := HandleLoggingParams(false, cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = logger.Sync() })
		require.Equal(t, zapcore.InfoLevel, lvl.Level())
		require.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		require.False(t, logger.Core().Enabled(zapcore.DebugLevel))

		logger.Info("test message")
		_ = logger.Sync()
		data, err := os.ReadFile(testLog)
		require.NoError(t, err)
		require.Contains(t, string(data), "test message")
	})
	t.Run("warn", func(t *testing.T) {
		cfg := config.ApplicationConfiguration{
			LogPath:  testLog,
			LogLevel: "warn",
		}
		logger, lvl, err := HandleLoggingParams(false, cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = logger.Sync() })
		require.Equal(t, zapcore.WarnLevel, lvl.Level())
		require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	})
	t.Run("debug", func(t *testing.T) {
		cfg := config.ApplicationConfiguration{
			LogPath:  testLog,
			LogLevel: "warn",
		}
		logger, lvl, err := HandleLoggingParams(true, cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = logger.Sync() })
		require.Equal(t, zapcore.DebugLevel, lvl.Level())
		require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestGetConfigFromContext(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		cfg, err := GetConfigFromContext(ctx)
		require.NoError(t, err)
		require.Equal(t, config.Default(), cfg)
	})
	t.Run("file", func(t *testing.T) {
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		set.String("config-file", filepath.Join("..", "..", "pkg", "config", "testdata", "full.yml"), "")
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		cfg, err := GetConfigFromContext(ctx)
		require.NoError(t, err)
		require.True(t, cfg.ApplicationConfiguration.Coder.RawNumbers)
	})
	t.Run("missing", func(t *testing.T) {
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		set.String("config-file", "missing.yml", "")
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		_, err := GetConfigFromContext(ctx)
		require.Error(t, err)
	})
}

func TestGetEnv(t *testing.T) {
	app := cli.NewApp()
	env := GetEnv(app)
	require.NotNil(t, env.Coder)
	require.NotNil(t, env.Cache)
	require.Same(t, env, GetEnv(app))

	other := NewEnv(config.Default(), zap.NewNop())
	SetEnv(app, other)
	require.Same(t, other, GetEnv(app))
}

func TestGetEnvFromContext(t *testing.T) {
	parentApp := cli.NewApp()
	env := NewEnv(config.Default(), zap.NewNop())
	SetEnv(parentApp, env)

	parent := cli.NewContext(parentApp, flag.NewFlagSet("parent", flag.ContinueOnError), nil)
	child := cli.NewContext(cli.NewApp(), flag.NewFlagSet("child", flag.ContinueOnError), parent)
	require.Same(t, env, GetEnvFromContext(child))

	orphan := cli.NewContext(cli.NewApp(), flag.NewFlagSet("orphan", flag.ContinueOnError), nil)
	require.NotSame(t, env, GetEnvFromContext(orphan))
}

func TestEnvSignatureDB(t *testing.T) {
	cfg := config.Default()
	cfg.ApplicationConfiguration.DBConfiguration = dbconfig.DBConfiguration{
		Type:          dbconfig.BoltDB,
		BoltDBOptions: dbconfig.BoltDBOptions{FilePath: filepath.Join(t.TempDir(), "signatures.bolt")},
	}
	env := NewEnv(cfg, zaptest.NewLogger(t))
	require.NoError(t, env.Close())

	db, err := env.SignatureDB()
	require.NoError(t, err)
	again, err := env.SignatureDB()
	require.NoError(t, err)
	require.Same(t, db, again)

	f, err := db.AddSignature("transfer(address,uint256)")
	require.NoError(t, err)
	require.NoError(t, env.Close())
	require.NoError(t, env.Close())

	db, err = env.SignatureDB()
	require.NoError(t, err)
	methods, err := db.Methods(contract.MethodID(f))
	require.NoError(t, err)
	require.Len(t, methods, 1)
	require.NoError(t, env.Close())

	cfg.ApplicationConfiguration.DBConfiguration.Type = "unknown"
	_, err = NewEnv(cfg, zap.NewNop()).SignatureDB()
	require.Error(t, err)
}
