package config

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/evm-abi/pkg/abi"
	"github.com/nspcc-dev/evm-abi/pkg/contract"
	"github.com/nspcc-dev/evm-abi/pkg/storage/dbconfig"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultLogLevel is the log level used if it's not specified.
	DefaultLogLevel = "info"
	// DefaultMaxDepth is the default type nesting limit.
	DefaultMaxDepth = abi.DefaultMaxDepth
	// DefaultSignatureCacheSize is the default number of parsed signatures
	// kept by the shell.
	DefaultSignatureCacheSize = contract.DefaultCacheSize
)

// ApplicationConfiguration contains the settings of the tool.
type ApplicationConfiguration struct {
	LogLevel string      `yaml:"LogLevel"`
	LogPath  string      `yaml:"LogPath"`
	Coder    CoderConfig `yaml:"Coder"`
	Shell    ShellConfig `yaml:"Shell"`
	// DBConfiguration is the storage of known signatures.
	DBConfiguration dbconfig.DBConfiguration `yaml:"DBConfiguration"`
}

// CoderConfig contains the settings of the ABI coder.
type CoderConfig struct {
	// MaxDepth limits the nesting of tuples and arrays.
	MaxDepth int `yaml:"MaxDepth"`
	// IgnoreUTF8Errors makes decoder skip malformed UTF-8 sequences in
	// strings instead of failing.
	IgnoreUTF8Errors bool `yaml:"IgnoreUTF8Errors"`
	// RawNumbers disables the hex rendering of decoded numbers that are
	// 48 bits wide or less.
	RawNumbers bool `yaml:"RawNumbers"`
}

// ShellConfig contains the settings of the interactive shell.
type ShellConfig struct {
	HistoryFile        string `yaml:"HistoryFile"`
	SignatureCacheSize int    `yaml:"SignatureCacheSize"`
}

// Validate checks ApplicationConfiguration for internal consistency and returns
// an error if any invalid settings are found.
func (a *ApplicationConfiguration) Validate() error {
	if a.LogLevel != "" {
		if _, err := zapcore.ParseLevel(a.LogLevel); err != nil {
			return fmt.Errorf("invalid LogLevel: %w", err)
		}
	}
	if a.Coder.MaxDepth < 0 {
		return errors.New("negative Coder.MaxDepth")
	}
	if a.Shell.SignatureCacheSize < 0 {
		return errors.New("negative Shell.SignatureCacheSize")
	}
	switch db := a.DBConfiguration; db.Type {
	case dbconfig.InMemoryDB, "":
	case dbconfig.BoltDB:
		if db.BoltDBOptions.FilePath == "" {
			return errors.New("empty DBConfiguration.BoltDBOptions.FilePath")
		}
	case dbconfig.LevelDB:
		if db.LevelDBOptions.DataDirectoryPath == "" {
			return errors.New("empty DBConfiguration.LevelDBOptions.DataDirectoryPath")
		}
	default:
		return fmt.Errorf("unknown DBConfiguration.Type: %q", db.Type)
	}
	return nil
}

// Options returns the coder options corresponding to the configuration.
func (c CoderConfig) Options() abi.Options {
	var o = abi.Options{
		MaxDepth:         c.MaxDepth,
		IgnoreUTF8Errors: c.IgnoreUTF8Errors,
	}
	if c.RawNumbers {
		o.Coerce = abi.RawCoerce
	}
	return o
}
