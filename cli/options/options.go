/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nspcc-dev/evm-abi/pkg/abi"
	"github.com/nspcc-dev/evm-abi/pkg/config"
	"github.com/nspcc-dev/evm-abi/pkg/contract"
	"github.com/nspcc-dev/evm-abi/pkg/storage"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConfigFile is a flag for the path to the configuration file.
var ConfigFile = cli.StringFlag{
	Name:  "config-file",
	Usage: "path to the configuration file (defaults are used if not specified)",
}

// Debug is a flag enabling debug logging.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging (overrides configuration)",
}

// Global is a set of flags accepted by the application itself.
var Global = []cli.Flag{ConfigFile, Debug}

const envKey = "env"

// Env is an environment shared by commands of a single application run.
type Env struct {
	Config config.Config
	Log    *zap.Logger
	Coder  *abi.Coder
	Cache  *contract.SignatureCache

	dbLock sync.Mutex
	store  storage.Store
	db     *contract.SignatureDB
}

// SignatureDB returns the database of known signatures, the storage is
// opened on the first call.
func (e *Env) SignatureDB() (*contract.SignatureDB, error) {
	e.dbLock.Lock()
	defer e.dbLock.Unlock()
	if e.db != nil {
		return e.db, nil
	}
	dbCfg := e.Config.ApplicationConfiguration.DBConfiguration
	store, err := storage.NewStore(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open signature DB: %w", err)
	}
	e.Log.Debug("signature DB opened", zap.String("type", dbCfg.Type))
	e.store = store
	e.db = contract.NewSignatureDB(store, e.Coder)
	return e.db, nil
}

// Close releases the storage if it was opened.
func (e *Env) Close() error {
	e.dbLock.Lock()
	defer e.dbLock.Unlock()
	if e.store == nil {
		return nil
	}
	err := e.store.Close()
	e.store = nil
	e.db = nil
	return err
}

// GetConfigFromContext loads the configuration file specified with the
// --config-file flag, the default configuration is returned if it's not set.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	configFile := ctx.GlobalString("config-file")
	if configFile == "" {
		return config.Default(), nil
	}
	return config.LoadFile(configFile)
}

// NewEnv creates an environment for the given configuration.
func NewEnv(cfg config.Config, log *zap.Logger) *Env {
	coder := abi.NewCoder(cfg.ApplicationConfiguration.Coder.Options())
	return &Env{
		Config: cfg,
		Log:    log,
		Coder:  coder,
		Cache:  contract.NewSignatureCache(coder, cfg.ApplicationConfiguration.Shell.SignatureCacheSize),
	}
}

// InitEnv loads the configuration, creates a logger and stores the resulting
// environment in the application metadata. It's intended to be used as the
// application's Before function.
func InitEnv(ctx *cli.Context) error {
	cfg, err := GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log, _, err := HandleLoggingParams(ctx.GlobalBool("debug"), cfg.ApplicationConfiguration)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	SetEnv(ctx.App, NewEnv(cfg, log))
	log.Debug("configuration loaded",
		zap.String("file", ctx.GlobalString("config-file")),
		zap.Int("max depth", cfg.ApplicationConfiguration.Coder.MaxDepth),
		zap.Bool("raw numbers", cfg.ApplicationConfiguration.Coder.RawNumbers))
	return nil
}

// CloseEnv closes the environment and flushes its logger if there is one.
// It's intended to be used as the application's After function.
func CloseEnv(ctx *cli.Context) error {
	env, ok := ctx.App.Metadata[envKey].(*Env)
	if !ok {
		return nil
	}
	err := env.Close()
	_ = env.Log.Sync()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to close signature DB: %w", err), 1)
	}
	return nil
}

// SetEnv stores the environment in the application metadata.
func SetEnv(app *cli.App, env *Env) {
	if app.Metadata == nil {
		app.Metadata = make(map[string]interface{})
	}
	app.Metadata[envKey] = env
}

// GetEnv returns the environment stored in the application metadata or the
// default one with no logging if there is none.
func GetEnv(app *cli.App) *Env {
	if env, ok := app.Metadata[envKey].(*Env); ok {
		return env
	}
	env := NewEnv(config.Default(), zap.NewNop())
	SetEnv(app, env)
	return env
}

// GetEnvFromContext returns the environment of the closest application in
// the context chain that has one, the default one is used otherwise.
func GetEnvFromContext(ctx *cli.Context) *Env {
	for c := ctx; c != nil; c = c.Parent() {
		if c.App == nil {
			continue
		}
		if env, ok := c.App.Metadata[envKey].(*Env); ok {
			return env
		}
	}
	return GetEnv(ctx.App)
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function creates a dir and a file for logging.
func HandleLoggingParams(debug bool, cfg config.ApplicationConfiguration) (*zap.Logger, *zap.AtomicLevel, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	if logPath := cfg.LogPath; logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, nil, fmt.Errorf("could not create dir for logger: %w", err)
		}
		cc.OutputPaths = []string{logPath}
	}

	log, err := cc.Build()
	return log, &cc.Level, err
}
