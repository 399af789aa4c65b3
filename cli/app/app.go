package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/evm-abi/cli/abi"
	"github.com/nspcc-dev/evm-abi/cli/options"
	"github.com/nspcc-dev/evm-abi/cli/shell"
	"github.com/nspcc-dev/evm-abi/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "EVM-ABI\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates an evm-abi instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "evm-abi"
	ctl.Version = config.Version
	ctl.Usage = "Ethereum contract ABI encoder and decoder"
	ctl.ErrWriter = os.Stdout
	ctl.Metadata = make(map[string]interface{})
	ctl.Flags = options.Global
	ctl.Before = options.InitEnv
	ctl.After = options.CloseEnv

	ctl.Commands = append(ctl.Commands, abi.NewCommands()...)
	ctl.Commands = append(ctl.Commands, shell.NewCommands()...)
	return ctl
}
