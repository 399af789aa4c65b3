/*
Package shell implements an interactive prompt running ABI commands.
*/
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/nspcc-dev/evm-abi/cli/abi"
	"github.com/nspcc-dev/evm-abi/cli/options"
	"github.com/nspcc-dev/evm-abi/pkg/config"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	exitFuncKey         = "exitFunc"
	readlineInstanceKey = "readlineKey"
	printLogoKey        = "printLogoKey"
	prompt              = "\033[32mEVM-ABI >\033[0m "
)

var commands = append([]cli.Command{
	{
		Name:        "exit",
		Usage:       "Exit the prompt",
		Description: "Exit the prompt",
		Action:      handleExit,
	},
	{
		Name:        "cache",
		Usage:       "Show the number of cached signatures",
		Description: "Show the number of parsed signatures kept in memory",
		Action:      handleCache,
	},
}, abi.NewSubcommands()...)

var completer *readline.PrefixCompleter

func init() {
	var pcItems []readline.PrefixCompleterInterface
	for _, c := range commands {
		if !c.Hidden {
			var flagsItems []readline.PrefixCompleterInterface
			for _, f := range c.Flags {
				names := strings.SplitN(f.GetName(), ", ", 2) // only long name will be offered
				flagsItems = append(flagsItems, readline.PcItem("--"+names[0]))
			}
			pcItems = append(pcItems, readline.PcItem(c.Name, flagsItems...))
		}
	}
	completer = readline.NewPrefixCompleter(pcItems...)
}

// NewCommands returns 'shell' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:   "shell",
		Usage:  "Start the interactive ABI prompt",
		Action: startPrompt,
	}}
}

func startPrompt(ctx *cli.Context) error {
	if ctx.NArg() != 0 {
		return cli.NewExitError(fmt.Errorf("unexpected argument: %s", ctx.Args().First()), 1)
	}
	env := options.GetEnvFromContext(ctx)
	p, err := NewWithConfig(term.IsTerminal(int(os.Stdout.Fd())), os.Exit, &readline.Config{
		Prompt:          prompt,
		HistoryFile:     env.Config.ApplicationConfiguration.Shell.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}, env)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return p.Run()
}

// Shell is an interactive prompt for ABI commands.
type Shell struct {
	shell *cli.App
}

// NewWithConfig returns new Shell instance using provided readline config and
// environment.
func NewWithConfig(printLogotype bool, onExit func(int), c *readline.Config, env *options.Env) (*Shell, error) {
	if c.AutoComplete == nil {
		// Autocomplete commands/flags on TAB.
		c.AutoComplete = completer
	}
	l, err := readline.NewEx(c)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	ctl := cli.NewApp()
	ctl.Name = "EVM-ABI shell"

	// Note: need to set empty `ctl.HelpName` and `ctl.UsageText`, otherwise
	// `filepath.Base(os.Args[0])` will be used which is `evm-abi`.
	ctl.HelpName = ""
	ctl.UsageText = ""

	ctl.Writer = l.Stdout()
	ctl.ErrWriter = l.Stderr()
	ctl.Version = config.Version
	ctl.Usage = "Interactive ABI encoder and decoder"

	// Override default error handler in order not to exit on error.
	ctl.ExitErrHandler = func(context *cli.Context, err error) {}

	ctl.Commands = commands

	ctl.Metadata = map[string]interface{}{
		exitFuncKey: func(code int) {
			if err := env.Close(); err != nil {
				writeErr(ctl.ErrWriter, err)
			}
			onExit(code)
		},
		readlineInstanceKey: l,
		printLogoKey:        printLogotype,
	}
	options.SetEnv(ctl, env)
	return &Shell{shell: ctl}, nil
}

func getExitFuncFromContext(app *cli.App) func(int) {
	return app.Metadata[exitFuncKey].(func(int))
}

func getReadlineInstanceFromContext(app *cli.App) *readline.Instance {
	return app.Metadata[readlineInstanceKey].(*readline.Instance)
}

func getPrintLogoFromContext(app *cli.App) bool {
	return app.Metadata[printLogoKey].(bool)
}

func handleExit(c *cli.Context) error {
	l := getReadlineInstanceFromContext(c.App)
	_ = l.Close()
	exit := getExitFuncFromContext(c.App)
	fmt.Fprintln(c.App.Writer, "Bye!")
	exit(0)
	return nil
}

func handleCache(c *cli.Context) error {
	env := options.GetEnvFromContext(c)
	fmt.Fprintf(c.App.Writer, "%d\n", env.Cache.Len())
	return nil
}

// Run waits for user input from Stdin and executes the passed command.
func (c *Shell) Run() error {
	if getPrintLogoFromContext(c.shell) {
		printLogo(c.shell.Writer)
	}
	l := getReadlineInstanceFromContext(c.shell)
	log := options.GetEnv(c.shell).Log
	for {
		line, err := l.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil // OK, stop execution.
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err) // Critical error, stop execution.
		}

		args, err := shellquote.Split(line)
		if err != nil {
			writeErr(c.shell.ErrWriter, fmt.Errorf("failed to parse arguments: %w", err))
			continue // Not a critical error, continue execution.
		}
		if len(args) == 0 {
			continue
		}

		log.Debug("shell command", zap.Strings("args", args))
		err = c.shell.Run(append([]string{"evm-abi"}, args...))
		if err != nil {
			writeErr(c.shell.ErrWriter, err) // Various command/flags parsing errors and execution errors.
		}
	}
}

const logo = `
    ______   ____  ___        ___    ____  ____
   / ____/ | / /  |/  /      /   |  / __ )/  _/
  / __/  | |/ / /|_/ /_____ / /| | / __  |/ /
 / /___  |   / /  / /_____// ___ |/ /_/ // /
/_____/  |__/_/  /_/      /_/  |_/_____/___/
`

func printLogo(w io.Writer) {
	fmt.Fprint(w, logo)
	fmt.Fprintln(w)
	fmt.Fprintln(w)
}

func writeErr(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)
}
