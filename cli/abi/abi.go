package abi

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"os"
	"regexp"

	"github.com/nspcc-dev/evm-abi/cli/cmdargs"
	"github.com/nspcc-dev/evm-abi/cli/options"
	"github.com/nspcc-dev/evm-abi/pkg/abi"
	"github.com/nspcc-dev/evm-abi/pkg/contract"
	"github.com/nspcc-dev/evm-abi/pkg/encoding/address"
	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	typesFlag = cli.StringFlag{
		Name:  "types, t",
		Usage: "comma-separated list of types, e.g. 'uint256,tuple(bool,string)[]'",
	}
	valuesFlag = cli.StringFlag{
		Name:  "values, v",
		Usage: "JSON array of values, numbers can be given as JSON numbers or strings, byte values as 0x-prefixed hex strings",
	}
	jsonFlag = cli.BoolFlag{
		Name:  "json, j",
		Usage: "print the result as JSON",
	}
)

// NewCommands returns 'abi' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:        "abi",
		Usage:       "Encode and decode data using Ethereum contract ABI",
		Subcommands: NewSubcommands(),
	}}
}

// NewSubcommands returns the commands available under 'abi'.
func NewSubcommands() []cli.Command {
	return []cli.Command{
		{
			Name:      "parse",
			Usage:     "Parse type or signature and print it as YAML",
			UsageText: "parse <type|signature>",
			Description: `parse <type|signature>

Arguments starting with 'function', 'event' or looking like 'name(...)' are
parsed as signatures, everything else is parsed as a single parameter type.
Examples:
> parse 'tuple(uint a, string b)[] c'
> parse 'event Transfer(address indexed from, address indexed to, uint value)'`,
			Action: handleParse,
		},
		{
			Name:      "encode",
			Usage:     "Encode values",
			UsageText: "encode --types <types> --values <json>",
			Description: `encode --types <types> --values <json>

Encodes a list of values and prints the result as hex. Tuple values are given
either as arrays or as objects keyed by component names.
Example:
> encode --types 'uint8,tuple(uint a, string b)' --values '[1, {"a": 2, "b": "x"}]'

` + cmdargs.ValuesParsingDoc,
			Action: handleEncode,
			Flags:  []cli.Flag{typesFlag, valuesFlag},
		},
		{
			Name:      "decode",
			Usage:     "Decode data",
			UsageText: "decode --types <types> [--json] <hex>",
			Description: `decode --types <types> [--json] <hex>

Decodes hex data and prints one value per line or a JSON document if --json
is specified (named tuples are printed as objects then).
Example:
> decode --types 'uint256,string' 0x...`,
			Action: handleDecode,
			Flags:  []cli.Flag{typesFlag, jsonFlag},
		},
		{
			Name:      "selector",
			Usage:     "Print the method selector",
			UsageText: "selector <signature>",
			Description: `selector <signature>

Example:
> selector 'transfer(address,uint256)'`,
			Action: handleSelector,
		},
		{
			Name:      "topic",
			Usage:     "Print the event topic",
			UsageText: "topic <signature>",
			Description: `topic <signature>

Example:
> topic 'event Transfer(address indexed, address indexed, uint256)'`,
			Action: handleTopic,
		},
		{
			Name:      "calldata",
			Usage:     "Build method call data",
			UsageText: "calldata --values <json> <signature>",
			Description: `calldata --values <json> <signature>

Prints the selector followed by the encoded arguments.
Example:
> calldata --values '["0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", 1000]' 'transfer(address,uint256)'

` + cmdargs.ValuesParsingDoc,
			Action: handleCalldata,
			Flags:  []cli.Flag{valuesFlag},
		},
		{
			Name:      "checksum",
			Usage:     "Print the EIP-55 checksummed address",
			UsageText: "checksum <address>",
			Description: `checksum <address>

Mixed-case addresses are checked against their checksum.
Example:
> checksum 0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359`,
			Action: handleChecksum,
		},
		{
			Name:      "decodelog",
			Usage:     "Decode event log",
			UsageText: "decodelog --data <hex> [--topic <hex>]... [--json] [<signature>]",
			Description: `decodelog --data <hex> [--topic <hex>]... [--json] [<signature>]

Topics are given in the order they appear in the log, including the event ID
for non-anonymous events. Indexed values of reference types are printed as
their topic hashes. If the signature is omitted, the event is looked up in
the signature DB by the first topic and its signature is printed before the
values.`,
			Action: handleDecodeLog,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "data", Usage: "log data"},
				cli.StringSliceFlag{Name: "topic", Usage: "log topic (can be repeated)"},
				jsonFlag,
			},
		},
		{
			Name:      "register",
			Usage:     "Add signatures to the signature DB",
			UsageText: "register [--abi <file>] [<signature>...]",
			Description: `register [--abi <file>] [<signature>...]

Stores method and event signatures in the signature DB configured in the
DBConfiguration section, so that 'lookup', 'decodecall' and 'decodelog'
can find them by selector or topic. Anonymous events can't be registered
and are skipped when importing JSON ABI files.
Examples:
> register 'transfer(address,uint256)' 'event Approval(address indexed, address indexed, uint256)'
> register --abi ERC20.json`,
			Action: handleRegister,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "abi, a", Usage: "JSON ABI file to import"},
			},
		},
		{
			Name:      "lookup",
			Usage:     "Find signatures in the signature DB",
			UsageText: "lookup [<selector|topic>]",
			Description: `lookup [<selector|topic>]

A 4-byte selector is looked up among methods, a 32-byte topic among events.
All known signatures are printed if no argument is given.`,
			Action: handleLookup,
		},
		{
			Name:      "decodecall",
			Usage:     "Decode method call data using the signature DB",
			UsageText: "decodecall [--json] <hex>",
			Description: `decodecall [--json] <hex>

The method is looked up by the selector of the call data, its signature is
printed before the arguments.`,
			Action: handleDecodeCall,
			Flags:  []cli.Flag{jsonFlag},
		},
	}
}

var (
	regexSignature = regexp.MustCompile(`^\s*(function\s|event\s|[A-Za-z_][A-Za-z0-9_]*\s*\()`)
	regexTuple     = regexp.MustCompile(`^\s*tuple\s*\(`)
)

// isSignature distinguishes signatures from tuple types.
func isSignature(s string) bool {
	return regexSignature.MatchString(s) && !regexTuple.MatchString(s)
}

func handleParse(ctx *cli.Context) error {
	env := options.GetEnvFromContext(ctx)
	arg, exitErr := cmdargs.GetSingleArg(ctx, "<type|signature>")
	if exitErr != nil {
		return exitErr
	}
	var v any
	if isSignature(arg) {
		f, err := env.Cache.Get(arg)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		v = f
	} else {
		p, err := env.Coder.ParseParamType(arg)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		v = p
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	_, _ = ctx.App.Writer.Write(out)
	return nil
}

func handleEncode(ctx *cli.Context) error {
	env := options.GetEnvFromContext(ctx)
	types, err := getTypes(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	values, err := cmdargs.ParseValues(ctx.String("values"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	env.Log.Debug("encoding", zap.Strings("types", types), zap.Int("values", len(values)))
	res, err := env.Coder.Encode(types, values)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, res)
	return nil
}

func handleDecode(ctx *cli.Context) error {
	env := options.GetEnvFromContext(ctx)
	types, err := getTypes(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	arg, exitErr := cmdargs.GetSingleArg(ctx, "<hex>")
	if exitErr != nil {
		return exitErr
	}
	data, err := cmdargs.DecodeHex(arg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	env.Log.Debug("decoding", zap.Strings("types", types), zap.Int("bytes", len(data)))
	res, err := env.Coder.Decode(types, data)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return printResult(ctx.App.Writer, res, ctx.Bool("json"))
}

func handleSelector(ctx *cli.Context) error {
	f, err := getFragment(ctx)
	if err != nil {
		return err
	}
	if f.Type != abi.FunctionType {
		return cli.NewExitError(fmt.Errorf("%w: %s", contract.ErrNotFunction, f.Signature()), 1)
	}
	id := contract.MethodID(f)
	fmt.Fprintf(ctx.App.Writer, "0x%x\n", id)
	return nil
}

func handleTopic(ctx *cli.Context) error {
	f, err := getFragment(ctx)
	if err != nil {
		return err
	}
	id := contract.EventID(f)
	fmt.Fprintf(ctx.App.Writer, "0x%x\n", id)
	return nil
}

func handleChecksum(ctx *cli.Context) error {
	arg, exitErr := cmdargs.GetSingleArg(ctx, "<address>")
	if exitErr != nil {
		return exitErr
	}
	addr, err := address.FromString(arg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, address.Checksum(addr))
	return nil
}

func handleCalldata(ctx *cli.Context) error {
	env := options.GetEnvFromContext(ctx)
	f, err := getFragment(ctx)
	if err != nil {
		return err
	}
	values, err := cmdargs.ParseValues(ctx.String("values"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	data, err := contract.EncodeFunctionCall(env.Coder, f, values)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "0x%x\n", data)
	return nil
}

func handleDecodeLog(ctx *cli.Context) error {
	env := options.GetEnvFromContext(ctx)
	var (
		f   *abi.Fragment
		err error
	)
	if ctx.NArg() != 0 {
		f, err = getFragment(ctx)
		if err != nil {
			return err
		}
	}
	data, err := cmdargs.DecodeHex(ctx.String("data"))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("data: %w", err), 1)
	}
	var topics [][]byte
	for i, s := range ctx.StringSlice("topic") {
		topic, err := cmdargs.DecodeHex(s)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("topic #%d: %w", i, err), 1)
		}
		topics = append(topics, topic)
	}
	var res *abi.Result
	if f == nil {
		db, err := env.SignatureDB()
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		f, res, err = db.DecodeLog(data, topics)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Fprintln(ctx.App.Writer, f.String())
	} else {
		env.Log.Debug("decoding log", zap.String("event", f.Signature()), zap.Int("topics", len(topics)))
		res, err = contract.DecodeLog(env.Coder, f, data, topics)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	return printResult(ctx.App.Writer, res, ctx.Bool("json"))
}

func handleRegister(ctx *cli.Context) error {
	env := options.GetEnvFromContext(ctx)
	abiFile := ctx.String("abi")
	if abiFile == "" && ctx.NArg() == 0 {
		return cli.NewExitError(fmt.Errorf("%w: <signature> or --abi", cmdargs.ErrMissingParameter), 1)
	}
	db, err := env.SignatureDB()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if abiFile != "" {
		raw, err := os.ReadFile(abiFile)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("can't read ABI file: %w", err), 1)
		}
		iface, err := contract.ParseJSON(raw)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("can't parse ABI file: %w", err), 1)
		}
		n, err := db.AddInterface(iface)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		env.Log.Debug("ABI imported", zap.String("file", abiFile), zap.Int("signatures", n))
		fmt.Fprintf(ctx.App.Writer, "%d signatures registered\n", n)
	}
	for _, sig := range ctx.Args() {
		f, err := db.AddSignature(sig)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("%s: %w", sig, err), 1)
		}
		fmt.Fprintf(ctx.App.Writer, "%s %s\n", fragmentID(f), f.String())
	}
	return nil
}

func handleLookup(ctx *cli.Context) error {
	if ctx.NArg() > 1 {
		return cli.NewExitError(fmt.Errorf("unexpected argument: %s", ctx.Args().Get(1)), 1)
	}
	db, err := options.GetEnvFromContext(ctx).SignatureDB()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	var fragments []abi.Fragment
	if ctx.NArg() == 0 {
		fragments, err = db.All()
	} else {
		var id []byte
		id, err = cmdargs.DecodeHex(ctx.Args().First())
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		switch len(id) {
		case contract.SelectorSize:
			var sel [contract.SelectorSize]byte
			copy(sel[:], id)
			fragments, err = db.Methods(sel)
			if err == nil && len(fragments) == 0 {
				err = fmt.Errorf("%w: 0x%x", contract.ErrUnknownSelector, sel)
			}
		case 32:
			var topic [32]byte
			copy(topic[:], id)
			fragments, err = db.Events(topic)
			if err == nil && len(fragments) == 0 {
				err = fmt.Errorf("%w: 0x%x", contract.ErrUnknownTopic, topic)
			}
		default:
			err = fmt.Errorf("%w: expected 4-byte selector or 32-byte topic, got %d bytes", cmdargs.ErrInvalidParameter, len(id))
		}
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	for i := range fragments {
		fmt.Fprintf(ctx.App.Writer, "%s %s\n", fragmentID(&fragments[i]), fragments[i].String())
	}
	return nil
}

func handleDecodeCall(ctx *cli.Context) error {
	arg, exitErr := cmdargs.GetSingleArg(ctx, "<hex>")
	if exitErr != nil {
		return exitErr
	}
	data, err := cmdargs.DecodeHex(arg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	db, err := options.GetEnvFromContext(ctx).SignatureDB()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	f, res, err := db.DecodeCall(data)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, f.String())
	return printResult(ctx.App.Writer, res, ctx.Bool("json"))
}

// fragmentID returns the hex selector of a method or the topic of an event.
func fragmentID(f *abi.Fragment) string {
	if f.Type == abi.EventType {
		id := contract.EventID(f)
		return "0x" + hex.EncodeToString(id[:])
	}
	id := contract.MethodID(f)
	return "0x" + hex.EncodeToString(id[:])
}

func getFragment(ctx *cli.Context) (*abi.Fragment, error) {
	sig, exitErr := cmdargs.GetSingleArg(ctx, "<signature>")
	if exitErr != nil {
		return nil, exitErr
	}
	f, err := options.GetEnvFromContext(ctx).Cache.Get(sig)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	return f, nil
}

func getTypes(ctx *cli.Context) ([]string, error) {
	if !ctx.IsSet("types") {
		return nil, fmt.Errorf("%w: --types", cmdargs.ErrMissingParameter)
	}
	return abi.SplitNesting(ctx.String("types"))
}

func printResult(w io.Writer, res *abi.Result, asJSON bool) error {
	if asJSON {
		out, err := json.MarshalIndent(toJSON(res), "", "  ")
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}
	for i := 0; i < res.Len(); i++ {
		var prefix string
		if name := res.NameOf(i); name != "" {
			prefix = name + ": "
		}
		v := toJSON(res.Index(i))
		if s, ok := v.(string); ok {
			fmt.Fprintf(w, "%s%s\n", prefix, s)
			continue
		}
		out, err := json.Marshal(v)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Fprintf(w, "%s%s\n", prefix, out)
	}
	return nil
}

// toJSON converts decoded values into JSON-friendly form: numbers are kept
// as JSON numbers, byte values become hex strings and results with all
// values named become ordered objects.
func toJSON(v any) any {
	switch v := v.(type) {
	case *big.Int:
		return json.Number(v.String())
	case []byte:
		return "0x" + hex.EncodeToString(v)
	case *abi.Result:
		if v.Len() != 0 && len(v.Names()) == v.Len() {
			obj := make(json.OrderedObject, v.Len())
			for i := 0; i < v.Len(); i++ {
				obj[i] = json.Member{Key: v.NameOf(i), Value: toJSON(v.Index(i))}
			}
			return obj
		}
		list := make([]any, v.Len())
		for i := range list {
			list[i] = toJSON(v.Index(i))
		}
		return list
	}
	return v
}
