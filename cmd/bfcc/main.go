// Command bfcc is an ahead-of-time Brainfuck compiler targeting
// standalone Linux x86_64 ELF executables, with GAS assembly, IR
// dump, and interpreter subcommands for inspecting the pipeline.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/lcox74/bfcc/internal/core"
)

// progname derives the diagnostic prefix from argv[0], falling back
// to "bfcc" if it cannot be determined.
func progname() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "bfcc"
	}
	return filepath.Base(os.Args[0])
}

// diagf formats a diagnostic in the "<program-name>: <message>." form
// required of every compilation failure, and wraps it as an exit error.
func diagf(code int, format string, args ...interface{}) error {
	return cli.NewExitError(fmt.Sprintf("%s: %s.", progname(), fmt.Sprintf(format, args...)), code)
}

// optFlag is the -O level flag shared by every subcommand that runs
// the optimiser, with its own per-command default.
func optFlag(def int) cli.IntFlag {
	return cli.IntFlag{Name: "O", Value: def, Usage: "optimization level (0, 1, or 2)"}
}

func parseOptLevel(level int) (core.OptLevel, error) {
	switch level {
	case 0:
		return core.O0, nil
	case 1:
		return core.O1, nil
	case 2:
		return core.O2, nil
	default:
		return core.O0, fmt.Errorf("invalid optimization level: %d (must be 0, 1, or 2)", level)
	}
}

func readSource(file string) ([]byte, error) {
	return os.ReadFile(file)
}

// compile tokenizes, lowers and optimises the source at file to the
// given level. It is the shared front half of every subcommand below.
func compile(file string, level core.OptLevel) ([]core.Op, error) {
	src, err := readSource(file)
	if err != nil {
		return nil, err
	}

	tokens := core.Tokenize(src)
	ops, err := core.Lower(tokens)
	if err != nil {
		return nil, err
	}

	ops = core.OptimiseWithLevel(ops, level)
	log.WithFields(log.Fields{
		"file":  file,
		"level": level,
		"ops":   len(ops),
	}).Debug("bfcc: compilation pipeline complete")

	return ops, nil
}

// requireOneArg pulls the single positional <file> argument a
// subcommand expects, or reports insufficient arguments.
func requireOneArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", diagf(1, "expected exactly one input file")
	}
	return filepath.Clean(c.Args().Get(0)), nil
}

func main() {
	log.SetLevel(log.WarnLevel)

	app := cli.NewApp()
	app.Name = progname()
	app.Usage = "ahead-of-time Brainfuck compiler"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "v, verbose", Usage: "trace the compilation pipeline on stderr"},
	}
	app.Before = func(c *cli.Context) error {
		if c.GlobalBool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}
	app.Action = func(c *cli.Context) error {
		cli.ShowAppHelp(c)
		return nil
	}
	app.Commands = []cli.Command{
		tokensCommand,
		irCommand,
		runCommand,
		asmCommand,
		buildCommand,
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
