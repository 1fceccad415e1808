package main

import (
	"github.com/urfave/cli"

	"github.com/lcox74/bfcc/internal/vm"
)

var runCommand = cli.Command{
	Name:      "run",
	Usage:     "compile and interpret a program directly",
	ArgsUsage: "<file>",
	Flags:     []cli.Flag{optFlag(2)},
	Action: func(c *cli.Context) error {
		file, err := requireOneArg(c)
		if err != nil {
			return err
		}

		level, err := parseOptLevel(c.Int("O"))
		if err != nil {
			return diagf(1, "%v", err)
		}

		ops, err := compile(file, level)
		if err != nil {
			return diagf(1, "%v", err)
		}

		interpreter := vm.NewVM()
		if err := interpreter.Run(ops); err != nil {
			return diagf(1, "%v", err)
		}
		return nil
	},
}
