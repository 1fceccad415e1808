package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/lcox74/bfcc/internal/core"
)

var irCommand = cli.Command{
	Name:      "ir",
	Usage:     "dump the optimised intermediate representation",
	ArgsUsage: "<file>",
	Flags:     []cli.Flag{optFlag(0)},
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

		fmt.Print(core.Dump(ops))
		return nil
	},
}
