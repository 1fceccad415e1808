package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/lcox74/bfcc/internal/core"
)

var tokensCommand = cli.Command{
	Name:      "tokens",
	Usage:     "dump tokenizer output",
	ArgsUsage: "<file>",
	Action: func(c *cli.Context) error {
		file, err := requireOneArg(c)
		if err != nil {
			return err
		}

		src, err := readSource(file)
		if err != nil {
			return diagf(1, "%v", err)
		}

		for _, tok := range core.Tokenize(src) {
			fmt.Printf("%d:%d\t%v\n", tok.Pos.Line, tok.Pos.Column, tok.Kind)
		}
		return nil
	},
}
