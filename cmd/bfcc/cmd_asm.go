package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/lcox74/bfcc/internal/codegen/gas"
)

var asmCommand = cli.Command{
	Name:      "asm",
	Usage:     "emit GAS assembly for the program",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		optFlag(2),
		cli.StringFlag{Name: "o", Usage: "output file (default: input file with .s extension)"},
	},
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

		outFile := c.String("o")
		if outFile == "" {
			outFile = strings.TrimSuffix(file, ".bf") + ".s"
		}

		asm := gas.NewGenerator(ops).Generate()
		if err := os.WriteFile(outFile, []byte(asm), 0644); err != nil {
			return diagf(1, "%v", err)
		}

		fmt.Printf("generated %s -> %s\n", file, outFile)
		return nil
	},
}
