package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"
	"golang.org/x/sys/unix"

	"github.com/lcox74/bfcc/internal/codegen/linux"
)

var buildCommand = cli.Command{
	Name:      "build",
	Usage:     "produce a standalone ELF64 Linux executable",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		optFlag(2),
		cli.StringFlag{Name: "o", Usage: "output file (default: input file with a trailing .bf removed)"},
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
			outFile = strings.TrimSuffix(file, ".bf")
		}

		image := linux.NewX86_64Generator(ops).GenerateELF()
		if err := os.WriteFile(outFile, image, 0644); err != nil {
			return diagf(1, "%v", err)
		}
		if err := unix.Chmod(outFile, 0775); err != nil {
			return diagf(1, "%v", err)
		}

		fmt.Printf("built %s -> %s\n", file, outFile)
		return nil
	},
}
