// Command disasm disassembles a raw 6502 binary image into assembly
// text. Adapted from the teacher's disassembler CLI, minus the
// cartridge/PRG loading logic that only applied to a specific host.
package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"

	"github.com/urfave/cli"

	"github.com/corewerks/nmos6502/disasm"
)

func disassembleFile(path string, start uint16, opt disasm.FormatOptions) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	instructions := disasm.Disassemble(data, start)
	fmt.Print(disasm.Format(instructions, opt))
	return nil
}

func parseAddress(s string) (uint16, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(v), nil
}

func main() {
	app := cli.NewApp()
	app.Name = "disasm"
	app.Usage = "disassemble a raw 6502 binary image"
	app.ArgsUsage = "image.bin"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "start",
			Usage: "address the first byte of the image loads at (decimal, or 0x-prefixed hex)",
			Value: "0x0000",
		},
		cli.BoolFlag{
			Name:  "offsets",
			Usage: "prefix each line with its address",
		},
		cli.BoolFlag{
			Name:  "hex-dump",
			Usage: "prefix each line with its raw bytes",
		},
	}
	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.NewExitError("missing image file argument", 1)
		}
		start, err := parseAddress(c.String("start"))
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		opt := disasm.FormatOptions{
			ShowOffsets: c.Bool("offsets"),
			HexDump:     c.Bool("hex-dump"),
		}
		if err := disassembleFile(c.Args().First(), start, opt); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("disasm: %v", err)
	}
}
