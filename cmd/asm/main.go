// Command asm assembles 6502 source into a raw binary image, plus an
// optional plain-text listing of addresses, bytes and source line numbers.
package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/corewerks/nmos6502/asm"
)

func assembleFile(srcPath, outPath, listPath string) error {
	data, err := ioutil.ReadFile(srcPath)
	if err != nil {
		return err
	}

	out := asm.Assemble(string(data))

	if len(out.Errors) > 0 {
		for _, e := range out.Errors {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return cli.NewExitError(fmt.Sprintf("%d error(s) assembling %s", len(out.Errors), srcPath), 1)
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".bin"
	}
	if err := ioutil.WriteFile(outPath, out.Bytes, 0644); err != nil {
		return err
	}

	if listPath != "" {
		if err := ioutil.WriteFile(listPath, []byte(listing(out)), 0644); err != nil {
			return err
		}
	}

	fmt.Printf("%s: %d bytes at $%04X\n", outPath, len(out.Bytes), out.BaseAddress)
	return nil
}

func listing(out asm.AssemblerOutput) string {
	var sb strings.Builder
	addr := out.BaseAddress
	for addr < out.BaseAddress+uint16(len(out.Bytes)) {
		line, ok := out.SourceMap.LineForAddress(addr)
		start, end, _ := out.SourceMap.AddressRangeForLine(line)
		if !ok || end <= start {
			addr++
			continue
		}
		chunk := out.Bytes[start-out.BaseAddress : end-out.BaseAddress]
		fmt.Fprintf(&sb, "%04X ", start)
		for _, b := range chunk {
			fmt.Fprintf(&sb, "%02X ", b)
		}
		fmt.Fprintf(&sb, "\t; line %d\n", line)
		addr = end
	}
	return sb.String()
}

func main() {
	app := cli.NewApp()
	app.Name = "asm"
	app.Usage = "assemble 6502 source into a raw binary image"
	app.ArgsUsage = "source.asm"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "out",
			Usage: "output binary path (default: source with .bin extension)",
		},
		cli.StringFlag{
			Name:  "listing",
			Usage: "optional path to write an address/byte/source listing",
		},
	}
	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.NewExitError("missing source file argument", 1)
		}
		return assembleFile(c.Args().First(), c.String("out"), c.String("listing"))
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("asm: %v", err)
	}
}
