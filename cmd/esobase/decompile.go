package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"esobase/bytecode"
)

// decompileCmd inverts compile: it reads a bytecode file and emits
// surface syntax text, available for whitespace, dt, and assembly
// (spec.md §4.3).
type decompileCmd struct {
	syntax string
	output string
}

func (*decompileCmd) Name() string     { return "decompile" }
func (*decompileCmd) Synopsis() string { return "Decompile bytecode back to surface syntax" }
func (*decompileCmd) Usage() string {
	return `decompile -syntax <name> -o <file> <bytecode>:
  Decompile bytecode to one of whitespace, dt, assembly source.
`
}

func (c *decompileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.syntax, "syntax", "assembly", "surface syntax to decompile to")
	f.StringVar(&c.output, "o", "", "output source file (default: stdout)")
}

func (c *decompileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 bytecode file not provided\n")
		return subcommands.ExitUsageError
	}

	decompiler, err := lookupDecompiler(c.syntax)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read bytecode: %v\n", err)
		return subcommands.ExitFailure
	}

	var out bytes.Buffer
	reader := bytecode.NewReader(bytes.NewReader(data))
	if err := decompiler.Decompile(reader, &out); err != nil {
		fmt.Fprintf(os.Stderr, "💥 decompile error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output == "" {
		os.Stdout.Write(out.Bytes())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, out.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to write source: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
