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

// compileCmd lowers a source file in one of the five front-end syntaxes
// to the flat bytecode encoding (spec.md §6).
type compileCmd struct {
	syntax string
	output string
}

func (*compileCmd) Name() string     { return "compile" }
func (*compileCmd) Synopsis() string { return "Compile a source file to bytecode" }
func (*compileCmd) Usage() string {
	return `compile -syntax <name> -o <file> <source>:
  Compile source in one of whitespace, dt, assembly, brainfuck, ook to
  bytecode.
`
}

func (c *compileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.syntax, "syntax", "whitespace", "front-end syntax to compile")
	f.StringVar(&c.output, "o", "", "output bytecode file (default: <source>.esc)")
}

func (c *compileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 source file not provided\n")
		return subcommands.ExitUsageError
	}
	sourceFile := args[0]

	front, err := lookupFrontEnd(c.syntax)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(sourceFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read source: %v\n", err)
		return subcommands.ExitFailure
	}

	instrs, err := front.compiler.Compile(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 compile error: %v\n", err)
		return subcommands.ExitFailure
	}

	var buf bytes.Buffer
	if err := bytecode.AssembleSlice(&buf, instrs); err != nil {
		fmt.Fprintf(os.Stderr, "💥 assemble error: %v\n", err)
		return subcommands.ExitFailure
	}

	outputFile := c.output
	if outputFile == "" {
		outputFile = sourceFile + ".esc"
	}
	if err := os.WriteFile(outputFile, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to write bytecode: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
