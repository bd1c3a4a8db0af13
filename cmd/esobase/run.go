package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"esobase/bytecode"
	"esobase/syntax"
	"esobase/vm"
)

// runCmd executes a program directly: bytecode files run as-is, and a
// -syntax flag compiles source straight through to execution without an
// intermediate bytecode file (the Interpreter convenience dropped from
// the original distillation, restored per the design notes).
type runCmd struct {
	syntax string
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Run a bytecode or source file" }
func (*runCmd) Usage() string {
	return `run [-syntax <name>] <file>:
  Run bytecode directly, or compile-then-run source when -syntax is set.
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.syntax, "syntax", "", "front-end syntax to compile source through before running")
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return subcommands.ExitUsageError
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	stdin := vm.NewStdin(bufio.NewReader(os.Stdin))

	if r.syntax != "" {
		front, err := lookupFrontEnd(r.syntax)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		if err := syntax.RunSource(front.compiler, string(data), stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	reader := bytecode.NewReader(bytes.NewReader(data))
	if err := vm.New().Run(reader, stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
