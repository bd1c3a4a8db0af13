package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"esobase/syntax"
	"esobase/vm"
)

// replCmd is an interactive session: each line is appended to a growing
// program buffer and the whole buffer is recompiled and re-run, since
// the VM has no notion of incremental linking (mirrors the tradeoff the
// teacher's own compiled REPL documents for its AST compiler).
type replCmd struct {
	syntax string
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive session for one front-end syntax" }
func (*replCmd) Usage() string {
	return `repl [-syntax <name>]:
  Start an interactive session. Each line is appended to the program and
  the whole thing is recompiled and re-run.
`
}

func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.syntax, "syntax", "assembly", "front-end syntax to interpret")
}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	front, err := lookupFrontEnd(r.syntax)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	rl, err := readline.New(front.name + "> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to start readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "esobase %s session — Ctrl-D to exit\n", front.name)

	var program strings.Builder
	stdin := vm.NewStdin(bufio.NewReader(os.Stdin))

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}

		if program.Len() > 0 {
			program.WriteString("\n")
		}
		program.WriteString(line)

		if runErr := syntax.RunSource(front.compiler, program.String(), stdin, rl.Stdout()); runErr != nil {
			fmt.Fprintf(rl.Stderr(), "💥 %v\n", runErr)
			program.Reset()
		}
	}
}
