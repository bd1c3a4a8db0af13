// Package syntax defines the small, uniform contract every front-end and
// back-end implements (spec.md §9: "a small interface abstraction
// parameterized only over the input/output stream types"), plus a
// convenience wrapper that runs source straight through to execution
// without an intermediate bytecode file — a feature the original
// implementation offered (original_source/src/machine.rs's
// Interpreter<S> trait) that the distilled spec dropped and SPEC_FULL §10
// restores.
package syntax

import (
	"bytes"
	"io"

	"esobase/bytecode"
	"esobase/ir"
	"esobase/vm"
)

// Compiler lowers one surface syntax's source text to IR.
type Compiler interface {
	Compile(src string) ([]ir.Instruction, error)
}

// CompilerFunc adapts a plain function to Compiler.
type CompilerFunc func(src string) ([]ir.Instruction, error)

func (f CompilerFunc) Compile(src string) ([]ir.Instruction, error) { return f(src) }

// Decompiler inverts a Compiler: it reads bytecode and writes surface
// syntax text.
type Decompiler interface {
	Decompile(r *bytecode.Reader, w io.Writer) error
}

// DecompilerFunc adapts a plain function to Decompiler.
type DecompilerFunc func(r *bytecode.Reader, w io.Writer) error

func (f DecompilerFunc) Decompile(r *bytecode.Reader, w io.Writer) error { return f(r, w) }

// RunSource compiles src with c, assembles it to an in-memory bytecode
// buffer, and runs that buffer on a fresh Machine against in/out — the
// same source-to-result shortcut the original implementation's
// Interpreter<S> trait provided.
func RunSource(c Compiler, src string, in vm.Input, out io.Writer) error {
	instrs, err := c.Compile(src)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := bytecode.AssembleSlice(&buf, instrs); err != nil {
		return err
	}

	reader := bytecode.NewReader(bytes.NewReader(buf.Bytes()))
	return vm.New().Run(reader, in, out)
}
