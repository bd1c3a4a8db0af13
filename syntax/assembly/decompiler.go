package assembly

import (
	"fmt"
	"io"

	"esobase/bytecode"
	"esobase/ir"
)

// Decompile writes assembly mnemonics for a bytecode stream. Numeric
// operands are written in decimal; label operands (already plain
// integers once compiled — the original textual label name is gone) are
// written in hexadecimal (spec.md §4.3).
func Decompile(r *bytecode.Reader, w io.Writer) error {
	for {
		code, operand, err := r.ReadNext()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		op, ok := bytecode.FromOpcode(code)
		if !ok {
			return err
		}
		if err := writeLine(w, op, operand); err != nil {
			return err
		}
	}
}

func writeLine(w io.Writer, op ir.Op, operand int64) error {
	var err error
	switch op {
	case ir.Push:
		_, err = fmt.Fprintf(w, "PUSH %d\n", operand)
	case ir.Duplicate:
		_, err = fmt.Fprintln(w, "DUP")
	case ir.Copy:
		_, err = fmt.Fprintf(w, "COPY %d\n", operand)
	case ir.Swap:
		_, err = fmt.Fprintln(w, "SWAP")
	case ir.Discard:
		_, err = fmt.Fprintln(w, "DISCARD")
	case ir.Slide:
		_, err = fmt.Fprintf(w, "SLIDE %d\n", operand)
	case ir.Add:
		_, err = fmt.Fprintln(w, "ADD")
	case ir.Sub:
		_, err = fmt.Fprintln(w, "SUB")
	case ir.Mul:
		_, err = fmt.Fprintln(w, "MUL")
	case ir.Div:
		_, err = fmt.Fprintln(w, "DIV")
	case ir.Mod:
		_, err = fmt.Fprintln(w, "MOD")
	case ir.Store:
		_, err = fmt.Fprintln(w, "STORE")
	case ir.Retrieve:
		_, err = fmt.Fprintln(w, "RETRIEVE")
	case ir.Mark:
		_, err = fmt.Fprintf(w, "MARK %X\n", operand)
	case ir.Call:
		_, err = fmt.Fprintf(w, "CALL %X\n", operand)
	case ir.Jump:
		_, err = fmt.Fprintf(w, "JUMP %X\n", operand)
	case ir.JumpIfZero:
		_, err = fmt.Fprintf(w, "JUMPZ %X\n", operand)
	case ir.JumpIfNegative:
		_, err = fmt.Fprintf(w, "JUMPN %X\n", operand)
	case ir.Return:
		_, err = fmt.Fprintln(w, "RETURN")
	case ir.Exit:
		_, err = fmt.Fprintln(w, "EXIT")
	case ir.PutChar:
		_, err = fmt.Fprintln(w, "PUTC")
	case ir.PutNum:
		_, err = fmt.Fprintln(w, "PUTN")
	case ir.GetChar:
		_, err = fmt.Fprintln(w, "GETC")
	case ir.GetNum:
		_, err = fmt.Fprintln(w, "GETN")
	}
	return err
}
