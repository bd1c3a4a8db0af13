package whitespace

import (
	"io"
	"strconv"

	"esobase/bytecode"
	"esobase/ir"
)

// Decompile inverts Compile: it reads bytecode and writes Whitespace
// source using Space/Tab/LF glyphs (spec.md §4.3).
func Decompile(r *bytecode.Reader, w io.Writer) error {
	return DecompileGlyphs(r, w, " ", "\t", "\n")
}

// DecompileGlyphs is Decompile parameterized over the three glyphs used
// for Space/Tab/LF, so DT (package esobase/syntax/dt) can reuse the same
// logic with its own multi-byte UTF-8 graphemes (spec.md §4.2.2).
func DecompileGlyphs(r *bytecode.Reader, w io.Writer, sp, tb, lf string) error {
	d := &decompiler{w: w, sp: sp, tb: tb, lf: lf}
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
		if err := d.emit(op, operand); err != nil {
			return err
		}
	}
}

type decompiler struct {
	w          io.Writer
	sp, tb, lf string
}

func (d *decompiler) str(s string) error {
	_, err := io.WriteString(d.w, s)
	return err
}

func (d *decompiler) tok(t Token) string {
	switch t {
	case Space:
		return d.sp
	case Tab:
		return d.tb
	default:
		return d.lf
	}
}

func (d *decompiler) seq(tokens ...Token) error {
	for _, t := range tokens {
		if err := d.str(d.tok(t)); err != nil {
			return err
		}
	}
	return nil
}

// number writes sign+bits+LF for n, in the same S/T/N (or DT-glyph)
// alphabet as every other token.
func (d *decompiler) number(n int64) error {
	sign := Space
	magnitude := n
	if n < 0 {
		sign = Tab
		magnitude = -n
	}
	if err := d.str(d.tok(sign)); err != nil {
		return err
	}
	return d.bits(magnitude)
}

// label writes the same sign+bits+LF shape as number: after compilation a
// label is just an integer id (spec.md §4.3: "no attempt is made to
// recover original textual label names").
func (d *decompiler) label(id int64) error {
	return d.number(id)
}

func (d *decompiler) bits(magnitude int64) error {
	bits := strconv.FormatInt(magnitude, 2)
	for _, b := range bits {
		if b == '0' {
			if err := d.str(d.tok(Space)); err != nil {
				return err
			}
		} else {
			if err := d.str(d.tok(Tab)); err != nil {
				return err
			}
		}
	}
	return d.str(d.tok(LF))
}

func (d *decompiler) emit(op ir.Op, operand int64) error {
	switch op {
	case ir.Push:
		if err := d.seq(Space, Space); err != nil {
			return err
		}
		return d.number(operand)
	case ir.Duplicate:
		return d.seq(Space, LF, Space)
	case ir.Swap:
		return d.seq(Space, LF, Tab)
	case ir.Discard:
		return d.seq(Space, LF, LF)
	case ir.Copy:
		if err := d.seq(Space, Tab, Space); err != nil {
			return err
		}
		return d.number(operand)
	case ir.Slide:
		if err := d.seq(Space, Tab, LF); err != nil {
			return err
		}
		return d.number(operand)
	case ir.Add:
		return d.seq(Tab, Space, Space, Space)
	case ir.Sub:
		return d.seq(Tab, Space, Space, Tab)
	case ir.Mul:
		return d.seq(Tab, Space, Space, LF)
	case ir.Div:
		return d.seq(Tab, Space, Tab, Space)
	case ir.Mod:
		return d.seq(Tab, Space, Tab, Tab)
	case ir.Store:
		return d.seq(Tab, Tab, Space)
	case ir.Retrieve:
		return d.seq(Tab, Tab, Tab)
	case ir.Mark:
		if err := d.seq(LF, Space, Space); err != nil {
			return err
		}
		return d.label(operand)
	case ir.Call:
		if err := d.seq(LF, Space, Tab); err != nil {
			return err
		}
		return d.label(operand)
	case ir.Jump:
		if err := d.seq(LF, Space, LF); err != nil {
			return err
		}
		return d.label(operand)
	case ir.JumpIfZero:
		if err := d.seq(LF, Tab, Space); err != nil {
			return err
		}
		return d.label(operand)
	case ir.JumpIfNegative:
		if err := d.seq(LF, Tab, Tab); err != nil {
			return err
		}
		return d.label(operand)
	case ir.Return:
		return d.seq(LF, Tab, LF)
	case ir.Exit:
		return d.seq(LF, LF, LF)
	case ir.PutChar:
		return d.seq(Tab, LF, Space, Space)
	case ir.PutNum:
		return d.seq(Tab, LF, Space, Tab)
	case ir.GetChar:
		return d.seq(Tab, LF, Tab, Space)
	case ir.GetNum:
		return d.seq(Tab, LF, Tab, Tab)
	}
	return nil
}
