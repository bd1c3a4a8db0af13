package bytecode

import (
	"encoding/binary"
	"io"

	"esobase/ir"
)

// Producer is a finite, possibly-lazy sequence of IR instructions. Next
// returns io.EOF (and a zero Instruction) once the sequence is exhausted.
// Any other error aborts assembly immediately.
type Producer interface {
	Next() (ir.Instruction, error)
}

// SliceProducer adapts an already-materialized instruction slice to the
// Producer interface, for front-ends that build their whole IR before
// handing it to the codec.
type SliceProducer struct {
	instrs []ir.Instruction
	pos    int
}

func NewSliceProducer(instrs []ir.Instruction) *SliceProducer {
	return &SliceProducer{instrs: instrs}
}

func (p *SliceProducer) Next() (ir.Instruction, error) {
	if p.pos >= len(p.instrs) {
		return ir.Instruction{}, io.EOF
	}
	i := p.instrs[p.pos]
	p.pos++
	return i, nil
}

// Writer appends instructions' wire form to an underlying byte sink, in
// order, one record at a time.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends one instruction's wire form: the opcode byte, followed by
// an 8-byte big-endian operand for opcodes that carry one. A single write
// either fully succeeds or reports the first I/O failure.
func (bw *Writer) Write(instr ir.Instruction) error {
	code, ok := ToOpcode(instr.Op)
	if !ok {
		return newInvalidOpcodeError(byte(instr.Op))
	}

	if !hasOperand(code) {
		_, err := bw.w.Write([]byte{byte(code)})
		return err
	}

	var buf [9]byte
	buf[0] = byte(code)
	binary.BigEndian.PutUint64(buf[1:], uint64(instr.Operand))
	_, err := bw.w.Write(buf[:])
	return err
}

// Assemble drains a Producer into w, aborting and propagating the first
// error (io.EOF from the producer ends the loop successfully). Marking
// the same label id twice is rejected as DuplicateMark rather than
// silently accepted as last-write-wins (spec.md §9's recommendation for
// the genuinely ambiguous source behavior).
func Assemble(w io.Writer, p Producer) error {
	bw := NewWriter(w)
	seen := make(map[int64]bool)
	for {
		instr, err := p.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if instr.Op == ir.Mark {
			if seen[instr.Operand] {
				return newDuplicateMarkError(instr.Operand)
			}
			seen[instr.Operand] = true
		}
		if err := bw.Write(instr); err != nil {
			return err
		}
	}
}

// AssembleSlice is a convenience wrapper around Assemble for the common
// case of an already-materialized instruction slice.
func AssembleSlice(w io.Writer, instrs []ir.Instruction) error {
	return Assemble(w, NewSliceProducer(instrs))
}
