package bytecode

import (
	"encoding/binary"
	"io"
)

// Reader reads one record at a time from a seekable byte source and
// tracks the current byte offset, which the VM's Call/Return protocol
// needs directly (spec.md §4.1, §9).
type Reader struct {
	r   io.ReadSeeker
	pos int64
}

func NewReader(r io.ReadSeeker) *Reader {
	return &Reader{r: r}
}

// Tell returns the current byte offset.
func (br *Reader) Tell() int64 {
	return br.pos
}

// Seek moves the read cursor to an absolute byte offset.
func (br *Reader) Seek(offset int64) error {
	pos, err := br.r.Seek(offset, io.SeekStart)
	if err != nil {
		return err
	}
	br.pos = pos
	return nil
}

// ReadNext reads exactly one record: one opcode byte, plus an 8-byte
// big-endian operand if that opcode carries one (the operand is 0
// otherwise). End-of-file on the opcode byte is reported as io.EOF, which
// is not itself an error at this layer — callers (the VM's top-level
// loop) decide what an end-of-stream with no Exit means. End-of-file
// partway through an operand is reported as io.ErrUnexpectedEOF.
func (br *Reader) ReadNext() (Opcode, int64, error) {
	var opByte [1]byte
	n, err := io.ReadFull(br.r, opByte[:])
	if n == 0 && err == io.EOF {
		return 0, 0, io.EOF
	}
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			return 0, 0, io.ErrUnexpectedEOF
		}
		return 0, 0, err
	}
	br.pos++

	code := Opcode(opByte[0])
	if _, ok := FromOpcode(code); !ok {
		return 0, 0, newInvalidOpcodeError(opByte[0])
	}

	if !hasOperand(code) {
		return code, 0, nil
	}

	var operandBytes [8]byte
	if _, err := io.ReadFull(br.r, operandBytes[:]); err != nil {
		if err == io.EOF {
			return 0, 0, io.ErrUnexpectedEOF
		}
		return 0, 0, err
	}
	br.pos += 8

	return code, int64(binary.BigEndian.Uint64(operandBytes[:])), nil
}
