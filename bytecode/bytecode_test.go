package bytecode

import (
	"bytes"
	"io"
	"testing"

	"esobase/ir"
)

// TestRoundTripAllVariants is spec.md §8 scenario 6: writing then reading
// one of every instruction variant yields the identical sequence back.
func TestRoundTripAllVariants(t *testing.T) {
	instrs := []ir.Instruction{
		ir.NewPush(-1), ir.NewDuplicate(), ir.NewCopy(1), ir.NewSwap(),
		ir.NewDiscard(), ir.NewSlide(2), ir.NewAdd(), ir.NewSub(), ir.NewMul(),
		ir.NewDiv(), ir.NewMod(), ir.NewStore(), ir.NewRetrieve(),
		ir.NewMark(-1), ir.NewCall(1), ir.NewJump(-1), ir.NewJumpIfZero(1),
		ir.NewJumpIfNegative(-1), ir.NewReturn(), ir.NewExit(), ir.NewPutChar(),
		ir.NewPutNum(), ir.NewGetChar(), ir.NewGetNum(),
	}

	var buf bytes.Buffer
	if err := AssembleSlice(&buf, instrs); err != nil {
		t.Fatalf("assemble: %v", err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))
	for i, want := range instrs {
		code, operand, err := r.ReadNext()
		if err != nil {
			t.Fatalf("instr %d: ReadNext: %v", i, err)
		}
		op, ok := FromOpcode(code)
		if !ok {
			t.Fatalf("instr %d: unknown opcode %v", i, code)
		}
		got := ir.Instruction{Op: op, Operand: operand}
		if got != want {
			t.Errorf("instr %d: got %v, want %v", i, got, want)
		}
	}

	if _, _, err := r.ReadNext(); err != io.EOF {
		t.Errorf("expected io.EOF at end of stream, got %v", err)
	}
}

func TestSingleInstructionRoundTrip(t *testing.T) {
	for _, instr := range []ir.Instruction{
		ir.NewPush(42), ir.NewDuplicate(), ir.NewMark(7), ir.NewExit(),
	} {
		var buf bytes.Buffer
		if err := NewWriter(&buf).Write(instr); err != nil {
			t.Fatalf("write %v: %v", instr, err)
		}
		r := NewReader(bytes.NewReader(buf.Bytes()))
		code, operand, err := r.ReadNext()
		if err != nil {
			t.Fatalf("read %v: %v", instr, err)
		}
		op, _ := FromOpcode(code)
		got := ir.Instruction{Op: op, Operand: operand}
		if got != instr {
			t.Errorf("got %v, want %v", got, instr)
		}
	}
}

func TestAssembleRejectsDuplicateMark(t *testing.T) {
	instrs := []ir.Instruction{
		ir.NewMark(1), ir.NewPush(1), ir.NewMark(1), ir.NewExit(),
	}
	var buf bytes.Buffer
	err := AssembleSlice(&buf, instrs)
	if err == nil {
		t.Fatal("expected DuplicateMark error, got nil")
	}
	ce, ok := err.(CodecError)
	if !ok || ce.Kind != DuplicateMark {
		t.Fatalf("got %v, want CodecError{Kind: DuplicateMark}", err)
	}
}

func TestOpcodeByteValues(t *testing.T) {
	tests := []struct {
		op   Opcode
		want byte
	}{
		{OpPush, 0x33}, {OpDuplicate, 0x34}, {OpCopy, 0x38}, {OpSwap, 0x36},
		{OpDiscard, 0x35}, {OpSlide, 0x39},
		{OpAdd, 0x80}, {OpSub, 0x82}, {OpMul, 0x81}, {OpDiv, 0x88}, {OpMod, 0x8A},
		{OpStore, 0xA3}, {OpRetrieve, 0xAB},
		{OpMark, 0x70}, {OpCall, 0x72}, {OpJump, 0x71},
		{OpJumpIfZero, 0x78}, {OpJumpIfNegative, 0x7A}, {OpReturn, 0x79}, {OpExit, 0x75},
		{OpPutChar, 0x90}, {OpPutNum, 0x92}, {OpGetChar, 0x98}, {OpGetNum, 0x9A},
	}
	for _, tt := range tests {
		if byte(tt.op) != tt.want {
			t.Errorf("%s = 0x%02X, want 0x%02X", tt.op, byte(tt.op), tt.want)
		}
	}
}

func TestEndOfFileMidOperandIsError(t *testing.T) {
	// A Push opcode byte with only 3 of its 8 operand bytes present.
	buf := []byte{byte(OpPush), 0, 0, 0}
	r := NewReader(bytes.NewReader(buf))
	_, _, err := r.ReadNext()
	if err != io.ErrUnexpectedEOF {
		t.Errorf("got %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestInvalidOpcodeByte(t *testing.T) {
	buf := []byte{0xFF}
	r := NewReader(bytes.NewReader(buf))
	_, _, err := r.ReadNext()
	if _, ok := err.(CodecError); !ok {
		t.Errorf("got %v (%T), want CodecError", err, err)
	}
}

func TestSeekAndTell(t *testing.T) {
	instrs := []ir.Instruction{ir.NewPush(5), ir.NewMark(1), ir.NewExit()}
	var buf bytes.Buffer
	AssembleSlice(&buf, instrs)

	r := NewReader(bytes.NewReader(buf.Bytes()))
	if r.Tell() != 0 {
		t.Fatalf("initial Tell() = %d, want 0", r.Tell())
	}
	if _, _, err := r.ReadNext(); err != nil { // Push(5): 9 bytes
		t.Fatal(err)
	}
	if r.Tell() != 9 {
		t.Fatalf("Tell() after Push = %d, want 9", r.Tell())
	}
	markPos := r.Tell()
	if _, _, err := r.ReadNext(); err != nil { // Mark(1): 9 bytes
		t.Fatal(err)
	}
	if err := r.Seek(markPos); err != nil {
		t.Fatal(err)
	}
	code, operand, err := r.ReadNext()
	if err != nil || code != OpMark || operand != 1 {
		t.Fatalf("re-read after seek: code=%v operand=%d err=%v", code, operand, err)
	}
}
