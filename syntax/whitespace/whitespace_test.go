package whitespace

import (
	"bytes"
	"strings"
	"testing"

	"esobase/bytecode"
	"esobase/ir"
)

// helloFragment is the spec §8 scenario 1 excerpt: push the character
// code for 'H', then PutChar, then Exit.
func helloFragment() string {
	// SS (push), sign=Space(+), bits for 72 = "1001000", terminated by N
	// SNSS (putchar is T N S S, not stack family — build by hand instead)
	var b strings.Builder
	b.WriteString("  ")        // SS -> push
	b.WriteString(" ")         // sign: +
	b.WriteString("\t  \t   ") // bits of 72 = 1001000
	b.WriteString("\n")        // terminate number
	b.WriteString("\t\n  ")    // TNSS -> PutChar
	b.WriteString("\n\n\n")    // NNN -> Exit
	return b.String()
}

func TestHelloFragmentCompiles(t *testing.T) {
	instrs, err := Compile(helloFragment())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []ir.Instruction{
		ir.NewPush(72),
		ir.NewPutChar(),
		ir.NewExit(),
	}
	if len(instrs) != len(want) {
		t.Fatalf("got %d instructions, want %d: %v", len(instrs), len(want), instrs)
	}
	for i := range want {
		if instrs[i] != want[i] {
			t.Errorf("instr %d: got %v, want %v", i, instrs[i], want[i])
		}
	}
}

func TestOperandlessInstructions(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want ir.Instruction
	}{
		{"duplicate", " \n ", ir.NewDuplicate()},
		{"swap", " \n\t", ir.NewSwap()},
		{"discard", " \n\n", ir.NewDiscard()},
		{"store", "\t\t ", ir.NewStore()},
		{"retrieve", "\t\t\t", ir.NewRetrieve()},
		{"add", "\t   ", ir.NewAdd()},
		{"sub", "\t  \t", ir.NewSub()},
		{"mul", "\t  \n", ir.NewMul()},
		{"div", "\t \t ", ir.NewDiv()},
		{"mod", "\t \t\t", ir.NewMod()},
		{"return", "\n\t\n", ir.NewReturn()},
		{"exit", "\n\n\n", ir.NewExit()},
		{"putchar", "\t\n  ", ir.NewPutChar()},
		{"putnum", "\t\n \t", ir.NewPutNum()},
		{"getchar", "\t\n\t ", ir.NewGetChar()},
		{"getnum", "\t\n\t\t", ir.NewGetNum()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			instrs, err := Compile(c.src)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if len(instrs) != 1 || instrs[0] != c.want {
				t.Fatalf("got %v, want [%v]", instrs, c.want)
			}
		})
	}
}

func TestUnknownTokenSTT(t *testing.T) {
	_, err := Compile(" \t\t") // STT is undefined
	if err == nil {
		t.Fatal("expected syntax error for STT")
	}
	se, ok := err.(SyntaxError)
	if !ok || se.Prefix != "STT" {
		t.Fatalf("got %v, want SyntaxError{Prefix: STT}", err)
	}
}

func TestUnknownTokenNNS(t *testing.T) {
	_, err := Compile("\n\n ")
	se, ok := err.(SyntaxError)
	if !ok || se.Prefix != "NNS" {
		t.Fatalf("got %v, want SyntaxError{Prefix: NNS}", err)
	}
}

func TestUnexpectedEOFMidPrefix(t *testing.T) {
	_, err := Compile("\t")
	se, ok := err.(SyntaxError)
	if !ok || se.Prefix != "T" {
		t.Fatalf("got %v, want SyntaxError{Prefix: T}", err)
	}
}

func TestEmptyProgramCompiles(t *testing.T) {
	instrs, err := Compile("")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(instrs) != 0 {
		t.Fatalf("got %v, want empty", instrs)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	instrs, err := Compile("hello\nworld\n-comment-\n")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(instrs) != 1 || instrs[0] != ir.NewExit() {
		t.Fatalf("got %v, want [Exit]", instrs)
	}
}

// roundTrip assembles instrs to bytecode, decompiles that bytecode to
// Whitespace text, and returns the result of recompiling the text; callers
// compare it against instrs (spec §8's compile-decompile-compile invariant).
func roundTrip(t *testing.T, instrs []ir.Instruction) []ir.Instruction {
	t.Helper()
	var bc bytes.Buffer
	if err := bytecode.AssembleSlice(&bc, instrs); err != nil {
		t.Fatalf("AssembleSlice: %v", err)
	}
	r := bytecode.NewReader(bytes.NewReader(bc.Bytes()))
	var src bytes.Buffer
	if err := Decompile(r, &src); err != nil {
		t.Fatalf("Decompile: %v", err)
	}
	got, err := Compile(src.String())
	if err != nil {
		t.Fatalf("recompile: %v (src=%q)", err, src.String())
	}
	return got
}

func TestRoundTripArithmeticAndStack(t *testing.T) {
	instrs := []ir.Instruction{
		ir.NewPush(42),
		ir.NewPush(-7),
		ir.NewAdd(),
		ir.NewDuplicate(),
		ir.NewSwap(),
		ir.NewCopy(1),
		ir.NewSlide(0),
		ir.NewDiscard(),
		ir.NewExit(),
	}
	got := roundTrip(t, instrs)
	if len(got) != len(instrs) {
		t.Fatalf("got %v, want %v", got, instrs)
	}
	for i := range instrs {
		if got[i] != instrs[i] {
			t.Errorf("instr %d: got %v, want %v", i, got[i], instrs[i])
		}
	}
}

func TestRoundTripPreservesLabelIdentity(t *testing.T) {
	// Two distinct labels used twice each: identity (equal vs. not-equal
	// among labels) must be preserved, though not necessarily the exact id.
	instrs := []ir.Instruction{
		ir.NewJump(1),
		ir.NewMark(1),
		ir.NewCall(2),
		ir.NewMark(2),
		ir.NewReturn(),
		ir.NewExit(),
	}
	got := roundTrip(t, instrs)
	if len(got) != len(instrs) {
		t.Fatalf("got %v, want same length as %v", got, instrs)
	}
	// jump target (got[0].Operand) must equal the mark id (got[1].Operand),
	// and must differ from the other label's id.
	if got[0].Operand != got[1].Operand {
		t.Errorf("jump/mark label identity not preserved: %v", got)
	}
	if got[2].Operand != got[3].Operand {
		t.Errorf("call/mark label identity not preserved: %v", got)
	}
	if got[0].Operand == got[2].Operand {
		t.Errorf("distinct labels collapsed to same id: %v", got)
	}
}

func TestDecompileZero(t *testing.T) {
	got := roundTrip(t, []ir.Instruction{ir.NewPush(0), ir.NewExit()})
	if len(got) != 2 || got[0] != ir.NewPush(0) {
		t.Fatalf("got %v, want [Push(0) Exit]", got)
	}
}
