// Package ir defines the intermediate representation shared by every
// front-end and back-end: a closed set of 24 instruction variants that the
// bytecode codec, the decompilers, and the VM all agree on.
package ir

import "fmt"

// Op identifies an instruction variant. The zero value is not a valid Op;
// use the named constants below.
type Op uint8

const (
	_ Op = iota

	// Stack
	Push
	Duplicate
	Copy
	Swap
	Discard
	Slide

	// Arithmetic
	Add
	Sub
	Mul
	Div
	Mod

	// Heap
	Store
	Retrieve

	// Flow
	Mark
	Call
	Jump
	JumpIfZero
	JumpIfNegative
	Return
	Exit

	// I/O
	PutChar
	PutNum
	GetChar
	GetNum
)

var names = map[Op]string{
	Push: "Push", Duplicate: "Duplicate", Copy: "Copy", Swap: "Swap",
	Discard: "Discard", Slide: "Slide",
	Add: "Add", Sub: "Sub", Mul: "Mul", Div: "Div", Mod: "Mod",
	Store: "Store", Retrieve: "Retrieve",
	Mark: "Mark", Call: "Call", Jump: "Jump",
	JumpIfZero: "JumpIfZero", JumpIfNegative: "JumpIfNegative",
	Return: "Return", Exit: "Exit",
	PutChar: "PutChar", PutNum: "PutNum", GetChar: "GetChar", GetNum: "GetNum",
}

func (op Op) String() string {
	if name, ok := names[op]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// HasOperand reports whether instructions of this Op carry a signed 64-bit
// operand. Every other Op's operand is always zero.
func (op Op) HasOperand() bool {
	switch op {
	case Push, Copy, Slide, Mark, Call, Jump, JumpIfZero, JumpIfNegative:
		return true
	default:
		return false
	}
}

// Instruction is one IR record: an Op plus its operand (zero when the Op
// carries none). Instructions are immutable value types; equality and
// copying are plain structural Go semantics.
type Instruction struct {
	Op      Op
	Operand int64
}

func (i Instruction) String() string {
	if i.Op.HasOperand() {
		return fmt.Sprintf("%s(%d)", i.Op, i.Operand)
	}
	return i.Op.String()
}

// Constructors. Each mirrors one row of spec.md's instruction table; the
// ones without an operand take none and always produce a zero Operand.

func NewPush(n int64) Instruction           { return Instruction{Op: Push, Operand: n} }
func NewDuplicate() Instruction             { return Instruction{Op: Duplicate} }
func NewCopy(n int64) Instruction           { return Instruction{Op: Copy, Operand: n} }
func NewSwap() Instruction                  { return Instruction{Op: Swap} }
func NewDiscard() Instruction               { return Instruction{Op: Discard} }
func NewSlide(n int64) Instruction          { return Instruction{Op: Slide, Operand: n} }
func NewAdd() Instruction                   { return Instruction{Op: Add} }
func NewSub() Instruction                   { return Instruction{Op: Sub} }
func NewMul() Instruction                   { return Instruction{Op: Mul} }
func NewDiv() Instruction                   { return Instruction{Op: Div} }
func NewMod() Instruction                   { return Instruction{Op: Mod} }
func NewStore() Instruction                 { return Instruction{Op: Store} }
func NewRetrieve() Instruction              { return Instruction{Op: Retrieve} }
func NewMark(id int64) Instruction          { return Instruction{Op: Mark, Operand: id} }
func NewCall(id int64) Instruction          { return Instruction{Op: Call, Operand: id} }
func NewJump(id int64) Instruction          { return Instruction{Op: Jump, Operand: id} }
func NewJumpIfZero(id int64) Instruction    { return Instruction{Op: JumpIfZero, Operand: id} }
func NewJumpIfNegative(id int64) Instruction {
	return Instruction{Op: JumpIfNegative, Operand: id}
}
func NewReturn() Instruction  { return Instruction{Op: Return} }
func NewExit() Instruction    { return Instruction{Op: Exit} }
func NewPutChar() Instruction { return Instruction{Op: PutChar} }
func NewPutNum() Instruction  { return Instruction{Op: PutNum} }
func NewGetChar() Instruction { return Instruction{Op: GetChar} }
func NewGetNum() Instruction  { return Instruction{Op: GetNum} }

// FailLabel is the reserved label id Brainfuck/Ook! lowering uses to signal
// tape-pointer underflow (spec.md §9, "Brainfuck FAIL label").
const FailLabel int64 = -1
