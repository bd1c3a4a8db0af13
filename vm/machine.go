// Package vm implements the stack/heap virtual machine that executes
// bytecode assembled by the bytecode package: a stack, a sparse heap, a
// call/return stack of byte offsets, and a label index resolved lazily by
// forward-scanning the instruction stream (spec.md §4.4, §9).
package vm

import (
	"io"
	"strconv"

	"esobase/bytecode"
)

// Machine holds the state of one run: stack, heap, call stack, and label
// index. A Machine is single-use — construct a new one per run with New.
type Machine struct {
	stack     stack
	heap      heap
	callStack []int64
	labels    map[int64]int64
}

// New returns a Machine with empty stack, heap, call stack, and label
// index.
func New() *Machine {
	return &Machine{heap: make(heap), labels: make(map[int64]int64)}
}

// Run executes program from its current position against in and out,
// until an Exit instruction halts it successfully or a failure occurs.
// End-of-stream reached without an Exit is reported as
// MissingExitInstruction.
func (m *Machine) Run(program *bytecode.Reader, in Input, out io.Writer) error {
	for {
		halted, err := m.step(program, in, out)
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// step executes exactly one instruction, returning true when Exit was
// reached.
func (m *Machine) step(program *bytecode.Reader, in Input, out io.Writer) (bool, error) {
	code, operand, err := program.ReadNext()
	if err == io.EOF {
		return false, newError(MissingExitInstruction)
	}
	if err != nil {
		return false, ioOrCodecError(err)
	}

	switch code {
	case bytecode.OpPush:
		m.stack.push(operand)
	case bytecode.OpDuplicate:
		return false, m.copy(0)
	case bytecode.OpCopy:
		return false, m.copy(operand)
	case bytecode.OpSwap:
		return false, m.swap()
	case bytecode.OpDiscard:
		return false, m.discard()
	case bytecode.OpSlide:
		return false, m.slide(operand)
	case bytecode.OpAdd:
		return false, m.arith(func(y, x int64) int64 { return y + x })
	case bytecode.OpSub:
		return false, m.arith(func(y, x int64) int64 { return y - x })
	case bytecode.OpMul:
		return false, m.arith(func(y, x int64) int64 { return y * x })
	case bytecode.OpDiv:
		return false, m.divmod(func(y, x int64) int64 { return y / x })
	case bytecode.OpMod:
		return false, m.divmod(func(y, x int64) int64 { return y % x })
	case bytecode.OpStore:
		return false, m.store()
	case bytecode.OpRetrieve:
		return false, m.retrieve()
	case bytecode.OpMark:
		// No runtime effect other than being indexed on first encounter;
		// record it here too so a straight-line pass over an already-seen
		// Mark doesn't force a future forward scan to re-discover it.
		m.labels[operand] = program.Tell()
	case bytecode.OpCall:
		m.callStack = append(m.callStack, program.Tell())
		return false, m.jump(program, operand)
	case bytecode.OpJump:
		return false, m.jump(program, operand)
	case bytecode.OpJumpIfZero:
		return false, m.jumpIf(program, operand, func(x int64) bool { return x == 0 })
	case bytecode.OpJumpIfNegative:
		return false, m.jumpIf(program, operand, func(x int64) bool { return x < 0 })
	case bytecode.OpReturn:
		return false, m.doReturn(program)
	case bytecode.OpExit:
		return true, nil
	case bytecode.OpPutChar:
		return false, m.putChar(out)
	case bytecode.OpPutNum:
		return false, m.putNum(out)
	case bytecode.OpGetChar:
		return false, m.getChar(in)
	case bytecode.OpGetNum:
		return false, m.getNum(in)
	default:
		return false, newError(OtherMachineError)
	}
	return false, nil
}

func (m *Machine) copy(k int64) error {
	v, ok := m.stack.at(k)
	if !ok {
		return newError(IllegalStackManipulation)
	}
	m.stack.push(v)
	return nil
}

func (m *Machine) swap() error {
	x, ok := m.stack.pop()
	if !ok {
		return newError(IllegalStackManipulation)
	}
	y, ok := m.stack.pop()
	if !ok {
		return newError(IllegalStackManipulation)
	}
	m.stack.push(x)
	m.stack.push(y)
	return nil
}

func (m *Machine) discard() error {
	if _, ok := m.stack.pop(); !ok {
		return newError(IllegalStackManipulation)
	}
	return nil
}

func (m *Machine) slide(k int64) error {
	if !m.stack.dropBelowTop(k) {
		return newError(IllegalStackManipulation)
	}
	return nil
}

// arith pops x then y and pushes f(y, x) — the operand order spec.md §4.4
// specifies ("pop x, pop y, push (y op x)").
func (m *Machine) arith(f func(y, x int64) int64) error {
	x, ok := m.stack.pop()
	if !ok {
		return newError(IllegalStackManipulation)
	}
	y, ok := m.stack.pop()
	if !ok {
		return newError(IllegalStackManipulation)
	}
	m.stack.push(f(y, x))
	return nil
}

// divmod implements Div/Mod: the divisor (x) is checked for zero before y
// is popped, so a failed division leaves the dividend on the stack.
func (m *Machine) divmod(f func(y, x int64) int64) error {
	x, ok := m.stack.at(0)
	if !ok {
		return newError(IllegalStackManipulation)
	}
	if x == 0 {
		return newError(ZeroDivision)
	}
	m.stack.pop()
	y, ok := m.stack.pop()
	if !ok {
		m.stack.push(x) // restore: fewer than two operands after all
		return newError(IllegalStackManipulation)
	}
	m.stack.push(f(y, x))
	return nil
}

func (m *Machine) store() error {
	value, ok := m.stack.pop()
	if !ok {
		return newError(IllegalStackManipulation)
	}
	addr, ok := m.stack.pop()
	if !ok {
		return newError(IllegalStackManipulation)
	}
	m.heap.store(addr, value)
	return nil
}

func (m *Machine) retrieve() error {
	addr, ok := m.stack.pop()
	if !ok {
		return newError(IllegalStackManipulation)
	}
	m.stack.push(m.heap.retrieve(addr))
	return nil
}

// jump seeks program to label's Mark. If label is already in the index,
// it seeks directly; otherwise it forward-scans from the current
// position, recording every Mark it passes (lazy resolution, spec.md §9),
// stopping as soon as label itself is indexed.
func (m *Machine) jump(program *bytecode.Reader, label int64) error {
	if pos, ok := m.labels[label]; ok {
		return ioOrCodecError(program.Seek(pos))
	}

	for {
		code, operand, err := program.ReadNext()
		if err == io.EOF {
			return newError(UndefinedLabel)
		}
		if err != nil {
			return ioOrCodecError(err)
		}
		if code == bytecode.OpMark {
			pos := program.Tell()
			m.labels[operand] = pos
			if operand == label {
				return nil
			}
		}
	}
}

func (m *Machine) jumpIf(program *bytecode.Reader, label int64, test func(int64) bool) error {
	x, ok := m.stack.pop()
	if !ok {
		return newError(IllegalStackManipulation)
	}
	if test(x) {
		return m.jump(program, label)
	}
	return nil
}

func (m *Machine) doReturn(program *bytecode.Reader) error {
	n := len(m.callStack)
	if n == 0 {
		return newError(CallStackEmpty)
	}
	pos := m.callStack[n-1]
	m.callStack = m.callStack[:n-1]
	return ioOrCodecError(program.Seek(pos))
}

// putChar pops x and writes its low 8 bits as one byte to out; x < 0 is
// IllegalStackManipulation.
func (m *Machine) putChar(out io.Writer) error {
	x, ok := m.stack.pop()
	if !ok {
		return newError(IllegalStackManipulation)
	}
	if x < 0 {
		return newError(IllegalStackManipulation)
	}

	if _, err := out.Write([]byte{byte(x)}); err != nil {
		return newIoError(err)
	}
	return nil
}

func (m *Machine) putNum(out io.Writer) error {
	x, ok := m.stack.pop()
	if !ok {
		return newError(IllegalStackManipulation)
	}
	if _, err := io.WriteString(out, strconv.FormatInt(x, 10)); err != nil {
		return newIoError(err)
	}
	return nil
}

// getChar and getNum both implicitly Store the value they read at the
// address the program already pushed (spec.md §4.4, §9): the caller must
// push the destination address before invoking either instruction.
func (m *Machine) getChar(in Input) error {
	c, err := in.ReadChar()
	if err != nil {
		return newIoError(err)
	}
	m.stack.push(int64(c))
	return m.store()
}

func (m *Machine) getNum(in Input) error {
	line, err := in.ReadLine()
	if err != nil {
		return newIoError(err)
	}
	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return newIoError(err)
	}
	m.stack.push(n)
	return m.store()
}

func ioOrCodecError(err error) error {
	if err == nil {
		return nil
	}
	return newIoError(err)
}
