package whitespace

import (
	"io"
	"strconv"
	"strings"

	"esobase/ir"
	"esobase/label"
)

// Compile lexes and parses Whitespace src into IR.
func Compile(src string) ([]ir.Instruction, error) {
	return ParseTokens(NewLexer(src))
}

// ParseTokens runs the shared prefix-coded parser over any TokenSource.
// DT's front-end (esobase/syntax/dt) calls this with its own lexer so the
// two front-ends share one parser implementation (spec.md §4.2.2).
func ParseTokens(ts TokenSource) ([]ir.Instruction, error) {
	p := &parser{ts: ts, labels: label.NewTable()}
	return p.parseProgram()
}

type parser struct {
	ts     TokenSource
	labels *label.Table
}

// parseProgram reads instructions until the token stream is exhausted.
// End-of-stream between instructions is normal termination; end-of-stream
// in the middle of an instruction's prefix or operand is a syntax error.
func (p *parser) parseProgram() ([]ir.Instruction, error) {
	var instrs []ir.Instruction
	for {
		instr, err := p.parseInstruction()
		if err == io.EOF {
			return instrs, nil
		}
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, instr)
	}
}

// next reads one token, translating end-of-stream mid-prefix into a
// syntax error named after what was matched so far.
func (p *parser) next(prefix string) (Token, error) {
	t, err := p.ts.Next()
	if err == io.EOF {
		if prefix == "" {
			return 0, io.EOF
		}
		return 0, newSyntaxError(prefix, "unexpected end of input")
	}
	return t, err
}

func (p *parser) parseInstruction() (ir.Instruction, error) {
	imp, err := p.next("")
	if err != nil {
		return ir.Instruction{}, err
	}

	switch imp {
	case Space:
		return p.parseStack()
	case Tab:
		return p.parseTabFamily()
	case LF:
		return p.parseFlow()
	}
	return ir.Instruction{}, newSyntaxError("", "unreachable token")
}

func (p *parser) parseStack() (ir.Instruction, error) {
	t, err := p.next("S")
	if err != nil {
		return ir.Instruction{}, err
	}
	switch t {
	case Space: // SS{num} -> Push
		n, err := p.parseNumber("SS")
		if err != nil {
			return ir.Instruction{}, err
		}
		return ir.NewPush(n), nil
	case LF: // SN. -> Duplicate/Swap/Discard
		t2, err := p.next("SN")
		if err != nil {
			return ir.Instruction{}, err
		}
		switch t2 {
		case Space:
			return ir.NewDuplicate(), nil
		case Tab:
			return ir.NewSwap(), nil
		case LF:
			return ir.NewDiscard(), nil
		}
	case Tab: // ST. -> Copy/Slide
		t2, err := p.next("ST")
		if err != nil {
			return ir.Instruction{}, err
		}
		switch t2 {
		case Space:
			n, err := p.parseNumber("STS")
			if err != nil {
				return ir.Instruction{}, err
			}
			return ir.NewCopy(n), nil
		case LF:
			n, err := p.parseNumber("STN")
			if err != nil {
				return ir.Instruction{}, err
			}
			return ir.NewSlide(n), nil
		case Tab:
			return ir.Instruction{}, newSyntaxError("STT", "unknown token")
		}
	}
	return ir.Instruction{}, newSyntaxError("S", "unknown token")
}

// parseTabFamily handles prefixes starting with Tab: arithmetic (TS.),
// heap (TT.), and I/O (TN..).
func (p *parser) parseTabFamily() (ir.Instruction, error) {
	t, err := p.next("T")
	if err != nil {
		return ir.Instruction{}, err
	}
	switch t {
	case Space: // TS. -> arithmetic
		t2, err := p.next("TS")
		if err != nil {
			return ir.Instruction{}, err
		}
		switch t2 {
		case Space:
			t3, err := p.next("TSS")
			if err != nil {
				return ir.Instruction{}, err
			}
			switch t3 {
			case Space:
				return ir.NewAdd(), nil
			case Tab:
				return ir.NewSub(), nil
			case LF:
				return ir.NewMul(), nil
			}
		case Tab:
			t3, err := p.next("TST")
			if err != nil {
				return ir.Instruction{}, err
			}
			switch t3 {
			case Space:
				return ir.NewDiv(), nil
			case Tab:
				return ir.NewMod(), nil
			}
			return ir.Instruction{}, newSyntaxError("TST", "unknown token")
		}
		return ir.Instruction{}, newSyntaxError("TS", "unknown token")
	case Tab: // TT. -> heap
		t2, err := p.next("TT")
		if err != nil {
			return ir.Instruction{}, err
		}
		switch t2 {
		case Space:
			return ir.NewStore(), nil
		case Tab:
			return ir.NewRetrieve(), nil
		}
		return ir.Instruction{}, newSyntaxError("TT", "unknown token")
	case LF: // TN. -> I/O
		t2, err := p.next("TN")
		if err != nil {
			return ir.Instruction{}, err
		}
		switch t2 {
		case Space:
			t3, err := p.next("TNS")
			if err != nil {
				return ir.Instruction{}, err
			}
			switch t3 {
			case Space:
				return ir.NewPutChar(), nil
			case Tab:
				return ir.NewPutNum(), nil
			}
			return ir.Instruction{}, newSyntaxError("TNS", "unknown token")
		case Tab:
			t3, err := p.next("TNT")
			if err != nil {
				return ir.Instruction{}, err
			}
			switch t3 {
			case Space:
				return ir.NewGetChar(), nil
			case Tab:
				return ir.NewGetNum(), nil
			}
			return ir.Instruction{}, newSyntaxError("TNT", "unknown token")
		}
		return ir.Instruction{}, newSyntaxError("TN", "unknown token")
	}
	return ir.Instruction{}, newSyntaxError("T", "unknown token")
}

func (p *parser) parseFlow() (ir.Instruction, error) {
	t, err := p.next("N")
	if err != nil {
		return ir.Instruction{}, err
	}
	switch t {
	case Space: // NS. -> Mark/Call/Jump
		t2, err := p.next("NS")
		if err != nil {
			return ir.Instruction{}, err
		}
		switch t2 {
		case Space:
			id, err := p.parseLabel("NSS")
			if err != nil {
				return ir.Instruction{}, err
			}
			return ir.NewMark(id), nil
		case Tab:
			id, err := p.parseLabel("NST")
			if err != nil {
				return ir.Instruction{}, err
			}
			return ir.NewCall(id), nil
		case LF:
			id, err := p.parseLabel("NSN")
			if err != nil {
				return ir.Instruction{}, err
			}
			return ir.NewJump(id), nil
		}
	case Tab: // NT. -> JumpIfZero/JumpIfNegative/Return
		t2, err := p.next("NT")
		if err != nil {
			return ir.Instruction{}, err
		}
		switch t2 {
		case Space:
			id, err := p.parseLabel("NTS")
			if err != nil {
				return ir.Instruction{}, err
			}
			return ir.NewJumpIfZero(id), nil
		case Tab:
			id, err := p.parseLabel("NTT")
			if err != nil {
				return ir.Instruction{}, err
			}
			return ir.NewJumpIfNegative(id), nil
		case LF:
			return ir.NewReturn(), nil
		}
	case LF: // NN. -> Exit
		t2, err := p.next("NN")
		if err != nil {
			return ir.Instruction{}, err
		}
		switch t2 {
		case LF:
			return ir.NewExit(), nil
		case Space:
			return ir.Instruction{}, newSyntaxError("NNS", "unknown token")
		case Tab:
			return ir.Instruction{}, newSyntaxError("NNT", "unknown token")
		}
	}
	return ir.Instruction{}, newSyntaxError("N", "unknown token")
}

// parseNumber reads a sign token (Space=nonnegative, Tab=negative)
// followed by a bit sequence terminated by LF (spec.md §4.2.1). The empty
// bit sequence decodes to zero; the sign is applied sign-magnitude.
func (p *parser) parseNumber(prefix string) (int64, error) {
	sign, err := p.parseSign(prefix)
	if err != nil {
		return 0, err
	}
	bits, err := p.parseBits(prefix)
	if err != nil {
		return 0, err
	}
	magnitude, err := decodeBits(bits)
	if err != nil {
		return 0, newSyntaxError(prefix, "invalid numeric literal")
	}
	return sign * magnitude, nil
}

func (p *parser) parseSign(prefix string) (int64, error) {
	t, err := p.next(prefix)
	if err != nil {
		return 0, err
	}
	switch t {
	case Space:
		return 1, nil
	case Tab:
		return -1, nil
	default:
		return 0, newSyntaxError(prefix, "missing sign token")
	}
}

// parseBits reads Space/Tab bits until a terminating LF.
func (p *parser) parseBits(prefix string) (string, error) {
	var b strings.Builder
	for {
		t, err := p.next(prefix)
		if err != nil {
			return "", err
		}
		switch t {
		case Space:
			b.WriteByte('0')
		case Tab:
			b.WriteByte('1')
		case LF:
			return b.String(), nil
		}
	}
}

// parseLabel reads a bit sequence (no sign) terminated by LF and interns
// it as a label id.
func (p *parser) parseLabel(prefix string) (int64, error) {
	bits, err := p.parseBits(prefix)
	if err != nil {
		return 0, err
	}
	return p.labels.ID(bits), nil
}

func decodeBits(bits string) (int64, error) {
	if bits == "" {
		return 0, nil
	}
	return strconv.ParseInt(bits, 2, 64)
}
