// Package assembly implements a line-oriented mnemonic front-end: one
// instruction per line, an optional numeric or label operand separated
// from the mnemonic by a space, ';' comment lines, and blank lines
// skipped (spec.md §4.2.3).
package assembly

import (
	"bufio"
	"strconv"
	"strings"

	"esobase/ir"
	"esobase/label"
)

// Compile parses assembly source into IR.
func Compile(src string) ([]ir.Instruction, error) {
	labels := label.NewTable()
	var instrs []ir.Instruction

	scanner := bufio.NewScanner(strings.NewReader(src))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" || text[0] == ';' {
			continue
		}
		mnemonic, operand := splitMnemonic(text)
		instr, err := parseLine(line, mnemonic, operand, labels)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, instr)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return instrs, nil
}

func splitMnemonic(line string) (mnemonic, operand string) {
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return line[:i], line[i+1:]
	}
	return line, ""
}

func parseLine(line int, mnemonic, operand string, labels *label.Table) (ir.Instruction, error) {
	switch mnemonic {
	case "PUSH":
		n, err := parseNumber(line, operand)
		return ir.NewPush(n), err
	case "DUP":
		return ir.NewDuplicate(), nil
	case "COPY":
		n, err := parseNumber(line, operand)
		return ir.NewCopy(n), err
	case "SWAP":
		return ir.NewSwap(), nil
	case "DISCARD":
		return ir.NewDiscard(), nil
	case "SLIDE":
		n, err := parseNumber(line, operand)
		return ir.NewSlide(n), err
	case "ADD":
		return ir.NewAdd(), nil
	case "SUB":
		return ir.NewSub(), nil
	case "MUL":
		return ir.NewMul(), nil
	case "DIV":
		return ir.NewDiv(), nil
	case "MOD":
		return ir.NewMod(), nil
	case "STORE":
		return ir.NewStore(), nil
	case "RETRIEVE":
		return ir.NewRetrieve(), nil
	case "MARK":
		return ir.NewMark(labels.ID(operand)), nil
	case "CALL":
		return ir.NewCall(labels.ID(operand)), nil
	case "JUMP":
		return ir.NewJump(labels.ID(operand)), nil
	case "JUMPZ":
		return ir.NewJumpIfZero(labels.ID(operand)), nil
	case "JUMPN":
		return ir.NewJumpIfNegative(labels.ID(operand)), nil
	case "RETURN":
		return ir.NewReturn(), nil
	case "EXIT":
		return ir.NewExit(), nil
	case "PUTC":
		return ir.NewPutChar(), nil
	case "PUTN":
		return ir.NewPutNum(), nil
	case "GETC":
		return ir.NewGetChar(), nil
	case "GETN":
		return ir.NewGetNum(), nil
	}
	return ir.Instruction{}, newSyntaxError(line, "unknown mnemonic %q", mnemonic)
}

func parseNumber(line int, operand string) (int64, error) {
	n, err := strconv.ParseInt(operand, 10, 64)
	if err != nil {
		return 0, newSyntaxError(line, "expected number, got %q", operand)
	}
	return n, nil
}
