package ook

import (
	"esobase/ir"
	"esobase/syntax/brainfuck"
)

// Compile lexes and lowers Ook! src into IR, delegating lowering to
// brainfuck.Lower.
func Compile(src string) ([]ir.Instruction, error) {
	return brainfuck.Lower(NewLexer(src))
}
