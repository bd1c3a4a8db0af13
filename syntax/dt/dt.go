package dt

import (
	"io"

	"esobase/bytecode"
	"esobase/ir"
	"esobase/syntax/whitespace"
)

// Compile lexes DT source into Whitespace-equivalent tokens and parses
// them with the shared Whitespace parser (spec.md §4.2.2: "Parsing is
// identical to Whitespace").
func Compile(src string) ([]ir.Instruction, error) {
	return whitespace.ParseTokens(NewLexer(src))
}

// Decompile emits DT source for a bytecode stream, reusing Whitespace's
// decompiler logic with DT's three graphemes in place of Space/Tab/LF.
func Decompile(r *bytecode.Reader, w io.Writer) error {
	return whitespace.DecompileGlyphs(r, w, glyphSpace, glyphTab, glyphLF)
}
