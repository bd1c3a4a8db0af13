// Package whitespace implements the canonical Whitespace front-end and
// back-end: a three-symbol (Space/Tab/LF) lexer, a prefix-coded parser
// into the shared IR, and a decompiler that inverts it (spec.md §4.2.1,
// §4.3).
package whitespace

// Token is one of Whitespace's three significant lexemes. DT (package
// esobase/syntax/dt) lexes its own UTF-8 graphemes into these same
// values so it can reuse ParseTokens below.
type Token int

const (
	Space Token = iota
	Tab
	LF
)

func (t Token) String() string {
	switch t {
	case Space:
		return "S"
	case Tab:
		return "T"
	case LF:
		return "N"
	default:
		return "?"
	}
}

// TokenSource yields one Token at a time, returning io.EOF once exhausted.
// Lexer implements it for plain Whitespace source; DT's lexer implements
// it independently to feed the same parser.
type TokenSource interface {
	Next() (Token, error)
}
