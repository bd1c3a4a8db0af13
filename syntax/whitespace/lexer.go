package whitespace

import "io"

// Lexer reads Whitespace source one character at a time. Space (0x20),
// Tab (0x09), and LF (0x0A) are the three significant lexemes; any other
// character is skipped as a comment (spec.md §4.2.1).
type Lexer struct {
	src []rune
	pos int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

// Next returns the next significant token, or io.EOF once the source is
// exhausted without finding one.
func (l *Lexer) Next() (Token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		l.pos++
		switch c {
		case ' ':
			return Space, nil
		case '\t':
			return Tab, nil
		case '\n':
			return LF, nil
		default:
			continue // comment character
		}
	}
	return 0, io.EOF
}
