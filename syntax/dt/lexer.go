// Package dt implements the "DT" front-end: a UTF-8 re-encoding of
// Whitespace using three multibyte graphemes in place of Space/Tab/LF
// (spec.md §4.2.2). Parsing and decompilation are delegated entirely to
// package esobase/syntax/whitespace; only the lexing differs.
package dt

import (
	"io"

	"esobase/syntax/whitespace"
)

const (
	glyphSpace = "ど"
	glyphTab   = "童貞ちゃうわっ！"
	glyphLF    = "…"
)

// Lexer recognizes the three DT graphemes in a rune stream and emits the
// Whitespace-equivalent token for each, skipping everything else as
// non-significant input (spec.md §4.2.2).
type Lexer struct {
	src []rune
	pos int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

// Next returns the next recognized token, or io.EOF once the source is
// exhausted. A grapheme match that begins but does not complete (a
// partial match of the multi-rune Tab grapheme) skips only the one
// leading rune before retrying, per the lexer contract in spec.md
// §4.2.2 ("a prefix that does not extend to a full T grapheme is
// skipped as non-significant input").
func (l *Lexer) Next() (whitespace.Token, error) {
	for l.pos < len(l.src) {
		if tok, n, ok := l.match(); ok {
			l.pos += n
			return tok, nil
		}
		l.pos++
	}
	return 0, io.EOF
}

func (l *Lexer) match() (whitespace.Token, int, bool) {
	if l.hasPrefix(glyphSpace) {
		return whitespace.Space, runeLen(glyphSpace), true
	}
	if l.hasPrefix(glyphLF) {
		return whitespace.LF, runeLen(glyphLF), true
	}
	if l.hasPrefix(glyphTab) {
		return whitespace.Tab, runeLen(glyphTab), true
	}
	return 0, 0, false
}

func (l *Lexer) hasPrefix(glyph string) bool {
	runes := []rune(glyph)
	if l.pos+len(runes) > len(l.src) {
		return false
	}
	for i, r := range runes {
		if l.src[l.pos+i] != r {
			return false
		}
	}
	return true
}

func runeLen(s string) int {
	return len([]rune(s))
}
