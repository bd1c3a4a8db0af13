// Package ook implements the Ook! front-end: eight two-word directives
// ("Ook. Ook?", "Ook? Ook.", ...) map onto Brainfuck's eight tokens, so
// lexing here just recognizes directive pairs and lowering is reused
// wholesale from package esobase/syntax/brainfuck (spec.md §4.2.5).
package ook

import (
	"io"
	"strings"

	"esobase/syntax/brainfuck"
)

// Lexer scans whitespace-separated "Ook" words and pairs them into
// Brainfuck tokens. Anything that isn't a recognized "Ook" word (one of
// "Ook.", "Ook?", "Ook!") is skipped as non-significant input, and an
// "Ook" word left without a partner at end of input is a syntax error.
type Lexer struct {
	words []string
	pos   int
}

func NewLexer(src string) *Lexer {
	return &Lexer{words: strings.Fields(src)}
}

func (l *Lexer) Next() (brainfuck.Token, error) {
	first, ok := l.nextOokWord()
	if !ok {
		return 0, io.EOF
	}
	second, ok := l.nextOokWord()
	if !ok {
		return 0, newSyntaxError("unpaired Ook directive at end of input")
	}
	pair := first + " " + second
	switch pair {
	case "Ook. Ook?":
		return brainfuck.MoveRight, nil
	case "Ook? Ook.":
		return brainfuck.MoveLeft, nil
	case "Ook. Ook.":
		return brainfuck.Increment, nil
	case "Ook! Ook!":
		return brainfuck.Decrement, nil
	case "Ook. Ook!":
		return brainfuck.Get, nil
	case "Ook! Ook.":
		return brainfuck.Put, nil
	case "Ook! Ook?":
		return brainfuck.LoopStart, nil
	case "Ook? Ook!":
		return brainfuck.LoopEnd, nil
	}
	return 0, newSyntaxError("unrecognized directive " + pair)
}

func (l *Lexer) nextOokWord() (string, bool) {
	for l.pos < len(l.words) {
		w := l.words[l.pos]
		l.pos++
		switch w {
		case "Ook.", "Ook?", "Ook!":
			return w, true
		default:
			continue
		}
	}
	return "", false
}
