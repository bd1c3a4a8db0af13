package brainfuck

import (
	"fmt"
	"io"

	"esobase/ir"
	"esobase/label"
)

// TokenSource yields Brainfuck tokens one at a time. Lexer implements it
// for plain Brainfuck source; Ook! (package esobase/syntax/ook) lexes its
// own nine-byte directive pairs into the same tokens to reuse Lower.
type TokenSource interface {
	Next() (Token, error)
}

// Compile lexes and lowers Brainfuck src into IR.
func Compile(src string) ([]ir.Instruction, error) {
	return Lower(NewLexer(src))
}

// Lower expands a token stream into IR. Each cell lives in the VM heap at
// the address held by a dedicated pointer cell (ir.FailLabel's address,
// heap slot -1, doubles as that pointer cell); MoveLeft guards against
// walking the pointer below zero by jumping to a synthetic fail label
// planted at the very end of the program, after the final Exit. The jump
// therefore never raises UndefinedLabel; execution resumes past that Mark,
// reaches the end of the stream, and the run fails with
// MissingExitInstruction.
//
// Loop labels are synthesized ("l#" / "#l", where l is a counter that
// gives each '[' in source order its own number starting at 1) in a
// private label table so they can never collide with a label supplied by
// another front-end sharing the same program.
func Lower(ts TokenSource) ([]ir.Instruction, error) {
	var out []ir.Instruction
	labels := label.NewTable()
	var loopCounter int64 = 1
	var loopStack []int64

	for {
		tok, err := ts.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch tok {
		case MoveRight:
			out = append(out,
				ir.NewPush(ir.FailLabel),
				ir.NewDuplicate(),
				ir.NewRetrieve(),
				ir.NewPush(1),
				ir.NewAdd(),
				ir.NewStore(),
			)
		case MoveLeft:
			out = append(out,
				ir.NewPush(ir.FailLabel),
				ir.NewDuplicate(),
				ir.NewRetrieve(),
				ir.NewPush(1),
				ir.NewSub(),
				ir.NewDuplicate(),
				ir.NewJumpIfNegative(ir.FailLabel),
				ir.NewStore(),
			)
		case Increment:
			out = append(out,
				ir.NewPush(ir.FailLabel),
				ir.NewRetrieve(),
				ir.NewDuplicate(),
				ir.NewRetrieve(),
				ir.NewPush(1),
				ir.NewAdd(),
				ir.NewStore(),
			)
		case Decrement:
			out = append(out,
				ir.NewPush(ir.FailLabel),
				ir.NewRetrieve(),
				ir.NewDuplicate(),
				ir.NewRetrieve(),
				ir.NewPush(1),
				ir.NewSub(),
				ir.NewStore(),
			)
		case Get:
			out = append(out,
				ir.NewPush(ir.FailLabel),
				ir.NewRetrieve(),
				ir.NewGetChar(),
			)
		case Put:
			out = append(out,
				ir.NewPush(ir.FailLabel),
				ir.NewRetrieve(),
				ir.NewRetrieve(),
				ir.NewPutChar(),
			)
		case LoopStart:
			l := loopCounter
			loopCounter++
			loopStack = append(loopStack, l)
			out = append(out,
				ir.NewMark(labels.ID(fmt.Sprintf("%d#", l))),
				ir.NewPush(ir.FailLabel),
				ir.NewRetrieve(),
				ir.NewRetrieve(),
				ir.NewJumpIfZero(labels.ID(fmt.Sprintf("#%d", l))),
			)
		case LoopEnd:
			if len(loopStack) == 0 {
				return nil, newSyntaxError("broken loop")
			}
			l := loopStack[len(loopStack)-1]
			loopStack = loopStack[:len(loopStack)-1]
			out = append(out,
				ir.NewJump(labels.ID(fmt.Sprintf("%d#", l))),
				ir.NewMark(labels.ID(fmt.Sprintf("#%d", l))),
			)
		}
	}

	out = append(out, ir.NewExit(), ir.NewMark(ir.FailLabel))
	return out, nil
}
