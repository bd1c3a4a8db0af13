package brainfuck

import "fmt"

// SyntaxError reports a malformed Brainfuck/Ook! program.
type SyntaxError struct {
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 brainfuck syntax error: %s", e.Message)
}

func newSyntaxError(message string) error {
	return SyntaxError{Message: message}
}
