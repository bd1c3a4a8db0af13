package assembly

import "fmt"

// SyntaxError reports a malformed assembly line.
type SyntaxError struct {
	Line    int
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 assembly syntax error on line %d: %s", e.Line, e.Message)
}

func newSyntaxError(line int, format string, args ...any) error {
	return SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)}
}
