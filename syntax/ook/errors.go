package ook

import "fmt"

// SyntaxError reports a malformed Ook! program.
type SyntaxError struct {
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 ook syntax error: %s", e.Message)
}

func newSyntaxError(message string) error {
	return SyntaxError{Message: message}
}
