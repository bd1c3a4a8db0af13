package whitespace

import "fmt"

// SyntaxError reports a malformed Whitespace program, naming the longest
// instruction prefix that was matched before the failure (spec.md
// §4.2.1's "Any other prefix is a syntax error identifying the longest
// matched prefix").
type SyntaxError struct {
	Prefix  string
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 whitespace syntax error after %q: %s", e.Prefix, e.Message)
}

func newSyntaxError(prefix, message string) error {
	return SyntaxError{Prefix: prefix, Message: message}
}
