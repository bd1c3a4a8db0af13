package vm

import "fmt"

// ErrorKind classifies a MachineError, matching spec.md §7's VM error
// kinds exactly.
type ErrorKind int

const (
	IllegalStackManipulation ErrorKind = iota
	UndefinedLabel
	ZeroDivision
	CallStackEmpty
	MissingExitInstruction
	MachineIoError
	OtherMachineError
)

var kindNames = map[ErrorKind]string{
	IllegalStackManipulation: "IllegalStackManipulation",
	UndefinedLabel:           "UndefinedLabel",
	ZeroDivision:             "ZeroDivision",
	CallStackEmpty:           "CallStackEmpty",
	MissingExitInstruction:   "MissingExitInstruction",
	MachineIoError:           "MachineIoError",
	OtherMachineError:        "OtherMachineError",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UnknownMachineErrorKind"
}

// MachineError is the error type returned by a failed Machine.Run. Err
// holds the underlying cause for Kind == MachineIoError; it is nil
// otherwise.
type MachineError struct {
	Kind ErrorKind
	Err  error
}

func (e MachineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("💥 %s: %s", e.Kind, e.Err.Error())
	}
	return fmt.Sprintf("💥 %s", e.Kind)
}

func (e MachineError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind) error {
	return MachineError{Kind: kind}
}

func newIoError(err error) error {
	return MachineError{Kind: MachineIoError, Err: err}
}
