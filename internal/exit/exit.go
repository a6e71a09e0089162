package exit

import (
	"errors"
	"fmt"
	"io"

	"github.com/jacoelho/jsmn"
)

// Exit codes of the jget command.
const (
	CodeOK         = 0
	CodeError      = 1
	CodeParseError = 2
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// FromError maps a command error to its exit result. Errors caused by a
// document that failed to parse exit with CodeParseError.
func FromError(err error, w io.Writer) *Result {
	if err == nil {
		return &Result{Output: w, ExitCode: CodeOK}
	}

	code := CodeError
	var pe *jsmn.ParseError
	if errors.As(err, &pe) {
		code = CodeParseError
	}

	return &Result{
		Output:   w,
		ExitCode: code,
		Message:  fmt.Sprintf("Error: %v\n", err),
	}
}
