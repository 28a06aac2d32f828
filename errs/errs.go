// Package errs defines the error categories of a render run.
//
// Every failure is fatal to the run. The category only decides what the
// operator is told and which exit status the process returns:
//   - CONFIG: a listed asset has no source, or the configuration is invalid
//   - IO: reading or writing a source/output file failed
//   - TOOL: the external editor reported failure
//
// Usage:
//
//	err := errs.Wrap(errs.CodeIO, err, "reading %s", path)
//	if errs.Is(err, errs.CodeTool) {
//	    // ...
//	}
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code is a machine-readable error category.
type Code string

const (
	CodeConfig Code = "CONFIG"
	CodeIO     Code = "IO"
	CodeTool   Code = "TOOL"
)

// Error is a categorized error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an Error wrapping cause. The call site's stack is recorded
// on the cause and printed with %+v.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   errors.WithStack(cause),
	}
}

// Format prints the cause chain with stack traces for %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %s", e.Code, e.Message)
		if e.Cause != nil {
			fmt.Fprintf(s, ": %+v", e.Cause)
		}
		return
	}
	fmt.Fprintf(s, fmt.FormatString(s, verb), e.Error())
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCode(err) {
	case CodeConfig:
		return 2
	case CodeIO:
		return 3
	case CodeTool:
		return 4
	default:
		return 1
	}
}
