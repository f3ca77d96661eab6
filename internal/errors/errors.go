// Package errors defines the categorized errors changelint commands return.
// Each carries remediation steps that the CLI prints under the message.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies a CLIError. The CLI maps categories to exit codes.
type ErrorCategory int

const (
	// Argument errors come from bad flags or positional arguments.
	Argument ErrorCategory = iota
	// Configuration errors come from config files or CHANGELINT_* variables.
	Configuration
	// Prerequisite errors mean something the command needs is absent, such
	// as the changelog file or a git repository.
	Prerequisite
	// Runtime errors happen while the command runs.
	Runtime
)

var categoryNames = map[ErrorCategory]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Runtime:       "Runtime Error",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is an error meant for the person at the terminal.
type CLIError struct {
	Category ErrorCategory
	Message  string
	// Remediation lists steps that fix the problem, printed as bullets.
	Remediation []string
	// Usage is the correct command syntax, for argument errors.
	Usage string
	// Err is the underlying cause, if any.
	Err error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

func newError(category ErrorCategory, message string, remediation []string) *CLIError {
	return &CLIError{Category: category, Message: message, Remediation: remediation}
}

// NewArgumentError returns an Argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return newError(Argument, message, remediation)
}

// NewArgumentErrorWithUsage returns an Argument error that shows usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	e := newError(Argument, message, remediation)
	e.Usage = usage
	return e
}

// NewConfigError returns a Configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return newError(Configuration, message, remediation)
}

// NewPrerequisiteError returns a Prerequisite error.
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return newError(Prerequisite, message, remediation)
}

// NewRuntimeError returns a Runtime error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return newError(Runtime, message, remediation)
}

// WrapWithMessage returns a CLIError whose message is "message: err" and
// whose cause is err. A nil err yields nil.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	e := newError(category, fmt.Sprintf("%s: %v", message, err), remediation)
	e.Err = err
	return e
}

// IsCLIError reports whether err's chain contains a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
