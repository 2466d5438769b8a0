package vm

import (
	"fmt"

	"github.com/zurustar/brew/pkg/compiler/token"
)

// ErrorType represents the type of runtime error. The value is the name
// scripts see in the error object's name field.
type ErrorType string

const (
	// Fatal errors - execution must stop
	ErrorStackOverflow ErrorType = "StackOverflowError"
	ErrorTimeout       ErrorType = "TimeoutError"
	ErrorCancelled     ErrorType = "CancelledError"

	// Non-fatal errors - thrown into the script and catchable
	ErrorReference       ErrorType = "ReferenceError"
	ErrorTypeMismatch    ErrorType = "TypeError"
	ErrorArity           ErrorType = "ArityError"
	ErrorIndexOutOfRange ErrorType = "IndexOutOfRangeError"
	ErrorNative          ErrorType = "NativeError"
	ErrorDivisionByZero  ErrorType = "DivisionByZeroError"
)

// RuntimeError represents a runtime error in the VM.
type RuntimeError struct {
	Type    ErrorType
	Message string
	Span    token.Span // zero when raised by a built-in; the call site fills it in
	Err     error      // underlying cause, if any
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if !e.Span.IsZero() {
		return fmt.Sprintf("%s: %s at %s", e.Type, e.Message, e.Span)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if the error is fatal and execution should stop.
func (e *RuntimeError) IsFatal() bool {
	switch e.Type {
	case ErrorStackOverflow, ErrorTimeout, ErrorCancelled:
		return true
	default:
		return false
	}
}

// NewRuntimeError creates a new RuntimeError.
func NewRuntimeError(errType ErrorType, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// wrapNativeError reports a failed host operation, such as file I/O, as a
// NativeError keeping the cause.
func wrapNativeError(err error, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Type:    ErrorNative,
		Message: fmt.Sprintf(format, args...) + ": " + err.Error(),
		Err:     err,
	}
}

// ThrownError carries an arbitrary thrown value through a Go error return,
// for example out of handle.join() when the joined thread failed.
type ThrownError struct {
	Value Value
	Span  token.Span
}

func (e *ThrownError) Error() string {
	return "uncaught " + ToString(e.Value)
}

// UncaughtError is returned by Run when a throw reaches the top level.
type UncaughtError struct {
	Value   Value
	Message string
	Span    token.Span
	Context string // source excerpt around Span
}

func (e *UncaughtError) Error() string {
	msg := fmt.Sprintf("uncaught %s at %s", e.Message, e.Span)
	if e.Context != "" {
		msg += "\n" + e.Context
	}
	return msg
}

// newErrorObject builds the value thrown into a script for a runtime error.
func newErrorObject(errType ErrorType, message string, span token.Span) *Object {
	obj := NewObject()
	obj.isErr = true
	obj.Set("name", String(errType))
	obj.Set("message", String(message))
	obj.Set("line", Number(span.StartLine))
	obj.Set("column", Number(span.StartColumn))
	return obj
}
