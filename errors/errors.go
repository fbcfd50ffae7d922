// Package errors defines the error taxonomy shared by discovery, sessions and
// statement execution.
//
// Every failure surfaced by this module is an *Error carrying an ErrorCode.
// Callers branch on the code with Is or CodeOf rather than on message text:
//
//	if dberrors.Is(err, dberrors.ErrCodeConnection) {
//	    // discard the session, optionally retry with a fresh one
//	}
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the unified error type.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Op names the operation that failed ("open", "begin", "scan", ...).
	Op string `json:"op,omitempty"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the caller may retry the operation.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	prefix := string(e.Code)
	if e.Op != "" {
		prefix += " " + e.Op
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an Error with retryable detection based on the code.
func New(code ErrorCode, op, message string) *Error {
	return &Error{
		Code:      code,
		Op:        op,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Constructors ---

// Discovery reports a module that could not be loaded or instantiated.
func Discovery(path string, cause error) *Error {
	return &Error{
		Code: ErrCodeDiscovery, Op: "scan",
		Message: fmt.Sprintf("cannot load providers from %s", path),
		Details: map[string]any{"path": path}, Cause: cause,
	}
}

// Connection reports an open or close failure. The session that produced it
// must be discarded.
func Connection(op string, cause error) *Error {
	return &Error{
		Code: ErrCodeConnection, Op: op,
		Message:   "connection failed",
		Retryable: true, Cause: cause,
	}
}

// Transaction reports a begin, commit or rollback failure.
func Transaction(op string, cause error) *Error {
	return &Error{
		Code: ErrCodeTransaction, Op: op,
		Message: "transaction failed",
		Cause:   cause,
	}
}

// Execution reports a failed statement. The session stays usable.
func Execution(sql string, cause error) *Error {
	return &Error{
		Code: ErrCodeExecution, Op: "execute",
		Message: "statement failed",
		Details: map[string]any{"sql": sql}, Cause: cause,
	}
}

// InvalidState reports an operation attempted in the wrong session state.
func InvalidState(op, state string) *Error {
	return &Error{
		Code: ErrCodeInvalidState, Op: op,
		Message: fmt.Sprintf("not allowed while session is %s", state),
		Details: map[string]any{"state": state},
	}
}

// --- Inspection ---

// CodeOf returns the code of the first *Error in err's chain, or "" if there
// is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err's chain contains an *Error with the given code.
func Is(err error, code ErrorCode) bool {
	for err != nil {
		var e *Error
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// IsRetryable reports whether the first *Error in err's chain is retryable.
// Errors outside the taxonomy are not retryable.
func IsRetryable(err error) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Retryable
	}
	return false
}
