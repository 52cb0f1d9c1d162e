package ocpp

import (
	"errors"
	"fmt"

	"github.com/pazzk-labs/ocpp/internal/config"
	"github.com/pazzk-labs/ocpp/internal/queue"
)

// Code is the public error taxonomy every operation that can fail
// returns through *Error.
type Code string

const (
	CodeInvalidArgument  Code = "invalid argument"
	CodePermissionDenied Code = "permission denied"
	CodeNoMemory         Code = "no memory"
	CodeBusy             Code = "busy"
	CodeNoMessage        Code = "no message"
	CodeNoLink           Code = "no link"
	CodeAlreadyHandled   Code = "already handled"
	CodeTransportFailure Code = "transport failure"
)

// Error is the structured error type returned by every public
// operation: the failing operation, a taxonomy code, an optional
// message, and the wrapped cause.
type Error struct {
	Op    string
	Code  Code
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Op != "" {
		return fmt.Sprintf("ocpp: %s: %s", e.Op, msg)
	}
	return fmt.Sprintf("ocpp: %s", msg)
}

func (e *Error) Unwrap() error { return e.Inner }

// Is supports errors.Is(err, ErrBusy) style comparisons against the
// package-level sentinels below, matching by Code rather than identity.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// Sentinel *Error values for errors.Is comparisons. Each carries only a
// Code; Op/Msg/Inner are filled in by WrapError/NewError at the call
// site so the sentinel itself stays comparable by Code alone.
var (
	ErrInvalidArgument  = &Error{Code: CodeInvalidArgument}
	ErrPermissionDenied = &Error{Code: CodePermissionDenied}
	ErrNoMemory         = &Error{Code: CodeNoMemory}
	ErrBusy             = &Error{Code: CodeBusy}
	ErrNoMessage        = &Error{Code: CodeNoMessage}
	ErrNoLink           = &Error{Code: CodeNoLink}
	ErrAlreadyHandled   = &Error{Code: CodeAlreadyHandled}
	ErrTransportFailure = &Error{Code: CodeTransportFailure}
)

// NewError builds an *Error for a call site that detects a problem
// itself rather than wrapping one from an internal package.
func NewError(op string, code Code, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// WrapError classifies an internal package's sentinel error (from
// internal/queue, internal/config) into the public Code
// taxonomy, attaching op for context. Returns nil if err is nil.
func WrapError(op string, err error) *Error {
	if err == nil {
		return nil
	}
	if existing, ok := err.(*Error); ok {
		return &Error{Op: op, Code: existing.Code, Msg: existing.Msg, Inner: existing.Inner}
	}
	return &Error{Op: op, Code: classify(err), Msg: err.Error(), Inner: err}
}

func classify(err error) Code {
	switch {
	case errors.Is(err, config.ErrUnknownKey), errors.Is(err, config.ErrTypeMismatch),
		errors.Is(err, config.ErrValueTooLong), errors.Is(err, config.ErrIndexOutOfRange):
		return CodeInvalidArgument
	case errors.Is(err, config.ErrNotWritable):
		return CodePermissionDenied
	case errors.Is(err, queue.ErrPoolExhausted):
		return CodeNoMemory
	case errors.Is(err, queue.ErrNoMessage):
		return CodeNoMessage
	case errors.Is(err, queue.ErrNoLink):
		return CodeNoLink
	case errors.Is(err, queue.ErrBusy):
		return CodeBusy
	case errors.Is(err, queue.ErrAlreadyHandled):
		return CodeAlreadyHandled
	default:
		return CodeTransportFailure
	}
}

// IsCode reports whether err is an *Error (at any wrap depth) carrying code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
