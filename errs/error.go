package errs

import (
	"errors"
	"fmt"
)

// Application error codes. They are mapped to HTTP statuses and
// localized message keys at the transport layer.
const (
	ECONFLICT       = "conflict"
	EFORBIDDEN      = "forbidden"
	EINTERNAL       = "internal"
	EINVALID        = "invalid"
	ENOTFOUND       = "not_found"
	ENOTIMPLEMENTED = "not_implemented"
	EUNAUTHORIZED   = "unauthorized"
)

// Error is an application error with a machine-readable code and a
// human-readable message. Fields optionally carries per-field detail
// for validation failures.
type Error struct {
	Code    string
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("application error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns a new Error with the given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Invalidf returns an EINVALID error carrying field-level detail.
func Invalidf(fields map[string][]string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    EINVALID,
		Message: fmt.Sprintf(format, args...),
		Fields:  fields,
	}
}

// ErrorCode unwraps err and returns its application code. A nil error
// has no code; a non-application error is treated as internal.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps err and returns its message. Non-application
// errors yield a generic message so internals never leak to clients.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorFields unwraps err and returns its field-level detail, if any.
func ErrorFields(err error) map[string][]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
