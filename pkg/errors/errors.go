// Package errors carries the coded error type used across xdgmime.
//
// Every failure that crosses a package boundary is a *MimeError whose Code
// is stable, so tests and the JSON renderer can match on it instead of on
// message text.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// configuration
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// shared-mime-info database
	ErrDatabaseLoad ErrorCode = "DATABASE_LOAD"
	ErrMagicFormat  ErrorCode = "MAGIC_FORMAT"

	// associations
	ErrAppNotFound ErrorCode = "APP_NOT_FOUND"

	// inputs on disk
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
)

// MimeError is an error tagged with a code and optional structured details.
type MimeError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Wrapped error
}

func (e *MimeError) Error() string {
	msg := "[" + string(e.Code) + "] " + e.Message
	if e.Wrapped == nil {
		return msg
	}
	return msg + ": " + e.Wrapped.Error()
}

func (e *MimeError) Unwrap() error { return e.Wrapped }

// Is reports whether target is a *MimeError with the same code, so
// errors.Is(err, errors.New(code, "")) matches regardless of message.
func (e *MimeError) Is(target error) bool {
	t, ok := target.(*MimeError)
	return ok && t.Code == e.Code
}

func New(code ErrorCode, message string) *MimeError {
	return &MimeError{Code: code, Message: message, Details: map[string]any{}}
}

func Newf(code ErrorCode, format string, args ...any) *MimeError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap returns nil when err is nil. Callers that return a plain error
// must check err first to avoid a typed nil.
func Wrap(err error, code ErrorCode, message string) *MimeError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

func Wrapf(err error, code ErrorCode, format string, args ...any) *MimeError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// FromFS classifies a filesystem error for path: missing files become
// ErrFileNotFound, everything else ErrFileAccess. The path is recorded
// as a detail.
func FromFS(err error, path string) *MimeError {
	if err == nil {
		return nil
	}
	var e *MimeError
	if errors.Is(err, fs.ErrNotExist) {
		e = Wrapf(err, ErrFileNotFound, "%s does not exist", path)
	} else {
		e = Wrapf(err, ErrFileAccess, "cannot access %s", path)
	}
	return e.WithDetail("path", path)
}

func (e *MimeError) WithDetail(key string, value any) *MimeError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

func (e *MimeError) WithDetails(details map[string]any) *MimeError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

func find(err error) *MimeError {
	var e *MimeError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsErrorCode reports whether the outermost *MimeError in err's chain
// carries code.
func IsErrorCode(err error, code ErrorCode) bool {
	e := find(err)
	return e != nil && e.Code == code
}

// GetErrorCode returns ErrUnknown for errors outside this package.
func GetErrorCode(err error) ErrorCode {
	if e := find(err); e != nil {
		return e.Code
	}
	return ErrUnknown
}

func GetErrorDetails(err error) map[string]any {
	if e := find(err); e != nil {
		return e.Details
	}
	return nil
}
