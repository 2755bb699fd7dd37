package errors

import (
	"errors"
	"fmt"
)

// Error is a coded failure with optional metadata for callers and logs
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithMeta sets key on the error and returns it for chaining
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

// New returns an error with code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds message to err. An *Error in the chain keeps its code and a copy
// of its metadata; anything else becomes Internal. Wrap(nil) is nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	code := CodeInternal
	var inner *Error
	if errors.As(err, &inner) {
		code = inner.Code
	}
	return wrap(err, code, message)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err under an explicit code, keeping inner metadata
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return wrap(err, code, message)
}

func wrap(err error, code Code, message string) *Error {
	out := &Error{Code: code, Message: message, Cause: err}

	var inner *Error
	if errors.As(err, &inner) && len(inner.Meta) > 0 {
		out.Meta = make(map[string]any, len(inner.Meta))
		for k, v := range inner.Meta {
			out.Meta[k] = v
		}
	}
	return out
}

// InvalidInput reports a malformed argument
func InvalidInput(message string) *Error {
	return New(CodeInvalidInput, message)
}

// InvalidInputf reports a malformed argument
func InvalidInputf(format string, args ...any) *Error {
	return newf(CodeInvalidInput, format, args...)
}

// IllegalOperation reports a move the rules do not allow
func IllegalOperation(message string) *Error {
	return New(CodeIllegalOperation, message)
}

// IllegalOperationf reports a move the rules do not allow
func IllegalOperationf(format string, args ...any) *Error {
	return newf(CodeIllegalOperation, format, args...)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func NotFoundf(format string, args ...any) *Error {
	return newf(CodeNotFound, format, args...)
}

func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

func AlreadyExistsf(format string, args ...any) *Error {
	return newf(CodeAlreadyExists, format, args...)
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

func Internalf(format string, args ...any) *Error {
	return newf(CodeInternal, format, args...)
}

// Unavailable reports a backing store that could not be reached
func Unavailable(message string) *Error {
	return New(CodeUnavailable, message)
}
