package errors

import (
	"errors"
)

// Is is errors.Is, so callers need only this package
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func find(err error) (*Error, bool) {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		return nil, false
	}
	return e, true
}

// GetCode returns the outermost code in err. Nil is CodeOK and an uncoded
// error is CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := find(err); ok {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the outermost metadata in err, or nil
func GetMeta(err error) map[string]any {
	if e, ok := find(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the outermost message without the code prefix
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

func IsInvalidInput(err error) bool {
	return GetCode(err) == CodeInvalidInput
}

func IsIllegalOperation(err error) bool {
	return GetCode(err) == CodeIllegalOperation
}

func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}
