package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat     = NewError("INVALID_FORMAT", "invalid attribute format")
	ErrInvalidDateFormat = NewError("INVALID_DATE_FORMAT", "invalid date format")
	ErrDateTooEarly      = NewError("DATE_TOO_EARLY", "updated date is before the earliest accepted date")
	ErrDateTooLate       = NewError("DATE_TOO_LATE", "updated date is too far in the future")
	ErrInvalidOptions    = NewError("INVALID_OPTIONS", "invalid options for test kind")
	ErrUndefinedKind     = NewError("UNDEFINED_KIND", "undefined test kind")
	ErrEmptyResourceList = NewError("EMPTY_RESOURCE_LIST", "at least one resource must be specified")
	ErrDuplicateResource = NewError("DUPLICATE_RESOURCE", "resources may not be specified multiple times")
	ErrUnknownResource   = NewError("UNKNOWN_RESOURCE", "unknown resources")
	ErrInternal          = NewError("INTERNAL_ERROR", "internal error")
)

// Error is a coded failure tied to the attribute text that caused it.
type Error struct {
	Code      string
	Message   string
	Attribute string
	Details   map[string]interface{}
	Cause     error
}

func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

func (e *Error) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		if detailMsg, ok := e.Details["message"].(string); ok && detailMsg != "" {
			msg = detailMsg
		}
	}

	if e.Attribute != "" {
		msg = fmt.Sprintf("%s (attribute: %q)", msg, e.Attribute)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on Code so errors.Is works against the package sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func (e *Error) WithCause(cause error) *Error {
	err := e.clone()
	err.Cause = cause
	return err
}

func (e *Error) WithAttribute(attribute string) *Error {
	err := e.clone()
	err.Attribute = attribute
	return err
}

func (e *Error) WithMessage(format string, args ...interface{}) *Error {
	return e.WithDetail("message", fmt.Sprintf(format, args...))
}

func (e *Error) WithDetail(key string, value interface{}) *Error {
	err := e.clone()
	err.Details[key] = value
	return err
}

func (e *Error) clone() *Error {
	err := *e
	err.Details = make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		err.Details[k] = v
	}
	return &err
}

// CodeOf returns the code of the first *Error in err's chain, or
// ErrInternal's code for foreign errors.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal.Code
}

// AttributeOf returns the offending attribute text carried by err, if any.
func AttributeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Attribute
	}
	return ""
}

// IsParseError reports whether err describes a malformed attribute rather
// than an internal failure.
func IsParseError(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code != ErrInternal.Code
	}
	return false
}
