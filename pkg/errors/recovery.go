package errors

import (
	"fmt"
	"runtime/debug"
)

// RecoverPanic converts a recovered panic value into an internal error
// carrying the stack trace.
func RecoverPanic(r interface{}) error {
	if r == nil {
		return nil
	}

	var err error
	switch v := r.(type) {
	case error:
		err = v
	case string:
		err = fmt.Errorf("panic: %s", v)
	default:
		err = fmt.Errorf("panic: %v", v)
	}

	return ErrInternal.
		WithCause(err).
		WithDetail("panic", true).
		WithDetail("stack_trace", string(debug.Stack()))
}

// RecoverPanicWithAttribute is RecoverPanic tagged with the attribute text
// that was being processed.
func RecoverPanicWithAttribute(r interface{}, attribute string) error {
	err := RecoverPanic(r)
	if err == nil {
		return nil
	}
	return err.(*Error).WithAttribute(attribute)
}
