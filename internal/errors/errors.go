// Package errors wraps errors with stack traces and collects multiple failures, so that a scenario or
// filter problem can be reported with the exact call site that produced it.
package errors

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New wraps the given value in an error carrying the current stack trace. If the value already
// carries a stack trace it is returned as is, a nil value returns nil.
func New(val any) error {
	if val == nil {
		return nil
	}

	if err, ok := val.(error); ok && ContainsStackTrace(err) {
		return err
	}

	return goerrors.Wrap(val, 1)
}

// Errorf formats an error message and wraps it with the current stack trace.
// The `%w` verb is honoured, so the result still unwraps to the given cause.
func Errorf(format string, args ...any) error {
	return goerrors.Wrap(fmt.Errorf(format, args...), 1)
}

// WithStackTrace wraps err with a stack trace unless it already has one. Returns nil for nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	if ContainsStackTrace(err) {
		return err
	}

	return goerrors.Wrap(err, 1)
}

// WithPrefix wraps err with a stack trace and prepends the formatted message.
func WithPrefix(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return goerrors.WrapPrefix(err, fmt.Sprintf(format, args...), 1)
}

// ErrorStack returns the stack traces of every wrapped error, joined by new lines.
func ErrorStack(err error) string {
	var stacks string

	for _, err := range UnwrapMultiErrors(err) {
		for err != nil {
			if stacked, ok := err.(interface{ ErrorStack() string }); ok {
				if stacks != "" {
					stacks += "\n"
				}

				stacks += stacked.ErrorStack()

				break
			}

			err = errors.Unwrap(err)
		}
	}

	return stacks
}

// ContainsStackTrace returns true if err or one of the errors it wraps already records a stack trace.
func ContainsStackTrace(err error) bool {
	for _, err := range UnwrapMultiErrors(err) {
		for err != nil {
			if _, ok := err.(interface{ ErrorStack() string }); ok {
				return true
			}

			err = errors.Unwrap(err)
		}
	}

	return false
}

// IsContextCanceled returns true if err was caused by `context.Canceled`.
func IsContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Recover tries to recover from panics, and if it succeeds, calls the given onPanic function with an error that
// explains the cause of the panic. This function should only be called from a defer statement.
func Recover(onPanic func(cause error)) {
	if rec := recover(); rec != nil {
		err, isError := rec.(error)
		if !isError {
			err = fmt.Errorf("%v", rec) //nolint:err113
		}

		onPanic(goerrors.Wrap(err, 2))
	}
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap returns the result of calling the Unwrap method on err, if any.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// UnwrapMultiErrors flattens nested multi errors into a slice.
func UnwrapMultiErrors(err error) []error {
	if err == nil {
		return nil
	}

	errs := []error{err}

	for index := 0; index < len(errs); index++ {
		err := errs[index]

		for err != nil {
			if multi, ok := err.(interface{ Unwrap() []error }); ok {
				errs = append(errs[:index], errs[index+1:]...)
				index--

				errs = append(errs, multi.Unwrap()...)

				break
			}

			err = errors.Unwrap(err)
		}
	}

	return errs
}
