// Package apperror defines the error taxonomy shared by usecases and handlers.
// Every failure that reaches the HTTP boundary is either an *Error or is
// wrapped into an Internal one there.
package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

type Error struct {
	StatusCode int
	Message    string
	Errors     []string
	Err        error
	stack      []uintptr
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Stack renders the call stack captured when the error was created.
func (e *Error) Stack() string {
	if len(e.stack) == 0 {
		return ""
	}
	frames := runtime.CallersFrames(e.stack)
	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}

// WithDetails attaches field level messages shown in the "errors" array.
func (e *Error) WithDetails(details ...string) *Error {
	e.Errors = append(e.Errors, details...)
	return e
}

func newError(status int, message string, err error) *Error {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	return &Error{
		StatusCode: status,
		Message:    message,
		Err:        err,
		stack:      pcs[:n],
	}
}

func Validation(message string) *Error {
	return newError(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *Error {
	return newError(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *Error {
	return newError(http.StatusForbidden, message, nil)
}

func NotFound(message string) *Error {
	return newError(http.StatusNotFound, message, nil)
}

func Conflict(message string) *Error {
	return newError(http.StatusConflict, message, nil)
}

func Internal(message string, err error) *Error {
	return newError(http.StatusInternalServerError, message, err)
}

// From converts any error into an *Error. Context deadlines are reported as
// timeouts; everything unrecognised becomes a 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(http.StatusInternalServerError, "Request timed out", err)
	}
	return newError(http.StatusInternalServerError, "Internal Server Error", err)
}

func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
