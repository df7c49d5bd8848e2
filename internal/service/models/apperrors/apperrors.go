package apperrors

import (
	"errors"
	"fmt"
)

// Taxonomy sentinels. Every failure leaving the data layer wraps exactly one of them.
var (
	ErrConnection = errors.New("database connection failed")
	ErrSetup      = errors.New("database setup failed")
	ErrQuery      = errors.New("query execution failed")
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// Error carries an error kind, a message safe to show callers and the
// underlying cause. The cause is for logs only and never crosses the
// HTTP boundary.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}

	return []error{e.Kind}
}

// New creates an error of the given kind with a caller-safe message.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind around an underlying cause.
func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Message returns the caller-safe message of err, or a generic fallback
// when err is not an *Error.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return "internal error"
}
