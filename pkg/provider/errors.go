package provider

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the rotation components matches
// exactly one of these with errors.Is.
var (
	ErrProvider      = errors.New("provider error")
	ErrNotFound      = errors.New("resource not found")
	ErrPartialUpdate = errors.New("partial update")
	ErrInvalidInput  = errors.New("invalid input")
)

// Error is a classified failure from a provider call or a rotation step
type Error struct {
	Kind     error  // one of the Err* kinds above
	Op       string // operation that failed, e.g. "DescribeImages"
	Resource string // identifier involved, if any
	Code     string // provider error code, if any
	Message  string // human-readable provider message
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = e.Kind.Error()
	}

	prefix := e.Op
	if e.Resource != "" {
		prefix = fmt.Sprintf("%s %s", e.Op, e.Resource)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %s", prefix, e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error kind
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// NotFound returns an ErrNotFound kind error
func NotFound(op, resource, format string, args ...any) *Error {
	return &Error{
		Kind:     ErrNotFound,
		Op:       op,
		Resource: resource,
		Message:  fmt.Sprintf(format, args...),
	}
}

// InvalidInput returns an ErrInvalidInput kind error
func InvalidInput(op, format string, args ...any) *Error {
	return &Error{
		Kind:    ErrInvalidInput,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Kind returns the name of the error kind for reporting
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPartialUpdate):
		return "PartialUpdateFailure"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	default:
		return "ProviderError"
	}
}
