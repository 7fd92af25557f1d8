package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes analysis failures.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// Transport indicates the scoring service could not be reached or
	// answered with a failure status.
	Transport
	// Parse indicates the response body was not a usable JSON object.
	Parse
	// Backend indicates the service answered with an "error" field.
	Backend
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case Parse:
		return "parse"
	case Backend:
		return "backend"
	default:
		return "unknown"
	}
}

// AppError carries a category, message, and original cause.
type AppError struct {
	Kind    Kind
	Status  int // HTTP status returned by the scoring service, if any
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of err when it is an *AppError, Unknown otherwise.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}
