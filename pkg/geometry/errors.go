package geometry

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes scene query backend failures
type ErrorCode int

const (
	Unknown ErrorCode = iota
	InvalidArgument
	OutOfMemory
	UnsupportedHardware
	Cancelled
)

func (c ErrorCode) String() string {
	switch c {
	case InvalidArgument:
		return "invalid argument"
	case OutOfMemory:
		return "out of memory"
	case UnsupportedHardware:
		return "unsupported hardware"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Sentinel errors for errors.Is checks against a QueryError's code
var (
	ErrInvalidArgument     = &QueryError{Code: InvalidArgument}
	ErrOutOfMemory         = &QueryError{Code: OutOfMemory}
	ErrUnsupportedHardware = &QueryError{Code: UnsupportedHardware}
	ErrCancelled           = &QueryError{Code: Cancelled}
	ErrUnknown             = &QueryError{Code: Unknown}
)

// QueryError is returned when an intersection backend cannot be built or queried
type QueryError struct {
	Code    ErrorCode
	Message string
}

func newQueryError(code ErrorCode, format string, args ...interface{}) *QueryError {
	return &QueryError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *QueryError) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any QueryError carrying the same code
func (e *QueryError) Is(target error) bool {
	var other *QueryError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}
