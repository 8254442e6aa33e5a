package transport

import (
	"errors"
	"fmt"
)

// Error categories for transport failures.
var (
	ErrNoInternetConnection = errors.New("no internet connection")
	ErrTimedOut             = errors.New("request timed out")
	ErrCancelled            = errors.New("request cancelled")
)

// Code classifies a transport failure.
type Code int

const (
	Unknown Code = iota
	NoInternetConnection
	TimedOut
	Cancelled
	Redirection
	ClientError
	ServerError
)

func (c Code) String() string {
	switch c {
	case NoInternetConnection:
		return "no_internet_connection"
	case TimedOut:
		return "timed_out"
	case Cancelled:
		return "cancelled"
	case Redirection:
		return "redirection"
	case ClientError:
		return "client_error"
	case ServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Error is a typed transport error. StatusCode is only set for codes derived
// from an HTTP status (Redirection, ClientError, ServerError, and Unknown when
// the status was outside the known ranges).
type Error struct {
	Code       Code
	StatusCode int
	Underlying error
}

// NewError creates a transport error for the given code.
func NewError(code Code) Error {
	return Error{Code: code}
}

// NewStatusError creates a transport error carrying an HTTP status code.
func NewStatusError(code Code, statusCode int) Error {
	return Error{Code: code, StatusCode: statusCode}
}

func (e Error) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("transport error %s (HTTP %d)", e.Code, e.StatusCode)
	case e.Underlying != nil:
		return fmt.Sprintf("transport error %s: %v", e.Code, e.Underlying)
	default:
		return fmt.Sprintf("transport error %s", e.Code)
	}
}

func (e Error) Unwrap() error {
	return e.Underlying
}

func (e Error) Is(target error) bool {
	switch e.Code {
	case NoInternetConnection:
		return target == ErrNoInternetConnection
	case TimedOut:
		return target == ErrTimedOut
	case Cancelled:
		return target == ErrCancelled
	default:
		return false
	}
}

// Equal reports whether two errors have the same code and status, ignoring
// the underlying platform error.
func (e Error) Equal(other Error) bool {
	return e.Code == other.Code && e.StatusCode == other.StatusCode
}
