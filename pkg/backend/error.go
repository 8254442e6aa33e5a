package backend

import (
	"errors"
	"fmt"

	"courier/pkg/request"
	"courier/pkg/transport"
)

// ErrorKind classifies a backend Error.
type ErrorKind int

const (
	// NetworkError wraps a transport failure.
	NetworkError ErrorKind = iota
	// DataTransformationError wraps a response that could not be decoded.
	DataTransformationError
)

func (k ErrorKind) String() string {
	if k == DataTransformationError {
		return "data_transformation_error"
	}
	return "network_error"
}

// Error is a ready-made caller error type. Plug FromTransportFailure and
// FromDecodingFailure into a request to receive only *Error values.
type Error struct {
	Kind      ErrorKind
	Transport transport.Error
	Response  *transport.Response
	Err       error
}

// FromTransportFailure converts a transport failure. It fits
// request.WithTransportFailureMapper.
func FromTransportFailure(f *transport.Failure) error {
	return &Error{
		Kind:      NetworkError,
		Transport: f.Err,
		Response:  f.Response,
		Err:       f,
	}
}

// FromDecodingFailure converts a decoding failure. It fits
// request.WithDecodingFailureMapper.
func FromDecodingFailure(f *request.DecodingFailure) error {
	resp := f.Response
	return &Error{
		Kind:     DataTransformationError,
		Response: &resp,
		Err:      f,
	}
}

// Mappers returns the request options that map every failure to *Error.
func Mappers() []request.Option {
	return []request.Option{
		request.WithTransportFailureMapper(FromTransportFailure),
		request.WithDecodingFailureMapper(FromDecodingFailure),
	}
}

func (e *Error) Error() string {
	if e.Kind == NetworkError {
		return fmt.Sprintf("%s: %s", e.Kind, e.Transport.Error())
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status of the response, or 0 when there was none.
func (e *Error) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
