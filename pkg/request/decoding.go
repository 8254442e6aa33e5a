package request

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"courier/pkg/codec"
	"courier/pkg/transport"
)

// Transformer turns a successful transport result into a typed value.
type Transformer[T any] func(transport.Success) (T, error)

// DecodingFailureMapper converts a decoding failure into the caller's error type.
type DecodingFailureMapper func(*DecodingFailure) error

// DecodingFailureKind classifies a decoding failure.
type DecodingFailureKind int

const (
	// DecodingError means the body did not match the expected shape.
	DecodingError DecodingFailureKind = iota
	// InvalidEmptyResponse means a body was present where none was allowed.
	InvalidEmptyResponse
	// GenericFailure covers any other transformer error.
	GenericFailure
)

func (k DecodingFailureKind) String() string {
	switch k {
	case DecodingError:
		return "decoding_error"
	case InvalidEmptyResponse:
		return "invalid_empty_response"
	default:
		return "generic_failure"
	}
}

// DecodingFailure is a successful transport call whose body could not be
// turned into the expected value. It keeps the response for inspection.
type DecodingFailure struct {
	Kind     DecodingFailureKind
	Err      error
	Response transport.Response
}

// NewDecodingError wraps a parse error.
func NewDecodingError(err error, resp transport.Response) *DecodingFailure {
	return &DecodingFailure{Kind: DecodingError, Err: err, Response: resp}
}

// NewInvalidEmptyResponse reports an unexpected body.
func NewInvalidEmptyResponse(resp transport.Response) *DecodingFailure {
	return &DecodingFailure{Kind: InvalidEmptyResponse, Response: resp}
}

// NewGenericFailure wraps an arbitrary transformer error.
func NewGenericFailure(err error, resp transport.Response) *DecodingFailure {
	return &DecodingFailure{Kind: GenericFailure, Err: err, Response: resp}
}

func (f *DecodingFailure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("decoding failure %s (HTTP %d, %d bytes)", f.Kind, f.Response.StatusCode, len(f.Response.Body))
	}
	return fmt.Sprintf("decoding failure %s (HTTP %d): %v", f.Kind, f.Response.StatusCode, f.Err)
}

func (f *DecodingFailure) Unwrap() error {
	return f.Err
}

func (f *DecodingFailure) Is(target error) bool {
	return target == ErrDecoding
}

// Decode returns a transformer that unmarshals the body with c.
func Decode[T any](c codec.Codec) Transformer[T] {
	return func(s transport.Success) (T, error) {
		var v T
		if err := c.Unmarshal(s.Body(), &v); err != nil {
			var zero T
			return zero, NewDecodingError(err, s.Response)
		}
		return v, nil
	}
}

// DecodeContainer returns a transformer for bodies that wrap the value under
// rootKey, e.g. {"data": {...}}. Codecs that do not implement codec.Container
// yield a transformer that always fails with ErrInvalidRequest.
func DecodeContainer[T any](c codec.Codec, rootKey string) Transformer[T] {
	cc, ok := c.(codec.Container)
	if !ok {
		return func(transport.Success) (T, error) {
			var zero T
			return zero, containerUnsupported(c)
		}
	}
	return func(s transport.Success) (T, error) {
		var v T
		found, err := cc.UnmarshalElement(s.Body(), rootKey, &v)
		if err != nil {
			var zero T
			return zero, NewDecodingError(err, s.Response)
		}
		if !found {
			var zero T
			return zero, NewDecodingError(fmt.Errorf("%w %q", ErrMissingRootKey, rootKey), s.Response)
		}
		return v, nil
	}
}

func containerUnsupported(c codec.Codec) error {
	return fmt.Errorf("%w: %s bodies cannot hold a root key", ErrInvalidRequest, c.ContentType())
}

// DecodeHTML returns a transformer that parses the body as HTML.
func DecodeHTML() Transformer[*goquery.Document] {
	return func(s transport.Success) (*goquery.Document, error) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(s.Body()))
		if err != nil {
			return nil, NewDecodingError(err, s.Response)
		}
		return doc, nil
	}
}

// FromData adapts a plain body transform. Its errors become generic failures.
func FromData[T any](fn func([]byte) (T, error)) Transformer[T] {
	return func(s transport.Success) (T, error) {
		v, err := fn(s.Body())
		if err != nil {
			var zero T
			return zero, NewGenericFailure(err, s.Response)
		}
		return v, nil
	}
}

// RawBytes returns a transformer that yields a copy of the body.
func RawBytes() Transformer[[]byte] {
	return func(s transport.Success) ([]byte, error) {
		return bytes.Clone(s.Body()), nil
	}
}

// Text returns a transformer that yields the body as a string.
func Text() Transformer[string] {
	return func(s transport.Success) (string, error) {
		return string(s.Body()), nil
	}
}

// Map converts the value produced by t. Errors from t pass through unchanged.
func Map[T, U any](t Transformer[T], fn func(T) U) Transformer[U] {
	return func(s transport.Success) (U, error) {
		v, err := t(s)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v), nil
	}
}
