package request

import (
	"net/url"

	"courier/pkg/transport"
)

// EmptyResponse is the value produced by requests that expect no body.
type EmptyResponse struct{}

// EmptyDecodingStrategy builds the transformer for an empty-response request.
// The mapper it receives is applied to failures by the strategy itself; Request
// passes an identity mapper and maps the returned *DecodingFailure once.
type EmptyDecodingStrategy struct {
	transformer func(DecodingFailureMapper) Transformer[EmptyResponse]
}

// Transformer returns the strategy's transformer using mapper for failures.
func (s EmptyDecodingStrategy) Transformer(mapper DecodingFailureMapper) Transformer[EmptyResponse] {
	if s.transformer == nil {
		return DefaultEmpty().transformer(mapper)
	}
	return s.transformer(mapper)
}

// CustomEmpty creates a strategy from an arbitrary transformer factory.
func CustomEmpty(fn func(DecodingFailureMapper) Transformer[EmptyResponse]) EmptyDecodingStrategy {
	return EmptyDecodingStrategy{transformer: fn}
}

// DefaultEmpty always succeeds, whatever the body.
func DefaultEmpty() EmptyDecodingStrategy {
	return EmptyDecodingStrategy{transformer: func(DecodingFailureMapper) Transformer[EmptyResponse] {
		return func(transport.Success) (EmptyResponse, error) {
			return EmptyResponse{}, nil
		}
	}}
}

// ValidatedEmpty succeeds only when the body is absent or empty.
func ValidatedEmpty() EmptyDecodingStrategy {
	return EmptyDecodingStrategy{transformer: func(mapper DecodingFailureMapper) Transformer[EmptyResponse] {
		return func(s transport.Success) (EmptyResponse, error) {
			if !s.Response.IsEmpty() {
				return EmptyResponse{}, mapper(NewInvalidEmptyResponse(s.Response))
			}
			return EmptyResponse{}, nil
		}
	}}
}

// NewEmpty creates a request that expects no response body.
func NewEmpty(method Method, u *url.URL, strategy EmptyDecodingStrategy, opts ...Option) Request[EmptyResponse] {
	return New(method, u, strategy.Transformer(passDecodingFailure), opts...)
}

func passDecodingFailure(f *DecodingFailure) error { return f }
