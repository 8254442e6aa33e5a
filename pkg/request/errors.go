package request

import "errors"

var (
	// ErrDecoding matches every *DecodingFailure.
	ErrDecoding = errors.New("decoding failure")

	// ErrInvalidRequest is returned for requests that cannot be sent.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrMissingRootKey is wrapped when a container body lacks its root key.
	ErrMissingRootKey = errors.New("missing root key")
)
