package request

import (
	"fmt"
	"net/url"

	"courier/pkg/codec"
)

// Body is a request payload with its content type.
type Body struct {
	Data        []byte
	ContentType HeaderValue
}

// RawBody wraps bytes with an explicit content type.
func RawBody(data []byte, contentType HeaderValue) Body {
	return Body{Data: data, ContentType: contentType}
}

// JSONBody encodes v as JSON.
func JSONBody(v any) (Body, error) {
	return CodecBody(codec.JSON(), v)
}

// CodecBody encodes v with the given codec and uses its content type.
func CodecBody(c codec.Codec, v any) (Body, error) {
	data, err := c.Marshal(v)
	if err != nil {
		return Body{}, fmt.Errorf("failed to encode %s body: %w", c.ContentType(), err)
	}
	return Body{Data: data, ContentType: HeaderValue(c.ContentType())}, nil
}

// FormBody encodes values as application/x-www-form-urlencoded.
func FormBody(values url.Values) Body {
	return Body{Data: []byte(values.Encode()), ContentType: ValueApplicationFormURLEncoded}
}
