package domain

import (
	"context"
	"net/url"
	"time"

	"courier/pkg/request"
)

// Decoder names how a response body is turned into a printable value.
type Decoder string

const (
	DecodeJSON           Decoder = "json"
	DecodeYAML           Decoder = "yaml"
	DecodeCBOR           Decoder = "cbor"
	DecodeHTML           Decoder = "html"
	DecodeRaw            Decoder = "raw"
	DecodeEmpty          Decoder = "empty"
	DecodeValidatedEmpty Decoder = "validated-empty"
)

// Decoders lists every supported decoder.
func Decoders() []Decoder {
	return []Decoder{DecodeJSON, DecodeYAML, DecodeCBOR, DecodeHTML, DecodeRaw, DecodeEmpty, DecodeValidatedEmpty}
}

// Valid reports whether d is a known decoder.
func (d Decoder) Valid() bool {
	for _, known := range Decoders() {
		if d == known {
			return true
		}
	}
	return false
}

// RequestDefinition is one named request, either from a definitions file or
// from exec flags.
type RequestDefinition struct {
	Name        string
	Method      request.Method
	URL         *url.URL
	Headers     map[request.HeaderKey]request.HeaderValue
	Body        []byte
	ContentType request.HeaderValue
	CachePolicy *request.CachePolicy
	Timeout     *time.Duration
	Decode      Decoder
	RootKey     string
}

// DefinitionLoader loads request definitions from a file.
type DefinitionLoader interface {
	Load(ctx context.Context, path string) ([]RequestDefinition, error)
}

// RequestFilter determines whether a named request is skipped.
type RequestFilter interface {
	ShouldExclude(name string) bool
}
