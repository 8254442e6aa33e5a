// Package request describes HTTP requests declaratively: what to send and how
// to turn the transport's answer into a typed value or a typed error.
package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"courier/pkg/codec"
	"courier/pkg/transport"
)

// TransportFailureMapper converts a transport failure into the caller's error type.
type TransportFailureMapper func(*transport.Failure) error

type descriptor struct {
	method      Method
	url         *url.URL
	headers     map[HeaderKey]HeaderValue
	body        *Body
	cachePolicy CachePolicy
	timeout     time.Duration

	mapDecodingFailure  DecodingFailureMapper
	mapTransportFailure TransportFailureMapper
}

// Option configures a request under construction.
type Option func(*descriptor)

// WithDefaults applies a cache policy and timeout. Pass it before WithTimeout
// or WithCachePolicy; later options win.
func WithDefaults(d Defaults) Option {
	return func(desc *descriptor) {
		desc.cachePolicy = d.CachePolicy
		desc.timeout = d.Timeout
	}
}

// WithHeaders merges headers into the request.
func WithHeaders(headers map[HeaderKey]HeaderValue) Option {
	return func(desc *descriptor) {
		maps.Copy(desc.headers, headers)
	}
}

// WithHeader sets one header.
func WithHeader(key HeaderKey, value HeaderValue) Option {
	return func(desc *descriptor) {
		desc.headers[key] = value
	}
}

// WithBody sets the request payload.
func WithBody(body Body) Option {
	return func(desc *descriptor) {
		b := Body{Data: bytes.Clone(body.Data), ContentType: body.ContentType}
		desc.body = &b
	}
}

// WithCachePolicy sets the cache policy.
func WithCachePolicy(policy CachePolicy) Option {
	return func(desc *descriptor) {
		desc.cachePolicy = policy
	}
}

// WithTimeout sets the request timeout. Zero disables the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(desc *descriptor) {
		desc.timeout = timeout
	}
}

// WithDecodingFailureMapper sets how decoding failures become caller errors.
func WithDecodingFailureMapper(mapper DecodingFailureMapper) Option {
	return func(desc *descriptor) {
		if mapper != nil {
			desc.mapDecodingFailure = mapper
		}
	}
}

// WithTransportFailureMapper sets how transport failures become caller errors.
func WithTransportFailureMapper(mapper TransportFailureMapper) Option {
	return func(desc *descriptor) {
		if mapper != nil {
			desc.mapTransportFailure = mapper
		}
	}
}

// Request is an immutable description of one HTTP call and the transformer
// that turns its successful response into a T.
type Request[T any] struct {
	d         descriptor
	transform Transformer[T]
	invalid   error
}

// New creates a request with a custom transformer.
func New[T any](method Method, u *url.URL, transform Transformer[T], opts ...Option) Request[T] {
	defaults := StandardDefaults()
	d := descriptor{
		method:              method,
		headers:             make(map[HeaderKey]HeaderValue),
		cachePolicy:         defaults.CachePolicy,
		timeout:             defaults.Timeout,
		mapDecodingFailure:  func(f *DecodingFailure) error { return f },
		mapTransportFailure: func(f *transport.Failure) error { return f },
	}
	if u != nil {
		clone := *u
		d.url = &clone
	}

	for _, opt := range opts {
		opt(&d)
	}

	return Request[T]{d: d, transform: transform}
}

// NewDecodable creates a request whose body is decoded with c.
func NewDecodable[T any](method Method, u *url.URL, c codec.Codec, opts ...Option) Request[T] {
	return New(method, u, Decode[T](c), opts...)
}

// NewJSON creates a request whose body is decoded as JSON.
func NewJSON[T any](method Method, u *url.URL, opts ...Option) Request[T] {
	return NewDecodable[T](method, u, codec.JSON(), opts...)
}

// NewContainer creates a request whose value is nested under rootKey. The
// request fails validation when c does not implement codec.Container.
func NewContainer[T any](method Method, u *url.URL, c codec.Codec, rootKey string, opts ...Option) Request[T] {
	r := New(method, u, DecodeContainer[T](c, rootKey), opts...)
	if _, ok := c.(codec.Container); !ok {
		r.invalid = containerUnsupported(c)
	}
	return r
}

// NewHTML creates a request whose body is parsed as an HTML document.
func NewHTML(method Method, u *url.URL, opts ...Option) Request[*goquery.Document] {
	return New(method, u, DecodeHTML(), opts...)
}

// Method returns the HTTP method.
func (r Request[T]) Method() Method { return r.d.method }

// URL returns a copy of the target URL, or nil.
func (r Request[T]) URL() *url.URL {
	if r.d.url == nil {
		return nil
	}
	clone := *r.d.url
	return &clone
}

// Headers returns a copy of the explicitly set headers.
func (r Request[T]) Headers() map[HeaderKey]HeaderValue { return maps.Clone(r.d.headers) }

// Body returns a copy of the payload, or nil.
func (r Request[T]) Body() *Body {
	if r.d.body == nil {
		return nil
	}
	b := Body{Data: bytes.Clone(r.d.body.Data), ContentType: r.d.body.ContentType}
	return &b
}

// CachePolicy returns the cache policy.
func (r Request[T]) CachePolicy() CachePolicy { return r.d.cachePolicy }

// Timeout returns the request timeout. Zero means none.
func (r Request[T]) Timeout() time.Duration { return r.d.timeout }

// Validate reports whether the request can be sent.
func (r Request[T]) Validate() error {
	switch {
	case r.invalid != nil:
		return r.invalid
	case !r.d.method.Valid():
		return fmt.Errorf("%w: unsupported method %q", ErrInvalidRequest, r.d.method)
	case r.d.url == nil:
		return fmt.Errorf("%w: missing URL", ErrInvalidRequest)
	case r.d.url.Scheme != "http" && r.d.url.Scheme != "https":
		return fmt.Errorf("%w: unsupported URL scheme %q", ErrInvalidRequest, r.d.url.Scheme)
	case r.d.url.Host == "":
		return fmt.Errorf("%w: URL has no host", ErrInvalidRequest)
	case r.d.timeout < 0:
		return fmt.Errorf("%w: negative timeout %s", ErrInvalidRequest, r.d.timeout)
	case r.transform == nil:
		return fmt.Errorf("%w: missing response transformer", ErrInvalidRequest)
	}
	return nil
}

// HTTPRequest builds the outgoing request bound to ctx. The body is
// replayable through GetBody. Cache directives and the body's content type are
// added unless set explicitly.
func (r Request[T]) HTTPRequest(ctx context.Context) (*http.Request, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var body io.Reader
	if r.d.body != nil {
		body = bytes.NewReader(r.d.body.Data)
	}

	req, err := http.NewRequestWithContext(ctx, string(r.d.method), r.d.url.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	for key, value := range r.d.cachePolicy.directives() {
		req.Header.Set(string(key), string(value))
	}
	if r.d.body != nil && r.d.body.ContentType != "" {
		req.Header.Set(string(HeaderContentType), string(r.d.body.ContentType))
	}
	for key, value := range r.d.headers {
		req.Header.Set(string(key), string(value))
	}

	return req, nil
}

// Transform turns a transport success into the response value. A
// *DecodingFailure returned by the transformer is passed through the decoding
// failure mapper; other errors are returned unchanged.
func (r Request[T]) Transform(success transport.Success) (T, error) {
	var zero T
	if r.transform == nil {
		return zero, fmt.Errorf("%w: missing response transformer", ErrInvalidRequest)
	}

	v, err := r.transform(success)
	if err == nil {
		return v, nil
	}
	if df, ok := err.(*DecodingFailure); ok { //nolint:errorlint // only direct decoding failures are mapped
		return zero, r.d.mapDecodingFailure(df)
	}
	return zero, err
}

// MapTransportFailure converts a transport failure into the caller's error type.
func (r Request[T]) MapTransportFailure(f *transport.Failure) error {
	return r.d.mapTransportFailure(f)
}

// String returns "METHOD URL".
func (r Request[T]) String() string {
	if r.d.url == nil {
		return string(r.d.method)
	}
	return string(r.d.method) + " " + r.d.url.String()
}
