package request

import (
	"fmt"
	"strings"
)

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodConnect Method = "CONNECT"
	MethodTrace   Method = "TRACE"
)

//nolint:gochecknoglobals // Lookup table for method validation
var knownMethods = []Method{
	MethodGet, MethodHead, MethodPost, MethodPut, MethodPatch,
	MethodDelete, MethodOptions, MethodConnect, MethodTrace,
}

// ParseMethod returns the method named by s, case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: unsupported method %q", ErrInvalidRequest, s)
	}
	return m, nil
}

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	for _, known := range knownMethods {
		if m == known {
			return true
		}
	}
	return false
}

// HeaderKey is an HTTP header name.
type HeaderKey string

const (
	HeaderAccept          HeaderKey = "Accept"
	HeaderAcceptCharset   HeaderKey = "Accept-Charset"
	HeaderAcceptEncoding  HeaderKey = "Accept-Encoding"
	HeaderAcceptLanguage  HeaderKey = "Accept-Language"
	HeaderAuthorization   HeaderKey = "Authorization"
	HeaderCacheControl    HeaderKey = "Cache-Control"
	HeaderContentLength   HeaderKey = "Content-Length"
	HeaderContentType     HeaderKey = "Content-Type"
	HeaderDate            HeaderKey = "Date"
	HeaderPragma          HeaderKey = "Pragma"
	HeaderUserAgent       HeaderKey = "User-Agent"
	HeaderRequestID       HeaderKey = "X-Request-ID"
	HeaderIfNoneMatch     HeaderKey = "If-None-Match"
	HeaderIfModifiedSince HeaderKey = "If-Modified-Since"
)

// HeaderValue is an HTTP header value.
type HeaderValue string

const (
	ValueApplicationJSON           HeaderValue = "application/json"
	ValueApplicationYAML           HeaderValue = "application/yaml"
	ValueApplicationCBOR           HeaderValue = "application/cbor"
	ValueApplicationProtobuf       HeaderValue = "application/x-protobuf"
	ValueApplicationFormURLEncoded HeaderValue = "application/x-www-form-urlencoded"
	ValueApplicationOctetStream    HeaderValue = "application/octet-stream"
	ValueTextHTML                  HeaderValue = "text/html"
	ValueTextPlain                 HeaderValue = "text/plain; charset=utf-8"
	ValueNoCache                   HeaderValue = "no-cache"
)

// Bearer builds an Authorization header value for a bearer token.
func Bearer(token string) HeaderValue {
	return HeaderValue("Bearer " + token)
}
