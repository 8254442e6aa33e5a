package commands

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"courier/internal/domain"
	"courier/pkg/backend"
	"courier/pkg/codec"
	"courier/pkg/request"
	"courier/pkg/transport"
)

// HTMLSummary is what the html decoder prints for a document.
type HTMLSummary struct {
	Title string   `json:"title" yaml:"title"`
	Links []string `json:"links,omitempty" yaml:"links,omitempty"`
}

// Reply is a decoded response value with its status code.
type Reply struct {
	Status int
	Value  any
}

// BuildRequest turns a definition into a request whose value is printable.
// Settings defaults apply first, then the definition's own values. Every
// failure is mapped to *backend.Error.
func BuildRequest(def domain.RequestDefinition, defaults request.Defaults) (request.Request[Reply], error) {
	transform, err := transformerFor(def.Decode, def.RootKey)
	if err != nil {
		return request.Request[Reply]{}, err
	}

	opts := []request.Option{request.WithDefaults(defaults)}
	if def.CachePolicy != nil {
		opts = append(opts, request.WithCachePolicy(*def.CachePolicy))
	}
	if def.Timeout != nil {
		opts = append(opts, request.WithTimeout(*def.Timeout))
	}
	if def.Body != nil {
		opts = append(opts, request.WithBody(request.RawBody(def.Body, def.ContentType)))
	}

	headers := map[request.HeaderKey]request.HeaderValue{
		request.HeaderRequestID: request.HeaderValue(uuid.NewString()),
	}
	for k, v := range def.Headers {
		headers[k] = v
	}
	opts = append(opts, request.WithHeaders(headers))
	opts = append(opts, backend.Mappers()...)

	return request.New(def.Method, def.URL, withStatus(transform), opts...), nil
}

func transformerFor(decoder domain.Decoder, rootKey string) (request.Transformer[any], error) {
	switch decoder {
	case domain.DecodeJSON, "":
		return decodeWith(codec.JSON(), rootKey), nil
	case domain.DecodeYAML:
		return decodeWith(codec.YAML(), rootKey), nil
	case domain.DecodeCBOR:
		return decodeWith(codec.CBOR(), rootKey), nil
	case domain.DecodeHTML:
		return request.Map(request.DecodeHTML(), summarizeHTML), nil
	case domain.DecodeRaw:
		return request.Map(request.Text(), func(s string) any { return s }), nil
	case domain.DecodeEmpty:
		return request.Map(request.DefaultEmpty().Transformer(passDecodingFailure), emptyValue), nil
	case domain.DecodeValidatedEmpty:
		return request.Map(request.ValidatedEmpty().Transformer(passDecodingFailure), emptyValue), nil
	default:
		return nil, fmt.Errorf("%w: unknown decoder %q", request.ErrInvalidRequest, decoder)
	}
}

func withStatus(t request.Transformer[any]) request.Transformer[Reply] {
	return func(s transport.Success) (Reply, error) {
		v, err := t(s)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Status: s.StatusCode(), Value: v}, nil
	}
}

func decodeWith(c codec.Codec, rootKey string) request.Transformer[any] {
	if rootKey != "" {
		return request.DecodeContainer[any](c, rootKey)
	}
	return request.Decode[any](c)
}

// passDecodingFailure leaves mapping to the request's own mapper.
func passDecodingFailure(f *request.DecodingFailure) error { return f }

func emptyValue(request.EmptyResponse) any { return nil }

func summarizeHTML(doc *goquery.Document) any {
	summary := HTMLSummary{Title: doc.Find("title").First().Text()}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			summary.Links = append(summary.Links, href)
		}
	})
	return summary
}
