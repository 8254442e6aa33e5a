// Package codec provides body codecs selected by content type.
package codec

import (
	"mime"
	"strings"
)

// Codec marshals and unmarshals message bodies of one content type.
type Codec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Container is implemented by codecs whose documents can be keyed maps. The
// element under key is decoded straight from its encoded form, so values keep
// their exact representation.
type Container interface {
	Codec
	// UnmarshalElement decodes the value under key in a top-level map into v.
	// It reports false when the key is absent.
	UnmarshalElement(data []byte, key string, v any) (bool, error)
}

// Registry maps content types and short names to codecs.
type Registry struct {
	byType map[string]Codec
	byName map[string]Codec
}

// NewRegistry constructs a registry preloaded with JSON, YAML, CBOR and
// Protobuf codecs.
func NewRegistry() *Registry {
	r := &Registry{
		byType: make(map[string]Codec),
		byName: make(map[string]Codec),
	}
	r.RegisterName("json", JSON())
	r.RegisterName("yaml", YAML())
	r.RegisterName("cbor", CBOR())
	r.RegisterName("proto", Proto())
	return r
}

// Register adds a codec under its content type.
func (r *Registry) Register(c Codec) {
	r.byType[c.ContentType()] = c
}

// RegisterName adds a codec under its content type and a short name.
func (r *Registry) RegisterName(name string, c Codec) {
	r.Register(c)
	r.byName[strings.ToLower(name)] = c
}

// Get returns the codec for a content type, or nil. Media type parameters
// such as charset are ignored.
func (r *Registry) Get(contentType string) Codec {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.ToLower(contentType))
	}
	return r.byType[mediaType]
}

// ByName returns the codec registered under a short name, or nil.
func (r *Registry) ByName(name string) Codec {
	return r.byName[strings.ToLower(strings.TrimSpace(name))]
}
