package codec

import (
	"reflect"

	cbor "github.com/fxamacker/cbor/v2"
)

var mapStringAny = reflect.TypeOf(map[string]any(nil))

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// CBOR returns a deterministic CBOR codec (RFC 8949) using the core
// deterministic encoding. Content-Type: application/cbor
func CBOR() Codec {
	// Both option sets are static and valid, so mode construction cannot fail.
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dm, err := cbor.DecOptions{DefaultMapType: mapStringAny}.DecMode()
	if err != nil {
		panic(err)
	}
	return cborCodec{enc: em, dec: dm}
}

func (c cborCodec) ContentType() string { return "application/cbor" }

func (c cborCodec) Marshal(v any) ([]byte, error) { return c.enc.Marshal(v) }

func (c cborCodec) Unmarshal(data []byte, v any) error { return c.dec.Unmarshal(data, v) }

func (c cborCodec) UnmarshalElement(data []byte, key string, v any) (bool, error) {
	var root map[string]cbor.RawMessage
	if err := c.dec.Unmarshal(data, &root); err != nil {
		return false, err
	}
	raw, ok := root[key]
	if !ok {
		return false, nil
	}
	return true, c.dec.Unmarshal(raw, v)
}
