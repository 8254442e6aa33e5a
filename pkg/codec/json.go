package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONOptions tunes JSON decoding.
type JSONOptions struct {
	DisallowUnknownFields bool
	UseNumber             bool
}

type jsonCodec struct {
	opts JSONOptions
}

// JSON returns a JSON codec (RFC 8259). Content-Type: application/json
func JSON() Codec { return jsonCodec{} }

// JSONWith returns a JSON codec with the given decoding options.
func JSONWith(opts JSONOptions) Codec { return jsonCodec{opts: opts} }

func (jsonCodec) ContentType() string { return "application/json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (c jsonCodec) Unmarshal(data []byte, v any) error {
	if !c.opts.DisallowUnknownFields && !c.opts.UseNumber {
		return json.Unmarshal(data, v)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if c.opts.DisallowUnknownFields {
		dec.DisallowUnknownFields()
	}
	if c.opts.UseNumber {
		dec.UseNumber()
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("json: unexpected data after top-level value")
	}
	return nil
}

func (c jsonCodec) UnmarshalElement(data []byte, key string, v any) (bool, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return false, err
	}
	raw, ok := root[key]
	if !ok {
		return false, nil
	}
	return true, c.Unmarshal(raw, v)
}
