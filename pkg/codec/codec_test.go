package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestJSONCodec(t *testing.T) {
	c := JSON()
	in := map[string]any{"a": 1, "b": "x"}
	b, err := c.Marshal(in)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, c.Unmarshal(b, &out))
	assert.InDelta(t, 1, out["a"].(float64), 0)
	assert.Equal(t, "x", out["b"])
	assert.Equal(t, "application/json", c.ContentType())
}

func TestJSONWithOptions(t *testing.T) {
	type item struct {
		Title string `json:"title"`
	}

	strict := JSONWith(JSONOptions{DisallowUnknownFields: true})
	var it item
	err := strict.Unmarshal([]byte(`{"title":"a","extra":1}`), &it)
	require.Error(t, err)

	require.NoError(t, strict.Unmarshal([]byte(`{"title":"a"}`), &it))
	assert.Equal(t, "a", it.Title)

	err = strict.Unmarshal([]byte(`{"title":"a"} {"title":"b"}`), &it)
	require.Error(t, err)

	numbers := JSONWith(JSONOptions{UseNumber: true})
	var out map[string]any
	require.NoError(t, numbers.Unmarshal([]byte(`{"n":12345678901234567890}`), &out))
	assert.Equal(t, "12345678901234567890", out["n"].(interface{ String() string }).String())
}

func TestYAMLCodec(t *testing.T) {
	c := YAML()
	var out struct {
		Title    string `yaml:"title"`
		Subtitle string `yaml:"subtitle"`
	}
	require.NoError(t, c.Unmarshal([]byte("title: a\nsubtitle: b\n"), &out))
	assert.Equal(t, "a", out.Title)
	assert.Equal(t, "b", out.Subtitle)
}

func TestCBORCodec(t *testing.T) {
	c := CBOR()
	in := map[string]any{"n": 42}
	b, err := c.Marshal(in)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, c.Unmarshal(b, &out))
	assert.EqualValues(t, 42, out["n"])

	var generic any
	require.NoError(t, c.Unmarshal(b, &generic))
	_, ok := generic.(map[string]any)
	assert.True(t, ok, "maps decode with string keys")
}

func TestProtoCodec(t *testing.T) {
	c := Proto()
	s, err := structpb.NewStruct(map[string]any{"k": "v"})
	require.NoError(t, err)

	b, err := c.Marshal(s)
	require.NoError(t, err)

	var out structpb.Struct
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, "v", out.Fields["k"].GetStringValue())

	var ptr *structpb.Struct
	require.NoError(t, c.Unmarshal(b, &ptr))
	require.NotNil(t, ptr)
	assert.Equal(t, "v", ptr.Fields["k"].GetStringValue())

	_, err = c.Marshal(map[string]any{})
	require.Error(t, err)
	require.Error(t, c.Unmarshal(b, &map[string]any{}))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, "application/json", r.Get("application/json; charset=utf-8").ContentType())
	assert.Equal(t, "application/yaml", r.ByName("YAML").ContentType())
	assert.Equal(t, "application/cbor", r.ByName("cbor").ContentType())
	assert.Equal(t, "application/x-protobuf", r.Get("application/x-protobuf").ContentType())
	assert.Nil(t, r.Get("text/html"))
	assert.Nil(t, r.ByName("xml"))
}

func TestContainerCodecs_KeepExactValues(t *testing.T) {
	type item struct {
		ID int64 `json:"id" yaml:"id" cbor:"id"`
	}
	const id int64 = 9007199254740993

	cborBody, err := CBOR().Marshal(map[string]any{"data": map[string]any{"id": id}})
	require.NoError(t, err)

	tests := []struct {
		name  string
		codec Codec
		body  []byte
	}{
		{name: "json", codec: JSON(), body: []byte(`{"data":{"id":9007199254740993}}`)},
		{name: "yaml", codec: YAML(), body: []byte("data:\n  id: 9007199254740993\n")},
		{name: "cbor", codec: CBOR(), body: cborBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := tt.codec.(Container)
			require.True(t, ok)

			var got item
			found, err := c.UnmarshalElement(tt.body, "data", &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, id, got.ID)

			found, err = c.UnmarshalElement(tt.body, "other", &got)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestProtoCodec_IsNotAContainer(t *testing.T) {
	_, ok := Proto().(Container)
	assert.False(t, ok)
}
