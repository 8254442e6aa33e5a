package codec

import "gopkg.in/yaml.v3"

type yamlCodec struct{}

// YAML returns a YAML 1.2 codec. Content-Type: application/yaml
func YAML() Codec { return yamlCodec{} }

func (yamlCodec) ContentType() string { return "application/yaml" }

func (yamlCodec) Marshal(v any) ([]byte, error) { return yaml.Marshal(v) }

func (yamlCodec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

func (yamlCodec) UnmarshalElement(data []byte, key string, v any) (bool, error) {
	var root map[string]yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return false, err
	}
	node, ok := root[key]
	if !ok {
		return false, nil
	}
	return true, node.Decode(v)
}
