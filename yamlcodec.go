package sysconf

import "github.com/chrisskorka/sysconf/yamlvalue"

// YamlCodec decodes/encodes a structured document between raw bytes and
// the engine's long-lived [yamlvalue.Value] representation. Engine and
// document never import an encoding package directly; document decodes
// and encodes through the yamlvalue helpers that this codec also wraps.
type YamlCodec interface {
	Decode(data []byte) (yamlvalue.Value, error)
	Encode(v yamlvalue.Value) ([]byte, error)
}

// YAMLv4Codec implements YamlCodec on top of go.yaml.in/yaml/v4, via the
// yamlvalue package's Decode/Encode helpers.
type YAMLv4Codec struct{}

func (YAMLv4Codec) Decode(data []byte) (yamlvalue.Value, error) {
	return yamlvalue.Decode(data)
}

func (YAMLv4Codec) Encode(v yamlvalue.Value) ([]byte, error) {
	return yamlvalue.Encode(v)
}

var _ YamlCodec = YAMLv4Codec{}
