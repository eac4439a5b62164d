package yamlvalue

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// FromNode converts a parsed *yaml.Node into a Value, preserving mapping
// key order from the node's Content slice.
func FromNode(node *yaml.Node) (Value, error) {
	if node == nil {
		return Null(), nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return FromNode(node.Content[0])
	case yaml.AliasNode:
		return FromNode(node.Alias)
	case yaml.ScalarNode:
		return scalarFromNode(node)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := FromNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Sequence(items...), nil
	case yaml.MappingNode:
		if len(node.Content)%2 != 0 {
			return Value{}, fmt.Errorf("yamlvalue: malformed mapping node with %d children", len(node.Content))
		}
		pairs := make([]Pair, 0, len(node.Content)/2)
		for i := 0; i < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			valNode := node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("yamlvalue: mapping key at index %d is not scalar", i/2)
			}
			val, err := FromNode(valNode)
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: keyNode.Value, Value: val})
		}
		return Mapping(pairs...), nil
	default:
		return Value{}, fmt.Errorf("yamlvalue: unsupported node kind %d", node.Kind)
	}
}

func scalarFromNode(node *yaml.Node) (Value, error) {
	var decoded any
	if err := node.Decode(&decoded); err != nil {
		return Value{}, fmt.Errorf("yamlvalue: decoding scalar: %w", err)
	}
	switch t := decoded.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		return Int(int64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	default:
		return String(node.Value), nil
	}
}

// Decode parses raw YAML bytes into a Value, preserving mapping key order.
func Decode(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, fmt.Errorf("yamlvalue: decode: %w", err)
	}
	if len(node.Content) == 0 {
		return Null(), nil
	}
	return FromNode(&node)
}

// ToNode converts a Value into a *yaml.Node tree suitable for yaml.Marshal,
// preserving mapping order.
func ToNode(v Value) *yaml.Node {
	switch v.kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case KindBool:
		val := "false"
		if v.boolV {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", v.intV)}
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: fmt.Sprintf("%g", v.floatV)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.strV}
	case KindSequence:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.seqV {
			node.Content = append(node.Content, ToNode(item))
		}
		return node
	case KindMapping:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range v.mapping {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
				ToNode(p.Value))
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// Encode renders a Value back to YAML bytes with stable key order.
func Encode(v Value) ([]byte, error) {
	node := ToNode(v)
	data, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("yamlvalue: encode: %w", err)
	}
	return data, nil
}
