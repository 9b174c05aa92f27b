// File: internal/document/encode.go
// Brief: Encoders from tagged values back to plain Go trees, JSON, and YAML.

package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Interface converts the value tree back to plain Go values, the shape the
// JSON-Schema validator and encoding/json expect. Mapping key order is lost;
// use MarshalJSON or MarshalYAML when order matters.
func (v *Value) Interface() any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return v.boolVal
	case KindInt:
		return v.intVal
	case KindFloat:
		return v.fltVal
	case KindString:
		return v.strVal
	case KindList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			items[i] = item.Interface()
		}
		return items
	case KindMapping, KindReference:
		m, _ := v.AsMapping()
		out := make(map[string]any, m.Len())
		for _, key := range m.keys {
			out[key] = m.items[key].Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes the value with mapping keys in declaration order.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encodeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) encodeJSON(buf *bytes.Buffer) error {
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool, KindInt, KindFloat, KindString:
		data, err := json.Marshal(v.Interface())
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMapping, KindReference:
		m, _ := v.AsMapping()
		buf.WriteByte('{')
		for i, key := range m.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyData, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(keyData)
			buf.WriteByte(':')
			if err := m.items[key].encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("encode document: unsupported kind %s", v.Kind())
	}
	return nil
}

// MarshalYAML encodes the value as an order-preserving yaml.v3 node, so
// yaml.Marshal on a Value emits keys in declaration order.
func (v *Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

func (v *Value) yamlNode() *yaml.Node {
	switch v.Kind() {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprintf("%t", v.boolVal)}
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", v.intVal)}
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: fmt.Sprintf("%g", v.fltVal)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.strVal}
	case KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.list {
			node.Content = append(node.Content, item.yamlNode())
		}
		return node
	case KindMapping, KindReference:
		m, _ := v.AsMapping()
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range m.keys {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				m.items[key].yamlNode())
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// ScalarString renders a scalar value the way it appears when substituted
// into a template placeholder. Containers and null have no scalar form.
func (v *Value) ScalarString() (string, bool) {
	switch v.Kind() {
	case KindBool:
		return fmt.Sprintf("%t", v.boolVal), true
	case KindInt:
		return fmt.Sprintf("%d", v.intVal), true
	case KindFloat:
		return fmt.Sprintf("%g", v.fltVal), true
	case KindString:
		return v.strVal, true
	default:
		return "", false
	}
}
