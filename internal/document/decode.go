// File: internal/document/decode.go
// Brief: Builders that turn yaml.v3 nodes or plain Go trees into tagged values.

package document

import (
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Parse decodes JSON or YAML text into a value tree. YAML is a superset of
// JSON, so a single yaml.v3 decode covers both syntaxes while preserving the
// key order the author wrote.
func Parse(data []byte) (*Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if root.Kind == 0 {
		return Null(), nil
	}
	return FromYAMLNode(&root)
}

// FromYAMLNode converts a decoded yaml.v3 node into a value tree.
func FromYAMLNode(node *yaml.Node) (*Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return FromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(node.Alias)
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	case yaml.SequenceNode:
		items := make([]*Value, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := FromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return List(items...), nil
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind == yaml.AliasNode {
				keyNode = keyNode.Alias
			}
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("parse document: line %d: mapping keys must be scalars", keyNode.Line)
			}
			val, err := FromYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, val)
		}
		return FromMapping(m), nil
	default:
		return nil, fmt.Errorf("parse document: unsupported node kind %d", node.Kind)
	}
}

func scalarFromYAML(node *yaml.Node) (*Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return nil, fmt.Errorf("parse document: line %d: bad bool %q", node.Line, node.Value)
		}
		return Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("parse document: line %d: bad integer %q", node.Line, node.Value)
		}
		return Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse document: line %d: bad float %q", node.Line, node.Value)
		}
		return Float(f), nil
	default:
		// Timestamps, binary, and custom tags all round-trip as strings.
		return String(node.Value), nil
	}
}

// FromAny converts a plain decoded Go tree (the shape encoding/json and
// sigs.k8s.io/yaml produce) into a value tree. map[string]any carries no key
// order, so keys are sorted for a stable result.
func FromAny(in any) (*Value, error) {
	switch t := in.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case []any:
		items := make([]*Value, 0, len(t))
		for _, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return List(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		return FromMapping(m), nil
	default:
		return nil, fmt.Errorf("convert document: unsupported Go type %T", in)
	}
}
