package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Features is an insertion-ordered mapping of JSON-compatible values. It
// holds the feature flags that are passed through to resolveOptions, so key
// order in the project file is preserved in the generated module.
//
// Supported values: nil, bool, string, int, int64, float64 (finite),
// []any of supported values, and *Features for nested mappings.
type Features struct {
	keys   []string
	values map[string]any
}

// NewFeatures creates an empty Features mapping.
func NewFeatures() *Features {
	return &Features{values: make(map[string]any)}
}

// Set stores a value. An existing key keeps its position.
func (f *Features) Set(key string, value any) {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value stored under key.
func (f *Features) Get(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (f *Features) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Len returns the number of keys.
func (f *Features) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Merge returns a new mapping holding f's entries followed by other's.
// Keys present in both keep f's position and take other's value, which is
// the object-spread semantics of {...f, ...other}.
func (f *Features) Merge(other *Features) *Features {
	out := NewFeatures()
	for _, k := range f.Keys() {
		out.Set(k, f.values[k])
	}
	for _, k := range other.Keys() {
		out.Set(k, other.values[k])
	}
	return out
}

// UnmarshalYAML decodes a mapping node, keeping key order at every level.
func (f *Features) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping: %w", node.Line, ErrNotSerializable)
	}
	decoded, err := decodeMapping(node)
	if err != nil {
		return err
	}
	*f = *decoded
	return nil
}

// MarshalYAML encodes the mapping in key order.
func (f *Features) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range f.Keys() {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode := &yaml.Node{}
		if err := valNode.Encode(f.values[k]); err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// MarshalJSON encodes the mapping in key order. HTML characters are not
// escaped so the output matches JSON.stringify.
func (f *Features) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := checkSerializable(k, f.values[k]); err != nil {
			return nil, err
		}
		if err := writeJSON(&buf, f.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

func decodeMapping(node *yaml.Node) (*Features, error) {
	out := NewFeatures()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode || keyNode.Tag == "!!merge" {
			return nil, fmt.Errorf("line %d: unsupported mapping key: %w", keyNode.Line, ErrNotSerializable)
		}
		val, err := decodeValue(valNode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keyNode.Value, err)
		}
		out.Set(keyNode.Value, val)
	}
	return out, nil
}

func decodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeValue(node.Alias)
	case yaml.MappingNode:
		return decodeMapping(node)
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		return decodeScalar(node)
	}
	return nil, fmt.Errorf("line %d: unsupported node: %w", node.Line, ErrNotSerializable)
}

func decodeScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := node.Decode(&b)
		return b, err
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return nil, fmt.Errorf("line %d: integer out of range: %w", node.Line, ErrNotSerializable)
		}
		return n, nil
	case "!!float":
		var x float64
		if err := node.Decode(&x); err != nil {
			return nil, err
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("line %d: %s: %w", node.Line, node.Value, ErrNotSerializable)
		}
		return x, nil
	case "!!str", "!!timestamp":
		return node.Value, nil
	}
	return nil, fmt.Errorf("line %d: tag %s: %w", node.Line, node.ShortTag(), ErrNotSerializable)
}

// checkSerializable reports values that JSON cannot represent faithfully.
func checkSerializable(path string, v any) error {
	switch val := v.(type) {
	case nil, bool, string, int, int64:
		return nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s: %w", path, ErrNotSerializable)
		}
		return nil
	case []any:
		for i, item := range val {
			if err := checkSerializable(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
		return nil
	case *Features:
		for _, k := range val.Keys() {
			if err := checkSerializable(path+"."+k, val.values[k]); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%s: %T: %w", path, v, ErrNotSerializable)
}
