package specmodel

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// decodeAttributesJSON reads a JSON object into an attribute bag. Numbers
// are kept as json.Number so they re-encode exactly as they were read.
func decodeAttributesJSON(b []byte) (Attributes, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return Attributes(m), nil
}

// decodeAttributesYAML reads a YAML mapping node into an attribute bag.
func decodeAttributesYAML(n *yaml.Node) (Attributes, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	m, ok := yamlAnyToStringMap(v).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %s", n.ShortTag())
	}
	return Attributes(m), nil
}

// yamlAnyToStringMap rewrites map[any]any (YAML mappings with non-string
// keys) into map[string]any, recursively.
func yamlAnyToStringMap(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = yamlAnyToStringMap(e)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = yamlAnyToStringMap(e)
		}
		return out
	case []any:
		for i, e := range x {
			x[i] = yamlAnyToStringMap(e)
		}
		return x
	}
	return v
}

func unmarshalJSONInto[T any](name string, b []byte, dst *T, build func(Attributes, *cloneState) *T) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	attrs, err := decodeAttributesJSON(b)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = *build(attrs, newCloneState())
	return nil
}

func unmarshalYAMLInto[T any](name string, n *yaml.Node, dst *T, build func(Attributes, *cloneState) *T) error {
	attrs, err := decodeAttributesYAML(n)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if attrs == nil {
		return nil
	}
	*dst = *build(attrs, newCloneState())
	return nil
}
