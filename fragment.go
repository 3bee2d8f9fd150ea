package specmodel

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sort"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/specmodel/specmodel-go/canonicaljson"
)

// Fragment is the serialized form of one Value Object: a string-keyed
// mapping that remembers key order. Values are plain JSON-like data, or
// nested *Fragment for nested Value Objects and maps of them.
//
// The zero value is an empty, usable Fragment. A nil *Fragment reads as
// empty and encodes as null.
type Fragment struct {
	keys   []string
	values map[string]any
}

// NewFragment returns an empty Fragment.
func NewFragment() *Fragment {
	return &Fragment{}
}

// Set stores v under key. A new key is appended; an existing key keeps its
// position.
func (f *Fragment) Set(key string, v any) {
	if f.values == nil {
		f.values = map[string]any{}
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = v
}

// Get returns the value stored under key.
func (f *Fragment) Get(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[key]
	return v, ok
}

// Has reports whether key is present.
func (f *Fragment) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Len returns the number of keys.
func (f *Fragment) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns the keys in order.
func (f *Fragment) Keys() []string {
	if f == nil {
		return nil
	}
	return slices.Clone(f.keys)
}

// Range calls fn for each entry in order until fn returns false.
func (f *Fragment) Range(fn func(key string, v any) bool) {
	if f == nil {
		return
	}
	for _, k := range f.keys {
		if !fn(k, f.values[k]) {
			return
		}
	}
}

// ToMap converts the Fragment, recursively, into plain maps. Key order is
// lost; use it for comparison against decoded JSON, not for output. A cycle
// in f becomes the same cycle between the returned maps.
func (f *Fragment) ToMap() map[string]any {
	if f == nil {
		return nil
	}
	return f.plain(map[any]any{})
}

func (f *Fragment) plain(seen map[any]any) map[string]any {
	if m, ok := seen[f]; ok {
		return m.(map[string]any)
	}
	out := make(map[string]any, len(f.keys))
	seen[f] = out
	for _, k := range f.keys {
		out[k] = plainValue(seen, f.values[k])
	}
	return out
}

func plainValue(seen map[any]any, v any) any {
	switch x := v.(type) {
	case *Fragment:
		if x == nil {
			return nil
		}
		return x.plain(seen)
	case []any:
		if x == nil {
			return x
		}
		key := sliceKey{ptr: reflect.ValueOf(x).Pointer(), len: len(x)}
		if c, ok := seen[key]; ok {
			return c
		}
		out := make([]any, len(x))
		seen[key] = out
		for i, e := range x {
			out[i] = plainValue(seen, e)
		}
		return out
	case map[string]any:
		if x == nil {
			return x
		}
		key := mapKey(reflect.ValueOf(x).Pointer())
		if c, ok := seen[key]; ok {
			return c
		}
		out := make(map[string]any, len(x))
		seen[key] = out
		for k, e := range x {
			out[k] = plainValue(seen, e)
		}
		return out
	}
	return v
}

// Equal reports whether f and g have the same keys in the same order with
// structurally equal values.
func (f *Fragment) Equal(g *Fragment) bool {
	if f == nil || g == nil {
		return f == g
	}
	if len(f.keys) != len(g.keys) {
		return false
	}
	for i, k := range f.keys {
		if g.keys[i] != k {
			return false
		}
		if !valuesEqual(f.values[k], g.values[k]) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	fa, aok := a.(*Fragment)
	fb, bok := b.(*Fragment)
	if aok || bok {
		return aok && bok && fa.Equal(fb)
	}
	return reflect.DeepEqual(a, b)
}

func (f *Fragment) clone(st *cloneState) *Fragment {
	return cloneRef(st, f, func(dst *Fragment) {
		dst.keys = slices.Clone(f.keys)
		if f.values != nil {
			dst.values = make(map[string]any, len(f.values))
			for k, v := range f.values {
				dst.values[k] = cloneAny(st, v)
			}
		}
	})
}

// Clone returns a deep copy of f.
func (f *Fragment) Clone() *Fragment {
	return f.clone(newCloneState())
}

// ErrCyclicFragment is returned when encoding a Fragment that contains
// itself. Serialize produces one for a Value Object reachable from its own
// extras.
var ErrCyclicFragment = errors.New("fragment contains a cycle")

// encodeGuard holds the containers on the current encoding path.
type encodeGuard map[any]struct{}

func (g encodeGuard) enter(id any) error {
	if _, ok := g[id]; ok {
		return ErrCyclicFragment
	}
	g[id] = struct{}{}
	return nil
}

func (g encodeGuard) leave(id any) { delete(g, id) }

// containerID identifies the values that can hold a Fragment. Empty slices
// hold nothing and are left out.
func containerID(v any) (any, bool) {
	switch x := v.(type) {
	case *Fragment:
		if x != nil {
			return x, true
		}
	case map[string]any:
		if x != nil {
			return mapKey(reflect.ValueOf(x).Pointer()), true
		}
	case []any:
		if len(x) > 0 {
			return sliceKey{ptr: reflect.ValueOf(x).Pointer(), len: len(x)}, true
		}
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON encodes the Fragment as a JSON object with keys in order.
func (f *Fragment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, encodeGuard{}, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJSON(buf *bytes.Buffer, g encodeGuard, v any) error {
	id, ok := containerID(v)
	if !ok {
		if f, isFragment := v.(*Fragment); isFragment && f == nil {
			buf.WriteString("null")
			return nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
	if err := g.enter(id); err != nil {
		return err
	}
	defer g.leave(id)

	switch x := v.(type) {
	case *Fragment:
		return encodeJSONObject(buf, g, x.keys, x.values)
	case map[string]any:
		return encodeJSONObject(buf, g, sortedKeys(x), x)
	case []any:
		buf.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, g, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}

func encodeJSONObject(buf *bytes.Buffer, g encodeGuard, keys []string, values map[string]any) error {
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		if err := encodeJSON(buf, g, values[k]); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// MarshalYAML encodes the Fragment as a YAML mapping with keys in order.
func (f *Fragment) MarshalYAML() (any, error) {
	if f == nil {
		return nil, nil
	}
	return encodeYAML(encodeGuard{}, f)
}

func encodeYAML(g encodeGuard, v any) (*yaml.Node, error) {
	id, ok := containerID(v)
	if !ok {
		if f, isFragment := v.(*Fragment); isFragment && f == nil {
			v = nil
		}
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
	if err := g.enter(id); err != nil {
		return nil, err
	}
	defer g.leave(id)

	switch x := v.(type) {
	case *Fragment:
		return encodeYAMLMapping(g, x.keys, x.values)
	case map[string]any:
		return encodeYAMLMapping(g, sortedKeys(x), x)
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range x {
			en, err := encodeYAML(g, e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, en)
		}
		return n, nil
	}
	return nil, fmt.Errorf("unexpected container %T", v)
}

func encodeYAMLMapping(g encodeGuard, keys []string, values map[string]any) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range keys {
		kn := &yaml.Node{}
		if err := kn.Encode(k); err != nil {
			return nil, err
		}
		vn, err := encodeYAML(g, values[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		n.Content = append(n.Content, kn, vn)
	}
	return n, nil
}

// CanonicalJSON returns the RFC 8785 encoding of the Fragment. Unlike
// MarshalJSON it sorts keys, so it is suited to hashing and golden files.
func (f *Fragment) CanonicalJSON() ([]byte, error) {
	b, err := f.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return canonicaljson.Marshal(json.RawMessage(b))
}

// LogValue renders the Fragment as a slog group in key order. A Fragment
// nested inside itself is logged as "<cycle>".
func (f *Fragment) LogValue() slog.Value {
	return logValue(encodeGuard{}, f)
}

func logValue(g encodeGuard, f *Fragment) slog.Value {
	if f == nil {
		return slog.GroupValue()
	}
	if err := g.enter(f); err != nil {
		return slog.StringValue("<cycle>")
	}
	defer g.leave(f)
	attrs := make([]slog.Attr, 0, len(f.keys))
	for _, k := range f.keys {
		if nested, ok := f.values[k].(*Fragment); ok {
			attrs = append(attrs, slog.Attr{Key: k, Value: logValue(g, nested)})
			continue
		}
		attrs = append(attrs, slog.Any(k, f.values[k]))
	}
	return slog.GroupValue(attrs...)
}
