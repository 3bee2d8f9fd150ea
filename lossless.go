package specmodel

import (
	"reflect"
	"sort"
	"strings"
)

// LosslessFields is embedded in every Value Object to keep attribute-bag keys
// the type does not model. Extensions holds keys starting with "x-"; Unknown
// holds all other unrecognised keys, plus known keys whose value had a shape
// the typed field cannot hold. Both are emitted verbatim by Serialize. When a
// typed field is set, it wins over a colliding Unknown/Extensions entry.
type LosslessFields struct {
	Extensions map[string]any
	Unknown    map[string]any
}

// Extra returns the verbatim value stored for key, if any.
func (l LosslessFields) Extra(key string) (any, bool) {
	if v, ok := l.Unknown[key]; ok {
		return v, true
	}
	v, ok := l.Extensions[key]
	return v, ok
}

// SetExtension stores an `x-*` value. Keys without the prefix go to Unknown.
func (l *LosslessFields) SetExtension(key string, v any) {
	if !strings.HasPrefix(key, "x-") {
		if l.Unknown == nil {
			l.Unknown = map[string]any{}
		}
		l.Unknown[key] = v
		return
	}
	if l.Extensions == nil {
		l.Extensions = map[string]any{}
	}
	l.Extensions[key] = v
}

func (l LosslessFields) clone(st *cloneState) LosslessFields {
	return LosslessFields{
		Extensions: cloneExtras(st, l.Extensions),
		Unknown:    cloneExtras(st, l.Unknown),
	}
}

// splitLossless separates leftover bag entries into:
// - extensions: keys starting with "x-"
// - unknown: all other keys
func splitLossless(rest map[string]any) (extensions, unknown map[string]any) {
	for k, v := range rest {
		if strings.HasPrefix(k, "x-") {
			if extensions == nil {
				extensions = map[string]any{}
			}
			extensions[k] = v
			continue
		}
		if unknown == nil {
			unknown = map[string]any{}
		}
		unknown[k] = v
	}
	return extensions, unknown
}

// knownSet builds a map for constant-time known-field checks.
func knownSet(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

// Declared attribute order per type. Serialize emits keys in this order.
var (
	serverVariableFields = []string{"default", "description", "enum"}
	serverFields         = []string{"url", "description", "variables"}
	externalDocsFields   = []string{"description", "url"}
	tagFields            = []string{"name", "description", "externalDocs"}
	contactFields        = []string{"name", "url", "email"}
	licenseFields        = []string{"name", "url"}
	infoFields           = []string{"title", "description", "termsOfService", "contact", "license", "version"}
	xmlFields            = []string{"name", "namespace", "prefix", "attribute", "wrapped"}
	documentFields       = []string{"openapi", "info", "servers", "tags", "externalDocs"}
)

var (
	knownServerVariableSet = knownSet(serverVariableFields...)
	knownServerSet         = knownSet(serverFields...)
	knownExternalDocsSet   = knownSet(externalDocsFields...)
	knownTagSet            = knownSet(tagFields...)
	knownContactSet        = knownSet(contactFields...)
	knownLicenseSet        = knownSet(licenseFields...)
	knownInfoSet           = knownSet(infoFields...)
	knownXMLSet            = knownSet(xmlFields...)
	knownDocumentSet       = knownSet(documentFields...)
)

// appendLossless emits the extras that were not already placed at a declared
// position, sorted by key so output order never depends on map iteration.
func appendLossless(f *Fragment, st *cloneState, l LosslessFields, known map[string]struct{}) {
	keys := make([]string, 0, len(l.Unknown)+len(l.Extensions))
	for k := range l.Unknown {
		if _, ok := known[k]; !ok {
			keys = append(keys, k)
		}
	}
	for k := range l.Extensions {
		if _, ok := known[k]; ok {
			continue
		}
		if _, dup := l.Unknown[k]; dup {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, _ := l.Extra(k)
		f.Set(k, serializeAny(st, v))
	}
}

// serialKey keys the Fragments made during one Serialize call, keeping them
// apart from the copies cloneState records for Clone.
type serialKey struct{ id any }

// fragmentSerializer is implemented by every Value Object in this package.
// The state is shared by one top-level Serialize call, so a node reachable
// twice is emitted as one *Fragment and cycles close on the output.
type fragmentSerializer interface {
	serialize(st *cloneState) *Fragment
}

// serializeRef returns the Fragment for p, filling it at most once per
// state. The Fragment is registered before fill runs.
func serializeRef[T any](st *cloneState, p *T, fill func(f *Fragment)) *Fragment {
	if p == nil {
		return nil
	}
	key := serialKey{p}
	if f, ok := st.seen[key]; ok {
		return f.(*Fragment)
	}
	f := NewFragment()
	st.seen[key] = f
	fill(f)
	return f
}

var serializableType = reflect.TypeOf((*Serializable)(nil)).Elem()

// serializeAny renders a verbatim value for output. Value Objects are
// serialized in place wherever they sit inside maps, slices and Fragments;
// anything else is deep-copied.
func serializeAny(st *cloneState, v any) any {
	switch x := v.(type) {
	case fragmentSerializer:
		return x.serialize(st)
	case Serializable:
		return x.Serialize()
	case *Fragment:
		return serializeFragment(st, x)
	case Attributes:
		return serializeAny(st, map[string]any(x))
	case map[string]any:
		if x == nil {
			return x
		}
		key := serialKey{mapKey(reflect.ValueOf(x).Pointer())}
		if c, ok := st.seen[key]; ok {
			return c
		}
		out := make(map[string]any, len(x))
		st.seen[key] = out
		for k, e := range x {
			out[k] = serializeAny(st, e)
		}
		return out
	case []any:
		if x == nil {
			return x
		}
		key := serialKey{sliceKey{ptr: reflect.ValueOf(x).Pointer(), len: len(x)}}
		if c, ok := st.seen[key]; ok {
			return c
		}
		out := make([]any, len(x))
		st.seen[key] = out
		for i, e := range x {
			out[i] = serializeAny(st, e)
		}
		return out
	}
	if out, ok := serializeContainer(st, v); ok {
		return out
	}
	return cloneAny(st, v)
}

func serializeFragment(st *cloneState, f *Fragment) *Fragment {
	return serializeRef(st, f, func(dst *Fragment) {
		for _, k := range f.keys {
			dst.Set(k, serializeAny(st, f.values[k]))
		}
	})
}

// serializeContainer handles typed slices and string-keyed maps of Value
// Objects, such as []*Server or map[string]*ServerVariable kept verbatim.
// Slices become []any; maps become a *Fragment with keys sorted.
func serializeContainer(st *cloneState, v any) (any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() || !rv.Type().Elem().Implements(serializableType) {
			return nil, false
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = serializeAny(st, rv.Index(i).Interface())
		}
		return out, true
	case reflect.Map:
		t := rv.Type()
		if rv.IsNil() || t.Key().Kind() != reflect.String || !t.Elem().Implements(serializableType) {
			return nil, false
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		f := NewFragment()
		for _, k := range keys {
			f.Set(k.String(), serializeAny(st, rv.MapIndex(k).Interface()))
		}
		return f, true
	}
	return nil, false
}
